package middleware

import (
	"context"
	"log/slog"

	"github.com/sievekit/sieve/internal/observability"
	"github.com/sievekit/sieve/pkg/ports"
)

// Instrumented wraps a SchemaStore with structured logging and
// per-operation Prometheus counters.
func Instrumented(logger *slog.Logger, metrics *observability.Metrics) Middleware {
	return func(next ports.SchemaStore) ports.SchemaStore {
		return &instrumentedStore{next: next, logger: logger, metrics: metrics}
	}
}

type instrumentedStore struct {
	next    ports.SchemaStore
	logger  *slog.Logger
	metrics *observability.Metrics
}

func (s *instrumentedStore) observe(op string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	s.metrics.StoreOps.WithLabelValues(op, status).Inc()
}

func (s *instrumentedStore) Save(ctx context.Context, name string, raw map[string]any) error {
	err := s.next.Save(ctx, name, raw)
	s.observe("save", err)
	if err != nil {
		s.logger.Error("schema save failed", "name", name, "error", err)
		return err
	}
	s.logger.Debug("schema saved", "name", name, "fields", len(raw))
	return nil
}

func (s *instrumentedStore) Load(ctx context.Context, name string) (map[string]any, error) {
	raw, err := s.next.Load(ctx, name)
	s.observe("load", err)
	if err != nil {
		s.logger.Debug("schema load failed", "name", name, "error", err)
		return nil, err
	}
	return raw, nil
}

func (s *instrumentedStore) Delete(ctx context.Context, name string) error {
	err := s.next.Delete(ctx, name)
	s.observe("delete", err)
	if err != nil {
		s.logger.Debug("schema delete failed", "name", name, "error", err)
		return err
	}
	s.logger.Debug("schema deleted", "name", name)
	return nil
}

func (s *instrumentedStore) List(ctx context.Context) ([]string, error) {
	names, err := s.next.List(ctx)
	s.observe("list", err)
	return names, err
}
