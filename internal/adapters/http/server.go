// Package http exposes document validation and schema storage as a JSON API.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sievekit/sieve/internal/observability"
	"github.com/sievekit/sieve/pkg/ports"
	"github.com/sievekit/sieve/pkg/registry"
	"github.com/sievekit/sieve/pkg/schema"
)

// Server handles the validation API requests.
type Server struct {
	store   ports.SchemaStore
	checks  *registry.Registry
	logger  *slog.Logger
	metrics *observability.Metrics
}

// Config carries the server collaborators. Metrics and Registry may be
// shared with other components; both default to fresh instances.
type Config struct {
	Store    ports.SchemaStore
	Checks   *registry.Registry
	Logger   *slog.Logger
	Metrics  *observability.Metrics
	Registry *prometheus.Registry
}

// NewHandler creates the HTTP handler for the validation service.
func NewHandler(cfg Config) http.Handler {
	promReg := cfg.Registry
	if promReg == nil {
		promReg = prometheus.NewRegistry()
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = observability.NewMetrics(promReg)
	}

	server := &Server{
		store:   cfg.Store,
		checks:  cfg.Checks,
		logger:  cfg.Logger,
		metrics: metrics,
	}

	r := chi.NewRouter()
	r.Get("/healthz", server.Health)
	r.Handle("/metrics", promhttp.HandlerFor(promReg, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Post("/validate", server.ValidateDocument)
		r.Get("/schemas", server.ListSchemas)
		r.Put("/schemas/{name}", server.SaveSchema)
		r.Get("/schemas/{name}", server.GetSchema)
		r.Delete("/schemas/{name}", server.DeleteSchema)
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ValidateRequest is the body of POST /v1/validate. Exactly one of Schema
// or SchemaName selects the schema to evaluate against.
type ValidateRequest struct {
	Schema     map[string]any `json:"schema,omitempty"`
	SchemaName string         `json:"schema_name,omitempty"`
	Document   map[string]any `json:"document"`
	Strict     bool           `json:"strict,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Health handles GET /healthz.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ValidateDocument handles POST /v1/validate.
func (s *Server) ValidateDocument(w http.ResponseWriter, r *http.Request) {
	var body ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		s.logger.Warn("validate: invalid request body", "error", err)
		return
	}

	raw := body.Schema
	if raw == nil && body.SchemaName != "" {
		stored, err := s.store.Load(r.Context(), body.SchemaName)
		if errors.Is(err, ports.ErrSchemaNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "schema not found: " + body.SchemaName})
			return
		}
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "schema store unavailable"})
			s.logger.Error("validate: schema load failed", "name", body.SchemaName, "error", err)
			return
		}
		raw = stored
	}
	if raw == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "one of schema or schema_name is required"})
		return
	}

	compiled, err := s.compile(raw)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	}

	var opts []schema.Option
	if body.Strict {
		opts = append(opts, schema.Strict())
	}

	start := time.Now()
	res := schema.Evaluate(compiled, body.Document, opts...)
	s.metrics.ObserveValidation(res.Valid, time.Since(start).Seconds())

	writeJSON(w, http.StatusOK, res)
}

// SaveSchema handles PUT /v1/schemas/{name}. The schema is compiled first:
// a malformed schema is rejected and never stored.
func (s *Server) SaveSchema(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if _, err := s.compile(raw); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	}

	if err := s.store.Save(r.Context(), name, raw); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "schema store unavailable"})
		s.logger.Error("schema save failed", "name", name, "error", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetSchema handles GET /v1/schemas/{name}.
func (s *Server) GetSchema(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	raw, err := s.store.Load(r.Context(), name)
	if errors.Is(err, ports.ErrSchemaNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "schema not found: " + name})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "schema store unavailable"})
		s.logger.Error("schema load failed", "name", name, "error", err)
		return
	}

	writeJSON(w, http.StatusOK, raw)
}

// DeleteSchema handles DELETE /v1/schemas/{name}.
func (s *Server) DeleteSchema(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	err := s.store.Delete(r.Context(), name)
	if errors.Is(err, ports.ErrSchemaNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "schema not found: " + name})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "schema store unavailable"})
		s.logger.Error("schema delete failed", "name", name, "error", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListSchemas handles GET /v1/schemas.
func (s *Server) ListSchemas(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "schema store unavailable"})
		s.logger.Error("schema list failed", "error", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]string{"schemas": names})
}

func (s *Server) compile(raw map[string]any) (schema.Schema, error) {
	var opts []schema.CompileOption
	if s.checks != nil {
		opts = append(opts, schema.WithChecks(s.checks))
	}
	return schema.Compile(raw, opts...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
