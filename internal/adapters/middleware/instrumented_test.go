package middleware_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sievekit/sieve/internal/adapters/memory"
	"github.com/sievekit/sieve/internal/adapters/middleware"
	"github.com/sievekit/sieve/internal/logging"
	"github.com/sievekit/sieve/internal/observability"
	"github.com/sievekit/sieve/pkg/ports"
)

func TestInstrumented_CountsOps(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)
	store := middleware.Instrumented(logging.NewNop(), metrics)(memory.NewStore())

	ctx := context.Background()
	raw := map[string]any{"name": map[string]any{"type": "string"}}

	require.NoError(t, store.Save(ctx, "user", raw))
	_, err := store.Load(ctx, "user")
	require.NoError(t, err)
	_, err = store.Load(ctx, "missing")
	assert.ErrorIs(t, err, ports.ErrSchemaNotFound)

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.StoreOps.WithLabelValues("save", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.StoreOps.WithLabelValues("load", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.StoreOps.WithLabelValues("load", "error")))
}

func TestInstrumented_PreservesContract(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)
	store := middleware.Instrumented(logging.NewNop(), metrics)(memory.NewStore())

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "user", map[string]any{"id": map[string]any{"type": "string"}}))
	require.NoError(t, store.Delete(ctx, "user"))
	assert.ErrorIs(t, store.Delete(ctx, "user"), ports.ErrSchemaNotFound)
}
