package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/sievekit/sieve/pkg/ports"
)

// SchemaStoreContractTest is a reusable test suite that verifies if an
// adapter complies with ports.SchemaStore.
func SchemaStoreContractTest(t *testing.T, store ports.SchemaStore) {
	t.Helper()
	ctx := context.Background()

	raw := map[string]any{
		"name": map[string]any{"type": "string", "required": true},
		"age":  map[string]any{"type": "integer", "min": float64(0)},
	}

	// 1. Save + Load round trip
	t.Run("SaveLoad", func(t *testing.T) {
		if err := store.Save(ctx, "user", raw); err != nil {
			t.Fatalf("unexpected error saving schema: %v", err)
		}

		got, err := store.Load(ctx, "user")
		if err != nil {
			t.Fatalf("unexpected error loading schema: %v", err)
		}
		if len(got) != len(raw) {
			t.Errorf("loaded schema has %d fields, want %d", len(got), len(raw))
		}
		for field := range raw {
			if _, ok := got[field]; !ok {
				t.Errorf("field %s missing from loaded schema", field)
			}
		}
	})

	// 2. Load isolation: mutating a loaded schema must not affect the store
	t.Run("LoadIsolation", func(t *testing.T) {
		got, err := store.Load(ctx, "user")
		if err != nil {
			t.Fatalf("unexpected error loading schema: %v", err)
		}
		got["injected"] = map[string]any{"type": "string"}

		again, err := store.Load(ctx, "user")
		if err != nil {
			t.Fatalf("unexpected error reloading schema: %v", err)
		}
		if _, ok := again["injected"]; ok {
			t.Error("mutation of a loaded schema leaked into the store")
		}
	})

	// 3. Overwrite
	t.Run("Overwrite", func(t *testing.T) {
		if err := store.Save(ctx, "user", map[string]any{"id": map[string]any{"type": "string"}}); err != nil {
			t.Fatalf("unexpected error overwriting schema: %v", err)
		}
		got, err := store.Load(ctx, "user")
		if err != nil {
			t.Fatalf("unexpected error loading schema: %v", err)
		}
		if len(got) != 1 {
			t.Errorf("overwrite kept %d fields, want 1", len(got))
		}
	})

	// 4. List
	t.Run("List", func(t *testing.T) {
		if err := store.Save(ctx, "order", raw); err != nil {
			t.Fatalf("unexpected error saving schema: %v", err)
		}
		names, err := store.List(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing schemas: %v", err)
		}
		lookup := make(map[string]bool)
		for _, name := range names {
			lookup[name] = true
		}
		for _, want := range []string{"user", "order"} {
			if !lookup[want] {
				t.Errorf("schema %s missing from list %v", want, names)
			}
		}
	})

	// 5. Delete + NotFound
	t.Run("Delete", func(t *testing.T) {
		if err := store.Delete(ctx, "order"); err != nil {
			t.Fatalf("unexpected error deleting schema: %v", err)
		}
		if _, err := store.Load(ctx, "order"); !errors.Is(err, ports.ErrSchemaNotFound) {
			t.Errorf("Load after delete: error = %v, want ErrSchemaNotFound", err)
		}
		if err := store.Delete(ctx, "order"); !errors.Is(err, ports.ErrSchemaNotFound) {
			t.Errorf("Delete twice: error = %v, want ErrSchemaNotFound", err)
		}
	})

	t.Run("LoadMissing", func(t *testing.T) {
		if _, err := store.Load(ctx, "no-such-schema"); !errors.Is(err, ports.ErrSchemaNotFound) {
			t.Errorf("error = %v, want ErrSchemaNotFound", err)
		}
	})
}
