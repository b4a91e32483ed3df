package ports

import (
	"context"
	"errors"
)

// ErrSchemaNotFound is returned by SchemaStore.Load and Delete when no
// schema exists under the given name.
var ErrSchemaNotFound = errors.New("schema not found")

// SchemaStore defines the interface for persisting named schemas.
// Schemas are stored in their raw rule form (the parsed YAML/JSON mapping),
// not compiled: compilation depends on the caller's check registry.
type SchemaStore interface {
	// Save persists the raw schema under name, overwriting any previous one.
	Save(ctx context.Context, name string, raw map[string]any) error

	// Load retrieves the raw schema stored under name.
	// Returns ErrSchemaNotFound if the schema does not exist.
	Load(ctx context.Context, name string) (map[string]any, error)

	// Delete removes the schema stored under name.
	// Returns ErrSchemaNotFound if the schema does not exist.
	Delete(ctx context.Context, name string) error

	// List returns the names of all stored schemas.
	List(ctx context.Context) ([]string, error)
}
