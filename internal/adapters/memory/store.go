package memory

import (
	"context"
	"sync"

	"github.com/sievekit/sieve/pkg/ports"
)

// Store implements ports.SchemaStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]map[string]any
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]map[string]any),
	}
}

// Save persists the raw schema in memory.
func (s *Store) Save(ctx context.Context, name string, raw map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = deepCopy(raw)
	return nil
}

// Load retrieves the raw schema from memory.
func (s *Store) Load(ctx context.Context, name string) (map[string]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.data[name]
	if !ok {
		return nil, ports.ErrSchemaNotFound
	}

	// Copy on read so callers can't mutate store state through the map.
	return deepCopy(raw), nil
}

// Delete removes the schema.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[name]; !ok {
		return ports.ErrSchemaNotFound
	}
	delete(s.data, name)
	return nil
}

// List returns the stored schema names.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	return names, nil
}

func deepCopy(raw map[string]any) map[string]any {
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		if m, ok := v.(map[string]any); ok {
			out[k] = deepCopy(m)
			continue
		}
		out[k] = v
	}
	return out
}
