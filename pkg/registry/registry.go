package registry

import (
	"fmt"
	"sync"
)

// CheckFunc defines the signature for a custom validation predicate.
// It receives the field path and the value under inspection, and returns
// an error describing the violation, or nil if the value is acceptable.
type CheckFunc func(field string, value any) error

// Registry manages the available named checks.
type Registry struct {
	mu     sync.RWMutex
	checks map[string]CheckFunc
}

// New creates a new empty registry.
func New() *Registry {
	return &Registry{
		checks: make(map[string]CheckFunc),
	}
}

// Register adds a check to the registry.
// If a check with the same name exists, it is overwritten.
func (r *Registry) Register(name string, fn CheckFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checks[name] = fn
}

// Lookup returns the check registered under name.
func (r *Registry) Lookup(name string) (CheckFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.checks[name]
	return fn, ok
}

// Names returns the registered check names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.checks))
	for name := range r.checks {
		names = append(names, name)
	}
	return names
}

// Run executes a check by name against a value.
// Returns an error if the check is not registered.
func (r *Registry) Run(name, field string, value any) error {
	fn, ok := r.Lookup(name)
	if !ok {
		return fmt.Errorf("check not found: %s", name)
	}
	return fn(field, value)
}
