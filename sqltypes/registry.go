package sqltypes

import (
	"fmt"
	"sync"
)

// Registry maps native column-type names to type descriptors. Schema
// reflection consults it to attach the right TypeEngine to reflected columns.
// Registration happens once at setup; afterwards the registry is read-only.
type Registry struct {
	types map[string]TypeEngine
	mu    sync.RWMutex
}

// NewRegistry creates an empty native-type registry.
func NewRegistry() *Registry {
	return &Registry{
		types: make(map[string]TypeEngine),
	}
}

// Register registers a type descriptor under its native type name.
// Registering the same name twice is a configuration error.
func (r *Registry) Register(name string, t TypeEngine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.types[name]; exists {
		return fmt.Errorf("native type %q is already registered", name)
	}
	r.types[name] = t
	return nil
}

// Lookup retrieves the type descriptor registered under a native type name.
func (r *Registry) Lookup(name string) (TypeEngine, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, exists := r.types[name]
	return t, exists
}

// Names returns the registered native type names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	return names
}

// Count returns the number of registered types.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.types)
}

// Clear removes all registered types (useful for testing).
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.types = make(map[string]TypeEngine)
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry used when no explicit
// registry is threaded through setup.
func DefaultRegistry() *Registry {
	return defaultRegistry
}
