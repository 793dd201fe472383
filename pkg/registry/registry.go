package registry

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/aretw0/playbox/pkg/domain"
)

// Function is a named callable that effects can invoke from a scene.
// It receives a context and a map of arguments, and returns a result or error.
type Function func(ctx context.Context, args map[string]any) (any, error)

// Registry manages the functions available to Call effects.
// It is built once at startup and passed by reference; there is no global table.
type Registry struct {
	mu        sync.RWMutex
	functions map[string]Function
}

// New creates a new empty registry.
func New() *Registry {
	return &Registry{
		functions: make(map[string]Function),
	}
}

// Register adds a function to the registry.
// If a function with the same name exists, it is overwritten.
func (r *Registry) Register(name string, fn Function) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.functions[name] = fn
}

// Has reports whether a function is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.functions[name]
	return ok
}

// Names returns the registered function names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Call looks up a function by name and executes it.
// Returns domain.ErrFunctionNotFound if the function is not registered.
func (r *Registry) Call(ctx context.Context, name string, args map[string]any) (any, error) {
	r.mu.RLock()
	fn, ok := r.functions[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrFunctionNotFound, name)
	}

	return fn(ctx, args)
}
