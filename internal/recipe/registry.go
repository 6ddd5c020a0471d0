package recipe

import (
	"context"
	"fmt"
	"log/slog"

	"bundlegraph/internal/bundle"
)

// Func is a recipe implementation. It adjusts the graph through the bundle
// mutation and metadata operations and must tolerate being called on every
// pass: all mutation operations it may use are idempotent.
type Func func(ctx context.Context, g *bundle.Graph, opts Options) error

// Registry holds the recipes available to a build, keyed by name.
type Registry struct {
	recipes map[string]Func
}

// NewRegistry creates an empty recipe registry.
func NewRegistry() *Registry {
	return &Registry{recipes: make(map[string]Func)}
}

// Register adds a recipe under a name. Registering the same name twice is
// a programmer error.
func (r *Registry) Register(name string, fn Func) {
	if _, exists := r.recipes[name]; exists {
		panic(fmt.Sprintf("recipe with name '%s' already registered", name))
	}
	slog.Debug("Registering recipe.", "name", name)
	r.recipes[name] = fn
}

// Get returns the recipe registered under name.
func (r *Registry) Get(name string) (Func, bool) {
	fn, ok := r.recipes[name]
	return fn, ok
}

// Builtin returns a registry populated with the recipes shipped with the
// tool.
func Builtin() *Registry {
	r := NewRegistry()
	r.Register("extra-imports", extraImports)
	r.Register("zip-unsafe", zipUnsafe)
	r.Register("expected-missing", expectedMissing)
	r.Register("attach-resources", attachResources)
	r.Register("attach-bootstrap", attachBootstrap)
	return r
}
