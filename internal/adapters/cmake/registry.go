package cmake

import (
	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/recipe/internal/core/ports"
)

// Registry is the set of available descriptor generators.
type Registry struct {
	generators map[domain.Generator]ports.DescriptorGenerator
}

// NewRegistry registers the given generators by name.
func NewRegistry(generators ...ports.DescriptorGenerator) *Registry {
	r := &Registry{generators: make(map[domain.Generator]ports.DescriptorGenerator, len(generators))}
	for _, g := range generators {
		r.generators[g.Name()] = g
	}
	return r
}

// Lookup returns the generator registered under name.
func (r *Registry) Lookup(name domain.Generator) (ports.DescriptorGenerator, bool) {
	g, ok := r.generators[name]
	return g, ok
}
