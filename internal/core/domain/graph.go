package domain

import (
	"iter"
	"strings"

	"go.trai.ch/zerr"
)

// Graph is the resolved dependency graph. Packages are keyed by name and keep insertion order.
type Graph struct {
	packages       map[string]*ResolvedPackage
	order          []string
	executionOrder []string
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		packages: make(map[string]*ResolvedPackage),
	}
}

// AddPackage adds a package to the graph.
// It returns an error if a package with the same name already exists.
func (g *Graph) AddPackage(p *ResolvedPackage) error {
	if _, exists := g.packages[p.Ref.Name]; exists {
		return zerr.With(ErrPackageAlreadyExists, "package", p.Ref.Name)
	}
	g.packages[p.Ref.Name] = p
	g.order = append(g.order, p.Ref.Name)
	g.executionOrder = nil
	return nil
}

// Get returns the named package.
func (g *Graph) Get(name string) (*ResolvedPackage, bool) {
	p, ok := g.packages[name]
	return p, ok
}

// Len returns the number of packages in the graph.
func (g *Graph) Len() int {
	return len(g.order)
}

// Validate checks for missing dependencies and cycles using a depth-first topological sort.
// Packages are visited in insertion order so the resulting order is deterministic.
func (g *Graph) Validate() error {
	order := make([]string, 0, len(g.packages))
	visited := make(map[string]int, len(g.packages)) // 0: unvisited, 1: visiting, 2: visited
	var path []string

	var visit func(name string) error
	visit = func(name string) error {
		visited[name] = 1
		path = append(path, name)

		p, exists := g.packages[name]
		if !exists {
			return zerr.With(ErrMissingDependency, "dependency", name)
		}

		for _, dep := range p.Requires {
			switch visited[dep] {
			case 1:
				return buildCycleError(path, dep)
			case 0:
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[name] = 2
		path = path[:len(path)-1]
		order = append(order, name)
		return nil
	}

	for _, name := range g.order {
		if visited[name] == 0 {
			if err := visit(name); err != nil {
				return err
			}
		}
	}

	g.executionOrder = order
	return nil
}

// buildCycleError constructs an error with cycle path metadata.
func buildCycleError(path []string, dep string) error {
	start := 0
	for i, node := range path {
		if node == dep {
			start = i
			break
		}
	}
	cycle := append(append([]string{}, path[start:]...), dep)
	return zerr.With(ErrCycleDetected, "cycle", strings.Join(cycle, " -> "))
}

// Walk returns an iterator that yields packages with dependencies before dependents.
// It assumes Validate() has been called and returned nil.
func (g *Graph) Walk() iter.Seq[*ResolvedPackage] {
	return func(yield func(*ResolvedPackage) bool) {
		for _, name := range g.executionOrder {
			if !yield(g.packages[name]) {
				return
			}
		}
	}
}

// Packages returns an iterator over packages in insertion order.
func (g *Graph) Packages() iter.Seq[*ResolvedPackage] {
	return func(yield func(*ResolvedPackage) bool) {
		for _, name := range g.order {
			if !yield(g.packages[name]) {
				return
			}
		}
	}
}

// Direct returns the directly declared packages in declaration order.
func (g *Graph) Direct() []*ResolvedPackage {
	var direct []*ResolvedPackage
	for _, name := range g.order {
		if p := g.packages[name]; p.Direct {
			direct = append(direct, p)
		}
	}
	return direct
}

// Closure returns the names of every package reachable from name, excluding name itself,
// in dependency-first order.
func (g *Graph) Closure(name string) ([]string, error) {
	if _, ok := g.packages[name]; !ok {
		return nil, zerr.With(ErrPackageNotFound, "package", name)
	}

	seen := map[string]bool{name: true}
	var out []string
	var visit func(n string)
	visit = func(n string) {
		for _, dep := range g.packages[n].Requires {
			if seen[dep] {
				continue
			}
			seen[dep] = true
			if _, ok := g.packages[dep]; ok {
				visit(dep)
			}
			out = append(out, dep)
		}
	}
	visit(name)
	return out, nil
}
