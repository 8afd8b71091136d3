// Package resolver turns a recipe and build settings into a validated dependency graph.
package resolver

import (
	"context"
	"fmt"

	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/recipe/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Resolver discovers the transitive closure of a recipe through a package index.
type Resolver struct {
	index  ports.PackageIndex
	logger ports.Logger
	tracer ports.Tracer
	jobs   int
}

// NewResolver creates a Resolver that runs at most jobs index lookups at once.
func NewResolver(index ports.PackageIndex, logger ports.Logger, tracer ports.Tracer, jobs int) *Resolver {
	if jobs < 1 {
		jobs = 1
	}
	return &Resolver{
		index:  index,
		logger: logger,
		tracer: tracer,
		jobs:   jobs,
	}
}

// optionRequest is a set of option values one package asks of a dependency.
type optionRequest struct {
	by      string
	options domain.OptionSet
}

// node is the discovery state of one package.
type node struct {
	ref      domain.Reference
	direct   bool
	declared domain.OptionSet
	info     *domain.PackageInfo
	// requestedBy records the first dependent asking for this version.
	requestedBy string
	requests    []optionRequest
}

// state is the working set of one resolution run.
type state struct {
	nodes map[string]*node
	order []string
}

func (s *state) add(n *node) {
	s.nodes[n.ref.Name] = n
	s.order = append(s.order, n.ref.Name)
}

// Resolve builds the dependency graph of recipe for settings.
// The returned graph is validated and every package carries its package ID.
func (r *Resolver) Resolve(ctx context.Context, recipe *domain.Recipe, settings domain.BuildSettings) (*domain.Graph, error) {
	ctx, span := r.tracer.Start(ctx, "resolve")
	defer span.End()
	span.SetAttribute("recipe", recipe.Name)
	span.SetAttribute("settings", settings.String())

	graph, err := r.resolve(ctx, recipe, settings)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute("packages", graph.Len())
	return graph, nil
}

func (r *Resolver) resolve(ctx context.Context, recipe *domain.Recipe, settings domain.BuildSettings) (*domain.Graph, error) {
	if err := r.phase(ctx, "resolve.settings", func(context.Context) error {
		return settings.Validate()
	}); err != nil {
		return nil, err
	}

	st := &state{nodes: make(map[string]*node)}
	if err := r.phase(ctx, "resolve.discover", func(ctx context.Context) error {
		return r.discover(ctx, st, recipe)
	}); err != nil {
		return nil, err
	}

	var graph *domain.Graph
	if err := r.phase(ctx, "resolve.options", func(context.Context) error {
		var err error
		graph, err = buildGraph(st)
		return err
	}); err != nil {
		return nil, err
	}

	if err := r.phase(ctx, "resolve.package_ids", func(context.Context) error {
		if err := graph.Validate(); err != nil {
			return err
		}
		assignPackageIDs(graph, settings)
		return nil
	}); err != nil {
		return nil, err
	}
	return graph, nil
}

func (r *Resolver) phase(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, span := r.tracer.Start(ctx, name)
	defer span.End()
	if err := fn(ctx); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// discover walks the dependency graph breadth first.
// Lookups of one level run concurrently; their results are merged in level order.
func (r *Resolver) discover(ctx context.Context, st *state, recipe *domain.Recipe) error {
	level := make([]*node, 0, len(recipe.Requires))
	for _, req := range recipe.Requirements() {
		n := &node{ref: req.Ref, direct: true, declared: req.Options}
		st.add(n)
		level = append(level, n)
	}

	for len(level) > 0 {
		if err := r.lookupLevel(ctx, level); err != nil {
			return err
		}

		var next []*node
		for _, n := range level {
			for _, dep := range n.info.Requires {
				child, err := r.request(st, n, dep)
				if err != nil {
					return err
				}
				if child != nil {
					next = append(next, child)
				}
			}
		}
		level = next
	}
	return nil
}

func (r *Resolver) lookupLevel(ctx context.Context, level []*node) error {
	infos := make([]*domain.PackageInfo, len(level))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.jobs)
	for i, n := range level {
		g.Go(func() error {
			info, err := r.index.Lookup(ctx, n.ref)
			if err != nil {
				if n.requestedBy != "" {
					err = zerr.With(err, "required_by", n.requestedBy)
				}
				return err
			}
			infos[i] = info
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, n := range level {
		n.info = infos[i]
	}
	return nil
}

// request records that parent requires dep. It returns a newly discovered node, if any.
func (r *Resolver) request(st *state, parent *node, dep domain.Dependency) (*node, error) {
	name := dep.Ref.Name
	existing, ok := st.nodes[name]
	if !ok {
		n := &node{ref: dep.Ref, requestedBy: parent.ref.Name}
		n.requests = append(n.requests, optionRequest{by: parent.ref.Name, options: dep.Options})
		st.add(n)
		return n, nil
	}

	if existing.ref.Version != dep.Ref.Version {
		if !existing.direct {
			err := zerr.With(domain.ErrVersionConflict, "package", name)
			err = zerr.With(err, existing.requestedBy, existing.ref.String())
			return nil, zerr.With(err, parent.ref.Name, dep.Ref.String())
		}
		r.logger.Warn(fmt.Sprintf("direct pin %s overrides %s requested by %s",
			existing.ref, dep.Ref, parent.ref.Name))
	}

	existing.requests = append(existing.requests, optionRequest{by: parent.ref.Name, options: dep.Options})
	return nil, nil
}

// effectiveOptions applies dependent requests, then declared options, over the package defaults.
func effectiveOptions(n *node) (domain.OptionSet, error) {
	schema := n.info.Defaults
	options := schema
	requestedBy := make(map[string]string)

	for _, req := range n.requests {
		for _, o := range req.options.Options() {
			if !schema.Has(o.Name) {
				return domain.OptionSet{}, unknownOption(n, o.Name, req.by)
			}
			if by, seen := requestedBy[o.Name]; seen {
				if current, _ := options.Get(o.Name); current != o.Value {
					err := zerr.With(domain.ErrOptionConflict, "package", n.ref.Name)
					err = zerr.With(err, "option", o.Name)
					err = zerr.With(err, by, fmt.Sprint(current))
					return domain.OptionSet{}, zerr.With(err, req.by, fmt.Sprint(o.Value))
				}
				continue
			}
			requestedBy[o.Name] = req.by
			options = options.With(o.Name, o.Value)
		}
	}

	for _, o := range n.declared.Options() {
		if !schema.Has(o.Name) {
			return domain.OptionSet{}, unknownOption(n, o.Name, "recipe")
		}
		if by, seen := requestedBy[o.Name]; seen {
			if current, _ := options.Get(o.Name); current != o.Value {
				err := zerr.With(domain.ErrOptionConflict, "package", n.ref.Name)
				err = zerr.With(err, "option", o.Name)
				err = zerr.With(err, "declared", fmt.Sprint(o.Value))
				return domain.OptionSet{}, zerr.With(err, by, fmt.Sprint(current))
			}
		}
		options = options.With(o.Name, o.Value)
	}
	return options, nil
}

func unknownOption(n *node, option, by string) error {
	err := zerr.With(domain.ErrUnknownOption, "package", n.ref.String())
	err = zerr.With(err, "option", option)
	return zerr.With(err, "requested_by", by)
}

func buildGraph(st *state) (*domain.Graph, error) {
	graph := domain.NewGraph()
	for _, name := range st.order {
		n := st.nodes[name]
		options, err := effectiveOptions(n)
		if err != nil {
			return nil, err
		}

		requires := make([]string, 0, len(n.info.Requires))
		for _, dep := range n.info.Requires {
			requires = append(requires, dep.Ref.Name)
		}

		if err := graph.AddPackage(&domain.ResolvedPackage{
			Ref:      n.ref,
			Options:  options,
			Requires: requires,
			Direct:   n.direct,
			Info:     *n.info,
		}); err != nil {
			return nil, err
		}
	}
	return graph, nil
}

// assignPackageIDs computes package IDs bottom-up so every dependency ID is known first.
func assignPackageIDs(graph *domain.Graph, settings domain.BuildSettings) {
	for p := range graph.Walk() {
		depIDs := make([]string, 0, len(p.Requires))
		for _, name := range p.Requires {
			dep, _ := graph.Get(name)
			depIDs = append(depIDs, dep.PackageID)
		}
		p.PackageID = domain.ComputePackageID(p.Ref, p.Options, settings, p.Info.IsHeaderOnly(p.Options), depIDs)
	}
}
