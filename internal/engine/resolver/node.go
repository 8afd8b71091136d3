package resolver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/recipe/internal/adapters/config"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/recipe/internal/adapters/index"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/recipe/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/recipe/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/recipe/internal/core/ports"
)

// NodeID is the unique identifier for the resolver Graft node.
const NodeID graft.ID = "engine.resolver"

func init() {
	graft.Register(graft.Node[*Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.EnvNodeID,
			index.NodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: func(ctx context.Context) (*Resolver, error) {
			env, err := graft.Dep[config.Env](ctx)
			if err != nil {
				return nil, err
			}

			idx, err := graft.Dep[ports.PackageIndex](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return NewResolver(idx, log, tracer, env.Jobs), nil
		},
	})
}
