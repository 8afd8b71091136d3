package config

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/recipe/internal/adapters/logger"
	"go.trai.ch/recipe/internal/core/ports"
)

const (
	// EnvNodeID is the unique identifier for the environment configuration Graft node.
	EnvNodeID graft.ID = "adapter.config.env"
	// LoaderNodeID is the unique identifier for the recipe loader Graft node.
	LoaderNodeID graft.ID = "adapter.config.loader"
	// ProfileNodeID is the unique identifier for the profile loader Graft node.
	ProfileNodeID graft.ID = "adapter.config.profile"
)

func init() {
	graft.Register(graft.Node[Env]{
		ID:        EnvNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (Env, error) {
			cwd, err := os.Getwd()
			if err != nil {
				return Env{}, err
			}
			return LoadEnv(cwd)
		},
	})

	graft.Register(graft.Node[ports.RecipeLoader]{
		ID:        LoaderNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.RecipeLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})

	graft.Register(graft.Node[ports.ProfileLoader]{
		ID:        ProfileNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{EnvNodeID},
		Run: func(ctx context.Context) (ports.ProfileLoader, error) {
			env, err := graft.Dep[Env](ctx)
			if err != nil {
				return nil, err
			}
			cwd, err := os.Getwd()
			if err != nil {
				return nil, err
			}
			return NewProfileLoader(env.HomeDir(cwd)), nil
		},
	})
}
