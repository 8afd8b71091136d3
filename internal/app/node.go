package app

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/recipe/internal/adapters/cmake"     //nolint:depguard // Wired in app layer
	"go.trai.ch/recipe/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/recipe/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/recipe/internal/adapters/index"     //nolint:depguard // Wired in app layer
	"go.trai.ch/recipe/internal/adapters/lockfile"  //nolint:depguard // Wired in app layer
	"go.trai.ch/recipe/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/recipe/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/recipe/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/recipe/internal/core/ports"
	"go.trai.ch/recipe/internal/engine/resolver"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains all the initialized application components.
type Components struct {
	App    *App
	Logger ports.Logger
	// Console is the concrete logger, reconfigured by command line flags.
	Console *logger.Logger
	Env     config.Env
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.EnvNodeID,
			config.LoaderNodeID,
			config.ProfileNodeID,
			resolver.NodeID,
			cmake.NodeID,
			fs.WriterNodeID,
			lockfile.NodeID,
			watcher.NodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			logger.ConcreteNodeID,
			config.EnvNodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	env, err := graft.Dep[config.Env](ctx)
	if err != nil {
		return nil, err
	}

	recipes, err := graft.Dep[ports.RecipeLoader](ctx)
	if err != nil {
		return nil, err
	}

	profiles, err := graft.Dep[ports.ProfileLoader](ctx)
	if err != nil {
		return nil, err
	}

	res, err := graft.Dep[*resolver.Resolver](ctx)
	if err != nil {
		return nil, err
	}

	generators, err := graft.Dep[ports.GeneratorSet](ctx)
	if err != nil {
		return nil, err
	}

	writer, err := graft.Dep[ports.FileWriter](ctx)
	if err != nil {
		return nil, err
	}

	locks, err := graft.Dep[ports.LockStore](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
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

	root, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	a := New(recipes, profiles, res, generators, writer, locks, w, log, ConfigFromEnv(env, root))
	return a.WithReload(func() (Runtime, error) {
		return reloadRuntime(root, log, tracer)
	}), nil
}

// reloadRuntime rereads .env and rebuilds everything that depends on it.
func reloadRuntime(root string, log ports.Logger, tracer ports.Tracer) (Runtime, error) {
	env, err := config.LoadEnv(root)
	if err != nil {
		return Runtime{}, err
	}
	idx, err := index.Open(env, root)
	if err != nil {
		return Runtime{}, err
	}
	return Runtime{
		Config:   ConfigFromEnv(env, root),
		Profiles: config.NewProfileLoader(env.HomeDir(root)),
		Resolver: resolver.NewResolver(idx, log, tracer, env.Jobs),
	}, nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	a, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	console, err := graft.Dep[*logger.Logger](ctx)
	if err != nil {
		return nil, err
	}

	env, err := graft.Dep[config.Env](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:     a,
		Logger:  log,
		Console: console,
		Env:     env,
	}, nil
}
