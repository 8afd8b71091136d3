package index

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/recipe/internal/adapters/config"
	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/recipe/internal/core/ports"
)

// NodeID is the unique identifier for the package index Graft node.
const NodeID graft.ID = "adapter.index"

func init() {
	graft.Register(graft.Node[ports.PackageIndex]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.EnvNodeID},
		Run: func(ctx context.Context) (ports.PackageIndex, error) {
			env, err := graft.Dep[config.Env](ctx)
			if err != nil {
				return nil, err
			}
			cwd, err := os.Getwd()
			if err != nil {
				return nil, err
			}
			return Open(env, cwd)
		},
	})
}

// Open returns the builtin catalog, chained with a remote index when RECIPE_INDEX_URL is set.
// The remote cache lives in the workspace home of root.
func Open(env config.Env, root string) (ports.PackageIndex, error) {
	builtin, err := NewBuiltin()
	if err != nil {
		return nil, err
	}
	if env.IndexURL == "" {
		return builtin, nil
	}

	remote, err := NewRemote(RemoteConfig{
		BaseURL:  env.IndexURL,
		Timeout:  env.IndexTimeout,
		Retries:  env.IndexRetries,
		CacheDir: domain.DefaultIndexCachePath(env.HomeDir(root)),
	})
	if err != nil {
		return nil, err
	}
	return NewChain(builtin, remote), nil
}
