package cmake

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/recipe/internal/core/ports"
)

// NodeID is the unique identifier for the generator set Graft node.
const NodeID graft.ID = "adapter.cmake"

func init() {
	graft.Register(graft.Node[ports.GeneratorSet]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.GeneratorSet, error) {
			return NewRegistry(NewDeps(), NewToolchain()), nil
		},
	})
}
