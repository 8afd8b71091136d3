package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/recipe/internal/core/ports"
)

// WriterNodeID is the unique identifier for the file writer Graft node.
const WriterNodeID graft.ID = "adapter.file_writer"

func init() {
	graft.Register(graft.Node[ports.FileWriter]{
		ID:        WriterNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.FileWriter, error) {
			return NewWriter(), nil
		},
	})
}
