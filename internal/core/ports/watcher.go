package ports

import (
	"context"
	"iter"
)

// WatchEvent is a debounced change notification.
type WatchEvent struct {
	// Paths are the changed files, sorted.
	Paths []string
}

// Watcher reports changes to a fixed set of files.
//
//go:generate go run go.uber.org/mock/mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start begins watching the given files. Missing files are watched through their directory.
	Start(ctx context.Context, paths []string) error

	// Events yields debounced change batches until the watcher stops.
	Events() iter.Seq[WatchEvent]

	// Stop releases all resources.
	Stop() error
}
