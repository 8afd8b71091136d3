package ports

import "go.trai.ch/recipe/internal/core/domain"

// LockStore defines the interface for storing and retrieving the lockfile.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type LockStore interface {
	// Read loads the lockfile from root.
	// Returns nil, nil if not found.
	Read(root string) (*domain.Lockfile, error)

	// Write stores the lockfile in root.
	Write(root string, lock *domain.Lockfile) error
}

// FileWriter persists generated files.
type FileWriter interface {
	// WriteFiles writes files relative to root and returns how many were changed.
	WriteFiles(root string, files []domain.GeneratedFile) (int, error)

	// EnsureDirs creates the given directories relative to root.
	EnsureDirs(root string, dirs ...string) error
}
