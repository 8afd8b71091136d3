// Package lockfile persists the resolved graph as recipe.lock.
package lockfile

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/recipe/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.LockStore = (*Store)(nil)

// Store implements ports.LockStore with an indented JSON file at the project root.
type Store struct{}

// NewStore creates a new lockfile store.
func NewStore() *Store {
	return &Store{}
}

// Read loads the lockfile. It returns nil, nil when no lockfile exists.
func (s *Store) Read(root string) (*domain.Lockfile, error) {
	path := Path(root)
	//nolint:gosec // path is the fixed lockfile name under the project root
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrLockReadFailed.Error()), "path", path)
	}

	var lock domain.Lockfile
	if err := json.Unmarshal(data, &lock); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrLockUnmarshalFailed.Error()), "path", path)
	}

	return &lock, nil
}

// Write stores the lockfile, replacing any previous one atomically.
func (s *Store) Write(root string, lock *domain.Lockfile) error {
	data, err := json.MarshalIndent(lock, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrLockMarshalFailed.Error())
	}
	data = append(data, '\n')

	path := Path(root)
	tmp, err := os.CreateTemp(filepath.Dir(path), ".recipe.lock-*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrLockWriteFailed.Error()), "path", path)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrLockWriteFailed.Error()), "path", path)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrLockWriteFailed.Error()), "path", path)
	}
	if err := os.Chmod(tmp.Name(), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrLockWriteFailed.Error()), "path", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrLockWriteFailed.Error()), "path", path)
	}

	return nil
}

// Path returns the lockfile path under root.
func Path(root string) string {
	return filepath.Join(root, domain.LockFileName)
}
