// Package fs writes generated descriptor files and layout folders to disk.
package fs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/recipe/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FileWriter = (*Writer)(nil)

// Writer implements ports.FileWriter. Files whose content is unchanged are left untouched
// so build systems watching modification times do not reconfigure needlessly.
type Writer struct{}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// EnsureDirs creates the given directories relative to root.
func (w *Writer) EnsureDirs(root string, dirs ...string) error {
	for _, dir := range dirs {
		path, err := resolve(root, dir)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(path, domain.DirPerm); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrLayoutCreateFailed.Error()), "path", path)
		}
	}
	return nil
}

// WriteFiles writes files relative to root and returns the number of files actually written.
func (w *Writer) WriteFiles(root string, files []domain.GeneratedFile) (int, error) {
	written := 0
	for _, f := range files {
		path, err := resolve(root, f.Path)
		if err != nil {
			return written, err
		}

		if unchanged(path, f.Content) {
			continue
		}

		if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
			return written, zerr.With(zerr.Wrap(err, domain.ErrLayoutCreateFailed.Error()), "path", filepath.Dir(path))
		}
		//nolint:gosec // path is confined to root by resolve
		if err := os.WriteFile(path, f.Content, domain.FilePerm); err != nil {
			return written, zerr.With(zerr.Wrap(err, domain.ErrFileWriteFailed.Error()), "path", path)
		}
		written++
	}
	return written, nil
}

// resolve joins rel onto root and rejects paths escaping root.
func resolve(root, rel string) (string, error) {
	if filepath.IsAbs(rel) {
		return "", zerr.With(domain.ErrFileWriteFailed, "path", rel)
	}
	clean := filepath.Clean(rel)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", zerr.With(domain.ErrFileWriteFailed, "path", rel)
	}
	return filepath.Join(root, clean), nil
}

// unchanged reports whether path already holds content.
func unchanged(path string, content []byte) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if info.IsDir() || info.Size() != int64(len(content)) {
		return false
	}
	//nolint:gosec // path is confined to root by resolve
	existing, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return xxhash.Sum64(existing) == xxhash.Sum64(content)
}
