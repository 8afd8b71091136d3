package index

import (
	"context"
	_ "embed"
	"sync"

	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

type catalogFile struct {
	Packages []PackageDTO `yaml:"packages"`
}

// Builtin serves package metadata from the catalog compiled into the binary.
type Builtin struct {
	packages map[domain.Reference]*domain.PackageInfo
}

var loadBuiltin = sync.OnceValues(func() (*Builtin, error) {
	return ParseCatalog(catalogYAML)
})

// NewBuiltin returns the index backed by the embedded catalog.
func NewBuiltin() (*Builtin, error) {
	return loadBuiltin()
}

// ParseCatalog builds an index from a YAML catalog document.
func ParseCatalog(data []byte) (*Builtin, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, domain.ErrCatalogInvalid.Error())
	}

	b := &Builtin{packages: make(map[domain.Reference]*domain.PackageInfo, len(file.Packages))}
	for i := range file.Packages {
		info, err := file.Packages[i].ToDomain()
		if err != nil {
			return nil, zerr.Wrap(err, domain.ErrCatalogInvalid.Error())
		}
		if _, dup := b.packages[info.Ref]; dup {
			return nil, zerr.With(domain.ErrCatalogInvalid, "duplicate", info.Ref.String())
		}
		b.packages[info.Ref] = info
	}
	return b, nil
}

// Lookup returns a copy of the catalog entry for ref.
func (b *Builtin) Lookup(_ context.Context, ref domain.Reference) (*domain.PackageInfo, error) {
	info, ok := b.packages[ref]
	if !ok {
		return nil, errNotFound(ref)
	}
	cp := *info
	cp.Requires = append([]domain.Dependency(nil), info.Requires...)
	cp.Components = append([]string(nil), info.Components...)
	return &cp, nil
}

// Len returns the number of catalog entries.
func (b *Builtin) Len() int {
	return len(b.packages)
}
