package index

import (
	"context"
	"errors"

	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/recipe/internal/core/ports"
)

// Chain consults several indexes in order and returns the first hit.
type Chain struct {
	indexes []ports.PackageIndex
}

// NewChain creates a Chain. Earlier indexes take precedence.
func NewChain(indexes ...ports.PackageIndex) *Chain {
	return &Chain{indexes: indexes}
}

// Lookup asks each index in turn. Only a not-found answer moves on to the next index.
func (c *Chain) Lookup(ctx context.Context, ref domain.Reference) (*domain.PackageInfo, error) {
	for _, idx := range c.indexes {
		info, err := idx.Lookup(ctx, ref)
		if err == nil {
			return info, nil
		}
		if !errors.Is(err, domain.ErrVersionNotFound) {
			return nil, err
		}
	}
	return nil, errNotFound(ref)
}
