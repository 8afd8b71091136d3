package ports

import (
	"context"

	"go.trai.ch/recipe/internal/core/domain"
)

// PackageIndex answers metadata queries for pinned package versions.
//
//go:generate go run go.uber.org/mock/mockgen -source=index.go -destination=mocks/mock_index.go -package=mocks
type PackageIndex interface {
	// Lookup returns the metadata of the exact package version.
	// It returns domain.ErrVersionNotFound when the version is not published.
	Lookup(ctx context.Context, ref domain.Reference) (*domain.PackageInfo, error)
}
