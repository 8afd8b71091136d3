package ports

import (
	"context"

	"go.trai.ch/recipe/internal/core/domain"
)

// GenerateInput carries everything a generator may read.
type GenerateInput struct {
	Recipe         *domain.Recipe
	Graph          *domain.Graph
	Settings       domain.BuildSettings
	Folders        domain.Folders
	CMakeGenerator string
	// PackagesRoot is the absolute directory under which package folders are expected.
	PackagesRoot string
}

// DescriptorGenerator renders the descriptor files of one generator.
//
//go:generate go run go.uber.org/mock/mockgen -source=generator.go -destination=mocks/mock_generator.go -package=mocks
type DescriptorGenerator interface {
	// Name returns the generator this implementation renders.
	Name() domain.Generator

	// Generate renders the descriptor files. It performs no I/O.
	Generate(ctx context.Context, in GenerateInput) ([]domain.GeneratedFile, error)
}

// GeneratorSet looks generators up by name.
type GeneratorSet interface {
	Lookup(name domain.Generator) (DescriptorGenerator, bool)
}
