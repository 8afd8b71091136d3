package ports

import "go.trai.ch/recipe/internal/core/domain"

// RecipeLoader defines the interface for loading the dependency declaration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type RecipeLoader interface {
	// Load reads the recipe from the given working directory.
	// When no recipe file exists the built-in declaration is returned.
	Load(cwd string) (*domain.Recipe, error)
}

// Profile is a named set of build settings plus tool configuration.
type Profile struct {
	Settings       domain.BuildSettings
	CMakeGenerator string
}

// ProfileLoader defines the interface for loading build profiles.
type ProfileLoader interface {
	// Load reads the profile at path.
	Load(path string) (Profile, error)
}
