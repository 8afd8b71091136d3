// Package config loads the dependency declaration, build profiles and environment configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/recipe/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.RecipeLoader = (*Loader)(nil)

// Loader implements ports.RecipeLoader using recipe.yaml.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads recipe.yaml from cwd. Without a recipe file the built-in declaration is used.
func (l *Loader) Load(cwd string) (*domain.Recipe, error) {
	path := filepath.Join(cwd, domain.RecipeFileName)

	// #nosec G304 -- path is the fixed recipe file name under the working directory
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Declared(), nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	recipe, err := parseRecipe(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	if recipe.Name == "" {
		recipe.Name = filepath.Base(cwd)
		l.Logger.Warn(fmt.Sprintf("%s declares no name, using %q", domain.RecipeFileName, recipe.Name))
	}
	return recipe, nil
}

// parseRecipe validates and converts the YAML document.
func parseRecipe(data []byte) (*domain.Recipe, error) {
	if err := validateDocument(data); err != nil {
		return nil, err
	}

	var file RecipeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	recipe := &domain.Recipe{
		Name:       file.Name,
		Settings:   file.Settings,
		Generators: make([]domain.Generator, 0, len(file.Generators)),
		Requires:   make([]domain.Requirement, 0, len(file.Requires)),
		Layout:     domain.LayoutCMake,
	}
	if recipe.Settings == nil {
		recipe.Settings = domain.SettingAxes()
	}
	if len(file.Generators) == 0 {
		file.Generators = []string{domain.GeneratorCMakeDeps.String(), domain.GeneratorCMakeToolchain.String()}
	}
	for _, name := range file.Generators {
		g, err := domain.ParseGenerator(name)
		if err != nil {
			return nil, err
		}
		recipe.Generators = append(recipe.Generators, g)
	}
	if file.Layout != "" {
		layout, err := domain.ParseLayoutPolicy(file.Layout)
		if err != nil {
			return nil, err
		}
		recipe.Layout = layout
	}

	for i := range file.Requires {
		req, err := convertRequirement(&file.Requires[i])
		if err != nil {
			return nil, zerr.With(err, "requirement", file.Requires[i].Ref)
		}
		recipe.Requires = append(recipe.Requires, req)
	}

	if err := recipe.Validate(); err != nil {
		return nil, err
	}
	return recipe, nil
}

func convertRequirement(dto *RequirementDTO) (domain.Requirement, error) {
	ref, err := domain.ParseReference(dto.Ref)
	if err != nil {
		return domain.Requirement{}, err
	}

	options, err := decodeOptions(&dto.Options)
	if err != nil {
		return domain.Requirement{}, err
	}

	if ref.Name == domain.CollectionPackage && options.Len() > 0 {
		collection, err := domain.ParseCollectionOptions(options)
		if err != nil {
			return domain.Requirement{}, err
		}
		options = collection.OptionSet()
	}

	return domain.Requirement{Ref: ref, Options: options}, nil
}

// decodeOptions reads a YAML mapping of booleans, keeping key order.
func decodeOptions(node *yaml.Node) (domain.OptionSet, error) {
	if node.Kind == 0 {
		return domain.OptionSet{}, nil
	}
	if node.Kind != yaml.MappingNode {
		return domain.OptionSet{}, zerr.With(domain.ErrConfigParseFailed, "line", node.Line)
	}

	opts := make([]domain.Option, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		var b bool
		if err := value.Decode(&b); err != nil {
			return domain.OptionSet{}, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "option", key.Value)
		}
		opts = append(opts, domain.Option{Name: key.Value, Value: b})
	}
	return domain.NewOptionSet(opts...)
}
