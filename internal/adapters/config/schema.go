package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const schemaName = "recipe.schema.json"

//go:embed recipe.schema.json
var recipeSchema []byte

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	comp := jsonschema.NewCompiler()
	if err := comp.AddResource(schemaName, bytes.NewReader(recipeSchema)); err != nil {
		return nil, err
	}
	return comp.Compile(schemaName)
})

// RecipeFile is the on-disk structure of recipe.yaml.
type RecipeFile struct {
	Version    int              `yaml:"version"`
	Name       string           `yaml:"name"`
	Settings   []string         `yaml:"settings"`
	Generators []string         `yaml:"generators"`
	Layout     string           `yaml:"layout"`
	Requires   []RequirementDTO `yaml:"requires"`
}

// RequirementDTO is one entry of the requires list. Options keep their file order.
type RequirementDTO struct {
	Ref     string    `yaml:"ref"`
	Options yaml.Node `yaml:"options"`
}

// validateDocument checks raw YAML against the embedded JSON schema.
func validateDocument(data []byte) error {
	sch, err := compileSchema()
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigInvalid.Error())
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	// Round trip through JSON so the validator sees JSON types only.
	encoded, err := json.Marshal(raw)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}
	var doc any
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	if err := sch.Validate(doc); err != nil {
		return zerr.Wrap(err, domain.ErrConfigInvalid.Error())
	}
	return nil
}
