package config

import (
	"dario.cat/mergo"
	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/zerr"
)

// SettingsBuilder merges partial build settings. Layers are added from the highest
// priority to the lowest; a later layer only fills axes that are still empty.
// A compiler version only follows the compiler it was declared with.
type SettingsBuilder struct {
	layers []domain.BuildSettings
	err    error
}

// NewSettingsBuilder creates an empty builder.
func NewSettingsBuilder() *SettingsBuilder {
	return &SettingsBuilder{}
}

// WithAssignments adds a layer parsed from key=value assignments.
func (b *SettingsBuilder) WithAssignments(assignments []string) *SettingsBuilder {
	var s domain.BuildSettings
	if err := s.ParseAssignments(assignments); err != nil {
		b.err = err
		return b
	}
	b.layers = append(b.layers, s)
	return b
}

// WithLayer adds a partial settings layer.
func (b *SettingsBuilder) WithLayer(s domain.BuildSettings) *SettingsBuilder {
	b.layers = append(b.layers, s)
	return b
}

// Build merges the layers and validates the result.
func (b *SettingsBuilder) Build() (domain.BuildSettings, error) {
	if b.err != nil {
		return domain.BuildSettings{}, b.err
	}

	var merged domain.BuildSettings
	for _, layer := range b.layers {
		if merged.Compiler != "" && layer.Compiler != "" && layer.Compiler != merged.Compiler {
			layer.CompilerVersion = ""
		}
		if err := mergo.Merge(&merged, layer); err != nil {
			return domain.BuildSettings{}, zerr.Wrap(err, domain.ErrSettingsMergeFailed.Error())
		}
	}

	if err := merged.Validate(); err != nil {
		return domain.BuildSettings{}, err
	}
	return merged, nil
}
