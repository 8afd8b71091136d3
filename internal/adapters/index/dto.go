// Package index answers package metadata queries from a built-in catalog and a remote index.
package index

import (
	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/zerr"
)

// OptionDTO is an option default or an option request.
type OptionDTO struct {
	Name  string `json:"name" yaml:"name"`
	Value bool   `json:"value" yaml:"value"`
}

// DependencyDTO is a requirement one package places on another.
type DependencyDTO struct {
	Ref     string      `json:"ref" yaml:"ref"`
	Options []OptionDTO `json:"options,omitempty" yaml:"options"`
}

// CMakeDTO describes how consumers find the package from CMake.
type CMakeDTO struct {
	FileName   string   `json:"file_name,omitempty" yaml:"file_name"`
	Target     string   `json:"target,omitempty" yaml:"target"`
	Components []string `json:"components,omitempty" yaml:"components"`
}

// PackageDTO is the wire and catalog representation of domain.PackageInfo.
type PackageDTO struct {
	Ref         string          `json:"ref" yaml:"ref"`
	Description string          `json:"description,omitempty" yaml:"description"`
	License     string          `json:"license,omitempty" yaml:"license"`
	HeaderOnly  bool            `json:"header_only,omitempty" yaml:"header_only"`
	Options     []OptionDTO     `json:"options,omitempty" yaml:"options"`
	Requires    []DependencyDTO `json:"requires,omitempty" yaml:"requires"`
	CMake       CMakeDTO        `json:"cmake" yaml:"cmake"`
}

func toOptionSet(dtos []OptionDTO) (domain.OptionSet, error) {
	opts := make([]domain.Option, len(dtos))
	for i, o := range dtos {
		opts[i] = domain.Option{Name: o.Name, Value: o.Value}
	}
	return domain.NewOptionSet(opts...)
}

// ToDomain converts and validates the DTO.
func (d *PackageDTO) ToDomain() (*domain.PackageInfo, error) {
	ref, err := domain.ParseReference(d.Ref)
	if err != nil {
		return nil, err
	}

	defaults, err := toOptionSet(d.Options)
	if err != nil {
		return nil, zerr.With(err, "package", d.Ref)
	}

	info := &domain.PackageInfo{
		Ref:         ref,
		Description: d.Description,
		License:     d.License,
		HeaderOnly:  d.HeaderOnly,
		Defaults:    defaults,
		CMakeFile:   d.CMake.FileName,
		CMakeName:   d.CMake.Target,
		Components:  d.CMake.Components,
	}

	for _, dep := range d.Requires {
		depRef, err := domain.ParseReference(dep.Ref)
		if err != nil {
			return nil, zerr.With(err, "package", d.Ref)
		}
		requested, err := toOptionSet(dep.Options)
		if err != nil {
			return nil, zerr.With(err, "package", d.Ref)
		}
		info.Requires = append(info.Requires, domain.Dependency{Ref: depRef, Options: requested})
	}

	return info, nil
}

func errNotFound(ref domain.Reference) error {
	return zerr.With(zerr.Wrap(domain.ErrVersionNotFound, "cannot resolve "+ref.String()), "package", ref.String())
}
