package domain

import (
	"slices"

	"go.trai.ch/zerr"
)

// Requirement is a single pinned dependency declaration.
type Requirement struct {
	Ref     Reference
	Options OptionSet
}

// Recipe is the immutable dependency declaration of a project.
type Recipe struct {
	Name       string
	Settings   []string
	Generators []Generator
	Requires   []Requirement
	Layout     LayoutPolicy
}

// Requirements returns the declared requirements in declaration order.
// The returned slice is a copy; callers may not mutate the recipe through it.
func (r *Recipe) Requirements() []Requirement {
	return slices.Clone(r.Requires)
}

// LayoutPolicy returns the layout convention selected by the recipe.
func (r *Recipe) LayoutPolicy() LayoutPolicy {
	return r.Layout
}

// Requirement returns the declared requirement for the named package.
func (r *Recipe) Requirement(name string) (Requirement, bool) {
	for _, req := range r.Requires {
		if req.Ref.Name == name {
			return req, true
		}
	}
	return Requirement{}, false
}

// Validate checks the recipe invariants: unique package names and at least one generator.
func (r *Recipe) Validate() error {
	seen := make(map[string]struct{}, len(r.Requires))
	for _, req := range r.Requires {
		if _, dup := seen[req.Ref.Name]; dup {
			return zerr.With(ErrDuplicateRequirement, "package", req.Ref.Name)
		}
		seen[req.Ref.Name] = struct{}{}
	}

	if len(r.Generators) == 0 {
		return ErrNoGenerators
	}
	for _, g := range r.Generators {
		if _, err := ParseGenerator(string(g)); err != nil {
			return err
		}
	}
	if _, err := ParseLayoutPolicy(string(r.Layout)); err != nil {
		return err
	}
	for _, axis := range r.Settings {
		if !slices.Contains(SettingAxes(), axis) {
			return zerr.With(ErrUnknownSetting, "setting", axis)
		}
	}
	return nil
}

// CollectionPackage is the name of the general-purpose library collection.
const CollectionPackage = "boost"

// DeclaredCollectionOptions are the feature toggles requested for the library collection.
func DeclaredCollectionOptions() CollectionOptions {
	return CollectionOptions{
		HeaderOnly:            true,
		WithoutTest:           true,
		WithoutProgramOptions: true,
		WithoutGraph:          true,
		WithoutSerialization:  true,
		WithoutWave:           true,
		WithoutLog:            false,
		WithoutRandom:         false,
	}
}

// Declared returns the project's built-in dependency declaration.
// Each call returns a fresh, equal value.
func Declared() *Recipe {
	return &Recipe{
		Name:     "gdrivecpp",
		Settings: SettingAxes(),
		Generators: []Generator{
			GeneratorCMakeDeps,
			GeneratorCMakeToolchain,
		},
		Requires: []Requirement{
			{Ref: NewReference(CollectionPackage, "1.83.0"), Options: DeclaredCollectionOptions().OptionSet()},
			{Ref: NewReference("cpr", "1.11.2")},
			{Ref: NewReference("drogon", "1.9.10")},
			{Ref: NewReference("nlohmann_json", "3.12.0")},
			{Ref: NewReference("spdlog", "1.11.0")},
			{Ref: NewReference("openssl", "3.4.1")},
			{Ref: NewReference("libiconv", "1.18")},
		},
		Layout: LayoutCMake,
	}
}
