package domain

import "go.trai.ch/zerr"

// Generator names an output generator that emits descriptor files for the build system.
type Generator string

const (
	// GeneratorCMakeDeps emits one CMake config package per resolved dependency.
	GeneratorCMakeDeps Generator = "CMakeDeps"
	// GeneratorCMakeToolchain emits the CMake toolchain file and presets.
	GeneratorCMakeToolchain Generator = "CMakeToolchain"
)

// ParseGenerator converts a generator name into a Generator.
func ParseGenerator(name string) (Generator, error) {
	switch g := Generator(name); g {
	case GeneratorCMakeDeps, GeneratorCMakeToolchain:
		return g, nil
	default:
		return "", zerr.With(ErrUnknownGenerator, "generator", name)
	}
}

// String returns the generator name.
func (g Generator) String() string {
	return string(g)
}

// GeneratedFile is a descriptor file produced by a generator.
// Path is relative to the source folder.
type GeneratedFile struct {
	Path      string
	Content   []byte
	Generator Generator
}
