package domain

import (
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
)

const (
	// HomeDirName is the name of the internal workspace directory.
	HomeDirName = ".recipe"

	// CacheDirName is the name of the cache directory.
	CacheDirName = "cache"

	// IndexDirName is the name of the package index cache directory.
	IndexDirName = "index"

	// PackagesDirName is the name of the directory where package folders are expected.
	PackagesDirName = "p"

	// RecipeFileName is the name of the recipe declaration file.
	RecipeFileName = "recipe.yaml"

	// LockFileName is the name of the lockfile.
	LockFileName = "recipe.lock"

	// EnvFileName is the name of the optional dotenv file.
	EnvFileName = ".env"

	// BuildDirName is the top-level build folder of the cmake layout.
	BuildDirName = "build"

	// GeneratorsDirName is the folder, inside the build folder, receiving generator output.
	GeneratorsDirName = "generators"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultIndexCachePath returns the index cache path inside the given home directory.
func DefaultIndexCachePath(home string) string {
	return filepath.Join(home, CacheDirName, IndexDirName)
}

// DefaultPackagesPath returns the package store path inside the given home directory.
func DefaultPackagesPath(home string) string {
	return filepath.Join(home, PackagesDirName)
}

// LayoutPolicy selects a conventional source/build/generators folder layout.
type LayoutPolicy string

// LayoutCMake is the standard CMake layout: sources at the root, one build folder per build type.
const LayoutCMake LayoutPolicy = "cmake"

// ParseLayoutPolicy converts a layout name into a LayoutPolicy.
func ParseLayoutPolicy(name string) (LayoutPolicy, error) {
	if LayoutPolicy(name) == LayoutCMake {
		return LayoutCMake, nil
	}
	return "", zerr.With(ErrUnknownLayout, "layout", name)
}

// Folders is the directory convention a layout establishes. Paths are relative to the source root.
type Folders struct {
	Source     string `json:"source"`
	Build      string `json:"build"`
	Generators string `json:"generators"`
	Includes   string `json:"includes"`
}

// IsMultiConfig reports whether a CMake generator builds several configurations in one tree.
func IsMultiConfig(cmakeGenerator string) bool {
	return strings.Contains(cmakeGenerator, "Multi-Config") ||
		strings.HasPrefix(cmakeGenerator, "Visual Studio") ||
		cmakeGenerator == "Xcode"
}

// Folders computes the folder convention for the given settings and CMake generator.
// It is pure: the same inputs always give the same folders.
func (p LayoutPolicy) Folders(settings BuildSettings, cmakeGenerator string) (Folders, error) {
	if p != LayoutCMake {
		return Folders{}, zerr.With(ErrUnknownLayout, "layout", string(p))
	}

	build := BuildDirName
	if !IsMultiConfig(cmakeGenerator) {
		if settings.BuildType == "" {
			return Folders{}, ErrMissingBuildType
		}
		build = filepath.Join(BuildDirName, settings.BuildType)
	}

	return Folders{
		Source:     ".",
		Build:      build,
		Generators: filepath.Join(build, GeneratorsDirName),
		Includes:   "include",
	}, nil
}

// DefaultCMakeGenerator returns the CMake generator used when none is configured.
func DefaultCMakeGenerator(settings BuildSettings) string {
	if settings.Compiler == "msvc" {
		return "Visual Studio 17 2022"
	}
	return "Unix Makefiles"
}
