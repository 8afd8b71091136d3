package domain

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Dependency is a requirement a package places on another package, as published by the index.
type Dependency struct {
	Ref     Reference
	Options OptionSet
}

// PackageInfo is the metadata the package index publishes for one package version.
type PackageInfo struct {
	Ref         Reference
	Description string
	License     string
	HeaderOnly  bool
	// Defaults is the option schema: every accepted option with its upstream default.
	Defaults   OptionSet
	Requires   []Dependency
	CMakeFile  string
	CMakeName  string
	Components []string
}

// IsHeaderOnly reports whether the package builds no binaries with the given options.
func (p *PackageInfo) IsHeaderOnly(options OptionSet) bool {
	if p.HeaderOnly {
		return true
	}
	v, ok := options.Get(OptHeaderOnly)
	return ok && v
}

// CMakeFileName returns the CMake config file name, defaulting to the package name.
func (p *PackageInfo) CMakeFileName() string {
	if p.CMakeFile != "" {
		return p.CMakeFile
	}
	return p.Ref.Name
}

// CMakeTargetName returns the main imported target, defaulting to name::name.
func (p *PackageInfo) CMakeTargetName() string {
	if p.CMakeName != "" {
		return p.CMakeName
	}
	return p.Ref.Name + "::" + p.Ref.Name
}

// ResolvedPackage is a node of the resolved dependency graph.
type ResolvedPackage struct {
	Ref       Reference
	PackageID string
	Options   OptionSet
	Requires  []string
	Direct    bool
	Info      PackageInfo
}

// ComputePackageID derives the binary package identifier from everything that affects the binary.
// Header-only packages ignore build settings and dependency binaries.
func ComputePackageID(ref Reference, options OptionSet, settings BuildSettings, headerOnly bool, depIDs []string) string {
	var b strings.Builder
	b.WriteString(ref.String())
	b.WriteByte('|')
	b.WriteString(options.canonical())
	if !headerOnly {
		b.WriteByte('|')
		b.WriteString(settings.String())
		for _, id := range depIDs {
			b.WriteByte('|')
			b.WriteString(id)
		}
	}
	return fmt.Sprintf("%016x", xxhash.Sum64String(b.String()))
}
