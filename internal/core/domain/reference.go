// Package domain contains the core types of the dependency declaration: requirements,
// options, build settings, layout, the resolved dependency graph and the lockfile.
package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// rangeMarkers are characters that only appear in version ranges, never in exact pins.
const rangeMarkers = "[]<>=*~^, "

// Reference identifies a package at an exact version (e.g., "boost/1.83.0").
type Reference struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`
}

// NewReference creates a Reference without validation.
func NewReference(name, version string) Reference {
	return Reference{Name: name, Version: version}
}

// ParseReference parses a "name/version" string into a Reference.
// Version ranges are rejected so resolution stays deterministic.
func ParseReference(s string) (Reference, error) {
	name, version, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok || name == "" || version == "" || strings.Contains(version, "/") {
		return Reference{}, zerr.With(ErrInvalidReference, "reference", s)
	}
	if !isPackageName(name) {
		return Reference{}, zerr.With(ErrInvalidReference, "reference", s)
	}
	if strings.ContainsAny(version, rangeMarkers) {
		return Reference{}, zerr.With(ErrVersionRange, "reference", s)
	}
	return Reference{Name: name, Version: version}, nil
}

// String renders the reference as name/version.
func (r Reference) String() string {
	return r.Name + "/" + r.Version
}

func isPackageName(name string) bool {
	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_' || c == '-' || c == '.' || c == '+':
		default:
			return false
		}
	}
	return true
}
