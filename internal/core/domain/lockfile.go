package domain

import (
	"slices"

	"go.trai.ch/zerr"
)

// LockfileVersion is the current lockfile format version.
const LockfileVersion = 1

// Lockfile is a reproducible snapshot of a resolved dependency graph.
type Lockfile struct {
	// Version is the lockfile format version.
	Version int `json:"version"`

	// Settings are the build settings the graph was resolved for.
	Settings BuildSettings `json:"settings"`

	// Packages lists every resolved package in graph insertion order.
	Packages []LockedPackage `json:"packages"`
}

// LockedPackage records one resolved package with its effective options.
type LockedPackage struct {
	Ref       string    `json:"ref"`
	PackageID string    `json:"package_id"`
	Direct    bool      `json:"direct,omitempty"`
	Options   OptionSet `json:"options"`
	Requires  []string  `json:"requires,omitempty"`
}

// NewLockfile snapshots the graph.
func NewLockfile(g *Graph, settings BuildSettings) *Lockfile {
	lock := &Lockfile{
		Version:  LockfileVersion,
		Settings: settings,
		Packages: make([]LockedPackage, 0, g.Len()),
	}
	for p := range g.Packages() {
		lock.Packages = append(lock.Packages, LockedPackage{
			Ref:       p.Ref.String(),
			PackageID: p.PackageID,
			Direct:    p.Direct,
			Options:   p.Options,
			Requires:  slices.Clone(p.Requires),
		})
	}
	return lock
}

// Verify compares a freshly resolved lockfile against this one.
// It returns ErrLockMismatch describing the first difference.
func (l *Lockfile) Verify(resolved *Lockfile) error {
	if l.Version != resolved.Version {
		return zerr.With(ErrLockMismatch, "lock_version", l.Version)
	}
	if l.Settings != resolved.Settings {
		err := zerr.With(ErrLockMismatch, "locked_settings", l.Settings.String())
		return zerr.With(err, "resolved_settings", resolved.Settings.String())
	}

	locked := make(map[string]LockedPackage, len(l.Packages))
	for _, p := range l.Packages {
		locked[p.Ref] = p
	}
	for _, p := range resolved.Packages {
		want, ok := locked[p.Ref]
		if !ok {
			return zerr.With(ErrLockMismatch, "unlocked_package", p.Ref)
		}
		if want.PackageID != p.PackageID || !want.Options.Equal(p.Options) {
			err := zerr.With(ErrLockMismatch, "package", p.Ref)
			err = zerr.With(err, "locked_id", want.PackageID)
			return zerr.With(err, "resolved_id", p.PackageID)
		}
		delete(locked, p.Ref)
	}
	for _, p := range l.Packages {
		if _, stale := locked[p.Ref]; stale {
			return zerr.With(ErrLockMismatch, "stale_package", p.Ref)
		}
	}
	return nil
}
