// Package build holds build-time information.
package build

// Version is the application version, set at build time via ldflags.
var Version = "dev"

// Commit is the git commit the binary was built from.
var Commit = "none"

// Date is the build date.
var Date = "unknown"
