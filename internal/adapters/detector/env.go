// Package detector inspects the environment to pick an output style.
package detector

import (
	"io"
	"os"

	"golang.org/x/term"
)

// IsTerminal reports whether w is attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // file descriptors fit in int
}

// IsCI reports whether a CI environment variable is set to a truthy value.
func IsCI() bool {
	ci := os.Getenv("CI")
	return ci == "true" || ci == "1"
}

// Interactive reports whether decorated output should be written to w.
// CI environments are never interactive, even when they allocate a pseudo terminal.
func Interactive(w io.Writer) bool {
	return IsTerminal(w) && !IsCI()
}
