package logger

import "io"

// Exported for white-box testing.
var (
	CollectErrorEntries = collectErrorEntries
	FormatErrorEntries  = formatErrorEntries
)

// SetTerminalDetector replaces the terminal check used by FormatAuto.
func (l *Logger) SetTerminalDetector(fn func(io.Writer) bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.isTTY = fn
	l.rebuild()
}
