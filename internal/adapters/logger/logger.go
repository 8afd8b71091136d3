// Package logger implements a logging adapter using log/slog.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/recipe/internal/adapters/detector"
	"go.trai.ch/recipe/internal/core/ports"
)

// Format selects how log records are rendered.
type Format string

const (
	// FormatAuto picks pretty output on a terminal and plain text otherwise.
	FormatAuto Format = "auto"
	// FormatPretty renders colored, human-oriented lines.
	FormatPretty Format = "pretty"
	// FormatText uses slog's key=value text handler.
	FormatText Format = "text"
	// FormatJSON uses slog's JSON handler.
	FormatJSON Format = "json"
)

// ParseFormat converts a format name. Unknown names fall back to FormatAuto.
func ParseFormat(s string) Format {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPretty, FormatText, FormatJSON:
		return f
	default:
		return FormatAuto
	}
}

// messager describes an error that can report its own message without the chain.
// zerr.Error implements it.
type messager interface {
	Message() string
}

// metadataer describes an error carrying structured metadata.
type metadataer interface {
	Metadata() map[string]any
}

// Logger implements ports.Logger using log/slog.
type Logger struct {
	mu      sync.RWMutex
	logger  *slog.Logger
	format  Format
	verbose bool
	output  io.Writer
	isTTY   func(io.Writer) bool
}

var _ ports.Logger = (*Logger)(nil)

// New creates a Logger writing to stderr in auto format.
func New() *Logger {
	l := &Logger{
		format: FormatAuto,
		output: os.Stderr,
		isTTY:  detector.Interactive,
	}
	l.rebuild()
	return l
}

// SetOutput updates the output destination. A nil writer means stderr.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.rebuild()
}

// SetFormat switches the record format.
func (l *Logger) SetFormat(f Format) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.format = f
	l.rebuild()
}

// SetVerbose enables debug records.
func (l *Logger) SetVerbose(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.verbose = enable
	l.rebuild()
}

// Verbose reports whether debug records are enabled.
func (l *Logger) Verbose() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.verbose
}

// rebuild replaces the slog handler. Callers must hold the write lock.
func (l *Logger) rebuild() {
	level := slog.LevelInfo
	if l.verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch l.effectiveFormat() {
	case FormatJSON:
		handler = slog.NewJSONHandler(l.output, opts)
	case FormatText:
		handler = slog.NewTextHandler(l.output, opts)
	default:
		handler = NewPrettyHandler(l.output, opts)
	}
	l.logger = slog.New(handler)
}

func (l *Logger) effectiveFormat() Format {
	if l.format != FormatAuto {
		return l.format
	}
	if l.isTTY != nil && l.isTTY(l.output) {
		return FormatPretty
	}
	return FormatText
}

// Debug logs a message that is only shown in verbose mode.
func (l *Logger) Debug(msg string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Debug(msg, args...)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error with its cause chain.
func (l *Logger) Error(err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if err == nil {
		return
	}

	entries := collectErrorEntries(err)
	if l.effectiveFormat() != FormatPretty {
		args := make([]any, 0, 2)
		args = append(args, "error", entries[0].Message)
		for _, k := range slices.Sorted(maps.Keys(entries[0].Metadata)) {
			args = append(args, k, entries[0].Metadata[k])
		}
		causes := make([]string, 0, len(entries)-1)
		for _, e := range entries[1:] {
			causes = append(causes, e.Message)
		}
		if len(causes) > 0 {
			args = append(args, "causes", causes)
		}
		l.logger.Error("operation failed", args...)
		return
	}

	l.logger.Error(formatErrorEntries(entries))
}

// ErrorEntry is one link of an error chain.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// collectErrorEntries walks the chain. zerr links contribute their own message and metadata;
// the first foreign error contributes its full text and ends the walk.
// errors.Join trees are flattened depth-first.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry
	current := err

	for current != nil {
		if joined, ok := current.(interface{ Unwrap() []error }); ok {
			for _, e := range joined.Unwrap() {
				entries = append(entries, collectErrorEntries(e)...)
			}
			break
		}

		m, ok := current.(messager)
		if !ok {
			entries = append(entries, ErrorEntry{Message: current.Error()})
			break
		}

		entry := ErrorEntry{Message: m.Message()}
		if md, ok := current.(metadataer); ok && len(md.Metadata()) > 0 {
			entry.Metadata = md.Metadata()
		}
		entries = append(entries, entry)
		current = errors.Unwrap(current)
	}

	return entries
}

// formatErrorEntries renders entries as an "Error:" headline followed by "Caused by:" links.
// Metadata is printed beneath its entry, sorted by key.
func formatErrorEntries(entries []ErrorEntry) string {
	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		prefix, indent := "    → ", "      "
		if i == 0 {
			prefix, indent = "Error: ", "       "
		} else if i == 1 {
			lines = append(lines, "", "  Caused by:")
		}

		lines = append(lines, prefix+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, indent+line)
		}
		for _, k := range slices.Sorted(maps.Keys(entry.Metadata)) {
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, k, entry.Metadata[k]))
		}
	}

	return strings.Join(lines, "\n")
}
