package logger

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/recipe/internal/ui/output"
	"go.trai.ch/recipe/internal/ui/style"
)

// PrettyHandler is a slog.Handler producing colored single-line records for terminals.
// Attributes are rendered as key=value, qualified by the groups open when they were added.
type PrettyHandler struct {
	out    *termenv.Output
	level  slog.Leveler
	bound  []string
	prefix string
}

// NewPrettyHandler creates a PrettyHandler writing to w.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	h := &PrettyHandler{out: output.New(w), level: slog.LevelInfo}
	if opts != nil && opts.Level != nil {
		h.level = opts.Level
	}
	return h
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and writes the record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	glyph, color := levelStyle(r.Level)

	parts := make([]string, 0, 2+len(h.bound)+r.NumAttrs())
	if glyph != "" {
		parts = append(parts, glyph)
	}
	parts = append(parts, r.Message)
	parts = append(parts, h.bound...)
	r.Attrs(func(attr slog.Attr) bool {
		parts = appendAttr(parts, h.prefix, attr)
		return true
	})

	line := h.out.String(strings.Join(parts, " ")).Foreground(termenv.RGBColor(string(color)))
	_, err := h.out.WriteString(line.String() + "\n")
	return err
}

// WithAttrs returns a Handler that renders attrs on every record.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.bound = slices.Clip(h.bound)
	for _, attr := range attrs {
		next.bound = appendAttr(next.bound, h.prefix, attr)
	}
	return &next
}

// WithGroup returns a Handler that qualifies later attributes with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

func levelStyle(level slog.Level) (string, lipgloss.Color) {
	switch {
	case level >= slog.LevelError:
		return style.Cross, style.Red
	case level >= slog.LevelWarn:
		return style.Warning, style.Amber
	case level < slog.LevelInfo:
		return style.Bullet, style.Muted
	default:
		return "", style.Accent
	}
}

func appendAttr(parts []string, prefix string, attr slog.Attr) []string {
	if attr.Equal(slog.Attr{}) {
		return parts
	}
	if attr.Value.Kind() == slog.KindGroup {
		if attr.Key != "" {
			prefix += attr.Key + "."
		}
		for _, a := range attr.Value.Group() {
			parts = appendAttr(parts, prefix, a)
		}
		return parts
	}
	return append(parts, prefix+attr.Key+"="+attr.Value.Resolve().String())
}
