package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/recipe/internal/adapters/logger"
)

func TestPrettyHandler_Levels(t *testing.T) {
	tests := []struct {
		name       string
		level      slog.Level
		msg        string
		goldenName string
	}{
		{name: "info", level: slog.LevelInfo, msg: "wrote 14 files", goldenName: "handler_info"},
		{name: "warn", level: slog.LevelWarn, msg: "direct pin overrides transitive request", goldenName: "handler_warn"},
		{name: "error", level: slog.LevelError, msg: "install failed", goldenName: "handler_error"},
		{name: "debug filtered", level: slog.LevelDebug, msg: "lookup boost/1.83.0", goldenName: "handler_debug_filtered"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			lg := slog.New(logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
			lg.Log(t.Context(), tt.level, tt.msg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_AttrsAndGroup(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	h := logger.NewPrettyHandler(buf, nil).
		WithAttrs([]slog.Attr{slog.String("generator", "CMakeDeps")}).
		WithGroup("pkg")
	slog.New(h).Info("generated", "name", "zlib")

	assert.Equal(t, "generated generator=CMakeDeps pkg.name=zlib\n", buf.String())
}

func TestPrettyHandler_NestedGroups(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	h := logger.NewPrettyHandler(buf, nil).
		WithGroup("graph").
		WithAttrs([]slog.Attr{slog.Int("size", 7)}).
		WithGroup("")
	slog.New(h).Warn("pinned", slog.Group("pkg", "name", "zlib", "version", "1.3.1"))

	assert.Equal(t, "! pinned graph.size=7 graph.pkg.name=zlib graph.pkg.version=1.3.1\n", buf.String())
}

func TestPrettyHandler_Debug(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := slog.New(logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	lg.Debug("cache hit")

	assert.Equal(t, "• cache hit\n", buf.String())
}
