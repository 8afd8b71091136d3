package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/recipe/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func newLogger(t *testing.T, format logger.Format) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	l := logger.New()
	l.SetOutput(buf)
	l.SetFormat(format)
	return l, buf
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want logger.Format
	}{
		{"pretty", logger.FormatPretty},
		{"TEXT", logger.FormatText},
		{" json ", logger.FormatJSON},
		{"auto", logger.FormatAuto},
		{"", logger.FormatAuto},
		{"xml", logger.FormatAuto},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.ParseFormat(tt.in))
		})
	}
}

func TestLogger_Pretty(t *testing.T) {
	l, buf := newLogger(t, logger.FormatPretty)

	l.Info("resolved 12 packages")
	l.Warn("cpr requests libcurl/8.11.0")

	assert.Equal(t, "resolved 12 packages\n! cpr requests libcurl/8.11.0\n", buf.String())
}

func TestLogger_PrettyError(t *testing.T) {
	l, buf := newLogger(t, logger.FormatPretty)

	inner := zerr.With(zerr.New("package version not found in index"), "package", "boost/9.9.9")
	l.Error(zerr.Wrap(inner, "dependency resolution failed"))

	want := "✗ Error: dependency resolution failed\n\n" +
		"  Caused by:\n" +
		"    → package version not found in index\n" +
		"      package: boost/9.9.9\n"
	assert.Equal(t, want, buf.String())
}

func TestLogger_ErrorNil(t *testing.T) {
	l, buf := newLogger(t, logger.FormatPretty)
	l.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_JSONError(t *testing.T) {
	l, buf := newLogger(t, logger.FormatJSON)

	err := zerr.With(zerr.New("option conflict"), "option", "shared")
	l.Error(zerr.Wrap(err, "install failed"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "operation failed", record["msg"])
	assert.Equal(t, "install failed", record["error"])
	assert.Equal(t, []any{"option conflict"}, record["causes"])
}

func TestLogger_TextIncludesMetadata(t *testing.T) {
	l, buf := newLogger(t, logger.FormatText)

	l.Error(zerr.With(zerr.New("unknown option"), "option", "header_onyl"))

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, `error="unknown option"`)
	assert.Contains(t, out, "option=header_onyl")
}

func TestLogger_DebugNeedsVerbose(t *testing.T) {
	l, buf := newLogger(t, logger.FormatText)

	l.Debug("span finished", "span", "resolve")
	assert.Empty(t, buf.String())
	assert.False(t, l.Verbose())

	l.SetVerbose(true)
	l.Debug("span finished", "span", "resolve")
	assert.True(t, l.Verbose())
	assert.Contains(t, buf.String(), "span=resolve")
}

func TestLogger_AutoFormat(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	l := logger.New()
	l.SetOutput(buf)

	l.SetTerminalDetector(func(io.Writer) bool { return false })
	l.Info("plain")
	assert.Contains(t, buf.String(), "level=INFO")

	buf.Reset()
	l.SetTerminalDetector(func(io.Writer) bool { return true })
	l.Info("pretty")
	assert.Equal(t, "pretty\n", buf.String())
}

func TestCollectErrorEntries(t *testing.T) {
	t.Run("standard error", func(t *testing.T) {
		entries := logger.CollectErrorEntries(errors.New("simple"))
		require.Len(t, entries, 1)
		assert.Equal(t, "simple", entries[0].Message)
		assert.Nil(t, entries[0].Metadata)
	})

	t.Run("zerr chain with metadata", func(t *testing.T) {
		inner := zerr.With(zerr.New("inner"), "inner_key", "inner_val")
		outer := zerr.With(zerr.Wrap(inner, "outer"), "outer_key", "outer_val")

		entries := logger.CollectErrorEntries(outer)
		require.Len(t, entries, 2)
		assert.Equal(t, "outer", entries[0].Message)
		assert.Equal(t, map[string]any{"outer_key": "outer_val"}, entries[0].Metadata)
		assert.Equal(t, "inner", entries[1].Message)
		assert.Equal(t, map[string]any{"inner_key": "inner_val"}, entries[1].Metadata)
	})

	t.Run("joined errors are flattened", func(t *testing.T) {
		joined := errors.Join(errors.New("first"), errors.New("second"))
		entries := logger.CollectErrorEntries(joined)
		require.Len(t, entries, 2)
		assert.Equal(t, "first", entries[0].Message)
		assert.Equal(t, "second", entries[1].Message)
	})

	t.Run("nil", func(t *testing.T) {
		assert.Empty(t, logger.CollectErrorEntries(nil))
	})
}

func TestFormatErrorEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []logger.ErrorEntry
		want    string
	}{
		{
			name:    "single entry",
			entries: []logger.ErrorEntry{{Message: "single error"}},
			want:    "Error: single error",
		},
		{
			name:    "three entries",
			entries: []logger.ErrorEntry{{Message: "first"}, {Message: "second"}, {Message: "third"}},
			want:    "Error: first\n\n  Caused by:\n    → second\n    → third",
		},
		{
			name: "metadata sorted",
			entries: []logger.ErrorEntry{{
				Message:  "main",
				Metadata: map[string]any{"zeta": 1, "alpha": "a"},
			}},
			want: "Error: main\n       alpha: a\n       zeta: 1",
		},
		{
			name:    "multiline cause",
			entries: []logger.ErrorEntry{{Message: "main"}, {Message: "line1\nline2"}},
			want:    "Error: main\n\n  Caused by:\n    → line1\n      line2",
		},
		{
			name:    "empty",
			entries: nil,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.FormatErrorEntries(tt.entries))
		})
	}
}
