// Package telemetry adapts OpenTelemetry tracing to the core Tracer port.
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// SpanLogger receives span completion records.
type SpanLogger interface {
	Debug(msg string, args ...any)
}

// Bridge implements sdktrace.SpanProcessor by logging every finished span at debug level.
type Bridge struct {
	log SpanLogger
}

var _ sdktrace.SpanProcessor = (*Bridge)(nil)

// NewBridge returns a new Bridge.
func NewBridge(log SpanLogger) *Bridge {
	return &Bridge{log: log}
}

// OnStart is called when a span starts.
func (b *Bridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd logs the span name, duration and status.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.log == nil || !s.SpanContext().IsValid() {
		return
	}

	args := []any{
		"span", s.Name(),
		"duration", s.EndTime().Sub(s.StartTime()).Round(time.Microsecond).String(),
	}
	for _, kv := range s.Attributes() {
		args = append(args, string(kv.Key), kv.Value.Emit())
	}

	if st := s.Status(); st.Code == codes.Error {
		desc := st.Description
		if desc == "" {
			desc = "failed"
		}
		args = append(args, "error", desc)
	}

	b.log.Debug("span finished", args...)
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}
