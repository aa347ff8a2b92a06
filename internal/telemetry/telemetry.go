// Package telemetry defines the logging, metrics, and tracing interfaces used
// throughout the coordination server, plus clue/OTEL-backed implementations.
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type (
	// Logger emits structured, leveled log lines keyed by alternating
	// key/value pairs, the same calling convention used throughout the
	// coordinator and graph packages.
	Logger interface {
		Debug(ctx context.Context, msg string, keyvals ...any)
		Info(ctx context.Context, msg string, keyvals ...any)
		Warn(ctx context.Context, msg string, keyvals ...any)
		Error(ctx context.Context, msg string, keyvals ...any)
	}

	// Metrics records counters, timers, and gauges tagged with string
	// key/value pairs.
	Metrics interface {
		IncCounter(name string, value float64, tags ...string)
		RecordTimer(name string, duration time.Duration, tags ...string)
		RecordGauge(name string, value float64, tags ...string)
	}

	// Tracer starts and retrieves spans from a context.
	Tracer interface {
		Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, Span)
		Span(ctx context.Context) Span
	}

	// Span is the subset of an OTEL span used by this server.
	Span interface {
		End(opts ...trace.SpanEndOption)
		AddEvent(name string, attrs ...any)
		SetStatus(code codes.Code, description string)
		RecordError(err error, opts ...trace.EventOption)
	}
)

// noopLogger discards every call. Used when the caller does not wire a real
// logger (primarily in tests).
type noopLogger struct{}

// NewNoopLogger returns a Logger that discards all output.
func NewNoopLogger() Logger { return noopLogger{} }

func (noopLogger) Debug(context.Context, string, ...any) {}
func (noopLogger) Info(context.Context, string, ...any)  {}
func (noopLogger) Warn(context.Context, string, ...any)  {}
func (noopLogger) Error(context.Context, string, ...any) {}

// noopMetrics discards every recorded metric. Used when the caller does not
// wire a real recorder (primarily in tests).
type noopMetrics struct{}

// NewNoopMetrics returns a Metrics recorder that discards everything.
func NewNoopMetrics() Metrics { return noopMetrics{} }

func (noopMetrics) IncCounter(string, float64, ...string)       {}
func (noopMetrics) RecordTimer(string, time.Duration, ...string) {}
func (noopMetrics) RecordGauge(string, float64, ...string)      {}

// noopTracer creates spans that record nothing. Used when the caller does
// not wire a real tracer (primarily in tests).
type noopTracer struct{}

// NewNoopTracer returns a Tracer that creates no-op spans.
func NewNoopTracer() Tracer { return noopTracer{} }

func (noopTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, Span) {
	return ctx, noopSpan{}
}
func (noopTracer) Span(ctx context.Context) Span { return noopSpan{} }

type noopSpan struct{}

func (noopSpan) End(opts ...trace.SpanEndOption)               {}
func (noopSpan) AddEvent(name string, attrs ...any)             {}
func (noopSpan) SetStatus(code codes.Code, description string) {}
func (noopSpan) RecordError(err error, opts ...trace.EventOption) {}
