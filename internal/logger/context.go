package logger

import (
	"context"
	"time"
)

// contextKey is a private type for context keys to avoid collisions
type contextKey struct{}

// logContextKey is the key for LogContext in context.Context
var logContextKey = contextKey{}

// LogContext holds request-scoped logging context for a single prover
// operation: which handle it touched, which connection/thread it rode on,
// and (once telemetry is wired) the trace it belongs to.
type LogContext struct {
	TraceID      string // OpenTelemetry trace ID
	SpanID       string // OpenTelemetry span ID
	Operation    string // create_proof, generate_proof, send_proof, ...
	SourceID     string // host-supplied source id for the prover
	Handle       string // disclosed-proof handle
	ThreadID     string // DIDComm thread id (~thread.thid)
	ConnectionID string // connection handle the message rode on
	StartTime    time.Time
}

// WithContext returns a new context with the given LogContext
func WithContext(ctx context.Context, lc *LogContext) context.Context {
	return context.WithValue(ctx, logContextKey, lc)
}

// FromContext retrieves the LogContext from context, or nil if not present
func FromContext(ctx context.Context) *LogContext {
	if ctx == nil {
		return nil
	}
	lc, _ := ctx.Value(logContextKey).(*LogContext)
	return lc
}

// NewLogContext creates a new LogContext for an operation.
func NewLogContext(operation string) *LogContext {
	return &LogContext{
		Operation: operation,
		StartTime: time.Now(),
	}
}

// Clone creates a copy of the LogContext
func (lc *LogContext) Clone() *LogContext {
	if lc == nil {
		return nil
	}
	clone := *lc
	return &clone
}

// WithHandle returns a copy with the handle set
func (lc *LogContext) WithHandle(handle string) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.Handle = handle
	}
	return clone
}

// WithThread returns a copy with the thread/connection ids set
func (lc *LogContext) WithThread(threadID, connectionID string) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.ThreadID = threadID
		clone.ConnectionID = connectionID
	}
	return clone
}

// WithTrace returns a copy with trace info set
func (lc *LogContext) WithTrace(traceID, spanID string) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.TraceID = traceID
		clone.SpanID = spanID
	}
	return clone
}

// DurationMs returns the duration since StartTime in milliseconds
func (lc *LogContext) DurationMs() float64 {
	if lc == nil || lc.StartTime.IsZero() {
		return 0
	}
	return float64(time.Since(lc.StartTime).Microseconds()) / 1000.0
}
