package logger

import (
	"fmt"
	"log/slog"
)

// Standard field keys for structured logging. Use these keys consistently
// across log statements so aggregation/querying stays uniform.
const (
	// Distributed tracing
	KeyTraceID = "trace_id"
	KeySpanID  = "span_id"

	// Operation & prover identity
	KeyOperation    = "operation"     // create_proof, generate_proof, send_proof, ...
	KeySourceID     = "source_id"     // host-supplied source id
	KeyHandle       = "handle"        // disclosed-proof handle
	KeyThreadID     = "thread_id"     // DIDComm thread id
	KeyConnectionID = "connection_id" // connection handle

	// Revocation
	KeyRevRegID   = "rev_reg_id"
	KeyCredRevID  = "cred_rev_id"
	KeyTimestamp  = "timestamp"
	KeyCacheEvent = "cache_event" // hit, miss

	// State machine
	KeyFromState = "from_state"
	KeyToState   = "to_state"

	// Generic outcome
	KeyDurationMs = "duration_ms"
	KeyError      = "error"
)

// TraceID returns a slog.Attr for the OpenTelemetry trace id.
func TraceID(id string) slog.Attr { return slog.String(KeyTraceID, id) }

// SpanID returns a slog.Attr for the OpenTelemetry span id.
func SpanID(id string) slog.Attr { return slog.String(KeySpanID, id) }

// Operation returns a slog.Attr naming the prover operation in progress.
func Operation(name string) slog.Attr { return slog.String(KeyOperation, name) }

// SourceID returns a slog.Attr for the host-supplied source id.
func SourceID(id string) slog.Attr { return slog.String(KeySourceID, id) }

// Handle returns a slog.Attr for a disclosed-proof handle.
func Handle(handle string) slog.Attr { return slog.String(KeyHandle, handle) }

// ThreadID returns a slog.Attr for a DIDComm thread id.
func ThreadID(id string) slog.Attr { return slog.String(KeyThreadID, id) }

// ConnectionID returns a slog.Attr for a connection handle.
func ConnectionID(id string) slog.Attr { return slog.String(KeyConnectionID, id) }

// RevRegID returns a slog.Attr for a revocation registry id.
func RevRegID(id string) slog.Attr { return slog.String(KeyRevRegID, id) }

// CredRevID returns a slog.Attr for a credential revocation index.
func CredRevID(id string) slog.Attr { return slog.String(KeyCredRevID, id) }

// Timestamp returns a slog.Attr for a revocation-interval timestamp.
func Timestamp(ts uint64) slog.Attr { return slog.Uint64(KeyTimestamp, ts) }

// StateTransition returns slog.Attrs naming a prover state-machine edge.
func StateTransition(from, to string) (slog.Attr, slog.Attr) {
	return slog.String(KeyFromState, from), slog.String(KeyToState, to)
}

// Err returns a slog.Attr for an error, or an empty Attr if err is nil.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, fmt.Sprintf("%v", err))
}
