package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys for prover operations.
const (
	AttrOperation    = "prover.operation"     // create_proof, generate_proof, send_proof, ...
	AttrHandle       = "prover.handle"        // disclosed-proof handle
	AttrSourceID     = "prover.source_id"     // host-supplied source id
	AttrFromState    = "prover.from_state"
	AttrToState      = "prover.to_state"
	AttrThreadID     = "messaging.thread_id"
	AttrConnectionID = "messaging.connection_id"
	AttrMessageKind  = "messaging.kind"
	AttrRevRegID     = "revocation.rev_reg_id"
	AttrCredRevID    = "revocation.cred_rev_id"
	AttrCacheHit     = "revocation.cache_hit"
	AttrTimestamp    = "revocation.timestamp"
)

// Span names.
const (
	SpanCreateProof     = "prover.create_proof"
	SpanGenerateProof   = "prover.generate_proof"
	SpanSendProof       = "prover.send_proof"
	SpanUpdateState     = "prover.update_state"
	SpanBuildRevState   = "revocation.build_state"
	SpanLedgerCall      = "ledger.call"
	SpanDispatchMessage = "messaging.dispatch"
)

// Operation returns an attribute naming the prover operation in progress.
func Operation(name string) attribute.KeyValue { return attribute.String(AttrOperation, name) }

// Handle returns an attribute for a disclosed-proof handle.
func Handle(handle string) attribute.KeyValue { return attribute.String(AttrHandle, handle) }

// SourceID returns an attribute for a host-supplied source id.
func SourceID(id string) attribute.KeyValue { return attribute.String(AttrSourceID, id) }

// StateTransition returns the from/to attributes for a state-machine edge.
func StateTransition(from, to string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrFromState, from),
		attribute.String(AttrToState, to),
	}
}

// ThreadID returns an attribute for a DIDComm thread id.
func ThreadID(id string) attribute.KeyValue { return attribute.String(AttrThreadID, id) }

// ConnectionID returns an attribute for a connection handle.
func ConnectionID(id string) attribute.KeyValue { return attribute.String(AttrConnectionID, id) }

// RevRegID returns an attribute for a revocation registry id.
func RevRegID(id string) attribute.KeyValue { return attribute.String(AttrRevRegID, id) }

// CredRevID returns an attribute for a credential revocation index.
func CredRevID(id string) attribute.KeyValue { return attribute.String(AttrCredRevID, id) }

// CacheHit returns an attribute marking whether a revocation-state lookup reused a cached witness.
func CacheHit(hit bool) attribute.KeyValue { return attribute.Bool(AttrCacheHit, hit) }

// Timestamp returns an attribute for a revocation-interval timestamp.
func Timestamp(ts uint64) attribute.KeyValue { return attribute.Int64(AttrTimestamp, int64(ts)) }

// StartProverSpan starts a span for one of the handle-keyed prover operations.
func StartProverSpan(ctx context.Context, spanName, handle string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := append([]attribute.KeyValue{Handle(handle)}, attrs...)
	return StartSpan(ctx, spanName, trace.WithAttributes(allAttrs...))
}

// StartRevocationSpan starts a span around building one credential's revocation state.
func StartRevocationSpan(ctx context.Context, revRegID, credRevID string) (context.Context, trace.Span) {
	return StartSpan(ctx, SpanBuildRevState, trace.WithAttributes(RevRegID(revRegID), CredRevID(credRevID)))
}
