// Package ledger defines the narrow ledger collaborator interface
// (schema/cred-def/rev-reg-def/rev-reg-delta lookups) and the schema/
// cred-def aggregator (component F). The ledger itself — consensus,
// transaction submission, node selection — is out of scope; only the read
// shape this core depends on is defined here.
package ledger

import "context"

// Ledger is the external collaborator this core treats as opaque: it
// fetches schemas, credential definitions, revocation-registry definitions
// and deltas. Implementations talk to whatever transport fits (see
// pkg/ledgerrpc for a gRPC-backed one).
type Ledger interface {
	// GetSchema fetches the schema JSON for the given schema id.
	GetSchema(ctx context.Context, schemaID string) (json []byte, err error)

	// GetCredDef fetches the credential-definition JSON for the given id.
	GetCredDef(ctx context.Context, credDefID string) (json []byte, err error)

	// GetRevRegDef fetches a revocation-registry definition, returning the
	// (possibly canonicalised) registry id alongside its JSON.
	GetRevRegDef(ctx context.Context, revRegID string) (id string, json []byte, err error)

	// GetRevRegDelta fetches the accumulator delta for revRegID across the
	// window (from, to]; either bound may be nil. Returns the (possibly
	// canonicalised) registry id, the delta JSON, and the ledger timestamp
	// at which the delta was observed.
	GetRevRegDelta(ctx context.Context, revRegID string, from, to *uint64) (id string, delta []byte, timestamp uint64, err error)
}
