// Package anoncreds defines the cryptographic engine collaborator
// (component G's counterpart): create_proof, create_revocation_state, and
// update_revocation_state are treated as opaque primitives per the spec's
// scope boundary. Any failure from a real engine surfaces as a
// vcerrors.LibindyError.
package anoncreds

import "context"

// Engine is the narrow crypto collaborator this core depends on.
// Implementations wrap whatever anonymous-credential library backs the
// deployment; none is bundled here.
type Engine interface {
	// CreateProof invokes the crypto engine to produce the final proof
	// from the proof request, the requested-credentials payload, the
	// link-secret alias, the schema/cred-def bundles, and an optional
	// revocation-states bundle.
	CreateProof(ctx context.Context, proofReqJSON, requestedCredentialsJSON []byte, linkSecretAlias string, schemasJSON, credDefsJSON, revocationStatesJSON []byte) (proofJSON []byte, err error)

	// CreateRevocationState builds a fresh witness for a credential given
	// its registry definition, the accumulator delta, the credential's
	// revocation id, and its tails file.
	CreateRevocationState(ctx context.Context, revRegDefJSON, deltaJSON []byte, credRevID, tailsFile string) (witnessJSON []byte, err error)

	// UpdateRevocationState advances an existing witness forward using a
	// newer delta.
	UpdateRevocationState(ctx context.Context, revRegDefJSON, priorWitnessJSON, deltaJSON []byte, credRevID, tailsFile string) (witnessJSON []byte, err error)
}
