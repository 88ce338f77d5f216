// Package fake provides a deterministic in-memory anoncreds.Engine for unit
// tests. It is never imported by production code.
package fake

import (
	"context"
	"fmt"
	"sync"
)

// Engine is a deterministic stand-in for a real anonymous-credential
// library: CreateRevocationState and UpdateRevocationState return witness
// blobs derived from their inputs so tests can assert on them without a
// real cryptographic backend, and CreateProof echoes its inputs into a
// single JSON envelope.
type Engine struct {
	mu               sync.Mutex
	CreateCalls      int
	UpdateCalls      int
	CreateProofCalls int

	// CreateErr/UpdateErr/ProofErr, when set, are returned instead of a
	// result, letting tests exercise the LibindyError propagation path.
	CreateErr error
	UpdateErr error
	ProofErr  error
}

func (e *Engine) CreateRevocationState(ctx context.Context, revRegDefJSON, deltaJSON []byte, credRevID, tailsFile string) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.CreateCalls++
	if e.CreateErr != nil {
		return nil, e.CreateErr
	}
	return []byte(fmt.Sprintf(`{"witness":"created","cred_rev_id":%q,"tails_file":%q}`, credRevID, tailsFile)), nil
}

func (e *Engine) UpdateRevocationState(ctx context.Context, revRegDefJSON, priorWitnessJSON, deltaJSON []byte, credRevID, tailsFile string) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.UpdateCalls++
	if e.UpdateErr != nil {
		return nil, e.UpdateErr
	}
	return []byte(fmt.Sprintf(`{"witness":"updated","prior":%s,"cred_rev_id":%q}`, string(priorWitnessJSON), credRevID)), nil
}

func (e *Engine) CreateProof(ctx context.Context, proofReqJSON, requestedCredentialsJSON []byte, linkSecretAlias string, schemasJSON, credDefsJSON, revocationStatesJSON []byte) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.CreateProofCalls++
	if e.ProofErr != nil {
		return nil, e.ProofErr
	}
	return []byte(fmt.Sprintf(
		`{"requested_credentials":%s,"schemas":%s,"cred_defs":%s,"revocation_states":%s,"link_secret_alias":%q}`,
		requestedCredentialsJSON, schemasJSON, credDefsJSON, revocationStatesJSON, linkSecretAlias,
	)), nil
}
