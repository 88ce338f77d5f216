// Package credentials implements the credential identifier extractor
// (component B) and the requested-credentials assembler (component E).
package credentials

import "github.com/aries-go/vcprover/pkg/proofreq"

// CredInfoProver is one extracted credential reference: the wallet-local
// referent plus the ledger identifiers and revocation bookkeeping needed to
// later build a revocation state and assemble the indy-style proof.
//
// Invariant: once the revocation-state builder (component D) has run, if
// RevRegID is set then Timestamp must be set too.
type CredInfoProver struct {
	RequestedAttr      string                         `json:"requested_attr"`
	Referent           string                         `json:"referent"`
	SchemaID           string                         `json:"schema_id"`
	CredDefID          string                         `json:"cred_def_id"`
	RevRegID           *string                        `json:"rev_reg_id,omitempty"`
	CredRevID          *string                        `json:"cred_rev_id,omitempty"`
	TailsFile          *string                        `json:"tails_file,omitempty"`
	RevocationInterval *proofreq.NonRevokedInterval    `json:"revocation_interval,omitempty"`
	Timestamp          *uint64                        `json:"timestamp,omitempty"`
}
