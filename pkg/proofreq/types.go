// Package proofreq holds the presentation-request data model and the
// interval resolver (component A): merging per-attribute and per-request
// non-revoked windows.
package proofreq

import "encoding/json"

// NonRevokedInterval is the non-revocation window a verifier is willing to
// accept proof against. Either bound may be absent; when both are present,
// From must be <= To.
type NonRevokedInterval struct {
	From *uint64 `json:"from,omitempty"`
	To   *uint64 `json:"to,omitempty"`
}

// Valid reports whether the interval respects From <= To when both bounds
// are set. Nil intervals and single-bound intervals are always valid.
func (n *NonRevokedInterval) Valid() bool {
	if n == nil || n.From == nil || n.To == nil {
		return true
	}
	return *n.From <= *n.To
}

// Equal reports whether two intervals (including nil) carry the same bounds.
func (n *NonRevokedInterval) Equal(other *NonRevokedInterval) bool {
	if n == nil || other == nil {
		return n == other
	}
	return uintPtrEqual(n.From, other.From) && uintPtrEqual(n.To, other.To)
}

func uintPtrEqual(a, b *uint64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// AttrSpec describes one requested attribute within a proof request.
type AttrSpec struct {
	Name         string              `json:"name"`
	Restrictions json.RawMessage     `json:"restrictions,omitempty"`
	NonRevoked   *NonRevokedInterval `json:"non_revoked,omitempty"`
}

// PredicateSpec describes one requested predicate within a proof request.
type PredicateSpec struct {
	Name         string              `json:"name"`
	Restrictions json.RawMessage     `json:"restrictions,omitempty"`
	NonRevoked   *NonRevokedInterval `json:"non_revoked,omitempty"`
}

// ProofRequestData is the decoded payload of a presentation request's
// attachment: the indy-style proof request the prover must satisfy.
type ProofRequestData struct {
	Nonce                 string                   `json:"nonce"`
	Name                  string                   `json:"name"`
	Version               string                   `json:"version"`
	RequestedAttributes   map[string]AttrSpec      `json:"requested_attributes"`
	RequestedPredicates   map[string]PredicateSpec `json:"requested_predicates"`
	NonRevoked            *NonRevokedInterval      `json:"non_revoked,omitempty"`
}

// PresentationRequest is the Aries message envelope carrying a base64
// attachment that decodes to a ProofRequestData.
type PresentationRequest struct {
	ID                           string                       `json:"@id"`
	Comment                      string                       `json:"comment,omitempty"`
	RequestPresentationsAttach   []AttachDecorator            `json:"request_presentations~attach"`
	ThreadID                     string                       `json:"-"`
	MsgRefID                     string                       `json:"-"`
}

// AttachDecorator is the Aries ~attach decorator: base64-encoded JSON
// content keyed under "data.base64".
type AttachDecorator struct {
	ID       string         `json:"@id,omitempty"`
	MimeType string         `json:"mime-type,omitempty"`
	Data     AttachmentData `json:"data"`
}

// AttachmentData holds the base64 payload of an AttachDecorator.
type AttachmentData struct {
	Base64 string `json:"base64"`
}
