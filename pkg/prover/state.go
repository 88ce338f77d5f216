// Package prover implements the prover state machine (component I): the
// per-handle protocol state, its transition table, and the handle registry
// that owns exclusive access to each prover instance.
package prover

import (
	"encoding/json"

	"github.com/aries-go/vcprover/pkg/messaging"
	"github.com/aries-go/vcprover/pkg/proofreq"
)

// Kind discriminates the variants of ProverState.
type Kind int

const (
	KindInitial Kind = iota
	KindRequestReceived
	KindPresentationPrepared
	KindPresentationSent
	KindFinished
	KindDeclined
)

func (k Kind) String() string {
	switch k {
	case KindInitial:
		return "Initial"
	case KindRequestReceived:
		return "RequestReceived"
	case KindPresentationPrepared:
		return "PresentationPrepared"
	case KindPresentationSent:
		return "PresentationSent"
	case KindFinished:
		return "Finished"
	case KindDeclined:
		return "Declined"
	default:
		return "Unknown"
	}
}

// FinalStatus is the terminal outcome recorded on Finished/Declined states.
type FinalStatus int

const (
	StatusUndefined FinalStatus = iota
	StatusSuccess
	StatusFailed
	StatusDeclined
)

// StateCode returns the backwards-compatible numeric surface for kind, per
// spec §6: the legacy encoding overloads 2 (PresentationSent, and Declined
// once sent) and 3 (RequestReceived and PresentationPrepared); those
// literal values must never be renumbered.
func (k Kind) StateCode() int {
	switch k {
	case KindInitial:
		return 0
	case KindRequestReceived:
		return 3
	case KindPresentationPrepared:
		return 3
	case KindPresentationSent:
		return 2
	case KindFinished:
		return 4
	case KindDeclined:
		return 0
	default:
		return 0
	}
}

// StatusCode returns the numeric status surface, valid only once the state
// carries a FinalStatus (Finished or Declined); StatusUndefined otherwise.
func (s FinalStatus) StatusCode() int {
	return int(s)
}

// ProverState is the sum type of spec §3/§4.I, represented as a tagged
// struct rather than an interface: exactly the fields relevant to Kind are
// populated, the rest remain zero. This keeps (de)serialisation of the
// persisted envelope (see serialize.go) a single flat struct instead of a
// polymorphic decode.
type ProverState struct {
	Kind Kind `json:"kind"`

	Request *proofreq.PresentationRequest `json:"request,omitempty"`

	// ProofJSON is the composed proof blob, present from PresentationPrepared
	// onward.
	ProofJSON json.RawMessage `json:"proof_json,omitempty"`

	// SentThread is the ~thread decorator used on the outbound Presentation,
	// present from PresentationSent onward.
	SentThread *messaging.Thread `json:"sent_thread,omitempty"`

	FinalStatus   FinalStatus             `json:"final_status,omitempty"`
	ProblemReport *messaging.ProblemReport `json:"problem_report,omitempty"`

	DeclineReason   *string         `json:"decline_reason,omitempty"`
	DeclineProposal json.RawMessage `json:"decline_proposal,omitempty"`
}

// initialState constructs the Initial variant.
func initialState() ProverState {
	return ProverState{Kind: KindInitial}
}
