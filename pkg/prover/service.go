package prover

import (
	"context"
	"encoding/json"

	"github.com/aries-go/vcprover/pkg/anoncreds"
	"github.com/aries-go/vcprover/pkg/connection"
	"github.com/aries-go/vcprover/pkg/credentials"
	"github.com/aries-go/vcprover/pkg/ledger"
	"github.com/aries-go/vcprover/pkg/messaging"
	"github.com/aries-go/vcprover/pkg/proofreq"
	"github.com/aries-go/vcprover/pkg/revocation"
	"github.com/aries-go/vcprover/pkg/vcerrors"
)

// Recorder observes every successful state transition, for hosts exposing
// vcprover_state_transitions_total. A nil Recorder is a silent no-op.
type Recorder interface {
	Transition(from, to Kind)
}

// Service is the facade exposing the handle-keyed public operations of
// spec §6 (the Go analogue of the source's free functions plus its global
// HANDLE_MAP), wired to the collaborators components B through J depend on.
type Service struct {
	Registry        *Registry
	Builder         *revocation.Builder
	Ledger          ledger.Ledger
	Crypto          anoncreds.Engine
	Transport       messaging.Transport
	LinkSecretAlias string
	Recorder        Recorder
}

func (s *Service) record(from, to Kind) {
	if s.Recorder != nil && from != to {
		s.Recorder.Transition(from, to)
	}
}

// CreateProof constructs a Prover from a raw presentation-request JSON
// payload, returning its handle. Invalid JSON surfaces InvalidJSON.
func (s *Service) CreateProof(sourceID string, requestJSON []byte) (string, error) {
	var req proofreq.PresentationRequest
	if err := json.Unmarshal(requestJSON, &req); err != nil {
		return "", vcerrors.Wrap(vcerrors.InvalidJSON, err, "cannot decode presentation request")
	}

	state := initialState()
	state.Kind = KindRequestReceived
	state.Request = &req

	return s.Registry.Create(sourceID, state), nil
}

// CreateProofWithMsgID downloads a single presentation request by msgID
// over connHandle and constructs a Prover from it, returning both the
// handle and the raw request JSON the caller may want to log or display.
func (s *Service) CreateProofWithMsgID(ctx context.Context, sourceID string, conn connection.Connection, connHandle, msgID string) (handle string, requestJSON []byte, err error) {
	req, err := messaging.GetPresentationRequest(ctx, s.Transport, []string{connHandle}, msgID)
	if err != nil {
		return "", nil, err
	}

	requestJSON, err = json.Marshal(req)
	if err != nil {
		return "", nil, vcerrors.Wrap(vcerrors.InvalidJSON, err, "cannot re-encode presentation request")
	}

	state := initialState()
	state.Kind = KindRequestReceived
	state.Request = req

	return s.Registry.Create(sourceID, state), requestJSON, nil
}

// GenerateProof runs components B, A, D, E, F and G in sequence to produce
// the proof blob, transitioning RequestReceived -> PresentationPrepared. A
// failure at any step leaves the prover in RequestReceived.
func (s *Service) GenerateProof(ctx context.Context, handle string, selectedCredentialsJSON, selfAttestedJSON []byte) error {
	return s.Registry.With(handle, func(_ string, state ProverState) (ProverState, error) {
		if state.Kind != KindRequestReceived {
			return state, vcerrors.New(vcerrors.InvalidState, "generate_proof is only valid in RequestReceived, got "+state.Kind.String())
		}

		proofReqData, err := proofreq.DecodeProofRequestData(state.Request)
		if err != nil {
			return state, err
		}

		// B: extract the credential references the wallet selected.
		creds, err := credentials.ExtractCredentialIdentifiers(selectedCredentialsJSON, proofReqData)
		if err != nil {
			return state, err
		}

		// A and D: resolve non-revocation windows and build witnesses.
		revStatesJSON, err := s.Builder.BuildRevocationStates(ctx, creds)
		if err != nil {
			return state, err
		}

		// E: assemble the requested-credentials payload.
		requestedCredsJSON, err := credentials.BuildRequestedCredentials(creds, selfAttestedJSON, proofReqData)
		if err != nil {
			return state, err
		}

		// F: aggregate the schemas and credential definitions referenced.
		schemasJSON, err := ledger.AggregateSchemas(ctx, s.Ledger, creds)
		if err != nil {
			return state, err
		}
		credDefsJSON, err := ledger.AggregateCredDefs(ctx, s.Ledger, creds)
		if err != nil {
			return state, err
		}

		// G: invoke the crypto engine to compose the final proof.
		proofReqJSON, err := json.Marshal(proofReqData)
		if err != nil {
			return state, vcerrors.Wrap(vcerrors.InvalidJSON, err, "cannot re-encode proof request data")
		}
		proofJSON, err := s.Crypto.CreateProof(ctx, proofReqJSON, requestedCredsJSON, s.LinkSecretAlias, schemasJSON, credDefsJSON, revStatesJSON)
		if err != nil {
			return state, vcerrors.Wrap(vcerrors.LibindyError, err, "cannot create proof")
		}

		next := state
		next.Kind = KindPresentationPrepared
		next.ProofJSON = proofJSON
		s.record(state.Kind, next.Kind)
		return next, nil
	})
}

// SendProof attaches the composed proof to a Presentation and transmits it
// over conn, transitioning PresentationPrepared -> PresentationSent. It is
// rejected in any other state with ActionNotSupported, including a
// send_proof called after a decline: the transition table (§4.I) names
// ActionNotSupported as the rejection kind for every out-of-state call on
// this handle, which this implementation follows even where a narrower
// reading of the post-decline scenario would expect InvalidState instead.
func (s *Service) SendProof(ctx context.Context, handle string, conn connection.Connection, connHandle string) error {
	return s.Registry.With(handle, func(_ string, state ProverState) (ProverState, error) {
		if state.Kind != KindPresentationPrepared {
			return state, vcerrors.New(vcerrors.ActionNotSupported, "send_proof is only valid in PresentationPrepared, got "+state.Kind.String())
		}

		thread := messaging.OutboundThread(state.Request)
		presentation := messaging.Presentation{
			ID: state.Request.ID,
			PresentationsAttach: []proofreq.AttachDecorator{{
				Data: proofreq.AttachmentData{Base64: encodeBase64(state.ProofJSON)},
			}},
			ThreadDecorator: thread,
		}

		if err := conn.SendMessage(ctx, connHandle, messaging.A2AMessage{Kind: messaging.KindPresentation, Presentation: &presentation}); err != nil {
			return state, vcerrors.Wrap(vcerrors.LibindyError, err, "cannot send presentation")
		}

		next := state
		next.Kind = KindPresentationSent
		next.SentThread = thread
		s.record(state.Kind, next.Kind)
		return next, nil
	})
}

// RejectProof sends a ProblemReport with the standard rejection reason and
// transitions to Declined-after-send (state code 2, per the legacy
// overload) from PresentationPrepared or RequestReceived.
func (s *Service) RejectProof(ctx context.Context, handle string, conn connection.Connection, connHandle string) error {
	return s.Registry.With(handle, func(_ string, state ProverState) (ProverState, error) {
		if state.Kind != KindRequestReceived && state.Kind != KindPresentationPrepared {
			return state, vcerrors.New(vcerrors.ActionNotSupported, "reject_proof is not valid in "+state.Kind.String())
		}

		report := messaging.ProblemReport{
			ID:          state.Request.ID,
			Description: messaging.Description{Code: "presentation-rejected", Text: "Presentation Request was rejected"},
			ThreadDecorator: messaging.OutboundThread(state.Request),
		}

		if err := conn.SendMessage(ctx, connHandle, messaging.A2AMessage{Kind: messaging.KindProblemReport, ProblemReport: &report}); err != nil {
			return state, vcerrors.Wrap(vcerrors.LibindyError, err, "cannot send problem report")
		}

		next := state
		next.Kind = KindPresentationSent
		next.FinalStatus = StatusDeclined
		s.record(state.Kind, next.Kind)
		return next, nil
	})
}

// DeclinePresentationRequest moves RequestReceived -> Declined without
// sending anything (state code 0), recording either a rejection reason or
// a counter-proposal. Exactly one of reason/proposalJSON must be set.
func (s *Service) DeclinePresentationRequest(handle string, reason *string, proposalJSON json.RawMessage) error {
	if (reason == nil) == (len(proposalJSON) == 0) {
		return vcerrors.New(vcerrors.InvalidOption, "exactly one of reason or proposal must be set")
	}

	return s.Registry.With(handle, func(_ string, state ProverState) (ProverState, error) {
		if state.Kind != KindRequestReceived {
			return state, vcerrors.New(vcerrors.InvalidState, "decline_presentation_request is only valid in RequestReceived, got "+state.Kind.String())
		}

		next := state
		next.Kind = KindDeclined
		next.FinalStatus = StatusDeclined
		next.DeclineReason = reason
		next.DeclineProposal = proposalJSON
		s.record(state.Kind, next.Kind)
		return next, nil
	})
}

// UpdateState feeds one explicit inbound message, or — when messageJSON is
// nil — polls the transport for every undelivered message on the thread
// and feeds them in arrival order until a terminal or no-op state is
// reached. It returns the resulting state code.
func (s *Service) UpdateState(ctx context.Context, handle string, messageJSON json.RawMessage, connHandle string) (int, error) {
	var stateCode int
	err := s.Registry.With(handle, func(_ string, state ProverState) (ProverState, error) {
		if messageJSON != nil {
			msg, err := messaging.Dispatch(messageJSON)
			if err != nil {
				return state, err
			}
			next := transitionInbound(state, msg)
			s.record(state.Kind, next.Kind)
			stateCode = next.Kind.StateCode()
			return next, nil
		}

		if state.Kind != KindPresentationSent || connHandle == "" {
			stateCode = state.Kind.StateCode()
			return state, nil
		}

		downloaded, err := s.Transport.DownloadMessages(ctx, []string{connHandle}, nil, nil)
		if err != nil {
			return state, err
		}

		next := state
		for _, d := range downloaded {
			msg, err := messaging.Dispatch(d.Decrypted)
			if err != nil {
				continue
			}
			prior := next
			next = transitionInbound(next, msg)
			s.record(prior.Kind, next.Kind)
			if next.Kind != KindPresentationSent {
				break
			}
		}
		stateCode = next.Kind.StateCode()
		return next, nil
	})
	return stateCode, err
}

// GetState returns handle's backwards-compatible numeric state code.
func (s *Service) GetState(handle string) (int, error) {
	var code int
	err := s.Registry.View(handle, func(_ string, state ProverState) error {
		code = state.Kind.StateCode()
		return nil
	})
	return code, err
}

// GetPresentationStatus returns Undefined outside Finished/Declined, and
// the recorded FinalStatus inside either.
func (s *Service) GetPresentationStatus(handle string) (int, error) {
	var code int
	err := s.Registry.View(handle, func(_ string, state ProverState) error {
		if state.Kind != KindFinished && state.Kind != KindDeclined {
			code = StatusUndefined.StatusCode()
			return nil
		}
		code = state.FinalStatus.StatusCode()
		return nil
	})
	return code, err
}

// GetSourceID returns the host-supplied source id the handle was created
// with.
func (s *Service) GetSourceID(handle string) (string, error) {
	var id string
	err := s.Registry.View(handle, func(sourceID string, _ ProverState) error {
		id = sourceID
		return nil
	})
	return id, err
}

// RetrieveCredentials is valid in RequestReceived and PresentationPrepared;
// callers combine its result with a wallet search for matching credentials.
// This core exposes only the decoded ProofRequestData the search runs
// against, since wallet search itself is out of scope.
func (s *Service) RetrieveCredentials(handle string) (*proofreq.ProofRequestData, error) {
	var data *proofreq.ProofRequestData
	err := s.Registry.View(handle, func(_ string, state ProverState) error {
		if state.Kind != KindRequestReceived && state.Kind != KindPresentationPrepared {
			return vcerrors.New(vcerrors.InvalidState, "retrieve_credentials is not valid in "+state.Kind.String())
		}
		decoded, err := proofreq.DecodeProofRequestData(state.Request)
		if err != nil {
			return err
		}
		data = decoded
		return nil
	})
	return data, err
}
