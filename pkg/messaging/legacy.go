package messaging

import (
	"context"
	"encoding/json"

	"github.com/aries-go/vcprover/pkg/proofreq"
	"github.com/aries-go/vcprover/pkg/vcerrors"
)

// ProofRequestMessage is the legacy (pre-strict-aries) proof request
// envelope: the attached ProofRequestData flattened into the message body,
// alongside the thread/message-ref bookkeeping the legacy format carried
// instead of a ~thread decorator. Hosts that have not turned strict-aries
// mode on receive this shape from GetLegacyProofRequestMessages rather than
// the raw Aries PresentationRequest envelope.
type ProofRequestMessage struct {
	ProofRequestData proofreq.ProofRequestData `json:"proof_request_data"`
	MsgRefID         string                    `json:"msg_ref_id,omitempty"`
	ThreadID         string                    `json:"thread_id,omitempty"`
}

// NewProofRequestMessageFromAries converts a strict-Aries PresentationRequest
// into the legacy ProofRequestMessage envelope, decoding its attached
// ProofRequestData and carrying over req's thread/msg-ref bookkeeping.
func NewProofRequestMessageFromAries(req *proofreq.PresentationRequest) (*ProofRequestMessage, error) {
	data, err := proofreq.DecodeProofRequestData(req)
	if err != nil {
		return nil, err
	}
	return &ProofRequestMessage{
		ProofRequestData: *data,
		MsgRefID:         req.MsgRefID,
		ThreadID:         req.ThreadID,
	}, nil
}

// ParsePresentationRequestMessage decodes a single downloaded message already
// known to be a presentation request into the legacy ProofRequestMessage
// envelope, stamping msg_ref_id from the message's uid the way
// GetPresentationRequest stamps it onto the Aries envelope.
func ParsePresentationRequestMessage(raw json.RawMessage, uid string) (*ProofRequestMessage, error) {
	msg, err := Dispatch(raw)
	if err != nil {
		return nil, err
	}
	if msg.Kind != KindPresentationRequest || msg.PresentationRequest == nil {
		return nil, vcerrors.New(vcerrors.InvalidProofCredentialData, "message "+uid+" is not a presentation request")
	}
	msg.PresentationRequest.MsgRefID = uid

	return NewProofRequestMessageFromAries(msg.PresentationRequest)
}

// GetLegacyProofRequestMessages is GetPresentationRequestMessages for hosts
// that have not turned strict-aries mode on: it downloads and filters
// exactly as GetPresentationRequestMessages does, then converts every result
// into the legacy ProofRequestMessage envelope. A request whose attachment
// fails to decode is dropped rather than failing the whole batch, matching
// GetPresentationRequestMessages's own best-effort handling of malformed
// messages.
func GetLegacyProofRequestMessages(ctx context.Context, transport Transport, dids []string, nameFilter string) ([]ProofRequestMessage, error) {
	requests, err := GetPresentationRequestMessages(ctx, transport, dids, nameFilter)
	if err != nil {
		return nil, err
	}

	legacy := make([]ProofRequestMessage, 0, len(requests))
	for i := range requests {
		msg, err := NewProofRequestMessageFromAries(&requests[i])
		if err != nil {
			continue
		}
		legacy = append(legacy, *msg)
	}
	return legacy, nil
}
