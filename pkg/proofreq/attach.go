package proofreq

import (
	"encoding/base64"
	"encoding/json"

	"github.com/aries-go/vcprover/pkg/vcerrors"
)

// DecodeProofRequestData base64-decodes the first request_presentations~attach
// entry and unmarshals it into a ProofRequestData. It fails with InvalidJSON
// on either a base64 or a JSON decoding error, and with
// InvalidProofCredentialData if the request carries no attachment at all.
func DecodeProofRequestData(req *PresentationRequest) (*ProofRequestData, error) {
	if len(req.RequestPresentationsAttach) == 0 {
		return nil, vcerrors.New(vcerrors.InvalidProofCredentialData, "presentation request has no attachment")
	}

	raw, err := base64.StdEncoding.DecodeString(req.RequestPresentationsAttach[0].Data.Base64)
	if err != nil {
		return nil, vcerrors.Wrap(vcerrors.InvalidJSON, err, "cannot base64-decode request attachment")
	}

	var data ProofRequestData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, vcerrors.Wrap(vcerrors.InvalidJSON, err, "cannot deserialize proof request")
	}

	return &data, nil
}

// AttachmentName decodes just the top-level "name" field of the first
// attachment, returning ("", false) on any decoding failure or a missing
// name. Used by the presentation-request filter (component H), which drops
// rather than errors on malformed attachments.
func AttachmentName(req *PresentationRequest) (string, bool) {
	if len(req.RequestPresentationsAttach) == 0 {
		return "", false
	}
	raw, err := base64.StdEncoding.DecodeString(req.RequestPresentationsAttach[0].Data.Base64)
	if err != nil {
		return "", false
	}
	var envelope struct {
		Name *string `json:"name"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return "", false
	}
	if envelope.Name == nil {
		return "", false
	}
	return *envelope.Name, true
}
