package messaging

import (
	"context"

	"github.com/aries-go/vcprover/pkg/proofreq"
	"github.com/aries-go/vcprover/pkg/vcerrors"
)

// GetPresentationRequest downloads a single message by uid over transport
// and decodes it as a PresentationRequest. It is an error if the message is
// not a presentation request.
func GetPresentationRequest(ctx context.Context, transport Transport, dids []string, msgID string) (*proofreq.PresentationRequest, error) {
	downloaded, err := transport.DownloadMessages(ctx, dids, nil, []string{msgID})
	if err != nil {
		return nil, err
	}
	if len(downloaded) == 0 {
		return nil, vcerrors.New(vcerrors.InvalidProofCredentialData, "no message found for id "+msgID)
	}

	msg, err := Dispatch(downloaded[0].Decrypted)
	if err != nil {
		return nil, err
	}
	if msg.Kind != KindPresentationRequest || msg.PresentationRequest == nil {
		return nil, vcerrors.New(vcerrors.InvalidProofCredentialData, "message "+msgID+" is not a presentation request")
	}
	msg.PresentationRequest.MsgRefID = msgID
	return msg.PresentationRequest, nil
}

// GetPresentationRequestMessages downloads every undelivered message
// addressed to dids, extracts the PresentationRequests among them, and, if
// nameFilter is non-empty, narrows the result with FilterByName. It marks
// nothing as read: the caller decides when a request has been acted on.
func GetPresentationRequestMessages(ctx context.Context, transport Transport, dids []string, nameFilter string) ([]proofreq.PresentationRequest, error) {
	downloaded, err := transport.DownloadMessages(ctx, dids, nil, nil)
	if err != nil {
		return nil, err
	}

	requests := make([]proofreq.PresentationRequest, 0, len(downloaded))
	for _, d := range downloaded {
		msg, err := Dispatch(d.Decrypted)
		if err != nil {
			continue
		}
		if msg.Kind != KindPresentationRequest || msg.PresentationRequest == nil {
			continue
		}
		req := *msg.PresentationRequest
		req.MsgRefID = d.UID
		requests = append(requests, req)
	}

	if nameFilter != "" {
		return FilterByName(requests, nameFilter), nil
	}
	return requests, nil
}
