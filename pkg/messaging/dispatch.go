package messaging

import (
	"encoding/json"
	"strings"

	"github.com/aries-go/vcprover/pkg/proofreq"
	"github.com/aries-go/vcprover/pkg/vcerrors"
)

// protocolSuffixes maps the trailing message-family segment of a Present
// Proof @type URI to its Kind. Real @type values look like
// "https://didcomm.org/present-proof/1.0/request-presentation"; only the
// last path segment is examined so callers needn't agree on a protocol
// version prefix.
var protocolSuffixes = map[string]Kind{
	"request-presentation": KindPresentationRequest,
	"presentation":         KindPresentation,
	"ack":                  KindAck,
	"problem-report":       KindProblemReport,
}

// Dispatch classifies a decrypted inbound message by its @type and decodes
// it into the matching A2AMessage variant. An unrecognised @type yields an
// Other-equivalent message: Kind holds the literal wire value, the typed
// fields are all nil, and Raw holds the original payload — it is never an
// error, since the state machine's job is to ignore what it doesn't know.
func Dispatch(raw json.RawMessage) (A2AMessage, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return A2AMessage{}, vcerrors.Wrap(vcerrors.InvalidJSON, err, "cannot decode inbound message envelope")
	}

	msg := A2AMessage{
		Kind:     classify(env.Type),
		MsgID:    env.ID,
		ThreadID: threadID(env.Thread, env.ID),
		Raw:      raw,
	}

	switch msg.Kind {
	case KindPresentationRequest:
		var pr proofreq.PresentationRequest
		if err := json.Unmarshal(raw, &pr); err != nil {
			return A2AMessage{}, vcerrors.Wrap(vcerrors.InvalidJSON, err, "cannot decode presentation request")
		}
		pr.ThreadID = msg.ThreadID
		msg.PresentationRequest = &pr
	case KindPresentation:
		var p Presentation
		if err := json.Unmarshal(raw, &p); err != nil {
			return A2AMessage{}, vcerrors.Wrap(vcerrors.InvalidJSON, err, "cannot decode presentation")
		}
		msg.Presentation = &p
	case KindAck:
		var a Ack
		if err := json.Unmarshal(raw, &a); err != nil {
			return A2AMessage{}, vcerrors.Wrap(vcerrors.InvalidJSON, err, "cannot decode ack")
		}
		msg.Ack = &a
	case KindProblemReport:
		var pr ProblemReport
		if err := json.Unmarshal(raw, &pr); err != nil {
			return A2AMessage{}, vcerrors.Wrap(vcerrors.InvalidJSON, err, "cannot decode problem report")
		}
		msg.ProblemReport = &pr
	default:
		msg.Kind = Kind(env.Type)
	}

	return msg, nil
}

func classify(typeURI string) Kind {
	idx := strings.LastIndex(typeURI, "/")
	suffix := typeURI
	if idx >= 0 {
		suffix = typeURI[idx+1:]
	}
	if kind, ok := protocolSuffixes[suffix]; ok {
		return kind
	}
	return ""
}

// threadID resolves the thread id per component J: ~thread.thid if present,
// else the message's own @id.
func threadID(thread *Thread, id string) string {
	if thread != nil && thread.ThID != "" {
		return thread.ThID
	}
	return id
}

// OutboundThread builds the ~thread decorator for a Presentation sent in
// reply to req: thid is req.ThreadID if set, else req.ID; pthid is always
// req.ThreadID (possibly empty).
func OutboundThread(req *proofreq.PresentationRequest) *Thread {
	thid := req.ThreadID
	if thid == "" {
		thid = req.ID
	}
	return &Thread{ThID: thid, PThID: req.ThreadID}
}
