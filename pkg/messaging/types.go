// Package messaging implements the presentation-request filter (component H)
// and inbound/outbound A2A message dispatch and threading (component J).
package messaging

import (
	"encoding/json"

	"github.com/aries-go/vcprover/pkg/proofreq"
)

// Kind is the @type discriminant of an inbound or outbound A2A message
// within the Present Proof protocol family.
type Kind string

const (
	KindPresentationRequest Kind = "presentation-request"
	KindPresentation        Kind = "presentation"
	KindAck                 Kind = "ack"
	KindProblemReport       Kind = "problem-report"
)

// Thread carries the Aries ~thread decorator: thid identifies the logical
// thread, pthid (when set) identifies its parent thread.
type Thread struct {
	ThID  string `json:"thid,omitempty"`
	PThID string `json:"pthid,omitempty"`
}

// A2AMessage is the tagged union of inbound/outbound Present Proof messages.
// Exactly one of the typed fields is non-nil, selected by Kind; an unknown
// @type is carried as Raw with Kind holding the literal wire value, per the
// "Other(kind_string)" variant of the design.
type A2AMessage struct {
	Kind     Kind
	ThreadID string
	MsgID    string

	PresentationRequest *proofreq.PresentationRequest
	Presentation        *Presentation
	Ack                 *Ack
	ProblemReport        *ProblemReport

	Raw json.RawMessage
}

// Presentation is the outbound/inbound proof payload attached to a thread.
type Presentation struct {
	ID                 string            `json:"@id"`
	Comment            string            `json:"comment,omitempty"`
	PresentationsAttach []proofreq.AttachDecorator `json:"presentations~attach"`
	ThreadDecorator    *Thread           `json:"~thread,omitempty"`
}

// Ack is an acknowledgement of a completed presentation exchange.
type Ack struct {
	ID              string `json:"@id"`
	Status          string `json:"status,omitempty"`
	ThreadDecorator *Thread `json:"~thread,omitempty"`
}

// ProblemReport terminates an exchange with a machine-readable reason.
type ProblemReport struct {
	ID              string  `json:"@id"`
	Description     Description `json:"description"`
	ThreadDecorator *Thread `json:"~thread,omitempty"`
}

// Description is the Aries problem-report description block.
type Description struct {
	Code string `json:"code"`
	Text string `json:"en,omitempty"`
}

// envelope is the shape every A2A message shares: a @type discriminant, a
// @id, and an optional ~thread decorator, used only to classify raw JSON
// before unmarshalling into its concrete type.
type envelope struct {
	Type   string  `json:"@type"`
	ID     string  `json:"@id"`
	Thread *Thread `json:"~thread,omitempty"`
}
