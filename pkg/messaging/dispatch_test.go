package messaging

import (
	"encoding/json"
	"testing"
)

func TestDispatch_ThreadIDFromThreadDecorator(t *testing.T) {
	raw := json.RawMessage(`{"@type":"https://didcomm.org/present-proof/1.0/ack","@id":"msg-1","~thread":{"thid":"thread-1"}}`)

	msg, err := Dispatch(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Kind != KindAck {
		t.Fatalf("expected ack, got %v", msg.Kind)
	}
	if msg.ThreadID != "thread-1" {
		t.Fatalf("expected thread-1, got %s", msg.ThreadID)
	}
	if msg.Ack == nil {
		t.Fatalf("expected decoded ack payload")
	}
}

func TestDispatch_ThreadIDFallsBackToMsgID(t *testing.T) {
	raw := json.RawMessage(`{"@type":"https://didcomm.org/present-proof/1.0/problem-report","@id":"msg-2","description":{"code":"rejected"}}`)

	msg, err := Dispatch(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.ThreadID != "msg-2" {
		t.Fatalf("expected fallback to @id, got %s", msg.ThreadID)
	}
	if msg.ProblemReport == nil || msg.ProblemReport.Description.Code != "rejected" {
		t.Fatalf("expected decoded problem report, got %+v", msg.ProblemReport)
	}
}

func TestDispatch_UnknownTypeIsOther(t *testing.T) {
	raw := json.RawMessage(`{"@type":"https://didcomm.org/basicmessage/1.0/message","@id":"msg-3"}`)

	msg, err := Dispatch(raw)
	if err != nil {
		t.Fatalf("unexpected error for unknown type: %v", err)
	}
	if msg.Kind != "https://didcomm.org/basicmessage/1.0/message" {
		t.Fatalf("expected raw type preserved, got %v", msg.Kind)
	}
	if msg.PresentationRequest != nil || msg.Presentation != nil || msg.Ack != nil || msg.ProblemReport != nil {
		t.Fatalf("expected no typed payload decoded for unknown type")
	}
}

func TestDispatch_InvalidJSON(t *testing.T) {
	if _, err := Dispatch(json.RawMessage(`not json`)); err == nil {
		t.Fatalf("expected error for invalid json")
	}
}
