package messaging

import (
	"encoding/base64"
	"testing"

	"github.com/aries-go/vcprover/pkg/proofreq"
)

func attachFor(name string) proofreq.AttachDecorator {
	payload := `{"name":"` + name + `"}`
	return proofreq.AttachDecorator{
		Data: proofreq.AttachmentData{Base64: base64.StdEncoding.EncodeToString([]byte(payload))},
	}
}

func TestFilterByName_KeepsMatchingOnly(t *testing.T) {
	reqs := []proofreq.PresentationRequest{
		{ID: "r1", RequestPresentationsAttach: []proofreq.AttachDecorator{attachFor("proof-of-age")}},
		{ID: "r2", RequestPresentationsAttach: []proofreq.AttachDecorator{attachFor("proof-of-address")}},
	}

	kept := FilterByName(reqs, "proof-of-age")
	if len(kept) != 1 || kept[0].ID != "r1" {
		t.Fatalf("expected only r1, got %+v", kept)
	}
}

func TestFilterByName_DropsUndecodable(t *testing.T) {
	reqs := []proofreq.PresentationRequest{
		{ID: "bad-b64", RequestPresentationsAttach: []proofreq.AttachDecorator{{Data: proofreq.AttachmentData{Base64: "not-valid-base64!!"}}}},
		{ID: "bad-json", RequestPresentationsAttach: []proofreq.AttachDecorator{{Data: proofreq.AttachmentData{Base64: base64.StdEncoding.EncodeToString([]byte("not json"))}}}},
		{ID: "no-name", RequestPresentationsAttach: []proofreq.AttachDecorator{{Data: proofreq.AttachmentData{Base64: base64.StdEncoding.EncodeToString([]byte(`{"other":1}`))}}}},
	}

	kept := FilterByName(reqs, "anything")
	if len(kept) != 0 {
		t.Fatalf("expected all dropped, got %+v", kept)
	}
}

// Empty target matches nothing, preserved as-is from the source even though
// it may be surprising for a request whose own name is also empty.
func TestFilterByName_EmptyTargetMatchesNothing(t *testing.T) {
	reqs := []proofreq.PresentationRequest{
		{ID: "r1", RequestPresentationsAttach: []proofreq.AttachDecorator{attachFor("")}},
	}

	if kept := FilterByName(reqs, ""); kept != nil {
		t.Fatalf("expected nil for empty target, got %+v", kept)
	}
}

// Invariant 5: filter idempotence.
func TestFilterByName_Idempotent(t *testing.T) {
	reqs := []proofreq.PresentationRequest{
		{ID: "r1", RequestPresentationsAttach: []proofreq.AttachDecorator{attachFor("x")}},
		{ID: "r2", RequestPresentationsAttach: []proofreq.AttachDecorator{attachFor("y")}},
	}

	once := FilterByName(reqs, "x")
	twice := FilterByName(once, "x")

	if len(once) != len(twice) {
		t.Fatalf("filter not idempotent: %v vs %v", once, twice)
	}
	for i := range once {
		if once[i].ID != twice[i].ID {
			t.Fatalf("filter not idempotent at index %d", i)
		}
	}
}
