package prover

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/aries-go/vcprover/pkg/anoncreds/fake"
	"github.com/aries-go/vcprover/pkg/connection"
	ledgerfake "github.com/aries-go/vcprover/pkg/ledger/fake"
	"github.com/aries-go/vcprover/pkg/messaging"
	"github.com/aries-go/vcprover/pkg/proofreq"
	"github.com/aries-go/vcprover/pkg/revocation"
	"github.com/aries-go/vcprover/pkg/vcerrors"
)

// fakeConnection is a minimal connection.Connection recording every message
// sent through it, for assertions on thread ids and ordering.
type fakeConnection struct {
	sent []messaging.A2AMessage
}

func (c *fakeConnection) IsV3(ctx context.Context, handle string) (bool, error) { return true, nil }
func (c *fakeConnection) GetPwVerkey(ctx context.Context, handle string) (string, error) {
	return "verkey", nil
}
func (c *fakeConnection) SendMessage(ctx context.Context, handle string, msg messaging.A2AMessage) error {
	c.sent = append(c.sent, msg)
	return nil
}

var _ connection.Connection = (*fakeConnection)(nil)

// fakeTransport serves a scripted sequence of downloaded messages.
type fakeTransport struct {
	queue []messaging.DownloadedMessage
}

func (t *fakeTransport) DownloadMessages(ctx context.Context, dids, statuses, uids []string) ([]messaging.DownloadedMessage, error) {
	out := t.queue
	t.queue = nil
	return out, nil
}
func (t *fakeTransport) UpdateMessageStatus(ctx context.Context, connectionHandle, uid string) error {
	return nil
}

func b64(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }

func newTestService() *Service {
	led := ledgerfake.New()
	crypto := &fake.Engine{}
	return &Service{
		Registry:        NewRegistry(),
		Builder:         revocation.NewBuilder(revocation.NewMemoryCache(), led, crypto),
		Ledger:          led,
		Crypto:          crypto,
		Transport:       &fakeTransport{},
		LinkSecretAlias: "main",
	}
}

func presentationRequestWithAttachment(t *testing.T, proofReq proofreq.ProofRequestData) []byte {
	t.Helper()
	proofReqJSON, err := json.Marshal(proofReq)
	if err != nil {
		t.Fatalf("marshal proof request: %v", err)
	}
	req := proofreq.PresentationRequest{
		ID: "request-1",
		RequestPresentationsAttach: []proofreq.AttachDecorator{{
			ID:       "attach-1",
			MimeType: "application/json",
			Data:     proofreq.AttachmentData{Base64: b64(string(proofReqJSON))},
		}},
	}
	raw, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal presentation request: %v", err)
	}
	return raw
}

// S7 — full protocol: construct -> 3, generate -> 3, send -> 2, ack -> 4/Success.
func TestService_FullProtocol(t *testing.T) {
	svc := newTestService()

	proofReq := proofreq.ProofRequestData{
		Nonce:   "123",
		Name:    "proof-req",
		Version: "1.0",
		RequestedAttributes: map[string]proofreq.AttrSpec{
			"height_1": {Name: "height"},
		},
		RequestedPredicates: map[string]proofreq.PredicateSpec{},
	}
	reqJSON := presentationRequestWithAttachment(t, proofReq)

	svc.Ledger.(*ledgerfake.Ledger).Schemas["schema-1"] = []byte(`{"name":"schema"}`)
	svc.Ledger.(*ledgerfake.Ledger).CredDefs["cd-1"] = []byte(`{"name":"cd"}`)

	handle, err := svc.CreateProof("source-1", reqJSON)
	if err != nil {
		t.Fatalf("CreateProof: %v", err)
	}

	code, err := svc.GetState(handle)
	if err != nil || code != 3 {
		t.Fatalf("expected state 3 after create, got %d err=%v", code, err)
	}

	selected := `{"attrs":{"height_1":{"credential":{"cred_info":{"referent":"cred-1","schema_id":"schema-1","cred_def_id":"cd-1"}}}}}`
	if err := svc.GenerateProof(context.Background(), handle, []byte(selected), []byte(`{}`)); err != nil {
		t.Fatalf("GenerateProof: %v", err)
	}
	code, _ = svc.GetState(handle)
	if code != 3 {
		t.Fatalf("expected state 3 after generate, got %d", code)
	}

	conn := &fakeConnection{}
	if err := svc.SendProof(context.Background(), handle, conn, "conn-1"); err != nil {
		t.Fatalf("SendProof: %v", err)
	}
	code, _ = svc.GetState(handle)
	if code != 2 {
		t.Fatalf("expected state 2 after send, got %d", code)
	}
	if len(conn.sent) != 1 || conn.sent[0].Kind != messaging.KindPresentation {
		t.Fatalf("expected exactly one presentation sent, got %+v", conn.sent)
	}

	ackJSON := json.RawMessage(`{"@type":"https://didcomm.org/present-proof/1.0/ack","@id":"ack-1","~thread":{"thid":"request-1"}}`)
	code, err = svc.UpdateState(context.Background(), handle, ackJSON, "")
	if err != nil {
		t.Fatalf("UpdateState: %v", err)
	}
	if code != 4 {
		t.Fatalf("expected state 4 after ack, got %d", code)
	}

	status, err := svc.GetPresentationStatus(handle)
	if err != nil || status != int(StatusSuccess) {
		t.Fatalf("expected success status, got %d err=%v", status, err)
	}
}

// S8 — decline: state 0, status 3 (Declined); subsequent send_proof fails.
func TestService_Decline(t *testing.T) {
	svc := newTestService()

	proofReq := proofreq.ProofRequestData{Nonce: "1", RequestedAttributes: map[string]proofreq.AttrSpec{}, RequestedPredicates: map[string]proofreq.PredicateSpec{}}
	handle, err := svc.CreateProof("source-1", presentationRequestWithAttachment(t, proofReq))
	if err != nil {
		t.Fatalf("CreateProof: %v", err)
	}

	reason := "no"
	if err := svc.DeclinePresentationRequest(handle, &reason, nil); err != nil {
		t.Fatalf("DeclinePresentationRequest: %v", err)
	}

	code, _ := svc.GetState(handle)
	if code != 0 {
		t.Fatalf("expected state 0 after decline, got %d", code)
	}
	status, _ := svc.GetPresentationStatus(handle)
	if status != int(StatusDeclined) {
		t.Fatalf("expected declined status, got %d", status)
	}

	conn := &fakeConnection{}
	err = svc.SendProof(context.Background(), handle, conn, "conn-1")
	if err == nil {
		t.Fatalf("expected send_proof to fail after decline")
	}
	if kind, ok := vcerrors.KindOf(err); !ok || kind != vcerrors.ActionNotSupported {
		t.Fatalf("expected ActionNotSupported, got %v", err)
	}
}

// Invariant 6: once Finished, no operation transitions out.
func TestService_FinishedIsMonotonic(t *testing.T) {
	svc := newTestService()

	proofReq := proofreq.ProofRequestData{RequestedAttributes: map[string]proofreq.AttrSpec{}, RequestedPredicates: map[string]proofreq.PredicateSpec{}}
	handle, _ := svc.CreateProof("source-1", presentationRequestWithAttachment(t, proofReq))

	if err := svc.GenerateProof(context.Background(), handle, []byte(`{"attrs":{}}`), []byte(`{}`)); err != nil {
		t.Fatalf("GenerateProof: %v", err)
	}
	conn := &fakeConnection{}
	if err := svc.SendProof(context.Background(), handle, conn, "conn-1"); err != nil {
		t.Fatalf("SendProof: %v", err)
	}

	ackJSON := json.RawMessage(`{"@type":"https://didcomm.org/present-proof/1.0/ack","@id":"ack-1"}`)
	if _, err := svc.UpdateState(context.Background(), handle, ackJSON, ""); err != nil {
		t.Fatalf("UpdateState ack: %v", err)
	}

	// Feeding another inbound problem report after Finished must not move
	// the state further.
	prJSON := json.RawMessage(`{"@type":"https://didcomm.org/present-proof/1.0/problem-report","@id":"pr-1","description":{"code":"x"}}`)
	code, err := svc.UpdateState(context.Background(), handle, prJSON, "")
	if err != nil {
		t.Fatalf("UpdateState problem-report: %v", err)
	}
	if code != 4 {
		t.Fatalf("expected state to remain Finished (4), got %d", code)
	}
}

// Invariant 4: round-trip through ToString/FromString preserves externally
// visible state, status, and source id.
func TestService_RoundTrip(t *testing.T) {
	svc := newTestService()

	proofReq := proofreq.ProofRequestData{RequestedAttributes: map[string]proofreq.AttrSpec{}, RequestedPredicates: map[string]proofreq.PredicateSpec{}}
	handle, _ := svc.CreateProof("source-42", presentationRequestWithAttachment(t, proofReq))

	serialized, err := svc.ToString(handle)
	if err != nil {
		t.Fatalf("ToString: %v", err)
	}

	var env envelope
	if err := json.Unmarshal(serialized, &env); err != nil {
		t.Fatalf("invalid envelope: %v", err)
	}
	if env.Version != "2.0" {
		t.Fatalf("expected version 2.0, got %s", env.Version)
	}

	newHandle, err := svc.FromString(serialized)
	if err != nil {
		t.Fatalf("FromString: %v", err)
	}

	originalCode, _ := svc.GetState(handle)
	restoredCode, _ := svc.GetState(newHandle)
	if originalCode != restoredCode {
		t.Fatalf("state mismatch after round trip: %d vs %d", originalCode, restoredCode)
	}

	originalSourceID, _ := svc.GetSourceID(handle)
	restoredSourceID, _ := svc.GetSourceID(newHandle)
	if originalSourceID != restoredSourceID {
		t.Fatalf("source id mismatch after round trip: %s vs %s", originalSourceID, restoredSourceID)
	}
}

// FromString must reject anything but version "2.0".
func TestService_FromString_RejectsUnsupportedVersion(t *testing.T) {
	svc := newTestService()
	_, err := svc.FromString([]byte(`{"version":"1.0","data":{}}`))
	if err == nil {
		t.Fatalf("expected error for unsupported version")
	}
}
