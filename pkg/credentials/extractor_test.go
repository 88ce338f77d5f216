package credentials

import (
	"testing"

	"github.com/aries-go/vcprover/pkg/proofreq"
	"github.com/aries-go/vcprover/pkg/vcerrors"
)

func noIntervalRequest() *proofreq.ProofRequestData {
	return &proofreq.ProofRequestData{
		Nonce:   "123432421212",
		Name:    "proof_req_1",
		Version: "0.1",
		RequestedAttributes: map[string]proofreq.AttrSpec{
			"address1_1": {Name: "address1"},
			"zip_2":      {Name: "zip"},
			"height_1":   {Name: "height"},
		},
		RequestedPredicates: map[string]proofreq.PredicateSpec{},
	}
}

// S3 — Empty attrs.
func TestExtractCredentialIdentifiers_Empty(t *testing.T) {
	for _, in := range []string{"{}", `{"attrs":{}}`} {
		creds, err := ExtractCredentialIdentifiers([]byte(in), noIntervalRequest())
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", in, err)
		}
		if len(creds) != 0 {
			t.Fatalf("expected empty result for %q, got %v", in, creds)
		}
	}
}

func TestExtractCredentialIdentifiers_InvalidJSON(t *testing.T) {
	_, err := ExtractCredentialIdentifiers([]byte(""), noIntervalRequest())
	if err == nil {
		t.Fatalf("expected error")
	}
	if kind, _ := vcerrors.KindOf(err); kind != vcerrors.InvalidJSON {
		t.Fatalf("expected InvalidJson, got %v", kind)
	}
}

// S2 — Missing cred_info.
func TestExtractCredentialIdentifiers_MissingCredInfo(t *testing.T) {
	selected := `{"attrs":{"height_1":{"interval":null}},"predicates":{}}`
	_, err := ExtractCredentialIdentifiers([]byte(selected), noIntervalRequest())
	if err == nil {
		t.Fatalf("expected error")
	}
	if kind, _ := vcerrors.KindOf(err); kind != vcerrors.InvalidProofCredentialData {
		t.Fatalf("expected InvalidProofCredentialData, got %v", kind)
	}
}

func TestExtractCredentialIdentifiers_OptionalRevocationFields(t *testing.T) {
	selected := `{
		"attrs": {
			"height_1": {
				"credential": {
					"cred_info": {
						"referent": "cred-1",
						"schema_id": "schema-1",
						"cred_def_id": "creddef-1",
						"cred_rev_id": "1"
					}
				},
				"tails_file": "/tmp/tails"
			}
		},
		"predicates": {}
	}`

	creds, err := ExtractCredentialIdentifiers([]byte(selected), noIntervalRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(creds) != 1 {
		t.Fatalf("expected one credential, got %d", len(creds))
	}
	got := creds[0]
	if got.RevRegID != nil {
		t.Fatalf("expected nil rev_reg_id, got %v", *got.RevRegID)
	}
	if got.CredRevID == nil || *got.CredRevID != "1" {
		t.Fatalf("expected cred_rev_id 1, got %v", got.CredRevID)
	}
	if got.TailsFile == nil || *got.TailsFile != "/tmp/tails" {
		t.Fatalf("expected tails_file set")
	}
}

func TestExtractCredentialIdentifiers_MissingSchemaID(t *testing.T) {
	selected := `{
		"attrs": {
			"height_1": {
				"credential": {
					"cred_info": {
						"referent": "cred-1",
						"cred_def_id": "creddef-1",
						"rev_reg_id": "rr-1",
						"cred_rev_id": "1"
					}
				},
				"tails_file": "/tmp/tails"
			}
		},
		"predicates": {}
	}`
	_, err := ExtractCredentialIdentifiers([]byte(selected), noIntervalRequest())
	if kind, _ := vcerrors.KindOf(err); kind != vcerrors.InvalidProofCredentialData {
		t.Fatalf("expected InvalidProofCredentialData, got %v", kind)
	}
}
