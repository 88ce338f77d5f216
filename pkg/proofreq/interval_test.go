package proofreq

import (
	"testing"

	"github.com/aries-go/vcprover/pkg/vcerrors"
)

func u64(v uint64) *uint64 { return &v }

func requestWithIntervals() *ProofRequestData {
	return &ProofRequestData{
		Nonce:   "123432421212",
		Name:    "proof_req_1",
		Version: "0.1",
		RequestedAttributes: map[string]AttrSpec{
			"address1_1": {
				Name:       "address1",
				NonRevoked: &NonRevokedInterval{From: u64(123), To: u64(456)},
			},
			"zip_2": {Name: "zip"},
		},
		RequestedPredicates: map[string]PredicateSpec{},
		NonRevoked:          &NonRevokedInterval{From: u64(98), To: u64(123)},
	}
}

// S1 — Interval precedence.
func TestResolveInterval_Precedence(t *testing.T) {
	req := requestWithIntervals()

	got, err := ResolveInterval("address1_1", req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(&NonRevokedInterval{From: u64(123), To: u64(456)}) {
		t.Fatalf("address1_1: got %+v", got)
	}

	got, err = ResolveInterval("zip_2", req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(&NonRevokedInterval{From: u64(98), To: u64(123)}) {
		t.Fatalf("zip_2: got %+v", got)
	}

	_, err = ResolveInterval("missing", req)
	if err == nil {
		t.Fatalf("expected error for missing attribute")
	}
	if kind, _ := vcerrors.KindOf(err); kind != vcerrors.InvalidProofCredentialData {
		t.Fatalf("expected InvalidProofCredentialData, got %v", kind)
	}
}

func TestResolveInterval_NoIntervalAnywhere(t *testing.T) {
	req := &ProofRequestData{
		RequestedAttributes: map[string]AttrSpec{
			"address1_1": {Name: "address1"},
			"zip_2":      {Name: "zip"},
			"height_1":   {Name: "height"},
		},
		RequestedPredicates: map[string]PredicateSpec{},
	}

	got, err := ResolveInterval("address1_1", req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil interval, got %+v", got)
	}
}

func TestResolveInterval_PredicateLookup(t *testing.T) {
	req := &ProofRequestData{
		RequestedAttributes: map[string]AttrSpec{},
		RequestedPredicates: map[string]PredicateSpec{
			"age_1": {Name: "age", NonRevoked: &NonRevokedInterval{To: u64(987)}},
		},
	}

	got, err := ResolveInterval("age_1", req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(&NonRevokedInterval{To: u64(987)}) {
		t.Fatalf("age_1: got %+v", got)
	}
}
