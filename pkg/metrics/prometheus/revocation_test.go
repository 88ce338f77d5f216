package prometheus

import (
	"testing"

	"github.com/aries-go/vcprover/pkg/metrics"
)

func TestNewRevocationMetrics_DisabledReturnsNil(t *testing.T) {
	metrics.Reset()

	m := NewRevocationMetrics()
	if m != nil {
		t.Fatalf("expected nil revocation metrics when registry not initialized")
	}
}

func TestNewRevocationMetrics_RecordsCounters(t *testing.T) {
	metrics.InitRegistry()
	defer metrics.Reset()

	m := NewRevocationMetrics()
	if m == nil {
		t.Fatal("expected non-nil revocation metrics once registry initialized")
	}

	m.CacheHit()
	m.CacheMiss()
	m.LedgerCall()
}

func TestNewProverMetrics_RecordsTransitions(t *testing.T) {
	metrics.InitRegistry()
	defer metrics.Reset()

	m := NewProverMetrics()
	if m == nil {
		t.Fatal("expected non-nil prover metrics once registry initialized")
	}

	m.Transition(0, 1)
}
