package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/aries-go/vcprover/pkg/metrics"
	"github.com/aries-go/vcprover/pkg/revocation"
)

// revocationMetrics is the Prometheus implementation of revocation.Recorder.
type revocationMetrics struct {
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
	ledgerCalls prometheus.Counter
}

// NewRevocationMetrics creates a Prometheus-backed revocation.Recorder.
//
// Returns nil if metrics are not enabled (metrics.InitRegistry not called).
func NewRevocationMetrics() *revocationMetrics {
	if !metrics.IsEnabled() {
		return nil
	}

	reg := metrics.GetRegistry()

	return &revocationMetrics{
		cacheHits: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "vcprover_rev_cache_hits_total",
			Help: "Total number of revocation-state cache reuses.",
		}),
		cacheMisses: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "vcprover_rev_cache_misses_total",
			Help: "Total number of revocation-state cache misses (delta-update or fresh-create).",
		}),
		ledgerCalls: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "vcprover_ledger_calls_total",
			Help: "Total number of ledger reads issued while building revocation states.",
		}),
	}
}

func (m *revocationMetrics) CacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

func (m *revocationMetrics) CacheMiss() {
	if m == nil {
		return
	}
	m.cacheMisses.Inc()
}

func (m *revocationMetrics) LedgerCall() {
	if m == nil {
		return
	}
	m.ledgerCalls.Inc()
}

func init() {
	metrics.RegisterRevocationMetricsConstructor(func() revocation.Recorder {
		return NewRevocationMetrics()
	})
}
