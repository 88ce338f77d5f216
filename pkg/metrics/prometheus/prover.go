package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/aries-go/vcprover/pkg/metrics"
	"github.com/aries-go/vcprover/pkg/prover"
)

// proverMetrics is the Prometheus implementation of prover.Recorder.
type proverMetrics struct {
	transitions *prometheus.CounterVec
}

// NewProverMetrics creates a Prometheus-backed prover.Recorder.
//
// Returns nil if metrics are not enabled (metrics.InitRegistry not called).
func NewProverMetrics() *proverMetrics {
	if !metrics.IsEnabled() {
		return nil
	}

	reg := metrics.GetRegistry()

	return &proverMetrics{
		transitions: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "vcprover_state_transitions_total",
				Help: "Total number of prover state-machine transitions, by from/to state.",
			},
			[]string{"from", "to"},
		),
	}
}

func (m *proverMetrics) Transition(from, to prover.Kind) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(from.String(), to.String()).Inc()
}

func init() {
	metrics.RegisterProverMetricsConstructor(func() prover.Recorder {
		return NewProverMetrics()
	})
}
