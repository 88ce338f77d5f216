package metrics

import "github.com/aries-go/vcprover/pkg/prover"

// NewProverMetrics creates a Prometheus-backed prover.Recorder.
//
// Returns nil if metrics are not enabled (InitRegistry not called).
func NewProverMetrics() prover.Recorder {
	if !IsEnabled() {
		return nil
	}
	return newPrometheusProverMetrics()
}

// newPrometheusProverMetrics is supplied by pkg/metrics/prometheus's init().
var newPrometheusProverMetrics func() prover.Recorder

// RegisterProverMetricsConstructor registers the Prometheus prover metrics
// constructor. Called by pkg/metrics/prometheus during package
// initialization.
func RegisterProverMetricsConstructor(constructor func() prover.Recorder) {
	newPrometheusProverMetrics = constructor
}
