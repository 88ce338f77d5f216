package metrics

import "github.com/aries-go/vcprover/pkg/revocation"

// NewRevocationMetrics creates a Prometheus-backed revocation.Recorder.
//
// Returns nil if metrics are not enabled (InitRegistry not called), so
// callers can always assign the result straight to Builder.Recorder.
func NewRevocationMetrics() revocation.Recorder {
	if !IsEnabled() {
		return nil
	}
	return newPrometheusRevocationMetrics()
}

// newPrometheusRevocationMetrics is supplied by pkg/metrics/prometheus's
// init(), avoiding an import cycle between the interface and its backend.
var newPrometheusRevocationMetrics func() revocation.Recorder

// RegisterRevocationMetricsConstructor registers the Prometheus revocation
// metrics constructor. Called by pkg/metrics/prometheus during package
// initialization.
func RegisterRevocationMetricsConstructor(constructor func() revocation.Recorder) {
	newPrometheusRevocationMetrics = constructor
}
