// Package metrics constructs the metrics collaborators this core's
// components accept (revocation.Recorder for cache hit/miss and ledger
// calls, prover.Recorder for state transitions) and holds the process-wide
// Prometheus registry used to back them. A component that never receives a
// non-nil implementation of these interfaces runs with zero metrics overhead.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	mu       sync.RWMutex
	registry *prometheus.Registry
	enabled  bool
)

// InitRegistry creates the process-wide Prometheus registry that every
// constructor in this package and pkg/metrics/prometheus registers against.
// Hosts that never call InitRegistry get nil metrics everywhere, at zero
// overhead.
func InitRegistry() *prometheus.Registry {
	mu.Lock()
	defer mu.Unlock()

	registry = prometheus.NewRegistry()
	enabled = true
	return registry
}

// IsEnabled reports whether InitRegistry has been called.
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// GetRegistry returns the process-wide registry, or nil if InitRegistry was
// never called.
func GetRegistry() *prometheus.Registry {
	mu.RLock()
	defer mu.RUnlock()
	return registry
}

// Reset tears down the registry. Exposed for test isolation between cases
// that call InitRegistry.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	registry = nil
	enabled = false
}
