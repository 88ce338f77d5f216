package api

import (
	"sync"

	"github.com/aries-go/vcprover/pkg/connection"
)

// ConnectionRegistry resolves a connection handle supplied in a request body
// to the pairwise connection.Connection the prover sends/receives through.
// Connection lifecycle lives outside this core; this registry only lets the
// demo control-plane surface address one by the id a caller already holds.
type ConnectionRegistry struct {
	mu    sync.RWMutex
	conns map[string]connection.Connection
}

// NewConnectionRegistry constructs an empty connection registry.
func NewConnectionRegistry() *ConnectionRegistry {
	return &ConnectionRegistry{conns: make(map[string]connection.Connection)}
}

// Register associates handle with conn, overwriting any existing entry.
func (r *ConnectionRegistry) Register(handle string, conn connection.Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[handle] = conn
}

// Get looks up the connection registered under handle.
func (r *ConnectionRegistry) Get(handle string) (connection.Connection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	conn, ok := r.conns[handle]
	return conn, ok
}
