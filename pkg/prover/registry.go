package prover

import (
	"sync"

	"github.com/aries-go/vcprover/pkg/vcerrors"
)

// entry is one handle's exclusively-owned prover instance: a per-entry
// mutex grants the short-lived exclusive borrow an operation needs, mirroring
// a per-key lock over a coarse registry map rather than cloning the state out
// and writing it back (the pattern the source's global handle map forced).
type entry struct {
	mu       sync.Mutex
	sourceID string
	state    ProverState
}

// Registry is the process-wide handle table: one coarse RWMutex guards
// handle creation/lookup/deletion, and each entry's own mutex serialises the
// operations performed against it, satisfying the "not reentrant per
// handle" requirement without serialising unrelated handles against each
// other.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
	nextID  uint64
}

// NewRegistry constructs an empty handle registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// Create allocates a new handle for a freshly constructed prover and
// returns it.
func (r *Registry) Create(sourceID string, state ProverState) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	handle := handleFromCounter(r.nextID)
	r.entries[handle] = &entry{sourceID: sourceID, state: state}
	return handle
}

// With runs fn with exclusive access to handle's entry, passing it the
// current source id and state; fn's returned state replaces the stored one
// unless it returns an error, in which case the entry is left untouched.
// The lock is released on every exit path, including a panic inside fn.
func (r *Registry) With(handle string, fn func(sourceID string, state ProverState) (ProverState, error)) error {
	e, err := r.lookup(handle)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	next, err := fn(e.sourceID, e.state)
	if err != nil {
		return err
	}
	e.state = next
	return nil
}

// View runs fn with a read-only snapshot of handle's current state; it
// does not hold the entry lock across fn, matching the read-only accessors
// (get_state, get_source_id, ...) that spec §4.I allows from any state.
func (r *Registry) View(handle string, fn func(sourceID string, state ProverState) error) error {
	e, err := r.lookup(handle)
	if err != nil {
		return err
	}

	e.mu.Lock()
	sourceID, state := e.sourceID, e.state
	e.mu.Unlock()

	return fn(sourceID, state)
}

func (r *Registry) lookup(handle string) (*entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[handle]
	if !ok {
		return nil, vcerrors.New(vcerrors.InvalidDisclosedProofHandle, "no prover registered for handle "+handle)
	}
	return e, nil
}

// Release removes handle from the registry; it is not part of the spec's
// operation list but lets long-running hosts bound memory use.
func (r *Registry) Release(handle string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, handle)
}

func handleFromCounter(n uint64) string {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	if n == 0 {
		return "0"
	}
	buf := make([]byte, 0, 16)
	for n > 0 {
		buf = append([]byte{alphabet[n%uint64(len(alphabet))]}, buf...)
		n /= uint64(len(alphabet))
	}
	return "dp-" + string(buf)
}
