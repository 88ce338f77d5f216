// Package revocation implements the revocation-state cache (component C)
// and the revocation-state builder (component D): per credential, decide
// whether to reuse, delta-update, or fresh-create a witness.
package revocation

import "sync"

// CacheKey identifies one cached witness: a specific credential's
// revocation id within a specific revocation registry.
type CacheKey struct {
	RevRegID  string
	CredRevID string
}

// RevState is the cached witness payload: the ledger timestamp it is valid
// as-of, and the opaque witness JSON the crypto engine produced.
type RevState struct {
	Timestamp uint64
	Value     []byte
}

// Entry is the cache's unit of storage, grounded on the source's
// RevRegCache: an optional RevState, since most keys start with none.
type Entry struct {
	RevState *RevState
}

// Cache is the keyed store of (rev_reg_id, cred_rev_id) -> Entry described
// by component C. Get on an absent key returns a default-empty Entry, never
// an error. Access must be single-threaded per key across concurrent
// callers (see spec §5); WithLock provides that for the builder's
// read-modify-write sequence.
type Cache interface {
	Get(key CacheKey) Entry
	Set(key CacheKey, entry Entry)

	// WithLock runs fn with exclusive access to key's slot, passing it the
	// current entry; fn's returned Entry (if ok is true) replaces the
	// stored one. The lock is released on every exit path, including a
	// panic inside fn.
	WithLock(key CacheKey, fn func(current Entry) (updated Entry, ok bool)) error
}

// MemoryCache is the process-wide, in-memory Cache implementation.
// Contention is assumed low (per spec §5), so a single coarse RWMutex over
// the key->slot map is acceptable; each slot additionally carries its own
// mutex so WithLock only blocks callers contending on the same key, not the
// whole cache, matching the per-buffer locking shape of an in-memory
// content cache.
type MemoryCache struct {
	mu    sync.RWMutex
	slots map[CacheKey]*slot
}

type slot struct {
	mu    sync.Mutex
	entry Entry
}

// NewMemoryCache constructs an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{slots: make(map[CacheKey]*slot)}
}

func (c *MemoryCache) getOrCreateSlot(key CacheKey) *slot {
	c.mu.RLock()
	s, ok := c.slots[key]
	c.mu.RUnlock()
	if ok {
		return s
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.slots[key]; ok {
		return s
	}
	s = &slot{}
	c.slots[key] = s
	return s
}

func (c *MemoryCache) Get(key CacheKey) Entry {
	s := c.getOrCreateSlot(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entry
}

func (c *MemoryCache) Set(key CacheKey, entry Entry) {
	s := c.getOrCreateSlot(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entry = entry
}

func (c *MemoryCache) WithLock(key CacheKey, fn func(current Entry) (Entry, bool)) error {
	s := c.getOrCreateSlot(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	updated, ok := fn(s.entry)
	if ok {
		s.entry = updated
	}
	return nil
}
