// Package walletstore is a narrow persistence collaborator for the
// out-of-scope wallet storage boundary: it does not hold key material or
// link secrets, only the audit trail of presentations a host chooses to
// keep around (handle, source id, thread id, lifecycle state, timestamps).
// The prover core itself never depends on this package; it is an optional
// recorder a control-plane host wires in, the same way revocation.Recorder
// and prover.Recorder are optional.
package walletstore

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a presentation record does not exist.
var ErrNotFound = errors.New("walletstore: presentation record not found")

// PresentationRecord is a single row of presentation history.
type PresentationRecord struct {
	Handle    string `gorm:"primaryKey"`
	SourceID  string
	ThreadID  string
	State     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store persists and queries presentation history. Implementations must be
// safe for concurrent use.
type Store interface {
	// Put inserts rec if its handle is new, or updates SourceID/ThreadID/State/UpdatedAt
	// if it already exists.
	Put(ctx context.Context, rec PresentationRecord) error

	// Get returns the record for handle, or ErrNotFound.
	Get(ctx context.Context, handle string) (*PresentationRecord, error)

	// ListBySourceID returns every record created for sourceID, newest first.
	ListBySourceID(ctx context.Context, sourceID string) ([]PresentationRecord, error)
}
