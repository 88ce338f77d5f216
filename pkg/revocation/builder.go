package revocation

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aries-go/vcprover/pkg/anoncreds"
	"github.com/aries-go/vcprover/pkg/credentials"
	"github.com/aries-go/vcprover/pkg/ledger"
	"github.com/aries-go/vcprover/pkg/vcerrors"
)

// Recorder observes the cache-reuse and ledger-traffic seams named in
// invariants 2/3, for hosts that want to expose them as metrics. A nil
// Recorder (the default) is a silent no-op; implementations need not guard
// against it.
type Recorder interface {
	CacheHit()
	CacheMiss()
	LedgerCall()
}

// Builder implements component D: given the credentials extracted by
// component B, it produces the revocation-states JSON bundle fed to the
// crypto engine, stamping each contributing CredInfoProver's Timestamp in
// place.
type Builder struct {
	Cache    Cache
	Ledger   ledger.Ledger
	Crypto   anoncreds.Engine
	Recorder Recorder
}

// NewBuilder wires a revocation-state Builder from its three collaborators.
func NewBuilder(cache Cache, led ledger.Ledger, crypto anoncreds.Engine) *Builder {
	return &Builder{Cache: cache, Ledger: led, Crypto: crypto}
}

func (b *Builder) record(fn func(Recorder)) {
	if b.Recorder != nil {
		fn(b.Recorder)
	}
}

// memoEntry is what BuildRevocationStates remembers, within one call, about
// a rev_reg_id it has already processed: the timestamp every subsequent
// credential sharing that registry should copy (see spec §4.D and the
// TODO preserved from the source: a second credential on the same registry
// is never independently reprocessed, even if it names a different
// cred_rev_id).
type memoEntry struct {
	timestamp uint64
}

// BuildRevocationStates implements the core algorithm of component D. It
// mutates creds in place, setting Timestamp on every entry that has all of
// (RevRegID, CredRevID, TailsFile); other entries are left with a nil
// Timestamp. It returns the accumulated
// { rev_reg_id: { "<timestamp>": witness_json } } bundle.
func (b *Builder) BuildRevocationStates(ctx context.Context, creds []credentials.CredInfoProver) ([]byte, error) {
	out := map[string]json.RawMessage{}
	memo := map[string]memoEntry{}

	for i := range creds {
		cred := &creds[i]
		if cred.RevRegID == nil || cred.CredRevID == nil || cred.TailsFile == nil {
			continue
		}
		revRegID := *cred.RevRegID

		if entry, ok := memo[revRegID]; ok {
			ts := entry.timestamp
			cred.Timestamp = &ts
			continue
		}

		witness, timestamp, err := b.buildOne(ctx, *cred)
		if err != nil {
			return nil, err
		}

		out[revRegID] = json.RawMessage(fmt.Sprintf(`{%q:%s}`, fmt.Sprintf("%d", timestamp), witness))
		ts := timestamp
		cred.Timestamp = &ts
		memo[revRegID] = memoEntry{timestamp: timestamp}
	}

	return json.Marshal(out)
}

// buildOne runs the three-branch reuse/delta-update/fresh-create algorithm
// of spec §4.D for a single credential's revocation registry.
func (b *Builder) buildOne(ctx context.Context, cred credentials.CredInfoProver) (witness []byte, timestamp uint64, err error) {
	revRegID := *cred.RevRegID
	credRevID := *cred.CredRevID
	tailsFile := *cred.TailsFile

	var from, to *uint64
	if cred.RevocationInterval != nil {
		from, to = cred.RevocationInterval.From, cred.RevocationInterval.To
	}

	key := CacheKey{RevRegID: revRegID, CredRevID: credRevID}
	cached := b.Cache.Get(key)

	// Branch 1/2 both require a cached witness AND an upper bound on the
	// window; absent either, only fresh-create is viable (this matches
	// the original source: a cache hit with no upper bound is not reused
	// or incrementally updated, it is unconditionally replaced).
	if cached.RevState != nil && to != nil {
		s := cached.RevState
		fromFloor := uint64(0)
		if from != nil {
			fromFloor = *from
		}

		if s.Timestamp >= fromFloor && s.Timestamp <= *to {
			// Branch 1: reuse. No ledger or crypto call.
			b.record(Recorder.CacheHit)
			return s.Value, s.Timestamp, nil
		}

		// Branch 2: delta-update.
		b.record(Recorder.CacheMiss)
		var adjustedFrom *uint64
		if from != nil && *from >= s.Timestamp {
			adjustedFrom = &s.Timestamp
		}

		b.record(Recorder.LedgerCall)
		_, revRegDefJSON, err := b.Ledger.GetRevRegDef(ctx, revRegID)
		if err != nil {
			return nil, 0, vcerrors.Wrap(vcerrors.LibindyError, err, "cannot fetch rev reg def "+revRegID)
		}

		b.record(Recorder.LedgerCall)
		_, deltaJSON, newTimestamp, err := b.Ledger.GetRevRegDelta(ctx, revRegID, adjustedFrom, to)
		if err != nil {
			return nil, 0, vcerrors.Wrap(vcerrors.LibindyError, err, "cannot fetch rev reg delta "+revRegID)
		}

		newValue, err := b.Crypto.UpdateRevocationState(ctx, revRegDefJSON, s.Value, deltaJSON, credRevID, tailsFile)
		if err != nil {
			return nil, 0, vcerrors.Wrap(vcerrors.LibindyError, err, "cannot update revocation state")
		}

		if newTimestamp > s.Timestamp {
			b.Cache.Set(key, Entry{RevState: &RevState{Timestamp: newTimestamp, Value: newValue}})
		}

		return newValue, newTimestamp, nil
	}

	// Branch 3: fresh-create.
	b.record(Recorder.CacheMiss)

	b.record(Recorder.LedgerCall)
	_, revRegDefJSON, err := b.Ledger.GetRevRegDef(ctx, revRegID)
	if err != nil {
		return nil, 0, vcerrors.Wrap(vcerrors.LibindyError, err, "cannot fetch rev reg def "+revRegID)
	}

	b.record(Recorder.LedgerCall)
	_, deltaJSON, newTimestamp, err := b.Ledger.GetRevRegDelta(ctx, revRegID, nil, to)
	if err != nil {
		return nil, 0, vcerrors.Wrap(vcerrors.LibindyError, err, "cannot fetch rev reg delta "+revRegID)
	}

	value, err := b.Crypto.CreateRevocationState(ctx, revRegDefJSON, deltaJSON, credRevID, tailsFile)
	if err != nil {
		return nil, 0, vcerrors.Wrap(vcerrors.LibindyError, err, "cannot create revocation state")
	}

	b.Cache.Set(key, Entry{RevState: &RevState{Timestamp: newTimestamp, Value: value}})

	return value, newTimestamp, nil
}
