package postgres

import (
	"context"
	"testing"
	"time"

	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aries-go/vcprover/pkg/walletstore"
)

// newTestStore spins up a real Postgres container and returns a Store
// pointed at it, tearing the container down on test cleanup.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed test in -short mode")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("vcprover_test"),
		tcpostgres.WithUsername("vcprover_test"),
		tcpostgres.WithPassword("vcprover_test"),
		tcpostgres.BasicWaitStrategies(),
		testcontainersWait(),
	)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("container port: %v", err)
	}

	store, err := New(ctx, Config{
		Host:     host,
		Port:     port.Int(),
		Database: "vcprover_test",
		User:     "vcprover_test",
		Password: "vcprover_test",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

// testcontainersWait lets BasicWaitStrategies settle before issuing queries;
// kept as its own function so it reads like a named strategy at the call site.
func testcontainersWait() tcpostgres.ContainerCustomizer {
	return tcpostgres.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
		WithOccurrence(2).
		WithStartupTimeout(60 * time.Second))
}

func TestStore_PutGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	rec := walletstore.PresentationRecord{
		Handle:   "handle-1",
		SourceID: "source-1",
		ThreadID: "thread-1",
		State:    "RequestReceived",
	}
	if err := store.Put(ctx, rec); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := store.Get(ctx, "handle-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.SourceID != "source-1" || got.State != "RequestReceived" {
		t.Fatalf("unexpected record: %+v", got)
	}

	rec.State = "PresentationPrepared"
	if err := store.Put(ctx, rec); err != nil {
		t.Fatalf("Put (update): %v", err)
	}

	got, err = store.Get(ctx, "handle-1")
	if err != nil {
		t.Fatalf("Get after update: %v", err)
	}
	if got.State != "PresentationPrepared" {
		t.Fatalf("expected updated state, got %q", got.State)
	}
}

func TestStore_GetNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "missing")
	if err != walletstore.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_ListBySourceID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, h := range []string{"h1", "h2", "h3"} {
		if err := store.Put(ctx, walletstore.PresentationRecord{
			Handle:   h,
			SourceID: "shared-source",
			State:    "RequestReceived",
		}); err != nil {
			t.Fatalf("Put(%s): %v", h, err)
		}
	}
	if err := store.Put(ctx, walletstore.PresentationRecord{
		Handle:   "other",
		SourceID: "different-source",
		State:    "RequestReceived",
	}); err != nil {
		t.Fatalf("Put(other): %v", err)
	}

	recs, err := store.ListBySourceID(ctx, "shared-source")
	if err != nil {
		t.Fatalf("ListBySourceID: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}
}
