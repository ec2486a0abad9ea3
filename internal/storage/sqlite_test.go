package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/pixil98/go-testutil"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func TestSQLiteStore_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewSQLiteStore[*mockStoreSpec](newTestDB(t), "mock")

	err := store.Save(ctx, "item-1", &mockStoreSpec{Name: "First", Value: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.Get(ctx, "item-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "name", got.Name, "First")
	testutil.AssertEqual(t, "value", got.Value, 1)

	err = store.Save(ctx, "item-1", &mockStoreSpec{Name: "Updated", Value: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err = store.Get(ctx, "item-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "updated name", got.Name, "Updated")
}

func TestSQLiteStore_GetMissing(t *testing.T) {
	store := NewSQLiteStore[*mockStoreSpec](newTestDB(t), "mock")

	_, err := store.Get(context.Background(), "nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteStore_KindsAreIsolated(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	a := NewSQLiteStore[*mockStoreSpec](db, "a")
	b := NewSQLiteStore[*mockStoreSpec](db, "b")

	if err := a.Save(ctx, "shared", &mockStoreSpec{Name: "from-a"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := b.Save(ctx, "other", &mockStoreSpec{Name: "from-b"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := b.Get(ctx, "shared")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound across kinds, got %v", err)
	}

	all, err := a.GetAll(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "kind a count", len(all), 1)
	testutil.AssertEqual(t, "kind a name", all["shared"].Name, "from-a")
}

func TestSQLiteStore_Revision(t *testing.T) {
	ctx := context.Background()
	store := NewSQLiteStore[*revSpec](newTestDB(t), "rev")

	first := &revSpec{Name: "first"}
	if err := store.Save(ctx, "alice", first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "revision after save", first.Rev, int64(1))

	stale := &revSpec{Name: "stale"}
	err := store.Save(ctx, "alice", stale)
	if !errors.Is(err, ErrRevisionConflict) {
		t.Fatalf("expected ErrRevisionConflict, got %v", err)
	}
	testutil.AssertEqual(t, "stale revision untouched", stale.Rev, int64(0))

	got, err := store.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "stored name", got.Name, "first")
	testutil.AssertEqual(t, "stored revision", got.Rev, int64(1))

	got.Name = "second"
	if err := store.Save(ctx, "alice", got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "revision after second save", got.Rev, int64(2))
}

func TestSQLiteStore_SaveRejectsInvalidId(t *testing.T) {
	store := NewSQLiteStore[*mockStoreSpec](newTestDB(t), "mock")

	err := store.Save(context.Background(), "a.b", &mockStoreSpec{})
	testutil.AssertErrorContains(t, err, "must contain only letters")
}
