package settings

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"fringe/internal/adapters/storage"
	domain "fringe/internal/domain/settings"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("init db: %v", err)
	}
	return NewSQLiteStore(db)
}

func TestSQLiteStore_UpsertAndGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	setting := domain.Setting{Key: domain.KeySiteName, Value: "The Fringe", UpdatedAt: now, UpdatedBy: "admin-1"}
	if err := store.Upsert(ctx, setting); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	got, err := store.Get(ctx, domain.KeySiteName)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Value != "The Fringe" {
		t.Errorf("Value = %q, want %q", got.Value, "The Fringe")
	}
	if got.UpdatedBy != "admin-1" {
		t.Errorf("UpdatedBy = %q, want admin-1", got.UpdatedBy)
	}
	if !got.UpdatedAt.Equal(now) {
		t.Errorf("UpdatedAt = %v, want %v", got.UpdatedAt, now)
	}
}

func TestSQLiteStore_UpsertOverwrites(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	if err := store.Upsert(ctx, domain.Setting{Key: domain.KeySiteName, Value: "Old", UpdatedAt: now}); err != nil {
		t.Fatalf("first Upsert: %v", err)
	}
	if err := store.Upsert(ctx, domain.Setting{Key: domain.KeySiteName, Value: "New", UpdatedAt: now, UpdatedBy: "admin-2"}); err != nil {
		t.Fatalf("second Upsert: %v", err)
	}

	got, err := store.Get(ctx, domain.KeySiteName)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Value != "New" {
		t.Errorf("Value = %q, want New", got.Value)
	}
}

func TestSQLiteStore_GetMissing(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.Get(context.Background(), "no_such_key"); err != sql.ErrNoRows {
		t.Errorf("err = %v, want sql.ErrNoRows", err)
	}
}

func TestSQLiteStore_AllOrderedByKey(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	for _, s := range []domain.Setting{
		{Key: domain.KeyTagline, Value: "Make something", UpdatedAt: now},
		{Key: domain.KeyContactEmail, Value: "hello@thefringe.co.nz", UpdatedAt: now},
		{Key: domain.KeySiteName, Value: "The Fringe", UpdatedAt: now},
	} {
		if err := store.Upsert(ctx, s); err != nil {
			t.Fatalf("Upsert %s: %v", s.Key, err)
		}
	}

	all, err := store.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len(all) = %d, want 3", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Key >= all[i].Key {
			t.Errorf("settings not ordered by key: %q before %q", all[i-1].Key, all[i].Key)
		}
	}
}

func TestSQLiteStore_UpsertMany(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	err := store.UpsertMany(ctx, []domain.Setting{
		{Key: domain.KeySiteName, Value: "The Fringe", UpdatedAt: now},
		{Key: domain.KeyContactEmail, Value: "hello@thefringe.co.nz", UpdatedAt: now},
	})
	if err != nil {
		t.Fatalf("UpsertMany: %v", err)
	}

	all, err := store.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("len(all) = %d, want 2", len(all))
	}
}

func TestSQLiteStore_UpsertManyEmpty(t *testing.T) {
	store := openTestStore(t)
	if err := store.UpsertMany(context.Background(), nil); err != nil {
		t.Fatalf("UpsertMany(nil): %v", err)
	}
}
