package prefs

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ziadkadry99/studymate/internal/db"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func TestGetUnset(t *testing.T) {
	store := setupTestStore(t)

	v, ok, err := store.Get(context.Background(), "studyTheme")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Errorf("expected unset key, got %q", v)
	}
}

func TestSetAndOverwrite(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "studyTheme", "midnight"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Set(ctx, "studyTheme", "soft"); err != nil {
		t.Fatalf("second Set: %v", err)
	}

	v, ok, err := store.Get(ctx, "studyTheme")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok || v != "soft" {
		t.Errorf("expected soft, got %q (ok=%v)", v, ok)
	}

	all, err := store.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected 1 preference, got %d", len(all))
	}
}

func TestDelete(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	store.Set(ctx, "k", "v")
	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete of unset key: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "k"); ok {
		t.Error("expected key to be gone")
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")
	ctx := context.Background()

	d1, err := db.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := NewStore(d1).Set(ctx, "studyTheme", "midnight"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	d1.Close()

	d2, err := db.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer d2.Close()

	v, ok, err := NewStore(d2).Get(ctx, "studyTheme")
	if err != nil || !ok || v != "midnight" {
		t.Errorf("expected midnight after reopen, got %q ok=%v err=%v", v, ok, err)
	}
}
