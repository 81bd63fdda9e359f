package storage

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "trackr.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestTokenRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	token, err := store.LoadToken(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if token != "" {
		t.Fatalf("fresh store should have no token, got %q", token)
	}

	if err := store.SaveToken(ctx, "tok-1"); err != nil {
		t.Fatal(err)
	}
	token, err = store.LoadToken(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if token != "tok-1" {
		t.Fatalf("got %q want tok-1", token)
	}

	// Saving again replaces the single row.
	if err := store.SaveToken(ctx, "tok-2"); err != nil {
		t.Fatal(err)
	}
	token, _ = store.LoadToken(ctx)
	if token != "tok-2" {
		t.Fatalf("got %q want tok-2", token)
	}

	if err := store.DeleteToken(ctx); err != nil {
		t.Fatal(err)
	}
	token, err = store.LoadToken(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if token != "" {
		t.Fatalf("deleted token still present: %q", token)
	}
}

func TestDashboardRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	payload, _, err := store.LoadDashboard(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if payload != nil {
		t.Fatalf("fresh store should have no dashboard, got %q", payload)
	}

	fetchedAt := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	want := []byte(`{"summary":{},"feed":[]}`)
	if err := store.SaveDashboard(ctx, want, fetchedAt); err != nil {
		t.Fatal(err)
	}

	payload, got, err := store.LoadDashboard(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(payload, want) {
		t.Fatalf("got %q want %q", payload, want)
	}
	if !got.Equal(fetchedAt) {
		t.Fatalf("got fetchedAt %v want %v", got, fetchedAt)
	}
}

func TestDashboardOverwrite(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SaveDashboard(ctx, []byte(`old`), time.Now()); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveDashboard(ctx, []byte(`new`), time.Now()); err != nil {
		t.Fatal(err)
	}

	payload, _, err := store.LoadDashboard(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if string(payload) != "new" {
		t.Fatalf("got %q want new", payload)
	}
}
