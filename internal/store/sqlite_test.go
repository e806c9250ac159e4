package store

import (
	"context"
	"path/filepath"
	"testing"
)

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	s, err := NewSQLite(dbPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	if _, ok, err := s.Get(ctx, KeyStats); err != nil || ok {
		t.Fatalf("fresh store: ok=%v err=%v", ok, err)
	}

	if err := s.Set(ctx, KeyStats, `{"balance":"-50"}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, ok, err := s.Get(ctx, KeyStats)
	if err != nil || !ok || value != `{"balance":"-50"}` {
		t.Fatalf("get: value=%q ok=%v err=%v", value, ok, err)
	}

	// Upsert on conflict
	if err := s.Set(ctx, KeyStats, `{"balance":"0"}`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if value, _, _ := s.Get(ctx, KeyStats); value != `{"balance":"0"}` {
		t.Fatalf("overwrite not applied: %q", value)
	}

	if err := s.Remove(ctx, KeyStats); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok, _ := s.Get(ctx, KeyStats); ok {
		t.Fatal("record survived remove")
	}
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	s, err := NewSQLite(dbPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Set(ctx, KeyCurrency, "USD"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewSQLite(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	value, ok, err := reopened.Get(ctx, KeyCurrency)
	if err != nil || !ok || value != "USD" {
		t.Fatalf("value did not survive reopen: value=%q ok=%v err=%v", value, ok, err)
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	if _, err := Open("redis", ""); err == nil {
		t.Fatal("expected error for unsupported backend")
	}
}
