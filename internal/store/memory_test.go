package store

import (
	"context"
	"testing"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if _, ok, err := m.Get(ctx, KeySettings); err != nil || ok {
		t.Fatalf("fresh store: ok=%v err=%v", ok, err)
	}

	if err := m.Set(ctx, KeySettings, `{"theme":"dark"}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, ok, err := m.Get(ctx, KeySettings)
	if err != nil || !ok || value != `{"theme":"dark"}` {
		t.Fatalf("get after set: value=%q ok=%v err=%v", value, ok, err)
	}

	// Overwrite replaces in place
	if err := m.Set(ctx, KeySettings, `{}`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if value, _, _ := m.Get(ctx, KeySettings); value != `{}` {
		t.Fatalf("overwrite not applied: %q", value)
	}

	if err := m.Remove(ctx, KeySettings); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok, _ := m.Get(ctx, KeySettings); ok {
		t.Fatal("record survived remove")
	}

	// Removing an absent key is not an error
	if err := m.Remove(ctx, "missing"); err != nil {
		t.Fatalf("remove missing: %v", err)
	}
}

func TestKeys(t *testing.T) {
	keys := Keys()
	if len(keys) != 4 {
		t.Fatalf("expected 4 record keys, got %d", len(keys))
	}
	want := map[string]bool{
		KeySettings:     true,
		KeyStats:        true,
		KeyTransactions: true,
		KeyCurrency:     true,
	}
	for _, k := range keys {
		if !want[k] {
			t.Fatalf("unexpected key %q", k)
		}
	}
}
