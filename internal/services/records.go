// Package services implements the operations over the persisted records:
// the transaction ledger, the cached stats summary, user settings and the
// backup lifecycle. Each service receives its Store explicitly so tests can
// substitute the in-memory implementation.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"novaspend/internal/store"
)

// Notifier announces rewritten record keys to other running instances.
// *notify.Client satisfies it; a nil Notifier disables announcements.
type Notifier interface {
	PublishChange(ctx context.Context, keys []string) error
}

// loadRecord reads and decodes one JSON record. A missing record is not an
// error; a malformed one is logged and replaced by the default, per the
// default-substitution contract of the store.
func loadRecord[T any](ctx context.Context, st store.Store, key string, def T) (T, error) {
	raw, ok, err := st.Get(ctx, key)
	if err != nil {
		return def, fmt.Errorf("load record %s: %w", key, err)
	}
	if !ok {
		return def, nil
	}

	value := def
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		slog.WarnContext(ctx, "Malformed record, substituting defaults",
			"key", key,
			"error", err)
		return def, nil
	}
	return value, nil
}

// saveRecord encodes and writes one JSON record.
func saveRecord(ctx context.Context, st store.Store, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode record %s: %w", key, err)
	}
	if err := st.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("save record %s: %w", key, err)
	}
	return nil
}

// announce publishes changed keys through the notifier. Failures are logged
// and swallowed: the local write already succeeded and other instances will
// read fresh state on their next mount anyway.
func announce(ctx context.Context, n Notifier, keys ...string) {
	if n == nil {
		return
	}
	if err := n.PublishChange(ctx, keys); err != nil {
		slog.ErrorContext(ctx, "Failed to announce record change",
			"keys", keys,
			"error", err)
	}
}
