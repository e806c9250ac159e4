package store

import (
	"fmt"
	"log/slog"
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Open creates the store selected by backend. The sqlite backend runs
// migrations on open; dbPath is ignored for the memory backend.
func Open(backend, dbPath string) (Store, error) {
	switch backend {
	case BackendSQLite:
		s, err := NewSQLite(dbPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		slog.Info("Initialized sqlite store", "db_path", dbPath)
		return s, nil
	case BackendMemory:
		slog.Info("Initialized memory store")
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", backend)
	}
}
