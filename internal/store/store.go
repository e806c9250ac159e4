// Package store is the durable key-value layer underneath every service.
// It holds four text records keyed by fixed names; the store itself never
// validates record contents, callers substitute defaults for anything
// missing or malformed.
package store

import "context"

// The four record keys in use. Currency is a denormalized duplicate of the
// currency field inside the settings record, kept under its own key for
// compatibility with earlier data.
const (
	KeySettings     = "appSettings"
	KeyStats        = "appStats"
	KeyTransactions = "appTransactions"
	KeyCurrency     = "appCurrency"
)

// Keys returns every record key, in write order for imports.
func Keys() []string {
	return []string{KeySettings, KeyStats, KeyTransactions, KeyCurrency}
}

// Store is the persistence capability handed to each service. Get reports
// ok=false for a missing key; that is never an error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}
