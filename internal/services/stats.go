package services

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"novaspend/internal/core"
	"novaspend/internal/store"
)

// Stats reads and edits the cached spending summary. It never recomputes
// anything from the ledger: the summary is maintained incrementally by the
// ledger and overwritten wholesale by settings saves and imports.
type Stats struct {
	store    store.Store
	notifier Notifier
}

func NewStats(st store.Store, n Notifier) *Stats {
	return &Stats{store: st, notifier: n}
}

// Read returns the stored summary, zeroed when absent.
func (s *Stats) Read(ctx context.Context) (core.Stats, error) {
	return loadRecord(ctx, s.store, store.KeyStats, core.Stats{})
}

// AdjustBalance overwrites the declared balance, leaving the other fields
// untouched.
func (s *Stats) AdjustBalance(ctx context.Context, balance decimal.Decimal) error {
	return s.overwrite(ctx, func(stats *core.Stats) {
		stats.Balance = balance
	})
}

// AdjustBudget overwrites the monthly budget, leaving the other fields
// untouched.
func (s *Stats) AdjustBudget(ctx context.Context, budget decimal.Decimal) error {
	return s.overwrite(ctx, func(stats *core.Stats) {
		stats.MonthlyBudget = budget
	})
}

func (s *Stats) overwrite(ctx context.Context, apply func(*core.Stats)) error {
	stats, err := s.Read(ctx)
	if err != nil {
		return err
	}
	apply(&stats)
	if err := saveRecord(ctx, s.store, store.KeyStats, stats); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Stats updated",
		"balance", stats.Balance.String(),
		"monthly_budget", stats.MonthlyBudget.String())

	announce(ctx, s.notifier, store.KeyStats)
	return nil
}
