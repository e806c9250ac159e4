package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"novaspend/internal/bus"
	"novaspend/internal/core"
	"novaspend/internal/store"
)

// Ledger is the only writer of transaction history. Each recorded expense
// also moves the cached stats; the two writes are separate and non-atomic,
// which is the historical behavior of this data set.
type Ledger struct {
	store    store.Store
	bus      *bus.Bus
	notifier Notifier
}

func NewLedger(st store.Store, b *bus.Bus, n Notifier) *Ledger {
	return &Ledger{store: st, bus: b, notifier: n}
}

// RecordExpense appends a transaction for input and updates the cached
// stats. The stored amount is always the negation of the entered amount;
// the stats adjustments use the entered (pre-negation) amount. Summing
// stored transactions therefore does NOT reproduce totalExpenses; callers
// must not "repair" one from the other.
func (l *Ledger) RecordExpense(ctx context.Context, input core.ExpenseInput) (core.Transaction, error) {
	if err := input.Validate(); err != nil {
		return core.Transaction{}, err
	}

	tx := core.Transaction{
		ID:          time.Now().UnixMilli(),
		Description: input.Description,
		Amount:      input.Amount.Abs().Neg(),
		Date:        input.Date,
		Category:    input.Category,
		Notes:       input.Notes,
	}

	ledger, err := l.Transactions(ctx)
	if err != nil {
		return core.Transaction{}, err
	}

	// Newest first
	ledger = append([]core.Transaction{tx}, ledger...)
	if err := saveRecord(ctx, l.store, store.KeyTransactions, ledger); err != nil {
		return core.Transaction{}, err
	}

	stats, err := loadRecord(ctx, l.store, store.KeyStats, core.Stats{})
	if err != nil {
		return core.Transaction{}, err
	}
	stats.Balance = stats.Balance.Sub(input.Amount)
	stats.TotalExpenses = stats.TotalExpenses.Add(input.Amount)
	if err := saveRecord(ctx, l.store, store.KeyStats, stats); err != nil {
		return core.Transaction{}, fmt.Errorf("ledger written but stats update failed: %w", err)
	}

	slog.InfoContext(ctx, "Expense recorded",
		"id", tx.ID,
		"description", tx.Description,
		"amount", tx.Amount.String(),
		"category", tx.Category,
		"date", tx.Date)

	l.bus.Publish(bus.Notification{Event: bus.EventLedgerUpdated, Key: store.KeyTransactions})
	announce(ctx, l.notifier, store.KeyTransactions, store.KeyStats)

	return tx, nil
}

// Transactions returns the stored ledger, newest first. A missing record is
// an empty ledger.
func (l *Ledger) Transactions(ctx context.Context) ([]core.Transaction, error) {
	return loadRecord(ctx, l.store, store.KeyTransactions, []core.Transaction{})
}

// CategoryBreakdown aggregates the current ledger's expenses by category.
func (l *Ledger) CategoryBreakdown(ctx context.Context) ([]core.CategoryAmount, error) {
	txs, err := l.Transactions(ctx)
	if err != nil {
		return nil, err
	}
	return core.CategoryBreakdown(txs), nil
}
