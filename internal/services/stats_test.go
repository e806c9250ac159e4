package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novaspend/internal/store"
)

func TestStatsReadDefaultsToZero(t *testing.T) {
	ctx := context.Background()
	stats := NewStats(store.NewMemory(), nil)

	got, err := stats.Read(ctx)
	require.NoError(t, err)
	assert.True(t, got.Balance.IsZero())
	assert.True(t, got.MonthlyBudget.IsZero())
	assert.True(t, got.TotalExpenses.IsZero())
}

func TestAdjustBalanceLeavesOtherFields(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	stats := NewStats(st, nil)

	require.NoError(t, stats.AdjustBudget(ctx, decimal.NewFromInt(1000)))
	require.NoError(t, stats.AdjustBalance(ctx, decimal.NewFromInt(-250)))

	got, err := stats.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "-250", got.Balance.String())
	assert.Equal(t, "1000", got.MonthlyBudget.String())
	assert.Equal(t, "0", got.TotalExpenses.String())
}

func TestStatsIgnoresUnknownFields(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()

	// Records written by older versions may carry extra fields
	require.NoError(t, st.Set(ctx, store.KeyStats,
		`{"balance":"10","monthlyBudget":"0","totalExpenses":"0","pending":5}`))

	got, err := NewStats(st, nil).Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "10", got.Balance.String())
}
