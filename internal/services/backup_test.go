package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novaspend/internal/bus"
	"novaspend/internal/core"
	"novaspend/internal/store"
)

func seededStore(t *testing.T) store.Store {
	t.Helper()
	ctx := context.Background()
	st := store.NewMemory()
	b := bus.New()

	settings := NewSettings(st, b, nil)
	cfg := core.DefaultSettings()
	cfg.Currency = core.CurrencyUSD
	cfg.Balance = "500"
	require.NoError(t, settings.Save(ctx, cfg))

	ledger := NewLedger(st, b, nil)
	_, err := ledger.RecordExpense(ctx, core.ExpenseInput{
		Amount:      decimal.NewFromInt(50),
		Category:    core.CategoryFood,
		Date:        "2024-01-01",
		Description: "Lunch",
	})
	require.NoError(t, err)

	return st
}

func TestExportEmptyStoreDefaults(t *testing.T) {
	ctx := context.Background()
	backup := NewBackup(store.NewMemory(), bus.New(), nil)

	doc, err := backup.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(doc.Settings))
	assert.Equal(t, `{}`, string(doc.Stats))
	assert.Equal(t, `[]`, string(doc.Transactions))
	assert.Equal(t, "", doc.Currency)
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	source := seededStore(t)
	backup := NewBackup(source, bus.New(), nil)

	data, err := backup.ExportJSON(ctx)
	require.NoError(t, err)

	doc, err := ParseDocument(data)
	require.NoError(t, err)

	target := store.NewMemory()
	require.NoError(t, NewBackup(target, bus.New(), nil).Import(ctx, doc))

	// Every record byte-identical to the source store
	for _, key := range store.Keys() {
		want, wantOK, err := source.Get(ctx, key)
		require.NoError(t, err)
		got, gotOK, err := target.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, wantOK, gotOK, key)
		assert.JSONEq(t, orRaw(want), orRaw(got), key)
		assert.Equal(t, want, got, key)
	}
}

// orRaw wraps non-JSON record values (the raw currency string) so JSONEq
// can compare them.
func orRaw(s string) string {
	if json.Valid([]byte(s)) {
		return s
	}
	b, _ := json.Marshal(s)
	return string(b)
}

func TestImportOverwritesExistingData(t *testing.T) {
	ctx := context.Background()
	st := seededStore(t)
	b := bus.New()
	backup := NewBackup(st, b, nil)

	var events []bus.Event
	b.Subscribe(func(n bus.Notification) { events = append(events, n.Event) })

	doc, err := ParseDocument([]byte(`{
		"settings": {"theme":"dark","currency":"INR","balance":"0","monthlyBudget":"0","notifications":true},
		"stats": {"balance":100,"monthlyBudget":0,"totalExpenses":0},
		"transactions": [],
		"currency": "INR"
	}`))
	require.NoError(t, err)
	require.NoError(t, backup.Import(ctx, doc))

	txs, err := NewLedger(st, b, nil).Transactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, txs)

	stats, err := NewStats(st, nil).Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "100", stats.Balance.String())

	require.NotEmpty(t, events)
	assert.Equal(t, bus.EventDataImported, events[0])
}

func TestImportFillsMissingSections(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	backup := NewBackup(st, bus.New(), nil)

	doc, err := ParseDocument([]byte(`{"currency":"USD"}`))
	require.NoError(t, err)
	require.NoError(t, backup.Import(ctx, doc))

	value, ok, err := st.Get(ctx, store.KeyTransactions)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[]`, value)
}

func TestParseDocumentRejectsGarbage(t *testing.T) {
	_, err := ParseDocument([]byte(`this is not json`))
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestClearResetsEverything(t *testing.T) {
	ctx := context.Background()
	st := seededStore(t)
	b := bus.New()
	backup := NewBackup(st, b, nil)

	var events []bus.Event
	b.Subscribe(func(n bus.Notification) { events = append(events, n.Event) },
		bus.EventDataCleared)

	require.NoError(t, backup.Clear(ctx))

	for _, key := range store.Keys() {
		if _, ok, _ := st.Get(ctx, key); ok {
			t.Fatalf("record %s survived clear", key)
		}
	}

	// Services fall back to their defaults after a clear
	settings, err := NewSettings(st, b, nil).Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.DefaultSettings(), settings)

	stats, err := NewStats(st, nil).Read(ctx)
	require.NoError(t, err)
	assert.True(t, stats.Balance.IsZero())

	require.Len(t, events, 1)
}
