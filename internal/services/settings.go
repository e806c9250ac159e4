package services

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"novaspend/internal/bus"
	"novaspend/internal/core"
	"novaspend/internal/store"
)

// Settings owns user preferences. Theme changes persist immediately and
// broadcast so every mounted view restyles at once; the remaining fields
// are batched behind an explicit Save to avoid a write per keystroke.
type Settings struct {
	store    store.Store
	bus      *bus.Bus
	notifier Notifier
}

func NewSettings(st store.Store, b *bus.Bus, n Notifier) *Settings {
	return &Settings{store: st, bus: b, notifier: n}
}

// Read returns the stored settings with per-field defaults applied: a
// record written by an older version simply lacks the newer fields.
func (s *Settings) Read(ctx context.Context) (core.Settings, error) {
	return loadRecord(ctx, s.store, store.KeySettings, core.DefaultSettings())
}

// Save persists the full settings record, mirrors the currency under its
// legacy key and overwrites the stats balance/budget from the
// string-encoded fields. The mirror writes are independent, not atomic.
func (s *Settings) Save(ctx context.Context, cfg core.Settings) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := saveRecord(ctx, s.store, store.KeySettings, cfg); err != nil {
		return err
	}
	if err := s.store.Set(ctx, store.KeyCurrency, string(cfg.Currency)); err != nil {
		return err
	}

	stats, err := loadRecord(ctx, s.store, store.KeyStats, core.Stats{})
	if err != nil {
		return err
	}
	// Validate() guarantees both fields parse
	stats.Balance, _ = decimal.NewFromString(cfg.Balance)
	stats.MonthlyBudget, _ = decimal.NewFromString(cfg.MonthlyBudget)
	if err := saveRecord(ctx, s.store, store.KeyStats, stats); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Settings saved",
		"theme", cfg.Theme,
		"currency", cfg.Currency,
		"notifications", cfg.Notifications)

	announce(ctx, s.notifier, store.KeySettings, store.KeyCurrency, store.KeyStats)
	return nil
}

// SetTheme persists the theme immediately, independent of Save, and raises
// the theme-change signal.
func (s *Settings) SetTheme(ctx context.Context, theme core.Theme) error {
	if !theme.Valid() {
		return core.ErrInvalidTheme
	}

	cfg, err := s.Read(ctx)
	if err != nil {
		return err
	}
	cfg.Theme = theme
	if err := saveRecord(ctx, s.store, store.KeySettings, cfg); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Theme changed", "theme", theme)

	s.bus.Publish(bus.Notification{Event: bus.EventThemeChanged, Key: store.KeySettings})
	announce(ctx, s.notifier, store.KeySettings)
	return nil
}

// Currency returns the denormalized currency record, falling back to the
// settings record's currency when the legacy key is absent.
func (s *Settings) Currency(ctx context.Context) (core.Currency, error) {
	raw, ok, err := s.store.Get(ctx, store.KeyCurrency)
	if err != nil {
		return "", err
	}
	if ok && core.Currency(raw).Valid() {
		return core.Currency(raw), nil
	}
	cfg, err := s.Read(ctx)
	if err != nil {
		return "", err
	}
	return cfg.Currency, nil
}
