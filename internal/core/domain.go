package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

const (
	CurrencyINR Currency = "INR"
	CurrencyUSD Currency = "USD"
)

const (
	CategoryFood           Category = "food"
	CategoryTransportation Category = "transportation"
	CategoryUtilities      Category = "utilities"
	CategoryEntertainment  Category = "entertainment"
	CategoryHealth         Category = "health"
	CategoryOther          Category = "other"
)

type (
	Theme    string
	Currency string
	Category string

	// Transaction is a single recorded expense. Negative amounts are
	// expenses, positive amounts income. Immutable once stored; the whole
	// ledger is only ever replaced wholesale by an import.
	Transaction struct {
		ID          int64           `json:"id"`
		Description string          `json:"description"`
		Amount      decimal.Decimal `json:"amount"`
		Date        string          `json:"date"`
		Category    Category        `json:"category"`
		Notes       string          `json:"notes,omitempty"`
	}

	// Stats is the cached spending summary. It is maintained incrementally
	// on each write and never re-derived from the ledger, so external edits
	// to either record can make the two diverge.
	Stats struct {
		Balance       decimal.Decimal `json:"balance"`
		MonthlyBudget decimal.Decimal `json:"monthlyBudget"`
		TotalExpenses decimal.Decimal `json:"totalExpenses"`
	}

	// Settings holds user preferences. Balance and monthly budget are
	// string-encoded for historical reasons; the numeric copies live in
	// Stats.
	Settings struct {
		MonthlyBudget string   `json:"monthlyBudget"`
		Balance       string   `json:"balance"`
		Theme         Theme    `json:"theme"`
		Notifications bool     `json:"notifications"`
		Currency      Currency `json:"currency"`
	}

	// ExpenseInput is a validated expense submission. Amount is the
	// positive value the user entered; the ledger stores its negation.
	ExpenseInput struct {
		Amount      decimal.Decimal
		Category    Category
		Date        string
		Description string
		Notes       string
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrEmptyDescription = errors.New("empty description")
	ErrInvalidTheme     = errors.New("invalid theme")
	ErrInvalidCurrency  = errors.New("invalid currency")
)

// DateLayout is the calendar-date encoding used on transactions.
const DateLayout = "2006-01-02"

// DefaultSettings are the values substituted for fields missing from a
// stored settings record.
func DefaultSettings() Settings {
	return Settings{
		MonthlyBudget: "0",
		Balance:       "0",
		Theme:         ThemeLight,
		Notifications: true,
		Currency:      CurrencyINR,
	}
}

func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

func (c Currency) Valid() bool {
	return c == CurrencyINR || c == CurrencyUSD
}

func (c Category) Valid() bool {
	switch c {
	case CategoryFood, CategoryTransportation, CategoryUtilities,
		CategoryEntertainment, CategoryHealth, CategoryOther:
		return true
	}
	return false
}

func (in ExpenseInput) Validate() error {
	if in.Amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if _, err := time.Parse(DateLayout, in.Date); err != nil {
		return ErrInvalidDate
	}
	if !in.Category.Valid() {
		return ErrInvalidCategory
	}
	if len(strings.TrimSpace(in.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(in.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return nil
}

func (s Settings) Validate() error {
	if !s.Theme.Valid() {
		return ErrInvalidTheme
	}
	if !s.Currency.Valid() {
		return ErrInvalidCurrency
	}
	if _, err := decimal.NewFromString(s.Balance); err != nil {
		return ErrInvalidAmount
	}
	if _, err := decimal.NewFromString(s.MonthlyBudget); err != nil {
		return ErrInvalidAmount
	}
	return nil
}
