package core

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestExpenseInputValidate(t *testing.T) {
	valid := ExpenseInput{
		Amount:      decimal.NewFromInt(50),
		Category:    CategoryFood,
		Date:        "2024-01-01",
		Description: "Lunch",
	}

	if err := valid.Validate(); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*ExpenseInput)
		want   error
	}{
		{"zero amount", func(in *ExpenseInput) { in.Amount = decimal.Zero }, ErrInvalidAmount},
		{"negative amount", func(in *ExpenseInput) { in.Amount = decimal.NewFromInt(-5) }, ErrInvalidAmount},
		{"bad date", func(in *ExpenseInput) { in.Date = "01/01/2024" }, ErrInvalidDate},
		{"empty date", func(in *ExpenseInput) { in.Date = "" }, ErrInvalidDate},
		{"unknown category", func(in *ExpenseInput) { in.Category = "groceries" }, ErrInvalidCategory},
		{"empty description", func(in *ExpenseInput) { in.Description = "  " }, ErrEmptyDescription},
	}
	for _, tc := range cases {
		in := valid
		tc.mutate(&in)
		if err := in.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}

	long := valid
	long.Description = strings.Repeat("x", 201)
	if err := long.Validate(); err == nil {
		t.Fatal("201-char description accepted")
	}
}

func TestSettingsValidate(t *testing.T) {
	valid := Settings{
		MonthlyBudget: "1000",
		Balance:       "-50.25",
		Theme:         ThemeDark,
		Notifications: false,
		Currency:      CurrencyUSD,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid settings rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Settings)
		want   error
	}{
		{"bad theme", func(s *Settings) { s.Theme = "sepia" }, ErrInvalidTheme},
		{"bad currency", func(s *Settings) { s.Currency = "EUR" }, ErrInvalidCurrency},
		{"bad balance", func(s *Settings) { s.Balance = "lots" }, ErrInvalidAmount},
		{"bad budget", func(s *Settings) { s.MonthlyBudget = "" }, ErrInvalidAmount},
	}
	for _, tc := range cases {
		s := valid
		tc.mutate(&s)
		if err := s.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestDefaultSettings(t *testing.T) {
	def := DefaultSettings()
	if def.Theme != ThemeLight || def.Currency != CurrencyINR || !def.Notifications {
		t.Fatalf("unexpected defaults: %+v", def)
	}
	if def.Balance != "0" || def.MonthlyBudget != "0" {
		t.Fatalf("unexpected default amounts: %+v", def)
	}
	if err := def.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestCategoryValid(t *testing.T) {
	for _, c := range []Category{CategoryFood, CategoryTransportation, CategoryUtilities, CategoryEntertainment, CategoryHealth, CategoryOther} {
		if !c.Valid() {
			t.Fatalf("%s should be valid", c)
		}
	}
	if Category("rent").Valid() {
		t.Fatal("unknown category accepted")
	}
	if Category("Food").Valid() {
		t.Fatal("category names are case-sensitive")
	}
}
