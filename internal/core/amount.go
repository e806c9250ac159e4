// Package core holds the domain types shared by every service: the
// transaction ledger entries, the cached stats summary, user settings and
// the amount parsing rules applied at the input boundary.
package core

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// ParseExpenseAmount parses a user-entered expense amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and
// requires a strictly positive value with no sign prefix. The ledger decides
// the stored sign, never the caller.
//
// Examples:
//
//	ParseExpenseAmount("50") -> 50, nil
//	ParseExpenseAmount("12,34") -> 12.34, nil
//	ParseExpenseAmount("-5") -> error
func ParseExpenseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return decimal.Zero, ErrInvalidAmount
	}
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '.' {
			return decimal.Zero, ErrInvalidAmount
		}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if d.Sign() <= 0 {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// ParseSignedAmount parses a balance or budget figure. Unlike expense
// amounts these may legitimately be negative (an overdrawn balance).
func ParseSignedAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}
