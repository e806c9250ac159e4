package core

import "github.com/shopspring/decimal"

// CategoryAmount represents spending aggregated under one category.
type CategoryAmount struct {
	Name   Category        `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// CategoryBreakdown sums the absolute value of every expense (negative
// amount) per category. Income entries are skipped. Categories appear in
// first-seen ledger order, which keeps the output stable for a given ledger.
func CategoryBreakdown(txs []Transaction) []CategoryAmount {
	totals := make(map[Category]decimal.Decimal)
	var order []Category
	for _, tx := range txs {
		if tx.Amount.Sign() >= 0 {
			continue
		}
		abs := tx.Amount.Abs()
		if cur, ok := totals[tx.Category]; ok {
			totals[tx.Category] = cur.Add(abs)
		} else {
			totals[tx.Category] = abs
			order = append(order, tx.Category)
		}
	}

	breakdown := make([]CategoryAmount, 0, len(order))
	for _, name := range order {
		breakdown = append(breakdown, CategoryAmount{Name: name, Amount: totals[name]})
	}
	return breakdown
}
