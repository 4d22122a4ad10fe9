package core

import "time"

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// ComputeTotals sums income and expense amounts across transactions.
func ComputeTotals(transactions []Transaction) Totals {
	var t Totals
	for _, tx := range transactions {
		if tx.Type == Income {
			t.Income.Cents += tx.Amount.Cents
		} else {
			t.Expense.Cents += tx.Amount.Cents
		}
	}
	return t
}

// GroupByCategory aggregates transactions of the given type by category,
// preserving first-seen category order.
func GroupByCategory(transactions []Transaction, typ TransactionType) []CategoryAmount {
	index := make(map[string]int)
	var out []CategoryAmount
	for _, tx := range transactions {
		if tx.Type != typ {
			continue
		}
		if i, ok := index[tx.Category]; ok {
			out[i].Amount.Cents += tx.Amount.Cents
			continue
		}
		index[tx.Category] = len(out)
		out = append(out, CategoryAmount{Name: tx.Category, Amount: tx.Amount})
	}
	return out
}

// ComputeEndingBalance applies month totals to a starting balance.
func ComputeEndingBalance(starting Money, totals Totals) Money {
	return Money{Cents: starting.Cents + totals.Income.Cents - totals.Expense.Cents}
}

// NormalizePeriod maps an ISO calendar day to its week-of-month tag.
// Unparseable dates map to the empty string.
func NormalizePeriod(dateISO string) string {
	d, err := time.Parse("2006-01-02", dateISO)
	if err != nil {
		return ""
	}
	switch day := d.Day(); {
	case day <= 7:
		return "1st-7th"
	case day <= 14:
		return "8th-14th"
	case day <= 21:
		return "15th-21st"
	default:
		return "22nd-31st"
	}
}
