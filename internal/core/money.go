package core

import (
	"fmt"
	"strconv"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

type (
	TransactionType string

	Money struct {
		Cents int64
	}

	// Transaction is a single ledger movement.
	Transaction struct {
		ID          string
		Type        TransactionType
		Date        string // ISO calendar day
		PeriodTag   string
		Amount      Money
		Description string
		Category    string
	}

	Totals struct {
		Income  Money
		Expense Money
	}
)

// FormatUSD renders cents as a dollar string, e.g. "$12.34".
func FormatUSD(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	dollars := cents / 100
	rem := cents % 100
	s := strconv.FormatInt(dollars, 10) + "." + fmt.Sprintf("%02d", rem)
	if neg {
		return "-$" + s
	}
	return "$" + s
}
