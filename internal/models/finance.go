// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import "time"

// Finance entry kinds.
const (
	FinanceIncome  = "income"
	FinanceExpense = "expense"
)

// FinanceEntry is a single income or expense booked by a user.
type FinanceEntry struct { //nolint:govet // fieldalignment: readability over optimization
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	Kind        string    `db:"kind" json:"kind"`
	Description string    `db:"description" json:"description"`
	AmountCents int64     `db:"amount_cents" json:"amount_cents"`
	OccurredOn  string    `db:"occurred_on" json:"occurred_on"` // YYYY-MM-DD
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// FinanceTotals sums a set of entries.
type FinanceTotals struct {
	Income  int64 `json:"income"`
	Expense int64 `json:"expense"`
	Balance int64 `json:"balance"`
}

// Totals computes income, expense and balance over entries.
func Totals(entries []FinanceEntry) FinanceTotals {
	var t FinanceTotals
	for _, e := range entries {
		switch e.Kind {
		case FinanceIncome:
			t.Income += e.AmountCents
		case FinanceExpense:
			t.Expense += e.AmountCents
		}
	}
	t.Balance = t.Income - t.Expense
	return t
}
