// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"

	"codeberg.org/oliverandrich/ledger-api/internal/models"
)

const financeColumns = `id, user_id, kind, description, amount_cents, occurred_on, created_at`

// CreateFinanceEntry books an income or expense for its owner.
func (r *Repository) CreateFinanceEntry(ctx context.Context, entry *models.FinanceEntry) error {
	err := r.conn(ctx).GetContext(ctx, entry,
		`INSERT INTO finance_entries (user_id, kind, description, amount_cents, occurred_on)
		 VALUES (?, ?, ?, ?, ?)
		 RETURNING `+financeColumns,
		entry.UserID, entry.Kind, entry.Description, entry.AmountCents, entry.OccurredOn)
	return wrapError(err)
}

// ListFinanceEntriesByUser returns a user's entries, most recent first.
func (r *Repository) ListFinanceEntriesByUser(ctx context.Context, userID int64) ([]models.FinanceEntry, error) {
	entries := []models.FinanceEntry{}
	err := r.conn(ctx).SelectContext(ctx, &entries,
		`SELECT `+financeColumns+` FROM finance_entries WHERE user_id = ? ORDER BY occurred_on DESC, id DESC`, userID)
	if err != nil {
		return nil, wrapError(err)
	}
	return entries, nil
}
