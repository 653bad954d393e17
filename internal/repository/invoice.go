// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"

	"codeberg.org/oliverandrich/ledger-api/internal/models"
)

const invoiceColumns = `id, user_id, number, description, amount_cents, due_date, status, created_at, updated_at`

// CreateInvoice inserts an invoice for its owner.
func (r *Repository) CreateInvoice(ctx context.Context, invoice *models.Invoice) error {
	if invoice.Status == "" {
		invoice.Status = models.InvoicePending
	}
	err := r.conn(ctx).GetContext(ctx, invoice,
		`INSERT INTO invoices (user_id, number, description, amount_cents, due_date, status)
		 VALUES (?, ?, ?, ?, ?, ?)
		 RETURNING `+invoiceColumns,
		invoice.UserID, invoice.Number, invoice.Description, invoice.AmountCents, invoice.DueDate, invoice.Status)
	return wrapError(err)
}

// ListInvoicesByUser returns the invoices owned by a user, newest first.
func (r *Repository) ListInvoicesByUser(ctx context.Context, userID int64) ([]models.Invoice, error) {
	invoices := []models.Invoice{}
	err := r.conn(ctx).SelectContext(ctx, &invoices,
		`SELECT `+invoiceColumns+` FROM invoices WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, wrapError(err)
	}
	return invoices, nil
}
