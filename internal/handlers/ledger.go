// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"
	"strings"

	"codeberg.org/oliverandrich/ledger-api/internal/auth"
	"codeberg.org/oliverandrich/ledger-api/internal/models"
	"github.com/labstack/echo/v4"
)

// CreateInvoiceRequest is the body of POST /invoices.
type CreateInvoiceRequest struct {
	Number      string `json:"number" validate:"required,max=50"`
	Description string `json:"description" validate:"max=255"`
	AmountCents int64  `json:"amount_cents" validate:"gt=0"`
	DueDate     string `json:"due_date" validate:"required,datetime=2006-01-02"`
	Status      string `json:"status" validate:"omitempty,oneof=pending paid cancelled"`
}

// CreateFinanceEntryRequest is the body of POST /finances.
type CreateFinanceEntryRequest struct {
	Kind        string `json:"kind" validate:"required,oneof=income expense"`
	Description string `json:"description" validate:"max=255"`
	AmountCents int64  `json:"amount_cents" validate:"gt=0"`
	OccurredOn  string `json:"occurred_on" validate:"required,datetime=2006-01-02"`
}

// FinancesResponse is the body of GET /finances.
type FinancesResponse struct {
	Entries []models.FinanceEntry `json:"entries"`
	Totals  models.FinanceTotals  `json:"totals"`
}

// ListInvoices returns the caller's invoices, newest first.
func (h *Handlers) ListInvoices(c echo.Context) error {
	ctx := c.Request().Context()
	user := auth.GetUser(ctx)
	if user == nil {
		return message(c, http.StatusUnauthorized, "unauthenticated")
	}

	invoices, err := h.repo.ListInvoicesByUser(ctx, user.ID)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, invoices)
}

// CreateInvoice stores an invoice owned by the caller.
func (h *Handlers) CreateInvoice(c echo.Context) error {
	ctx := c.Request().Context()
	user := auth.GetUser(ctx)
	if user == nil {
		return message(c, http.StatusUnauthorized, "unauthenticated")
	}

	var req CreateInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c, err)
	}
	req.Number = strings.TrimSpace(req.Number)
	req.Description = strings.TrimSpace(req.Description)

	if err := validateStruct(req); err != nil {
		return renderError(c, err)
	}

	invoice := &models.Invoice{
		UserID:      user.ID,
		Number:      req.Number,
		Description: req.Description,
		AmountCents: req.AmountCents,
		DueDate:     req.DueDate,
		Status:      req.Status,
	}
	if err := h.repo.CreateInvoice(ctx, invoice); err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusCreated, invoice)
}

// Finances returns the caller's finance entries with their totals.
func (h *Handlers) Finances(c echo.Context) error {
	ctx := c.Request().Context()
	user := auth.GetUser(ctx)
	if user == nil {
		return message(c, http.StatusUnauthorized, "unauthenticated")
	}

	entries, err := h.repo.ListFinanceEntriesByUser(ctx, user.ID)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, FinancesResponse{
		Entries: entries,
		Totals:  models.Totals(entries),
	})
}

// CreateFinanceEntry books an income or expense for the caller.
func (h *Handlers) CreateFinanceEntry(c echo.Context) error {
	ctx := c.Request().Context()
	user := auth.GetUser(ctx)
	if user == nil {
		return message(c, http.StatusUnauthorized, "unauthenticated")
	}

	var req CreateFinanceEntryRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c, err)
	}
	req.Description = strings.TrimSpace(req.Description)

	if err := validateStruct(req); err != nil {
		return renderError(c, err)
	}

	entry := &models.FinanceEntry{
		UserID:      user.ID,
		Kind:        req.Kind,
		Description: req.Description,
		AmountCents: req.AmountCents,
		OccurredOn:  req.OccurredOn,
	}
	if err := h.repo.CreateFinanceEntry(ctx, entry); err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusCreated, entry)
}
