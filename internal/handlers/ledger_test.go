// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"codeberg.org/oliverandrich/ledger-api/internal/handlers"
	"codeberg.org/oliverandrich/ledger-api/internal/models"
	"codeberg.org/oliverandrich/ledger-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateInvoice(t *testing.T) {
	e, _ := newTestApp(t)
	token := registerAna(t, e)

	rec := post(e, "/invoices",
		`{"number":"INV-1","description":"Consulting","amount_cents":150000,"due_date":"2026-02-28"}`, token)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var invoice models.Invoice
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &invoice))
	assert.NotZero(t, invoice.ID)
	assert.Equal(t, "INV-1", invoice.Number)
	assert.Equal(t, int64(150000), invoice.AmountCents)
	assert.Equal(t, models.InvoicePending, invoice.Status)
}

func TestCreateInvoice_ValidationErrors(t *testing.T) {
	e, _ := newTestApp(t)
	token := registerAna(t, e)

	rec := post(e, "/invoices", `{"amount_cents":0,"due_date":"28/02/2026","status":"overdue"}`, token)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"errors":{
		"number":["The number field is required."],
		"amount_cents":["The amount cents field must be greater than 0."],
		"due_date":["The due date field must be a valid date in the format YYYY-MM-DD."],
		"status":["The selected status is invalid."]
	}}`, rec.Body.String())
}

func TestCreateInvoice_WrongJSONType(t *testing.T) {
	e, _ := newTestApp(t)
	token := registerAna(t, e)

	rec := post(e, "/invoices", `{"number":"INV-1","amount_cents":"1500","due_date":"2026-02-28"}`, token)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"errors":{"amount_cents":["The amount cents field must be an integer."]}}`, rec.Body.String())
}

func TestCreateInvoice_WithoutToken(t *testing.T) {
	e, _ := newTestApp(t)

	rec := post(e, "/invoices", `{}`, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListInvoices_OwnerScoped(t *testing.T) {
	e, repo := newTestApp(t)
	token := registerAna(t, e)
	ana, err := repo.GetUserByEmail(context.Background(), "ana@x.com")
	require.NoError(t, err)
	bob := testutil.NewTestUser(t, repo, "bob@x.com", "abcdef")

	testutil.NewTestInvoice(t, repo, ana.ID, "INV-1", 1000)
	testutil.NewTestInvoice(t, repo, ana.ID, "INV-2", 2000)
	testutil.NewTestInvoice(t, repo, bob.ID, "INV-3", 3000)

	rec := get(e, "/invoices", token)

	require.Equal(t, http.StatusOK, rec.Code)
	var invoices []models.Invoice
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &invoices))
	require.Len(t, invoices, 2)
	assert.Equal(t, "INV-2", invoices[0].Number)
	assert.Equal(t, "INV-1", invoices[1].Number)
}

func TestListInvoices_Empty(t *testing.T) {
	e, _ := newTestApp(t)
	token := registerAna(t, e)

	rec := get(e, "/invoices", token)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestFinances(t *testing.T) {
	e, repo := newTestApp(t)
	token := registerAna(t, e)
	ana, err := repo.GetUserByEmail(context.Background(), "ana@x.com")
	require.NoError(t, err)
	bob := testutil.NewTestUser(t, repo, "bob@x.com", "abcdef")

	testutil.NewTestFinanceEntry(t, repo, ana.ID, models.FinanceIncome, 500000, "2026-01-05")
	testutil.NewTestFinanceEntry(t, repo, ana.ID, models.FinanceExpense, 120000, "2026-01-10")
	testutil.NewTestFinanceEntry(t, repo, bob.ID, models.FinanceIncome, 999, "2026-01-07")

	rec := get(e, "/finances", token)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp handlers.FinancesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Entries, 2)
	assert.Equal(t, models.FinanceTotals{Income: 500000, Expense: 120000, Balance: 380000}, resp.Totals)
}

func TestFinances_Empty(t *testing.T) {
	e, _ := newTestApp(t)
	token := registerAna(t, e)

	rec := get(e, "/finances", token)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"entries":[],"totals":{"income":0,"expense":0,"balance":0}}`, rec.Body.String())
}

func TestCreateFinanceEntry(t *testing.T) {
	e, _ := newTestApp(t)
	token := registerAna(t, e)

	rec := post(e, "/finances",
		`{"kind":"income","description":" Salary ","amount_cents":500000,"occurred_on":"2026-01-05"}`, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var entry models.FinanceEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))
	assert.NotZero(t, entry.ID)
	assert.Equal(t, "Salary", entry.Description)

	rec = post(e, "/finances", `{"kind":"expense","amount_cents":120000,"occurred_on":"2026-01-10"}`, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = get(e, "/finances", token)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp handlers.FinancesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Entries, 2)
	assert.Equal(t, models.FinanceTotals{Income: 500000, Expense: 120000, Balance: 380000}, resp.Totals)
}

func TestCreateFinanceEntry_ValidationErrors(t *testing.T) {
	e, _ := newTestApp(t)
	token := registerAna(t, e)

	rec := post(e, "/finances", `{"kind":"refund","amount_cents":-5,"occurred_on":"yesterday"}`, token)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"errors":{
		"kind":["The selected kind is invalid."],
		"amount_cents":["The amount cents field must be greater than 0."],
		"occurred_on":["The occurred on field must be a valid date in the format YYYY-MM-DD."]
	}}`, rec.Body.String())
}

func TestCreateFinanceEntry_WithoutToken(t *testing.T) {
	e, _ := newTestApp(t)

	rec := post(e, "/finances", `{}`, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
