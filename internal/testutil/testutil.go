// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package testutil provides test helpers and fixtures.
package testutil

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"codeberg.org/oliverandrich/ledger-api/internal/database"
	"codeberg.org/oliverandrich/ledger-api/internal/models"
	"codeberg.org/oliverandrich/ledger-api/internal/repository"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/vinovest/sqlx"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost keeps hashing fast in tests.
const BcryptCost = bcrypt.MinCost

// NewTestDB creates an in-memory SQLite database for tests.
// Returns both the database connection and the repository for convenience.
func NewTestDB(t *testing.T) (*sqlx.DB, *repository.Repository) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	repo := repository.New(db)
	return db, repo
}

// NewTestUser creates a test user whose password is plain.
func NewTestUser(t *testing.T, repo *repository.Repository, email, plain string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), BcryptCost)
	require.NoError(t, err)

	user := &models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: string(hash),
	}
	require.NoError(t, repo.CreateUser(context.Background(), user))
	return user
}

// NewTestInvoice creates an invoice owned by userID.
func NewTestInvoice(t *testing.T, repo *repository.Repository, userID int64, number string, amountCents int64) *models.Invoice {
	t.Helper()
	invoice := &models.Invoice{
		UserID:      userID,
		Number:      number,
		Description: "Invoice " + number,
		AmountCents: amountCents,
		DueDate:     "2026-01-31",
	}
	require.NoError(t, repo.CreateInvoice(context.Background(), invoice))
	return invoice
}

// NewTestFinanceEntry books an entry for userID.
func NewTestFinanceEntry(t *testing.T, repo *repository.Repository, userID int64, kind string, amountCents int64, occurredOn string) *models.FinanceEntry {
	t.Helper()
	entry := &models.FinanceEntry{
		UserID:      userID,
		Kind:        kind,
		Description: kind,
		AmountCents: amountCents,
		OccurredOn:  occurredOn,
	}
	require.NoError(t, repo.CreateFinanceEntry(context.Background(), entry))
	return entry
}

// NewEchoContext creates an Echo context for handler tests.
func NewEchoContext(e *echo.Echo, method, path string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}

// NewRequest creates a JSON HTTP request for testing.
func NewRequest(method, path string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

// NewAuthorizedRequest creates a JSON HTTP request carrying a bearer token.
func NewAuthorizedRequest(method, path string, body io.Reader, token string) *http.Request {
	req := NewRequest(method, path, body)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	return req
}
