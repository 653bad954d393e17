// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"codeberg.org/oliverandrich/ledger-api/internal/handlers"
	"codeberg.org/oliverandrich/ledger-api/internal/i18n"
	"codeberg.org/oliverandrich/ledger-api/internal/middleware"
	"codeberg.org/oliverandrich/ledger-api/internal/repository"
	authsvc "codeberg.org/oliverandrich/ledger-api/internal/services/auth"
	"codeberg.org/oliverandrich/ledger-api/internal/services/password"
	"codeberg.org/oliverandrich/ledger-api/internal/services/token"
	"codeberg.org/oliverandrich/ledger-api/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	_ = i18n.Init()
}

// newTestApp wires the handlers onto a router backed by an in-memory database.
func newTestApp(t *testing.T) (*echo.Echo, *repository.Repository) {
	t.Helper()
	_, repo := testutil.NewTestDB(t)
	svc, err := authsvc.NewService(repo, token.NewService(repo, ""), password.NewBcrypt(testutil.BcryptCost))
	require.NoError(t, err)

	h := handlers.New(repo)
	a := handlers.NewAuth(svc)
	requireToken := middleware.RequireToken(svc)

	e := echo.New()
	e.Use(middleware.Locale())
	e.GET("/health", h.Health)
	e.POST("/register", a.Register)
	e.POST("/login", a.Login)
	e.POST("/logout", a.Logout, requireToken)
	e.POST("/update-password", a.UpdatePassword, requireToken)
	e.GET("/user", a.Me, requireToken)
	e.GET("/invoices", h.ListInvoices, requireToken)
	e.POST("/invoices", h.CreateInvoice, requireToken)
	e.GET("/finances", h.Finances, requireToken)
	e.POST("/finances", h.CreateFinanceEntry, requireToken)
	return e, repo
}

func do(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func post(e *echo.Echo, path, body, token string) *httptest.ResponseRecorder {
	if token == "" {
		return do(e, testutil.NewRequest(http.MethodPost, path, strings.NewReader(body)))
	}
	return do(e, testutil.NewAuthorizedRequest(http.MethodPost, path, strings.NewReader(body), token))
}

func get(e *echo.Echo, path, token string) *httptest.ResponseRecorder {
	return do(e, testutil.NewAuthorizedRequest(http.MethodGet, path, nil, token))
}

func decodeSession(t *testing.T, rec *httptest.ResponseRecorder) handlers.SessionResponse {
	t.Helper()
	var resp handlers.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

const anaRegistration = `{"name":"Ana","email":"ana@x.com","password":"abcdef","password_confirmation":"abcdef"}`

// registerAna registers the default user and returns the issued token.
func registerAna(t *testing.T, e *echo.Echo) string {
	t.Helper()
	rec := post(e, "/register", anaRegistration, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeSession(t, rec).Token
}

func TestNew(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	h := handlers.New(repo)

	assert.NotNil(t, h)
}

func TestHealth(t *testing.T) {
	h := handlers.New(nil)

	e := echo.New()
	c, rec := testutil.NewEchoContext(e, http.MethodGet, "/health", nil)

	err := h.Health(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
