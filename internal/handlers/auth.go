// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"context"
	"net/http"

	"codeberg.org/oliverandrich/ledger-api/internal/auth"
	"codeberg.org/oliverandrich/ledger-api/internal/i18n"
	"codeberg.org/oliverandrich/ledger-api/internal/models"
	authsvc "codeberg.org/oliverandrich/ledger-api/internal/services/auth"
	"github.com/labstack/echo/v4"
)

// CredentialService is what the auth handlers need from the credential layer.
type CredentialService interface {
	Register(ctx context.Context, in authsvc.RegisterInput) (*models.User, string, error)
	Login(ctx context.Context, in authsvc.LoginInput) (*models.User, string, error)
	Logout(ctx context.Context, id authsvc.Identity) error
	UpdatePassword(ctx context.Context, id authsvc.Identity, in authsvc.UpdatePasswordInput) error
}

// AuthHandlers contains handlers for authentication.
type AuthHandlers struct {
	svc CredentialService
}

// NewAuth creates a new AuthHandlers instance.
func NewAuth(svc CredentialService) *AuthHandlers {
	return &AuthHandlers{svc: svc}
}

// SessionResponse is returned by register and login.
type SessionResponse struct {
	Message string          `json:"message"`
	User    models.UserView `json:"user"`
	Token   string          `json:"token"`
}

// Register creates an account and returns its first token.
func (h *AuthHandlers) Register(c echo.Context) error {
	var req authsvc.RegisterInput
	if err := c.Bind(&req); err != nil {
		return bindError(c, err)
	}

	ctx := c.Request().Context()
	user, token, err := h.svc.Register(ctx, req)
	if err != nil {
		return renderError(c, err)
	}

	return c.JSON(http.StatusCreated, SessionResponse{
		Message: i18n.T(ctx, "register_success"),
		User:    user.View(),
		Token:   token,
	})
}

// Login exchanges email and password for a new token.
func (h *AuthHandlers) Login(c echo.Context) error {
	var req authsvc.LoginInput
	if err := c.Bind(&req); err != nil {
		return bindError(c, err)
	}

	ctx := c.Request().Context()
	user, token, err := h.svc.Login(ctx, req)
	if err != nil {
		return renderError(c, err)
	}

	return c.JSON(http.StatusOK, SessionResponse{
		Message: i18n.T(ctx, "login_success"),
		User:    user.View(),
		Token:   token,
	})
}

// Logout revokes the token the request was made with.
func (h *AuthHandlers) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.svc.Logout(ctx, auth.GetIdentity(ctx)); err != nil {
		return renderError(c, err)
	}
	return message(c, http.StatusOK, "logout_success")
}

// UpdatePassword changes the caller's password.
func (h *AuthHandlers) UpdatePassword(c echo.Context) error {
	var req authsvc.UpdatePasswordInput
	if err := c.Bind(&req); err != nil {
		return bindError(c, err)
	}

	ctx := c.Request().Context()
	if err := h.svc.UpdatePassword(ctx, auth.GetIdentity(ctx), req); err != nil {
		return renderError(c, err)
	}
	return message(c, http.StatusOK, "password_updated")
}

// Me returns the authenticated user.
func (h *AuthHandlers) Me(c echo.Context) error {
	user := auth.GetUser(c.Request().Context())
	if user == nil {
		return message(c, http.StatusUnauthorized, "unauthenticated")
	}
	return c.JSON(http.StatusOK, user.View())
}
