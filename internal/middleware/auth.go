// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package middleware provides the echo middleware shared by API routes.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"codeberg.org/oliverandrich/ledger-api/internal/auth"
	"codeberg.org/oliverandrich/ledger-api/internal/i18n"
	authsvc "codeberg.org/oliverandrich/ledger-api/internal/services/auth"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Authenticator resolves a bearer token into the caller's identity.
type Authenticator interface {
	Authenticate(ctx context.Context, plaintext string) (authsvc.Identity, error)
}

// RequireToken rejects requests without a live bearer token with 401 and
// stores the resolved identity in the request context otherwise.
// Store failures reach echo's error handler as 500.
func RequireToken(authn Authenticator) echo.MiddlewareFunc {
	return echomw.KeyAuthWithConfig(echomw.KeyAuthConfig{
		KeyLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		Validator: func(key string, c echo.Context) (bool, error) {
			plaintext := strings.TrimSpace(key)
			if plaintext == "" {
				return false, authsvc.ErrUnauthenticated
			}

			ctx := c.Request().Context()
			id, err := authn.Authenticate(ctx, plaintext)
			if err != nil {
				return false, err
			}

			c.SetRequest(c.Request().WithContext(auth.WithIdentity(ctx, id)))
			return true, nil
		},
		ErrorHandler: func(err error, c echo.Context) error {
			var missing *echomw.ErrKeyAuthMissing
			if errors.As(err, &missing) || errors.Is(err, authsvc.ErrUnauthenticated) {
				return unauthenticated(c)
			}
			return err
		},
	})
}

func unauthenticated(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, map[string]string{
		"message": i18n.T(c.Request().Context(), "unauthenticated"),
	})
}
