// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package auth provides authentication context helpers.
package auth

import (
	"context"

	"codeberg.org/oliverandrich/ledger-api/internal/ctxkeys"
	"codeberg.org/oliverandrich/ledger-api/internal/models"
	authsvc "codeberg.org/oliverandrich/ledger-api/internal/services/auth"
)

// WithIdentity stores the caller resolved from a bearer token in ctx.
func WithIdentity(ctx context.Context, id authsvc.Identity) context.Context {
	ctx = context.WithValue(ctx, ctxkeys.User{}, id.User)
	return context.WithValue(ctx, ctxkeys.AccessToken{}, id.Token)
}

// GetUser returns the authenticated user from the context, or nil if not authenticated.
func GetUser(ctx context.Context) *models.User {
	if user, ok := ctx.Value(ctxkeys.User{}).(*models.User); ok {
		return user
	}
	return nil
}

// GetToken returns the token the request authenticated with, or nil.
func GetToken(ctx context.Context) *models.AccessToken {
	if token, ok := ctx.Value(ctxkeys.AccessToken{}).(*models.AccessToken); ok {
		return token
	}
	return nil
}

// GetIdentity returns the caller as an Identity. Both fields are nil when
// the request is not authenticated.
func GetIdentity(ctx context.Context) authsvc.Identity {
	return authsvc.Identity{User: GetUser(ctx), Token: GetToken(ctx)}
}

// IsAuthenticated returns true if the context has an authenticated user.
func IsAuthenticated(ctx context.Context) bool {
	return GetUser(ctx) != nil
}
