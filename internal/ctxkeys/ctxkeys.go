// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package ctxkeys defines typed context keys used across packages.
package ctxkeys

// User is the context key for the authenticated user.
type User struct{}

// AccessToken is the context key for the bearer token the request presented.
type AccessToken struct{}

// Tx is the context key for the database transaction a unit of work runs in.
type Tx struct{}
