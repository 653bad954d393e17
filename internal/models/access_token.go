// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import (
	"database/sql"
	"time"
)

// DefaultTokenName is the name given to tokens issued at register and login.
const DefaultTokenName = "authToken"

// AccessToken is an opaque bearer credential bound to one user. Only the
// SHA256 hash of its secret is stored; deleting the row revokes it.
type AccessToken struct { //nolint:govet // fieldalignment: readability over optimization
	ID         int64        `db:"id" json:"id"`
	UserID     int64        `db:"user_id" json:"user_id"`
	Name       string       `db:"name" json:"name"`
	TokenHash  string       `db:"token_hash" json:"-"`
	LastUsedAt sql.NullTime `db:"last_used_at" json:"-"`
	CreatedAt  time.Time    `db:"created_at" json:"created_at"`
}
