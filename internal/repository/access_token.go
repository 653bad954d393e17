// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"codeberg.org/oliverandrich/ledger-api/internal/models"
)

const accessTokenColumns = `id, user_id, name, token_hash, last_used_at, created_at`

// CreateAccessToken stores a new token hash for a user.
func (r *Repository) CreateAccessToken(ctx context.Context, userID int64, name, tokenHash string) (*models.AccessToken, error) {
	var token models.AccessToken
	err := r.conn(ctx).GetContext(ctx, &token,
		`INSERT INTO personal_access_tokens (user_id, name, token_hash) VALUES (?, ?, ?)
		 RETURNING `+accessTokenColumns,
		userID, name, tokenHash)
	if err != nil {
		return nil, wrapError(err)
	}
	return &token, nil
}

// GetAccessToken retrieves a token by ID.
func (r *Repository) GetAccessToken(ctx context.Context, id int64) (*models.AccessToken, error) {
	var token models.AccessToken
	err := r.conn(ctx).GetContext(ctx, &token,
		`SELECT `+accessTokenColumns+` FROM personal_access_tokens WHERE id = ?`, id)
	if err != nil {
		return nil, wrapError(err)
	}
	return &token, nil
}

// GetAccessTokenByHash retrieves a token by the hash of its secret.
func (r *Repository) GetAccessTokenByHash(ctx context.Context, tokenHash string) (*models.AccessToken, error) {
	var token models.AccessToken
	err := r.conn(ctx).GetContext(ctx, &token,
		`SELECT `+accessTokenColumns+` FROM personal_access_tokens WHERE token_hash = ?`, tokenHash)
	if err != nil {
		return nil, wrapError(err)
	}
	return &token, nil
}

// ListUserAccessTokens returns all live tokens of a user, oldest first.
func (r *Repository) ListUserAccessTokens(ctx context.Context, userID int64) ([]models.AccessToken, error) {
	var tokens []models.AccessToken
	err := r.conn(ctx).SelectContext(ctx, &tokens,
		`SELECT `+accessTokenColumns+` FROM personal_access_tokens WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, wrapError(err)
	}
	return tokens, nil
}

// TouchAccessToken records that a token was just used.
func (r *Repository) TouchAccessToken(ctx context.Context, id int64, at time.Time) error {
	_, err := r.conn(ctx).ExecContext(ctx,
		`UPDATE personal_access_tokens SET last_used_at = ? WHERE id = ?`, at.UTC(), id)
	return wrapError(err)
}

// DeleteAccessToken deletes one token. It reports whether a row was removed.
func (r *Repository) DeleteAccessToken(ctx context.Context, id int64) (bool, error) {
	res, err := r.conn(ctx).ExecContext(ctx, `DELETE FROM personal_access_tokens WHERE id = ?`, id)
	if err != nil {
		return false, wrapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
