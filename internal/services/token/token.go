// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package token issues, resolves and revokes opaque bearer tokens.
//
// A plaintext token has the form "<id>|<secret>" where secret is 32 random
// bytes, hex encoded. Only the SHA256 hash of the secret is persisted, so a
// database leak does not leak usable tokens.
package token

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"codeberg.org/oliverandrich/ledger-api/internal/models"
	"codeberg.org/oliverandrich/ledger-api/internal/repository"
)

// SecretLength is the number of random bytes in a token secret.
const SecretLength = 32

// ErrInvalidToken is returned when a token is malformed, unknown or revoked.
var ErrInvalidToken = errors.New("invalid token")

// Store is the persistence the issuer needs.
type Store interface {
	CreateAccessToken(ctx context.Context, userID int64, name, tokenHash string) (*models.AccessToken, error)
	GetAccessToken(ctx context.Context, id int64) (*models.AccessToken, error)
	GetAccessTokenByHash(ctx context.Context, tokenHash string) (*models.AccessToken, error)
	TouchAccessToken(ctx context.Context, id int64, at time.Time) error
	DeleteAccessToken(ctx context.Context, id int64) (bool, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// Service issues and verifies tokens.
type Service struct {
	store Store
	name  string
	now   func() time.Time
}

// NewService creates a token service. name labels every issued token.
func NewService(store Store, name string) *Service {
	if name == "" {
		name = models.DefaultTokenName
	}
	return &Service{store: store, name: name, now: time.Now}
}

// HashSecret computes the SHA256 hash of a token secret.
func HashSecret(secret string) string {
	hash := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(hash[:])
}

// Issue creates a new token for user and returns its plaintext. The
// plaintext is not recoverable afterwards.
func (s *Service) Issue(ctx context.Context, user *models.User) (string, error) {
	secret, err := generateSecret()
	if err != nil {
		return "", err
	}

	token, err := s.store.CreateAccessToken(ctx, user.ID, s.name, HashSecret(secret))
	if err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}

	return strconv.FormatInt(token.ID, 10) + "|" + secret, nil
}

// Resolve returns the user and token a plaintext token stands for.
// Any malformed, unknown or revoked token yields ErrInvalidToken.
func (s *Service) Resolve(ctx context.Context, plaintext string) (*models.User, *models.AccessToken, error) {
	token, err := s.find(ctx, plaintext)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.store.GetUserByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrInvalidToken
		}
		return nil, nil, fmt.Errorf("failed to load token owner: %w", err)
	}

	now := s.now()
	if err := s.store.TouchAccessToken(ctx, token.ID, now); err != nil {
		slog.WarnContext(ctx, "token_touch_failed", "token_id", token.ID, "error", err)
	} else {
		token.LastUsedAt.Time, token.LastUsedAt.Valid = now, true
	}

	return user, token, nil
}

// Revoke deletes token. It reports false when the token was already gone.
func (s *Service) Revoke(ctx context.Context, token *models.AccessToken) (bool, error) {
	removed, err := s.store.DeleteAccessToken(ctx, token.ID)
	if err != nil {
		return false, fmt.Errorf("failed to revoke token: %w", err)
	}
	return removed, nil
}

// find looks a token up by "<id>|<secret>", or by bare secret.
func (s *Service) find(ctx context.Context, plaintext string) (*models.AccessToken, error) {
	id, secret, hasID := strings.Cut(plaintext, "|")
	if !hasID {
		secret = plaintext
	}
	if !validSecret(secret) {
		return nil, ErrInvalidToken
	}
	hash := HashSecret(secret)

	var (
		token *models.AccessToken
		err   error
	)
	if hasID {
		tokenID, parseErr := strconv.ParseInt(id, 10, 64)
		if parseErr != nil || tokenID <= 0 {
			return nil, ErrInvalidToken
		}
		token, err = s.store.GetAccessToken(ctx, tokenID)
	} else {
		token, err = s.store.GetAccessTokenByHash(ctx, hash)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to look up token: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(token.TokenHash), []byte(hash)) != 1 {
		return nil, ErrInvalidToken
	}
	return token, nil
}

func generateSecret() (string, error) {
	bytes := make([]byte, SecretLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

func validSecret(secret string) bool {
	if len(secret) != SecretLength*2 {
		return false
	}
	_, err := hex.DecodeString(secret)
	return err == nil
}
