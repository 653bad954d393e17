// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package auth implements the credential lifecycle: registration, login,
// logout and password rotation.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"codeberg.org/oliverandrich/ledger-api/internal/models"
	"codeberg.org/oliverandrich/ledger-api/internal/repository"
	"codeberg.org/oliverandrich/ledger-api/internal/services/token"
)

var (
	// ErrUserExists is wrapped by every ConflictError on the email field.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials is returned by Login for an unknown email and
	// for a wrong password alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthenticated is returned when the caller has no live token.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrCurrentPasswordIncorrect is returned by UpdatePassword.
	ErrCurrentPasswordIncorrect = errors.New("current password incorrect")
)

// ConflictError reports a uniqueness violation on Field.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return e.Field + " has already been taken"
}

func (e *ConflictError) Unwrap() error {
	return ErrUserExists
}

// PasswordHasher hashes passwords and verifies them against a digest.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) bool
}

// TokenIssuer manages bearer tokens.
type TokenIssuer interface {
	Issue(ctx context.Context, user *models.User) (string, error)
	Resolve(ctx context.Context, plaintext string) (*models.User, *models.AccessToken, error)
	Revoke(ctx context.Context, token *models.AccessToken) (bool, error)
}

// UserStore persists users and runs units of work.
type UserStore interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Identity is the caller resolved from a bearer token for one request.
type Identity struct {
	User  *models.User
	Token *models.AccessToken
}

// Service runs the credential operations.
type Service struct {
	users     UserStore
	tokens    TokenIssuer
	hasher    PasswordHasher
	dummyHash string
}

// NewService wires a Service. It hashes a dummy password once so that
// logins for unknown emails cost as much as real ones.
func NewService(users UserStore, tokens TokenIssuer, hasher PasswordHasher) (*Service, error) {
	dummyHash, err := hasher.Hash("dummy-password-for-timing")
	if err != nil {
		return nil, fmt.Errorf("failed to hash dummy password: %w", err)
	}
	return &Service{
		users:     users,
		tokens:    tokens,
		hasher:    hasher,
		dummyHash: dummyHash,
	}, nil
}

// Register creates a user and issues their first token, atomically.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)

	if err := ValidateRegister(in); err != nil {
		return nil, "", err
	}

	exists, err := s.users.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check existing user: %w", err)
	}
	if exists {
		return nil, "", &ConflictError{Field: "email"}
	}

	// Hash outside the transaction; it is the slow part.
	passwordHash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: passwordHash,
		Role:         models.RoleUser,
	}

	var plaintext string
	err = s.users.WithTx(ctx, func(ctx context.Context) error {
		if err := s.users.CreateUser(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return &ConflictError{Field: "email"}
			}
			return fmt.Errorf("failed to create user: %w", err)
		}
		var issueErr error
		plaintext, issueErr = s.tokens.Issue(ctx, user)
		return issueErr
	})
	if err != nil {
		return nil, "", err
	}

	slog.InfoContext(ctx, "register_success", "user_id", user.ID)
	return user, plaintext, nil
}

// Login verifies credentials and issues a new token. Earlier tokens stay valid.
func (s *Service) Login(ctx context.Context, in LoginInput) (*models.User, string, error) {
	in.Email = normalizeEmail(in.Email)

	if err := ValidateLogin(in); err != nil {
		return nil, "", err
	}

	user, err := s.users.GetUserByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Constant-time: always perform a hash comparison to prevent timing attacks
			_ = s.hasher.Verify(in.Password, s.dummyHash)
			slog.WarnContext(ctx, "login_failed", "reason", "user_not_found")
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	if !s.hasher.Verify(in.Password, user.PasswordHash) {
		slog.WarnContext(ctx, "login_failed", "user_id", user.ID, "reason", "invalid_password")
		return nil, "", ErrInvalidCredentials
	}

	plaintext, err := s.tokens.Issue(ctx, user)
	if err != nil {
		return nil, "", err
	}

	slog.InfoContext(ctx, "login_success", "user_id", user.ID)
	return user, plaintext, nil
}

// Authenticate resolves a presented bearer token into an Identity.
func (s *Service) Authenticate(ctx context.Context, plaintext string) (Identity, error) {
	user, tok, err := s.tokens.Resolve(ctx, plaintext)
	if err != nil {
		if errors.Is(err, token.ErrInvalidToken) {
			return Identity{}, ErrUnauthenticated
		}
		return Identity{}, err
	}
	return Identity{User: user, Token: tok}, nil
}

// Logout revokes exactly the token the caller presented.
func (s *Service) Logout(ctx context.Context, id Identity) error {
	if id.User == nil || id.Token == nil {
		return ErrUnauthenticated
	}

	removed, err := s.tokens.Revoke(ctx, id.Token)
	if err != nil {
		return err
	}
	if !removed {
		return ErrUnauthenticated
	}

	slog.InfoContext(ctx, "logout_success", "user_id", id.User.ID, "token_id", id.Token.ID)
	return nil
}

// UpdatePassword replaces the caller's password after checking the current
// one. Existing tokens are left alone.
func (s *Service) UpdatePassword(ctx context.Context, id Identity, in UpdatePasswordInput) error {
	if id.User == nil {
		return ErrUnauthenticated
	}

	if err := ValidateUpdatePassword(in); err != nil {
		return err
	}

	user, err := s.users.GetUserByID(ctx, id.User.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUnauthenticated
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if !s.hasher.Verify(in.CurrentPassword, user.PasswordHash) {
		slog.WarnContext(ctx, "password_update_failed", "user_id", user.ID, "reason", "current_password_incorrect")
		return ErrCurrentPasswordIncorrect
	}

	passwordHash, err := s.hasher.Hash(in.NewPassword)
	if err != nil {
		return err
	}

	if err := s.users.UpdateUserPassword(ctx, user.ID, passwordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	slog.InfoContext(ctx, "password_updated", "user_id", user.ID)
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
