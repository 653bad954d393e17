// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository_test

import (
	"context"
	"database/sql"
	"testing"

	"codeberg.org/oliverandrich/ledger-api/internal/models"
	"codeberg.org/oliverandrich/ledger-api/internal/repository"
	"codeberg.org/oliverandrich/ledger-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	user := &models.User{Name: "Ana", Email: "ana@x.com", PasswordHash: "hash"}
	err := repo.CreateUser(ctx, user)

	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.False(t, user.IsVerified)
	assert.False(t, user.CompanyID.Valid)
	assert.NotZero(t, user.CreatedAt)
}

func TestCreateUser_WithCompany(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	company := &models.Company{CNPJ: "12345678000199", CompanyName: "Acme"}
	require.NoError(t, repo.CreateCompany(ctx, company))

	user := &models.User{
		CompanyID:    sql.NullInt64{Int64: company.ID, Valid: true},
		Name:         "Admin",
		Email:        "admin@x.com",
		PasswordHash: "hash",
		CPF:          sql.NullString{String: "12345678909", Valid: true},
		Role:         models.RoleAdmin,
		IsVerified:   true,
	}
	require.NoError(t, repo.CreateUser(ctx, user))

	stored, err := repo.GetUserByEmail(ctx, "admin@x.com")
	require.NoError(t, err)
	assert.Equal(t, company.ID, stored.CompanyID.Int64)
	assert.Equal(t, "12345678909", stored.CPF.String)
	assert.Equal(t, models.RoleAdmin, stored.Role)
	assert.True(t, stored.IsVerified)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateUser(ctx, &models.User{Name: "Ana", Email: "ana@x.com", PasswordHash: "h"}))

	err := repo.CreateUser(ctx, &models.User{Name: "Other", Email: "ana@x.com", PasswordHash: "h"})

	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestGetUserByID(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	created := testutil.NewTestUser(t, repo, "ana@x.com", "abcdef")

	retrieved, err := repo.GetUserByID(context.Background(), created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.ID, retrieved.ID)
	assert.Equal(t, created.Email, retrieved.Email)
	assert.Equal(t, created.PasswordHash, retrieved.PasswordHash)
}

func TestGetUserByID_NotFound(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	_, err := repo.GetUserByID(context.Background(), 999)

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	_, err := repo.GetUserByEmail(context.Background(), "nobody@x.com")

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEmailExists(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	testutil.NewTestUser(t, repo, "ana@x.com", "abcdef")

	exists, err := repo.EmailExists(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.EmailExists(ctx, "bob@x.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUpdateUserPassword(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	user := testutil.NewTestUser(t, repo, "ana@x.com", "abcdef")

	require.NoError(t, repo.UpdateUserPassword(ctx, user.ID, "new-hash"))

	stored, err := repo.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", stored.PasswordHash)
}

func TestUpdateUserPassword_NotFound(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	err := repo.UpdateUserPassword(context.Background(), 999, "new-hash")

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserDelete_CascadesTokens(t *testing.T) {
	db, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	user := testutil.NewTestUser(t, repo, "ana@x.com", "abcdef")
	_, err := repo.CreateAccessToken(ctx, user.ID, "authToken", "hash")
	require.NoError(t, err)
	testutil.NewTestInvoice(t, repo, user.ID, "INV-1", 1000)

	_, err = db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, user.ID)
	require.NoError(t, err)

	_, err = repo.GetAccessTokenByHash(ctx, "hash")
	require.ErrorIs(t, err, repository.ErrNotFound)
	invoices, err := repo.ListInvoicesByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, invoices)
}

func TestCountUsers(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	count, err := repo.CountUsers(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	testutil.NewTestUser(t, repo, "ana@x.com", "abcdef")
	testutil.NewTestUser(t, repo, "bob@x.com", "abcdef")

	count, err = repo.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
