// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package seed creates the sample company and its admin account.
package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"codeberg.org/oliverandrich/ledger-api/internal/config"
	"codeberg.org/oliverandrich/ledger-api/internal/models"
	"codeberg.org/oliverandrich/ledger-api/internal/repository"
	authsvc "codeberg.org/oliverandrich/ledger-api/internal/services/auth"
)

// Sample contact data for the seeded records.
const (
	companyAddress = "Rua Exemplo, 123"
	companyPhone   = "11987654321"
	adminCPF       = "12345678901"
	adminPhone     = "11987654322"
)

var (
	// ErrMissingPassword is returned when no admin password is configured.
	ErrMissingPassword = errors.New("seed admin password is required")
	// ErrEmailTaken is returned when the admin email belongs to a non-admin account.
	ErrEmailTaken = errors.New("seed admin email belongs to a non-admin user")
)

// Store is the persistence the seeder needs.
type Store interface {
	GetCompanyByCNPJ(ctx context.Context, cnpj string) (*models.Company, error)
	CreateCompany(ctx context.Context, company *models.Company) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Hasher hashes the admin password.
type Hasher interface {
	Hash(plain string) (string, error)
}

// Result reports what the seeder found or created.
type Result struct {
	Company        *models.Company
	Admin          *models.User
	CompanyCreated bool
	AdminCreated   bool
}

// Run creates the company and the admin user unless they already exist.
// Running it twice is a no-op.
func Run(ctx context.Context, store Store, hasher Hasher, cfg config.SeedConfig) (*Result, error) {
	if cfg.AdminPassword == "" {
		return nil, ErrMissingPassword
	}

	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	if err := authsvc.ValidateRegister(authsvc.RegisterInput{
		Name:                 cfg.AdminName,
		Email:                email,
		Password:             cfg.AdminPassword,
		PasswordConfirmation: cfg.AdminPassword,
	}); err != nil {
		return nil, fmt.Errorf("invalid seed admin: %w", err)
	}

	passwordHash, err := hasher.Hash(cfg.AdminPassword)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	err = store.WithTx(ctx, func(ctx context.Context) error {
		company, created, err := ensureCompany(ctx, store, cfg)
		if err != nil {
			return err
		}
		res.Company, res.CompanyCreated = company, created

		admin, err := store.GetUserByEmail(ctx, email)
		switch {
		case err == nil && !admin.IsAdmin():
			return ErrEmailTaken
		case err == nil:
			res.Admin = admin
			return nil
		case !errors.Is(err, repository.ErrNotFound):
			return fmt.Errorf("failed to look up admin: %w", err)
		}

		admin = &models.User{
			CompanyID:    sql.NullInt64{Int64: company.ID, Valid: true},
			Name:         cfg.AdminName,
			Email:        email,
			PasswordHash: passwordHash,
			CPF:          sql.NullString{String: adminCPF, Valid: true},
			Phone:        sql.NullString{String: adminPhone, Valid: true},
			Role:         models.RoleAdmin,
			IsVerified:   true,
		}
		if err := store.CreateUser(ctx, admin); err != nil {
			return fmt.Errorf("failed to create admin: %w", err)
		}
		res.Admin, res.AdminCreated = admin, true
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "seed_complete",
		"company_id", res.Company.ID,
		"company_created", res.CompanyCreated,
		"admin_id", res.Admin.ID,
		"admin_created", res.AdminCreated,
	)
	return res, nil
}

func ensureCompany(ctx context.Context, store Store, cfg config.SeedConfig) (*models.Company, bool, error) {
	company, err := store.GetCompanyByCNPJ(ctx, cfg.CompanyCNPJ)
	if err == nil {
		return company, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to look up company: %w", err)
	}

	company = &models.Company{
		CNPJ:        cfg.CompanyCNPJ,
		CompanyName: cfg.CompanyName,
		Address:     companyAddress,
		Phone:       companyPhone,
	}
	if err := store.CreateCompany(ctx, company); err != nil {
		return nil, false, fmt.Errorf("failed to create company: %w", err)
	}
	return company, true, nil
}
