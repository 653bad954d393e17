// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"

	"codeberg.org/oliverandrich/ledger-api/internal/models"
)

const companyColumns = `id, cnpj, company_name, address, phone, created_at, updated_at`

// CreateCompany inserts a company. A taken CNPJ yields ErrDuplicate.
func (r *Repository) CreateCompany(ctx context.Context, company *models.Company) error {
	err := r.conn(ctx).GetContext(ctx, company,
		`INSERT INTO companies (cnpj, company_name, address, phone) VALUES (?, ?, ?, ?)
		 RETURNING `+companyColumns,
		company.CNPJ, company.CompanyName, company.Address, company.Phone)
	return wrapError(err)
}

// GetCompanyByCNPJ retrieves a company by its CNPJ.
func (r *Repository) GetCompanyByCNPJ(ctx context.Context, cnpj string) (*models.Company, error) {
	var company models.Company
	err := r.conn(ctx).GetContext(ctx, &company, `SELECT `+companyColumns+` FROM companies WHERE cnpj = ?`, cnpj)
	if err != nil {
		return nil, wrapError(err)
	}
	return &company, nil
}
