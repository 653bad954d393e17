// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import (
	"database/sql"
	"time"
)

// Roles a user can hold.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is an account that can authenticate against the API.
type User struct { //nolint:govet // fieldalignment: readability over optimization
	ID           int64          `db:"id" json:"id"`
	CompanyID    sql.NullInt64  `db:"company_id" json:"-"`
	Name         string         `db:"name" json:"name"`
	Email        string         `db:"email" json:"email"`
	PasswordHash string         `db:"password_hash" json:"-"`
	CPF          sql.NullString `db:"cpf" json:"-"`
	Phone        sql.NullString `db:"phone" json:"-"`
	Role         string         `db:"role" json:"role"`
	IsVerified   bool           `db:"is_verified" json:"is_verified"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserView is the public JSON shape of a user.
type UserView struct { //nolint:govet // fieldalignment: readability over optimization
	ID         int64     `json:"id"`
	CompanyID  *int64    `json:"company_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	CPF        *string   `json:"cpf"`
	Phone      *string   `json:"phone"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// View converts the user into its public JSON shape. The password hash is
// never part of it.
func (u *User) View() UserView {
	v := UserView{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
	if u.CompanyID.Valid {
		id := u.CompanyID.Int64
		v.CompanyID = &id
	}
	if u.CPF.Valid {
		cpf := u.CPF.String
		v.CPF = &cpf
	}
	if u.Phone.Valid {
		phone := u.Phone.String
		v.Phone = &phone
	}
	return v
}
