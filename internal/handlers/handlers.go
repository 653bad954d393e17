// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package handlers implements the JSON HTTP endpoints.
package handlers

import (
	"net/http"

	"codeberg.org/oliverandrich/ledger-api/internal/repository"
	"github.com/labstack/echo/v4"
)

// Handlers contains the data handlers behind bearer authentication.
type Handlers struct {
	repo *repository.Repository
}

// New creates a new Handlers instance.
func New(repo *repository.Repository) *Handlers {
	return &Handlers{repo: repo}
}

// Health returns the health status.
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
