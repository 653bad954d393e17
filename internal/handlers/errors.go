// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"codeberg.org/oliverandrich/ledger-api/internal/i18n"
	authsvc "codeberg.org/oliverandrich/ledger-api/internal/services/auth"
	"github.com/labstack/echo/v4"
)

// MessageResponse is the body of every response that carries only a message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorsResponse is the body of a 422 response: field name to messages.
type ErrorsResponse struct {
	Errors map[string][]string `json:"errors"`
}

// message responds with a localized message.
func message(c echo.Context, code int, messageID string) error {
	return c.JSON(code, MessageResponse{Message: i18n.T(c.Request().Context(), messageID)})
}

// bindError answers a body c.Bind rejected. A JSON value of the wrong type
// is a field error (422); anything else, such as a syntax error, is 400.
func bindError(c echo.Context, err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		verr := &authsvc.ValidationError{}
		verr.Add(typeErr.Field, typeRule(typeErr.Type), "")
		return renderError(c, verr)
	}

	slog.DebugContext(c.Request().Context(), "invalid_request", "error", err)
	return message(c, http.StatusBadRequest, "invalid_request")
}

// typeRule names the rule a value of the wrong JSON type violates.
func typeRule(t reflect.Type) string {
	if t == nil {
		return authsvc.RuleString
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return authsvc.RuleInteger
	default:
		return authsvc.RuleString
	}
}

// renderError maps the credential error taxonomy onto HTTP responses.
// Anything it does not know becomes a 500 through echo's error handler.
func renderError(c echo.Context, err error) error {
	var (
		verr     *authsvc.ValidationError
		conflict *authsvc.ConflictError
	)

	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusUnprocessableEntity, ErrorsResponse{
			Errors: localizeViolations(c.Request().Context(), verr),
		})
	case errors.As(err, &conflict):
		verr = &authsvc.ValidationError{}
		verr.Add(conflict.Field, authsvc.RuleUnique, "")
		return c.JSON(http.StatusUnprocessableEntity, ErrorsResponse{
			Errors: localizeViolations(c.Request().Context(), verr),
		})
	case errors.Is(err, authsvc.ErrInvalidCredentials):
		return message(c, http.StatusUnauthorized, "invalid_credentials")
	case errors.Is(err, authsvc.ErrCurrentPasswordIncorrect):
		return message(c, http.StatusUnauthorized, "current_password_incorrect")
	case errors.Is(err, authsvc.ErrUnauthenticated):
		return message(c, http.StatusUnauthorized, "unauthenticated")
	}

	return echo.NewHTTPError(http.StatusInternalServerError,
		i18n.T(c.Request().Context(), "internal_error")).SetInternal(err)
}

// localizeViolations renders every violation as a sentence in the request
// language, e.g. "The new password field must be at least 6 characters.".
func localizeViolations(ctx context.Context, verr *authsvc.ValidationError) map[string][]string {
	out := make(map[string][]string, len(verr.Fields))
	for _, field := range verr.FieldNames() {
		label := strings.ReplaceAll(field, "_", " ")
		for _, v := range verr.Fields[field] {
			out[field] = append(out[field], i18n.TData(ctx, "validation_"+v.Rule, map[string]any{
				"Field": label,
				"Param": v.Param,
			}))
		}
	}
	return out
}
