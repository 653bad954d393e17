// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package auth

import (
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Field limits.
const (
	MaxNameLength     = 255
	MinPasswordLength = 6
	// MaxPasswordBytes is the longest input bcrypt accepts.
	MaxPasswordBytes = 72
)

// Validation rules reported in a Violation.
const (
	RuleRequired  = "required"
	RuleEmail     = "email"
	RuleMax       = "max"
	RuleMin       = "min"
	RuleMaxBytes  = "max_bytes"
	RuleConfirmed = "confirmed"
	RuleUnique    = "unique"
	RuleString    = "string"
	RuleInteger   = "integer"
)

var validate = validator.New()

// Violation is one failed rule on one field. Param carries the rule
// argument, e.g. "6" for a min rule.
type Violation struct {
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// ValidationError maps request fields to the rules they failed.
type ValidationError struct {
	Fields map[string][]Violation
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation failed"
	}
	fields := e.FieldNames()
	return "validation failed: " + strings.Join(fields, ", ")
}

// Add records a violation on field.
func (e *ValidationError) Add(field, rule, param string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]Violation)
	}
	e.Fields[field] = append(e.Fields[field], Violation{Rule: rule, Param: param})
}

// Has reports whether field failed rule.
func (e *ValidationError) Has(field, rule string) bool {
	for _, v := range e.Fields[field] {
		if v.Rule == rule {
			return true
		}
	}
	return false
}

// FieldNames returns the failing fields in sorted order.
func (e *ValidationError) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// orNil returns nil when nothing failed, so callers can return it directly.
func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// RegisterInput is the payload of a registration.
type RegisterInput struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// LoginInput is the payload of a login.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdatePasswordInput is the payload of a password change.
type UpdatePasswordInput struct {
	CurrentPassword         string `json:"current_password"`
	NewPassword             string `json:"new_password"`
	NewPasswordConfirmation string `json:"new_password_confirmation"`
}

// ValidateRegister checks name, email and password shape. Email uniqueness
// needs the store and is checked by Register.
func ValidateRegister(in RegisterInput) error {
	errs := &ValidationError{}

	switch {
	case in.Name == "":
		errs.Add("name", RuleRequired, "")
	case validate.Var(in.Name, "max="+strconv.Itoa(MaxNameLength)) != nil:
		errs.Add("name", RuleMax, strconv.Itoa(MaxNameLength))
	}

	checkEmail(errs, "email", in.Email)
	checkNewPassword(errs, "password", in.Password, in.PasswordConfirmation)

	return errs.orNil()
}

// ValidateLogin checks that email and password are present.
func ValidateLogin(in LoginInput) error {
	errs := &ValidationError{}

	checkEmail(errs, "email", in.Email)
	if in.Password == "" {
		errs.Add("password", RuleRequired, "")
	}

	return errs.orNil()
}

// ValidateUpdatePassword checks the shape of a password change. Whether the
// current password is correct is checked later, against the store.
func ValidateUpdatePassword(in UpdatePasswordInput) error {
	errs := &ValidationError{}

	if in.CurrentPassword == "" {
		errs.Add("current_password", RuleRequired, "")
	}
	checkNewPassword(errs, "new_password", in.NewPassword, in.NewPasswordConfirmation)

	return errs.orNil()
}

func checkEmail(errs *ValidationError, field, email string) {
	switch {
	case email == "":
		errs.Add(field, RuleRequired, "")
	case validate.Var(email, "email") != nil:
		errs.Add(field, RuleEmail, "")
	}
}

// checkNewPassword applies required, min, bcrypt length and confirmation.
// A confirmation mismatch is reported on the password field itself.
func checkNewPassword(errs *ValidationError, field, password, confirmation string) {
	if password == "" {
		errs.Add(field, RuleRequired, "")
		return
	}
	if validate.Var(password, "min="+strconv.Itoa(MinPasswordLength)) != nil {
		errs.Add(field, RuleMin, strconv.Itoa(MinPasswordLength))
	}
	if len(password) > MaxPasswordBytes {
		errs.Add(field, RuleMaxBytes, strconv.Itoa(MaxPasswordBytes))
	}
	if password != confirmation {
		errs.Add(field, RuleConfirmed, "")
	}
}
