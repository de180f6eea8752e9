// Package app holds the application services and business logic.
package app

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"petcare/internal/validation"
)

var (
	// ErrInvalidCredentials indicates that the provided email or password was incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrSessionNotFound indicates that the requested session does not exist.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired indicates that the session has expired.
	ErrSessionExpired = errors.New("session expired")
	// ErrUserNotFound indicates that the user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrAccountNotFound is returned when an SSO identity has no matching account.
	ErrAccountNotFound = errors.New("no account for this identity")
	// ErrEmailTaken indicates that another account already uses the email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrCPFTaken indicates that another account already uses the CPF.
	ErrCPFTaken = errors.New("cpf already registered")
	// ErrInvalidFilter is returned for an unknown notification filter.
	ErrInvalidFilter = errors.New("invalid filter")
)

// msgWrongPassword is reported on the currentPassword field.
const msgWrongPassword = "Senha atual incorreta"

// ValidationError lists field-level problems with a submitted form.
type ValidationError struct {
	Fields []validation.FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// FirstMessage returns the message of the first failing field.
func (e *ValidationError) FirstMessage() string {
	if len(e.Fields) == 0 {
		return ""
	}
	return e.Fields[0].Message
}

func fieldError(field, msg string) error {
	return &ValidationError{Fields: []validation.FieldError{{Field: field, Message: msg}}}
}

func validateForm(v *validator.Validate, form any) error {
	if err := v.Struct(form); err != nil {
		fields := validation.FieldErrors(err)
		if len(fields) == 0 {
			return err
		}
		return &ValidationError{Fields: fields}
	}
	return nil
}
