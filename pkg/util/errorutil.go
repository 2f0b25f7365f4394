package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgUniqueViolation is the Postgres error code for unique constraint hits.
const pgUniqueViolation = "23505"

// ErrorKind classifies application errors for status mapping and logging.
type ErrorKind string

const (
	KindValidation ErrorKind = "VALIDATION_FAILED"
	KindAuth       ErrorKind = "UNAUTHORIZED"
	KindNotFound   ErrorKind = "NOT_FOUND"
	KindConflict   ErrorKind = "CONFLICT"
	KindInternal   ErrorKind = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Kind       ErrorKind
	Message    string
	HTTPStatus int
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(kind ErrorKind, message string, status int) *DomainError {
	return &DomainError{Kind: kind, Message: message, HTTPStatus: status}
}

func NewValidationError(message string) error {
	return NewDomainError(KindValidation, message, http.StatusBadRequest)
}

func NewNotFound(resource string) error {
	return NewDomainError(KindNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

func NewUnauthorized(message string) error {
	return NewDomainError(KindAuth, message, http.StatusUnauthorized)
}

// NewConflict maps to 400 rather than 409; the public contract treats
// duplicate email and already-inactive as plain client errors.
func NewConflict(message string) error {
	return NewDomainError(KindConflict, message, http.StatusBadRequest)
}

func NewInternalError(err error) error {
	return &DomainError{
		Kind:       KindInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError. Unknown errors are
// wrapped as internal so their text never reaches the client.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		if de, ok := NewNotFound("resource").(*DomainError); ok {
			return de
		}
	}
	// The only unique constraint reachable through the API is employees.email.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		if de, ok := NewConflict("email already exists").(*DomainError); ok {
			return de
		}
	}
	return &DomainError{
		Kind:       KindInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}
