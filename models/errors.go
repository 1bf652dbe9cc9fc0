package models

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindValidation          ErrorKind = "validation"
	KindConflict            ErrorKind = "conflict"
	KindAuth                ErrorKind = "auth"
	KindForbidden           ErrorKind = "forbidden"
	KindNotFound            ErrorKind = "not_found"
	KindRateLimited         ErrorKind = "rate_limited"
	KindPaymentVerification ErrorKind = "payment_verification"
	KindUpstream            ErrorKind = "upstream_unavailable"
	KindServer              ErrorKind = "server"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError is the error type services hand back to controllers. Message is
// safe to show to clients; Err is for logs only.
type AppError struct {
	Kind    ErrorKind
	Message string
	Fields  []FieldError
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func ErrValidation(message string, fields ...FieldError) *AppError {
	return &AppError{Kind: KindValidation, Message: message, Fields: fields}
}

func ErrConflict(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

func ErrAuth(message string) *AppError {
	return &AppError{Kind: KindAuth, Message: message}
}

func ErrForbidden(message string) *AppError {
	return &AppError{Kind: KindForbidden, Message: message}
}

func ErrNotFound(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func ErrRateLimited(message string) *AppError {
	return &AppError{Kind: KindRateLimited, Message: message}
}

func ErrPaymentVerification(message string) *AppError {
	return &AppError{Kind: KindPaymentVerification, Message: message}
}

func ErrUpstream(message string, err error) *AppError {
	return &AppError{Kind: KindUpstream, Message: message, Err: err}
}

func ErrServer(err error) *AppError {
	return &AppError{Kind: KindServer, Message: "Internal server error", Err: err}
}

// KindOf reports the kind of err, or KindServer for anything that is not an
// AppError.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindServer
}

// ErrRecordNotFound is returned by every repository backend when a lookup
// matches nothing.
var ErrRecordNotFound = errors.New("record not found")

// ErrDuplicateKey is returned by repository backends when a unique
// constraint is violated.
var ErrDuplicateKey = errors.New("duplicate key")
