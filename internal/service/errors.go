package service

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthRequired means the request carries no valid session.
	ErrAuthRequired = errors.New("authentication required")
	// ErrInvalidCredentials covers both an unknown user and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
)

// ValidationError rejects client input before anything is written.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

const (
	msgRequired   = "es obligatorio"
	msgOutOfRange = "está fuera de rango"
)

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// StoreError wraps a repository failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *StoreError) Unwrap() error { return e.Err }

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

// ReportError wraps any failure while building the spreadsheet export.
type ReportError struct {
	Err error
}

func (e *ReportError) Error() string { return "generate report: " + e.Err.Error() }
func (e *ReportError) Unwrap() error { return e.Err }
