// Package apperr holds the error kinds the dispatcher turns into HTTP responses.
//
// Services return one of the three kinds; anything else reaching the boundary is
// treated as an internal failure. Store details are never part of the public message.
package apperr

import (
	"errors"
	"net/http"
)

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError reports that a record addressed by the caller does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// StoreError wraps a database failure. Public is what the caller sees; Err is logged.
type StoreError struct {
	Op     string
	Public string
	Err    error
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error { return e.Err }

const (
	msgStore    = "Database error"
	msgInternal = "Internal server error"
)

func Validation(msg string) error { return &ValidationError{Message: msg} }

func NotFound(msg string) error { return &NotFoundError{Message: msg} }

// Store wraps err as a StoreError with the generic public message. A nil err stays nil.
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Public: msgStore, Err: err}
}

// StoreMsg is Store with an operation-specific public message.
func StoreMsg(op, public string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Public: public, Err: err}
}

// Status maps err to an HTTP status and the message that is safe to return.
func Status(err error) (int, string) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Message
	}
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return http.StatusNotFound, nf.Message
	}
	var se *StoreError
	if errors.As(err, &se) {
		if se.Public == "" {
			return http.StatusInternalServerError, msgStore
		}
		return http.StatusInternalServerError, se.Public
	}
	return http.StatusInternalServerError, msgInternal
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
