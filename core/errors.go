package core

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func NewAPIError(code int, msg string) error {
	if msg == "" {
		msg = http.StatusText(code)
	}
	return &APIError{StatusCode: code, Message: msg}
}

func (err APIError) Error() string {
	return fmt.Sprintf("api: %d %s", err.StatusCode, err.Message)
}

func IsAPIError(err error, code int) bool {
	if aErr, ok := errors.Cause(err).(*APIError); ok {
		return aErr.StatusCode == code
	}
	return false
}

// NetworkError is a request that never produced a response: DNS failure,
// connection refused, timeout, cancelled context.
type NetworkError struct {
	Err error
}

func (err NetworkError) Error() string {
	return "network: " + err.Err.Error()
}

func (err NetworkError) Unwrap() error { return err.Err }

func IsNetworkError(err error) bool {
	_, ok := errors.Cause(err).(*NetworkError)
	return ok
}
