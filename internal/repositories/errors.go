package repositories

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrCircuitOpen is wrapped into transport errors when the upstream
	// guard refuses to send the request.
	ErrCircuitOpen = errors.New("upstream temporarily unavailable")

	// ErrRateLimited means the limiter could not grant a token before the
	// request deadline.
	ErrRateLimited = errors.New("upstream rate limit exceeded")

	errMissingField = errors.New("missing required field")
)

// TransportError covers network failures and non-2xx upstream responses.
// StatusCode is 0 when no response was received.
type TransportError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("%s: HTTP error (status %d): %s", e.Op, e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: HTTP error (status %d): %s", e.Op, e.StatusCode, http.StatusText(e.StatusCode))
	default:
		return fmt.Sprintf("%s: failed to do request: %v", e.Op, e.Err)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NotFound reports whether the upstream could not resolve the location.
func (e *TransportError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Unavailable reports whether the guard refused the request locally.
func (e *TransportError) Unavailable() bool {
	return errors.Is(e.Err, ErrCircuitOpen) || errors.Is(e.Err, ErrRateLimited)
}

// ParseError means the upstream body was not the JSON shape we expect.
// Field names the offending JSON path when known.
type ParseError struct {
	Op    string
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: failed to parse JSON response: %s: %v", e.Op, e.Field, e.Err)
	}
	return fmt.Sprintf("%s: failed to parse JSON response: %v", e.Op, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
