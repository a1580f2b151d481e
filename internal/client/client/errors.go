package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrBadResponse  = errors.New("malformed response")
)

// APIError is the single error type produced at the transport boundary.
//
// StatusCode is zero when no HTTP response was received. Message holds the
// server-supplied {"error": "..."} text when the body carried one. Err is a
// sentinel (or the underlying transport error) usable with errors.Is.
type APIError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	switch {
	case e.StatusCode == 0:
		return fmt.Sprintf("api error: %v", e.Err)
	case e.Message != "":
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("api error %d: %v", e.StatusCode, e.Err)
	}
}

func (e *APIError) Unwrap() error { return e.Err }

// ServerMessage returns the server-supplied error message carried by err,
// if any.
func ServerMessage(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, true
	}
	return "", false
}

// MessageOr returns the server-supplied message of err or fallback.
func MessageOr(err error, fallback string) string {
	if msg, ok := ServerMessage(err); ok {
		return msg
	}
	return fallback
}

// statusError maps an HTTP status to its sentinel.
func statusError(code int) error {
	switch {
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return ErrUnauthorized
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= http.StatusInternalServerError:
		return ErrUnavailable
	default:
		return fmt.Errorf("unexpected status %d", code)
	}
}
