package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadRequest   = errors.New("bad request")
)

// AuthError is returned by AuthAPI implementations.
type AuthError struct {
	Op  string
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth %s: %v", e.Op, e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// APIError is a failed HTTP exchange. StatusCode is 0 when no response was
// received; Message is the server's "message" field, if any.
type APIError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	switch {
	case e.StatusCode == 0:
		return fmt.Sprintf("api %s: %v", e.Op, e.Err)
	case e.Message != "":
		return fmt.Sprintf("api %s: %d %s: %v", e.Op, e.StatusCode, e.Message, e.Err)
	default:
		return fmt.Sprintf("api %s: %d: %v", e.Op, e.StatusCode, e.Err)
	}
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// statusError maps an HTTP status to a transport sentinel.
func statusError(code int) error {
	switch {
	case code == 401 || code == 403:
		return ErrUnauthorized
	case code == 429 || code >= 500:
		return ErrUnavailable
	case code >= 400:
		return ErrBadRequest
	default:
		return nil
	}
}
