package sdk

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for errors.Is checks against *APIError responses.
var (
	// ErrNotFound reports a 404: the id or one of the id/version pairs
	// does not exist in the catalog.
	ErrNotFound = errors.New("resource not found")
	// ErrBadRequest reports a 400: missing or malformed query parameters.
	ErrBadRequest = errors.New("bad request")
)

// APIError is a non-200 response from the server, carrying the message of
// its {"error": ...} body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("resources api: %d: %s", e.StatusCode, e.Message)
}

// Unwrap maps the status code onto the matching sentinel.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest:
		return ErrBadRequest
	}
	return nil
}
