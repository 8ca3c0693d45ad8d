package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest signals a malformed or missing request parameter.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrNotFound signals an empty or incomplete match set.
	ErrNotFound = errors.New("not found")
)

// RequestError wraps ErrInvalidRequest with a client-safe message naming the
// violated constraint. The message is part of the HTTP contract and may be
// returned to callers verbatim.
type RequestError struct {
	Msg string
}

func (e *RequestError) Error() string { return e.Msg }

func (e *RequestError) Unwrap() error { return ErrInvalidRequest }

// BadRequestf creates a RequestError with a formatted client-safe message.
func BadRequestf(format string, args ...any) error {
	return &RequestError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError wraps ErrNotFound with a client-safe message. Lookup misses
// name the requested id; batch misses are deliberately unspecific about
// which pairs were absent.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NotFoundf creates a NotFoundError with a formatted client-safe message.
func NotFoundf(format string, args ...any) error {
	return &NotFoundError{Msg: fmt.Sprintf(format, args...)}
}
