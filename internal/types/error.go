package types

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the storage and service layers. Handlers map these
// to HTTP status codes; anything else becomes a generic 500.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAccessDenied indicates the caller is authenticated but not entitled.
	ErrAccessDenied = errors.New("access denied")

	// ErrExists indicates a uniqueness violation (e.g. username taken).
	ErrExists = errors.New("already exists")

	// ErrUnauthorized indicates missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrExpired indicates a share link past its expiry.
	ErrExpired = errors.New("expired")

	// ErrValidation indicates malformed or missing input fields.
	ErrValidation = errors.New("invalid input")
)

type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}
