package domain

import "errors"

// Sentinel errors shared across the HTTP layer and the stores. Handlers map
// them to status codes; anything else is treated as an internal error.
var (
	ErrNotFound           = errors.New("record not found")
	ErrUnsupportedFormat  = errors.New("unsupported file type")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUserExists         = errors.New("user already exists")
)
