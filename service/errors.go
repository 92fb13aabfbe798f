package service

import "errors"

// Error taxonomy. Handlers map these onto HTTP statuses: validation → 400,
// unauthorized → 401, not found → 404, anything else → 500.
var (
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)
