package service

import "errors"

// Error classes the handler layer translates into HTTP status codes. Every
// repository and service failure is wrapped around exactly one of these so
// storage details never leak to callers.
var (
	// ErrNotFound - the addressed record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation - the payload or a filter expression is malformed, or a
	// required relation (status, incident) cannot be resolved.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized - no verified identity on a request that requires one,
	// or the presented credentials are wrong.
	ErrUnauthorized = errors.New("unauthorized")
)
