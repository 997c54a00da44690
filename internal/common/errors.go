// Package common defines shared constants and sentinel errors used across
// client and server layers of Mood-Tracker. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors.
	ErrorValidation          = errors.New("validation error")
	ErrorLoginAlreadyExists  = errors.New("login already exists")
	ErrorInvalidLoginFormat  = errors.New("invalid login format")
	ErrorUnknownSubscription = errors.New("unknown subscription plan")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
