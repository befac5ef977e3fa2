package common

import "errors"

var (
	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")

	// Navigation errors.
	ErrUnknownRoute = errors.New("unknown route")

	// Overlay flow errors.
	ErrNothingToConfirm = errors.New("nothing to confirm")
)
