package services

import "errors"

// Error taxonomy shared by every service. Controllers map these to HTTP
// status codes with errors.Is; anything unrecognized becomes a 500.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrAlreadyPaid        = errors.New("order already paid")
	ErrNotReady           = errors.New("order not served yet")
	ErrUnavailable        = errors.New("storage unavailable")
)
