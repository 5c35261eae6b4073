package usecase

import "errors"

var (
	// ErrInvalidCredentials is returned when the username or password
	// is wrong. The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrSessionNotFound is returned when a refresh token does not
	// resolve to a stored session.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExpired is returned when a refresh token resolves to a
	// session past its expiration.
	ErrSessionExpired = errors.New("session has expired")
)
