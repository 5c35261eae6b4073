// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// Session represents a user's refresh session. One session is created
// per login and rotated on every refresh.
type Session struct {
	// ID is the refresh token value handed to the client.
	ID string

	// UserID is the account the session belongs to.
	UserID uint

	// CreatedAt is the session creation time.
	CreatedAt time.Time

	// ExpiresAt is the session expiration time.
	ExpiresAt time.Time
}

// IsExpired reports whether the session has passed its expiration time.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
