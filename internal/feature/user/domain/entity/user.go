// Package entity defines the domain entities for the user feature.
package entity

import "time"

// Role describes what a user is allowed to do. Stored as a string
// column so the database stays readable.
type Role string

// The three roles known to the portal.
const (
	RoleAdmin      Role = "ADMIN"
	RoleJournalist Role = "JOURNALIST"
	RoleSubscriber Role = "SUBSCRIBER"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleJournalist, RoleSubscriber:
		return true
	}
	return false
}

// User represents a portal account.
// Deletion is logical: the row is kept with Deleted set, so historical
// comments keep a resolvable owner.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Username is the login name. It must be unique across all users,
	// including soft-deleted ones.
	Username string `gorm:"uniqueIndex;size:40;not null"`

	// Password is the bcrypt hash of the user's password.
	// This never stores plaintext and is never serialized.
	Password string `gorm:"size:255;not null"`

	// Name, Surname and ParentName are optional profile fields.
	Name       string `gorm:"size:20"`
	Surname    string `gorm:"size:20"`
	ParentName string `gorm:"size:20"`

	// Role decides the authorization rules applied to the user.
	Role Role `gorm:"size:20;not null"`

	// Deleted marks the account as logically removed.
	Deleted bool `gorm:"column:is_deleted;not null;default:false"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}
