// Package entity defines the domain entities for the comment feature.
package entity

import "time"

// Comment represents a reader comment attached to one article.
// NewsID is fixed at creation; a comment cannot move between articles.
type Comment struct {
	// ID is the unique identifier for the comment.
	ID uint `gorm:"primaryKey"`

	// Text is the comment body, at most 300 characters.
	Text string `gorm:"size:300;not null"`

	// OwnerID is the id of the user who wrote the comment.
	OwnerID uint `gorm:"column:inserted_by_id;not null;index"`

	// NewsID is the id of the article the comment belongs to.
	NewsID uint `gorm:"not null;index"`

	// CreatedAt is the timestamp when the comment was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the comment was last updated.
	UpdatedAt time.Time
}
