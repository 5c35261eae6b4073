// Package entity defines the domain entities for the news feature.
package entity

import "time"

// News represents a published article.
// OwnerID is set once at creation from the authenticated author and
// never changes; UpdatedByID tracks the last editor instead.
type News struct {
	// ID is the unique identifier for the article.
	ID uint `gorm:"primaryKey"`

	// Title is the headline, at most 150 characters.
	Title string `gorm:"size:150;not null"`

	// Text is the article body, at most 2000 characters.
	Text string `gorm:"size:2000;not null"`

	// OwnerID is the id of the user who created the article.
	OwnerID uint `gorm:"column:inserted_by_id;not null;index"`

	// UpdatedByID is the id of the user who last edited the article.
	UpdatedByID uint `gorm:"column:updated_by_id;not null"`

	// CreatedAt is the timestamp when the article was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the article was last updated.
	UpdatedAt time.Time
}

// TableName keeps the table name singular-free; "news" is already plural.
func (News) TableName() string {
	return "news"
}
