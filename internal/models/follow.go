// Package models contains data structures for the application's domain models.
package models

import "time"

// Follow represents a directed subscription: UserID's personalized feed
// includes AuthorID's posts. The (user, author) pair is unique; the
// self-follow prohibition is enforced at the service boundary, not here.
type Follow struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_follow_user_author" json:"user_id"`
	AuthorID  uint      `gorm:"not null;uniqueIndex:idx_follow_user_author" json:"author_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	User   User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Author User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for GORM.
func (Follow) TableName() string {
	return "follows"
}
