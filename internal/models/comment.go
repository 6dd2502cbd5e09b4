// Package models contains data structures for the application's domain models.
package models

import "time"

// Comment represents a comment on a post in the Inkwell application.
// It exists only in the context of its parent post; AuthorID and PostID are
// set once at creation and never mutated afterwards.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"size:1000;not null" json:"content"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"author"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
