package models

import "time"

// Post is a discussion-board entry.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"user"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Comment is a reply under a post.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null" json:"post_id"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	Content   string    `gorm:"size:255;not null" json:"content"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	Post      Post      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"user"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Like records one user's reaction to a post. Toggling flips Active instead
// of deleting the row.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_post_user" json:"post_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_post_user" json:"user_id"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	Post      Post      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
