package models

import "time"

// CommentLike represents a like on a comment or reply (PostgreSQL)
type CommentLike struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CommentID string    `json:"comment_id" gorm:"index;uniqueIndex:idx_comment_user_like"` // MongoDB ObjectID as string
	UserID    string    `json:"user_id" gorm:"index;uniqueIndex:idx_comment_user_like"`    // Firebase UID
	CreatedAt time.Time `json:"created_at"`
}
