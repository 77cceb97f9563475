package models

import "time"

// PostLike represents a like on a post (PostgreSQL). The composite unique
// index backs up the application-level existence check before insert.
type PostLike struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"index;uniqueIndex:idx_post_user_like"` // MongoDB ObjectID as string
	UserID    string    `json:"user_id" gorm:"index;uniqueIndex:idx_post_user_like"` // Firebase UID
	CreatedAt time.Time `json:"created_at"`
}
