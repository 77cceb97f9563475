package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types, one per fan-out source action.
const (
	NotificationTypeMessage     = "message"
	NotificationTypeFollow      = "follow"
	NotificationTypeLike        = "like"
	NotificationTypeComment     = "comment"
	NotificationTypeCommentLike = "comment_like"
	NotificationTypeReply       = "reply"
)

// Notification represents an entry in a user's notification inbox (MongoDB).
// It is written as a best-effort side effect of a social action and never
// created by its recipient. Link is a client-relative navigation path.
type Notification struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID     string             `json:"user_id" bson:"user_id"`           // recipient
	FromUserID string             `json:"from_user_id" bson:"from_user_id"` // actor
	Type       string             `json:"type" bson:"type"`
	Content    string             `json:"content" bson:"content"`
	Link       string             `json:"link,omitempty" bson:"link,omitempty"`
	Read       bool               `json:"read" bson:"read"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
}
