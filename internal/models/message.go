package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DirectMessage is an append-only chat event between two users (MongoDB).
// Read is the only mutable field; the recipient flips it when opening the
// conversation.
type DirectMessage struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	SenderID   string             `json:"sender_id" bson:"sender_id"`
	ReceiverID string             `json:"receiver_id" bson:"receiver_id"`
	Content    string             `json:"content" bson:"content"`
	Read       bool               `json:"read" bson:"read"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
}

// GroupMessage is an append-only chat event in a group room (MongoDB)
type GroupMessage struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	GroupID   string             `json:"group_id" bson:"group_id"`
	UserID    string             `json:"user_id" bson:"user_id"`
	Content   string             `json:"content" bson:"content"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// GroupMessageWithProfile is a group message joined with the sender's
// profile snippet.
type GroupMessageWithProfile struct {
	GroupMessage
	Profile *ProfileSnippet `json:"profile,omitempty"`
}

// SendMessageRequest defines the request body for sending a direct or group
// message.
type SendMessageRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

// Conversation is one entry in a user's merged conversation list: either a
// direct-message partner or a group room (keyed "group-<id>").
type Conversation struct {
	Key           string    `json:"key"` // partner user id, or "group-" + group id
	UserID        string    `json:"user_id,omitempty"`
	GroupID       string    `json:"group_id,omitempty"`
	IsGroup       bool      `json:"is_group"`
	Name          string    `json:"name"`
	AvatarURL     string    `json:"avatar_url,omitempty"`
	LastMessage   string    `json:"last_message"`
	LastMessageAt time.Time `json:"last_message_at"`
	Unread        bool      `json:"unread"`
}
