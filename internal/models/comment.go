package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment represents a comment on a post, stored in MongoDB. A non-empty
// ParentCommentID makes it a reply; the authoring UI only nests one level
// but nothing in storage bounds the depth of parent links.
type Comment struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	PostID          string             `json:"post_id" bson:"post_id"`
	UserID          string             `json:"user_id" bson:"user_id"`
	Content         string             `json:"content" bson:"content"`
	ParentCommentID string             `json:"parent_comment_id,omitempty" bson:"parent_comment_id,omitempty"`
	LikesCount      int                `json:"likes_count" bson:"likes_count"`
	RepliesCount    int                `json:"replies_count" bson:"replies_count"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
}

// CommentWithProfile is a comment joined with its author's profile snippet.
type CommentWithProfile struct {
	Comment
	Profile *ProfileSnippet `json:"profile,omitempty"`
}

// CommentNode is a comment with its replies attached, as rendered by the
// thread view.
type CommentNode struct {
	CommentWithProfile
	Replies []*CommentNode `json:"replies,omitempty"`
}

// CreateCommentRequest defines the request body for creating a comment or,
// when ParentCommentID is set, a reply.
type CreateCommentRequest struct {
	Content         string `json:"content" validate:"required,min=1,max=500"`
	ParentCommentID string `json:"parent_comment_id,omitempty"`
}
