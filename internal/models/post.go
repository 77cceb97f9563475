package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post types recognized by the feed.
const (
	PostTypeLookingForTeam          = "looking_for_team"
	PostTypeLookingForCollaborators = "looking_for_collaborators"
	PostTypeUpdate                  = "update"
)

// Post represents an interest-tagged post stored in MongoDB.
// LikesCount and CommentsCount are derived counters mutated exclusively by
// atomic increments, never recomputed from the like/comment rows.
type Post struct {
	ID               primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID           string             `json:"user_id" bson:"user_id"` // Firebase UID of the author
	Content          string             `json:"content" bson:"content"`
	PostType         string             `json:"post_type" bson:"post_type"`
	InterestCategory string             `json:"interest_category,omitempty" bson:"interest_category,omitempty"`
	SubInterest      string             `json:"sub_interest,omitempty" bson:"sub_interest,omitempty"`
	LikesCount       int                `json:"likes_count" bson:"likes_count"`
	CommentsCount    int                `json:"comments_count" bson:"comments_count"`
	CreatedAt        time.Time          `json:"created_at" bson:"created_at"`
}

// PostWithProfile is a post joined with its author's profile snippet.
type PostWithProfile struct {
	Post
	Profile *ProfileSnippet `json:"profile,omitempty"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content          string `json:"content" validate:"required,min=1,max=1000"`
	PostType         string `json:"post_type" validate:"required,oneof=looking_for_team looking_for_collaborators update"`
	InterestCategory string `json:"interest_category,omitempty"`
	SubInterest      string `json:"sub_interest,omitempty"`
}
