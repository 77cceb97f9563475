package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group represents an interest group stored in MongoDB. MemberCount is a
// denormalized counter: it moves by atomic increment on approved joins and
// approved leaves only, never on pending memberships.
type Group struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Interest    string             `json:"interest" bson:"interest"`
	SubInterest string             `json:"sub_interest,omitempty" bson:"sub_interest,omitempty"`
	IsOpen      bool               `json:"is_open" bson:"is_open"`
	MemberCount int                `json:"member_count" bson:"member_count"`
	CreatorID   string             `json:"creator_id" bson:"creator_id"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}

// CreateGroupRequest defines the request body for creating a group
type CreateGroupRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=80"`
	Description string `json:"description,omitempty" validate:"omitempty,max=500"`
	Interest    string `json:"interest" validate:"required"`
	SubInterest string `json:"sub_interest,omitempty"`
	IsOpen      bool   `json:"is_open"`
}
