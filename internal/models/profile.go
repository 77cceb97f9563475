package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile represents a user's campus profile stored in MongoDB.
// There is exactly one profile per user; it is created at signup and
// mutated only by its owner.
type Profile struct {
	ID               primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID           string             `json:"user_id" bson:"user_id"` // Firebase UID of the owner
	Name             string             `json:"name" bson:"name"`
	Bio              string             `json:"bio,omitempty" bson:"bio,omitempty"`
	Interests        []string           `json:"interests" bson:"interests"`         // broad interest categories
	SubInterests     []string           `json:"sub_interests" bson:"sub_interests"` // specific sub-interests
	SkillLevel       string             `json:"skill_level,omitempty" bson:"skill_level,omitempty"`
	City             string             `json:"city,omitempty" bson:"city,omitempty"`
	LookingFor       string             `json:"looking_for,omitempty" bson:"looking_for,omitempty"`
	StudentType      string             `json:"student_type,omitempty" bson:"student_type,omitempty"`
	Department       string             `json:"department,omitempty" bson:"department,omitempty"`
	Year             string             `json:"year,omitempty" bson:"year,omitempty"`
	AvatarURL        string             `json:"avatar_url,omitempty" bson:"avatar_url,omitempty"`
	ProfileCompleted bool               `json:"profile_completed" bson:"profile_completed"`
	CreatedAt        time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at" bson:"updated_at"`
}

// ProfileSnippet is the denormalized identity attached to posts, comments
// and messages when joining against the profile cache.
type ProfileSnippet struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Snippet returns the denormalized identity for this profile.
func (p *Profile) Snippet() *ProfileSnippet {
	if p == nil {
		return nil
	}
	return &ProfileSnippet{Name: p.Name, AvatarURL: p.AvatarURL}
}

// CreateProfileRequest defines the request body for creating a profile
type CreateProfileRequest struct {
	Name         string   `json:"name" validate:"required,min=2,max=50"`
	Bio          string   `json:"bio,omitempty" validate:"omitempty,max=300"`
	Interests    []string `json:"interests" validate:"required,min=1,dive,min=1"`
	SubInterests []string `json:"sub_interests,omitempty" validate:"omitempty,dive,min=1"`
	SkillLevel   string   `json:"skill_level,omitempty" validate:"omitempty,oneof=Beginner Intermediate Advanced"`
	City         string   `json:"city,omitempty"`
	LookingFor   string   `json:"looking_for,omitempty" validate:"omitempty,oneof=Team Collaborators Exploring"`
	StudentType  string   `json:"student_type,omitempty" validate:"omitempty,oneof=Hosteler Localite"`
	Department   string   `json:"department,omitempty"`
	Year         string   `json:"year,omitempty"`
	AvatarURL    string   `json:"avatar_url,omitempty" validate:"omitempty,url"`
}

// UpdateProfileRequest defines the request body for updating a profile.
// Nil pointer fields are skipped so a partial update never overwrites
// existing values with zero values.
type UpdateProfileRequest struct {
	Name             *string   `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Bio              *string   `json:"bio,omitempty" validate:"omitempty,max=300"`
	Interests        *[]string `json:"interests,omitempty" validate:"omitempty,min=1,dive,min=1"`
	SubInterests     *[]string `json:"sub_interests,omitempty"`
	SkillLevel       *string   `json:"skill_level,omitempty" validate:"omitempty,oneof=Beginner Intermediate Advanced"`
	City             *string   `json:"city,omitempty"`
	LookingFor       *string   `json:"looking_for,omitempty" validate:"omitempty,oneof=Team Collaborators Exploring"`
	StudentType      *string   `json:"student_type,omitempty" validate:"omitempty,oneof=Hosteler Localite"`
	Department       *string   `json:"department,omitempty"`
	Year             *string   `json:"year,omitempty"`
	AvatarURL        *string   `json:"avatar_url,omitempty" validate:"omitempty,url"`
	ProfileCompleted *bool     `json:"profile_completed,omitempty"`
}
