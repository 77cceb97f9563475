package models

import "time"

// Membership statuses and roles.
const (
	MemberStatusApproved = "approved"
	MemberStatusPending  = "pending"

	MemberRoleAdmin  = "admin"
	MemberRoleMember = "member"
)

// GroupMember represents a group membership row (PostgreSQL). Closed groups
// create the row with status=pending; an admin approval flips it to approved.
type GroupMember struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	GroupID  string    `json:"group_id" gorm:"index;uniqueIndex:idx_group_user_member"` // MongoDB ObjectID as string
	UserID   string    `json:"user_id" gorm:"index;uniqueIndex:idx_group_user_member"`  // Firebase UID
	Role     string    `json:"role" gorm:"size:20;default:member"`
	Status   string    `json:"status" gorm:"size:20;index"`
	JoinedAt time.Time `json:"joined_at" gorm:"autoCreateTime"`
}

// GroupMemberWithProfile is a membership row joined with the member's
// profile snippet.
type GroupMemberWithProfile struct {
	GroupMember
	Profile *ProfileSnippet `json:"profile,omitempty"`
}
