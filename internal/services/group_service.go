package services

import (
	"context"
	"fmt"
	"log"

	"github.com/campuslink/backend/internal/models"
	"github.com/campuslink/backend/internal/repositories"
)

// GroupService owns group lifecycle and the membership approval workflow.
// The member_count invariant: the counter increments only when a membership
// becomes approved (open join, approval) and decrements only when an
// approved member leaves. Pending rows never touch it.
type GroupService struct {
	groupRepo       repositories.GroupRepository
	groupMemberRepo repositories.GroupMemberRepository
	profiles        *ProfileService
}

// NewGroupService creates a GroupService
func NewGroupService(groupRepo repositories.GroupRepository, groupMemberRepo repositories.GroupMemberRepository, profiles *ProfileService) *GroupService {
	return &GroupService{groupRepo: groupRepo, groupMemberRepo: groupMemberRepo, profiles: profiles}
}

// CreateGroup creates a group with its creator as the first approved admin
func (s *GroupService) CreateGroup(ctx context.Context, group *models.Group) error {
	if err := s.groupRepo.CreateGroup(ctx, group); err != nil {
		return err
	}
	member := &models.GroupMember{
		GroupID: group.ID.Hex(),
		UserID:  group.CreatorID,
		Role:    models.MemberRoleAdmin,
		Status:  models.MemberStatusApproved,
	}
	if err := s.groupMemberRepo.CreateMember(ctx, member); err != nil {
		log.Printf("CreateGroup creator membership: %v", err)
	}
	return nil
}

// GetGroup retrieves a group; (nil, nil) when absent
func (s *GroupService) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	return s.groupRepo.GetGroupByID(ctx, groupID)
}

// ListGroups lists groups by member count with interest filters, soft-failing
// to empty
func (s *GroupService) ListGroups(ctx context.Context, interests, subInterests []string, limit int64) []models.Group {
	rctx, cancel := readCtx(ctx)
	defer cancel()

	groups, err := s.groupRepo.ListGroups(rctx, repositories.GroupFilter{
		Interests:    interests,
		SubInterests: subInterests,
	}, limit)
	if err != nil {
		log.Printf("ListGroups: %v", err)
		return []models.Group{}
	}
	return groups
}

// Join adds the user to a group. Open groups approve immediately and bump
// member_count; closed groups create a pending request and leave the counter
// alone.
func (s *GroupService) Join(ctx context.Context, groupID, userID string) (*models.GroupMember, error) {
	group, err := s.groupRepo.GetGroupByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, fmt.Errorf("group not found")
	}

	existing, err := s.groupMemberRepo.GetMember(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("already a member or pending")
	}

	status := models.MemberStatusPending
	if group.IsOpen {
		status = models.MemberStatusApproved
	}
	member := &models.GroupMember{
		GroupID: groupID,
		UserID:  userID,
		Role:    models.MemberRoleMember,
		Status:  status,
	}
	if err := s.groupMemberRepo.CreateMember(ctx, member); err != nil {
		return nil, err
	}
	if group.IsOpen {
		if err := s.groupRepo.IncrementMemberCount(ctx, groupID, 1); err != nil {
			log.Printf("Join member counter: %v", err)
		}
	}
	return member, nil
}

// Leave removes the user's membership row. member_count decrements only if
// the row was approved; a withdrawn pending request leaves it unchanged.
func (s *GroupService) Leave(ctx context.Context, groupID, userID string) error {
	member, err := s.groupMemberRepo.GetMember(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if member == nil {
		return fmt.Errorf("membership not found")
	}

	if err := s.groupMemberRepo.DeleteMember(ctx, groupID, userID); err != nil {
		return err
	}
	if member.Status == models.MemberStatusApproved {
		if err := s.groupRepo.IncrementMemberCount(ctx, groupID, -1); err != nil {
			log.Printf("Leave member counter: %v", err)
		}
	}
	return nil
}

// Approve flips a pending membership to approved and bumps member_count.
// Only group admins may call this; the handler enforces that.
func (s *GroupService) Approve(ctx context.Context, groupID, userID string) error {
	member, err := s.groupMemberRepo.GetMember(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if member == nil {
		return fmt.Errorf("membership not found")
	}
	if member.Status != models.MemberStatusPending {
		return fmt.Errorf("membership is not pending")
	}

	if err := s.groupMemberRepo.UpdateStatus(ctx, groupID, userID, models.MemberStatusApproved); err != nil {
		return err
	}
	if err := s.groupRepo.IncrementMemberCount(ctx, groupID, 1); err != nil {
		log.Printf("Approve member counter: %v", err)
	}
	return nil
}

// Reject deletes a pending membership without touching member_count
func (s *GroupService) Reject(ctx context.Context, groupID, userID string) error {
	member, err := s.groupMemberRepo.GetMember(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if member == nil {
		return fmt.Errorf("membership not found")
	}
	if member.Status != models.MemberStatusPending {
		return fmt.Errorf("membership is not pending")
	}
	return s.groupMemberRepo.DeleteMember(ctx, groupID, userID)
}

// Members lists a group's memberships with the given status, joined with
// profile snippets
func (s *GroupService) Members(ctx context.Context, groupID, status string) []models.GroupMemberWithProfile {
	members, err := s.groupMemberRepo.GetMembersByGroupID(ctx, groupID, status)
	if err != nil {
		log.Printf("Members %s: %v", groupID, err)
		return []models.GroupMemberWithProfile{}
	}

	joined := make([]models.GroupMemberWithProfile, 0, len(members))
	for _, member := range members {
		joined = append(joined, models.GroupMemberWithProfile{
			GroupMember: member,
			Profile:     s.profiles.Snippet(ctx, member.UserID),
		})
	}
	return joined
}

// MembershipIDs returns the ids of the groups a user is an approved member of
func (s *GroupService) MembershipIDs(ctx context.Context, userID string) ([]string, error) {
	return s.groupMemberRepo.GetGroupIDsByUserID(ctx, userID, models.MemberStatusApproved)
}

// IsAdmin reports whether userID is an approved admin of the group
func (s *GroupService) IsAdmin(ctx context.Context, groupID, userID string) (bool, error) {
	member, err := s.groupMemberRepo.GetMember(ctx, groupID, userID)
	if err != nil {
		return false, err
	}
	return member != nil && member.Role == models.MemberRoleAdmin && member.Status == models.MemberStatusApproved, nil
}

// IsApprovedMember reports whether userID is an approved member
func (s *GroupService) IsApprovedMember(ctx context.Context, groupID, userID string) (bool, error) {
	return s.groupMemberRepo.IsApprovedMember(ctx, groupID, userID)
}
