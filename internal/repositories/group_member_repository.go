package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/campuslink/backend/internal/models"
	"gorm.io/gorm"
)

// GroupMemberRepository defines the interface for membership operations
type GroupMemberRepository interface {
	CreateMember(ctx context.Context, member *models.GroupMember) error
	GetMember(ctx context.Context, groupID, userID string) (*models.GroupMember, error)
	GetMembersByGroupID(ctx context.Context, groupID, status string) ([]models.GroupMember, error)
	GetGroupIDsByUserID(ctx context.Context, userID, status string) ([]string, error)
	UpdateStatus(ctx context.Context, groupID, userID, status string) error
	DeleteMember(ctx context.Context, groupID, userID string) error
	IsApprovedMember(ctx context.Context, groupID, userID string) (bool, error)
}

// PostgresGroupMemberRepository implements GroupMemberRepository for PostgreSQL
type PostgresGroupMemberRepository struct {
	db *gorm.DB
}

// NewPostgresGroupMemberRepository creates a new PostgresGroupMemberRepository
func NewPostgresGroupMemberRepository(db *gorm.DB) *PostgresGroupMemberRepository {
	return &PostgresGroupMemberRepository{db: db}
}

// CreateMember creates a membership row in PostgreSQL
func (r *PostgresGroupMemberRepository) CreateMember(ctx context.Context, member *models.GroupMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// GetMember retrieves the membership row for (groupID, userID); a missing
// row is (nil, nil)
func (r *PostgresGroupMemberRepository) GetMember(ctx context.Context, groupID, userID string) (*models.GroupMember, error) {
	var member models.GroupMember
	err := r.db.WithContext(ctx).Where("group_id = ? AND user_id = ?", groupID, userID).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

// GetMembersByGroupID retrieves a group's membership rows with the given status
func (r *PostgresGroupMemberRepository) GetMembersByGroupID(ctx context.Context, groupID, status string) ([]models.GroupMember, error) {
	var members []models.GroupMember
	err := r.db.WithContext(ctx).Where("group_id = ? AND status = ?", groupID, status).Find(&members).Error
	return members, err
}

// GetGroupIDsByUserID retrieves the ids of the groups a user belongs to with
// the given status
func (r *PostgresGroupMemberRepository) GetGroupIDsByUserID(ctx context.Context, userID, status string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.GroupMember{}).Where("user_id = ? AND status = ?", userID, status).Pluck("group_id", &ids).Error
	return ids, err
}

// UpdateStatus updates a membership's status
func (r *PostgresGroupMemberRepository) UpdateStatus(ctx context.Context, groupID, userID, status string) error {
	res := r.db.WithContext(ctx).Model(&models.GroupMember{}).Where("group_id = ? AND user_id = ?", groupID, userID).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("membership not found")
	}
	return nil
}

// DeleteMember removes a membership row
func (r *PostgresGroupMemberRepository) DeleteMember(ctx context.Context, groupID, userID string) error {
	res := r.db.WithContext(ctx).Where("group_id = ? AND user_id = ?", groupID, userID).Delete(&models.GroupMember{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("membership not found")
	}
	return nil
}

// IsApprovedMember checks whether a user is an approved member of a group
func (r *PostgresGroupMemberRepository) IsApprovedMember(ctx context.Context, groupID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.GroupMember{}).
		Where("group_id = ? AND user_id = ? AND status = ?", groupID, userID, models.MemberStatusApproved).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
