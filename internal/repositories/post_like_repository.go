package repositories

import (
	"context"
	"fmt"

	"github.com/campuslink/backend/internal/models"
	"gorm.io/gorm"
)

// PostLikeRepository defines the interface for post-like data operations
type PostLikeRepository interface {
	CreateLike(ctx context.Context, like *models.PostLike) error
	DeleteLike(ctx context.Context, postID, userID string) error
	HasUserLikedPost(ctx context.Context, postID, userID string) (bool, error)
	DeleteLikesByPostID(ctx context.Context, postID string) error
}

// PostgresPostLikeRepository implements PostLikeRepository for PostgreSQL
type PostgresPostLikeRepository struct {
	db *gorm.DB
}

// NewPostgresPostLikeRepository creates a new PostgresPostLikeRepository
func NewPostgresPostLikeRepository(db *gorm.DB) *PostgresPostLikeRepository {
	return &PostgresPostLikeRepository{db: db}
}

// CreateLike creates a new like row in PostgreSQL
func (r *PostgresPostLikeRepository) CreateLike(ctx context.Context, like *models.PostLike) error {
	return r.db.WithContext(ctx).Create(like).Error
}

// DeleteLike deletes a like row from PostgreSQL
func (r *PostgresPostLikeRepository) DeleteLike(ctx context.Context, postID, userID string) error {
	res := r.db.WithContext(ctx).Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.PostLike{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("like not found")
	}
	return nil
}

// HasUserLikedPost checks if a user has liked a specific post
func (r *PostgresPostLikeRepository) HasUserLikedPost(ctx context.Context, postID, userID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.PostLike{}).Where("post_id = ? AND user_id = ?", postID, userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteLikesByPostID removes every like row for a post, used when the post
// itself is deleted
func (r *PostgresPostLikeRepository) DeleteLikesByPostID(ctx context.Context, postID string) error {
	return r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&models.PostLike{}).Error
}
