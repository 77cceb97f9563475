package repositories

import (
	"context"
	"fmt"

	"github.com/campuslink/backend/internal/models"
	"gorm.io/gorm"
)

// CommentLikeRepository defines the interface for comment-like operations
type CommentLikeRepository interface {
	CreateLike(ctx context.Context, like *models.CommentLike) error
	DeleteLike(ctx context.Context, commentID, userID string) error
	HasUserLikedComment(ctx context.Context, commentID, userID string) (bool, error)
	DeleteLikesByCommentID(ctx context.Context, commentID string) error
}

// PostgresCommentLikeRepository implements CommentLikeRepository for PostgreSQL
type PostgresCommentLikeRepository struct {
	db *gorm.DB
}

// NewPostgresCommentLikeRepository creates a new PostgresCommentLikeRepository
func NewPostgresCommentLikeRepository(db *gorm.DB) *PostgresCommentLikeRepository {
	return &PostgresCommentLikeRepository{db: db}
}

// CreateLike creates a new comment-like row in PostgreSQL
func (r *PostgresCommentLikeRepository) CreateLike(ctx context.Context, like *models.CommentLike) error {
	return r.db.WithContext(ctx).Create(like).Error
}

// DeleteLike deletes a comment-like row from PostgreSQL
func (r *PostgresCommentLikeRepository) DeleteLike(ctx context.Context, commentID, userID string) error {
	res := r.db.WithContext(ctx).Where("comment_id = ? AND user_id = ?", commentID, userID).Delete(&models.CommentLike{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("like not found")
	}
	return nil
}

// HasUserLikedComment checks if a user has liked a specific comment
func (r *PostgresCommentLikeRepository) HasUserLikedComment(ctx context.Context, commentID, userID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.CommentLike{}).Where("comment_id = ? AND user_id = ?", commentID, userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteLikesByCommentID removes every like row referencing a comment, used
// by the recursive comment delete
func (r *PostgresCommentLikeRepository) DeleteLikesByCommentID(ctx context.Context, commentID string) error {
	return r.db.WithContext(ctx).Where("comment_id = ?", commentID).Delete(&models.CommentLike{}).Error
}
