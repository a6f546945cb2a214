package repositories

import (
	"context"

	"github.com/wavely-app/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	// CreateLike inserts a like row. A duplicate (post, user) pair fails
	// with gorm.ErrDuplicatedKey from the unique index and rolls back the
	// caller's transaction, so no counter delta survives a duplicate.
	CreateLike(ctx context.Context, like *models.Like) error
	DeleteLike(ctx context.Context, postID, userID uint) error
	GetLikesByPostID(ctx context.Context, postID uint, limit, offset int) ([]models.LikeView, error)
	CountByPostID(ctx context.Context, postID uint) (int64, error)
	HasUserLikedPost(ctx context.Context, postID, userID uint) (bool, error)
	DeleteByPostID(ctx context.Context, postID uint) error
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// CreateLike creates a new like
func (r *PostgresLikeRepository) CreateLike(ctx context.Context, like *models.Like) error {
	return r.db.WithContext(ctx).Create(like).Error
}

// DeleteLike deletes the like for (postID, userID), reporting
// gorm.ErrRecordNotFound when no such row exists
func (r *PostgresLikeRepository) DeleteLike(ctx context.Context, postID, userID uint) error {
	res := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetLikesByPostID retrieves the liking users for a post, newest first
func (r *PostgresLikeRepository) GetLikesByPostID(ctx context.Context, postID uint, limit, offset int) ([]models.LikeView, error) {
	var likes []models.LikeView
	err := r.db.WithContext(ctx).
		Table("likes").
		Select(`likes.user_id, users.name, users.email,
			users.avatar_url, likes.created_at AS liked_at`).
		Joins("JOIN users ON users.id = likes.user_id").
		Where("likes.post_id = ?", postID).
		Order("likes.created_at DESC, likes.id DESC").
		Limit(limit).
		Offset(offset).
		Scan(&likes).Error
	if err != nil {
		return nil, err
	}
	return likes, nil
}

// CountByPostID retrieves the count of likes for a post
func (r *PostgresLikeRepository) CountByPostID(ctx context.Context, postID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// HasUserLikedPost checks if a user has liked a specific post
func (r *PostgresLikeRepository) HasUserLikedPost(ctx context.Context, postID, userID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).Where("post_id = ? AND user_id = ?", postID, userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteByPostID removes every like of a post (post cascade delete)
func (r *PostgresLikeRepository) DeleteByPostID(ctx context.Context, postID uint) error {
	return r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&models.Like{}).Error
}
