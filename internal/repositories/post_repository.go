package repositories

import (
	"context"
	"fmt"

	"github.com/wavely-app/backend/internal/models"
	"github.com/wavely-app/backend/internal/pagination"
	"gorm.io/gorm"
)

// CounterField names a denormalized engagement counter on the posts table
type CounterField string

const (
	CounterLikes    CounterField = "likes_count"
	CounterComments CounterField = "comments_count"
	CounterShares   CounterField = "shares_count"
)

// counterColumns is the whitelist of columns IncrementCounter may touch.
// The map keys are the only strings ever interpolated into SQL.
var counterColumns = map[CounterField]string{
	CounterLikes:    "likes_count",
	CounterComments: "comments_count",
	CounterShares:   "shares_count",
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	GetPostsByUserID(ctx context.Context, userID uint, limit, offset int) ([]models.Post, error)
	UpdatePost(ctx context.Context, post *models.Post) error
	DeletePost(ctx context.Context, id uint) error

	// IncrementCounter atomically adds delta to one counter column,
	// saturating at zero. The arithmetic happens in the database, so
	// concurrent deltas on the same post never lose updates.
	IncrementCounter(ctx context.Context, postID uint, field CounterField, delta int) error

	// ListFeed returns up to limit denormalized feed rows authored by the
	// viewer or by users the viewer follows, newest first with id as the
	// tie-break, starting strictly after the cursor position. One query,
	// author summary included.
	ListFeed(ctx context.Context, viewerID uint, cursor *pagination.Cursor, limit int) ([]models.FeedPost, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost creates a new post
func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// GetPostByID retrieves a post by ID
func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPostsByUserID retrieves a user's posts, newest first
func (r *PostgresPostRepository) GetPostsByUserID(ctx context.Context, userID uint, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdatePost updates an existing post
func (r *PostgresPostRepository) UpdatePost(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

// DeletePost deletes a post by ID
func (r *PostgresPostRepository) DeletePost(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IncrementCounter applies a clamped atomic delta to one counter column
func (r *PostgresPostRepository) IncrementCounter(ctx context.Context, postID uint, field CounterField, delta int) error {
	col, ok := counterColumns[field]
	if !ok {
		return fmt.Errorf("unknown counter field %q", field)
	}

	res := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", postID).
		UpdateColumn(col, gorm.Expr("GREATEST("+col+" + ?, 0)", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListFeed selects the viewer's feed page in a single query
func (r *PostgresPostRepository) ListFeed(ctx context.Context, viewerID uint, cursor *pagination.Cursor, limit int) ([]models.FeedPost, error) {
	followed := r.db.Table("follows").
		Select("following_id").
		Where("follower_id = ?", viewerID)

	q := r.db.WithContext(ctx).
		Table("posts").
		Select(`posts.id, posts.user_id, posts.content, posts.media_url,
			posts.likes_count, posts.comments_count, posts.shares_count,
			posts.created_at, posts.updated_at,
			users.name AS author_name, users.email AS author_email,
			users.avatar_url AS author_avatar`).
		Joins("JOIN users ON users.id = posts.user_id").
		Where("posts.user_id = ? OR posts.user_id IN (?)", viewerID, followed)

	if cursor != nil {
		q = q.Where("posts.created_at < ? OR (posts.created_at = ? AND posts.id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var rows []models.FeedPost
	err := q.Order("posts.created_at DESC, posts.id DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
