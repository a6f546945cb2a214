package repositories

import (
	"context"

	"github.com/wavely-app/backend/internal/models"
	"gorm.io/gorm"
)

// VideoRepository defines the interface for video data operations
type VideoRepository interface {
	CreateVideo(ctx context.Context, video *models.Video) error
	GetVideoByID(ctx context.Context, id uint) (*models.VideoView, error)
	ListVideos(ctx context.Context, limit, offset int) ([]models.VideoView, error)

	// UpdateVideoDetails rewrites only the title and description columns,
	// leaving views_count to the atomic increment path.
	UpdateVideoDetails(ctx context.Context, id uint, title, description string) error
	DeleteVideo(ctx context.Context, id uint) error

	// IncrementViews atomically bumps views_count by one. Every read may
	// increment; there is no uniqueness constraint.
	IncrementViews(ctx context.Context, id uint) error
}

// PostgresVideoRepository implements VideoRepository for PostgreSQL
type PostgresVideoRepository struct {
	db *gorm.DB
}

// NewPostgresVideoRepository creates a new PostgresVideoRepository
func NewPostgresVideoRepository(db *gorm.DB) *PostgresVideoRepository {
	return &PostgresVideoRepository{db: db}
}

const videoViewSelect = `videos.id, videos.user_id, videos.title, videos.description,
	videos.file_url, videos.thumbnail_url, videos.duration_secs, videos.views_count,
	videos.created_at, videos.updated_at, users.email AS user_email`

// CreateVideo creates a new video record
func (r *PostgresVideoRepository) CreateVideo(ctx context.Context, video *models.Video) error {
	return r.db.WithContext(ctx).Create(video).Error
}

// GetVideoByID retrieves a video with its uploader's email
func (r *PostgresVideoRepository) GetVideoByID(ctx context.Context, id uint) (*models.VideoView, error) {
	var video models.VideoView
	err := r.db.WithContext(ctx).
		Table("videos").
		Select(videoViewSelect).
		Joins("LEFT JOIN users ON users.id = videos.user_id").
		Where("videos.id = ?", id).
		Scan(&video).Error
	if err != nil {
		return nil, err
	}
	if video.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &video, nil
}

// ListVideos retrieves videos newest first
func (r *PostgresVideoRepository) ListVideos(ctx context.Context, limit, offset int) ([]models.VideoView, error) {
	var videos []models.VideoView
	err := r.db.WithContext(ctx).
		Table("videos").
		Select(videoViewSelect).
		Joins("LEFT JOIN users ON users.id = videos.user_id").
		Order("videos.created_at DESC, videos.id DESC").
		Limit(limit).
		Offset(offset).
		Scan(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}

// UpdateVideoDetails edits a video's title and description
func (r *PostgresVideoRepository) UpdateVideoDetails(ctx context.Context, id uint, title, description string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"title": title, "description": description})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteVideo deletes a video by ID
func (r *PostgresVideoRepository) DeleteVideo(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Video{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IncrementViews applies the atomic view-count bump
func (r *PostgresVideoRepository) IncrementViews(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
