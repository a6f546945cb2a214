package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/wavely-app/backend/internal/models"
	"github.com/wavely-app/backend/internal/pagination"
	"github.com/wavely-app/backend/internal/repositories"
	"gorm.io/gorm"
)

// VideoService owns the video lifecycle. The view counter is
// fire-and-forget: every successful read increments it atomically, and an
// increment failure is logged without failing the read.
type VideoService struct {
	store  repositories.Store
	policy pagination.Policy
	logger *slog.Logger
}

// NewVideoService creates a new VideoService
func NewVideoService(store repositories.Store, policy pagination.Policy, logger *slog.Logger) *VideoService {
	return &VideoService{store: store, policy: policy, logger: logger}
}

// Create registers a video whose file and thumbnail are already stored
func (s *VideoService) Create(ctx context.Context, userID uint, req models.CreateVideoRequest) (*models.Video, error) {
	if userID == 0 {
		return nil, unauthorized()
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.FileURL) == "" {
		return nil, invalidInput("title and video file are required")
	}

	video := &models.Video{
		UserID:       userID,
		Title:        req.Title,
		Description:  req.Description,
		FileURL:      req.FileURL,
		ThumbnailURL: req.ThumbnailURL,
		DurationSecs: req.DurationSecs,
	}
	if err := s.store.Videos().CreateVideo(ctx, video); err != nil {
		return nil, storeFailure("create video", err)
	}

	s.logger.Debug("video created", "video_id", video.ID, "user_id", userID)
	return video, nil
}

// Get retrieves a video and bumps its view counter
func (s *VideoService) Get(ctx context.Context, videoID uint) (*models.VideoView, error) {
	video, err := s.store.Videos().GetVideoByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("video")
		}
		return nil, storeFailure("load video", err)
	}

	if err := s.store.Videos().IncrementViews(ctx, videoID); err != nil {
		s.logger.Warn("view increment failed", "video_id", videoID, "error", err)
	} else {
		video.ViewsCount++
	}
	return video, nil
}

// Update edits a video's title and/or description. Owner only; nil
// fields are left untouched.
func (s *VideoService) Update(ctx context.Context, videoID, callerID uint, req models.UpdateVideoRequest) (*models.VideoView, error) {
	if callerID == 0 {
		return nil, unauthorized()
	}

	video, err := s.store.Videos().GetVideoByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("video")
		}
		return nil, storeFailure("load video", err)
	}
	if !isOwner(callerID, video.UserID) {
		return nil, forbidden("only the video's owner may edit it")
	}

	if req.Title != nil {
		video.Title = *req.Title
	}
	if req.Description != nil {
		video.Description = *req.Description
	}
	if err := s.store.Videos().UpdateVideoDetails(ctx, videoID, video.Title, video.Description); err != nil {
		return nil, storeFailure("update video", err)
	}
	return video, nil
}

// List returns videos newest first
func (s *VideoService) List(ctx context.Context, limit, offset int) ([]models.VideoView, error) {
	videos, err := s.store.Videos().ListVideos(ctx, s.policy.Limit(limit), s.policy.Offset(offset))
	if err != nil {
		return nil, storeFailure("list videos", err)
	}
	return videos, nil
}

// Delete removes a video. Owner only.
func (s *VideoService) Delete(ctx context.Context, videoID, callerID uint) error {
	if callerID == 0 {
		return unauthorized()
	}

	video, err := s.store.Videos().GetVideoByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("video")
		}
		return storeFailure("load video", err)
	}
	if !isOwner(callerID, video.UserID) {
		return forbidden("only the video's owner may delete it")
	}

	if err := s.store.Videos().DeleteVideo(ctx, videoID); err != nil {
		return storeFailure("delete video", err)
	}
	return nil
}
