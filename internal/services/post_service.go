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

// PostService owns the post lifecycle. Deleting a post hard-deletes its
// comments and likes in the same transaction, so the counter invariant
// holds trivially afterwards.
type PostService struct {
	store  repositories.Store
	policy pagination.Policy
	logger *slog.Logger
}

// NewPostService creates a new PostService
func NewPostService(store repositories.Store, policy pagination.Policy, logger *slog.Logger) *PostService {
	return &PostService{store: store, policy: policy, logger: logger}
}

// Create stores a new post with zeroed counters. The media URL, when
// present, references an already-uploaded object.
func (s *PostService) Create(ctx context.Context, userID uint, content string, mediaURL *string) (*models.Post, error) {
	if userID == 0 {
		return nil, unauthorized()
	}
	if strings.TrimSpace(content) == "" {
		return nil, invalidInput("content is required")
	}

	post := &models.Post{UserID: userID, Content: content, MediaURL: mediaURL}
	if err := s.store.Posts().CreatePost(ctx, post); err != nil {
		return nil, storeFailure("create post", err)
	}

	s.logger.Debug("post created", "post_id", post.ID, "user_id", userID)
	return post, nil
}

// Get retrieves a post by ID
func (s *PostService) Get(ctx context.Context, postID uint) (*models.Post, error) {
	post, err := s.store.Posts().GetPostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("post")
		}
		return nil, storeFailure("load post", err)
	}
	return post, nil
}

// Update edits a post's content and/or media reference. Owner only; nil
// fields are left untouched.
func (s *PostService) Update(ctx context.Context, postID, callerID uint, req models.UpdatePostRequest) (*models.Post, error) {
	if callerID == 0 {
		return nil, unauthorized()
	}

	post, err := s.store.Posts().GetPostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("post")
		}
		return nil, storeFailure("load post", err)
	}
	if !isOwner(callerID, post.UserID) {
		return nil, forbidden("only the post's owner may edit it")
	}

	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.MediaURL != nil {
		post.MediaURL = req.MediaURL
	}
	if err := s.store.Posts().UpdatePost(ctx, post); err != nil {
		return nil, storeFailure("update post", err)
	}
	return post, nil
}

// Delete removes a post and cascades its comments and likes in one
// transaction. Owner only.
func (s *PostService) Delete(ctx context.Context, postID, callerID uint) error {
	if callerID == 0 {
		return unauthorized()
	}

	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		post, err := tx.Posts().GetPostByID(ctx, postID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("post")
			}
			return storeFailure("load post", err)
		}
		if !isOwner(callerID, post.UserID) {
			return forbidden("only the post's owner may delete it")
		}

		if err := tx.Comments().DeleteByPostID(ctx, postID); err != nil {
			return storeFailure("delete comments", err)
		}
		if err := tx.Likes().DeleteByPostID(ctx, postID); err != nil {
			return storeFailure("delete likes", err)
		}
		if err := tx.Posts().DeletePost(ctx, postID); err != nil {
			return storeFailure("delete post", err)
		}
		return nil
	})
	if err != nil {
		return asServiceError(err)
	}

	s.logger.Debug("post deleted", "post_id", postID)
	return nil
}

// ListByUser returns a user's posts, newest first, offset-paged. Per-owner
// listings churn slowly enough that offset paging is acceptable here; the
// feed uses cursors.
func (s *PostService) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Post, error) {
	posts, err := s.store.Posts().GetPostsByUserID(ctx, userID, s.policy.Limit(limit), s.policy.Offset(offset))
	if err != nil {
		return nil, storeFailure("list posts", err)
	}
	return posts, nil
}

// Share bumps a post's share counter. Like video views there is no
// uniqueness constraint; every share increments.
func (s *PostService) Share(ctx context.Context, userID, postID uint) (int, error) {
	if userID == 0 {
		return 0, unauthorized()
	}

	var sharesCount int
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		if err := tx.Posts().IncrementCounter(ctx, postID, repositories.CounterShares, +1); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("post")
			}
			return storeFailure("increment shares", err)
		}

		post, err := tx.Posts().GetPostByID(ctx, postID)
		if err != nil {
			return storeFailure("reload post", err)
		}
		sharesCount = post.SharesCount
		return nil
	})
	if err != nil {
		return 0, asServiceError(err)
	}
	return sharesCount, nil
}
