package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/wavely-app/backend/internal/models"
	"github.com/wavely-app/backend/internal/pagination"
	"github.com/wavely-app/backend/internal/repositories"
	"gorm.io/gorm"
)

// LikeService applies like/unlike interactions. The like row insert and the
// likes_count delta run in one transaction: a duplicate like aborts before
// any counter change, and a crash between the two leaves nothing behind.
type LikeService struct {
	store  repositories.Store
	policy pagination.Policy
	logger *slog.Logger
}

// NewLikeService creates a new LikeService
func NewLikeService(store repositories.Store, policy pagination.Policy, logger *slog.Logger) *LikeService {
	return &LikeService{store: store, policy: policy, logger: logger}
}

// Like records userID liking postID and returns the post's new like count
func (s *LikeService) Like(ctx context.Context, userID, postID uint) (int, error) {
	if userID == 0 {
		return 0, unauthorized()
	}

	var likesCount int
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		if _, err := tx.Posts().GetPostByID(ctx, postID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("post")
			}
			return storeFailure("load post", err)
		}

		like := &models.Like{PostID: postID, UserID: userID}
		if err := tx.Likes().CreateLike(ctx, like); err != nil {
			// The unique index catches the duplicate even when two likes
			// race past any prior existence check.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return alreadyLiked()
			}
			return storeFailure("create like", err)
		}

		if err := tx.Posts().IncrementCounter(ctx, postID, repositories.CounterLikes, +1); err != nil {
			return storeFailure("increment likes", err)
		}

		post, err := tx.Posts().GetPostByID(ctx, postID)
		if err != nil {
			return storeFailure("reload post", err)
		}
		likesCount = post.LikesCount
		return nil
	})
	if err != nil {
		return 0, asServiceError(err)
	}

	s.logger.Debug("post liked", "post_id", postID, "user_id", userID)
	return likesCount, nil
}

// Unlike removes userID's like from postID and returns the new like count
func (s *LikeService) Unlike(ctx context.Context, userID, postID uint) (int, error) {
	if userID == 0 {
		return 0, unauthorized()
	}

	var likesCount int
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		if _, err := tx.Posts().GetPostByID(ctx, postID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("post")
			}
			return storeFailure("load post", err)
		}

		if err := tx.Likes().DeleteLike(ctx, postID, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notLiked()
			}
			return storeFailure("delete like", err)
		}

		if err := tx.Posts().IncrementCounter(ctx, postID, repositories.CounterLikes, -1); err != nil {
			return storeFailure("decrement likes", err)
		}

		post, err := tx.Posts().GetPostByID(ctx, postID)
		if err != nil {
			return storeFailure("reload post", err)
		}
		likesCount = post.LikesCount
		return nil
	})
	if err != nil {
		return 0, asServiceError(err)
	}

	s.logger.Debug("post unliked", "post_id", postID, "user_id", userID)
	return likesCount, nil
}

// ListLikes returns the users who liked a post, newest first
func (s *LikeService) ListLikes(ctx context.Context, postID uint, limit, offset int) ([]models.LikeView, error) {
	if _, err := s.store.Posts().GetPostByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("post")
		}
		return nil, storeFailure("load post", err)
	}

	likes, err := s.store.Likes().GetLikesByPostID(ctx, postID, s.policy.Limit(limit), s.policy.Offset(offset))
	if err != nil {
		return nil, storeFailure("list likes", err)
	}
	return likes, nil
}

// HasLiked reports whether userID has liked postID
func (s *LikeService) HasLiked(ctx context.Context, userID, postID uint) (bool, error) {
	if userID == 0 {
		return false, unauthorized()
	}

	liked, err := s.store.Likes().HasUserLikedPost(ctx, postID, userID)
	if err != nil {
		return false, storeFailure("check like", err)
	}
	return liked, nil
}

// asServiceError passes typed errors through and wraps anything else as a
// store failure, so transaction plumbing errors never leak raw.
func asServiceError(err error) error {
	var se *Error
	if errors.As(err, &se) {
		return se
	}
	return storeFailure("transaction", err)
}
