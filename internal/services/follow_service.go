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

// FollowService maintains the directed follow graph consumed by the feed
type FollowService struct {
	store  repositories.Store
	policy pagination.Policy
	logger *slog.Logger
}

// NewFollowService creates a new FollowService
func NewFollowService(store repositories.Store, policy pagination.Policy, logger *slog.Logger) *FollowService {
	return &FollowService{store: store, policy: policy, logger: logger}
}

// Follow creates a follower -> followee edge. Self-follow is rejected;
// the feed includes own posts without an edge.
func (s *FollowService) Follow(ctx context.Context, followerID, followeeID uint) error {
	if followerID == 0 {
		return unauthorized()
	}
	if followerID == followeeID {
		return invalidInput("cannot follow yourself")
	}

	if _, err := s.store.Users().GetUserByID(ctx, followeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("user")
		}
		return storeFailure("load user", err)
	}

	follow := &models.Follow{FollowerID: followerID, FollowingID: followeeID}
	if err := s.store.Follows().CreateFollow(ctx, follow); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return invalidInput("already following this user")
		}
		return storeFailure("create follow", err)
	}

	s.logger.Debug("follow created", "follower_id", followerID, "following_id", followeeID)
	return nil
}

// Unfollow removes the follower -> followee edge
func (s *FollowService) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	if followerID == 0 {
		return unauthorized()
	}

	if err := s.store.Follows().DeleteFollow(ctx, followerID, followeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("follow relationship")
		}
		return storeFailure("delete follow", err)
	}
	return nil
}

// IsFollowing reports whether followerID follows followeeID
func (s *FollowService) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	if followerID == 0 {
		return false, unauthorized()
	}

	following, err := s.store.Follows().IsFollowing(ctx, followerID, followeeID)
	if err != nil {
		return false, storeFailure("check follow", err)
	}
	return following, nil
}

// Followers lists the users following userID
func (s *FollowService) Followers(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	users, err := s.store.Follows().GetFollowers(ctx, userID, s.policy.Limit(limit), s.policy.Offset(offset))
	if err != nil {
		return nil, storeFailure("list followers", err)
	}
	return users, nil
}

// Following lists the users userID follows
func (s *FollowService) Following(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	users, err := s.store.Follows().GetFollowing(ctx, userID, s.policy.Limit(limit), s.policy.Offset(offset))
	if err != nil {
		return nil, storeFailure("list following", err)
	}
	return users, nil
}

// Counts returns (followers, following) for a user
func (s *FollowService) Counts(ctx context.Context, userID uint) (int64, int64, error) {
	followers, err := s.store.Follows().GetFollowersCount(ctx, userID)
	if err != nil {
		return 0, 0, storeFailure("count followers", err)
	}
	following, err := s.store.Follows().GetFollowingCount(ctx, userID)
	if err != nil {
		return 0, 0, storeFailure("count following", err)
	}
	return followers, following, nil
}
