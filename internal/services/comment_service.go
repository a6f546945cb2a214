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

// CommentService applies comment interactions. Row mutation and the
// comments_count delta share one transaction; ownership checks run before
// any mutation.
type CommentService struct {
	store  repositories.Store
	policy pagination.Policy
	logger *slog.Logger
}

// NewCommentService creates a new CommentService
func NewCommentService(store repositories.Store, policy pagination.Policy, logger *slog.Logger) *CommentService {
	return &CommentService{store: store, policy: policy, logger: logger}
}

// Add creates a comment on a post with server-assigned timestamps
func (s *CommentService) Add(ctx context.Context, userID, postID uint, content string) (*models.Comment, error) {
	if userID == 0 {
		return nil, unauthorized()
	}
	if strings.TrimSpace(content) == "" {
		return nil, invalidInput("content is required")
	}

	comment := &models.Comment{PostID: postID, UserID: userID, Content: content}
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		if _, err := tx.Posts().GetPostByID(ctx, postID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("post")
			}
			return storeFailure("load post", err)
		}

		if err := tx.Comments().CreateComment(ctx, comment); err != nil {
			return storeFailure("create comment", err)
		}

		if err := tx.Posts().IncrementCounter(ctx, postID, repositories.CounterComments, +1); err != nil {
			return storeFailure("increment comments", err)
		}
		return nil
	})
	if err != nil {
		return nil, asServiceError(err)
	}

	s.logger.Debug("comment added", "post_id", postID, "comment_id", comment.ID)
	return comment, nil
}

// Update edits a comment's content. Only the owner may edit; an empty
// content is a no-op, not an error.
func (s *CommentService) Update(ctx context.Context, commentID, callerID uint, content string) (*models.Comment, error) {
	if callerID == 0 {
		return nil, unauthorized()
	}

	comment, err := s.store.Comments().GetCommentByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("comment")
		}
		return nil, storeFailure("load comment", err)
	}
	if !isOwner(callerID, comment.UserID) {
		return nil, forbidden("only the comment's owner may edit it")
	}

	if strings.TrimSpace(content) == "" {
		return comment, nil
	}

	comment.Content = content
	if err := s.store.Comments().UpdateComment(ctx, comment); err != nil {
		return nil, storeFailure("update comment", err)
	}
	return comment, nil
}

// Delete removes a comment and decrements its post's counter in one
// transaction. Only the owner may delete.
func (s *CommentService) Delete(ctx context.Context, commentID, callerID uint) error {
	if callerID == 0 {
		return unauthorized()
	}

	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		comment, err := tx.Comments().GetCommentByID(ctx, commentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("comment")
			}
			return storeFailure("load comment", err)
		}
		if !isOwner(callerID, comment.UserID) {
			return forbidden("only the comment's owner may delete it")
		}

		if err := tx.Comments().DeleteComment(ctx, commentID); err != nil {
			return storeFailure("delete comment", err)
		}

		if err := tx.Posts().IncrementCounter(ctx, comment.PostID, repositories.CounterComments, -1); err != nil {
			return storeFailure("decrement comments", err)
		}
		return nil
	})
	if err != nil {
		return asServiceError(err)
	}

	s.logger.Debug("comment deleted", "comment_id", commentID)
	return nil
}

// ListByPost returns a post's comments with author summaries, newest first
func (s *CommentService) ListByPost(ctx context.Context, postID uint, limit, offset int) ([]models.CommentView, error) {
	if _, err := s.store.Posts().GetPostByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("post")
		}
		return nil, storeFailure("load post", err)
	}

	comments, err := s.store.Comments().GetCommentsByPostID(ctx, postID, s.policy.Limit(limit), s.policy.Offset(offset))
	if err != nil {
		return nil, storeFailure("list comments", err)
	}
	return comments, nil
}
