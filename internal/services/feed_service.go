package services

import (
	"context"
	"log/slog"

	"github.com/wavely-app/backend/internal/models"
	"github.com/wavely-app/backend/internal/pagination"
	"github.com/wavely-app/backend/internal/repositories"
)

// FeedService builds the personalized feed: the viewer's own posts merged
// with posts from followed users, newest first with post id as tie-break.
// Paging is cursor-based on that (created_at, id) total order, so adjacent
// pages never skip or duplicate a post even while new posts are inserted.
type FeedService struct {
	store  repositories.Store
	policy pagination.Policy
	logger *slog.Logger
}

// NewFeedService creates a new FeedService
func NewFeedService(store repositories.Store, policy pagination.Policy, logger *slog.Logger) *FeedService {
	return &FeedService{store: store, policy: policy, logger: logger}
}

// FeedPage is one page of feed rows plus the cursor for the next page.
// An empty NextCursor means the feed is exhausted.
type FeedPage struct {
	Posts      []models.FeedPost `json:"posts"`
	NextCursor string            `json:"next_cursor,omitempty"`
}

// Build returns one feed page for the viewer. cursor is the opaque token
// from the previous page ("" for the first page); limit is clamped by the
// pagination policy.
func (s *FeedService) Build(ctx context.Context, viewerID uint, cursor string, limit int) (*FeedPage, error) {
	if viewerID == 0 {
		return nil, unauthorized()
	}

	limit = s.policy.Limit(limit)

	cur, err := pagination.DecodeCursor(cursor)
	if err != nil {
		return nil, invalidInput(err.Error())
	}

	// Fetch one extra row to learn whether a next page exists without a
	// second query.
	rows, err := s.store.Posts().ListFeed(ctx, viewerID, cur, limit+1)
	if err != nil {
		return nil, storeFailure("list feed", err)
	}

	page := &FeedPage{Posts: rows}
	if len(rows) > limit {
		page.Posts = rows[:limit]
		last := page.Posts[limit-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	if page.Posts == nil {
		page.Posts = []models.FeedPost{}
	}

	s.logger.Debug("feed page built", "viewer_id", viewerID, "rows", len(page.Posts), "has_next", page.NextCursor != "")
	return page, nil
}
