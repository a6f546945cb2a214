package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/wavely-app/backend/internal/services"
)

// FeedHandler handles HTTP requests for the personalized feed
type FeedHandler struct {
	feed *services.FeedService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feed *services.FeedService) *FeedHandler {
	return &FeedHandler{feed: feed}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// GetFeed returns one page of the viewer's feed. The cursor query param
// is the opaque token from the previous page's next_cursor; omit it for
// the first page.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	page, err := h.feed.Build(c.Request().Context(), currentUserID(c), c.QueryParam("cursor"), queryInt(c, "limit"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "feed", page)
}
