package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/wavely-app/backend/internal/pagination"
	"github.com/wavely-app/backend/internal/services"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	likes  *services.LikeService
	policy pagination.Policy
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likes *services.LikeService, policy pagination.Policy) *LikeHandler {
	return &LikeHandler{likes: likes, policy: policy}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/likes", h.LikePost)
	g.DELETE("/posts/:post_id/likes", h.UnlikePost)
	g.GET("/posts/:post_id/likes", h.ListLikes)
	g.GET("/posts/:post_id/likes/status", h.GetLikeStatus)
}

func (h *LikeHandler) LikePost(c echo.Context) error {
	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		return err
	}
	count, err := h.likes.Like(c.Request().Context(), currentUserID(c), postID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusCreated, "post liked", echo.Map{"post_id": postID, "likes_count": count})
}

func (h *LikeHandler) UnlikePost(c echo.Context) error {
	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		return err
	}
	count, err := h.likes.Unlike(c.Request().Context(), currentUserID(c), postID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "post unliked", echo.Map{"post_id": postID, "likes_count": count})
}

func (h *LikeHandler) ListLikes(c echo.Context) error {
	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		return err
	}
	limit := h.policy.Limit(queryInt(c, "limit"))
	offset := h.policy.Offset(queryInt(c, "offset"))

	likes, err := h.likes.ListLikes(c.Request().Context(), postID, limit, offset)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "likes", likes)
}

func (h *LikeHandler) GetLikeStatus(c echo.Context) error {
	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		return err
	}
	userID := currentUserID(c)
	liked, err := h.likes.HasLiked(c.Request().Context(), userID, postID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "like status", echo.Map{"post_id": postID, "user_id": userID, "has_liked": liked})
}
