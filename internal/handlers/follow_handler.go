package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/wavely-app/backend/internal/models"
	"github.com/wavely-app/backend/internal/pagination"
	"github.com/wavely-app/backend/internal/services"
)

// FollowHandler handles HTTP requests related to follow relationships
type FollowHandler struct {
	follows *services.FollowService
	policy  pagination.Policy
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(follows *services.FollowService, policy pagination.Policy) *FollowHandler {
	return &FollowHandler{follows: follows, policy: policy}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.FollowUser)
	g.DELETE("/users/:id/follow", h.UnfollowUser)
	g.GET("/users/:id/follow/status", h.GetFollowStatus)
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
	g.GET("/users/:id/follow-counts", h.GetFollowCounts)
}

func (h *FollowHandler) FollowUser(c echo.Context) error {
	followeeID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.follows.Follow(c.Request().Context(), currentUserID(c), followeeID); err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusCreated, "user followed", nil)
}

func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	followeeID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.follows.Unfollow(c.Request().Context(), currentUserID(c), followeeID); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetFollowStatus reports whether the authenticated user follows the
// given user
func (h *FollowHandler) GetFollowStatus(c echo.Context) error {
	followeeID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	followerID := currentUserID(c)
	following, err := h.follows.IsFollowing(c.Request().Context(), followerID, followeeID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "follow status", echo.Map{
		"user_id":      followeeID,
		"follower_id":  followerID,
		"is_following": following,
	})
}

func (h *FollowHandler) GetFollowers(c echo.Context) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	limit := h.policy.Limit(queryInt(c, "limit"))
	offset := h.policy.Offset(queryInt(c, "offset"))

	users, err := h.follows.Followers(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "followers", compactUsers(users))
}

func (h *FollowHandler) GetFollowing(c echo.Context) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	limit := h.policy.Limit(queryInt(c, "limit"))
	offset := h.policy.Offset(queryInt(c, "offset"))

	users, err := h.follows.Following(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "following", compactUsers(users))
}

func (h *FollowHandler) GetFollowCounts(c echo.Context) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	followers, following, err := h.follows.Counts(c.Request().Context(), userID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "follow counts", echo.Map{
		"user_id":         userID,
		"followers_count": followers,
		"following_count": following,
	})
}

func compactUsers(users []models.User) []models.UserCompact {
	out := make([]models.UserCompact, 0, len(users))
	for i := range users {
		out = append(out, users[i].ToCompact())
	}
	return out
}
