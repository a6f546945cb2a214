package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/wavely-app/backend/internal/models"
	"github.com/wavely-app/backend/internal/pagination"
	"github.com/wavely-app/backend/internal/repositories"
	"gorm.io/gorm"
)

// UserHandler handles HTTP requests related to user profiles
type UserHandler struct {
	users  repositories.UserRepository
	policy pagination.Policy
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users repositories.UserRepository, policy pagination.Policy) *UserHandler {
	return &UserHandler{users: users, policy: policy}
}

// RegisterProfileRoutes registers user profile-related routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetProfile)
	g.PUT("/profile", h.UpdateProfile)
	g.DELETE("/profile", h.DeleteProfile)
	g.GET("/users/:id", h.GetUser)
	g.GET("/users/search", h.SearchUsers)
}

// GetProfile retrieves the authenticated user's profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := h.users.GetUserByID(c.Request().Context(), currentUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, Response{Success: false, Message: "user profile not found"})
		}
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "profile", user)
}

func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	user, err := h.users.GetUserByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, Response{Success: false, Message: "user not found"})
		}
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "user", user.ToCompact())
}

// UpdateProfile updates the authenticated user's profile. Nil fields are
// left untouched.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req models.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	ctx := c.Request().Context()
	user, err := h.users.GetUserByID(ctx, currentUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, Response{Success: false, Message: "user profile not found"})
		}
		return fail(c, err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.AvatarURL != nil {
		user.AvatarURL = req.AvatarURL
	}
	if err := h.users.UpdateUser(ctx, user); err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "profile updated", user)
}

// DeleteProfile deletes the authenticated user's account
func (h *UserHandler) DeleteProfile(c echo.Context) error {
	if err := h.users.DeleteUser(c.Request().Context(), currentUserID(c)); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// SearchUsers searches for users by name or email fragment
func (h *UserHandler) SearchUsers(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return badRequest(c, "search query 'q' is required")
	}

	limit := h.policy.Limit(queryInt(c, "limit"))
	offset := h.policy.Offset(queryInt(c, "offset"))
	users, err := h.users.SearchUsers(c.Request().Context(), query, limit, offset)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, http.StatusOK, "users", compactUsers(users))
}
