package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/wavely-app/backend/internal/models"
	"github.com/wavely-app/backend/internal/pagination"
	"github.com/wavely-app/backend/internal/services"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	posts  *services.PostService
	policy pagination.Policy
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(posts *services.PostService, policy pagination.Policy) *PostHandler {
	return &PostHandler{posts: posts, policy: policy}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:id", h.GetPost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.POST("/posts/:id/share", h.SharePost)
	g.GET("/me/posts", h.GetMyPosts)
	g.GET("/users/:id/posts", h.GetUserPosts)
}

func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	post, err := h.posts.Create(c.Request().Context(), currentUserID(c), req.Content, req.MediaURL)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusCreated, "post created", post)
}

func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	post, err := h.posts.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "post", post)
}

func (h *PostHandler) UpdatePost(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	post, err := h.posts.Update(c.Request().Context(), id, currentUserID(c), req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "post updated", post)
}

func (h *PostHandler) DeletePost(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.posts.Delete(c.Request().Context(), id, currentUserID(c)); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// SharePost bumps the post's share counter. Shares are unconstrained;
// repeated shares by the same user all count.
func (h *PostHandler) SharePost(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	count, err := h.posts.Share(c.Request().Context(), currentUserID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "post shared", echo.Map{"post_id": id, "shares_count": count})
}

// GetMyPosts lists the authenticated user's own posts
func (h *PostHandler) GetMyPosts(c echo.Context) error {
	limit := h.policy.Limit(queryInt(c, "limit"))
	offset := h.policy.Offset(queryInt(c, "offset"))

	posts, err := h.posts.ListByUser(c.Request().Context(), currentUserID(c), limit, offset)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "posts", posts)
}

func (h *PostHandler) GetUserPosts(c echo.Context) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	limit := h.policy.Limit(queryInt(c, "limit"))
	offset := h.policy.Offset(queryInt(c, "offset"))

	posts, err := h.posts.ListByUser(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "posts", posts)
}
