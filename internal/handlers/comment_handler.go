package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/wavely-app/backend/internal/models"
	"github.com/wavely-app/backend/internal/pagination"
	"github.com/wavely-app/backend/internal/services"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	comments *services.CommentService
	policy   pagination.Policy
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(comments *services.CommentService, policy pagination.Policy) *CommentHandler {
	return &CommentHandler{comments: comments, policy: policy}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/comments", h.AddComment)
	g.GET("/posts/:post_id/comments", h.ListComments)
	g.PUT("/comments/:id", h.UpdateComment)
	g.DELETE("/comments/:id", h.DeleteComment)
}

func (h *CommentHandler) AddComment(c echo.Context) error {
	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		return err
	}
	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request payload")
	}

	comment, err := h.comments.Add(c.Request().Context(), currentUserID(c), postID, req.Content)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusCreated, "comment added", comment)
}

func (h *CommentHandler) ListComments(c echo.Context) error {
	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		return err
	}
	limit := h.policy.Limit(queryInt(c, "limit"))
	offset := h.policy.Offset(queryInt(c, "offset"))

	comments, err := h.comments.ListByPost(c.Request().Context(), postID, limit, offset)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "comments", comments)
}

func (h *CommentHandler) UpdateComment(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request payload")
	}

	comment, err := h.comments.Update(c.Request().Context(), id, currentUserID(c), req.Content)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "comment updated", comment)
}

func (h *CommentHandler) DeleteComment(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.comments.Delete(c.Request().Context(), id, currentUserID(c)); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
