package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/wavely-app/backend/internal/models"
	"github.com/wavely-app/backend/internal/pagination"
	"github.com/wavely-app/backend/internal/services"
)

// VideoHandler handles HTTP requests related to videos
type VideoHandler struct {
	videos *services.VideoService
	policy pagination.Policy
}

// NewVideoHandler creates a new VideoHandler
func NewVideoHandler(videos *services.VideoService, policy pagination.Policy) *VideoHandler {
	return &VideoHandler{videos: videos, policy: policy}
}

// RegisterVideoRoutes registers video-related routes
func (h *VideoHandler) RegisterVideoRoutes(g *echo.Group) {
	g.POST("/videos", h.CreateVideo)
	g.GET("/videos", h.ListVideos)
	g.GET("/videos/:id", h.GetVideo)
	g.PUT("/videos/:id", h.UpdateVideo)
	g.DELETE("/videos/:id", h.DeleteVideo)
}

func (h *VideoHandler) CreateVideo(c echo.Context) error {
	var req models.CreateVideoRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	video, err := h.videos.Create(c.Request().Context(), currentUserID(c), req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusCreated, "video created", video)
}

// GetVideo returns the video and counts the view
func (h *VideoHandler) GetVideo(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	video, err := h.videos.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "video", video)
}

func (h *VideoHandler) UpdateVideo(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req models.UpdateVideoRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	video, err := h.videos.Update(c.Request().Context(), id, currentUserID(c), req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "video updated", video)
}

func (h *VideoHandler) ListVideos(c echo.Context) error {
	limit := h.policy.Limit(queryInt(c, "limit"))
	offset := h.policy.Offset(queryInt(c, "offset"))

	videos, err := h.videos.List(c.Request().Context(), limit, offset)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "videos", videos)
}

func (h *VideoHandler) DeleteVideo(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.videos.Delete(c.Request().Context(), id, currentUserID(c)); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
