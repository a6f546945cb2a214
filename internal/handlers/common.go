package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/wavely-app/backend/internal/services"
)

// Response is the JSON envelope every endpoint returns
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func ok(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, Response{Success: true, Message: message, Data: data})
}

// fail maps a service error kind to its HTTP status and wraps the message
// in the standard envelope
func fail(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch services.KindOf(err) {
	case services.KindNotFound:
		status = http.StatusNotFound
	case services.KindForbidden:
		status = http.StatusForbidden
	case services.KindUnauthorized:
		status = http.StatusUnauthorized
	case services.KindInvalidInput:
		status = http.StatusBadRequest
	case services.KindAlreadyLiked, services.KindNotLiked:
		status = http.StatusConflict
	}
	message := err.Error()
	if status == http.StatusInternalServerError {
		// do not leak store internals to clients
		message = "internal server error"
	}
	return c.JSON(status, Response{Success: false, Message: message})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, Response{Success: false, Message: message})
}

// currentUserID returns the authenticated user's id placed in the context
// by the JWT middleware, or 0 when the request is unauthenticated.
func currentUserID(c echo.Context) uint {
	id, _ := c.Get("userID").(uint)
	return id
}

func parseIDParam(c echo.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}

func queryInt(c echo.Context, name string) int {
	n, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return n
}
