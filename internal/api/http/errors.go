package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/AgentOS/explorer/internal/domain/fileops"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/domain/recycle"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/domain/session"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/vfs"
)

// statusFor maps an operation error onto an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrSessionNotFound),
		errors.Is(err, recycle.ErrEntryNotFound),
		errors.Is(err, vfs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, vfs.ErrAlreadyExists),
		errors.Is(err, recycle.ErrAlreadyRecycled):
		return http.StatusConflict
	case errors.Is(err, vfs.ErrPermission):
		return http.StatusForbidden
	case errors.Is(err, fileops.ErrProtectedPath),
		errors.Is(err, fileops.ErrInvalidName),
		errors.Is(err, fileops.ErrInvalidTarget),
		errors.Is(err, fileops.ErrBadPattern):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func kindOf(err error) string {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		return "session_not_found"
	case errors.Is(err, recycle.ErrAlreadyRecycled):
		return "already_recycled"
	case errors.Is(err, fileops.ErrBadPattern):
		return "bad_pattern"
	default:
		return fileops.ErrorKind(err)
	}
}

func errorBody(err error) gin.H {
	return gin.H{"error": err.Error(), "kind": kindOf(err)}
}

// fail aborts the request with err. Server-side failures are also attached
// to the gin context so the request logger reports them.
func fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, errorBody(err))
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "bad_request"})
}
