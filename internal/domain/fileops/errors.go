package fileops

import (
	"context"
	"errors"

	"github.com/GriffinCanCode/AgentOS/explorer/internal/domain/recycle"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/vfs"
)

var (
	// ErrProtectedPath is returned for the root, drives and the recycle
	// root, which can never be cut, renamed or deleted.
	ErrProtectedPath = errors.New("path is protected")
	// ErrInvalidName is returned for an empty name, "." or "..", or a name
	// containing a separator.
	ErrInvalidName = errors.New("invalid name")
	// ErrInvalidTarget is returned when pasting a folder into itself or
	// into the recycle bin, or when the destination is not a folder.
	ErrInvalidTarget = errors.New("invalid paste target")
)

// ErrorKind returns a short label for err, used in metrics and API
// responses.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrProtectedPath):
		return "protected"
	case errors.Is(err, ErrInvalidName):
		return "invalid_name"
	case errors.Is(err, ErrInvalidTarget):
		return "invalid_target"
	case errors.Is(err, recycle.ErrEntryNotFound):
		return "not_found"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return vfs.KindOf(err).String()
	}
}
