package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/AgentOS/explorer/internal/domain/recycle"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/shared/id"
)

// recycleID validates the :rid route parameter.
func recycleID(c *gin.Context) (id.RecycleID, bool) {
	raw := c.Param("rid")
	if !id.IsRecycleID(raw) {
		badRequest(c, fmt.Errorf("invalid recycle id %q", raw))
		return "", false
	}
	return id.RecycleID(raw), true
}

// RecycleBin lists recycled items, newest first
func (h *Handlers) RecycleBin(c *gin.Context) {
	items, err := h.recycle.GetMetadata(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	if items == nil {
		items = []recycle.Entry{}
	}
	c.JSON(http.StatusOK, gin.H{
		"root":  h.recycle.Root(),
		"items": items,
		"count": len(items),
	})
}

// RestoreItem puts a recycled item back where it was deleted from
func (h *Handlers) RestoreItem(c *gin.Context) {
	rid, ok := recycleID(c)
	if !ok {
		return
	}
	restored, err := h.recycle.RestoreItem(c.Request.Context(), rid)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":   rid,
		"path": restored,
	})
}

// PurgeItem permanently deletes one recycled item
func (h *Handlers) PurgeItem(c *gin.Context) {
	rid, ok := recycleID(c)
	if !ok {
		return
	}
	if err := h.recycle.DeletePermanently(c.Request.Context(), rid); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "id": rid})
}

// EmptyRecycleBin permanently deletes everything in the bin. Items whose
// removal failed are reported as a warning, not an error.
func (h *Handlers) EmptyRecycleBin(c *gin.Context) {
	failed, err := h.recycle.EmptyRecycleBin(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	body := gin.H{"success": true, "failed": failed}
	if failed > 0 {
		body["warning"] = fmt.Sprintf("%d item(s) could not be removed", failed)
	}
	c.JSON(http.StatusOK, body)
}
