package http

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/AgentOS/explorer/internal/domain/fileops"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/shared/paths"
)

type pathsRequest struct {
	Paths []string `json:"paths" binding:"required"`
}

type pasteRequest struct {
	Destination string `json:"destination"`
}

type deleteRequest struct {
	Paths     []string `json:"paths" binding:"required"`
	Permanent bool     `json:"permanent"`
	Confirm   bool     `json:"confirm"`
}

type renameRequest struct {
	Path string `json:"path" binding:"required"`
	Name string `json:"name" binding:"required"`
}

type createRequest struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// bindOptional binds a JSON body that may be absent.
func bindOptional(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// List lists a folder and records the visit in the window's history
func (h *Handlers) List(c *gin.Context) {
	s := current(c)
	dir := c.Query("path")
	if dir == "" {
		dir = s.History.Current()
	}
	dir = paths.Normalize(dir)

	entries, err := s.Engine(nil).List(c.Request.Context(), dir, h.sniffLimit)
	if err != nil {
		fail(c, err)
		return
	}

	if len(s.History.Entries()) == 0 || dir != s.History.Current() {
		s.History.Push(dir)
		s.History.AddToMRU(dir)
	}

	c.JSON(http.StatusOK, gin.H{
		"path":    dir,
		"name":    paths.DisplayName(dir, h.rootLabel),
		"entries": entries,
		"history": s.History.Snapshot(),
	})
}

// Search matches a glob against the subtree of a folder
func (h *Handlers) Search(c *gin.Context) {
	s := current(c)
	pattern := c.Query("pattern")
	if pattern == "" {
		badRequest(c, errors.New("pattern is required"))
		return
	}
	dir := c.Query("path")
	if dir == "" {
		dir = s.History.Current()
	}

	found, err := s.Engine(nil).Search(c.Request.Context(), dir, pattern)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"path":      paths.Normalize(dir),
		"pattern":   pattern,
		"results":   found,
		"truncated": len(found) >= fileops.MaxSearchResults,
	})
}

// Back steps back in the window's history
func (h *Handlers) Back(c *gin.Context) {
	s := current(c)
	_, moved := s.History.GoBack()
	h.navigated(c, moved)
}

// Forward steps forward in the window's history
func (h *Handlers) Forward(c *gin.Context) {
	s := current(c)
	_, moved := s.History.GoForward()
	h.navigated(c, moved)
}

func (h *Handlers) navigated(c *gin.Context, moved bool) {
	s := current(c)
	c.JSON(http.StatusOK, gin.H{
		"moved":   moved,
		"path":    s.History.Current(),
		"history": s.History.Snapshot(),
	})
}

// History returns the back/forward stack and recent folders
func (h *Handlers) History(c *gin.Context) {
	c.JSON(http.StatusOK, current(c).History.Snapshot())
}

// Cut marks items to be moved by the next paste
func (h *Handlers) Cut(c *gin.Context) {
	h.mark(c, (*fileops.Engine).CutItems)
}

// Copy marks items to be copied by the next paste
func (h *Handlers) Copy(c *gin.Context) {
	h.mark(c, (*fileops.Engine).CopyItems)
}

func (h *Handlers) mark(c *gin.Context, op func(*fileops.Engine, []string) error) {
	var req pathsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s := current(c)
	if err := op(s.Engine(nil), req.Paths); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s.Clipboard.Get())
}

// Clipboard returns the clipboard contents
func (h *Handlers) Clipboard(c *gin.Context) {
	c.JSON(http.StatusOK, current(c).Clipboard.Get())
}

// ClearClipboard empties the clipboard
func (h *Handlers) ClearClipboard(c *gin.Context) {
	s := current(c)
	s.Clipboard.Clear()
	c.JSON(http.StatusOK, s.Clipboard.Get())
}

// Paste applies the clipboard to a folder, by default the current one
func (h *Handlers) Paste(c *gin.Context) {
	var req pasteRequest
	if err := bindOptional(c, &req); err != nil {
		badRequest(c, err)
		return
	}
	s := current(c)
	dest := req.Destination
	if dest == "" {
		dest = s.History.Current()
	}

	results, err := s.Engine(nil).PasteItems(c.Request.Context(), dest)
	if results == nil {
		results = []fileops.PasteResult{}
	}
	if err != nil {
		body := errorBody(err)
		body["results"] = results
		if statusFor(err) >= http.StatusInternalServerError {
			_ = c.Error(err)
		}
		c.AbortWithStatusJSON(statusFor(err), body)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"destination": paths.Normalize(dest),
		"results":     results,
		"clipboard":   s.Clipboard.Get(),
	})
}

// Delete recycles or permanently deletes items. Nothing happens unless the
// request carries confirm=true.
func (h *Handlers) Delete(c *gin.Context) {
	var req deleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	engine := current(c).Engine(fileops.Answers{Confirmed: req.Confirm})

	deleted, err := engine.DeleteItems(c.Request.Context(), req.Paths, req.Permanent)
	if err != nil {
		fail(c, err)
		return
	}
	count := 0
	if deleted {
		count = len(paths.Outermost(req.Paths))
	}
	c.JSON(http.StatusOK, gin.H{
		"deleted": deleted,
		"count":   count,
	})
}

// Rename renames one item
func (h *Handlers) Rename(c *gin.Context) {
	var req renameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	engine := current(c).Engine(fileops.Answers{Name: req.Name})

	newPath, err := engine.RenameItem(c.Request.Context(), req.Path)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"renamed": newPath != "",
		"path":    newPath,
	})
}

// CreateFolder creates a folder, named "New folder" unless a name is given
func (h *Handlers) CreateFolder(c *gin.Context) {
	h.create(c, (*fileops.Engine).CreateFolderIn)
}

// CreateFile creates an empty text file
func (h *Handlers) CreateFile(c *gin.Context) {
	h.create(c, (*fileops.Engine).CreateTextFileIn)
}

func (h *Handlers) create(c *gin.Context, op func(*fileops.Engine, context.Context, string) (string, error)) {
	var req createRequest
	if err := bindOptional(c, &req); err != nil {
		badRequest(c, err)
		return
	}
	s := current(c)
	dir := req.Path
	if dir == "" {
		dir = s.History.Current()
	}

	created, err := op(s.Engine(fileops.Answers{Name: req.Name}), c.Request.Context(), dir)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"path": created})
}
