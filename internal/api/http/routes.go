package http

import (
	"github.com/gin-gonic/gin"
)

// Register mounts every route on r. stream serves the websocket event
// stream of a session and may be nil.
func (h *Handlers) Register(r gin.IRouter, stream gin.HandlerFunc) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.GET("/metrics", h.Metrics)
	r.GET("/metrics/json", h.MetricsJSON)
	r.GET("/drives", h.Drives)

	r.POST("/sessions", h.CreateSession)
	r.GET("/sessions", h.ListSessions)

	s := r.Group("/sessions/:id", h.LoadSession)
	{
		s.GET("", h.GetSession)
		s.DELETE("", h.CloseSession)

		s.GET("/list", h.List)
		s.GET("/search", h.Search)
		s.GET("/history", h.History)
		s.POST("/back", h.Back)
		s.POST("/forward", h.Forward)

		s.POST("/cut", h.Cut)
		s.POST("/copy", h.Copy)
		s.GET("/clipboard", h.Clipboard)
		s.DELETE("/clipboard", h.ClearClipboard)
		s.POST("/paste", h.Paste)

		s.POST("/delete", h.Delete)
		s.POST("/rename", h.Rename)
		s.POST("/folders", h.CreateFolder)
		s.POST("/files", h.CreateFile)

		if h.recycle != nil {
			s.GET("/recycle", h.RecycleBin)
			s.DELETE("/recycle", h.EmptyRecycleBin)
			s.POST("/recycle/:rid/restore", h.RestoreItem)
			s.DELETE("/recycle/:rid", h.PurgeItem)
		}

		if stream != nil {
			s.GET("/stream", stream)
		}
	}
}
