// Package ws streams explorer change notifications over WebSocket.
//
// A client opens /sessions/:id/stream for an explorer window and receives
// every event published on that window's bus: its own clipboard changes,
// plus directory and recycle bin changes made by any window. The client
// refreshes the affected views on receipt.
//
// Message Types (Client → Server):
//   - ping: Keep-alive ping
//
// Message Types (Server → Client):
//   - system: Connection established
//   - clipboard_changed, directory_changed, recycle_bin_changed: Events
//   - pong: Reply to ping
//   - session_closed: The window was closed; the server hangs up
//   - error: Unknown message type
//
// Example Usage:
//
//	handler := ws.NewHandler(sessions, metrics, logger)
//	router.GET("/sessions/:id/stream", handler.HandleConnection)
package ws
