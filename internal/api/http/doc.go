// Package http exposes explorer sessions over a JSON API.
//
// Every file operation runs inside a session, the server-side state of one
// explorer window (clipboard, navigation history and event stream). The
// dialog answers a desktop UI would collect interactively travel in the
// request body instead: "confirm" for deletions and "name" for renames and
// new items.
//
// Routes:
//   - POST /sessions, GET /sessions, DELETE /sessions/:id
//   - GET /drives, GET /health, GET /metrics, GET /metrics/json
//   - GET /sessions/:id/list, /search, /history
//   - POST /sessions/:id/back, /forward
//   - POST /sessions/:id/cut, /copy, /paste; GET|DELETE /sessions/:id/clipboard
//   - POST /sessions/:id/delete, /rename, /folders, /files
//   - GET|DELETE /sessions/:id/recycle, POST /sessions/:id/recycle/:rid/restore,
//     DELETE /sessions/:id/recycle/:rid
//
// Errors are returned as {"error": message, "kind": label} with a status
// derived from the error kind.
package http
