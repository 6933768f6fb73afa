// Package session manages explorer windows.
//
// Each session is one open file manager window with its own clipboard,
// navigation history and event bus. All sessions share the filesystem and
// the recycle bin manager.
//
// Event routing:
//   - clipboard_changed: only the owning window
//   - directory_changed: every window, since any of them may show the folder
//   - recycle_bin_changed: every window
//
// Example Usage:
//
//	manager := session.NewManager(session.Options{FS: table, Recycle: bin})
//	s := manager.Create()
//	engine := s.Engine(fileops.Answers{Confirmed: true})
//	_, err := engine.PasteItems(ctx, "/Local Disk/docs")
package session
