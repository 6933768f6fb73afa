// Package navigation tracks where an explorer window has been.
package navigation

import (
	"sync"

	"github.com/GriffinCanCode/AgentOS/explorer/internal/shared/paths"
)

// DefaultMRUSize caps the recently used folder list.
const DefaultMRUSize = 10

// History is a back/forward stack plus a bounded list of recently used
// folders. The zero cursor of an empty history points at nothing.
type History struct {
	mu      sync.RWMutex
	entries []string
	cursor  int
	mru     []string
	mruSize int
}

// Snapshot is a read-only copy of History for display.
type Snapshot struct {
	Entries      []string `json:"entries"`
	Cursor       int      `json:"cursor"`
	Current      string   `json:"current"`
	CanGoBack    bool     `json:"can_go_back"`
	CanGoForward bool     `json:"can_go_forward"`
	MRU          []string `json:"mru"`
}

// New creates an empty history. mruSize <= 0 selects DefaultMRUSize.
func New(mruSize int) *History {
	if mruSize <= 0 {
		mruSize = DefaultMRUSize
	}
	return &History{cursor: -1, mruSize: mruSize}
}

// Push records a navigation to path. Forward history is discarded, and a
// push of the path already under the cursor does nothing.
func (h *History) Push(path string) {
	path = paths.Normalize(path)

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cursor >= 0 && h.entries[h.cursor] == path {
		h.entries = h.entries[:h.cursor+1]
		return
	}
	h.entries = append(h.entries[:h.cursor+1], path)
	h.cursor = len(h.entries) - 1
}

// GoBack moves the cursor one step back and returns the path there.
func (h *History) GoBack() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cursor <= 0 {
		return "", false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

// GoForward moves the cursor one step forward and returns the path there.
func (h *History) GoForward() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cursor < 0 || h.cursor >= len(h.entries)-1 {
		return "", false
	}
	h.cursor++
	return h.entries[h.cursor], true
}

// CanGoBack reports whether GoBack would move.
func (h *History) CanGoBack() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cursor > 0
}

// CanGoForward reports whether GoForward would move.
func (h *History) CanGoForward() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cursor >= 0 && h.cursor < len(h.entries)-1
}

// Current returns the path under the cursor, or the root before any
// navigation.
func (h *History) Current() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.cursor < 0 {
		return paths.Root
	}
	return h.entries[h.cursor]
}

// Entries returns a copy of the back/forward stack.
func (h *History) Entries() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]string(nil), h.entries...)
}

// AddToMRU appends path and drops the oldest entries beyond the cap.
// Duplicates are kept.
func (h *History) AddToMRU(path string) {
	path = paths.Normalize(path)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.mru = append(h.mru, path)
	if over := len(h.mru) - h.mruSize; over > 0 {
		h.mru = append([]string(nil), h.mru[over:]...)
	}
}

// MRUFolders returns the recently used folders, oldest first.
func (h *History) MRUFolders() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]string{}, h.mru...)
}

// Snapshot returns the whole state at once.
func (h *History) Snapshot() Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s := Snapshot{
		Entries:      append([]string{}, h.entries...),
		Cursor:       h.cursor,
		Current:      paths.Root,
		CanGoBack:    h.cursor > 0,
		CanGoForward: h.cursor >= 0 && h.cursor < len(h.entries)-1,
		MRU:          append([]string{}, h.mru...),
	}
	if h.cursor >= 0 {
		s.Current = h.entries[h.cursor]
	}
	return s
}
