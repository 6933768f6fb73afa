// Package clipboard holds the explorer's single pending cut or copy.
package clipboard

import (
	"sync"

	"github.com/GriffinCanCode/AgentOS/explorer/internal/domain/events"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/shared/paths"
)

// Operation tags a clipboard entry.
type Operation string

const (
	OperationNone Operation = ""
	OperationCut  Operation = "cut"
	OperationCopy Operation = "copy"
)

// Entry is a snapshot of the clipboard. An empty Items slice means there is
// nothing to paste.
type Entry struct {
	Items     []string  `json:"items"`
	Operation Operation `json:"operation"`
}

// Clipboard holds at most one entry. Set replaces, never merges.
type Clipboard struct {
	mu     sync.RWMutex
	items  []string
	op     Operation
	events events.Publisher
}

// New creates an empty clipboard. pub may be nil.
func New(pub events.Publisher) *Clipboard {
	if pub == nil {
		pub = events.Nop{}
	}
	return &Clipboard{events: pub}
}

// Set replaces the entry. Paths are normalized and deduplicated in
// first-seen order. An empty path list or OperationNone clears.
func (c *Clipboard) Set(items []string, op Operation) {
	if len(items) == 0 || op == OperationNone {
		c.Clear()
		return
	}

	seen := make(map[string]struct{}, len(items))
	normalized := make([]string, 0, len(items))
	for _, p := range items {
		p = paths.Normalize(p)
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		normalized = append(normalized, p)
	}

	c.mu.Lock()
	c.items = normalized
	c.op = op
	c.mu.Unlock()

	c.events.Publish(events.Event{Type: events.ClipboardChanged, Paths: normalized})
}

// Get returns a copy of the current entry.
func (c *Clipboard) Get() Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.items) == 0 {
		return Entry{Items: []string{}, Operation: OperationNone}
	}
	items := make([]string, len(c.items))
	copy(items, c.items)
	return Entry{Items: items, Operation: c.op}
}

// Clear empties the clipboard.
func (c *Clipboard) Clear() {
	c.mu.Lock()
	c.items = nil
	c.op = OperationNone
	c.mu.Unlock()

	c.events.Publish(events.Event{Type: events.ClipboardChanged})
}

// IsEmpty reports whether there is nothing to paste.
func (c *Clipboard) IsEmpty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items) == 0
}

// IsCut reports whether path is pending a cut, so a UI can dim it.
func (c *Clipboard) IsCut(path string) bool {
	path = paths.Normalize(path)
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.op != OperationCut {
		return false
	}
	for _, p := range c.items {
		if p == path {
			return true
		}
	}
	return false
}
