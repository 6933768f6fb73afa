// Package events carries change notifications from the file operations
// engine to whoever renders the explorer.
package events

import (
	"sync"
	"time"
)

// Type names a change notification.
type Type string

const (
	// ClipboardChanged fires after every clipboard set or clear.
	ClipboardChanged Type = "clipboard_changed"
	// RecycleBinChanged fires after every mutation of the recycle bin.
	RecycleBinChanged Type = "recycle_bin_changed"
	// DirectoryChanged fires after an operation alters a folder's contents.
	DirectoryChanged Type = "directory_changed"
)

// Event is one change notification.
type Event struct {
	Type      Type     `json:"type"`
	Paths     []string `json:"paths,omitempty"`
	Timestamp int64    `json:"timestamp"`
}

// Publisher is the sending half of a Bus.
type Publisher interface {
	Publish(Event)
}

// Bus fans events out to subscribers.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[chan Event]struct{}
	buffer      int
}

// DefaultBuffer is the per-subscriber channel capacity.
const DefaultBuffer = 64

// NewBus creates an event bus.
func NewBus() *Bus {
	return &Bus{
		subscribers: make(map[chan Event]struct{}),
		buffer:      DefaultBuffer,
	}
}

// Subscribe adds a new subscriber and returns its event channel.
// The caller must call Unsubscribe when done.
func (b *Bus) Subscribe() chan Event {
	ch := make(chan Event, b.buffer)
	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *Bus) Unsubscribe(ch chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subscribers[ch]; !ok {
		return
	}
	delete(b.subscribers, ch)
	close(ch)
}

// Publish sends an event to all subscribers. Non-blocking: a subscriber
// whose buffer is full misses the event.
func (b *Bus) Publish(event Event) {
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().UnixMilli()
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

// Count returns the current number of subscribers.
func (b *Bus) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Close unsubscribes everyone.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subscribers {
		delete(b.subscribers, ch)
		close(ch)
	}
}

// Nop discards events.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(Event) {}

// Multi publishes to several publishers in order.
type Multi []Publisher

// Publish implements Publisher.
func (m Multi) Publish(e Event) {
	for _, p := range m {
		if p != nil {
			p.Publish(e)
		}
	}
}
