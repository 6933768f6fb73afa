package session

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/explorer/internal/domain/clipboard"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/domain/events"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/domain/fileops"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/domain/navigation"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/domain/recycle"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/shared/id"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/vfs"
)

// ErrSessionNotFound is returned for an unknown or closed session id.
var ErrSessionNotFound = errors.New("session not found")

// Session is one explorer window.
type Session struct {
	ID        id.SessionID
	CreatedAt time.Time
	Clipboard *clipboard.Clipboard
	History   *navigation.History
	Bus       *events.Bus

	engine *fileops.Engine
}

// Engine returns the window's engine answering dialogs through p. The
// clipboard and history are shared with every other engine of the window.
func (s *Session) Engine(p fileops.Prompter) *fileops.Engine {
	return s.engine.WithPrompter(p)
}

// Info summarises a session.
type Info struct {
	ID          id.SessionID `json:"id"`
	CreatedAt   time.Time    `json:"created_at"`
	Current     string       `json:"current"`
	Clipboard   int          `json:"clipboard_items"`
	Subscribers int          `json:"subscribers"`
}

// Info returns a summary of the session.
func (s *Session) Info() Info {
	return Info{
		ID:          s.ID,
		CreatedAt:   s.CreatedAt,
		Current:     s.History.Current(),
		Clipboard:   len(s.Clipboard.Get().Items),
		Subscribers: s.Bus.Count(),
	}
}

// Options configures a Manager.
type Options struct {
	FS      vfs.FileSystem
	Recycle *recycle.Manager
	MRUSize int
	Logger  *logging.Logger
	Metrics *monitoring.Metrics
}

// Manager tracks open sessions.
type Manager struct {
	sessions sync.Map
	mu       sync.Mutex
	count    int

	fs      vfs.FileSystem
	recycle *recycle.Manager
	mruSize int
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewManager creates a session manager. Recycle bin events are routed to
// every session from here on.
func NewManager(opts Options) *Manager {
	m := &Manager{
		fs:      opts.FS,
		recycle: opts.Recycle,
		mruSize: opts.MRUSize,
		logger:  opts.Logger.OrNop().Named("session"),
		metrics: opts.Metrics,
	}
	if m.recycle != nil {
		m.recycle.SetPublisher(m)
	}
	return m
}

// Create opens a new session.
func (m *Manager) Create() *Session {
	bus := events.NewBus()
	s := &Session{
		ID:        id.NewSessionID(),
		CreatedAt: time.Now(),
		Clipboard: clipboard.New(bus),
		History:   navigation.New(m.mruSize),
		Bus:       bus,
	}
	s.engine = fileops.NewEngine(fileops.Options{
		FS:        m.fs,
		Clipboard: s.Clipboard,
		History:   s.History,
		Recycle:   m.recycle,
		Events:    m,
		Logger:    m.logger.With(zap.String("session", s.ID.String())),
		Metrics:   m.metrics,
	})

	m.sessions.Store(s.ID, s)
	m.adjust(1)
	m.logger.Info("Session opened", zap.String("session", s.ID.String()))
	return s
}

// Get returns an open session.
func (m *Manager) Get(sid id.SessionID) (*Session, error) {
	v, ok := m.sessions.Load(sid)
	if !ok {
		return nil, fmt.Errorf("%s: %w", sid, ErrSessionNotFound)
	}
	return v.(*Session), nil
}

// Close closes a session and disconnects its subscribers.
func (m *Manager) Close(sid id.SessionID) error {
	v, ok := m.sessions.LoadAndDelete(sid)
	if !ok {
		return fmt.Errorf("%s: %w", sid, ErrSessionNotFound)
	}
	v.(*Session).Bus.Close()
	m.adjust(-1)
	m.logger.Info("Session closed", zap.String("session", sid.String()))
	return nil
}

// CloseAll closes every session.
func (m *Manager) CloseAll() {
	m.sessions.Range(func(key, _ any) bool {
		_ = m.Close(key.(id.SessionID))
		return true
	})
}

// List returns all open sessions, oldest first.
func (m *Manager) List() []Info {
	var out []Info
	m.sessions.Range(func(_, v any) bool {
		out = append(out, v.(*Session).Info())
		return true
	})
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Count returns the number of open sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count
}

// Publish broadcasts an event to every session.
func (m *Manager) Publish(e events.Event) {
	m.sessions.Range(func(_, v any) bool {
		v.(*Session).Bus.Publish(e)
		return true
	})
}

func (m *Manager) adjust(delta int) {
	m.mu.Lock()
	m.count += delta
	n := m.count
	m.mu.Unlock()
	m.metrics.SetSessionsActive(n)
}
