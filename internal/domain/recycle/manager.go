package recycle

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/explorer/internal/domain/events"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/shared/id"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/shared/naming"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/shared/paths"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/vfs"
)

var (
	// ErrEntryNotFound is returned for an id with no ledger row.
	ErrEntryNotFound = errors.New("recycle bin entry not found")
	// ErrAlreadyRecycled is returned when recycling a path inside the bin.
	ErrAlreadyRecycled = errors.New("path is already in the recycle bin")
	// ErrCorruptLedger is returned when the ledger cannot be decoded.
	ErrCorruptLedger = errors.New("recycle ledger is corrupt")
)

// Recycle bin action labels for metrics.
const (
	ActionRecycle = "recycle"
	ActionRestore = "restore"
	ActionPurge   = "purge"
	ActionEmpty   = "empty"
)

// Entry is one ledger row.
type Entry struct {
	ID           id.RecycleID `json:"id"`
	OriginalPath string       `json:"originalPath"`
	Name         string       `json:"name"`
	DeletedAt    time.Time    `json:"deletedAt"`
}

type ledger struct {
	Items []Entry `json:"items"`
}

func (l *ledger) index(rid id.RecycleID) int {
	for i, e := range l.Items {
		if e.ID == rid {
			return i
		}
	}
	return -1
}

func (l *ledger) remove(i int) {
	l.Items = append(l.Items[:i], l.Items[i+1:]...)
}

// Options configures a Manager.
type Options struct {
	FS      vfs.FileSystem
	Root    string // defaults to paths.DefaultRecycleRoot
	Events  events.Publisher
	Logger  *logging.Logger
	Metrics *monitoring.Metrics
	IDs     *id.Generator
	Clock   func() time.Time
}

// Manager owns the recycle root and its ledger.
type Manager struct {
	fs         vfs.FileSystem
	root       string
	ledgerPath string
	events     events.Publisher
	logger     *logging.Logger
	metrics    *monitoring.Metrics
	ids        *id.Generator
	now        func() time.Time

	mu sync.Mutex
}

// NewManager creates a recycle bin manager. Call Init before use.
func NewManager(opts Options) *Manager {
	root := paths.Normalize(opts.Root)
	if opts.Root == "" {
		root = paths.DefaultRecycleRoot
	}
	m := &Manager{
		fs:         opts.FS,
		root:       root,
		ledgerPath: paths.Join(root, paths.LedgerName),
		events:     opts.Events,
		logger:     opts.Logger.OrNop().Named("recycle"),
		metrics:    opts.Metrics,
		ids:        opts.IDs,
		now:        opts.Clock,
	}
	if m.events == nil {
		m.events = events.Nop{}
	}
	if m.ids == nil {
		m.ids = id.Default()
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m
}

// Root returns the recycle root path.
func (m *Manager) Root() string { return m.root }

// LedgerPath returns the ledger file path.
func (m *Manager) LedgerPath() string { return m.ledgerPath }

// SetPublisher replaces the event publisher. Not safe to call concurrently
// with other methods; used while wiring sessions.
func (m *Manager) SetPublisher(pub events.Publisher) {
	if pub == nil {
		pub = events.Nop{}
	}
	m.events = pub
}

// Init ensures the recycle root and ledger exist, then reconciles the ledger
// with the objects actually present. It is idempotent.
func (m *Manager) Init(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.fs.Mkdir(ctx, m.root, true); err != nil {
		return fmt.Errorf("create recycle root: %w", err)
	}

	exists, err := vfs.Exists(ctx, m.fs, m.ledgerPath)
	if err != nil {
		return err
	}
	if !exists {
		if err := m.writeLedger(ctx, &ledger{Items: []Entry{}}); err != nil {
			return err
		}
		m.logger.Info("Recycle bin initialized", zap.String("root", m.root))
	}

	return m.reconcile(ctx)
}

func (m *Manager) reconcile(ctx context.Context) error {
	led, err := m.readLedger(ctx)
	if err != nil {
		return err
	}

	known := make(map[string]bool, len(led.Items))
	kept := led.Items[:0]
	pruned := 0
	for _, e := range led.Items {
		ok, err := vfs.Exists(ctx, m.fs, m.objectPath(e.ID))
		if err != nil {
			return err
		}
		if !ok {
			m.logger.Warn("Pruning ledger row with missing object",
				zap.String("id", e.ID.String()),
				zap.String("originalPath", e.OriginalPath))
			pruned++
			continue
		}
		known[e.ID.String()] = true
		kept = append(kept, e)
	}

	names, err := m.fs.ReadDir(ctx, m.root)
	if err != nil {
		return err
	}
	for _, name := range names {
		if name != paths.LedgerName && !known[name] {
			m.logger.Warn("Orphaned object in recycle root", zap.String("name", name))
		}
	}

	led.Items = kept
	if pruned > 0 {
		if err := m.writeLedger(ctx, led); err != nil {
			return err
		}
	}
	m.metrics.SetRecycleItems(len(led.Items))
	return nil
}

// MoveToRecycleBin moves path into the bin under a fresh id and records it.
// An entry with a non-empty ID is recorded even when err is set; that
// happens when the original could not be removed after a cross-drive copy.
func (m *Manager) MoveToRecycleBin(ctx context.Context, path string) (Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, err := m.recycle(ctx, path)
	if entry.ID != "" {
		m.changed(paths.Parent(entry.OriginalPath))
	}
	return entry, err
}

// MoveBatch recycles paths in order and stops at the first failure. Paths
// inside another selected folder go with that folder. The entries recycled
// before the failure are returned alongside the error.
func (m *Manager) MoveBatch(ctx context.Context, items []string) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	done := make([]Entry, 0, len(items))
	defer func() {
		if len(done) == 0 {
			return
		}
		dirs := make([]string, 0, len(done))
		for _, e := range done {
			dirs = append(dirs, paths.Parent(e.OriginalPath))
		}
		m.changed(dirs...)
	}()

	for _, p := range paths.Outermost(items) {
		if err := ctx.Err(); err != nil {
			return done, err
		}
		entry, err := m.recycle(ctx, p)
		if entry.ID != "" {
			done = append(done, entry)
		}
		if err != nil {
			return done, err
		}
	}
	return done, nil
}

func (m *Manager) recycle(ctx context.Context, path string) (Entry, error) {
	path = paths.Normalize(path)
	if paths.IsWithin(m.root, path) {
		return Entry{}, vfs.NewError("recycle", path, vfs.KindPermission)
	}
	if paths.IsWithin(path, m.root) {
		return Entry{}, fmt.Errorf("%s: %w", path, ErrAlreadyRecycled)
	}

	led, err := m.readLedger(ctx)
	if err != nil {
		return Entry{}, err
	}

	entry := Entry{
		ID:           m.ids.NewRecycleID(),
		OriginalPath: path,
		Name:         paths.Base(path),
		DeletedAt:    m.now().UTC(),
	}
	dest := m.objectPath(entry.ID)

	// a fallback copy that could not delete its source still leaves a
	// complete object in the bin, so it is recorded before failing
	moveErr := m.move(ctx, path, dest)
	if moveErr != nil && !errors.Is(moveErr, vfs.ErrSourceRemains) {
		return Entry{}, fmt.Errorf("move %s to recycle bin: %w", path, moveErr)
	}

	led.Items = append(led.Items, entry)
	if err := m.writeLedger(ctx, led); err != nil {
		if moveErr != nil {
			m.logger.Error("Recycled copy left without a ledger row",
				zap.String("path", path),
				zap.String("id", entry.ID.String()),
				zap.Error(err))
			return Entry{}, err
		}
		if _, undoErr := vfs.SafeMove(context.WithoutCancel(ctx), m.fs, dest, path); undoErr != nil {
			m.logger.Error("Failed to undo recycle after ledger write failure",
				zap.String("path", path),
				zap.String("id", entry.ID.String()),
				zap.Error(undoErr))
		}
		return Entry{}, err
	}

	m.metrics.RecordRecycleAction(ActionRecycle)
	if moveErr != nil {
		m.logger.Warn("Recycled item but could not remove the original",
			zap.String("path", path),
			zap.String("id", entry.ID.String()),
			zap.Error(moveErr))
		return entry, fmt.Errorf("move %s to recycle bin: %w", path, moveErr)
	}
	m.logger.Info("Recycled item",
		zap.String("path", path),
		zap.String("id", entry.ID.String()))
	return entry, nil
}

// RestoreItem moves a recycled object back to its original location and
// returns the path it was restored to. The original parent is recreated if
// needed. When the original path is occupied the item is restored under a
// numbered name instead; nothing is overwritten.
func (m *Manager) RestoreItem(ctx context.Context, rid id.RecycleID) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	led, err := m.readLedger(ctx)
	if err != nil {
		return "", err
	}
	i := led.index(rid)
	if i < 0 {
		return "", fmt.Errorf("%s: %w", rid, ErrEntryNotFound)
	}
	entry := led.Items[i]
	src := m.objectPath(rid)

	info, err := m.fs.Stat(ctx, src)
	if err != nil {
		return "", err
	}

	parent := paths.Parent(entry.OriginalPath)
	if err := m.fs.Mkdir(ctx, parent, true); err != nil {
		return "", fmt.Errorf("recreate %s: %w", parent, err)
	}

	target, err := naming.MoveTarget(parent, entry.Name, info.IsDir, func(p string) (bool, error) {
		return vfs.Exists(ctx, m.fs, p)
	})
	if err != nil {
		return "", err
	}

	if err := m.move(ctx, src, target); err != nil {
		return "", fmt.Errorf("restore %s: %w", entry.OriginalPath, err)
	}

	led.remove(i)
	if err := m.writeLedger(ctx, led); err != nil {
		if _, undoErr := vfs.SafeMove(context.WithoutCancel(ctx), m.fs, target, src); undoErr != nil {
			m.logger.Error("Failed to undo restore after ledger write failure",
				zap.String("path", target),
				zap.String("id", rid.String()),
				zap.Error(undoErr))
		}
		return "", err
	}

	m.metrics.RecordRecycleAction(ActionRestore)
	m.logger.Info("Restored item",
		zap.String("id", rid.String()),
		zap.String("path", target),
		zap.Bool("renamed", target != entry.OriginalPath))
	m.changed(parent)
	return target, nil
}

// DeletePermanently removes a recycled object and its ledger row. The row is
// dropped even when the physical removal fails; that failure is still
// returned.
func (m *Manager) DeletePermanently(ctx context.Context, rid id.RecycleID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	led, err := m.readLedger(ctx)
	if err != nil {
		return err
	}
	i := led.index(rid)
	if i < 0 {
		return fmt.Errorf("%s: %w", rid, ErrEntryNotFound)
	}

	rmErr := m.removeObject(ctx, rid)
	led.remove(i)
	if err := m.writeLedger(ctx, led); err != nil {
		return errors.Join(rmErr, err)
	}

	m.metrics.RecordRecycleAction(ActionPurge)
	m.changed()
	return rmErr
}

// Forget drops the ledger row for rid without touching the object. Used
// when a recycled object leaves the bin by some other route, such as a cut
// and paste out of it.
func (m *Manager) Forget(ctx context.Context, rid id.RecycleID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	led, err := m.readLedger(ctx)
	if err != nil {
		return err
	}
	i := led.index(rid)
	if i < 0 {
		return fmt.Errorf("%s: %w", rid, ErrEntryNotFound)
	}
	led.remove(i)
	if err := m.writeLedger(ctx, led); err != nil {
		return err
	}
	m.changed()
	return nil
}

// EmptyRecycleBin removes every recycled object and resets the ledger. A
// failed removal does not stop the loop or keep its row; the number of
// failures is returned so the caller can warn. Objects with no ledger row
// are swept as well.
func (m *Manager) EmptyRecycleBin(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	led, err := m.readLedger(ctx)
	if err != nil {
		return 0, err
	}

	failed := 0
	for _, e := range led.Items {
		if err := m.removeObject(ctx, e.ID); err != nil {
			failed++
		}
	}

	if names, err := m.fs.ReadDir(ctx, m.root); err == nil {
		for _, name := range names {
			if name == paths.LedgerName {
				continue
			}
			if err := m.fs.Remove(ctx, paths.Join(m.root, name), true); err != nil && !errors.Is(err, vfs.ErrNotFound) {
				m.logger.Warn("Failed to sweep recycle object", zap.String("name", name), zap.Error(err))
			}
		}
	}

	if err := m.writeLedger(context.WithoutCancel(ctx), &ledger{Items: []Entry{}}); err != nil {
		return failed, err
	}

	m.metrics.RecordRecycleAction(ActionEmpty)
	m.logger.Info("Emptied recycle bin",
		zap.Int("items", len(led.Items)),
		zap.Int("failed", failed))
	m.changed()
	return failed, nil
}

// IsEmpty reports whether the ledger has no rows.
func (m *Manager) IsEmpty(ctx context.Context) (bool, error) {
	items, err := m.GetMetadata(ctx)
	if err != nil {
		return false, err
	}
	return len(items) == 0, nil
}

// GetMetadata returns all ledger rows, newest first.
func (m *Manager) GetMetadata(ctx context.Context) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	led, err := m.readLedger(ctx)
	if err != nil {
		return nil, err
	}
	items := append([]Entry{}, led.Items...)
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].DeletedAt.Equal(items[j].DeletedAt) {
			return items[i].DeletedAt.After(items[j].DeletedAt)
		}
		return items[i].ID > items[j].ID
	})
	return items, nil
}

// Get returns the ledger row for rid.
func (m *Manager) Get(ctx context.Context, rid id.RecycleID) (Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	led, err := m.readLedger(ctx)
	if err != nil {
		return Entry{}, err
	}
	i := led.index(rid)
	if i < 0 {
		return Entry{}, fmt.Errorf("%s: %w", rid, ErrEntryNotFound)
	}
	return led.Items[i], nil
}

// IsRecycledPath reports whether path lies inside a recycled object.
func (m *Manager) IsRecycledPath(path string) bool {
	_, ok := m.IDForPath(path)
	return ok
}

// IDForPath returns the id of the recycled object containing path.
func (m *Manager) IDForPath(path string) (id.RecycleID, bool) {
	path = paths.Normalize(path)
	if path == m.root || path == m.ledgerPath || !paths.IsWithin(path, m.root) {
		return "", false
	}
	rel := paths.Segments(path)[len(paths.Segments(m.root))]
	return id.RecycleID(rel), true
}

func (m *Manager) objectPath(rid id.RecycleID) string {
	return paths.Join(m.root, rid.String())
}

func (m *Manager) move(ctx context.Context, src, dst string) error {
	fallback, err := vfs.SafeMove(ctx, m.fs, src, dst)
	if fallback {
		m.metrics.IncMoveFallbacks()
		m.logger.Debug("Move fell back to copy and delete",
			zap.String("from", src),
			zap.String("to", dst))
	}
	return err
}

func (m *Manager) removeObject(ctx context.Context, rid id.RecycleID) error {
	err := m.fs.Remove(ctx, m.objectPath(rid), true)
	if err == nil || errors.Is(err, vfs.ErrNotFound) {
		return nil
	}
	m.logger.Warn("Failed to remove recycled object",
		zap.String("id", rid.String()),
		zap.Error(err))
	return err
}

func (m *Manager) readLedger(ctx context.Context) (*ledger, error) {
	data, err := m.fs.ReadFile(ctx, m.ledgerPath)
	if errors.Is(err, vfs.ErrNotFound) {
		return &ledger{Items: []Entry{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read recycle ledger: %w", err)
	}

	var led ledger
	if err := sonic.Unmarshal(data, &led); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptLedger, err)
	}
	if led.Items == nil {
		led.Items = []Entry{}
	}
	return &led, nil
}

func (m *Manager) writeLedger(ctx context.Context, led *ledger) error {
	data, err := sonic.Marshal(led)
	if err != nil {
		return fmt.Errorf("encode recycle ledger: %w", err)
	}
	if err := m.fs.WriteFile(ctx, m.ledgerPath, data); err != nil {
		return fmt.Errorf("write recycle ledger: %w", err)
	}
	m.metrics.SetRecycleItems(len(led.Items))
	return nil
}

func (m *Manager) changed(dirs ...string) {
	m.events.Publish(events.Event{Type: events.RecycleBinChanged})
	if len(dirs) > 0 {
		m.events.Publish(events.Event{Type: events.DirectoryChanged, Paths: dedupe(dirs)})
	}
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, s := range items {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
