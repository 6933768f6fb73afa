package fileops

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/explorer/internal/domain/clipboard"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/domain/events"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/domain/navigation"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/domain/recycle"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/shared/id"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/shared/naming"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/shared/paths"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/vfs"
)

// Operation names used in logs and metrics.
const (
	OpCut    = "cut"
	OpCopy   = "copy"
	OpPaste  = "paste"
	OpDelete = "delete"
	OpRename = "rename"
	OpMkdir  = "create_folder"
	OpTouch  = "create_file"
)

// Options wires an Engine. FS is required; a nil Recycle makes every
// delete permanent.
type Options struct {
	FS        vfs.FileSystem
	Clipboard *clipboard.Clipboard
	History   *navigation.History
	Recycle   *recycle.Manager
	Prompter  Prompter
	Events    events.Publisher
	Logger    *logging.Logger
	Metrics   *monitoring.Metrics
}

// Engine coordinates file operations for one explorer window.
type Engine struct {
	fs        vfs.FileSystem
	clipboard *clipboard.Clipboard
	history   *navigation.History
	recycle   *recycle.Manager
	prompter  Prompter
	events    events.Publisher
	logger    *logging.Logger
	metrics   *monitoring.Metrics
}

// PasteResult records one pasted item.
type PasteResult struct {
	Source   string `json:"source"`
	Target   string `json:"target"`
	Fallback bool   `json:"fallback,omitempty"`
	Skipped  bool   `json:"skipped,omitempty"`
}

// NewEngine builds an engine. Missing collaborators get private defaults:
// an empty clipboard and history, a prompter that declines everything and
// no events.
func NewEngine(opts Options) *Engine {
	e := &Engine{
		fs:        opts.FS,
		clipboard: opts.Clipboard,
		history:   opts.History,
		recycle:   opts.Recycle,
		prompter:  opts.Prompter,
		events:    opts.Events,
		logger:    opts.Logger.OrNop().Named("fileops"),
		metrics:   opts.Metrics,
	}
	if e.events == nil {
		e.events = events.Nop{}
	}
	if e.clipboard == nil {
		e.clipboard = clipboard.New(e.events)
	}
	if e.history == nil {
		e.history = navigation.New(0)
	}
	if e.prompter == nil {
		e.prompter = Answers{Cancel: true}
	}
	return e
}

// WithPrompter returns a shallow copy of e that asks p instead. Clipboard,
// history and everything else stay shared.
func (e *Engine) WithPrompter(p Prompter) *Engine {
	c := *e
	if p != nil {
		c.prompter = p
	}
	return &c
}

// FS returns the filesystem the engine operates on.
func (e *Engine) FS() vfs.FileSystem { return e.fs }

// Clipboard returns the window's clipboard.
func (e *Engine) Clipboard() *clipboard.Clipboard { return e.clipboard }

// History returns the window's navigation history.
func (e *Engine) History() *navigation.History { return e.history }

// Recycle returns the shared recycle bin manager, or nil.
func (e *Engine) Recycle() *recycle.Manager { return e.recycle }

// CutItems puts items on the clipboard for a move. Drives, the root and the
// recycle root are rejected.
func (e *Engine) CutItems(items []string) error {
	if len(items) == 0 {
		return nil
	}
	for _, p := range items {
		if err := e.checkMutable(p); err != nil {
			e.metrics.RecordOperationError(OpCut, ErrorKind(err))
			return err
		}
	}
	e.clipboard.Set(items, clipboard.OperationCut)
	return nil
}

// CopyItems puts items on the clipboard for a copy.
func (e *Engine) CopyItems(items []string) error {
	if len(items) == 0 {
		return nil
	}
	for _, p := range items {
		if paths.IsRoot(p) || e.isReserved(p) {
			err := fmt.Errorf("copy %s: %w", paths.Normalize(p), ErrProtectedPath)
			e.metrics.RecordOperationError(OpCopy, ErrorKind(err))
			return err
		}
	}
	e.clipboard.Set(items, clipboard.OperationCopy)
	return nil
}

// PasteItems applies the clipboard to dest. A cut moves each item under a
// collision-free name and clears the clipboard once every item is done. A
// copy duplicates each item as "Copy of X" and leaves the clipboard alone.
// The first failure stops the batch; results lists what was applied.
func (e *Engine) PasteItems(ctx context.Context, dest string) (results []PasteResult, err error) {
	entry := e.clipboard.Get()
	if len(entry.Items) == 0 {
		return nil, nil
	}
	dest = paths.Normalize(dest)

	timer := monitoring.NewTimer(e.metrics, OpPaste)
	touched := []string{dest}
	defer func() {
		e.finish(OpPaste, timer, err)
		if len(results) > 0 {
			e.changed(touched...)
		}
	}()

	if err := e.checkPasteTarget(ctx, dest); err != nil {
		return nil, err
	}

	for _, src := range paths.Outermost(entry.Items) {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		var res PasteResult
		if entry.Operation == clipboard.OperationCut {
			res, err = e.moveItem(ctx, src, dest)
		} else {
			res, err = e.copyItem(ctx, src, dest)
		}
		if err != nil {
			return results, fmt.Errorf("paste %s: %w", src, err)
		}
		results = append(results, res)
		if entry.Operation == clipboard.OperationCut && !res.Skipped {
			touched = append(touched, paths.Parent(src))
		}
	}

	if entry.Operation == clipboard.OperationCut {
		e.clipboard.Clear()
	}
	e.logger.Info("Pasted items",
		zap.String("operation", string(entry.Operation)),
		zap.String("destination", dest),
		zap.Int("count", len(results)))
	return results, nil
}

func (e *Engine) checkPasteTarget(ctx context.Context, dest string) error {
	if paths.IsRoot(dest) || e.isReserved(dest) || (e.recycle != nil && paths.IsWithin(dest, e.recycle.Root())) {
		return fmt.Errorf("paste into %s: %w", dest, ErrInvalidTarget)
	}
	info, err := e.fs.Stat(ctx, dest)
	if err != nil {
		return err
	}
	if !info.IsDir {
		return fmt.Errorf("paste into %s: not a folder: %w", dest, ErrInvalidTarget)
	}
	return nil
}

func (e *Engine) moveItem(ctx context.Context, src, dest string) (PasteResult, error) {
	if err := e.checkMutable(src); err != nil {
		return PasteResult{}, err
	}
	info, err := e.fs.Stat(ctx, src)
	if err != nil {
		return PasteResult{}, err
	}
	if paths.Parent(src) == dest {
		return PasteResult{Source: src, Target: src, Skipped: true}, nil
	}
	if info.IsDir && paths.IsWithin(dest, src) {
		return PasteResult{}, fmt.Errorf("move %s into itself: %w", src, ErrInvalidTarget)
	}

	name, err := e.itemName(ctx, src)
	if err != nil {
		return PasteResult{}, err
	}
	target, err := naming.MoveTarget(dest, name, info.IsDir, e.taken(ctx))
	if err != nil {
		return PasteResult{}, err
	}
	fallback, err := vfs.SafeMove(ctx, e.fs, src, target)
	if fallback {
		e.metrics.IncMoveFallbacks()
	}
	if err != nil {
		return PasteResult{}, err
	}

	// a recycled object cut out of the bin is no longer recycled
	if rid, ok := e.recycledObject(src); ok {
		if err := e.recycle.Forget(ctx, rid); err != nil && !errors.Is(err, recycle.ErrEntryNotFound) {
			e.logger.Warn("Failed to drop ledger row after move",
				zap.String("id", rid.String()),
				zap.Error(err))
		}
	}

	e.logger.Debug("Moved item",
		zap.String("from", src),
		zap.String("to", target),
		zap.Bool("fallback", fallback))
	return PasteResult{Source: src, Target: target, Fallback: fallback}, nil
}

func (e *Engine) copyItem(ctx context.Context, src, dest string) (PasteResult, error) {
	info, err := e.fs.Stat(ctx, src)
	if err != nil {
		return PasteResult{}, err
	}
	if info.IsDir && paths.IsWithin(dest, src) {
		return PasteResult{}, fmt.Errorf("copy %s into itself: %w", src, ErrInvalidTarget)
	}

	name, err := e.itemName(ctx, src)
	if err != nil {
		return PasteResult{}, err
	}
	target, err := naming.CopyTarget(dest, name, e.taken(ctx))
	if err != nil {
		return PasteResult{}, err
	}
	if err := vfs.CopyTree(ctx, e.fs, src, target); err != nil {
		return PasteResult{}, err
	}

	e.logger.Debug("Copied item",
		zap.String("from", src),
		zap.String("to", target))
	return PasteResult{Source: src, Target: target}, nil
}

// DeleteItems deletes items after confirmation. Items go to the recycle bin
// unless permanent is set, or any item already lies in the bin, in which
// case the whole batch is removed for good. deleted is false when the user
// declines.
func (e *Engine) DeleteItems(ctx context.Context, items []string, permanent bool) (deleted bool, err error) {
	if len(items) == 0 {
		return false, nil
	}

	normalized := paths.Outermost(items)
	for _, p := range normalized {
		if err := e.checkMutable(p); err != nil {
			e.metrics.RecordOperationError(OpDelete, ErrorKind(err))
			return false, err
		}
		if e.recycle == nil || e.recycle.IsRecycledPath(p) {
			permanent = true
		}
	}

	ok, err := e.prompter.Confirm(ctx, deletePrompt(normalized, permanent))
	if err != nil || !ok {
		return false, err
	}

	timer := monitoring.NewTimer(e.metrics, OpDelete)
	defer func() { e.finish(OpDelete, timer, err) }()

	if !permanent {
		_, err := e.recycle.MoveBatch(ctx, normalized)
		if err != nil {
			return true, err
		}
		e.logger.Info("Moved items to recycle bin", zap.Int("count", len(normalized)))
		return true, nil
	}

	var touched []string
	defer func() {
		if len(touched) > 0 {
			e.changed(touched...)
		}
	}()
	for _, p := range normalized {
		if err := ctx.Err(); err != nil {
			return true, err
		}
		if rid, ok := e.recycledObject(p); ok {
			if err := e.recycle.DeletePermanently(ctx, rid); err != nil {
				return true, err
			}
		} else if err := e.fs.Remove(ctx, p, true); err != nil {
			return true, err
		}
		touched = append(touched, paths.Parent(p))
	}
	e.logger.Info("Deleted items permanently", zap.Int("count", len(normalized)))
	return true, nil
}

func deletePrompt(items []string, permanent bool) string {
	subject := fmt.Sprintf("these %d items", len(items))
	if len(items) == 1 {
		subject = fmt.Sprintf("%q", paths.Base(items[0]))
	}
	if permanent {
		return fmt.Sprintf("Are you sure you want to permanently delete %s?", subject)
	}
	return fmt.Sprintf("Are you sure you want to move %s to the Recycle Bin?", subject)
}

// RenameItem asks for a new name and renames path. It returns the new
// path, or "" when the user cancels or keeps the name.
func (e *Engine) RenameItem(ctx context.Context, path string) (newPath string, err error) {
	if err := e.checkMutable(path); err != nil {
		e.metrics.RecordOperationError(OpRename, ErrorKind(err))
		return "", err
	}
	path = paths.Normalize(path)
	if _, ok := e.recycledObject(path); ok {
		err := fmt.Errorf("rename %s: %w", path, ErrProtectedPath)
		e.metrics.RecordOperationError(OpRename, ErrorKind(err))
		return "", err
	}
	if _, err := e.fs.Stat(ctx, path); err != nil {
		return "", err
	}

	oldName := paths.Base(path)
	name, ok, err := e.prompter.PromptName(ctx, "Rename", oldName)
	if err != nil || !ok || name == oldName {
		return "", err
	}

	timer := monitoring.NewTimer(e.metrics, OpRename)
	defer func() { e.finish(OpRename, timer, err) }()

	if err := ValidateName(name); err != nil {
		return "", err
	}
	newPath = paths.Join(paths.Parent(path), name)
	if err := e.ensureFree(ctx, OpRename, newPath); err != nil {
		return "", err
	}
	if err := e.fs.Rename(ctx, path, newPath); err != nil {
		return "", err
	}

	e.logger.Info("Renamed item",
		zap.String("from", path),
		zap.String("to", newPath))
	e.changed(paths.Parent(path))
	return newPath, nil
}

// CreateNewFolder creates a folder in the current folder.
func (e *Engine) CreateNewFolder(ctx context.Context) (string, error) {
	return e.CreateFolderIn(ctx, e.history.Current())
}

// CreateNewTextFile creates an empty text file in the current folder.
func (e *Engine) CreateNewTextFile(ctx context.Context) (string, error) {
	return e.CreateTextFileIn(ctx, e.history.Current())
}

// CreateFolderIn prompts for a name, suggesting "New folder" or the first
// free "New folder (N)", and creates the folder in dir. It returns "" when
// the user cancels.
func (e *Engine) CreateFolderIn(ctx context.Context, dir string) (string, error) {
	return e.create(ctx, OpMkdir, dir, naming.NewFolder, true, func(p string) error {
		return e.fs.Mkdir(ctx, p, false)
	})
}

// CreateTextFileIn prompts for a name and creates an empty file in dir.
func (e *Engine) CreateTextFileIn(ctx context.Context, dir string) (string, error) {
	return e.create(ctx, OpTouch, dir, naming.NewTextDocument, false, func(p string) error {
		return e.fs.WriteFile(ctx, p, []byte{})
	})
}

func (e *Engine) create(ctx context.Context, op, dir, defaultName string, isDir bool, build func(string) error) (target string, err error) {
	dir = paths.Normalize(dir)
	if e.recycle != nil && paths.IsWithin(dir, e.recycle.Root()) {
		err := fmt.Errorf("create in %s: %w", dir, ErrInvalidTarget)
		e.metrics.RecordOperationError(op, ErrorKind(err))
		return "", err
	}

	suggested, err := naming.Suggest(dir, defaultName, isDir, e.taken(ctx))
	if err != nil {
		return "", err
	}
	name, ok, err := e.prompter.PromptName(ctx, "Name", suggested)
	if err != nil || !ok {
		return "", err
	}

	timer := monitoring.NewTimer(e.metrics, op)
	defer func() { e.finish(op, timer, err) }()

	if err := ValidateName(name); err != nil {
		return "", err
	}
	target = paths.Join(dir, name)
	if err := e.ensureFree(ctx, op, target); err != nil {
		return "", err
	}
	if err := build(target); err != nil {
		return "", err
	}

	e.logger.Info("Created item", zap.String("op", op), zap.String("path", target))
	e.changed(dir)
	return target, nil
}

// ValidateName rejects names that cannot be a single path segment.
func ValidateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "", name == ".", name == "..":
		return fmt.Errorf("%q: %w", name, ErrInvalidName)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%q contains a path separator: %w", name, ErrInvalidName)
	}
	return nil
}

func (e *Engine) ensureFree(ctx context.Context, op, path string) error {
	exists, err := vfs.Exists(ctx, e.fs, path)
	if err != nil {
		return err
	}
	if exists {
		return vfs.NewError(op, path, vfs.KindAlreadyExists)
	}
	return nil
}

// checkMutable rejects paths that may never be cut, renamed or deleted.
func (e *Engine) checkMutable(path string) error {
	path = paths.Normalize(path)
	if paths.IsRoot(path) || paths.IsDrive(path) || e.isReserved(path) || e.holdsRecycleBin(path) {
		return fmt.Errorf("%s: %w", path, ErrProtectedPath)
	}
	return nil
}

// isReserved reports whether path is the recycle root or its ledger.
func (e *Engine) isReserved(path string) bool {
	if e.recycle == nil {
		return false
	}
	path = paths.Normalize(path)
	return path == e.recycle.Root() || path == e.recycle.LedgerPath()
}

// holdsRecycleBin reports whether removing path would take the recycle
// root with it.
func (e *Engine) holdsRecycleBin(path string) bool {
	return e.recycle != nil && paths.IsWithin(e.recycle.Root(), path)
}

// recycledObject returns the recycle id when path is a top-level object in
// the bin.
func (e *Engine) recycledObject(path string) (id.RecycleID, bool) {
	if e.recycle == nil {
		return "", false
	}
	path = paths.Normalize(path)
	if paths.Parent(path) != e.recycle.Root() {
		return "", false
	}
	return e.recycle.IDForPath(path)
}

// itemName is the name src goes by when pasted elsewhere. Recycled objects
// are stored under their id, so their name comes from the ledger.
func (e *Engine) itemName(ctx context.Context, src string) (string, error) {
	rid, ok := e.recycledObject(src)
	if !ok {
		return paths.Base(src), nil
	}
	entry, err := e.recycle.Get(ctx, rid)
	if err != nil {
		return "", err
	}
	return entry.Name, nil
}

func (e *Engine) taken(ctx context.Context) naming.Taken {
	return func(p string) (bool, error) {
		return vfs.Exists(ctx, e.fs, p)
	}
}

func (e *Engine) changed(dirs ...string) {
	seen := make(map[string]struct{}, len(dirs))
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	e.events.Publish(events.Event{Type: events.DirectoryChanged, Paths: out})
}

func (e *Engine) finish(op string, timer *monitoring.Timer, err error) {
	switch {
	case err == nil:
		timer.Stop(monitoring.StatusOK)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		timer.Stop(monitoring.StatusCancelled)
	default:
		timer.Stop(monitoring.StatusError)
		e.metrics.RecordOperationError(op, ErrorKind(err))
		e.logger.Warn("Operation failed", zap.String("op", op), zap.Error(err))
	}
}
