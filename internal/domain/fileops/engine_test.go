package fileops

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AgentOS/explorer/internal/domain/clipboard"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/domain/events"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/domain/navigation"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/domain/recycle"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/vfs"
)

type mockPrompter struct {
	mock.Mock
}

func (m *mockPrompter) Confirm(ctx context.Context, message string) (bool, error) {
	args := m.Called(ctx, message)
	return args.Bool(0), args.Error(1)
}

func (m *mockPrompter) PromptName(ctx context.Context, title, suggested string) (string, bool, error) {
	args := m.Called(ctx, title, suggested)
	return args.String(0), args.Bool(1), args.Error(2)
}

type recorder struct {
	got []events.Event
}

func (r *recorder) Publish(e events.Event) { r.got = append(r.got, e) }

func (r *recorder) last(t events.Type) (events.Event, bool) {
	for i := len(r.got) - 1; i >= 0; i-- {
		if r.got[i].Type == t {
			return r.got[i], true
		}
	}
	return events.Event{}, false
}

type fixture struct {
	ctx     context.Context
	fs      *vfs.MountTable
	engine  *Engine
	bin     *recycle.Manager
	events  *recorder
	metrics *monitoring.Metrics
}

// newFixture mounts /C and /D as separate drives with the recycle bin on
// its own drive.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	table := vfs.NewMountTable()
	for _, drive := range []string{"/C", "/D", "/$Recycle.Bin"} {
		require.NoError(t, table.Mount(drive, vfs.MountMemory, vfs.NewMemoryFS(), ""))
	}

	f := &fixture{
		ctx:     context.Background(),
		fs:      table,
		events:  &recorder{},
		metrics: monitoring.NewMetrics(),
	}
	f.bin = recycle.NewManager(recycle.Options{FS: table, Events: f.events, Metrics: f.metrics})
	require.NoError(t, f.bin.Init(f.ctx))

	f.engine = NewEngine(Options{
		FS:        table,
		Clipboard: clipboard.New(f.events),
		History:   navigation.New(0),
		Recycle:   f.bin,
		Prompter:  Answers{Confirmed: true},
		Events:    f.events,
		Metrics:   f.metrics,
	})
	return f
}

func (f *fixture) write(t *testing.T, path, content string) {
	t.Helper()
	dir := path[:len(path)-len(lastSegment(path))-1]
	require.NoError(t, f.fs.Mkdir(f.ctx, dir, true))
	require.NoError(t, f.fs.WriteFile(f.ctx, path, []byte(content)))
}

func (f *fixture) mkdir(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, f.fs.Mkdir(f.ctx, path, true))
}

func (f *fixture) read(t *testing.T, path string) string {
	t.Helper()
	data, err := f.fs.ReadFile(f.ctx, path)
	require.NoError(t, err)
	return string(data)
}

func (f *fixture) exists(t *testing.T, path string) bool {
	t.Helper()
	ok, err := vfs.Exists(f.ctx, f.fs, path)
	require.NoError(t, err)
	return ok
}

func lastSegment(p string) string {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] == '/' {
			return p[i+1:]
		}
	}
	return p
}

func TestCutCopyEmptyIsNoop(t *testing.T) {
	f := newFixture(t)
	f.engine.Clipboard().Set([]string{"/C/a"}, clipboard.OperationCopy)

	require.NoError(t, f.engine.CutItems(nil))
	require.NoError(t, f.engine.CopyItems([]string{}))
	assert.Equal(t, []string{"/C/a"}, f.engine.Clipboard().Get().Items)
}

func TestProtectedPaths(t *testing.T) {
	f := newFixture(t)

	for _, p := range []string{"/", "/C", "/$Recycle.Bin", "/$Recycle.Bin/metadata.json"} {
		assert.ErrorIs(t, f.engine.CutItems([]string{p}), ErrProtectedPath, p)

		_, err := f.engine.DeleteItems(f.ctx, []string{p}, true)
		assert.ErrorIs(t, err, ErrProtectedPath, p)

		_, err = f.engine.RenameItem(f.ctx, p)
		assert.ErrorIs(t, err, ErrProtectedPath, p)
	}

	assert.ErrorIs(t, f.engine.CopyItems([]string{"/"}), ErrProtectedPath)
	assert.NoError(t, f.engine.CopyItems([]string{"/C"}))
}

func TestFoldersHoldingRecycleBinAreProtected(t *testing.T) {
	ctx := context.Background()
	table := vfs.NewMountTable()
	require.NoError(t, table.Mount("/C", vfs.MountMemory, vfs.NewMemoryFS(), ""))
	bin := recycle.NewManager(recycle.Options{FS: table, Root: "/C/x/bin"})
	require.NoError(t, bin.Init(ctx))
	require.NoError(t, table.WriteFile(ctx, "/C/x/notes.txt", []byte("n")))
	engine := NewEngine(Options{FS: table, Recycle: bin, Prompter: Answers{Confirmed: true, Name: "y"}})

	for _, permanent := range []bool{true, false} {
		deleted, err := engine.DeleteItems(ctx, []string{"/C/x"}, permanent)
		assert.ErrorIs(t, err, ErrProtectedPath)
		assert.False(t, deleted)
	}
	assert.ErrorIs(t, engine.CutItems([]string{"/C/x"}), ErrProtectedPath)
	_, err := engine.RenameItem(ctx, "/C/x")
	assert.ErrorIs(t, err, ErrProtectedPath)

	_, err = bin.MoveToRecycleBin(ctx, "/C/x")
	assert.ErrorIs(t, err, vfs.ErrPermission)

	deleted, err := engine.DeleteItems(ctx, []string{"/C/x/notes.txt"}, false)
	require.NoError(t, err)
	assert.True(t, deleted)
	empty, err := bin.IsEmpty(ctx)
	require.NoError(t, err)
	assert.False(t, empty)
}

func TestCopyPasteNamingNeverOverwrites(t *testing.T) {
	f := newFixture(t)
	f.write(t, "/C/docs/x.txt", "x")

	require.NoError(t, f.engine.CopyItems([]string{"/C/docs/x.txt"}))

	first, err := f.engine.PasteItems(f.ctx, "/C/docs")
	require.NoError(t, err)
	second, err := f.engine.PasteItems(f.ctx, "/C/docs")
	require.NoError(t, err)

	assert.Equal(t, "/C/docs/Copy of x.txt", first[0].Target)
	assert.Equal(t, "/C/docs/Copy (2) of x.txt", second[0].Target)
	assert.Equal(t, "x", f.read(t, "/C/docs/x.txt"))
	assert.Equal(t, "x", f.read(t, second[0].Target))

	// copy leaves the clipboard intact
	assert.Equal(t, clipboard.OperationCopy, f.engine.Clipboard().Get().Operation)
}

func TestCopyOfCopy(t *testing.T) {
	f := newFixture(t)
	f.write(t, "/C/docs/Copy of x.txt", "x")

	require.NoError(t, f.engine.CopyItems([]string{"/C/docs/Copy of x.txt"}))
	res, err := f.engine.PasteItems(f.ctx, "/C/docs")
	require.NoError(t, err)
	assert.Equal(t, "/C/docs/Copy (2) of x.txt", res[0].Target)
}

func TestCopyNestedFolder(t *testing.T) {
	f := newFixture(t)
	f.write(t, "/C/src/outer/inner/file.bin", "\x00\x01\x02")
	f.mkdir(t, "/D/dest")

	require.NoError(t, f.engine.CopyItems([]string{"/C/src/outer"}))
	res, err := f.engine.PasteItems(f.ctx, "/D/dest")
	require.NoError(t, err)
	require.Len(t, res, 1)

	assert.Equal(t, "/D/dest/Copy of outer", res[0].Target)
	assert.Equal(t, "\x00\x01\x02", f.read(t, "/D/dest/Copy of outer/inner/file.bin"))
	assert.True(t, f.exists(t, "/C/src/outer/inner/file.bin"))
}

func TestCutPasteRoundTrip(t *testing.T) {
	f := newFixture(t)
	f.write(t, "/C/docs/a.txt", "payload")
	f.mkdir(t, "/C/archive")

	require.NoError(t, f.engine.CutItems([]string{"/C/docs/a.txt"}))
	res, err := f.engine.PasteItems(f.ctx, "/C/archive")
	require.NoError(t, err)
	assert.Equal(t, "/C/archive/a.txt", res[0].Target)
	assert.False(t, res[0].Fallback)
	assert.True(t, f.engine.Clipboard().IsEmpty())
	assert.False(t, f.exists(t, "/C/docs/a.txt"))

	require.NoError(t, f.engine.CutItems([]string{"/C/archive/a.txt"}))
	_, err = f.engine.PasteItems(f.ctx, "/C/docs")
	require.NoError(t, err)
	assert.Equal(t, "payload", f.read(t, "/C/docs/a.txt"))
}

func TestCutIntoOccupiedFolder(t *testing.T) {
	f := newFixture(t)
	f.write(t, "/C/docs/a.txt", "moved")
	f.write(t, "/C/archive/a.txt", "original")

	require.NoError(t, f.engine.CutItems([]string{"/C/docs/a.txt"}))
	res, err := f.engine.PasteItems(f.ctx, "/C/archive")
	require.NoError(t, err)

	assert.Equal(t, "/C/archive/a (1).txt", res[0].Target)
	assert.Equal(t, "original", f.read(t, "/C/archive/a.txt"))
	assert.Equal(t, "moved", f.read(t, "/C/archive/a (1).txt"))
}

func TestCutAcrossDrivesFallsBack(t *testing.T) {
	f := newFixture(t)
	f.write(t, "/C/big/part.txt", "data")
	f.mkdir(t, "/D/target")

	require.NoError(t, f.engine.CutItems([]string{"/C/big"}))
	res, err := f.engine.PasteItems(f.ctx, "/D/target")
	require.NoError(t, err)

	assert.True(t, res[0].Fallback)
	assert.Equal(t, "data", f.read(t, "/D/target/big/part.txt"))
	assert.False(t, f.exists(t, "/C/big"))
}

func TestCutIntoSameFolderIsSkipped(t *testing.T) {
	f := newFixture(t)
	f.write(t, "/C/docs/a.txt", "a")

	require.NoError(t, f.engine.CutItems([]string{"/C/docs/a.txt"}))
	res, err := f.engine.PasteItems(f.ctx, "/C/docs")
	require.NoError(t, err)
	assert.True(t, res[0].Skipped)
	assert.Equal(t, "a", f.read(t, "/C/docs/a.txt"))
	assert.False(t, f.exists(t, "/C/docs/a (1).txt"))
}

func TestPasteIntoOwnSubtree(t *testing.T) {
	f := newFixture(t)
	f.mkdir(t, "/C/a/b")

	require.NoError(t, f.engine.CutItems([]string{"/C/a"}))
	_, err := f.engine.PasteItems(f.ctx, "/C/a/b")
	assert.ErrorIs(t, err, ErrInvalidTarget)

	require.NoError(t, f.engine.CopyItems([]string{"/C/a"}))
	_, err = f.engine.PasteItems(f.ctx, "/C/a")
	assert.ErrorIs(t, err, ErrInvalidTarget)
}

func TestPasteTargetValidation(t *testing.T) {
	f := newFixture(t)
	f.write(t, "/C/a.txt", "a")
	require.NoError(t, f.engine.CopyItems([]string{"/C/a.txt"}))

	for _, dest := range []string{"/", "/$Recycle.Bin", "/C/a.txt"} {
		_, err := f.engine.PasteItems(f.ctx, dest)
		assert.ErrorIs(t, err, ErrInvalidTarget, dest)
	}
	_, err := f.engine.PasteItems(f.ctx, "/C/missing")
	assert.ErrorIs(t, err, vfs.ErrNotFound)
}

func TestPasteEmptyClipboard(t *testing.T) {
	f := newFixture(t)
	res, err := f.engine.PasteItems(f.ctx, "/C")
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestPasteStopsAtFirstError(t *testing.T) {
	f := newFixture(t)
	f.write(t, "/C/src/a", "a")
	f.write(t, "/C/src/c", "c")
	f.mkdir(t, "/C/dst")

	require.NoError(t, f.engine.CutItems([]string{"/C/src/a", "/C/src/missing", "/C/src/c"}))
	res, err := f.engine.PasteItems(f.ctx, "/C/dst")
	require.Error(t, err)
	require.Len(t, res, 1)
	assert.True(t, f.exists(t, "/C/dst/a"))
	assert.True(t, f.exists(t, "/C/src/c"))

	// the clipboard is only cleared after a complete cut batch
	assert.False(t, f.engine.Clipboard().IsEmpty())
}

func TestPasteHonoursCancellation(t *testing.T) {
	f := newFixture(t)
	f.write(t, "/C/a", "a")
	require.NoError(t, f.engine.CopyItems([]string{"/C/a"}))

	ctx, cancel := context.WithCancel(f.ctx)
	cancel()
	_, err := f.engine.PasteItems(ctx, "/C")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPastePublishesDirectoryChanged(t *testing.T) {
	f := newFixture(t)
	f.write(t, "/C/docs/a.txt", "a")
	f.mkdir(t, "/C/archive")

	require.NoError(t, f.engine.CutItems([]string{"/C/docs/a.txt"}))
	_, err := f.engine.PasteItems(f.ctx, "/C/archive")
	require.NoError(t, err)

	e, ok := f.events.last(events.DirectoryChanged)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"/C/archive", "/C/docs"}, e.Paths)

	cleared, ok := f.events.last(events.ClipboardChanged)
	require.True(t, ok)
	assert.Empty(t, cleared.Paths)
}

func TestDeleteDeclined(t *testing.T) {
	f := newFixture(t)
	f.write(t, "/C/a.txt", "a")
	p := &mockPrompter{}
	p.On("Confirm", mock.Anything, `Are you sure you want to move "a.txt" to the Recycle Bin?`).Return(false, nil)

	deleted, err := f.engine.WithPrompter(p).DeleteItems(f.ctx, []string{"/C/a.txt"}, false)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.True(t, f.exists(t, "/C/a.txt"))
	p.AssertExpectations(t)
}

func TestDeleteToRecycleBin(t *testing.T) {
	f := newFixture(t)
	f.write(t, "/C/a.txt", "a")
	f.write(t, "/C/b.txt", "b")

	deleted, err := f.engine.DeleteItems(f.ctx, []string{"/C/a.txt", "/C/b.txt"}, false)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.False(t, f.exists(t, "/C/a.txt"))

	items, err := f.bin.GetMetadata(f.ctx)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestDeletePermanent(t *testing.T) {
	f := newFixture(t)
	f.write(t, "/C/dir/a.txt", "a")
	p := &mockPrompter{}
	p.On("Confirm", mock.Anything, `Are you sure you want to permanently delete "dir"?`).Return(true, nil)

	deleted, err := f.engine.WithPrompter(p).DeleteItems(f.ctx, []string{"/C/dir"}, true)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.False(t, f.exists(t, "/C/dir"))

	empty, err := f.bin.IsEmpty(f.ctx)
	require.NoError(t, err)
	assert.True(t, empty)
}

func TestDeleteRecycledItemIsAlwaysPermanent(t *testing.T) {
	f := newFixture(t)
	f.write(t, "/C/a.txt", "a")
	entry, err := f.bin.MoveToRecycleBin(f.ctx, "/C/a.txt")
	require.NoError(t, err)
	obj := f.bin.Root() + "/" + entry.ID.String()

	p := &mockPrompter{}
	p.On("Confirm", mock.Anything, mock.MatchedBy(func(msg string) bool {
		return msg == `Are you sure you want to permanently delete "`+entry.ID.String()+`"?`
	})).Return(true, nil)

	deleted, err := f.engine.WithPrompter(p).DeleteItems(f.ctx, []string{obj}, false)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.False(t, f.exists(t, obj))

	_, err = f.bin.Get(f.ctx, entry.ID)
	assert.ErrorIs(t, err, recycle.ErrEntryNotFound)
	p.AssertExpectations(t)
}

func TestDeleteWithoutRecycleBinIsPermanent(t *testing.T) {
	f := newFixture(t)
	f.write(t, "/C/a.txt", "a")
	engine := NewEngine(Options{FS: f.fs, Prompter: Answers{Confirmed: true}})

	deleted, err := engine.DeleteItems(f.ctx, []string{"/C/a.txt"}, false)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.False(t, f.exists(t, "/C/a.txt"))
}

func TestCutOutOfRecycleBinDropsLedgerRow(t *testing.T) {
	f := newFixture(t)
	f.write(t, "/C/a.txt", "a")
	entry, err := f.bin.MoveToRecycleBin(f.ctx, "/C/a.txt")
	require.NoError(t, err)

	require.NoError(t, f.engine.CutItems([]string{f.bin.Root() + "/" + entry.ID.String()}))
	res, err := f.engine.PasteItems(f.ctx, "/D")
	require.NoError(t, err)
	assert.Equal(t, "/D/a.txt", res[0].Target)
	assert.Equal(t, "a", f.read(t, "/D/a.txt"))

	empty, err := f.bin.IsEmpty(f.ctx)
	require.NoError(t, err)
	assert.True(t, empty)
}

func TestPasteOutOfRecycleBinUsesOriginalName(t *testing.T) {
	f := newFixture(t)
	f.write(t, "/C/report.txt", "q3")
	f.write(t, "/D/report.txt", "other")
	entry, err := f.bin.MoveToRecycleBin(f.ctx, "/C/report.txt")
	require.NoError(t, err)
	object := f.bin.Root() + "/" + entry.ID.String()

	require.NoError(t, f.engine.CopyItems([]string{object}))
	res, err := f.engine.PasteItems(f.ctx, "/D")
	require.NoError(t, err)
	assert.Equal(t, "/D/Copy of report.txt", res[0].Target)

	require.NoError(t, f.engine.CutItems([]string{object}))
	res, err = f.engine.PasteItems(f.ctx, "/D")
	require.NoError(t, err)
	assert.Equal(t, "/D/report (1).txt", res[0].Target)
	assert.Equal(t, "q3", f.read(t, "/D/report (1).txt"))
}

func TestNestedSelectionActsOnOutermostFolder(t *testing.T) {
	f := newFixture(t)
	f.write(t, "/C/dir/a.txt", "a")
	f.write(t, "/C/other/b.txt", "b")

	deleted, err := f.engine.DeleteItems(f.ctx, []string{"/C/dir/a.txt", "/C/dir"}, false)
	require.NoError(t, err)
	assert.True(t, deleted)
	items, err := f.bin.GetMetadata(f.ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "/C/dir", items[0].OriginalPath)

	deleted, err = f.engine.DeleteItems(f.ctx, []string{"/C/other", "/C/other/b.txt"}, true)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.False(t, f.exists(t, "/C/other"))

	f.write(t, "/C/move/c.txt", "c")
	require.NoError(t, f.engine.CutItems([]string{"/C/move", "/C/move/c.txt"}))
	res, err := f.engine.PasteItems(f.ctx, "/D")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "c", f.read(t, "/D/move/c.txt"))
}

func TestRenameItem(t *testing.T) {
	f := newFixture(t)
	f.write(t, "/C/old.txt", "a")

	p := &mockPrompter{}
	p.On("PromptName", mock.Anything, "Rename", "old.txt").Return("new.txt", true, nil)

	newPath, err := f.engine.WithPrompter(p).RenameItem(f.ctx, "/C/old.txt")
	require.NoError(t, err)
	assert.Equal(t, "/C/new.txt", newPath)
	assert.Equal(t, "a", f.read(t, "/C/new.txt"))
	assert.False(t, f.exists(t, "/C/old.txt"))
	p.AssertExpectations(t)
}

func TestRenameNoops(t *testing.T) {
	f := newFixture(t)
	f.write(t, "/C/a.txt", "a")

	newPath, err := f.engine.WithPrompter(Answers{Cancel: true}).RenameItem(f.ctx, "/C/a.txt")
	require.NoError(t, err)
	assert.Empty(t, newPath)

	newPath, err = f.engine.WithPrompter(Answers{Name: "a.txt"}).RenameItem(f.ctx, "/C/a.txt")
	require.NoError(t, err)
	assert.Empty(t, newPath)
	assert.True(t, f.exists(t, "/C/a.txt"))
}

func TestRenameRejects(t *testing.T) {
	f := newFixture(t)
	f.write(t, "/C/a.txt", "a")
	f.write(t, "/C/b.txt", "b")

	for _, name := range []string{"", "   ", ".", "..", "x/y", `x\y`} {
		_, err := f.engine.WithPrompter(Answers{Name: name}).RenameItem(f.ctx, "/C/a.txt")
		if name == "" {
			// empty answer keeps the suggestion, i.e. the old name
			assert.NoError(t, err)
			continue
		}
		assert.ErrorIs(t, err, ErrInvalidName, name)
	}

	_, err := f.engine.WithPrompter(Answers{Name: "b.txt"}).RenameItem(f.ctx, "/C/a.txt")
	assert.ErrorIs(t, err, vfs.ErrAlreadyExists)
	assert.Equal(t, "b", f.read(t, "/C/b.txt"))

	_, err = f.engine.WithPrompter(Answers{Name: "z"}).RenameItem(f.ctx, "/C/missing")
	assert.ErrorIs(t, err, vfs.ErrNotFound)
}

func TestCreateNewFolderSuggestions(t *testing.T) {
	f := newFixture(t)
	f.mkdir(t, "/C/work")
	f.engine.History().Push("/C/work")

	p := &mockPrompter{}
	p.On("PromptName", mock.Anything, "Name", "New folder").Return("New folder", true, nil).Once()
	p.On("PromptName", mock.Anything, "Name", "New folder (2)").Return("New folder (2)", true, nil).Once()
	engine := f.engine.WithPrompter(p)

	first, err := engine.CreateNewFolder(f.ctx)
	require.NoError(t, err)
	second, err := engine.CreateNewFolder(f.ctx)
	require.NoError(t, err)

	assert.Equal(t, "/C/work/New folder", first)
	assert.Equal(t, "/C/work/New folder (2)", second)
	p.AssertExpectations(t)
}

func TestCreateNewTextFile(t *testing.T) {
	f := newFixture(t)
	f.engine.History().Push("/C")

	p, err := f.engine.CreateNewTextFile(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, "/C/New Text Document.txt", p)
	assert.Equal(t, "", f.read(t, p))

	p, err = f.engine.CreateNewTextFile(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, "/C/New Text Document (2).txt", p)

	_, err = f.engine.WithPrompter(Answers{Name: "New Text Document.txt"}).CreateNewTextFile(f.ctx)
	assert.ErrorIs(t, err, vfs.ErrAlreadyExists)
}

func TestCreateCancelled(t *testing.T) {
	f := newFixture(t)
	p, err := f.engine.WithPrompter(Answers{Cancel: true}).CreateFolderIn(f.ctx, "/C")
	require.NoError(t, err)
	assert.Empty(t, p)

	names, err := f.fs.ReadDir(f.ctx, "/C")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestCreateInRecycleBinRejected(t *testing.T) {
	f := newFixture(t)
	_, err := f.engine.CreateFolderIn(f.ctx, "/$Recycle.Bin")
	assert.ErrorIs(t, err, ErrInvalidTarget)
}

func TestErrorKind(t *testing.T) {
	assert.Equal(t, "", ErrorKind(nil))
	assert.Equal(t, "protected", ErrorKind(ErrProtectedPath))
	assert.Equal(t, "not_found", ErrorKind(vfs.NewError("stat", "/x", vfs.KindNotFound)))
	assert.Equal(t, "cancelled", ErrorKind(context.Canceled))
}
