package vfs

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/GriffinCanCode/AgentOS/explorer/internal/shared/paths"
)

// Mount types.
const (
	MountMemory = "memory"
	MountOS     = "os"
)

// Mount binds a backend to a drive path.
type Mount struct {
	Path     string     `json:"path"`
	Type     string     `json:"type"`
	HostRoot string     `json:"host_root,omitempty"`
	FS       FileSystem `json:"-"`
}

// MountTable routes paths to the backend mounted at their drive and reports
// renames between two drives as KindCrossDevice. The root itself is
// synthetic: it lists the mount points and cannot be written to.
type MountTable struct {
	mu      sync.RWMutex
	mounts  map[string]*Mount
	created time.Time
}

// NewMountTable creates an empty mount table.
func NewMountTable() *MountTable {
	return &MountTable{
		mounts:  make(map[string]*Mount),
		created: time.Now(),
	}
}

// Mount attaches fsys at a drive path such as "/C".
func (t *MountTable) Mount(path, kind string, fsys FileSystem, hostRoot string) error {
	path = paths.Normalize(path)
	if !paths.IsDrive(path) {
		return fmt.Errorf("mount point %s must be a direct child of /", path)
	}
	if fsys == nil {
		return fmt.Errorf("mount point %s: nil filesystem", path)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.mounts[path]; exists {
		return fmt.Errorf("mount point %s already in use", path)
	}
	t.mounts[path] = &Mount{Path: path, Type: kind, HostRoot: hostRoot, FS: fsys}
	return nil
}

// Mounts returns the mounts sorted by path.
func (t *MountTable) Mounts() []Mount {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Mount, 0, len(t.mounts))
	for _, m := range t.mounts {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// resolve returns the mount serving path and the path inside that mount.
func (t *MountTable) resolve(op, path string) (*Mount, string, error) {
	segments := paths.Segments(path)
	if len(segments) == 0 {
		return nil, paths.Root, nil
	}

	t.mu.RLock()
	m, ok := t.mounts[paths.Root+segments[0]]
	t.mu.RUnlock()
	if !ok {
		return nil, "", NewError(op, paths.Normalize(path), KindNotFound)
	}
	return m, paths.Root + strings.Join(segments[1:], "/"), nil
}

func (t *MountTable) Stat(ctx context.Context, path string) (*FileInfo, error) {
	path = paths.Normalize(path)
	m, inner, err := t.resolve("stat", path)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return &FileInfo{Name: "", Path: paths.Root, IsDir: true, Modified: t.created}, nil
	}
	info, err := m.FS.Stat(ctx, inner)
	if err != nil {
		return nil, withOp("stat", path, err)
	}
	info.Path = path
	info.Name = paths.Base(path)
	return info, nil
}

func (t *MountTable) ReadDir(ctx context.Context, path string) ([]string, error) {
	path = paths.Normalize(path)
	m, inner, err := t.resolve("readdir", path)
	if err != nil {
		return nil, err
	}
	if m == nil {
		mounts := t.Mounts()
		names := make([]string, 0, len(mounts))
		for _, mt := range mounts {
			names = append(names, paths.Base(mt.Path))
		}
		return names, nil
	}
	names, err := m.FS.ReadDir(ctx, inner)
	if err != nil {
		return nil, withOp("readdir", path, err)
	}
	return names, nil
}

func (t *MountTable) Mkdir(ctx context.Context, path string, recursive bool) error {
	path = paths.Normalize(path)
	m, inner, err := t.resolve("mkdir", path)
	if err != nil {
		if paths.IsDrive(path) {
			return NewError("mkdir", path, KindPermission)
		}
		return err
	}
	if m == nil || inner == paths.Root {
		if recursive {
			return nil
		}
		return NewError("mkdir", path, KindAlreadyExists)
	}
	return withOp("mkdir", path, m.FS.Mkdir(ctx, inner, recursive))
}

func (t *MountTable) Rename(ctx context.Context, oldPath, newPath string) error {
	oldPath, newPath = paths.Normalize(oldPath), paths.Normalize(newPath)
	src, srcInner, err := t.resolve("rename", oldPath)
	if err != nil {
		return err
	}
	dst, dstInner, err := t.resolve("rename", newPath)
	if err != nil {
		return err
	}
	if src == nil || dst == nil || srcInner == paths.Root || dstInner == paths.Root {
		return NewError("rename", oldPath, KindPermission)
	}
	if src != dst {
		return NewError("rename", oldPath, KindCrossDevice)
	}
	return withOp("rename", oldPath, src.FS.Rename(ctx, srcInner, dstInner))
}

func (t *MountTable) Remove(ctx context.Context, path string, recursive bool) error {
	path = paths.Normalize(path)
	m, inner, err := t.resolve("remove", path)
	if err != nil {
		return err
	}
	if m == nil || inner == paths.Root {
		return NewError("remove", path, KindPermission)
	}
	return withOp("remove", path, m.FS.Remove(ctx, inner, recursive))
}

func (t *MountTable) ReadFile(ctx context.Context, path string) ([]byte, error) {
	path = paths.Normalize(path)
	m, inner, err := t.resolve("read", path)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, Errorf("read", path, "is a directory")
	}
	data, err := m.FS.ReadFile(ctx, inner)
	if err != nil {
		return nil, withOp("read", path, err)
	}
	return data, nil
}

func (t *MountTable) WriteFile(ctx context.Context, path string, data []byte) error {
	path = paths.Normalize(path)
	m, inner, err := t.resolve("write", path)
	if err != nil {
		return err
	}
	if m == nil || inner == paths.Root {
		return NewError("write", path, KindPermission)
	}
	return withOp("write", path, m.FS.WriteFile(ctx, inner, data))
}
