package vfs

import (
	"context"
	"os"

	"github.com/spf13/afero"

	"github.com/GriffinCanCode/AgentOS/explorer/internal/shared/paths"
)

const (
	dirPerm  os.FileMode = 0o755
	filePerm os.FileMode = 0o644
)

// AferoFS implements FileSystem on top of an afero.Fs.
//
// afero backends differ in how forgiving they are (MemMapFs creates missing
// parents, OsFs overwrites rename targets on most platforms), so AferoFS
// checks parents and targets itself to give every backend the same
// semantics.
type AferoFS struct {
	fs afero.Fs
}

// NewAferoFS wraps an afero filesystem.
func NewAferoFS(fs afero.Fs) *AferoFS {
	return &AferoFS{fs: fs}
}

// NewMemoryFS returns an empty in-memory filesystem.
func NewMemoryFS() *AferoFS {
	return NewAferoFS(afero.NewMemMapFs())
}

// NewHostFS exposes a host directory as a filesystem rooted at root.
func NewHostFS(root string) *AferoFS {
	return NewAferoFS(afero.NewBasePathFs(afero.NewOsFs(), root))
}

// Afero returns the underlying afero filesystem.
func (a *AferoFS) Afero() afero.Fs {
	return a.fs
}

func (a *AferoFS) Stat(ctx context.Context, path string) (*FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path = paths.Normalize(path)
	info, err := a.fs.Stat(path)
	if err != nil {
		return nil, Classify("stat", path, err)
	}
	return &FileInfo{
		Name:     paths.Base(path),
		Path:     path,
		IsDir:    info.IsDir(),
		Size:     info.Size(),
		Modified: info.ModTime(),
	}, nil
}

func (a *AferoFS) ReadDir(ctx context.Context, path string) ([]string, error) {
	info, err := a.Stat(ctx, path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir {
		return nil, Errorf("readdir", info.Path, "not a directory")
	}
	infos, err := afero.ReadDir(a.fs, info.Path)
	if err != nil {
		return nil, Classify("readdir", info.Path, err)
	}
	names := make([]string, 0, len(infos))
	for _, fi := range infos {
		names = append(names, fi.Name())
	}
	return names, nil
}

func (a *AferoFS) Mkdir(ctx context.Context, path string, recursive bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path = paths.Normalize(path)
	if recursive {
		if info, err := a.fs.Stat(path); err == nil {
			if info.IsDir() {
				return nil
			}
			return NewError("mkdir", path, KindAlreadyExists)
		}
		return Classify("mkdir", path, a.fs.MkdirAll(path, dirPerm))
	}
	if err := a.requireDir(ctx, "mkdir", paths.Parent(path)); err != nil {
		return err
	}
	if _, err := a.fs.Stat(path); err == nil {
		return NewError("mkdir", path, KindAlreadyExists)
	}
	return Classify("mkdir", path, a.fs.Mkdir(path, dirPerm))
}

func (a *AferoFS) Rename(ctx context.Context, oldPath, newPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	oldPath, newPath = paths.Normalize(oldPath), paths.Normalize(newPath)
	if _, err := a.fs.Stat(oldPath); err != nil {
		return Classify("rename", oldPath, err)
	}
	if _, err := a.fs.Stat(newPath); err == nil {
		return NewError("rename", newPath, KindAlreadyExists)
	}
	if err := a.requireDir(ctx, "rename", paths.Parent(newPath)); err != nil {
		return err
	}
	return Classify("rename", oldPath, a.fs.Rename(oldPath, newPath))
}

func (a *AferoFS) Remove(ctx context.Context, path string, recursive bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path = paths.Normalize(path)
	if path == paths.Root {
		return NewError("remove", path, KindPermission)
	}
	if _, err := a.fs.Stat(path); err != nil {
		return Classify("remove", path, err)
	}
	if recursive {
		return Classify("remove", path, a.fs.RemoveAll(path))
	}
	return Classify("remove", path, a.fs.Remove(path))
}

func (a *AferoFS) ReadFile(ctx context.Context, path string) ([]byte, error) {
	info, err := a.Stat(ctx, path)
	if err != nil {
		return nil, err
	}
	if info.IsDir {
		return nil, Errorf("read", info.Path, "is a directory")
	}
	data, err := afero.ReadFile(a.fs, info.Path)
	if err != nil {
		return nil, Classify("read", info.Path, err)
	}
	return data, nil
}

func (a *AferoFS) WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path = paths.Normalize(path)
	if err := a.requireDir(ctx, "write", paths.Parent(path)); err != nil {
		return err
	}
	if info, err := a.fs.Stat(path); err == nil && info.IsDir() {
		return Errorf("write", path, "is a directory")
	}
	return Classify("write", path, afero.WriteFile(a.fs, path, data, filePerm))
}

func (a *AferoFS) requireDir(ctx context.Context, op, dir string) error {
	info, err := a.Stat(ctx, dir)
	if err != nil {
		return withOp(op, dir, err)
	}
	if !info.IsDir {
		return Errorf(op, dir, "not a directory")
	}
	return nil
}
