package vfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/GriffinCanCode/AgentOS/explorer/internal/shared/paths"
)

// Exists reports whether path exists. NotFound is not an error; anything
// else is returned.
func Exists(ctx context.Context, fsys FileSystem, path string) (bool, error) {
	_, err := fsys.Stat(ctx, path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return false, err
}

// CopyTree copies src to dst. Directories are recreated and their children
// copied one at a time, depth first. dst must not exist.
func CopyTree(ctx context.Context, fsys FileSystem, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := fsys.Stat(ctx, src)
	if err != nil {
		return err
	}

	if !info.IsDir {
		data, err := fsys.ReadFile(ctx, src)
		if err != nil {
			return err
		}
		return fsys.WriteFile(ctx, dst, data)
	}

	if err := fsys.Mkdir(ctx, dst, false); err != nil {
		return err
	}
	names, err := fsys.ReadDir(ctx, src)
	if err != nil {
		return err
	}
	for _, name := range names {
		if err := CopyTree(ctx, fsys, paths.Join(src, name), paths.Join(dst, name)); err != nil {
			return err
		}
	}
	return nil
}

// SafeMove moves src to dst with an atomic rename, falling back to
// copy-then-delete when the backend reports a cross-device move. The
// returned bool is true when the fallback ran. A failed fallback copy is
// cleaned up so dst is left absent. When the copy succeeds but src cannot
// be removed, dst is complete and the error matches ErrSourceRemains.
func SafeMove(ctx context.Context, fsys FileSystem, src, dst string) (bool, error) {
	err := fsys.Rename(ctx, src, dst)
	if err == nil || KindOf(err) != KindCrossDevice {
		return false, err
	}

	if err := CopyTree(ctx, fsys, src, dst); err != nil {
		if exists, _ := Exists(context.WithoutCancel(ctx), fsys, dst); exists {
			_ = fsys.Remove(context.WithoutCancel(ctx), dst, true)
		}
		return true, fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}
	if err := fsys.Remove(ctx, src, true); err != nil {
		return true, fmt.Errorf("remove %s after copy: %w: %w", src, ErrSourceRemains, err)
	}
	return true, nil
}

// WalkFunc is called for every object below the walk root.
type WalkFunc func(path string, info *FileInfo) error

// Walk visits the tree under root sequentially in lexical order, not
// including root itself.
func Walk(ctx context.Context, fsys FileSystem, root string, fn WalkFunc) error {
	names, err := fsys.ReadDir(ctx, root)
	if err != nil {
		return err
	}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		p := paths.Join(root, name)
		info, err := fsys.Stat(ctx, p)
		if err != nil {
			return err
		}
		if err := fn(p, info); err != nil {
			return err
		}
		if info.IsDir {
			if err := Walk(ctx, fsys, p, fn); err != nil {
				return err
			}
		}
	}
	return nil
}
