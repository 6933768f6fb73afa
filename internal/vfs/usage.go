package vfs

import (
	"context"
	"io/fs"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"

	"github.com/GriffinCanCode/AgentOS/explorer/internal/shared/paths"
)

// Drive summarizes one mount for a "This PC" style view.
type Drive struct {
	Path      string `json:"path"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	UsedBytes int64  `json:"used_bytes"`
}

// Drives lists every mount with the bytes stored on it. Host-backed drives
// are measured with a parallel walk of the host directory, other drives by
// walking the contract.
func (t *MountTable) Drives(ctx context.Context) ([]Drive, error) {
	mounts := t.Mounts()
	drives := make([]Drive, 0, len(mounts))
	for _, m := range mounts {
		used, err := usage(ctx, m)
		if err != nil {
			return nil, err
		}
		drives = append(drives, Drive{
			Path:      m.Path,
			Name:      paths.Base(m.Path),
			Type:      m.Type,
			UsedBytes: used,
		})
	}
	return drives, nil
}

func usage(ctx context.Context, m Mount) (int64, error) {
	if m.Type == MountOS && m.HostRoot != "" {
		return hostUsage(ctx, m.HostRoot)
	}
	var total int64
	err := Walk(ctx, m.FS, paths.Root, func(_ string, info *FileInfo) error {
		if !info.IsDir {
			total += info.Size
		}
		return nil
	})
	return total, err
}

func hostUsage(ctx context.Context, root string) (int64, error) {
	var total atomic.Int64
	conf := fastwalk.Config{Follow: false}

	err := fastwalk.Walk(&conf, root, func(p string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil || d.IsDir() {
			return nil
		}
		if info, err := d.Info(); err == nil {
			total.Add(info.Size())
		}
		return nil
	})
	if err != nil {
		return 0, Classify("usage", root, err)
	}
	return total.Load(), nil
}
