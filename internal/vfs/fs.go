// Package vfs defines the filesystem contract the explorer runs on and the
// backends that implement it.
//
// The contract is deliberately small (stat, readdir, mkdir, rename, remove,
// readFile, writeFile) and offers no overwrite protection or atomic
// cross-backend moves; the helpers in this package (Exists, CopyTree,
// SafeMove, Walk) build those guarantees on top of it.
//
// Backends:
//   - AferoFS: any afero.Fs (in-memory drives, host directories)
//   - MountTable: composes backends under drive mount points and reports
//     cross-mount renames as KindCrossDevice
package vfs

import (
	"context"
	"time"
)

// FileInfo describes one filesystem object.
type FileInfo struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	IsDir    bool      `json:"is_dir"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

// FileSystem is the storage contract consumed by the explorer. Paths are
// absolute and normalized. Implementations return *Error values.
type FileSystem interface {
	Stat(ctx context.Context, path string) (*FileInfo, error)
	// ReadDir returns the sorted names of the entries of a directory.
	ReadDir(ctx context.Context, path string) ([]string, error)
	Mkdir(ctx context.Context, path string, recursive bool) error
	// Rename fails with KindCrossDevice when the move cannot be done
	// atomically and with KindAlreadyExists when newPath is taken.
	Rename(ctx context.Context, oldPath, newPath string) error
	Remove(ctx context.Context, path string, recursive bool) error
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFile(ctx context.Context, path string, data []byte) error
}
