package fileops

import (
	"context"
	"errors"
	"mime"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gabriel-vasile/mimetype"

	"github.com/GriffinCanCode/AgentOS/explorer/internal/domain/recycle"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/shared/paths"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/vfs"
)

// DirectoryMime is reported for folders.
const DirectoryMime = "inode/directory"

// DefaultSniffLimit caps the size of files whose content is sniffed for a
// MIME type. Larger files are typed by extension.
const DefaultSniffLimit = 1 << 20

// MaxSearchResults caps a single search.
const MaxSearchResults = 1000

// ErrBadPattern is returned for a malformed search glob.
var ErrBadPattern = doublestar.ErrBadPattern

// Entry is one row of a folder listing.
type Entry struct {
	Name     string         `json:"name"`
	Path     string         `json:"path"`
	IsDir    bool           `json:"is_dir"`
	Size     int64          `json:"size"`
	Modified time.Time      `json:"modified"`
	MimeType string         `json:"mime_type,omitempty"`
	Cut      bool           `json:"cut,omitempty"`
	Recycled *recycle.Entry `json:"recycled,omitempty"`
}

// List returns the entries of dir, folders first and then by name without
// regard to case. Files up to sniffLimit bytes are typed by content;
// sniffLimit <= 0 types every file by extension.
func List(ctx context.Context, fsys vfs.FileSystem, dir string, sniffLimit int64) ([]Entry, error) {
	dir = paths.Normalize(dir)
	names, err := fsys.ReadDir(ctx, dir)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := paths.Join(dir, name)
		info, err := fsys.Stat(ctx, p)
		if errors.Is(err, vfs.ErrNotFound) {
			// removed by another window since ReadDir
			continue
		}
		if err != nil {
			return nil, err
		}
		entry := fromInfo(info)
		entry.MimeType = detectMime(ctx, fsys, info, sniffLimit)
		entries = append(entries, entry)
	}

	sortEntries(entries)
	return entries, nil
}

// Search walks the tree under dir and returns entries whose path relative
// to dir matches pattern. A pattern without a separator is matched against
// the base name as well, so "*.txt" finds text files at any depth.
func Search(ctx context.Context, fsys vfs.FileSystem, dir, pattern string) ([]Entry, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, ErrBadPattern
	}
	dir = paths.Normalize(dir)
	byName := !strings.Contains(pattern, "/")

	var found []Entry
	err := vfs.Walk(ctx, fsys, dir, func(p string, info *vfs.FileInfo) error {
		rel := strings.TrimPrefix(strings.TrimPrefix(p, dir), "/")
		matched, _ := doublestar.Match(pattern, rel)
		if !matched && byName {
			matched, _ = doublestar.Match(pattern, info.Name)
		}
		if !matched {
			return nil
		}
		found = append(found, fromInfo(info))
		if len(found) >= MaxSearchResults {
			return errSearchFull
		}
		return nil
	})
	if err != nil && !errors.Is(err, errSearchFull) {
		return nil, err
	}
	return found, nil
}

var errSearchFull = errors.New("search result limit reached")

// List lists dir for this window: cut items are flagged, and in the
// recycle root objects carry their ledger row while the ledger file itself
// is hidden.
func (e *Engine) List(ctx context.Context, dir string, sniffLimit int64) ([]Entry, error) {
	dir = paths.Normalize(dir)
	entries, err := List(ctx, e.fs, dir, sniffLimit)
	if err != nil {
		return nil, err
	}

	inBin := e.recycle != nil && dir == e.recycle.Root()
	var rows map[string]recycle.Entry
	if inBin {
		items, err := e.recycle.GetMetadata(ctx)
		if err != nil {
			return nil, err
		}
		rows = make(map[string]recycle.Entry, len(items))
		for _, it := range items {
			rows[it.ID.String()] = it
		}
	}

	out := entries[:0]
	for _, entry := range entries {
		if inBin {
			if entry.Path == e.recycle.LedgerPath() {
				continue
			}
			if row, ok := rows[entry.Name]; ok {
				row := row
				entry.Recycled = &row
			}
		}
		entry.Cut = e.clipboard.IsCut(entry.Path)
		out = append(out, entry)
	}
	return out, nil
}

// Search searches under dir, leaving out the recycle bin unless dir is
// inside it.
func (e *Engine) Search(ctx context.Context, dir, pattern string) ([]Entry, error) {
	found, err := Search(ctx, e.fs, dir, pattern)
	if err != nil || e.recycle == nil || paths.IsWithin(dir, e.recycle.Root()) {
		return found, err
	}
	out := found[:0]
	for _, entry := range found {
		if !paths.IsWithin(entry.Path, e.recycle.Root()) {
			out = append(out, entry)
		}
	}
	return out, nil
}

func fromInfo(info *vfs.FileInfo) Entry {
	return Entry{
		Name:     info.Name,
		Path:     info.Path,
		IsDir:    info.IsDir,
		Size:     info.Size,
		Modified: info.Modified,
	}
}

func detectMime(ctx context.Context, fsys vfs.FileSystem, info *vfs.FileInfo, sniffLimit int64) string {
	if info.IsDir {
		return DirectoryMime
	}
	if sniffLimit > 0 && info.Size <= sniffLimit {
		if data, err := fsys.ReadFile(ctx, info.Path); err == nil {
			return mimetype.Detect(data).String()
		}
	}
	_, ext := paths.SplitExt(info.Name)
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}

func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		a, b := strings.ToLower(entries[i].Name), strings.ToLower(entries[j].Name)
		if a != b {
			return a < b
		}
		return entries[i].Name < entries[j].Name
	})
}
