package paths

import "strings"

// Root is the top of the namespace.
const Root = "/"

const (
	// DefaultRecycleRoot is the reserved subtree holding recycled items.
	DefaultRecycleRoot = "/$Recycle.Bin"

	// LedgerName is the recycle ledger file inside the recycle root.
	LedgerName = "metadata.json"

	// DefaultRootLabel is the display name of the root.
	DefaultRootLabel = "This PC"
)

// Normalize collapses empty and "." segments, resolves ".." without ever
// climbing above the root and converts backslashes to slashes.
func Normalize(path string) string {
	segments := Segments(path)
	if len(segments) == 0 {
		return Root
	}
	return Root + strings.Join(segments, "/")
}

// Segments returns the normalized, non-empty components of path.
func Segments(path string) []string {
	path = strings.ReplaceAll(path, "\\", "/")
	out := make([]string, 0, strings.Count(path, "/")+1)
	for _, seg := range strings.Split(path, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		default:
			out = append(out, seg)
		}
	}
	return out
}

// IsRoot reports whether path normalizes to the root.
func IsRoot(path string) bool {
	return Normalize(path) == Root
}

// Join appends name to base. name is assumed to carry no separator.
func Join(base, name string) string {
	base = Normalize(base)
	if base == Root {
		return Root + name
	}
	return base + "/" + name
}

// Parent drops the last segment. The root is its own parent.
func Parent(path string) string {
	segments := Segments(path)
	if len(segments) <= 1 {
		return Root
	}
	return Root + strings.Join(segments[:len(segments)-1], "/")
}

// Base returns the last segment, or "" for the root.
func Base(path string) string {
	segments := Segments(path)
	if len(segments) == 0 {
		return ""
	}
	return segments[len(segments)-1]
}

// DisplayName returns the last segment, or rootLabel for the root.
func DisplayName(path, rootLabel string) string {
	if name := Base(path); name != "" {
		return name
	}
	return rootLabel
}

// IsDrive reports whether path is a direct child of the root. Drives are
// never cut, renamed or deleted.
func IsDrive(path string) bool {
	return len(Segments(path)) == 1
}

// IsWithin reports whether path equals ancestor or lies below it.
func IsWithin(path, ancestor string) bool {
	path, ancestor = Normalize(path), Normalize(ancestor)
	if ancestor == Root || path == ancestor {
		return true
	}
	return strings.HasPrefix(path, ancestor+"/")
}

// Outermost normalizes items and drops duplicates and every item that lies
// below another item, keeping first-seen order. Acting on a folder already
// acts on its contents.
func Outermost(items []string) []string {
	normalized := make([]string, 0, len(items))
	for _, p := range items {
		normalized = append(normalized, Normalize(p))
	}
	out := make([]string, 0, len(normalized))
	for i, p := range normalized {
		nested := false
		for j, q := range normalized {
			if i == j {
				continue
			}
			if (p != q && IsWithin(p, q)) || (p == q && j < i) {
				nested = true
				break
			}
		}
		if !nested {
			out = append(out, p)
		}
	}
	return out
}

// SplitExt splits a file name into stem and extension ("a.tar.gz" ->
// "a.tar", ".gz"). Dot files such as ".bashrc" have no extension.
func SplitExt(name string) (stem, ext string) {
	idx := strings.LastIndex(name, ".")
	if idx <= 0 {
		return name, ""
	}
	return name[:idx], name[idx:]
}
