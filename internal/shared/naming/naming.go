// Package naming picks collision-free names for pasted, restored and newly
// created items. Nothing here touches a filesystem; callers pass a Taken
// predicate that answers whether a candidate path is occupied.
package naming

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/GriffinCanCode/AgentOS/explorer/internal/shared/paths"
)

// MaxAttempts bounds every search for a free name.
const MaxAttempts = 10000

// Default names offered when creating items.
const (
	NewFolder       = "New folder"
	NewTextDocument = "New Text Document.txt"
)

// Taken reports whether a candidate path is already occupied.
type Taken func(path string) (bool, error)

// ErrExhausted is returned when no free name was found within MaxAttempts.
var ErrExhausted = fmt.Errorf("no free name within %d attempts", MaxAttempts)

var copyPattern = regexp.MustCompile(`^Copy(?: \((\d+)\))? of (.+)$`)

// Numbered inserts " (n)" before the extension of a file name, or at the end
// of a directory name. n <= 0 returns name unchanged.
func Numbered(name string, n int, isDir bool) string {
	if n <= 0 {
		return name
	}
	stem, ext := name, ""
	if !isDir {
		stem, ext = paths.SplitExt(name)
	}
	return fmt.Sprintf("%s (%d)%s", stem, n, ext)
}

// CopyName returns "Copy of base" for n <= 1 and "Copy (n) of base" above.
func CopyName(base string, n int) string {
	if n <= 1 {
		return "Copy of " + base
	}
	return fmt.Sprintf("Copy (%d) of %s", n, base)
}

// BaseName strips a leading "Copy of " or "Copy (N) of " label, so copying a
// copy does not nest labels.
func BaseName(name string) string {
	if m := copyPattern.FindStringSubmatch(name); m != nil {
		return m[2]
	}
	return name
}

// CopyIndex returns N for "Copy (N) of X", 1 for "Copy of X" and 0 for a
// name without a copy label.
func CopyIndex(name string) int {
	m := copyPattern.FindStringSubmatch(name)
	if m == nil {
		return 0
	}
	if m[1] == "" {
		return 1
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// MoveTarget returns the path a cut or restore of name into dir should use:
// name itself when free, otherwise "stem (N).ext" for the smallest free N
// starting at 1.
func MoveTarget(dir, name string, isDir bool, taken Taken) (string, error) {
	return search(dir, taken, 0, func(n int) string { return Numbered(name, n, isDir) })
}

// CopyTarget returns the path a copy of name into dir should use: "Copy of
// X", then "Copy (2) of X" and upwards, where X is name without any copy
// label.
func CopyTarget(dir, name string, taken Taken) (string, error) {
	base := BaseName(name)
	return search(dir, taken, 1, func(n int) string { return CopyName(base, n) })
}

// Suggest returns the first free name among name, "name (2)", "name (3)"
// and so on. Used for the default in create prompts.
func Suggest(dir, name string, isDir bool, taken Taken) (string, error) {
	p, err := search(dir, taken, 1, func(n int) string {
		if n == 1 {
			return name
		}
		return Numbered(name, n, isDir)
	})
	if err != nil {
		return "", err
	}
	return paths.Base(p), nil
}

func search(dir string, taken Taken, start int, candidate func(n int) string) (string, error) {
	for n := start; n < start+MaxAttempts; n++ {
		p := paths.Join(dir, candidate(n))
		occupied, err := taken(p)
		if err != nil {
			return "", err
		}
		if !occupied {
			return p, nil
		}
	}
	return "", ErrExhausted
}
