package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	dirStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true)
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func success(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintln(w, successStyle.Render(fmt.Sprintf(format, args...)))
}

func note(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintln(w, subtleStyle.Render(fmt.Sprintf(format, args...)))
}

func size(n int64, isDir bool) string {
	if isDir {
		return "-"
	}
	return humanize.IBytes(uint64(n))
}

func when(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
