// Package display formats human-facing output: the startup banner and the
// per-output size table printed after a build.
package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/backmassage/bundlekit/internal/term"
)

// FormatBytes returns a human-readable IEC size (B, KiB, MiB, ...).
func FormatBytes(bytes int64) string {
	if bytes < 0 {
		return "-" + humanize.IBytes(uint64(-bytes))
	}
	return humanize.IBytes(uint64(bytes))
}

var pathStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

// OutputRow is one line of the build summary table.
type OutputRow struct {
	Path string
	Size int64
}

// FormatOutputTable renders rows as "  <path>  <size>" lines with the sizes
// right-aligned in a shared column. Paths are colored when colors are on.
func FormatOutputTable(rows []OutputRow) []string {
	width := 0
	for _, r := range rows {
		if len(r.Path) > width {
			width = len(r.Path)
		}
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		pad := strings.Repeat(" ", width-len(r.Path))
		p := r.Path
		if term.Enabled() {
			p = pathStyle.Render(p)
		}
		lines = append(lines, fmt.Sprintf("  %s%s  %10s", p, pad, FormatBytes(r.Size)))
	}
	return lines
}
