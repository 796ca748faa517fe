package display

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/backmassage/bundlekit/internal/term"
)

const banner = ` _                     _ _      _    _ _
| |__  _   _ _ __   __| | | ___| | _(_) |_
| '_ \| | | | '_ \ / _` + "`" + ` | |/ _ \ |/ / | __|
| |_) | |_| | | | | (_| | |  __/   <| | |_
|_.__/ \__,_|_| |_|\__,_|_|\___|_|\_\_|\__|
`

var bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))

// PrintBanner writes the ASCII banner to w, styled when colors are enabled.
func PrintBanner(w io.Writer) {
	if term.Enabled() {
		fmt.Fprintln(w, bannerStyle.Render(banner))
		return
	}
	fmt.Fprint(w, banner)
}
