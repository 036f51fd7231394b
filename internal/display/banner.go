package display

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/backmassage/batchren/internal/term"
)

const banner = ` _           _       _
| |__   __ _| |_ ___| |__  _ __ ___ _ __
| '_ \ / _` + "`" + ` | __/ __| '_ \| '__/ _ \ '_ \
| |_) | (_| | || (__| | | | | |  __/ | | |
|_.__/ \__,_|\__\___|_| |_|_|  \___|_| |_|`

// PrintBanner prints the ASCII art banner; magenta if colors are enabled.
func PrintBanner(w io.Writer) {
	if term.Enabled() {
		fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")).Render(banner))
		return
	}
	fmt.Fprintln(w, banner)
}
