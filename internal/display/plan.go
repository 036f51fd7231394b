// Package display renders rename plans and conflicts for the terminal.
package display

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/backmassage/batchren/internal/naming"
)

// maxSourceColumn caps the width the arrow column is aligned to.
const maxSourceColumn = 60

var (
	sourceStyle = lipgloss.NewStyle()
	arrowStyle  = lipgloss.NewStyle().Faint(true)
	destStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	headerStyle = lipgloss.NewStyle().Bold(true)
	kindStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// PlanOptions controls RenderPlan and RenderConflicts.
type PlanOptions struct {
	Cwd   string // paths under Cwd are shown relative to it
	Color bool
}

func (o PlanOptions) rel(p string) string {
	if o.Cwd == "" || !filepath.IsAbs(p) {
		return p
	}
	r, err := filepath.Rel(o.Cwd, p)
	if err != nil || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return p
	}
	return r
}

func (o PlanOptions) style(s lipgloss.Style, text string) string {
	if !o.Color {
		return text
	}
	return s.Render(text)
}

// RenderPlan returns one "source -> dest" line per move with the arrows
// aligned. An empty plan renders as an empty string.
func RenderPlan(moves []naming.Move, opts PlanOptions) string {
	if len(moves) == 0 {
		return ""
	}
	srcs := make([]string, len(moves))
	col := 0
	for i, m := range moves {
		srcs[i] = opts.rel(m.Source)
		if w := lipgloss.Width(srcs[i]); w > col {
			col = w
		}
	}
	col = min(col, maxSourceColumn)

	var b strings.Builder
	for i, m := range moves {
		pad := max(col-lipgloss.Width(srcs[i]), 0)
		b.WriteString(opts.style(sourceStyle, srcs[i]))
		b.WriteString(strings.Repeat(" ", pad))
		b.WriteString(" " + opts.style(arrowStyle, "->") + " ")
		b.WriteString(opts.style(destStyle, opts.rel(m.Dest)))
		b.WriteByte('\n')
	}
	return b.String()
}

// RenderConflicts lists every conflict under a header.
func RenderConflicts(conflicts []naming.Conflict, opts PlanOptions) string {
	var b strings.Builder
	b.WriteString(opts.style(headerStyle, fmt.Sprintf("%d conflicting rename(s):", len(conflicts))))
	b.WriteByte('\n')
	for _, c := range conflicts {
		fmt.Fprintf(&b, "  %s -> %s  %s", opts.rel(c.Move.Source), opts.rel(c.Move.Dest), opts.style(kindStyle, c.Kind.String()))
		if c.Other != "" {
			fmt.Fprintf(&b, " (%s)", opts.rel(c.Other))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
