package project

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"wse/common"
	"wse/style"
)

// Summary prints extraction results to the terminal. Swatches adds colored
// blocks for every extracted color, renderer drops colors when w is not a
// terminal.
func Summary(w io.Writer, p *style.Profile, format common.OutputFmt, l Layout, swatches bool) error {
	r := lipgloss.NewRenderer(w)
	title := r.NewStyle().Bold(true)
	faint := r.NewStyle().Faint(true)

	var sb strings.Builder
	if l.ProjectMode() {
		fmt.Fprintf(&sb, "Project created: %s\n", l.Dir)
		fmt.Fprintf(&sb, "   Main output: %s\n", l.Output)
		fmt.Fprintf(&sb, "   Metadata: %s\n", l.Metadata())
		fmt.Fprintf(&sb, "   Project README: %s\n", l.Readme())
		fmt.Fprintf(&sb, "   HTML README: %s (with live font previews)\n", l.ReadmeHTML())
	} else {
		fmt.Fprintf(&sb, "Style file created: %s\n", l.Output)
	}

	sb.WriteString("\n" + title.Render("Extraction Summary:") + "\n")
	fmt.Fprintf(&sb, "   Colors found: %d\n", len(p.Colors()))
	fmt.Fprintf(&sb, "   Fonts found: %d\n", len(p.Fonts()))
	fmt.Fprintf(&sb, "   Body background: %s\n", p.BodyBackground())
	fmt.Fprintf(&sb, "   Heading color: %s\n", p.HeadingColor())
	fmt.Fprintf(&sb, "   Link color: %s\n", p.LinkColor())
	if p.Computed().Degraded {
		sb.WriteString("   " + faint.Render("(computed styles unavailable, defaults used)") + "\n")
	}

	if colors := p.Colors(); swatches && len(colors) > 0 {
		sb.WriteString("   Palette: ")
		for _, c := range colors {
			sb.WriteString(r.NewStyle().Background(lipgloss.Color(c)).Render("  "))
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
	}

	preview := l.ReadmeHTML()
	if len(preview) == 0 {
		preview = l.Output
	}
	sb.WriteString("\n" + format.TerminalHint(l.Output, preview) + "\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
