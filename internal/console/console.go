// Package console renders a readiness report as human-readable,
// line-oriented output.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/go-tangra/go-tangra-readiness/internal/report"
)

var (
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Printer writes verdict lines to a single destination. With noColor
// set the exact same text is written unstyled.
type Printer struct {
	w       io.Writer
	noColor bool
}

// New creates a Printer writing to w.
func New(w io.Writer, noColor bool) *Printer {
	return &Printer{w: w, noColor: noColor}
}

// PrintReport writes the header, one line per verdict in the report's
// fixed order, a detail line under every Fail, and the eligibility
// footer.
func (p *Printer) PrintReport(r *report.Report) {
	fmt.Fprintf(p.w, "Upgrade readiness for %s (%s)\n\n", r.Hostname, r.MachineLabel)

	width := 0
	for _, v := range r.Checks {
		if w := runewidth.StringWidth(v.Check); w > width {
			width = w
		}
	}

	for _, v := range r.Checks {
		pad := strings.Repeat(" ", width-runewidth.StringWidth(v.Check))
		fmt.Fprintf(p.w, "%s:%s %s\n", v.Check, pad, p.verdictWord(v.Passed))
		if !v.Passed && v.Detail != "" {
			fmt.Fprintf(p.w, "  %s\n", p.dim(v.Detail))
		}
	}

	fmt.Fprintf(p.w, "\nEligible for upgrade: %s\n", p.eligibleWord(r.Eligible))
}

func (p *Printer) verdictWord(passed bool) string {
	if passed {
		return p.styled(passStyle, "Pass")
	}
	return p.styled(failStyle, "Fail")
}

func (p *Printer) eligibleWord(eligible bool) string {
	if eligible {
		return p.styled(passStyle, "Yes")
	}
	return p.styled(failStyle, "No")
}

func (p *Printer) dim(s string) string {
	return p.styled(dimStyle, s)
}

func (p *Printer) styled(style lipgloss.Style, s string) string {
	if p.noColor {
		return s
	}
	return style.Render(s)
}
