package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/bdutremble/projects/internal/domain/project"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// Color palette
var (
	colorHeading = lipgloss.Color("#7AA2F7")
	colorMuted   = lipgloss.Color("#666666")
	colorSuccess = lipgloss.Color("#2ECC71")
	colorWarning = lipgloss.Color("#F39C12")
	colorError   = lipgloss.Color("#E74C3C")
)

// styles are bound to the output writer, so a non-terminal writer gets plain text.
type styles struct {
	heading lipgloss.Style
	muted   lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	error   lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		heading: r.NewStyle().Bold(true).Foreground(colorHeading),
		muted:   r.NewStyle().Foreground(colorMuted),
		success: r.NewStyle().Foreground(colorSuccess),
		warning: r.NewStyle().Foreground(colorWarning),
		error:   r.NewStyle().Bold(true).Foreground(colorError),
	}
}

func formatDecimal(d *decimal.Decimal) string {
	if d == nil {
		return "-"
	}
	return d.StringFixed(2)
}

func formatInt(n *int) string {
	if n == nil {
		return "-"
	}
	return strconv.Itoa(*n)
}

func formatText(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

// summary is the one-line form used after create and in the menu banner.
func summary(p *project.Project) string {
	return fmt.Sprintf("%d: %s", p.ID, p.Name)
}

// details renders a project with its steps and materials, one item per line.
func details(p *project.Project) []string {
	lines := []string{
		fmt.Sprintf("   ID=%d, name=%s", p.ID, p.Name),
		fmt.Sprintf("   estimated hours=%s, actual hours=%s, difficulty=%s",
			formatDecimal(p.EstimatedHours), formatDecimal(p.ActualHours), formatInt(p.Difficulty)),
		fmt.Sprintf("   notes=%s", formatText(p.Notes)),
	}

	lines = append(lines, "   Steps:")
	if len(p.Steps) == 0 {
		lines = append(lines, "      (none)")
	}
	for _, s := range p.Steps {
		lines = append(lines, fmt.Sprintf("      %d. %s", s.Order, s.Text))
	}

	lines = append(lines, "   Materials:")
	if len(p.Materials) == 0 {
		lines = append(lines, "      (none)")
	}
	for _, m := range p.Materials {
		lines = append(lines, fmt.Sprintf("      %s x %s @ %s",
			formatInt(m.NumRequired), m.Name, formatDecimal(m.Cost)))
	}
	return lines
}

// withCurrent appends the current value of a field to a prompt label.
func withCurrent(label, current string) string {
	return fmt.Sprintf("%s [%s]", label, current)
}
