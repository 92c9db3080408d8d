package monitor

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/tusk/internal/config"
)

// Styles are the lipgloss styles derived from a config.Theme. Empty theme
// colors fall back to the terminal default.
type Styles struct {
	Graph1 lipgloss.Color
	Graph2 lipgloss.Color
	Graph3 lipgloss.Color

	Border       lipgloss.Style
	Axis         lipgloss.Style
	Text         lipgloss.Style
	Label        lipgloss.Style
	Tab          lipgloss.Style
	SelectedTab  lipgloss.Style
	SelectedText lipgloss.Style
	Error        lipgloss.Style
	Footer       lipgloss.Style
}

// NewStyles builds the dashboard styles for theme.
func NewStyles(theme config.Theme) Styles {
	color := func(s string) lipgloss.TerminalColor {
		if s == "" {
			return lipgloss.NoColor{}
		}
		return lipgloss.Color(s)
	}

	return Styles{
		Graph1: lipgloss.Color(theme.Graph1),
		Graph2: lipgloss.Color(theme.Graph2),
		Graph3: lipgloss.Color(theme.Graph3),

		Border: lipgloss.NewStyle().
			Foreground(color(theme.Border)),
		Axis: lipgloss.NewStyle().
			Foreground(color(theme.Axis)),
		Text: lipgloss.NewStyle().
			Foreground(color(theme.Text)),
		Label: lipgloss.NewStyle().
			Foreground(color(theme.Tab)),
		Tab: lipgloss.NewStyle().
			Foreground(color(theme.Tab)).
			Padding(0, 1),
		SelectedTab: lipgloss.NewStyle().
			Foreground(color(theme.SelectedText)).
			Background(color(theme.SelectedTab)).
			Bold(true).
			Padding(0, 1),
		SelectedText: lipgloss.NewStyle().
			Foreground(color(theme.SelectedText)).
			Background(color(theme.SelectedTab)),
		Error: lipgloss.NewStyle().
			Foreground(color(theme.Error)).
			Bold(true),
		Footer: lipgloss.NewStyle().
			Foreground(color(theme.Axis)).
			Padding(0, 1),
	}
}

// Table returns bubbles table styles matching the theme.
func (s Styles) Table() table.Styles {
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(s.Border.GetForeground()).
		BorderBottom(true).
		Bold(true).
		Foreground(s.Label.GetForeground())
	ts.Cell = ts.Cell.
		Foreground(s.Text.GetForeground())
	ts.Selected = s.SelectedText.Bold(false)
	return ts
}

// SectionHeader renders a section header with the title on the left and value on the right.
// Format: ╭─ Title ────────────────────────────────────── Value ╮
func (s Styles) SectionHeader(title, value string, width int) string {
	if width < 10 {
		width = 10
	}

	leftWidth := 3 + lipgloss.Width(title) + 1
	rightWidth := 1 + lipgloss.Width(value) + 2

	fillWidth := width - leftWidth - rightWidth
	if fillWidth < 1 {
		fillWidth = 1
	}

	return s.Border.Render("╭─ ") +
		s.Text.Bold(true).Render(title) +
		s.Border.Render(" "+strings.Repeat("─", fillWidth)+" ") +
		s.Text.Render(value) +
		s.Border.Render(" ╮")
}

// SectionFooter renders the bottom border of a section.
// Format: ╰────────────────────────────────────────────────────╯
func (s Styles) SectionFooter(width int) string {
	if width < 2 {
		width = 2
	}
	return s.Border.Render("╰" + strings.Repeat("─", width-2) + "╯")
}

// SectionContentLine renders a content line with left and right borders, padded to width.
// Format: │ content                                              │
func (s Styles) SectionContentLine(content string, width int) string {
	if width < 4 {
		width = 4
	}

	padding := width - 4 - lipgloss.Width(content)
	if padding < 0 {
		padding = 0
	}

	return s.Border.Render("│") + " " + content + strings.Repeat(" ", padding) + " " + s.Border.Render("│")
}

// Section renders a bordered block: header, one content line per row of body, footer.
func (s Styles) Section(title, value, body string, width int) string {
	lines := []string{s.SectionHeader(title, value, width)}
	for _, line := range strings.Split(body, "\n") {
		lines = append(lines, s.SectionContentLine(line, width))
	}
	lines = append(lines, s.SectionFooter(width))
	return strings.Join(lines, "\n")
}
