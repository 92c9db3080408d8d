package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HelpBinding represents a single keyboard shortcut entry.
type HelpBinding struct {
	Key  string
	Desc string
}

// helpBindings defines all keyboard shortcuts shown in the help overlay.
var helpBindings = []HelpBinding{
	{Key: "q / Ctrl+C", Desc: "Quit"},
	{Key: "Tab / →", Desc: "Next tab"},
	{Key: "Shift+Tab / ←", Desc: "Previous tab"},
	{Key: "i", Desc: "Track a pid"},
	{Key: "t / Enter", Desc: "Track selected process"},
	{Key: "u", Desc: "Stop tracking"},
	{Key: "↑ / ↓", Desc: "Move in the process table"},
	{Key: "d", Desc: "Toggle debug tab"},
	{Key: "Esc", Desc: "Close input / help"},
	{Key: "?", Desc: "Toggle this help"},
}

// renderHelpOverlay renders a centered help box in place of the dashboard.
func (m Model) renderHelpOverlay() string {
	keyStyle := m.styles.Text.Bold(true).Width(16)

	lines := []string{m.styles.SelectedTab.Render("Keyboard Shortcuts"), ""}
	for _, binding := range helpBindings {
		lines = append(lines, keyStyle.Render(binding.Key)+m.styles.Label.Render(binding.Desc))
	}
	lines = append(lines, "", m.styles.Label.Render("Press ? to close"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.styles.Border.GetForeground()).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))

	return lipgloss.Place(
		m.contentWidth(),
		max(m.height, lipgloss.Height(box)),
		lipgloss.Center,
		lipgloss.Center,
		box,
	)
}
