package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Bar block characters.
const (
	BarFilled = '█'
	BarEmpty  = '░'
)

// ClampPercent clamps a percentage to the 0-100 range.
func ClampPercent(percent float64) float64 {
	return min(max(percent, 0), 100)
}

// CalculateBarCounts returns the number of filled and empty characters for a bar.
// Percent should be 0-100, width is the total bar width.
func CalculateBarCounts(percent float64, width int) (filled, empty int) {
	filled = min(int(percent/100*float64(width)), width)
	return filled, width - filled
}

// RenderBar renders a bracketed usage bar colored by ThresholdColor, with
// the percentage appended:
//
//	[████████░░░░░░░░░░░░]  42.0%
func RenderBar(percent float64, width int) string {
	if width <= 0 {
		return ""
	}

	percent = ClampPercent(percent)
	filled, empty := CalculateBarCounts(percent, width)

	bar := "[" + strings.Repeat(string(BarFilled), filled) + strings.Repeat(string(BarEmpty), empty) + "]"
	return lipgloss.NewStyle().Foreground(ThresholdColor(percent)).Render(bar) +
		fmt.Sprintf(" %5.1f%%", percent)
}
