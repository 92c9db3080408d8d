package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline block characters representing 8 vertical levels (lowest to highest).
const sparklineBlocks = "▁▂▃▄▅▆▇█"

// sparklineBlockRunes provides indexed access to block characters.
var sparklineBlockRunes = []rune(sparklineBlocks)

// RenderSparkline renders percentages (0-100) as one block per value, on a
// fixed scale so equal values always draw the same height. At most width
// values are drawn, the newest last. Each block takes its ThresholdColor.
func RenderSparkline(data []float64, width int) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}
	if len(data) > width {
		data = data[len(data)-width:]
	}

	top := len(sparklineBlockRunes) - 1

	var sb strings.Builder
	for _, v := range data {
		v = ClampPercent(v)
		level := int(v / 100 * float64(top))
		sb.WriteString(lipgloss.NewStyle().
			Foreground(ThresholdColor(v)).
			Render(string(sparklineBlockRunes[level])))
	}
	return sb.String()
}
