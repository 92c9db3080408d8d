package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille character rendering for high-resolution terminal graphs.
//
// Braille patterns use a 2x4 dot matrix per character:
//
//	  Col 0  Col 1
//	Row 0:   ⠁      ⠈     (dots 1, 4)
//	Row 1:   ⠂      ⠐     (dots 2, 5)
//	Row 2:   ⠄      ⠠     (dots 3, 6)
//	Row 3:   ⡀      ⢀     (dots 7, 8)
//
// Unicode braille starts at U+2800 (empty) and uses bit patterns:
// bit 0 = dot 1, bit 1 = dot 2, bit 2 = dot 3, bit 3 = dot 4,
// bit 4 = dot 5, bit 5 = dot 6, bit 6 = dot 7, bit 7 = dot 8

const brailleBase = '⠀'

// brailleDots maps row/column to the bit offset for braille pattern
// [row][col] where row is 0-3 (top to bottom) and col is 0-1 (left to right)
var brailleDots = [4][2]uint8{
	{0, 3},
	{1, 4},
	{2, 5},
	{6, 7},
}

// Scale returns the top of the Y axis for data: its largest value, but never
// less than floor.
func Scale(data []float64, floor float64) float64 {
	top := floor
	for _, v := range data {
		top = max(top, v)
	}
	return top
}

// normalizeValue converts a value to 0-1 range given min/max bounds.
func normalizeValue(val, minVal, maxVal float64) float64 {
	if maxVal > minVal {
		return (val - minVal) / (maxVal - minVal)
	}
	return 0
}

// clampInt clamps an integer to a range [0, maxVal].
func clampInt(val, maxVal int) int {
	if val < 0 {
		return 0
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// RenderBraille renders data as an area graph of braille characters scaled
// from 0 to top. Each character holds 2 samples and 4 vertical levels, so
// the graph shows the newest width*2 samples, right-aligned.
func RenderBraille(data []float64, width, height int, top float64, color lipgloss.Color) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	totalDots := height * 4
	targetPoints := width * 2
	if len(data) > targetPoints {
		data = data[len(data)-targetPoints:]
	}

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(string(brailleBase), width))
	}

	horizOffset := targetPoints - len(data)
	for i, val := range data {
		dotHeight := clampInt(int(normalizeValue(val, 0, top)*float64(totalDots)+0.5), totalDots)
		if val > 0 && dotHeight == 0 {
			dotHeight = 1
		}

		charCol := (i + horizOffset) / 2
		subCol := (i + horizOffset) % 2

		for dot := range dotHeight {
			row := height - 1 - dot/4
			subRow := 3 - dot%4
			grid[row][charCol] |= rune(1 << brailleDots[subRow][subCol])
		}
	}

	style := lipgloss.NewStyle().Foreground(color)
	lines := make([]string, height)
	for i, row := range grid {
		lines[i] = style.Render(string(row))
	}
	return strings.Join(lines, "\n")
}

// RenderGauge renders a horizontal bar filled to percent (0-100).
func RenderGauge(width int, percent float64, fill lipgloss.Color, empty lipgloss.Style) string {
	if width < 1 {
		width = 1
	}
	percent = min(max(percent, 0), 100)

	filled := min(int(percent/100*float64(width)), width)
	return lipgloss.NewStyle().Foreground(fill).Render(strings.Repeat("█", filled)) +
		empty.Render(strings.Repeat("░", width-filled))
}
