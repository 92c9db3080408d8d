package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderSparkline_Empty(t *testing.T) {
	tests := []struct {
		name  string
		data  []float64
		width int
	}{
		{"empty data", []float64{}, 10},
		{"nil data", nil, 10},
		{"zero width", []float64{50, 60}, 0},
		{"negative width", []float64{50, 60}, -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, RenderSparkline(tt.data, tt.width))
		})
	}
}

func TestRenderSparkline_FixedScale(t *testing.T) {
	tests := []struct {
		name   string
		data   []float64
		expect string
	}{
		{"bounds", []float64{0, 100}, "▁█"},
		{"increasing", []float64{0, 50, 100}, "▁▄█"},
		{"same values keep their level", []float64{100, 100}, "██"},
		{"clamped", []float64{-20, 250}, "▁█"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, RenderSparkline(tt.data, 10))
		})
	}
}

func TestRenderSparkline_KeepsNewest(t *testing.T) {
	result := RenderSparkline([]float64{100, 100, 0, 0}, 2)
	assert.Equal(t, "▁▁", result)
}

func TestSparklineBlocksConstant(t *testing.T) {
	assert.Len(t, sparklineBlockRunes, 8)
	assert.Equal(t, '▁', sparklineBlockRunes[0])
	assert.Equal(t, '█', sparklineBlockRunes[7])
}
