package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestThresholdColor(t *testing.T) {
	tests := []struct {
		percent float64
		expect  lipgloss.Color
	}{
		{0, ColorSuccess},
		{59.9, ColorSuccess},
		{60, ColorWarning},
		{79.9, ColorWarning},
		{80, ColorError},
		{100, ColorError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expect, ThresholdColor(tt.percent), "percent %.1f", tt.percent)
	}
}

func TestStylesAreFunctional(t *testing.T) {
	styles := []struct {
		name  string
		style lipgloss.Style
	}{
		{"Success", SuccessStyle()},
		{"Error", ErrorStyle()},
		{"Muted", MutedStyle()},
	}

	for _, tt := range styles {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, tt.style.Render("test text"), "test text")
		})
	}
}

func TestDisableColors(t *testing.T) {
	assert.NotPanics(t, DisableColors)
	assert.Equal(t, "plain", SuccessStyle().Render("plain"))
}
