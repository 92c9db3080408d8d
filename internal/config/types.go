package config

import (
	"github.com/rileyhilliard/tusk/internal/history"
	"github.com/rileyhilliard/tusk/internal/units"
)

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete config.yaml file.
type Config struct {
	Version int           `yaml:"version" mapstructure:"version"`
	History HistoryConfig `yaml:"history" mapstructure:"history"`
	Graph   GraphConfig   `yaml:"graph" mapstructure:"graph"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
	Theme   Theme         `yaml:"theme" mapstructure:"theme"`

	// Debug shows the debug tab with tick timings and recent log lines.
	Debug bool `yaml:"debug" mapstructure:"debug"`
}

// HistoryConfig sizes the sample windows.
type HistoryConfig struct {
	// Capacity is how many samples each system graph keeps.
	Capacity int `yaml:"capacity" mapstructure:"capacity"`

	// TrackedCapacity is how many samples each tracked-process graph keeps.
	TrackedCapacity int `yaml:"tracked_capacity" mapstructure:"tracked_capacity"`
}

// GraphConfig sets the smallest top of scale for graphs, so idle
// systems don't render noise at full height.
type GraphConfig struct {
	// NetworkFloor is a per-second size such as "1MB".
	NetworkFloor string `yaml:"network_floor" mapstructure:"network_floor"`

	// MemoryFloor is a size such as "100MB", used by the tracked memory graph.
	MemoryFloor string `yaml:"memory_floor" mapstructure:"memory_floor"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	// Level is a logrus level name: trace, debug, info, warn, error.
	Level string `yaml:"level" mapstructure:"level"`

	// File receives log output. Empty keeps logs in memory only.
	// Supports ~ and ${HOME}.
	File string `yaml:"file" mapstructure:"file"`

	// Buffer is how many recent lines the debug tab keeps.
	Buffer int `yaml:"buffer" mapstructure:"buffer"`
}

// Theme holds terminal colors as lipgloss color strings
// ("#RRGGBB", ANSI 0-255 numbers, or empty for the terminal default).
type Theme struct {
	Border       string `yaml:"border" mapstructure:"border"`
	Graph1       string `yaml:"graph_1" mapstructure:"graph_1"`
	Graph2       string `yaml:"graph_2" mapstructure:"graph_2"`
	Graph3       string `yaml:"graph_3" mapstructure:"graph_3"`
	Axis         string `yaml:"axis" mapstructure:"axis"`
	Text         string `yaml:"text" mapstructure:"text"`
	Tab          string `yaml:"tab" mapstructure:"tab"`
	SelectedTab  string `yaml:"selected_tab" mapstructure:"selected_tab"`
	SelectedText string `yaml:"selected_text" mapstructure:"selected_text"`
	Error        string `yaml:"error" mapstructure:"error"`
}

// DefaultTheme returns the built-in color scheme.
func DefaultTheme() Theme {
	return Theme{
		Border:       "#6C7086",
		Graph1:       "#89B4FA",
		Graph2:       "#A6E3A1",
		Graph3:       "#F9E2AF",
		Axis:         "#585B70",
		Text:         "#CDD6F4",
		Tab:          "#7F849C",
		SelectedTab:  "#CBA6F7",
		SelectedText: "#1E1E2E",
		Error:        "#F38BA8",
	}
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		History: HistoryConfig{
			Capacity:        history.DefaultCapacity,
			TrackedCapacity: history.DefaultCapacity,
		},
		Graph: GraphConfig{
			NetworkFloor: "1MB",
			MemoryFloor:  "100MB",
		},
		Log: LogConfig{
			Level:  "info",
			Buffer: 200,
		},
		Theme: DefaultTheme(),
	}
}

// NetworkFloor returns the parsed network graph floor in KB per second.
// Call Validate first; an unparsable value yields zero.
func (c *Config) NetworkFloor() units.KiloByte {
	q, _ := units.Parse[units.KB](c.Graph.NetworkFloor)
	return q
}

// MemoryFloor returns the parsed tracked-memory graph floor.
// Call Validate first; an unparsable value yields zero.
func (c *Config) MemoryFloor() units.MegaByte {
	q, _ := units.Parse[units.MB](c.Graph.MemoryFloor)
	return q
}
