package config

import (
	"fmt"
	"regexp"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/rileyhilliard/tusk/internal/errors"
	"github.com/rileyhilliard/tusk/internal/units"
)

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but tusk only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade tusk or lower 'version' in the config file")
	}

	if cfg.History.Capacity < 1 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("history.capacity must be at least 1, got %d", cfg.History.Capacity),
			"Set history.capacity to the number of samples to keep, e.g. 100")
	}
	if cfg.History.TrackedCapacity < 1 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("history.tracked_capacity must be at least 1, got %d", cfg.History.TrackedCapacity),
			"Set history.tracked_capacity to the number of samples to keep, e.g. 100")
	}

	if err := validateSize("graph.network_floor", cfg.Graph.NetworkFloor); err != nil {
		return err
	}
	if err := validateSize("graph.memory_floor", cfg.Graph.MemoryFloor); err != nil {
		return err
	}

	if _, err := log.ParseLevel(cfg.Log.Level); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("log.level %q isn't a log level", cfg.Log.Level),
			"Use one of: trace, debug, info, warn, error")
	}
	if cfg.Log.Buffer < 1 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("log.buffer must be at least 1, got %d", cfg.Log.Buffer),
			"Set log.buffer to the number of log lines the debug tab keeps, e.g. 200")
	}

	return ValidateTheme(cfg.Theme)
}

// ValidateTheme checks that every theme color is empty, a hex color or an
// ANSI color number.
func ValidateTheme(t Theme) error {
	colors := []struct {
		key   string
		value string
	}{
		{"theme.border", t.Border},
		{"theme.graph_1", t.Graph1},
		{"theme.graph_2", t.Graph2},
		{"theme.graph_3", t.Graph3},
		{"theme.axis", t.Axis},
		{"theme.text", t.Text},
		{"theme.tab", t.Tab},
		{"theme.selected_tab", t.SelectedTab},
		{"theme.selected_text", t.SelectedText},
		{"theme.error", t.Error},
	}

	for _, c := range colors {
		if !validColor(c.value) {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("%s %q isn't a color", c.key, c.value),
				"Use a hex color like \"#89B4FA\" or an ANSI number from 0 to 255")
		}
	}
	return nil
}

func validColor(s string) bool {
	if s == "" || hexColor.MatchString(s) {
		return true
	}
	n, err := strconv.Atoi(s)
	return err == nil && n >= 0 && n <= 255
}

func validateSize(key, value string) error {
	if _, err := units.Parse[units.B](value); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("%s %q isn't a size", key, value),
			"Use a value like 512KB, 64MB or 2GB")
	}
	return nil
}
