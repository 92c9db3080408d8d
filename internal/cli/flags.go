package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/tusk/internal/config"
	"github.com/rileyhilliard/tusk/internal/errors"
	"github.com/rileyhilliard/tusk/internal/metrics"
)

// GlobalFlags holds the persistent flags shared by every command.
type GlobalFlags struct {
	Config   string
	LogLevel string
	LogFile  string
	NoColor  bool
}

// AddGlobalFlags registers --config, --log-level, --log-file and --no-color
// as persistent flags on a command.
func AddGlobalFlags(cmd *cobra.Command, flags *GlobalFlags) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.Config, "config", "", "config file (default $XDG_CONFIG_HOME/tusk/config.yaml)")
	pf.StringVar(&flags.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	pf.StringVar(&flags.LogFile, "log-file", "", "append logs to this file")
	pf.BoolVar(&flags.NoColor, "no-color", false, "disable colored output")
}

// ParsePID parses a --track value. Returns zero if the flag is empty.
func ParsePID(flag string) (metrics.PID, error) {
	flag = strings.TrimSpace(flag)
	if flag == "" {
		return 0, nil
	}

	pid, err := strconv.ParseUint(flag, 10, 32)
	if err != nil || pid == 0 {
		return 0, errors.New(errors.ErrTrack,
			fmt.Sprintf("'%s' doesn't look like a pid", flag),
			"Pass a positive process id, e.g. --track 4242. 'tusk pick' lists running processes.")
	}
	return metrics.PID(pid), nil
}

// loadSettings loads and validates config, with flag values taking
// precedence over the file and the environment.
func loadSettings(flags GlobalFlags) (*config.Config, string, error) {
	cfg, path, err := config.LoadOrDefault(flags.Config)
	if err != nil {
		return nil, "", err
	}

	if flags.LogLevel != "" {
		cfg.Log.Level = flags.LogLevel
	}
	if flags.LogFile != "" {
		cfg.Log.File = config.Expand(flags.LogFile)
	}

	if err := config.Validate(cfg); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}
