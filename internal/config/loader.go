package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/rileyhilliard/tusk/internal/errors"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. TUSK_HISTORY_CAPACITY.
	EnvPrefix = "TUSK"
	// EnvConfigPath names an explicit config file.
	EnvConfigPath = "TUSK_CONFIG"
	// ConfigDirName is the directory under the user config dir.
	ConfigDirName = "tusk"
	// ConfigFileName is the config file name.
	ConfigFileName = "config.yaml"
)

// Load reads config from path, layering environment overrides on top.
// An empty path yields defaults plus environment overrides.
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if os.IsNotExist(err) {
				return nil, errors.WrapWithCode(err, errors.ErrConfig,
					"Config file not found",
					"Run 'tusk config init' to create one, or specify one with --config")
			}
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to read config file",
				"Check the file exists and is valid YAML")
		}
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. $TUSK_CONFIG
// 3. $XDG_CONFIG_HOME/tusk/config.yaml
// 4. ~/.config/tusk/config.yaml
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	// 1. Explicit path takes precedence
	if explicit != "" {
		return mustExist(ExpandTilde(explicit))
	}

	// 2. Environment
	if env := os.Getenv(EnvConfigPath); env != "" {
		return mustExist(ExpandTilde(env))
	}

	// 3, 4. User config directories
	for _, candidate := range searchPaths() {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", nil
}

// DefaultPath returns where 'tusk config init' writes by default.
func DefaultPath() string {
	paths := searchPaths()
	if len(paths) == 0 {
		return ConfigFileName
	}
	return paths[0]
}

// LoadOrDefault finds and loads config, or returns defaults (with environment
// overrides) if no file exists. It also returns the path used, if any.
func LoadOrDefault(explicit string) (*Config, string, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, "", err
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func mustExist(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Specified config file not found: "+path,
				"Check the path is correct, or run 'tusk config init --path "+path+"'")
		}
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot access config file: "+path,
			"Check file permissions")
	}
	return path, nil
}

func searchPaths() []string {
	var paths []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, ConfigDirName, ConfigFileName))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", ConfigDirName, ConfigFileName))
	}
	return paths
}

// newViper returns a viper instance with defaults and environment overrides.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// setDefaults registers every key so env overrides apply even without a file.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("version", d.Version)
	v.SetDefault("debug", d.Debug)
	v.SetDefault("history.capacity", d.History.Capacity)
	v.SetDefault("history.tracked_capacity", d.History.TrackedCapacity)
	v.SetDefault("graph.network_floor", d.Graph.NetworkFloor)
	v.SetDefault("graph.memory_floor", d.Graph.MemoryFloor)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.buffer", d.Log.Buffer)

	v.SetDefault("theme.border", d.Theme.Border)
	v.SetDefault("theme.graph_1", d.Theme.Graph1)
	v.SetDefault("theme.graph_2", d.Theme.Graph2)
	v.SetDefault("theme.graph_3", d.Theme.Graph3)
	v.SetDefault("theme.axis", d.Theme.Axis)
	v.SetDefault("theme.text", d.Theme.Text)
	v.SetDefault("theme.tab", d.Theme.Tab)
	v.SetDefault("theme.selected_tab", d.Theme.SelectedTab)
	v.SetDefault("theme.selected_text", d.Theme.SelectedText)
	v.SetDefault("theme.error", d.Theme.Error)
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		source := "the environment"
		if path != "" {
			source = path
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the values in "+source)
	}

	cfg.Log.File = Expand(cfg.Log.File)
	return cfg, nil
}
