package config

import (
	"bytes"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/rileyhilliard/tusk/internal/errors"
)

const defaultHeader = `# tusk configuration
#
# Sizes accept units like 512KB, 64MB or 2GB. Colors are "#RRGGBB" or an
# ANSI number (0-255). Any key can be overridden from the environment, e.g.
# TUSK_HISTORY_CAPACITY=300 or TUSK_THEME_GRAPH_1="#FF0000".
`

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to render config as YAML", "")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to render config as YAML", "")
	}
	return buf.Bytes(), nil
}

// WriteDefault writes the default config to path, creating parent
// directories. An existing file is only replaced when force is set.
func WriteDefault(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.New(errors.ErrConfig,
			"Config file already exists: "+path,
			"Use --force to overwrite it")
	}

	data, err := Marshal(DefaultConfig())
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Can't create config directory "+filepath.Dir(path),
			"Check directory permissions")
	}
	if err := os.WriteFile(path, append([]byte(defaultHeader+"\n"), data...), 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Can't write config file "+path,
			"Check file permissions")
	}
	return nil
}
