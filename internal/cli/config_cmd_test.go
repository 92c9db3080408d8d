package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/tusk/internal/config"
	"github.com/rileyhilliard/tusk/internal/errors"
)

func TestConfigInit_WritesDefaults(t *testing.T) {
	dir := isolateConfig(t)
	path := filepath.Join(dir, "nested", "tusk.yaml")

	var buf bytes.Buffer
	require.NoError(t, configInitCommand(&buf, path, false))

	assert.Contains(t, buf.String(), "Wrote "+path)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestConfigInit_DefaultPath(t *testing.T) {
	dir := isolateConfig(t)

	var buf bytes.Buffer
	require.NoError(t, configInitCommand(&buf, "", false))

	_, err := os.Stat(filepath.Join(dir, "xdg", "tusk", "config.yaml"))
	assert.NoError(t, err)
}

func TestConfigInit_RefusesOverwrite(t *testing.T) {
	dir := isolateConfig(t)
	path := writeConfig(t, dir, "debug: true\n")

	var buf bytes.Buffer
	err := configInitCommand(&buf, path, false)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "debug: true\n", string(data), "left untouched")

	require.NoError(t, configInitCommand(&buf, path, true))
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.Debug)
}

func TestConfigShow(t *testing.T) {
	dir := isolateConfig(t)
	path := writeConfig(t, dir, "history:\n  capacity: 64\n")

	var buf bytes.Buffer
	require.NoError(t, configShowCommand(&buf, GlobalFlags{Config: path, LogLevel: "debug"}))

	out := buf.String()
	assert.Contains(t, out, "# from "+path)
	assert.Contains(t, out, "capacity: 64")
	assert.Contains(t, out, "level: debug")
}

func TestConfigShow_Defaults(t *testing.T) {
	isolateConfig(t)

	var buf bytes.Buffer
	require.NoError(t, configShowCommand(&buf, GlobalFlags{}))
	assert.Contains(t, buf.String(), "defaults (no config file found)")
	assert.Contains(t, buf.String(), "network_floor: 1MB")
}

func TestConfigShow_Invalid(t *testing.T) {
	dir := isolateConfig(t)
	path := writeConfig(t, dir, "log:\n  buffer: 0\n")

	var buf bytes.Buffer
	err := configShowCommand(&buf, GlobalFlags{Config: path})
	require.Error(t, err)
	assert.Empty(t, buf.String())
}
