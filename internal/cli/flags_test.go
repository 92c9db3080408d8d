package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/tusk/internal/config"
	"github.com/rileyhilliard/tusk/internal/errors"
	"github.com/rileyhilliard/tusk/internal/metrics"
)

// isolateConfig points every config search location at an empty temp dir.
func isolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv(config.EnvConfigPath, "")
	return dir
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "tusk.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestAddGlobalFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	var flags GlobalFlags
	AddGlobalFlags(cmd, &flags)

	require.NoError(t, cmd.ParseFlags([]string{
		"--config", "/tmp/tusk.yaml",
		"--log-level", "debug",
		"--log-file", "/tmp/tusk.log",
		"--no-color",
	}))

	assert.Equal(t, GlobalFlags{
		Config:   "/tmp/tusk.yaml",
		LogLevel: "debug",
		LogFile:  "/tmp/tusk.log",
		NoColor:  true,
	}, flags)
}

func TestParsePID(t *testing.T) {
	tests := []struct {
		name    string
		flag    string
		want    metrics.PID
		wantErr bool
	}{
		{"empty", "", 0, false},
		{"blank", "  ", 0, false},
		{"valid", "4242", 4242, false},
		{"surrounding space", " 17 ", 17, false},
		{"zero", "0", 0, true},
		{"negative", "-1", 0, true},
		{"word", "postgres", 0, true},
		{"too large", "99999999999", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePID(tt.flag)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrTrack))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadSettings_Defaults(t *testing.T) {
	isolateConfig(t)

	cfg, path, err := loadSettings(GlobalFlags{})
	require.NoError(t, err)

	assert.Empty(t, path)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestLoadSettings_FlagsOverrideFile(t *testing.T) {
	dir := isolateConfig(t)
	path := writeConfig(t, dir, "log:\n  level: warn\n  file: /var/log/from-file.log\n")

	cfg, got, err := loadSettings(GlobalFlags{
		Config:   path,
		LogLevel: "debug",
		LogFile:  "~/tusk.log",
	})
	require.NoError(t, err)

	assert.Equal(t, path, got)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, filepath.Join(dir, "tusk.log"), cfg.Log.File)
}

func TestLoadSettings_FileOnly(t *testing.T) {
	dir := isolateConfig(t)
	path := writeConfig(t, dir, "history:\n  capacity: 50\n")

	cfg, _, err := loadSettings(GlobalFlags{Config: path})
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.History.Capacity)
}

func TestLoadSettings_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		flags GlobalFlags
	}{
		{"bad level flag", "", GlobalFlags{LogLevel: "loud"}},
		{"bad capacity", "history:\n  capacity: 0\n", GlobalFlags{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolateConfig(t)
			tt.flags.Config = writeConfig(t, dir, tt.body)

			_, _, err := loadSettings(tt.flags)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
		})
	}
}

func TestLoadSettings_MissingExplicitFile(t *testing.T) {
	dir := isolateConfig(t)

	_, _, err := loadSettings(GlobalFlags{Config: filepath.Join(dir, "nope.yaml")})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}
