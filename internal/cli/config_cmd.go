package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/tusk/internal/config"
	"github.com/rileyhilliard/tusk/internal/ui"
)

var (
	configInitForce bool
	configInitPath  string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Create or inspect the config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Long: `Write a commented config file with every setting at its default.

Examples:
  tusk config init
  tusk config init --path ./tusk.yaml
  tusk config init --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configInitCommand(cmd.OutOrStdout(), configInitPath, configInitForce)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the settings tusk would run with",
	Long: `Print the effective settings: defaults, then the config file, then
TUSK_* environment overrides, then flags.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configShowCommand(cmd.OutOrStdout(), globalFlags)
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing config file")
	configInitCmd.Flags().StringVar(&configInitPath, "path", "", "where to write (default $XDG_CONFIG_HOME/tusk/config.yaml)")

	configCmd.AddCommand(configInitCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func configInitCommand(w io.Writer, path string, force bool) error {
	if path == "" {
		path = config.DefaultPath()
	}
	path = config.ExpandTilde(path)

	if err := config.WriteDefault(path, force); err != nil {
		return err
	}

	fmt.Fprintf(w, "%s Wrote %s\n", ui.SuccessStyle().Render(ui.SymbolSuccess), path)
	return nil
}

func configShowCommand(w io.Writer, flags GlobalFlags) error {
	cfg, path, err := loadSettings(flags)
	if err != nil {
		return err
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}

	source := "defaults (no config file found)"
	if path != "" {
		source = path
	}
	fmt.Fprintf(w, "%s\n", ui.MutedStyle().Render("# from "+source))
	_, err = w.Write(data)
	return err
}
