package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/tusk/internal/errors"
	"github.com/rileyhilliard/tusk/internal/ui"
)

var (
	globalFlags GlobalFlags
	trackFlag   string
	debugFlag   bool
)

// rootCmd runs the dashboard.
var rootCmd = &cobra.Command{
	Use:   "tusk",
	Short: "Terminal system monitor",
	Long: `tusk samples CPU, memory, network and process activity ten times a
second and draws it in your terminal.

Tabs:
  Default     CPU, network and memory graphs with the busiest processes
  Processes   every process, sortable by CPU
  Tracked     detail graphs for one process (--track or press i)
  Debug       tick timings and recent log lines (--debug or press d)

Examples:
  tusk
  tusk --track 4242
  tusk snapshot --top 5
  tusk pick`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if globalFlags.NoColor {
			ui.DisableColors()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand(cmd.Context(), globalFlags, trackFlag, debugFlag)
	},
}

func init() {
	AddGlobalFlags(rootCmd, &globalFlags)
	rootCmd.Flags().StringVar(&trackFlag, "track", "", "start tracking this pid")
	rootCmd.Flags().BoolVar(&debugFlag, "debug", false, "show the debug tab")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}

	if code, ok := errors.GetExitCode(err); ok {
		os.Exit(code)
	}

	var tuskErr *errors.Error
	if stderrors.As(err, &tuskErr) {
		fmt.Fprint(os.Stderr, tuskErr.Error())
	} else {
		fmt.Fprintln(os.Stderr, ui.ErrorStyle().Render(ui.SymbolFail+" "+err.Error()))
	}
	if isUnknownCommandError(err) {
		fmt.Fprintln(os.Stderr, ui.MutedStyle().Render("Run 'tusk --help' to see the available commands."))
	}
	os.Exit(1)
}

// isUnknownCommandError reports whether cobra rejected the command line itself.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag")
}
