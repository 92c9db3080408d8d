package cli

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"k8s.io/utils/clock"

	"github.com/rileyhilliard/tusk/internal/errors"
	"github.com/rileyhilliard/tusk/internal/metrics"
	"github.com/rileyhilliard/tusk/internal/util"
)

const defaultPickTop = 15

var pickTop int

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Choose a process to track, then open the dashboard",
	Long: `List the busiest processes, let you pick one, and open the dashboard
on its Tracked tab.

Examples:
  tusk pick
  tusk pick --top 30`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return pickCommand(cmd.Context(), globalFlags, pickTop)
	},
}

func init() {
	pickCmd.Flags().IntVar(&pickTop, "top", defaultPickTop, "number of processes to choose from")
	rootCmd.AddCommand(pickCmd)
}

func pickCommand(ctx context.Context, flags GlobalFlags, top int) error {
	if top < 1 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("--top must be at least 1, got %d", top),
			"Pass how many processes to list, e.g. --top 15")
	}
	if err := requireTerminal(); err != nil {
		return err
	}

	s, err := openSession(ctx, flags, true)
	if err != nil {
		return err
	}
	defer s.Close()

	// One settled tick so the list is ordered by real CPU usage.
	report, err := TakeSnapshot(ctx, s.collector, s.src, clock.RealClock{}, top)
	if err != nil {
		return err
	}
	if len(report.Processes) == 0 {
		return errors.New(errors.ErrTrack,
			"No processes to pick from",
			"Check that tusk can read the process list")
	}

	var selected metrics.PID
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[metrics.PID]().
				Title("Track which process?").
				Options(pickOptions(report.Processes)...).
				Value(&selected),
		),
	)

	if err := form.Run(); err != nil {
		return pickFormError(err)
	}

	return runDashboard(ctx, s, selected, s.cfg.Debug)
}

// pickFormError maps a picker failure: aborting is a clean exit, anything
// else means the form couldn't run.
func pickFormError(err error) error {
	if stderrors.Is(err, huh.ErrUserAborted) {
		return nil
	}
	return errors.WrapWithCode(err, errors.ErrUI,
		"Process picker failed",
		"Run 'tusk' and track a pid with --track instead")
}

// pickOptions builds one menu entry per process, labelled like a table row.
func pickOptions(procs []ProcessReport) []huh.Option[metrics.PID] {
	options := make([]huh.Option[metrics.PID], 0, len(procs))
	for _, p := range procs {
		label := fmt.Sprintf("%-8d %-24s %6.1f%%  %8.1fMB", p.PID, util.Truncate(p.Name, 24), p.CPUPercent, p.MemoryMB)
		options = append(options, huh.NewOption(label, p.PID))
	}
	return options
}
