package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"k8s.io/utils/clock"

	"github.com/rileyhilliard/tusk/internal/errors"
	"github.com/rileyhilliard/tusk/internal/metrics"
	"github.com/rileyhilliard/tusk/internal/ui"
	"github.com/rileyhilliard/tusk/internal/units"
	"github.com/rileyhilliard/tusk/internal/util"
)

const (
	defaultSnapshotTop = 10
	snapshotAttempts   = 3
	snapshotBarWidth   = 20
)

var (
	snapshotTop  int
	snapshotJSON bool
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Print one reading of system activity",
	Long: `Sample the machine twice, one tick apart, and print CPU, memory,
network rates and the busiest processes. Works without a terminal.

Examples:
  tusk snapshot
  tusk snapshot --top 3
  tusk snapshot --json | jq '.data.processes[0]'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return snapshotCommand(cmd.Context(), cmd.OutOrStdout(), globalFlags, snapshotTop, snapshotJSON)
	},
}

func init() {
	snapshotCmd.Flags().IntVar(&snapshotTop, "top", defaultSnapshotTop, "number of processes to list")
	snapshotCmd.Flags().BoolVar(&snapshotJSON, "json", false, "print a JSON envelope instead of tables")
	rootCmd.AddCommand(snapshotCmd)
}

// SnapshotReport is one settled reading of the machine.
type SnapshotReport struct {
	CPU          CPUReport       `json:"cpu"`
	Memory       MemoryReport    `json:"memory"`
	Network      NetworkReport   `json:"network"`
	ProcessCount int             `json:"process_count"`
	Processes    []ProcessReport `json:"processes"`
}

// CPUReport is CPU usage averaged over cores, plus each core on its own.
type CPUReport struct {
	Name         string    `json:"name"`
	FrequencyMHz uint64    `json:"frequency_mhz"`
	UsagePercent float64   `json:"usage_percent"`
	Cores        []float64 `json:"cores"`
}

// MemoryReport is system memory in bytes.
type MemoryReport struct {
	Total     uint64  `json:"total_bytes"`
	Used      uint64  `json:"used_bytes"`
	Available uint64  `json:"available_bytes"`
	Percent   float64 `json:"used_percent"`
}

// NetworkReport holds the rates over all non-loopback interfaces.
type NetworkReport struct {
	InKBps  float64 `json:"in_kb_per_sec"`
	OutKBps float64 `json:"out_kb_per_sec"`
}

// ProcessReport is one row of the process list.
type ProcessReport struct {
	PID            metrics.PID `json:"pid"`
	Name           string      `json:"name"`
	CPUPercent     float64     `json:"cpu_percent"`
	MemoryMB       float64     `json:"memory_mb"`
	RunTimeSeconds float64     `json:"run_time_seconds"`
	Status         string      `json:"status"`
	ReadMB         float64     `json:"read_mb"`
	WrittenMB      float64     `json:"written_mb"`
}

// snapshotCommand samples the machine and prints the result.
func snapshotCommand(ctx context.Context, w io.Writer, flags GlobalFlags, top int, asJSON bool) error {
	if top < 0 {
		err := errors.New(errors.ErrConfig,
			fmt.Sprintf("--top must be zero or more, got %d", top),
			"Use --top 0 to skip the process list")
		if asJSON {
			_ = WriteJSONFromError(w, err)
		}
		return err
	}

	report, err := snapshotLocal(ctx, flags, top)
	if err != nil {
		if asJSON {
			_ = WriteJSONFromError(w, err)
		}
		return err
	}

	if asJSON {
		return WriteJSONSuccess(w, report)
	}
	return renderSnapshot(w, report)
}

func snapshotLocal(ctx context.Context, flags GlobalFlags, top int) (*SnapshotReport, error) {
	s, err := openSession(ctx, flags, false)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	return TakeSnapshot(ctx, s.collector, s.src, clock.RealClock{}, top)
}

// TakeSnapshot waits one tick period on clk, ticks c, and reports the
// result. Transient source failures are retried a few times. c must already
// be primed (see metrics.NewCollector).
func TakeSnapshot(ctx context.Context, c *metrics.Collector, src metrics.Source, clk clock.Clock, top int) (*SnapshotReport, error) {
	var err error
	for range snapshotAttempts {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-clk.After(metrics.TickPeriod):
		}

		if err = c.Tick(ctx); err == nil || metrics.IsFatal(err) {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	return buildReport(c.Snapshot(), src.CPUs(), top), nil
}

func buildReport(snap *metrics.Snapshot, cores []metrics.CPUCore, top int) *SnapshotReport {
	in, out := snap.CurrentNetwork()

	r := &SnapshotReport{
		CPU: CPUReport{
			Name:         snap.CPUName,
			FrequencyMHz: snap.CPUFrequency,
			UsagePercent: snap.CurrentCPUUsage(),
			Cores:        make([]float64, 0, len(cores)),
		},
		Memory: MemoryReport{
			Total:     snap.Memory.Total,
			Used:      snap.Memory.Used,
			Available: snap.Memory.Available,
			Percent:   snap.MemoryPercent(),
		},
		Network: NetworkReport{
			InKBps:  in.AsF64(),
			OutKBps: out.AsF64(),
		},
		ProcessCount: len(snap.Processes),
	}
	for _, core := range cores {
		r.CPU.Cores = append(r.CPU.Cores, core.Usage)
	}

	procs := metrics.TopProcesses(snap.Processes, top)
	r.Processes = make([]ProcessReport, 0, len(procs))
	for _, p := range procs {
		r.Processes = append(r.Processes, ProcessReport{
			PID:            p.PID,
			Name:           p.Name,
			CPUPercent:     p.CPU,
			MemoryMB:       p.Memory.AsF64(),
			RunTimeSeconds: p.RunTime.Seconds(),
			Status:         string(p.Status),
			ReadMB:         p.TotalRead.AsF64(),
			WrittenMB:      p.TotalWritten.AsF64(),
		})
	}
	return r
}

var snapshotColumns = []ui.TableColumn{
	{Title: "PID", Width: 8},
	{Title: "NAME", Width: 24},
	{Title: "CPU %", Width: 7},
	{Title: "MEMORY", Width: 10},
	{Title: "STATUS", Width: 8},
}

func renderSnapshot(w io.Writer, r *SnapshotReport) error {
	used := units.New[units.MB](r.Memory.Used)
	total := units.New[units.MB](r.Memory.Total)

	summary := ui.RenderKeyValues([]ui.KeyValue{
		{Key: "CPU", Value: fmt.Sprintf("%s  %d MHz", r.CPU.Name, r.CPU.FrequencyMHz)},
		{Key: "Usage", Value: ui.RenderBar(r.CPU.UsagePercent, snapshotBarWidth)},
		{Key: "Cores", Value: ui.RenderSparkline(r.CPU.Cores, len(r.CPU.Cores))},
		{Key: "Memory", Value: ui.RenderBar(r.Memory.Percent, snapshotBarWidth) + "  " + used.Human() + " / " + total.Human()},
		{Key: "Network", Value: fmt.Sprintf("in %s/s  out %s/s", kbRate(r.Network.InKBps), kbRate(r.Network.OutKBps))},
		{Key: "Processes", Value: util.CountNoun(r.ProcessCount, "process", "processes")},
	})

	rows := make([][]string, 0, len(r.Processes))
	for _, p := range r.Processes {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(p.PID), 10),
			p.Name,
			strconv.FormatFloat(p.CPUPercent, 'f', 1, 64),
			strconv.FormatFloat(p.MemoryMB, 'f', 1, 64) + "MB",
			p.Status,
		})
	}

	ui.PrintHeader(w, ui.HeaderInfo{Version: formatVersion(version), Tagline: "system snapshot"})

	out := "\n" + summary
	if len(rows) > 0 {
		out += "\n" + ui.RenderSimpleTable(snapshotColumns, rows) + "\n"
	}
	_, err := io.WriteString(w, out)
	return err
}

// kbRate renders a KB per second figure in KB or MB.
func kbRate(kb float64) string {
	if kb >= 1024 {
		return strconv.FormatFloat(kb/1024, 'f', 1, 64) + "MB"
	}
	return strconv.FormatFloat(kb, 'f', 1, 64) + "KB"
}
