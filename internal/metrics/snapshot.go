package metrics

import (
	"time"

	"github.com/rileyhilliard/tusk/internal/history"
	"github.com/rileyhilliard/tusk/internal/units"
)

// Snapshot is the state of every sampled quantity as of the last successful
// tick. Consumers must treat it as read-only.
type Snapshot struct {
	Tick    uint64        // successful ticks so far
	Taken   time.Time     // when the last successful tick started
	Elapsed time.Duration // time covered by the last successful tick

	CPUName             string
	CPUFrequency        uint64 // mean MHz across cores
	CPUUsage            *history.Series[float64]
	CPUFrequencyHistory *history.Series[uint64]

	Memory     MemoryStats
	MemoryUsed *history.Series[units.MegaByte]

	NetworkIn  *history.Series[units.KiloByte] // per second
	NetworkOut *history.Series[units.KiloByte] // per second

	Processes []ProcessRecord // sorted, see SortProcesses
	Tracked   *TrackedProcess // nil when untracked

	RefreshTime time.Duration // time spent reading the source
}

// CurrentCPUUsage returns the newest mean CPU usage, or 0 before the first tick.
func (s *Snapshot) CurrentCPUUsage() float64 {
	v, _ := s.CPUUsage.Latest()
	return v
}

// CurrentNetwork returns the newest in and out rates.
func (s *Snapshot) CurrentNetwork() (in, out units.KiloByte) {
	in, _ = s.NetworkIn.Latest()
	out, _ = s.NetworkOut.Latest()
	return in, out
}

// MemoryPercent returns used memory as a percentage of total.
func (s *Snapshot) MemoryPercent() float64 {
	if s.Memory.Total == 0 {
		return 0
	}
	return float64(s.Memory.Used) / float64(s.Memory.Total) * 100
}
