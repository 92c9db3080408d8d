package metrics

import (
	"context"
	"time"

	"k8s.io/utils/clock"

	"github.com/rileyhilliard/tusk/internal/errors"
	"github.com/rileyhilliard/tusk/internal/history"
	"github.com/rileyhilliard/tusk/internal/logger"
	"github.com/rileyhilliard/tusk/internal/units"
)

// TickPeriod is the fixed sampling period.
const TickPeriod = 100 * time.Millisecond

// Collector is the tick orchestrator. It is not safe for concurrent use.
type Collector struct {
	src   Source
	clock clock.PassiveClock
	log   logger.Logger

	capacity        int
	trackedCapacity int

	tracker *Tracker
	snap    Snapshot

	// Latest process table, used to resolve Track requests between ticks.
	table map[PID]ProcessInfo

	// Baselines for the next tick.
	last    time.Time
	lastNet map[string]NetworkCounters
}

// Option configures a Collector.
type Option func(*Collector)

// WithClock sets the clock elapsed time is measured with.
func WithClock(c clock.PassiveClock) Option {
	return func(col *Collector) {
		col.clock = c
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(col *Collector) {
		col.log = l
	}
}

// WithCapacity sets how many samples each system series keeps.
func WithCapacity(n int) Option {
	return func(col *Collector) {
		col.capacity = n
	}
}

// WithTrackedCapacity sets how many samples each tracked-process series keeps.
func WithTrackedCapacity(n int) Option {
	return func(col *Collector) {
		col.trackedCapacity = n
	}
}

// NewCollector creates a collector and primes src so the first Tick has
// counter baselines to difference against. The process table read during
// priming is available to Track right away.
func NewCollector(ctx context.Context, src Source, opts ...Option) (*Collector, error) {
	c := &Collector{
		src:             src,
		clock:           clock.RealClock{},
		log:             logger.Noop(),
		capacity:        history.DefaultCapacity,
		trackedCapacity: history.DefaultCapacity,
	}
	for _, opt := range opts {
		opt(c)
	}

	var err error
	if c.snap.CPUUsage, err = history.NewSeries[float64](c.capacity); err != nil {
		return nil, err
	}
	c.snap.CPUFrequencyHistory = history.MustSeries[uint64](c.capacity)
	c.snap.MemoryUsed = history.MustSeries[units.MegaByte](c.capacity)
	c.snap.NetworkIn = history.MustSeries[units.KiloByte](c.capacity)
	c.snap.NetworkOut = history.MustSeries[units.KiloByte](c.capacity)

	if c.tracker, err = NewTracker(c.trackedCapacity); err != nil {
		return nil, err
	}

	start := c.clock.Now()
	if err := c.refresh(ctx); err != nil {
		return nil, err
	}

	c.snap.CPUName = c.src.CPUName()
	_, c.snap.CPUFrequency = meanCPU(c.src.CPUs())
	c.snap.Memory = c.src.Memory()
	_, _, c.lastNet = networkDeltas(nil, c.src.Networks())
	c.table = c.src.Processes()
	c.snap.Processes = BuildProcessList(c.table)
	c.snap.Taken = start
	c.last = start

	c.log.Debug("primed source: cpu=%q processes=%d", c.snap.CPUName, len(c.table))
	return c, nil
}

// Tick samples the source once and commits the result to the snapshot.
//
// A refresh failure is returned as is and nothing changes: the snapshot, the
// tick counter and the counter baselines stay where they were, so the next
// successful tick covers the gap.
func (c *Collector) Tick(ctx context.Context) error {
	now := c.clock.Now()
	elapsed := now.Sub(c.last)

	if err := c.refresh(ctx); err != nil {
		return err
	}
	refreshTime := c.clock.Since(now)

	// Gather everything before touching the snapshot.
	usage, freq := meanCPU(c.src.CPUs())
	mem := c.src.Memory()

	rx, tx, net := networkDeltas(c.lastNet, c.src.Networks())
	in := PerSecond(units.New[units.KB](rx), elapsed)
	out := PerSecond(units.New[units.KB](tx), elapsed)

	table := c.src.Processes()
	procs := BuildProcessList(table)

	// Commit.
	if lost := c.tracker.Observe(table, elapsed); lost != nil {
		c.log.Info("stopped tracking pid %d (%s): %s", lost.PID, lost.Name, lost.Reason)
	}

	c.snap.CPUUsage.Push(usage)
	c.snap.CPUFrequencyHistory.Push(freq)
	c.snap.MemoryUsed.Push(units.New[units.MB](mem.Used))
	c.snap.NetworkIn.Push(in)
	c.snap.NetworkOut.Push(out)

	c.snap.CPUFrequency = freq
	c.snap.Memory = mem
	c.snap.Processes = procs
	c.snap.Tracked = c.tracker.Current()
	c.snap.Elapsed = elapsed
	c.snap.Taken = now
	c.snap.RefreshTime = refreshTime
	c.snap.Tick++

	c.table = table
	c.last = now
	c.lastNet = net
	return nil
}

// Snapshot returns the current snapshot. It stays valid, and is updated in
// place, across ticks.
func (c *Collector) Snapshot() *Snapshot {
	return &c.snap
}

// Track starts tracking pid if it is in the latest process table and reports
// whether it is now tracked.
func (c *Collector) Track(pid PID) bool {
	if !c.tracker.Track(pid, c.table) {
		c.log.Debug("track request for pid %d ignored: not running", pid)
		return false
	}
	c.snap.Tracked = c.tracker.Current()
	c.log.Info("tracking pid %d (%s)", pid, c.snap.Tracked.Name)
	return true
}

// Untrack stops tracking.
func (c *Collector) Untrack() {
	if c.tracker.State() == Tracked {
		c.log.Info("untracked pid %d", c.tracker.Current().PID)
	}
	c.tracker.Untrack()
	c.snap.Tracked = nil
}

// Tracked returns the tracked process, or nil.
func (c *Collector) Tracked() *TrackedProcess {
	return c.tracker.Current()
}

// refresh re-reads every area of the source, stopping at the first failure.
// Errors without a code are treated as transient.
func (c *Collector) refresh(ctx context.Context) error {
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"cpu", c.src.RefreshCPU},
		{"memory", c.src.RefreshMemory},
		{"network", c.src.RefreshNetworks},
		{"process", c.src.RefreshProcesses},
	}

	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			if IsTransient(err) || IsFatal(err) {
				return err
			}
			return errors.Wrap(err, "Failed to refresh "+step.name+" metrics")
		}
	}
	return nil
}

// meanCPU returns the unweighted mean usage and frequency across cores.
func meanCPU(cores []CPUCore) (usage float64, freq uint64) {
	if len(cores) == 0 {
		return 0, 0
	}
	var freqSum uint64
	for _, core := range cores {
		usage += core.Usage
		freqSum += core.Frequency
	}
	n := len(cores)
	return usage / float64(n), freqSum / uint64(n)
}

// networkDeltas sums, over every interface, the bytes moved since prev. Each
// interface is compared with its own previous counters: one that is new has
// no baseline and contributes nothing, and one that vanished is dropped. The
// returned map is the baseline for the next call.
func networkDeltas(prev map[string]NetworkCounters, ifaces []NetworkCounters) (rx, tx uint64, next map[string]NetworkCounters) {
	next = make(map[string]NetworkCounters, len(ifaces))
	for _, iface := range ifaces {
		if before, ok := prev[iface.Name]; ok {
			rx += CounterDelta(before.Received, iface.Received)
			tx += CounterDelta(before.Transmitted, iface.Transmitted)
		}
		next[iface.Name] = iface
	}
	return rx, tx, next
}
