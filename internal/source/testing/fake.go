// Package testing provides a scripted metrics.Source for tests.
package testing

import (
	"context"
	"sync"

	"github.com/rileyhilliard/tusk/internal/errors"
	"github.com/rileyhilliard/tusk/internal/metrics"
)

// Frame is what the source reports for one round of refreshes. A non-nil
// error field makes the matching refresh fail and leaves that area as it was.
type Frame struct {
	CPUs      []metrics.CPUCore
	Memory    metrics.MemoryStats
	Networks  []metrics.NetworkCounters
	Processes map[metrics.PID]metrics.ProcessInfo

	CPUErr     error
	MemoryErr  error
	NetworkErr error
	ProcessErr error
}

// FakeSource replays frames in order. Each RefreshCPU call starts the next
// frame; once the script runs out the last frame repeats.
type FakeSource struct {
	Name string

	mu      sync.Mutex
	frames  []Frame
	next    int
	pending Frame
	closed  bool

	cpus      []metrics.CPUCore
	memory    metrics.MemoryStats
	networks  []metrics.NetworkCounters
	processes map[metrics.PID]metrics.ProcessInfo

	refreshes int
}

// New creates a fake that will replay frames.
func New(frames ...Frame) *FakeSource {
	return &FakeSource{Name: "Fake CPU", frames: frames}
}

// Push appends frames to the script.
func (f *FakeSource) Push(frames ...Frame) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = append(f.frames, frames...)
}

// Close makes every later refresh fail with ErrSourceGone.
func (f *FakeSource) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// Refreshes returns how many refresh rounds were started.
func (f *FakeSource) Refreshes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refreshes
}

func (f *FakeSource) gone() error {
	return errors.New(errors.ErrSourceGone, "Fake source is closed", "")
}

func (f *FakeSource) RefreshCPU(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return f.gone()
	}
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "CPU refresh cancelled")
	}

	f.refreshes++
	switch {
	case f.next < len(f.frames):
		f.pending = f.frames[f.next]
		f.next++
	case len(f.frames) > 0:
		f.pending = f.frames[len(f.frames)-1]
	}

	if f.pending.CPUErr != nil {
		return f.pending.CPUErr
	}
	f.cpus = f.pending.CPUs
	return nil
}

func (f *FakeSource) RefreshMemory(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return f.gone()
	}
	if f.pending.MemoryErr != nil {
		return f.pending.MemoryErr
	}
	f.memory = f.pending.Memory
	return nil
}

func (f *FakeSource) RefreshNetworks(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return f.gone()
	}
	if f.pending.NetworkErr != nil {
		return f.pending.NetworkErr
	}
	f.networks = f.pending.Networks
	return nil
}

func (f *FakeSource) RefreshProcesses(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return f.gone()
	}
	if f.pending.ProcessErr != nil {
		return f.pending.ProcessErr
	}
	f.processes = f.pending.Processes
	return nil
}

func (f *FakeSource) CPUName() string {
	return f.Name
}

func (f *FakeSource) CPUs() []metrics.CPUCore {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]metrics.CPUCore(nil), f.cpus...)
}

func (f *FakeSource) Memory() metrics.MemoryStats {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.memory
}

func (f *FakeSource) Networks() []metrics.NetworkCounters {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]metrics.NetworkCounters(nil), f.networks...)
}

func (f *FakeSource) Processes() map[metrics.PID]metrics.ProcessInfo {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[metrics.PID]metrics.ProcessInfo, len(f.processes))
	for pid, p := range f.processes {
		out[pid] = p
	}
	return out
}

// Table builds a process table keyed by pid.
func Table(procs ...metrics.ProcessInfo) map[metrics.PID]metrics.ProcessInfo {
	out := make(map[metrics.PID]metrics.ProcessInfo, len(procs))
	for _, p := range procs {
		out[p.PID] = p
	}
	return out
}

// Cores builds a core list with the given usages, all at freq MHz.
func Cores(freq uint64, usages ...float64) []metrics.CPUCore {
	out := make([]metrics.CPUCore, len(usages))
	for i, u := range usages {
		out[i] = metrics.CPUCore{Usage: u, Frequency: freq}
	}
	return out
}

// Interface builds a single-interface counter list.
func Interface(name string, rx, tx uint64) []metrics.NetworkCounters {
	return []metrics.NetworkCounters{{Name: name, Received: rx, Transmitted: tx}}
}

var _ metrics.Source = (*FakeSource)(nil)
