// Package source reads live metrics from the local machine through gopsutil.
package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"
	"k8s.io/utils/clock"

	"github.com/rileyhilliard/tusk/internal/errors"
	"github.com/rileyhilliard/tusk/internal/logger"
	"github.com/rileyhilliard/tusk/internal/metrics"
)

// DefaultHandleTTL is how long a process handle outlives its last sighting.
const DefaultHandleTTL = 5 * time.Second

// handle is a cached gopsutil process plus the fields that never change for it.
type handle struct {
	proc    *process.Process
	name    string
	created time.Time
}

// System implements metrics.Source for the local host.
type System struct {
	clock clock.PassiveClock
	log   logger.Logger
	ttl   time.Duration

	handles *ttlcache.Cache[metrics.PID, *handle]
	closed  bool

	cpuName   string
	freq      *cpuFreq
	cpus      []metrics.CPUCore
	memory    metrics.MemoryStats
	networks  []metrics.NetworkCounters
	processes map[metrics.PID]metrics.ProcessInfo
}

// Option configures a System.
type Option func(*System)

// WithClock sets the clock used for process run times.
func WithClock(c clock.PassiveClock) Option {
	return func(s *System) {
		s.clock = c
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(s *System) {
		s.log = l
	}
}

// WithHandleTTL sets how long handles of vanished processes are kept.
func WithHandleTTL(d time.Duration) Option {
	return func(s *System) {
		s.ttl = d
	}
}

// New creates a System and reads the static CPU model name and nominal speeds.
func New(ctx context.Context, opts ...Option) (*System, error) {
	s := &System{
		clock:     clock.RealClock{},
		log:       logger.Noop(),
		ttl:       DefaultHandleTTL,
		processes: map[metrics.PID]metrics.ProcessInfo{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.handles = ttlcache.New(
		ttlcache.WithTTL[metrics.PID, *handle](s.ttl),
	)

	infos, err := cpu.InfoWithContext(ctx)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSourceGone,
			"Can't read CPU information",
			"tusk needs read access to the host's CPU info (/proc/cpuinfo on Linux)")
	}
	if len(infos) > 0 {
		s.cpuName = strings.TrimSpace(infos[0].ModelName)
	}
	nominal := make([]uint64, len(infos))
	for i, info := range infos {
		nominal[i] = uint64(info.Mhz)
	}
	s.freq = newCPUFreq(nominal)
	return s, nil
}

// Close releases cached process handles. Later refreshes fail with ErrSourceGone.
func (s *System) Close() error {
	s.closed = true
	s.handles.DeleteAll()
	return nil
}

func (s *System) check(ctx context.Context, what string) error {
	if s.closed {
		return errors.New(errors.ErrSourceGone, "Metric source is closed", "")
	}
	if err := ctx.Err(); err != nil {
		return transient(err, what)
	}
	return nil
}

func transient(err error, what string) error {
	return errors.WrapWithCode(err, errors.ErrSource,
		fmt.Sprintf("Failed to read %s", what),
		"The next tick will retry")
}

// RefreshCPU reads per-core usage since the previous call and the current
// per-core frequency.
func (s *System) RefreshCPU(ctx context.Context) error {
	if err := s.check(ctx, "CPU usage"); err != nil {
		return err
	}

	usage, err := cpu.PercentWithContext(ctx, 0, true)
	if err != nil {
		return transient(err, "CPU usage")
	}

	freqs := s.freq.read(len(usage))
	cores := make([]metrics.CPUCore, len(usage))
	for i, u := range usage {
		cores[i] = metrics.CPUCore{Usage: u, Frequency: freqs[i]}
	}
	s.cpus = cores
	return nil
}

// RefreshMemory reads system memory.
func (s *System) RefreshMemory(ctx context.Context) error {
	if err := s.check(ctx, "memory"); err != nil {
		return err
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return transient(err, "memory")
	}
	s.memory = metrics.MemoryStats{Total: vm.Total, Used: vm.Used, Available: vm.Available}
	return nil
}

// RefreshNetworks reads cumulative counters for every non-loopback interface.
func (s *System) RefreshNetworks(ctx context.Context) error {
	if err := s.check(ctx, "network counters"); err != nil {
		return err
	}

	stats, err := net.IOCountersWithContext(ctx, true)
	if err != nil {
		return transient(err, "network counters")
	}

	ifaces := make([]metrics.NetworkCounters, 0, len(stats))
	for _, st := range stats {
		if isLoopback(st.Name) {
			continue
		}
		ifaces = append(ifaces, metrics.NetworkCounters{
			Name:        st.Name,
			Received:    st.BytesRecv,
			Transmitted: st.BytesSent,
		})
	}
	s.networks = ifaces
	return nil
}

func isLoopback(name string) bool {
	return name == "lo" || strings.HasPrefix(name, "lo0")
}

// RefreshProcesses enumerates every process. A process that exits between
// enumeration and the detail reads is left out.
func (s *System) RefreshProcesses(ctx context.Context) error {
	if err := s.check(ctx, "process list"); err != nil {
		return err
	}

	pids, err := process.PidsWithContext(ctx)
	if err != nil {
		return transient(err, "process list")
	}

	s.handles.DeleteExpired()
	now := s.clock.Now()
	table := make(map[metrics.PID]metrics.ProcessInfo, len(pids))
	for _, raw := range pids {
		pid := metrics.PID(raw)
		info, ok := s.readProcess(ctx, pid, now)
		if !ok {
			continue
		}
		table[pid] = info
	}
	s.processes = table
	return nil
}

// readProcess reads one process, reusing its cached handle when the pid still
// belongs to the same process.
func (s *System) readProcess(ctx context.Context, pid metrics.PID, now time.Time) (metrics.ProcessInfo, bool) {
	h := s.lookup(ctx, pid)
	if h == nil {
		return metrics.ProcessInfo{}, false
	}

	memInfo, err := h.proc.MemoryInfoWithContext(ctx)
	if err != nil {
		s.forget(pid, err)
		return metrics.ProcessInfo{}, false
	}
	percent, err := h.proc.PercentWithContext(ctx, 0)
	if err != nil {
		s.forget(pid, err)
		return metrics.ProcessInfo{}, false
	}

	info := metrics.ProcessInfo{
		PID:       pid,
		Name:      h.name,
		Memory:    memInfo.RSS,
		CPU:       percent,
		StartTime: h.created,
		RunTime:   now.Sub(h.created),
		Status:    StatusFromStates(statusOf(ctx, h.proc)),
	}
	if info.RunTime < 0 {
		info.RunTime = 0
	}

	// Reading another user's I/O counters is often denied; report zero then.
	if io, err := h.proc.IOCountersWithContext(ctx); err == nil {
		info.Disk = metrics.DiskUsage{TotalRead: io.ReadBytes, TotalWritten: io.WriteBytes}
	}
	return info, true
}

// lookup returns a valid handle for pid, replacing a cached one whose pid was
// reused. It returns nil when the process is already gone.
func (s *System) lookup(ctx context.Context, pid metrics.PID) *handle {
	if item := s.handles.Get(pid); item != nil {
		h := item.Value()
		if running, err := h.proc.IsRunningWithContext(ctx); err == nil && running {
			return h
		}
		s.handles.Delete(pid)
	}

	proc, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		return nil
	}
	name, err := proc.NameWithContext(ctx)
	if err != nil {
		return nil
	}
	createdMs, err := proc.CreateTimeWithContext(ctx)
	if err != nil {
		return nil
	}

	h := &handle{proc: proc, name: name, created: time.UnixMilli(createdMs)}
	s.handles.Set(pid, h, ttlcache.DefaultTTL)
	return h
}

func (s *System) forget(pid metrics.PID, err error) {
	s.log.Debug("dropping pid %d: %v", pid, err)
	s.handles.Delete(pid)
}

func statusOf(ctx context.Context, p *process.Process) []string {
	states, err := p.StatusWithContext(ctx)
	if err != nil {
		return nil
	}
	return states
}

// StatusFromStates maps gopsutil state names to a ProcessStatus.
func StatusFromStates(states []string) metrics.ProcessStatus {
	if len(states) == 0 {
		return metrics.StatusUnknown
	}
	switch states[0] {
	case process.Running:
		return metrics.StatusRun
	case process.Sleep:
		return metrics.StatusSleep
	case process.Idle:
		return metrics.StatusIdle
	case process.Stop:
		return metrics.StatusStop
	case process.Zombie:
		return metrics.StatusZombie
	case process.Wait, process.Blocked:
		return metrics.StatusWait
	case process.Lock:
		return metrics.StatusLock
	default:
		return metrics.StatusUnknown
	}
}

// CachedHandles returns how many process handles are cached.
func (s *System) CachedHandles() int {
	return s.handles.Len()
}

func (s *System) CPUName() string {
	return s.cpuName
}

func (s *System) CPUs() []metrics.CPUCore {
	return s.cpus
}

func (s *System) Memory() metrics.MemoryStats {
	return s.memory
}

func (s *System) Networks() []metrics.NetworkCounters {
	return s.networks
}

func (s *System) Processes() map[metrics.PID]metrics.ProcessInfo {
	return s.processes
}

var _ metrics.Source = (*System)(nil)
