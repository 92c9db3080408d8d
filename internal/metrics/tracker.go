package metrics

import (
	"time"

	"github.com/rileyhilliard/tusk/internal/history"
	"github.com/rileyhilliard/tusk/internal/units"
)

// TrackState is the state of the process tracker.
type TrackState int

const (
	// Untracked means no process is under observation.
	Untracked TrackState = iota
	// Tracked means one process is observed every tick.
	Tracked
)

func (s TrackState) String() string {
	if s == Tracked {
		return "tracked"
	}
	return "untracked"
}

// TrackedProcess is the detailed record of the process under observation.
// Name and StartTime are captured when tracking starts and never refreshed.
type TrackedProcess struct {
	PID       PID
	Name      string
	StartTime time.Time

	Status       ProcessStatus
	RunTime      time.Duration
	TotalRead    units.MegaByte
	TotalWritten units.MegaByte

	CPU       *history.Series[float64]
	Memory    *history.Series[units.MegaByte]
	WriteRate *history.Series[units.KiloByte] // per second
	ReadRate  *history.Series[units.KiloByte] // per second

	// Raw cumulative byte counters from the previous observation.
	lastRead    uint64
	lastWritten uint64
}

// LossReason says why tracking stopped on its own.
type LossReason string

const (
	// ReasonExited means the pid is no longer in the process table.
	ReasonExited LossReason = "exited"
	// ReasonReused means the pid now belongs to a different process.
	ReasonReused LossReason = "pid reused"
)

// TrackingLost is reported by Observe when the tracked process goes away.
type TrackingLost struct {
	PID    PID
	Name   string
	Reason LossReason
}

// Tracker owns the lifecycle of the single tracked process.
type Tracker struct {
	capacity int
	current  *TrackedProcess
}

// NewTracker creates an untracked tracker whose series hold capacity values.
func NewTracker(capacity int) (*Tracker, error) {
	// Validate once so Track never has to fail on capacity.
	if _, err := history.NewSeries[float64](capacity); err != nil {
		return nil, err
	}
	return &Tracker{capacity: capacity}, nil
}

// State reports whether a process is being tracked.
func (t *Tracker) State() TrackState {
	if t.current == nil {
		return Untracked
	}
	return Tracked
}

// Current returns the tracked process, or nil when untracked.
func (t *Tracker) Current() *TrackedProcess {
	return t.current
}

// Track starts observing pid if it is present in table, and reports whether
// it is now tracked. Tracking the pid already tracked keeps its history;
// tracking another pid replaces the record.
func (t *Tracker) Track(pid PID, table map[PID]ProcessInfo) bool {
	info, ok := table[pid]
	if !ok {
		return false
	}
	if t.current != nil && t.current.PID == pid && t.current.StartTime.Equal(info.StartTime) {
		return true
	}

	t.current = &TrackedProcess{
		PID:          pid,
		Name:         info.Name,
		StartTime:    info.StartTime,
		Status:       info.Status,
		RunTime:      info.RunTime,
		TotalRead:    units.New[units.MB](info.Disk.TotalRead),
		TotalWritten: units.New[units.MB](info.Disk.TotalWritten),
		CPU:          history.MustSeries[float64](t.capacity),
		Memory:       history.MustSeries[units.MegaByte](t.capacity),
		WriteRate:    history.MustSeries[units.KiloByte](t.capacity),
		ReadRate:     history.MustSeries[units.KiloByte](t.capacity),
		lastRead:     info.Disk.TotalRead,
		lastWritten:  info.Disk.TotalWritten,
	}
	return true
}

// Untrack stops observing immediately and discards the history.
func (t *Tracker) Untrack() {
	t.current = nil
}

// Observe refreshes the tracked process from this tick's table. It returns a
// non-nil TrackingLost when the process has exited or its pid was reused, in
// which case the tracker is Untracked afterwards.
func (t *Tracker) Observe(table map[PID]ProcessInfo, elapsed time.Duration) *TrackingLost {
	tp := t.current
	if tp == nil {
		return nil
	}

	info, ok := table[tp.PID]
	if !ok || !info.StartTime.Equal(tp.StartTime) {
		reason := ReasonExited
		if ok {
			reason = ReasonReused
		}
		t.current = nil
		return &TrackingLost{PID: tp.PID, Name: tp.Name, Reason: reason}
	}

	written := units.New[units.KB](CounterDelta(tp.lastWritten, info.Disk.TotalWritten))
	read := units.New[units.KB](CounterDelta(tp.lastRead, info.Disk.TotalRead))

	tp.Status = info.Status
	tp.RunTime = info.RunTime
	tp.TotalRead = units.New[units.MB](info.Disk.TotalRead)
	tp.TotalWritten = units.New[units.MB](info.Disk.TotalWritten)
	tp.lastRead = info.Disk.TotalRead
	tp.lastWritten = info.Disk.TotalWritten

	tp.Memory.Push(units.New[units.MB](info.Memory))
	tp.CPU.Push(info.CPU)
	tp.WriteRate.Push(PerSecond(written, elapsed))
	tp.ReadRate.Push(PerSecond(read, elapsed))
	return nil
}
