package metrics

import (
	"context"
	"time"

	"github.com/rileyhilliard/tusk/internal/errors"
)

// PID is a platform process id.
type PID uint32

// Source reads live OS metrics. Each Refresh call re-reads one area; the
// accessors return what the latest successful refresh saw.
//
// Network counters and process disk totals are cumulative. The Collector
// differences them against its own previous reading.
//
// Refresh failures should be *errors.Error values with code ErrSource
// (transient, retried next tick) or ErrSourceGone (fatal).
type Source interface {
	RefreshCPU(ctx context.Context) error
	RefreshMemory(ctx context.Context) error
	RefreshNetworks(ctx context.Context) error
	RefreshProcesses(ctx context.Context) error

	CPUName() string
	CPUs() []CPUCore
	Memory() MemoryStats
	Networks() []NetworkCounters
	Processes() map[PID]ProcessInfo
}

// CPUCore is one logical core.
type CPUCore struct {
	Usage     float64 // percent, 0-100
	Frequency uint64  // MHz
}

// MemoryStats is system memory in bytes.
type MemoryStats struct {
	Total     uint64
	Used      uint64
	Available uint64
}

// NetworkCounters are cumulative byte counters for one interface.
type NetworkCounters struct {
	Name        string
	Received    uint64
	Transmitted uint64
}

// ProcessStatus is a coarse process state.
type ProcessStatus string

const (
	StatusRun     ProcessStatus = "run"
	StatusSleep   ProcessStatus = "sleep"
	StatusIdle    ProcessStatus = "idle"
	StatusStop    ProcessStatus = "stop"
	StatusZombie  ProcessStatus = "zombie"
	StatusWait    ProcessStatus = "wait"
	StatusLock    ProcessStatus = "lock"
	StatusUnknown ProcessStatus = "unknown"
)

// DiskUsage holds a process's disk I/O in bytes, cumulative since the
// process started.
type DiskUsage struct {
	TotalRead    uint64
	TotalWritten uint64
}

// ProcessInfo is one process as reported by a Source.
type ProcessInfo struct {
	PID       PID
	Name      string
	Memory    uint64  // resident bytes
	CPU       float64 // percent of one core
	RunTime   time.Duration
	StartTime time.Time
	Status    ProcessStatus
	Disk      DiskUsage
}

// IsTransient reports whether err is a source failure worth retrying next tick.
func IsTransient(err error) bool {
	return errors.IsCode(err, errors.ErrSource)
}

// IsFatal reports whether err means the source is gone for good.
func IsFatal(err error) bool {
	return errors.IsCode(err, errors.ErrSourceGone)
}
