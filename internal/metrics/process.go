package metrics

import (
	"cmp"
	"slices"
	"time"

	"github.com/rileyhilliard/tusk/internal/units"
)

// ProcessRecord is one row of the process table for a single tick.
type ProcessRecord struct {
	PID          PID
	Name         string
	Memory       units.MegaByte
	CPU          float64
	RunTime      time.Duration
	Status       ProcessStatus
	TotalRead    units.MegaByte
	TotalWritten units.MegaByte
}

// NewProcessRecord flattens a source reading into a table row.
func NewProcessRecord(p ProcessInfo) ProcessRecord {
	return ProcessRecord{
		PID:          p.PID,
		Name:         p.Name,
		Memory:       units.New[units.MB](p.Memory),
		CPU:          p.CPU,
		RunTime:      p.RunTime,
		Status:       p.Status,
		TotalRead:    units.New[units.MB](p.Disk.TotalRead),
		TotalWritten: units.New[units.MB](p.Disk.TotalWritten),
	}
}

// BuildProcessList rebuilds the sorted process table from a source reading.
func BuildProcessList(table map[PID]ProcessInfo) []ProcessRecord {
	list := make([]ProcessRecord, 0, len(table))
	for _, p := range table {
		list = append(list, NewProcessRecord(p))
	}
	SortProcesses(list)
	return list
}

// SortProcesses orders records by CPU usage, highest first. Equal usage falls
// back to ascending PID so the order is stable from tick to tick.
func SortProcesses(list []ProcessRecord) {
	slices.SortFunc(list, func(a, b ProcessRecord) int {
		if c := cmp.Compare(b.CPU, a.CPU); c != 0 {
			return c
		}
		return cmp.Compare(a.PID, b.PID)
	})
}

// TopProcesses returns at most n records from the front of a sorted list.
func TopProcesses(list []ProcessRecord, n int) []ProcessRecord {
	if n < 0 || n >= len(list) {
		return list
	}
	return list[:n]
}
