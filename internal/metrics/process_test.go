package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProcessRecord(t *testing.T) {
	info := ProcessInfo{
		PID:     42,
		Name:    "postgres",
		Memory:  64 << 20,
		CPU:     12.5,
		RunTime: 3 * time.Minute,
		Status:  StatusSleep,
		Disk:    DiskUsage{TotalRead: 2 << 20, TotalWritten: 1 << 20},
	}

	rec := NewProcessRecord(info)

	assert.Equal(t, PID(42), rec.PID)
	assert.Equal(t, "postgres", rec.Name)
	assert.Equal(t, 64.0, rec.Memory.AsF64())
	assert.Equal(t, 12.5, rec.CPU)
	assert.Equal(t, 3*time.Minute, rec.RunTime)
	assert.Equal(t, StatusSleep, rec.Status)
	assert.Equal(t, 2.0, rec.TotalRead.AsF64())
	assert.Equal(t, 1.0, rec.TotalWritten.AsF64())
}

func TestSortProcesses(t *testing.T) {
	list := []ProcessRecord{
		{PID: 5, CPU: 1},
		{PID: 3, CPU: 50},
		{PID: 9, CPU: 10},
		{PID: 2, CPU: 10},
		{PID: 7, CPU: 0},
	}

	SortProcesses(list)

	pids := make([]PID, len(list))
	for i, p := range list {
		pids[i] = p.PID
	}
	assert.Equal(t, []PID{3, 2, 9, 5, 7}, pids)
}

func TestBuildProcessList(t *testing.T) {
	table := map[PID]ProcessInfo{
		1: {PID: 1, Name: "init", CPU: 0.1},
		2: {PID: 2, Name: "busy", CPU: 90},
		3: {PID: 3, Name: "mid", CPU: 20},
	}

	list := BuildProcessList(table)

	require.Len(t, list, 3)
	assert.Equal(t, "busy", list[0].Name)
	assert.Equal(t, "mid", list[1].Name)
	assert.Equal(t, "init", list[2].Name)

	assert.Empty(t, BuildProcessList(nil))
}

func TestTopProcesses(t *testing.T) {
	list := []ProcessRecord{{PID: 1}, {PID: 2}, {PID: 3}}

	assert.Len(t, TopProcesses(list, 2), 2)
	assert.Len(t, TopProcesses(list, 10), 3)
	assert.Len(t, TopProcesses(list, -1), 3)
	assert.Empty(t, TopProcesses(list, 0))
}
