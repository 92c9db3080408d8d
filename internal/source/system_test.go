package source

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/shirou/gopsutil/v3/process"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/tusk/internal/metrics"
)

func TestStatusFromStates(t *testing.T) {
	tests := []struct {
		name   string
		states []string
		want   metrics.ProcessStatus
	}{
		{"running", []string{process.Running}, metrics.StatusRun},
		{"sleeping", []string{process.Sleep}, metrics.StatusSleep},
		{"idle", []string{process.Idle}, metrics.StatusIdle},
		{"stopped", []string{process.Stop}, metrics.StatusStop},
		{"zombie", []string{process.Zombie}, metrics.StatusZombie},
		{"waiting", []string{process.Wait}, metrics.StatusWait},
		{"blocked", []string{process.Blocked}, metrics.StatusWait},
		{"lock", []string{process.Lock}, metrics.StatusLock},
		{"first state wins", []string{process.Sleep, process.Running}, metrics.StatusSleep},
		{"unknown", []string{"daemon"}, metrics.StatusUnknown},
		{"empty", nil, metrics.StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFromStates(tt.states))
		})
	}
}

func TestIsLoopback(t *testing.T) {
	assert.True(t, isLoopback("lo"))
	assert.True(t, isLoopback("lo0"))
	assert.False(t, isLoopback("eth0"))
	assert.False(t, isLoopback("wlan0"))
	assert.False(t, isLoopback("en0"))
}

func TestSystem_ReadsLocalHost(t *testing.T) {
	if testing.Short() {
		t.Skip("reads the live host")
	}
	ctx := context.Background()

	s, err := New(ctx)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.RefreshCPU(ctx))
	require.NoError(t, s.RefreshMemory(ctx))
	require.NoError(t, s.RefreshNetworks(ctx))
	require.NoError(t, s.RefreshProcesses(ctx))

	assert.NotEmpty(t, s.CPUs())
	for _, core := range s.CPUs() {
		assert.GreaterOrEqual(t, core.Usage, 0.0)
	}
	assert.NotZero(t, s.Memory().Total)
	for _, iface := range s.Networks() {
		assert.False(t, isLoopback(iface.Name))
	}

	self, ok := s.Processes()[metrics.PID(os.Getpid())]
	require.True(t, ok, "own process should be listed")
	assert.NotEmpty(t, self.Name)
	assert.NotZero(t, self.Memory)
	assert.GreaterOrEqual(t, self.RunTime, time.Duration(0))
	assert.Positive(t, s.CachedHandles())

	// Handles survive a second pass.
	require.NoError(t, s.RefreshProcesses(ctx))
	_, ok = s.Processes()[metrics.PID(os.Getpid())]
	assert.True(t, ok)
}

func TestSystem_ClosedIsFatal(t *testing.T) {
	if testing.Short() {
		t.Skip("reads the live host")
	}
	s, err := New(context.Background())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	err = s.RefreshCPU(context.Background())
	assert.True(t, metrics.IsFatal(err))
}

func TestSystem_CancelledContextIsTransient(t *testing.T) {
	if testing.Short() {
		t.Skip("reads the live host")
	}
	s, err := New(context.Background())
	require.NoError(t, err)
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = s.RefreshMemory(ctx)
	assert.True(t, metrics.IsTransient(err))
}
