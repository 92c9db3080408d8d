package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/tusk/internal/errors"
	"github.com/rileyhilliard/tusk/internal/metrics"
)

func TestPickOptions(t *testing.T) {
	procs := []ProcessReport{
		{PID: 42, Name: "postgres", CPUPercent: 50, MemoryMB: 64},
		{PID: 7, Name: strings.Repeat("x", 40), CPUPercent: 1.25, MemoryMB: 8},
	}

	opts := pickOptions(procs)
	require.Len(t, opts, 2)

	assert.Equal(t, metrics.PID(42), opts[0].Value)
	assert.Contains(t, opts[0].Key, "42")
	assert.Contains(t, opts[0].Key, "postgres")
	assert.Contains(t, opts[0].Key, "50.0%")
	assert.Contains(t, opts[0].Key, "64.0MB")

	assert.Equal(t, metrics.PID(7), opts[1].Value)
	assert.Contains(t, opts[1].Key, strings.Repeat("x", 23)+"…")
}

func TestPickFormError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantNil bool
	}{
		{"aborted", huh.ErrUserAborted, true},
		{"wrapped abort", fmt.Errorf("form: %w", huh.ErrUserAborted), true},
		{"tty failure", stderrors.New("open /dev/tty: no such device"), false},
		{"timeout", huh.ErrTimeout, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pickFormError(tt.err)
			if tt.wantNil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrUI))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestPickCommand_InvalidTop(t *testing.T) {
	err := pickCommand(context.Background(), GlobalFlags{}, 0)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestDashboardCommand_InvalidTrack(t *testing.T) {
	err := dashboardCommand(context.Background(), GlobalFlags{}, "postgres", false)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrTrack))
}
