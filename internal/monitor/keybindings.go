package monitor

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/tusk/internal/metrics"
)

// Key bindings as constants for consistency.
const (
	KeyQuit        = "q"
	KeyQuitAlt     = "ctrl+c"
	KeyNextTab     = "tab"
	KeyNextTabAlt  = "right"
	KeyPrevTab     = "shift+tab"
	KeyPrevTabAlt  = "left"
	KeyInputPID    = "i"
	KeyTrack       = "t"
	KeyTrackAlt    = "enter"
	KeyUntrack     = "u"
	KeyToggleDebug = "d"
	KeyToggleHelp  = "?"
	KeySubmit      = "enter"
	KeyCancel      = "esc"
)

// HandleKeyMsg processes keyboard input and returns updated model state and command.
// Returns true if the key was handled, false otherwise.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	start := time.Now()
	defer func() { m.timings.Event.Push(time.Since(start)) }()

	key := msg.String()

	// The pid bar swallows everything while it is open.
	if m.inputActive {
		return true, m.handleInputKey(msg)
	}

	if key == KeyToggleHelp {
		m.showHelp = !m.showHelp
		return true, nil
	}
	if m.showHelp && key == KeyCancel {
		m.showHelp = false
		return true, nil
	}

	switch key {
	case KeyQuit, KeyQuitAlt:
		m.quitting = true
		return true, tea.Quit

	case KeyNextTab, KeyNextTabAlt:
		m.tabs.Next()
		return true, nil

	case KeyPrevTab, KeyPrevTabAlt:
		m.tabs.Prev()
		return true, nil

	case KeyInputPID:
		m.inputActive = true
		m.status = ""
		m.input.Reset()
		return true, m.input.Focus()

	case KeyUntrack:
		m.collector.Untrack()
		m.status = ""
		return true, nil

	case KeyToggleDebug:
		m.tabs.SetDebug(!m.tabs.Debug())
		return true, nil

	case KeyTrack, KeyTrackAlt:
		if m.tabs.Current() != TabProcesses {
			return key == KeyTrack, nil
		}
		row := m.table.SelectedRow()
		if len(row) == 0 {
			return true, nil
		}
		m.track(row[0])
		return true, nil
	}

	// Navigation keys go to the process table.
	if m.tabs.Current() == TabProcesses {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return true, cmd
	}

	return false, nil
}

// handleInputKey drives the pid input bar.
func (m *Model) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case KeySubmit:
		value := strings.TrimSpace(m.input.Value())
		m.closeInput()
		if value != "" {
			m.track(value)
		}
		return nil

	case KeyCancel:
		m.closeInput()
		return nil

	case KeyQuitAlt:
		m.quitting = true
		return tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) closeInput() {
	m.inputActive = false
	m.input.Blur()
	m.input.Reset()
}

// track asks the collector to follow the pid written in value and reports a
// failure on the status line.
func (m *Model) track(value string) {
	pid, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		m.status = fmt.Sprintf("%q is not a pid", value)
		return
	}
	if !m.collector.Track(metrics.PID(pid)) {
		m.status = fmt.Sprintf("pid %d is not running", pid)
		return
	}
	m.status = ""
	m.tabs.Select(TabTracked)
}
