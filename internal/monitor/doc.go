// Package monitor implements the tusk terminal dashboard.
//
// The dashboard uses the Bubble Tea framework (Model-Update-View):
//
//   - Model: holds the collector, the active tab, the process table and the
//     pid input bar
//   - Update: processes keystrokes, tick messages and theme reloads
//   - View: renders the active tab from the collector's snapshot
//
// # Message Flow
//
//  1. tickMsg fires every metrics.TickPeriod
//  2. Update calls Collector.Tick synchronously, so the snapshot never changes
//     while View reads it
//  3. View renders the new snapshot
//
// A transient source error is logged and the tick is skipped. A fatal one
// quits the program; Err reports it afterwards.
//
// # Tabs
//
//	Default    - CPU, network and memory graphs plus the busiest processes
//	Processes  - every process, sortable table, Enter tracks the row
//	Tracked    - graphs for the tracked process
//	Debug      - tick timings and recent log lines (toggled with d)
//
// # Keyboard Shortcuts
//
//	q, Ctrl+C          - Quit
//	Tab / Right        - Next tab
//	Shift+Tab / Left   - Previous tab
//	i                  - Enter a pid to track
//	t, Enter           - Track the selected process
//	u                  - Stop tracking
//	d                  - Toggle the debug tab
//	?                  - Toggle help overlay
package monitor
