package monitor

// Tab identifies one screen of the dashboard.
type Tab int

const (
	TabDefault Tab = iota
	TabProcesses
	TabTracked
	TabDebug
)

// String returns the label shown in the tab bar.
func (t Tab) String() string {
	switch t {
	case TabDefault:
		return "Default"
	case TabProcesses:
		return "Processes"
	case TabTracked:
		return "Tracked"
	case TabDebug:
		return "Debug"
	default:
		return "Default"
	}
}

// Tabs is a cyclic cursor over the visible tabs.
type Tabs struct {
	list  []Tab
	index int
}

// NewTabs returns the tab bar, starting on the default tab. The debug tab is
// only part of the cycle when debug is set.
func NewTabs(debug bool) Tabs {
	t := Tabs{}
	t.SetDebug(debug)
	return t
}

// Current returns the active tab.
func (t Tabs) Current() Tab {
	return t.list[t.index]
}

// List returns the visible tabs in order.
func (t Tabs) List() []Tab {
	return t.list
}

// Next moves to the following tab, wrapping around.
func (t *Tabs) Next() {
	t.index = (t.index + 1) % len(t.list)
}

// Prev moves to the preceding tab, wrapping around.
func (t *Tabs) Prev() {
	t.index = (t.index + len(t.list) - 1) % len(t.list)
}

// Debug reports whether the debug tab is visible.
func (t Tabs) Debug() bool {
	return len(t.list) > int(TabDebug)
}

// SetDebug shows or hides the debug tab. Hiding it while it is active falls
// back to the default tab.
func (t *Tabs) SetDebug(on bool) {
	t.list = []Tab{TabDefault, TabProcesses, TabTracked}
	if on {
		t.list = append(t.list, TabDebug)
	}
	if t.index >= len(t.list) {
		t.index = 0
	}
}

// Select makes tab active if it is visible.
func (t *Tabs) Select(tab Tab) {
	for i, v := range t.list {
		if v == tab {
			t.index = i
			return
		}
	}
}
