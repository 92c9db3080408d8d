package monitor

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/tusk/internal/history"
	"github.com/rileyhilliard/tusk/internal/metrics"
	"github.com/rileyhilliard/tusk/internal/units"
	"github.com/rileyhilliard/tusk/internal/util"
)

// Layout constants.
const (
	headerHeight       = 2
	footerHeight       = 1
	defaultWidth       = 80
	defaultTableHeight = 20
	graphHeight        = 4
	topProcessCount    = 5
	logLines           = 10
)

// renderDashboard renders the tab bar, the active tab and the status line.
func (m Model) renderDashboard() string {
	if m.showHelp {
		return m.renderHelpOverlay()
	}

	var body string
	switch m.tabs.Current() {
	case TabProcesses:
		body = m.renderProcesses()
	case TabTracked:
		body = m.renderTracked()
	case TabDebug:
		body = m.renderDebug()
	default:
		body = m.renderDefault()
	}

	return m.renderHeader() + "\n\n" + body + "\n" + m.renderFooter()
}

// renderHeader renders the tab bar with the tick counter on the right.
func (m Model) renderHeader() string {
	tabs := make([]string, 0, len(m.tabs.List()))
	for _, t := range m.tabs.List() {
		if t == m.tabs.Current() {
			tabs = append(tabs, m.styles.SelectedTab.Render(t.String()))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(t.String()))
		}
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	title := m.styles.Label.Render(fmt.Sprintf("tusk | tick %d", m.collector.Snapshot().Tick))

	gap := m.contentWidth() - lipgloss.Width(bar) - lipgloss.Width(title)
	if gap < 1 {
		gap = 1
	}
	return bar + strings.Repeat(" ", gap) + title
}

// renderFooter renders the pid input bar when open, otherwise the status
// notice or the key hints.
func (m Model) renderFooter() string {
	switch {
	case m.inputActive:
		return m.input.View()
	case m.status != "":
		return m.styles.Error.Render(m.status)
	default:
		return m.styles.Footer.Render(strings.Join([]string{
			"q quit",
			"tab next",
			"i track pid",
			"u untrack",
			"? help",
		}, " | "))
	}
}

// contentWidth is the terminal width, or a default before the first resize.
func (m Model) contentWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return m.width
}

// graphWidth is the number of braille cells that fit inside a section.
func (m Model) graphWidth() int {
	return max(m.contentWidth()-4, 1)
}

func (m Model) renderDefault() string {
	snap := m.collector.Snapshot()
	width := m.contentWidth()
	gw := m.graphWidth()

	cpu := m.styles.Section(
		snap.CPUName,
		fmt.Sprintf("%d MHz  %s", snap.CPUFrequency, formatPercent(snap.CurrentCPUUsage())),
		RenderBraille(snap.CPUUsage.Values(), gw, graphHeight, 100, m.styles.Graph1),
		width)

	in, out := snap.CurrentNetwork()
	inData := kiloBytes(snap.NetworkIn)
	outData := kiloBytes(snap.NetworkOut)
	top := Scale(append(append([]float64(nil), inData...), outData...), m.networkFloor.AsF64())
	net := m.styles.Section(
		"Network",
		fmt.Sprintf("in %s/s  out %s/s", formatRate(in), formatRate(out)),
		RenderBraille(inData, gw, graphHeight/2, top, m.styles.Graph2)+"\n"+
			RenderBraille(outData, gw, graphHeight/2, top, m.styles.Graph3),
		width)

	used := units.New[units.MB](snap.Memory.Used)
	total := units.New[units.MB](snap.Memory.Total)
	mem := m.styles.Section(
		"Memory",
		fmt.Sprintf("%s / %s", used.Human(), total.Human()),
		RenderGauge(gw, snap.MemoryPercent(), m.styles.Graph1, m.styles.Axis),
		width)

	return lipgloss.JoinVertical(lipgloss.Left, cpu, net, mem, m.renderTopProcesses(snap))
}

func (m Model) renderTopProcesses(snap *metrics.Snapshot) string {
	top := metrics.TopProcesses(snap.Processes, topProcessCount)
	lines := make([]string, 0, len(top)+1)
	lines = append(lines, m.styles.Label.Render(fmt.Sprintf("%-8s %-24s %7s %10s", "PID", "NAME", "CPU %", "MEMORY")))
	for _, p := range top {
		lines = append(lines, m.styles.Text.Render(fmt.Sprintf("%-8d %-24s %7s %10s",
			p.PID, util.Truncate(p.Name, 24), formatPercent(p.CPU), p.Memory.Format(1))))
	}
	return m.styles.Section("Top processes", util.CountNoun(len(snap.Processes), "process", "processes"),
		strings.Join(lines, "\n"), m.contentWidth())
}

func (m Model) renderProcesses() string {
	return m.table.View()
}

func (m Model) renderTracked() string {
	tp := m.collector.Tracked()
	if tp == nil {
		return m.styles.Label.Render("Nothing tracked. Press i to track a pid, or t on the Processes tab.")
	}

	width := m.contentWidth()
	gw := m.graphWidth()

	summary := m.styles.Text.Render(fmt.Sprintf(
		"status %s | run time %s | written %s | read %s",
		tp.Status, formatRunTime(tp.RunTime), tp.TotalWritten.Format(1), tp.TotalRead.Format(1)))

	cpuData := tp.CPU.Values()
	cpuNow, _ := tp.CPU.Latest()
	cpu := m.styles.Section("CPU", formatPercent(cpuNow),
		RenderBraille(cpuData, gw, graphHeight, Scale(cpuData, 100), m.styles.Graph1), width)

	memData := history.Float64s(tp.Memory, units.MegaByte.AsF64)
	memNow, _ := tp.Memory.Latest()
	mem := m.styles.Section("Memory", memNow.Format(1),
		RenderBraille(memData, gw, graphHeight, Scale(memData, m.memoryFloor.AsF64()), m.styles.Graph2), width)

	writeData := kiloBytes(tp.WriteRate)
	readData := kiloBytes(tp.ReadRate)
	writeNow, _ := tp.WriteRate.Latest()
	readNow, _ := tp.ReadRate.Latest()
	ioTop := Scale(append(append([]float64(nil), writeData...), readData...), 1)
	disk := m.styles.Section("Disk",
		fmt.Sprintf("write %s/s  read %s/s", formatRate(writeNow), formatRate(readNow)),
		RenderBraille(writeData, gw, graphHeight/2, ioTop, m.styles.Graph3)+"\n"+
			RenderBraille(readData, gw, graphHeight/2, ioTop, m.styles.Graph2),
		width)

	title := m.styles.SelectedTab.Render(fmt.Sprintf("%s (%d)", tp.Name, tp.PID))
	return lipgloss.JoinVertical(lipgloss.Left, title, summary, cpu, mem, disk)
}

func (m Model) renderDebug() string {
	width := m.contentWidth()
	gw := m.graphWidth()

	timing := func(name string, s *history.Series[time.Duration]) string {
		data := millis(s)
		last, _ := s.Latest()
		return m.styles.Section(name, formatMillis(last),
			RenderBraille(data, gw, graphHeight/2, Scale(data, 1), m.styles.Graph1), width)
	}

	sections := []string{
		timing("Refresh", m.timings.Refresh),
		timing("Draw", m.timings.Draw),
		timing("Event", m.timings.Event),
		timing("Real tick", m.timings.Real),
		m.renderLog(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderLog() string {
	if m.ring == nil {
		return m.styles.Label.Render("Logging to memory is off")
	}

	entries := m.ring.Entries()
	if len(entries) > logLines {
		entries = entries[len(entries)-logLines:]
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		style := m.styles.Text
		if e.Level == "error" || e.Level == "warning" {
			style = m.styles.Error
		}
		lines = append(lines, style.Render(fmt.Sprintf("%s %-7s %-10s %s",
			e.Time.Format("15:04:05"), e.Level, e.Component, e.Message)))
	}
	if len(lines) == 0 {
		lines = append(lines, m.styles.Label.Render("no log lines yet"))
	}
	return m.styles.Section("Log", util.CountNoun(m.ring.Len(), "line", "lines"), strings.Join(lines, "\n"), m.contentWidth())
}

func kiloBytes(s *history.Series[units.KiloByte]) []float64 {
	return history.Float64s(s, units.KiloByte.AsF64)
}

func formatPID(pid metrics.PID) string {
	return strconv.FormatUint(uint64(pid), 10)
}

func formatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64) + "%"
}

// formatRate renders a per-second KB quantity in the largest fitting unit.
func formatRate(q units.KiloByte) string {
	if q.AsMegaByte().AsF64() >= 1 {
		return q.AsMegaByte().Format(1)
	}
	return q.Format(1)
}

func formatRunTime(d time.Duration) string {
	return d.Truncate(time.Second).String()
}

func formatMillis(d time.Duration) string {
	return strconv.FormatFloat(float64(d)/float64(time.Millisecond), 'f', 2, 64) + "ms"
}
