package monitor

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/tusk/internal/config"
	"github.com/rileyhilliard/tusk/internal/history"
	"github.com/rileyhilliard/tusk/internal/logger"
	"github.com/rileyhilliard/tusk/internal/metrics"
	"github.com/rileyhilliard/tusk/internal/ui"
	"github.com/rileyhilliard/tusk/internal/units"
)

// Options configures a dashboard Model.
type Options struct {
	Collector *metrics.Collector // required
	Ring      *logger.Ring       // log lines for the debug tab, may be nil
	Log       logger.Logger
	Theme     config.Theme

	// Smallest Y-axis tops for the network and tracked memory graphs.
	NetworkFloor units.KiloByte
	MemoryFloor  units.MegaByte

	Debug bool        // show the debug tab
	Track metrics.PID // start tracking this pid; 0 tracks nothing

	// Samples kept per debug timing graph.
	TimingCapacity int
}

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	ctx       context.Context
	collector *metrics.Collector
	ring      *logger.Ring
	log       logger.Logger

	styles  Styles
	tabs    Tabs
	timings *Timings
	table   table.Model
	input   textinput.Model

	networkFloor units.KiloByte
	memoryFloor  units.MegaByte

	width       int
	height      int
	lastTick    time.Time
	inputActive bool
	showHelp    bool
	quitting    bool
	status      string // one-line notice, e.g. a failed track request
	err         error  // fatal source error
}

// tickMsg drives one collector tick.
type tickMsg time.Time

// ThemeMsg replaces the active theme. Send it with tea.Program.Send.
type ThemeMsg config.Theme

// processColumns are the process table columns.
var processColumns = []ui.TableColumn{
	{Title: "PID", Width: 8},
	{Title: "Name", Width: 24},
	{Title: "Memory", Width: 10},
	{Title: "CPU %", Width: 7},
	{Title: "Run Time", Width: 10},
	{Title: "Status", Width: 8},
	{Title: "Written", Width: 10},
	{Title: "Read", Width: 10},
}

// NewModel creates a dashboard over a primed collector.
func NewModel(ctx context.Context, opts Options) (Model, error) {
	if opts.Log == nil {
		opts.Log = logger.Noop()
	}
	if opts.TimingCapacity == 0 {
		opts.TimingCapacity = history.DefaultCapacity
	}

	timings, err := NewTimings(opts.TimingCapacity)
	if err != nil {
		return Model{}, err
	}

	input := textinput.New()
	input.Prompt = "pid: "
	input.Placeholder = "1234"
	input.CharLimit = 10

	m := Model{
		ctx:          ctx,
		collector:    opts.Collector,
		ring:         opts.Ring,
		log:          opts.Log,
		styles:       NewStyles(opts.Theme),
		tabs:         NewTabs(opts.Debug),
		timings:      timings,
		table:        ui.NewTable(processColumns, nil),
		input:        input,
		networkFloor: opts.NetworkFloor,
		memoryFloor:  opts.MemoryFloor,
	}
	m.table.Focus()
	m.table.SetHeight(defaultTableHeight)
	m.table.SetStyles(m.styles.Table())
	m.refreshTable()

	if opts.Track != 0 && !m.collector.Track(opts.Track) {
		m.status = "pid " + formatPID(opts.Track) + " is not running"
	}

	return m, nil
}

// Init starts the tick timer.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, cmd := m.HandleKeyMsg(msg); handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetWidth(msg.Width)
		m.table.SetHeight(max(msg.Height-headerHeight-footerHeight, 3))

	case tickMsg:
		return m.tick(time.Time(msg))

	case ThemeMsg:
		m.styles = NewStyles(config.Theme(msg))
		m.table.SetStyles(m.styles.Table())
	}

	return m, nil
}

// tick advances the collector once. Transient source errors skip the tick;
// a fatal one ends the program.
func (m Model) tick(now time.Time) (tea.Model, tea.Cmd) {
	if !m.lastTick.IsZero() {
		m.timings.Real.Push(now.Sub(m.lastTick))
	}
	m.lastTick = now

	if err := m.collector.Tick(m.ctx); err != nil {
		if metrics.IsFatal(err) {
			m.log.Error("metric source failed: %v", err)
			m.err = err
			m.quitting = true
			return m, tea.Quit
		}
		m.log.Warn("tick skipped: %v", err)
		return m, tickCmd()
	}

	m.timings.Refresh.Push(m.collector.Snapshot().RefreshTime)
	m.refreshTable()
	return m, tickCmd()
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	start := time.Now()
	out := m.renderDashboard()
	m.timings.Draw.Push(time.Since(start))
	return out
}

// Err returns the error that stopped the dashboard, if any.
func (m Model) Err() error {
	return m.err
}

// ActiveTab returns the tab on screen.
func (m Model) ActiveTab() Tab {
	return m.tabs.Current()
}

// Status returns the current status line notice.
func (m Model) Status() string {
	return m.status
}

func tickCmd() tea.Cmd {
	return tea.Tick(metrics.TickPeriod, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refreshTable loads the latest process list into the table, keeping the
// cursor on the same row index.
func (m *Model) refreshTable() {
	procs := m.collector.Snapshot().Processes
	rows := make([]table.Row, len(procs))
	for i, p := range procs {
		rows[i] = table.Row{
			formatPID(p.PID),
			p.Name,
			p.Memory.Format(1),
			formatPercent(p.CPU),
			formatRunTime(p.RunTime),
			string(p.Status),
			p.TotalWritten.Format(1),
			p.TotalRead.Format(1),
		}
	}
	m.table.SetRows(rows)
}
