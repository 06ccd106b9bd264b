package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/digirain/internal/metrics"
	"github.com/san-kum/digirain/internal/rain"
)

const (
	defaultCols = 80
	defaultRows = 24
	sparkWidth  = 20
)

type TickMsg time.Time

// Options configures a Model.
type Options struct {
	FPS    int
	Theme  Theme
	Status bool
	// DriverOptions are passed to the driver, e.g. logging and spawn hooks.
	DriverOptions []rain.Option
}

// Model runs the effect inside a Bubble Tea program. Every TickMsg runs the
// pending frame, so the driver advances exactly once per tick.
type Model struct {
	driver    *rain.Driver
	loop      *rain.Loop
	surface   *CellSurface
	collector *metrics.Collector
	theme     Theme
	interval  time.Duration
	status    bool
	start     time.Time
	quitting  bool
}

// NewModel sizes field to a default terminal and draws the first frame.
func NewModel(field *rain.Field, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Theme.Name == "" {
		opts.Theme = DefaultTheme
	}
	m := Model{
		loop:     &rain.Loop{},
		surface:  NewCellSurface(defaultCols, defaultRows, field.Params()),
		theme:    opts.Theme,
		interval: time.Second / time.Duration(opts.FPS),
		status:   opts.Status,
		start:    time.Now(),
	}
	m.collector = metrics.NewCollector(m.surface)
	m.driver = rain.NewDriver(field, m.collector, m.loop, opts.DriverOptions...)
	m.resize(defaultCols, defaultRows)
	m.driver.Start()
	m.collector.Commit(m.driver.Stats())
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the effect.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		rows := msg.Height
		if m.status {
			rows--
		}
		m.resize(msg.Width, rows)
	case TickMsg:
		m.loop.Step(rain.Millis(time.Time(msg).Sub(m.start)))
		m.collector.Commit(m.driver.Stats())
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) resize(cols, rows int) {
	m.surface.Resize(cols, rows)
	w, h := m.surface.PixelSize()
	m.driver.Resize(w, h)
}

// View renders the TUI interface.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	view := m.surface.Render(m.theme)
	if !m.status {
		return view
	}
	return lipgloss.JoinVertical(lipgloss.Left, view, m.statusView())
}

func (m Model) statusView() string {
	s := m.driver.Stats()
	fps, _ := m.collector.Value("fps")
	cols, _ := m.surface.Size()
	line := statusLine(m.theme, "q quit",
		"fps", fmt.Sprintf("%.1f", fps),
		"bolts", fmt.Sprintf("%d", s.Live),
		"frames", fmt.Sprintf("%d", s.Frames),
	)
	if room := cols - lipgloss.Width(line) - 2; room > 0 {
		line += "  " + SparklineChart(m.collector.LiveSeries(), min(room, sparkWidth))
	}
	return strings.TrimRight(line, " ")
}

func (m Model) Driver() *rain.Driver          { return m.driver }
func (m Model) Surface() *CellSurface         { return m.surface }
func (m Model) Collector() *metrics.Collector { return m.collector }
