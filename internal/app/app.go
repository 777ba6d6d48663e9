package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"tracktor.local/steer/internal/config"
	"tracktor.local/steer/internal/field"
	"tracktor.local/steer/internal/sim"
	"tracktor.local/steer/internal/ui"
)

// shared holds state shared between the Bubble Tea model copies and main.go.
// Because Bubble Tea uses value receivers, pointer fields ensure all copies
// see the same underlying data.
type shared struct {
	world *sim.World
	clock *sim.Clock
	log   *zap.Logger
}

// AppModel is the root Bubble Tea model for the steering visualizer.
type AppModel struct {
	width  int
	height int

	running bool
	opts    field.Options
	stepDt  float64 // dt of a single manual step

	shared *shared

	// Cached snapshot
	snap sim.Snapshot
}

// New creates a new AppModel driving world. stepDt is the interval used for
// single steps while paused.
func New(world *sim.World, log *zap.Logger, stepDt float64) AppModel {
	if log == nil {
		log = zap.NewNop()
	}
	return AppModel{
		running: true,
		opts:    field.DefaultOptions(),
		stepDt:  stepDt,
		shared: &shared{
			world: world,
			clock: sim.NewClock(),
			log:   log,
		},
		snap: world.Snapshot(),
	}
}

func (m AppModel) Init() tea.Cmd {
	return tickCmd()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		dt := m.shared.clock.Tick()
		if m.running {
			m.shared.world.Step(dt)
		}
		m.snap = m.shared.world.Snapshot()
		return m, tickCmd()
	}

	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "Q", "ctrl+c":
		m.logSummary()
		return m, tea.Quit

	case " ":
		m.running = !m.running
		m.shared.clock.Reset()

	case "n", "N":
		if !m.running {
			m.shared.world.Step(m.stepDt)
			m.snap = m.shared.world.Snapshot()
		}

	case "r", "R":
		m.shared.world.Reset()
		m.shared.clock.Reset()
		m.snap = m.shared.world.Snapshot()
		m.shared.log.Info("simulation reset")

	case "c", "C":
		m.opts.Curve = !m.opts.Curve

	case "h", "H":
		m.opts.Handles = !m.opts.Handles

	case "t", "T":
		m.opts.Trail = !m.opts.Trail

	case "m", "M":
		m.opts.Margins = !m.opts.Margins
	}

	return m, nil
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing " + config.AppName + "..."
	}

	menuH := 1
	statusH := 1
	bodyH := m.height - menuH - statusH
	if bodyH < 5 {
		bodyH = 5
	}

	fieldW := m.width * 2 / 3
	if fieldW < 30 {
		fieldW = 30
	}
	sideW := m.width - fieldW
	if sideW < 24 {
		sideW = 24
		fieldW = m.width - sideW
	}

	params := m.shared.world.Params()
	menuBar := ui.RenderMenuBar(m.width, params.Planner.ReversalPolicy, m.running)

	innerW := fieldW - 4
	innerH := bodyH - 4
	if innerW < 5 {
		innerW = 5
	}
	if innerH < 3 {
		innerH = 3
	}
	fieldContent := field.Render(innerW, innerH, m.snap, m.opts)
	legend := field.RenderLegend(innerW)
	fieldPanel := ui.RenderFieldPanel(fieldW, bodyH, fieldContent, legend)

	listH := len(m.snap.Obstacles) + 4
	if listH > bodyH/2 {
		listH = bodyH / 2
	}
	side := ui.ComposeSide(
		ui.RenderTelemetry(m.snap, sideW, bodyH-listH, params.CruiseSpeed),
		ui.RenderObstacleList(m.snap, sideW, listH),
	)

	statusBar := ui.RenderStatusBar(m.width, m.running, m.snap.Stats, m.shared.world.Seed())

	return ui.ComposeLayout(menuBar, fieldPanel, side, statusBar)
}

// Running reports whether the simulation advances on ticks.
func (m AppModel) Running() bool { return m.running }

// Options returns the active field layers.
func (m AppModel) Options() field.Options { return m.opts }

// Snapshot returns the cached frame state.
func (m AppModel) Snapshot() sim.Snapshot { return m.snap }

func (m AppModel) logSummary() {
	st := m.shared.world.Stats()
	m.shared.log.Info("simulation stopped",
		zap.Uint64("ticks", st.Ticks),
		zap.Int("arrivals", st.Arrivals),
		zap.Float64("sim_time", st.SimTime),
		zap.Float64("travelled", st.Travelled),
		zap.Int("relaxed", st.Relaxed),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(config.TargetFPS), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
