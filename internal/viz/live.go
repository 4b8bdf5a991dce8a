package viz

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/pmorenz/oscilab/internal/config"
	"github.com/pmorenz/oscilab/internal/ode"
	"github.com/pmorenz/oscilab/internal/sim"
	"github.com/pmorenz/oscilab/internal/solvers"
)

const (
	canvasWidth     = 72
	canvasHeight    = 20
	historyCapacity = 240
	frameDelta      = 1.0 / 60.0
)

type TickMsg time.Time

// LiveModel is the bubbletea program around one running simulation. All
// play/pause, speed, solver and parameter changes route through the
// stepper and the shared settings object.
type LiveModel struct {
	stepper   *sim.Stepper
	settings  *config.Settings
	modelName string
	canvas    *Canvas

	initialState ode.State
	paramKeys    []string
	selected     int

	energyHistory []float64
	trail         []struct{ x, y int }
	lastErr       error
	showHelp      bool
}

func NewLiveModel(stepper *sim.Stepper, settings *config.Settings, modelName string) *LiveModel {
	m := &LiveModel{
		stepper:       stepper,
		settings:      settings,
		modelName:     modelName,
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		initialState:  stepper.Model().State(),
		energyHistory: make([]float64, 0, historyCapacity),
		trail:         make([]struct{ x, y int }, 0, 100),
	}

	if cfg, ok := stepper.Model().(ode.Configurable); ok {
		for k := range cfg.Params() {
			m.paramKeys = append(m.paramKeys, k)
		}
		sort.Strings(m.paramKeys)
	}

	// Hot-swap wiring: preference changes replace the active solver (or
	// its nominal step) without touching state or time.
	settings.Subscribe(func(s *config.Settings) {
		if s.Solver() != stepper.Kind() {
			m.lastErr = stepper.SwapSolver(s.Solver())
		}
		stepper.SetFixedStep(s.StepSize())
	})

	return m
}

func (m *LiveModel) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m *LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case TickMsg:
		if err := m.stepper.Step(frameDelta, false); err != nil {
			m.lastErr = err
		}
		m.observe()
		return m, tick()
	}
	return m, nil
}

func (m *LiveModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.stepper.TogglePlay()
	case ".":
		// Manual single step, always 1x.
		if err := m.stepper.Step(frameDelta, true); err != nil {
			m.lastErr = err
		}
		m.observe()
	case ",":
		// Manual step back.
		if err := m.stepper.Step(-frameDelta, true); err != nil {
			m.lastErr = err
		}
		m.observe()
	case "1":
		m.stepper.SetSpeed(sim.Slow)
	case "2":
		m.stepper.SetSpeed(sim.Normal)
	case "3":
		m.stepper.SetSpeed(sim.Fast)
	case "s":
		m.settings.SetSolver(nextKind(m.settings.Solver()))
	case "g":
		m.settings.SetGranularity(nextGranularity(m.settings.Granularity()))
	case "r":
		m.reset()
	case "tab":
		if len(m.paramKeys) > 0 {
			m.selected = (m.selected + 1) % len(m.paramKeys)
		}
	case "up", "k":
		m.adjustParam(1.05)
	case "down", "j":
		m.adjustParam(0.95)
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func nextKind(kind solvers.Kind) solvers.Kind {
	kinds := solvers.Kinds()
	for i, k := range kinds {
		if k == kind {
			return kinds[(i+1)%len(kinds)]
		}
	}
	return kinds[0]
}

func nextGranularity(g config.Granularity) config.Granularity {
	gs := config.Granularities()
	for i, cur := range gs {
		if cur == g {
			return gs[(i+1)%len(gs)]
		}
	}
	return gs[0]
}

func (m *LiveModel) adjustParam(factor float64) {
	cfg, ok := m.stepper.Model().(ode.Configurable)
	if !ok || len(m.paramKeys) == 0 {
		return
	}
	key := m.paramKeys[m.selected]
	val := cfg.Params()[key]
	if val == 0 {
		val = 0.01
	}
	if err := cfg.SetParam(key, val*factor); err != nil {
		m.lastErr = err
	}
}

func (m *LiveModel) reset() {
	m.stepper.Model().SetState(m.initialState.Clone())
	m.stepper.SetTime(0)
	m.energyHistory = m.energyHistory[:0]
	m.trail = m.trail[:0]
	m.lastErr = nil
}

func (m *LiveModel) observe() {
	h, ok := m.stepper.Model().(ode.Hamiltonian)
	if !ok {
		return
	}
	m.energyHistory = append(m.energyHistory, h.Energy(m.stepper.Model().State()))
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

func (m *LiveModel) View() string {
	m.canvas.Clear()
	x := m.stepper.Model().State()

	switch m.modelName {
	case "pendulum":
		m.drawPendulum(x)
	case "double-pendulum":
		m.drawDoublePendulum(x)
	case "spring":
		m.drawSpring(x)
	case "two-springs":
		m.drawTwoSprings(x)
	}

	left := canvasStyle.Render(m.canvas.String())
	right := statsStyle.Render(m.stats())

	view := headerStyle.Render("oscilab · "+m.modelName) + "\n" +
		lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	if graph := m.energyGraph(); graph != "" {
		view += "\n" + graphStyle.Render(graph)
	}

	if m.showHelp {
		view += "\n" + helpStyle.Render(
			"space play/pause · . step · , step back · 1/2/3 speed · s solver · g step size\n"+
				"tab select param · up/down adjust · r reset · q quit")
	} else {
		view += "\n" + helpStyle.Render("? help · q quit")
	}
	return view
}

func (m *LiveModel) stats() string {
	var b strings.Builder

	status := runningStyle.Render("running")
	if !m.stepper.Playing() {
		status = pausedStyle.Render("paused")
	}
	b.WriteString(status + "\n\n")

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}

	row("time", fmt.Sprintf("%.3f s", m.stepper.Time()))
	row("solver", string(m.stepper.Kind()))
	row("step size", fmt.Sprintf("%.4g s (%s)", m.settings.StepSize(), m.settings.Granularity()))
	row("speed", fmt.Sprintf("%gx", float64(m.stepper.CurrentSpeed())))

	if h, ok := m.stepper.Model().(ode.Hamiltonian); ok {
		row("energy", fmt.Sprintf("%.6f J", h.Energy(m.stepper.Model().State())))
	}

	if cfg, ok := m.stepper.Model().(ode.Configurable); ok && len(m.paramKeys) > 0 {
		b.WriteString("\n")
		params := cfg.Params()
		for i, key := range m.paramKeys {
			line := fmt.Sprintf("%-10s %.4g", key, params[key])
			if i == m.selected {
				line = activeParamStyle.Render("> " + line)
			} else {
				line = valueStyle.Render("  " + line)
			}
			b.WriteString(line + "\n")
		}
	}

	if m.lastErr != nil {
		b.WriteString("\n" + pausedStyle.Render(m.lastErr.Error()))
	}

	return b.String()
}

func (m *LiveModel) energyGraph() string {
	if len(m.energyHistory) < 2 {
		return ""
	}
	return asciigraph.Plot(m.energyHistory,
		asciigraph.Height(6),
		asciigraph.Width(100),
		asciigraph.Caption("total energy"),
	)
}

// Sub-pixel space is (canvasWidth*2) x (canvasHeight*4).
const (
	pxW = canvasWidth * 2
	pxH = canvasHeight * 4
)

func (m *LiveModel) drawPendulum(x ode.State) {
	if len(x) < 2 {
		return
	}
	theta := x[0]
	pivotX, pivotY := pxW/2, 8
	length := 50.0
	bobX := pivotX + int(length*math.Sin(theta))
	bobY := pivotY + int(length*math.Cos(theta))

	m.pushTrail(bobX, bobY)
	m.canvas.Line(pivotX, pivotY, bobX, bobY)
	m.drawBob(bobX, bobY)
}

func (m *LiveModel) drawDoublePendulum(x ode.State) {
	if len(x) < 4 {
		return
	}
	theta1, theta2 := x[0], x[1]
	pivotX, pivotY := pxW/2, 8
	length := 28.0

	midX := pivotX + int(length*math.Sin(theta1))
	midY := pivotY + int(length*math.Cos(theta1))
	endX := midX + int(length*math.Sin(theta2))
	endY := midY + int(length*math.Cos(theta2))

	m.pushTrail(endX, endY)
	m.canvas.Line(pivotX, pivotY, midX, midY)
	m.canvas.Line(midX, midY, endX, endY)
	m.drawBob(midX, midY)
	m.drawBob(endX, endY)
}

func (m *LiveModel) drawSpring(x ode.State) {
	if len(x) < 2 {
		return
	}
	anchorX, anchorY := pxW/2, 4
	rest := 30.0
	bobY := anchorY + int(rest+x[0]*20)

	m.drawCoil(anchorX, anchorY, bobY)
	m.drawBob(anchorX, bobY)
}

func (m *LiveModel) drawTwoSprings(x ode.State) {
	if len(x) < 4 {
		return
	}
	wallX, y := 8, pxH/2
	rest := 40.0
	bob1X := wallX + int(rest+x[0]*20)
	bob2X := bob1X + int(rest+(x[1]-x[0])*20)

	m.canvas.Line(wallX, y-10, wallX, y+10)
	m.canvas.Line(wallX, y, bob1X, y)
	m.canvas.Line(bob1X, y, bob2X, y)
	m.drawBob(bob1X, y)
	m.drawBob(bob2X, y)
}

func (m *LiveModel) drawCoil(x, top, bottom int) {
	// Zigzag between anchor and bob.
	segments := 6
	span := bottom - top
	if span <= 0 {
		return
	}
	prevX, prevY := x, top
	for i := 1; i <= segments; i++ {
		nx := x + 6
		if i%2 == 0 {
			nx = x - 6
		}
		ny := top + span*i/segments
		if i == segments {
			nx = x
		}
		m.canvas.Line(prevX, prevY, nx, ny)
		prevX, prevY = nx, ny
	}
}

func (m *LiveModel) drawBob(x, y int) {
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			m.canvas.Set(x+dx, y+dy)
		}
	}
}

func (m *LiveModel) pushTrail(x, y int) {
	m.trail = append(m.trail, struct{ x, y int }{x, y})
	if len(m.trail) > 100 {
		m.trail = m.trail[1:]
	}
	for _, p := range m.trail {
		m.canvas.Set(p.x, p.y)
	}
}
