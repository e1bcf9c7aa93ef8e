package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-worms/internal/core"
	"github.com/vovakirdan/tui-worms/internal/registry"
	"github.com/vovakirdan/tui-worms/internal/sim"
)

// maxFrame caps the time fed to the simulation in one frame, so a stalled
// terminal does not release a burst of steps.
const maxFrame = 250 * time.Millisecond

var (
	hudStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	noteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Options configures the viewer.
type Options struct {
	FrameRate int // frames per second, 60 when zero
	Logger    *log.Logger
}

// Model is the Bubble Tea model that drives and draws a world.
type Model struct {
	world     *sim.World
	scenario  registry.Scenario
	screen    *core.Screen
	keys      KeyMap
	help      help.Model
	input     core.InputFrame
	frameRate int
	logger    *log.Logger

	last     time.Time
	paused   bool
	quitting bool
	note     string
	err      error
}

// NewModel creates a viewer for world. The world is populated with
// scenario when the program starts and again on restart.
func NewModel(world *sim.World, scenario registry.Scenario, opts Options) Model {
	if opts.FrameRate <= 0 {
		opts.FrameRate = core.DefaultFrameRate
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	g := world.Grid()
	return Model{
		world:     world,
		scenario:  scenario,
		screen:    core.NewScreen(g.Width()+2, g.Height()+2),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		input:     core.NewInputFrame(),
		frameRate: opts.FrameRate,
		logger:    opts.Logger,
	}
}

// Init populates the world and starts the frame loop.
func (m Model) Init() tea.Cmd {
	m.world.Populate(m.scenario)
	return tickCmd(m.frameRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Restart):
		m.world.Populate(m.scenario)
		m.note = "restarted"
		return m, nil
	case key.Matches(msg, m.keys.Step):
		if m.paused {
			if err := m.world.Step(); err != nil {
				return m.fail(err)
			}
		}
		return m, nil
	}

	action := m.keys.Action(msg)
	switch action {
	case core.ActionNone:
		return m, nil
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionPause:
		m.paused = !m.paused
		return m, nil
	}

	m.input.Set(action)
	return m, nil
}

// commandOrder is the order queued player actions are applied in.
var commandOrder = []core.Action{
	core.ActionRelease,
	core.ActionPossess,
	core.ActionUp,
	core.ActionDown,
	core.ActionLeft,
	core.ActionRight,
	core.ActionDrop,
}

// applyInput hands the actions queued since the last frame to the player.
func (m *Model) applyInput() {
	p := m.world.Player()
	for _, a := range commandOrder {
		if !m.input.Has(a) {
			continue
		}
		ok := p.Command(a)
		m.note = commandNote(a, ok, p)
		m.logger.Debug("command", "action", a, "ok", ok)
	}
	m.input.Clear()
}

func commandNote(a core.Action, ok bool, p *sim.Player) string {
	switch a {
	case core.ActionPossess:
		if !ok {
			return "no free worm in range"
		}
		return fmt.Sprintf("possessed worm #%d", p.Worm().ID())
	case core.ActionRelease:
		if ok {
			return "released"
		}
	case core.ActionDrop:
		if ok && p.Cluster() != nil {
			return fmt.Sprintf("steering cluster #%d", p.Cluster().ID())
		}
	}
	if !ok && p.Active() {
		return "blocked"
	}
	return ""
}

func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.last.IsZero() {
		m.last = now
	}
	dt := now.Sub(m.last)
	m.last = now
	if dt > maxFrame {
		dt = maxFrame
	}

	m.applyInput()
	if !m.paused {
		if _, err := m.world.Advance(dt.Seconds()); err != nil {
			return m.fail(err)
		}
	}
	return m, tickCmd(m.frameRate)
}

func (m Model) fail(err error) (tea.Model, tea.Cmd) {
	m.logger.Error("simulation stopped", "err", err)
	m.err = err
	m.quitting = true
	return m, tea.Quit
}

// Paused reports whether the simulation is paused.
func (m Model) Paused() bool {
	return m.paused
}

// Err returns the error that stopped the simulation, if any.
func (m Model) Err() error {
	return m.err
}

// View renders the world with a status line and help.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.screen.DrawBox(core.NewRect(0, 0, m.screen.Width(), m.screen.Height()))
	m.screen.DrawText(2, 0, " "+m.scenario.Title()+" ")
	m.world.Render(m.screen, 1, 1)
	if m.paused {
		m.screen.DrawTextCentered(m.screen.Height()/2, " PAUSED ")
	}

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(hudStyle.Render(m.world.Status()))
	if m.note != "" {
		b.WriteString("  ")
		b.WriteString(noteStyle.Render(m.note))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Run plays scenario in world until the user quits. A corrupt grid stops
// the program and is returned.
func Run(world *sim.World, scenario registry.Scenario, opts Options) error {
	p := tea.NewProgram(
		NewModel(world, scenario, opts),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok && m.Err() != nil {
		return errors.Join(errors.New("tui: simulation aborted"), m.Err())
	}
	return nil
}
