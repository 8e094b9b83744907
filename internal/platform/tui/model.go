package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilesim/internal/core"
	"github.com/vovakirdan/tilesim/internal/engine"
	"github.com/vovakirdan/tilesim/internal/sim"
	"github.com/vovakirdan/tilesim/internal/storage"
)

// chromeLines is the number of terminal lines used around the world view:
// the status line above it and the help line below it.
const chromeLines = 2

var (
	hudTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	hudHealth     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	hudCoins      = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	hudDim        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	hudAlert      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("124")).Padding(0, 1)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Model is the Bubble Tea model that plays one map.
type Model struct {
	session *sim.Session
	store   *storage.Store
	logger  *log.Logger
	config  core.RuntimeConfig
	screen  *core.Screen
	keys    KeyMap
	help    help.Model
	held    *heldButtons

	width  int // Terminal size; 0 until the first resize
	height int

	quitting   bool
	backToMenu bool
	runSaved   bool
	lastRunID  string
}

// NewModel creates a viewer for session. store and logger may be nil.
func NewModel(session *sim.Session, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	h := help.New()
	h.ShowAll = false

	m := Model{
		session: session,
		store:   store,
		logger:  logger,
		config:  cfg,
		screen:  core.NewScreen(1, 1),
		keys:    NewKeyMap(cfg.Bindings),
		help:    h,
		held:    newHeldButtons(cfg.KeyReleaseTicks),
	}
	m.fitView()
	return m
}

// fitView sizes the world view and the screen buffer to the configured
// view, shrunk to what the terminal can show.
func (m *Model) fitView() {
	w := m.session.World
	cellW, cellH := cellSize(w.Map())

	cols := max(m.config.ViewW/cellW, 1)
	rows := max(m.config.ViewH/cellH, 1)
	if m.width > 0 {
		cols = max(min(cols, m.width), 1)
	}
	if m.height > 0 {
		rows = max(min(rows, m.height-chromeLines), 1)
	}

	w.SetView(cols*cellW, rows*cellH)
	m.screen.Resize(cols, rows)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.fitView()
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	w := m.session.World

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.saveRun()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.saveRun()
		m.backToMenu = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Pause):
		w.Queue(engine.SetPaused{Paused: !w.Paused()})
		return m, nil

	case key.Matches(msg, m.keys.Restart):
		m.restart()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if button, ok := m.keys.Button(msg); ok && !w.Paused() {
		m.held.press(button, w)
	}
	return m, nil
}

// handleTick releases expired buttons, steps the world and records the run
// once it is over.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	m.held.tick(m.session.World)
	m.session.Step()

	if m.session.Over() {
		m.saveRun()
	}

	return m, tickCmd(m.config.TickRate)
}

func (m *Model) restart() {
	m.saveRun()
	m.held.releaseAll(m.session.World)
	if err := m.session.Restart(); err != nil {
		m.logger.Error("restart failed", "map", m.session.MapID, "error", err)
		return
	}
	m.runSaved = false
	m.fitView()
}

// saveRun records the current run once. Runs that never ticked are skipped.
func (m *Model) saveRun() {
	if m.runSaved || m.session.World.Stats().Ticks == 0 {
		return
	}
	m.runSaved = true
	if m.store == nil {
		return
	}
	id, err := m.session.Save(m.store)
	if err != nil {
		m.logger.Warn("could not save run", "map", m.session.MapID, "error", err)
		return
	}
	m.lastRunID = id
	m.logger.Info("run saved", "id", id, "map", m.session.MapID, "ticks", m.session.World.Stats().Ticks)
}

// View renders the status line, the world and the help line.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	w := m.session.World
	DrawWorld(m.screen, w)

	background := core.ColorDefault
	if mp := w.Map(); mp != nil {
		background = mp.BackgroundColor
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.statusLine(),
		RenderScreenOn(m.screen, background),
		helpStyle.Render(m.help.View(m.keys)),
	)
}

func (m Model) statusLine() string {
	w := m.session.World

	title := m.session.MapID
	if mp := w.Map(); mp != nil && mp.Name != "" {
		title = mp.Name
	}

	parts := []string{hudTitleStyle.Render(title)}
	if m.session.PlayerAlive() {
		parts = append(parts, hudHealth.Render(strings.Repeat("♥", max(m.session.Health(), 0))))
	}
	parts = append(parts,
		hudCoins.Render(fmt.Sprintf("◎ %d", m.session.Coins())),
		hudDim.Render(fmt.Sprintf("t %d", w.Frame())),
	)

	switch {
	case m.session.Over():
		parts = append(parts, hudAlert.Render("GAME OVER  r: restart  esc: maps"))
	case w.Paused():
		parts = append(parts, hudAlert.Render("PAUSED"))
	}
	return strings.Join(parts, "  ")
}

// IsQuitting returns true if user requested to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested the map menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// LastRunID returns the ID of the run saved last, if any.
func (m Model) LastRunID() string {
	return m.lastRunID
}

// Run plays session in the terminal until the user quits or goes back.
// It reports whether the user asked for the map menu.
func Run(session *sim.Session, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) (backToMenu bool, err error) {
	model := NewModel(session, store, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
