package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tilesim/internal/assets"
	"github.com/vovakirdan/tilesim/internal/storage"
)

// MenuItem is one selectable map.
type MenuItem struct {
	MapID string
	Title string
	Runs  int // Recorded runs, from storage
	Best  int // Most coins collected in one run
}

// MenuKeyMap defines the key bindings of the map menu.
type MenuKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	History key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.History, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Select}, {k.History, k.Quit}}
}

// DefaultMenuKeyMap returns default key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		History: key.NewBinding(
			key.WithKeys("tab", "h"),
			key.WithHelp("tab", "history"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MenuModel is the Bubble Tea model for the map picker.
type MenuModel struct {
	items       []MenuItem
	cursor      int
	width       int
	height      int
	keys        MenuKeyMap
	help        help.Model
	quitting    bool
	selected    *MenuItem
	openHistory bool
}

// NewMenuModel lists the maps of pack with their run statistics.
// store may be nil.
func NewMenuModel(pack *assets.Pack, store *storage.Store, width, height int) MenuModel {
	var stats map[string]*storage.MapStats
	if store != nil {
		// Missing stats only hide the counters
		stats, _ = store.AllMapStats()
	}

	ids := pack.MapIDs()
	items := make([]MenuItem, 0, len(ids))
	for _, id := range ids {
		item := MenuItem{MapID: id, Title: id}
		if m, ok := pack.Map(id); ok && m.Name != "" {
			item.Title = m.Name
		}
		if st, ok := stats[id]; ok {
			item.Runs = st.Runs
			item.Best = st.BestCoins
		}
		items = append(items, item)
	}

	return MenuModel{
		items:  items,
		width:  width,
		height: height,
		keys:   DefaultMenuKeyMap(),
		help:   help.New(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case key.Matches(msg, m.keys.History):
		m.openHistory = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(hudTitleStyle.Render(centerText("  T I L E S I M  ", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a map", m.width))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(hudDim.Render(centerText("No maps loaded.", m.width)))
		b.WriteString("\n")
	}

	for i, item := range m.items {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}

		line := fmt.Sprintf("%s%-20s", cursor, item.Title)
		if item.Runs > 0 {
			line += fmt.Sprintf(" %3d runs  best ◎ %d", item.Runs, item.Best)
		}
		b.WriteString(style.Render(centerText(line, m.width)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(centerText(m.help.View(m.keys), m.width)))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsHistory returns true if user requested the run history.
func (m MenuModel) WantsHistory() bool {
	return m.openHistory
}

// Size returns the terminal size last seen by the menu.
func (m MenuModel) Size() (int, int) {
	return m.width, m.height
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	MapID        string
	Width        int
	Height       int
	WantsHistory bool
	Quit         bool
}

// RunMenu runs the map menu and returns the selection result.
func RunMenu(pack *assets.Pack, store *storage.Store, width, height int) (MenuResult, error) {
	model := NewMenuModel(pack, store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Width: width, Height: height}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Width: width, Height: height, Quit: true}, nil
	}

	result := MenuResult{}
	result.Width, result.Height = m.Size()

	switch {
	case m.WantsHistory():
		result.WantsHistory = true
	case m.IsQuitting(), m.Selected() == nil:
		result.Quit = true
	default:
		result.MapID = m.Selected().MapID
	}
	return result, nil
}
