package tui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tilesim/internal/core"
	"github.com/vovakirdan/tilesim/internal/engine"
)

// KeyMap holds the viewer controls and the game buttons bound in the
// config. It implements help.KeyMap.
type KeyMap struct {
	Quit    key.Binding
	Pause   key.Binding
	Restart key.Binding
	Back    key.Binding
	Help    key.Binding

	// Buttons has one binding per game button, listing every key bound to it.
	Buttons []key.Binding

	bindings core.Bindings
}

// NewKeyMap builds the viewer key map around the configured game bindings.
func NewKeyMap(bindings core.Bindings) KeyMap {
	km := KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "maps"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		bindings: bindings,
	}

	byButton := make(map[string][]string)
	for k, button := range bindings {
		byButton[button] = append(byButton[button], k)
	}
	buttons := make([]string, 0, len(byButton))
	for button := range byButton {
		buttons = append(buttons, button)
	}
	slices.Sort(buttons)

	for _, button := range buttons {
		keys := byButton[button]
		slices.Sort(keys)
		km.Buttons = append(km.Buttons, key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(strings.Join(keys, "/"), button),
		))
	}
	return km
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return append(slices.Clone(k.Buttons), k.Pause, k.Quit, k.Help)
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.Buttons,
		{k.Pause, k.Restart, k.Back},
		{k.Help, k.Quit},
	}
}

// Button returns the game button bound to the pressed key.
func (k KeyMap) Button(msg tea.KeyMsg) (string, bool) {
	return k.bindings.Button(keyName(msg))
}

// keyName normalizes Bubble Tea key strings to the names used in config
// bindings.
func keyName(msg tea.KeyMsg) string {
	if msg.Type == tea.KeySpace {
		return "space"
	}
	s := msg.String()
	if s == " " {
		return "space"
	}
	return s
}

// heldButtons turns terminal key presses into press and release pairs.
// Terminals only report presses, repeated while a key is held, so a button
// is released once no press refreshed it for releaseTicks ticks.
type heldButtons struct {
	releaseTicks int
	left         map[string]int
}

func newHeldButtons(releaseTicks int) *heldButtons {
	if releaseTicks <= 0 {
		releaseTicks = 1
	}
	return &heldButtons{releaseTicks: releaseTicks, left: make(map[string]int)}
}

// press delivers a button-down the first time a button is pressed and
// refreshes its hold time on repeats.
func (h *heldButtons) press(button string, w *engine.World) {
	if _, held := h.left[button]; !held {
		w.ButtonDown(button)
	}
	h.left[button] = h.releaseTicks
}

// tick counts down held buttons and releases the expired ones, in name
// order.
func (h *heldButtons) tick(w *engine.World) {
	var expired []string
	for button := range h.left {
		h.left[button]--
		if h.left[button] <= 0 {
			expired = append(expired, button)
		}
	}
	slices.Sort(expired)
	for _, button := range expired {
		delete(h.left, button)
		w.ButtonUp(button)
	}
}

// releaseAll releases every held button.
func (h *heldButtons) releaseAll(w *engine.World) {
	buttons := make([]string, 0, len(h.left))
	for button := range h.left {
		buttons = append(buttons, button)
	}
	slices.Sort(buttons)
	for _, button := range buttons {
		delete(h.left, button)
		w.ButtonUp(button)
	}
}

// held reports whether button is currently down.
func (h *heldButtons) held(button string) bool {
	_, ok := h.left[button]
	return ok
}
