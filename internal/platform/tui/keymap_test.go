package tui

import (
	"slices"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tilesim/internal/core"
	"github.com/vovakirdan/tilesim/internal/engine"
)

// buttonLog is an actor that records the buttons it receives.
type buttonLog struct {
	engine.Base
	events []string
}

func (b *buttonLog) OnButtonDown(name string, _ *engine.World) {
	b.events = append(b.events, "+"+name)
}

func (b *buttonLog) OnButtonUp(name string, _ *engine.World) {
	b.events = append(b.events, "-"+name)
}

func controlledLog(t *testing.T) (*engine.World, *buttonLog) {
	t.Helper()
	w := engine.NewWorld(engine.DefaultWorldConfig(), nil)
	b := &buttonLog{Base: engine.NewBase(0, 0)}
	w.SetControlledActor(w.AddActor(b))
	return w, b
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyName(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want string
	}{
		{"space type", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, "space"},
		{"space rune", runes(" "), "space"},
		{"letter", runes("a"), "a"},
		{"arrow", tea.KeyMsg{Type: tea.KeyLeft}, "left"},
		{"ctrl", tea.KeyMsg{Type: tea.KeyCtrlC}, "ctrl+c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keyName(tt.msg); got != tt.want {
				t.Errorf("keyName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKeyMapButtons(t *testing.T) {
	km := NewKeyMap(core.Bindings{
		"left":  "left",
		"a":     "left",
		"space": "jump",
		"up":    "jump",
	})

	if len(km.Buttons) != 2 {
		t.Fatalf("len(Buttons) = %d, want 2", len(km.Buttons))
	}
	// Buttons are sorted by name and list their keys sorted.
	if got := km.Buttons[0].Help().Desc; got != "jump" {
		t.Errorf("Buttons[0] = %q, want jump", got)
	}
	if got := km.Buttons[0].Keys(); !slices.Equal(got, []string{"space", "up"}) {
		t.Errorf("jump keys = %v", got)
	}
	if got := km.Buttons[1].Help().Key; got != "a/left" {
		t.Errorf("left help = %q, want a/left", got)
	}

	tests := []struct {
		msg    tea.KeyMsg
		want   string
		wantOK bool
	}{
		{runes("a"), "left", true},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, "jump", true},
		{tea.KeyMsg{Type: tea.KeyUp}, "jump", true},
		{runes("z"), "", false},
	}
	for _, tt := range tests {
		got, ok := km.Button(tt.msg)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Button(%q) = %q, %v; want %q, %v", tt.msg.String(), got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestKeyMapHelp(t *testing.T) {
	km := NewKeyMap(core.DefaultConfig().Bindings)

	short := km.ShortHelp()
	if len(short) != len(km.Buttons)+3 {
		t.Errorf("len(ShortHelp) = %d, want %d", len(short), len(km.Buttons)+3)
	}
	if full := km.FullHelp(); len(full) != 3 {
		t.Errorf("len(FullHelp) = %d, want 3", len(full))
	}
}

func TestHeldButtonsPressAndRelease(t *testing.T) {
	w, log := controlledLog(t)
	h := newHeldButtons(3)

	h.press("right", w)
	h.press("right", w) // repeat refreshes, no second press
	if !h.held("right") {
		t.Fatal("right should be held")
	}

	h.tick(w)
	h.tick(w)
	h.press("right", w) // refresh again: three more ticks
	h.tick(w)
	h.tick(w)
	if !h.held("right") {
		t.Fatal("right released early")
	}
	h.tick(w)
	if h.held("right") {
		t.Fatal("right should have been released")
	}

	if want := []string{"+right", "-right"}; !slices.Equal(log.events, want) {
		t.Errorf("events = %v, want %v", log.events, want)
	}
}

func TestHeldButtonsReleaseInNameOrder(t *testing.T) {
	w, log := controlledLog(t)
	h := newHeldButtons(1)

	h.press("right", w)
	h.press("jump", w)
	h.tick(w)

	if want := []string{"+right", "+jump", "-jump", "-right"}; !slices.Equal(log.events, want) {
		t.Errorf("events = %v, want %v", log.events, want)
	}
}

func TestHeldButtonsReleaseAll(t *testing.T) {
	w, log := controlledLog(t)
	h := newHeldButtons(0) // clamped to one tick

	h.press("left", w)
	h.press("jump", w)
	h.releaseAll(w)

	if h.held("left") || h.held("jump") {
		t.Error("buttons still held after releaseAll")
	}
	if want := []string{"+left", "+jump", "-jump", "-left"}; !slices.Equal(log.events, want) {
		t.Errorf("events = %v, want %v", log.events, want)
	}
	if h.releaseTicks != 1 {
		t.Errorf("releaseTicks = %d, want 1", h.releaseTicks)
	}
}
