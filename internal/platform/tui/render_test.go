package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tilesim/internal/core"
	"github.com/vovakirdan/tilesim/internal/engine"
	"github.com/vovakirdan/tilesim/internal/sprite"
	"github.com/vovakirdan/tilesim/internal/tilemap"
)

// marker is an actor that only carries sprites.
type marker struct {
	engine.Base
}

func glyph(r rune, c core.Color) *sprite.Sprite {
	s := sprite.New(string(r), 1, 1)
	anim, err := sprite.NewAnimation("idle", []sprite.Frame{{Glyph: r, Color: c}}, []int{1}, true)
	if err != nil {
		panic(err)
	}
	if err := s.Add(anim); err != nil {
		panic(err)
	}
	return s
}

// testLayer builds an 8x8-tile layer from rows; '#' is a wall, anything
// else is empty.
func testLayer(name string, rows ...string) *tilemap.Layer {
	ts := tilemap.NewTileSet("walls", 8, 8)
	wall := ts.Add(tilemap.Tile{Glyph: '#', Color: core.ColorGray})
	l := tilemap.NewLayer(name, len(rows[0]), len(rows), 8, 8)
	for y, row := range rows {
		for x, r := range row {
			if r == '#' {
				l.SetTile(x, y, &tilemap.TileRef{Set: ts, Index: wall})
			}
		}
	}
	return l
}

func testWorld(m *tilemap.Map, viewW, viewH int) *engine.World {
	w := engine.NewWorld(engine.WorldConfig{ViewW: viewW, ViewH: viewH}, nil)
	w.LoadMap(m)
	return w
}

func addMarker(w *engine.World, x, y int, s *sprite.Sprite, blend tilemap.BlendMode, alpha uint8) engine.Ref {
	a := &marker{Base: engine.NewBase(x, y)}
	engine.AddSpriteWithBlending(a, s, 0, 0, blend, alpha)
	return w.AddActor(a)
}

func TestDrawWorldLayersAndActors(t *testing.T) {
	m := tilemap.New("room")
	m.AddLayer(testLayer("main",
		"#..#",
		"####",
	))
	w := testWorld(m, 32, 16)
	addMarker(w, 8, 0, glyph('A', core.ColorRed), tilemap.BlendNormal, 0)

	s := Snapshot(w)
	if s.Width() != 4 || s.Height() != 2 {
		t.Fatalf("screen size = %dx%d, want 4x2", s.Width(), s.Height())
	}
	if got, want := s.String(), "#A #\n####"; got != want {
		t.Errorf("screen =\n%s\nwant\n%s", got, want)
	}
	if c := s.GetCell(1, 0); c.Color != core.ColorRed {
		t.Errorf("actor color = %v, want red", c.Color)
	}
	if c := s.GetCell(0, 1); c.Color != core.ColorGray {
		t.Errorf("wall color = %v, want gray", c.Color)
	}
}

func TestDrawWorldActorsBetweenLayers(t *testing.T) {
	m := tilemap.New("layered")
	m.AddLayer(testLayer("main", "...."))
	m.AddLayer(testLayer("front", ".#.."))
	w := testWorld(m, 32, 8)
	addMarker(w, 8, 0, glyph('A', core.ColorRed), tilemap.BlendNormal, 0)
	addMarker(w, 16, 0, glyph('B', core.ColorRed), tilemap.BlendNormal, 0)

	// The front layer is drawn over the actors.
	if got := Snapshot(w).Row(0); got != " #B " {
		t.Errorf("row = %q, want %q", got, " #B ")
	}
}

func TestDrawWorldWithoutMap(t *testing.T) {
	w := testWorld(nil, 32, 8)
	addMarker(w, 0, 0, glyph('A', core.ColorRed), tilemap.BlendNormal, 0)

	if got := Snapshot(w).Row(0); got != "A   " {
		t.Errorf("row = %q, want %q", got, "A   ")
	}
}

func TestDrawWorldFollowsActor(t *testing.T) {
	m := tilemap.New("wide")
	m.AddLayer(testLayer("main", "#.......#"))
	w := testWorld(m, 16, 8)
	r := addMarker(w, 80, 0, glyph('A', core.ColorRed), tilemap.BlendNormal, 0)

	s := core.NewScreen(2, 1)
	DrawWorld(s, w)
	if got := s.Row(0); got != "# " {
		t.Fatalf("before follow = %q, want %q", got, "# ")
	}

	// The actor is past the right edge, so the view stops at the map end.
	w.Follow(r)
	w.Step()
	DrawWorld(s, w)
	if got := s.Row(0); got != " #" {
		t.Errorf("after follow = %q, want %q", got, " #")
	}
}

func TestSpriteAlphaAndBlend(t *testing.T) {
	tests := []struct {
		name      string
		blend     tilemap.BlendMode
		alpha     uint8
		wantRune  rune
		wantColor core.Color
	}{
		{"opaque", tilemap.BlendNormal, 0, 'A', core.ColorRed},
		{"dimmed", tilemap.BlendNormal, alphaDim, 'A', core.ColorGray},
		{"hidden", tilemap.BlendNormal, alphaHidden, '#', core.ColorGray},
		{"add keeps tile", tilemap.BlendAdd, 0, '#', core.ColorGray},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tilemap.New("one")
			m.AddLayer(testLayer("main", "#"))
			w := testWorld(m, 8, 8)
			addMarker(w, 0, 0, glyph('A', core.ColorRed), tt.blend, tt.alpha)

			c := Snapshot(w).GetCell(0, 0)
			if c.Rune != tt.wantRune || c.Color != tt.wantColor {
				t.Errorf("cell = %q/%v, want %q/%v", c.Rune, c.Color, tt.wantRune, tt.wantColor)
			}
		})
	}
}

func TestBlendDrawsIntoEmptyCells(t *testing.T) {
	m := tilemap.New("one")
	m.AddLayer(testLayer("main", "."))
	w := testWorld(m, 8, 8)
	addMarker(w, 0, 0, glyph('A', core.ColorRed), tilemap.BlendAdd, 0)

	if c := Snapshot(w).GetCell(0, 0); c.Rune != 'A' {
		t.Errorf("cell = %q, want 'A'", c.Rune)
	}
}

func TestLayerAlpha(t *testing.T) {
	m := tilemap.New("faded")
	l := testLayer("main", "#")
	l.Alpha = alphaHidden
	m.AddLayer(l)

	if c := Snapshot(testWorld(m, 8, 8)).GetCell(0, 0); c.Rune != ' ' {
		t.Errorf("hidden layer drew %q", c.Rune)
	}
}

func TestEffectLayerWrapsAndAutoScrolls(t *testing.T) {
	m := tilemap.New("sky")
	sky := testLayer("sky", "#..")
	sky.Effect = true
	sky.AutoScrollX = 8 * tilemap.ParallaxNone // one tile per frame
	m.AddLayer(sky)
	w := testWorld(m, 48, 8)

	s := core.NewScreen(6, 1)
	DrawWorld(s, w)
	if got := s.Row(0); got != "#  #  " {
		t.Fatalf("frame 0 = %q, want %q", got, "#  #  ")
	}

	w.Step()
	DrawWorld(s, w)
	if got := s.Row(0); got != "  #  #" {
		t.Errorf("frame 1 = %q, want %q", got, "  #  #")
	}
}

func TestFade(t *testing.T) {
	tests := []struct {
		name      string
		alpha     int
		wantRune  rune
		wantColor core.Color
	}{
		{"clear", 0, 'A', core.ColorRed},
		{"dimmed", fadeDim, 'A', core.ColorGray},
		{"blank", fadeBlank, ' ', core.ColorDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := testWorld(nil, 8, 8)
			addMarker(w, 0, 0, glyph('A', core.ColorRed), tilemap.BlendNormal, 0)
			w.Queue(engine.StartFade{From: tt.alpha, To: tt.alpha, Frames: 10})
			w.Step()

			c := Snapshot(w).GetCell(0, 0)
			if c.Rune != tt.wantRune || c.Color != tt.wantColor {
				t.Errorf("cell = %q/%v, want %q/%v", c.Rune, c.Color, tt.wantRune, tt.wantColor)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	tests := []struct{ v, n, want int }{
		{0, 3, 0},
		{4, 3, 1},
		{-1, 3, 2},
		{-6, 3, 0},
	}
	for _, tt := range tests {
		if got := wrap(tt.v, tt.n); got != tt.want {
			t.Errorf("wrap(%d, %d) = %d, want %d", tt.v, tt.n, got, tt.want)
		}
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(3, 2)
	s.DrawText(0, 0, "ab", core.ColorRed)
	s.DrawText(0, 1, "cd", core.ColorDefault)

	out := RenderScreenOn(s, core.ColorBlue)
	for _, want := range []string{"ab", "cd"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered output %q lacks %q", out, want)
		}
	}
	if got := strings.Count(out, "\n"); got != 1 {
		t.Errorf("rendered output has %d newlines, want 1", got)
	}
}
