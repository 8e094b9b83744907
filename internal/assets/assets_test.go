package assets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tilesim/internal/core"
	"github.com/vovakirdan/tilesim/internal/tilemap"
)

const baseTiles = `
tile_sets:
  - id: t
    tile_width: 8
    tile_height: 8
    tiles:
      - glyph: "#"
        collision: [[0, 0, 8, 8]]
      - glyph: "w"
        channels:
          1: [[0, 0, 8, 8]]
`

func TestDemo(t *testing.T) {
	p, err := Demo()
	if err != nil {
		t.Fatalf("Demo() error = %v", err)
	}

	ids := p.MapIDs()
	if strings.Join(ids, ",") != "arena,demo" {
		t.Errorf("MapIDs() = %v, expected [arena demo]", ids)
	}

	m, ok := p.Map("demo")
	if !ok {
		t.Fatal("Map(demo) not found")
	}
	if m.MainLayer != 1 {
		t.Errorf("MainLayer = %d, expected 1", m.MainLayer)
	}
	if !m.Layers[0].Effect || m.Layers[0].ParallaxX != 0x80 {
		t.Errorf("sky layer = effect %v parallax %#x, expected effect with 0x80",
			m.Layers[0].Effect, m.Layers[0].ParallaxX)
	}
	if b, _ := m.Bounds(); b != core.NewRect(0, 0, 384, 112) {
		t.Errorf("Bounds() = %v, expected 384x112", b)
	}
	if m.BackgroundColor != core.ColorBlue {
		t.Errorf("BackgroundColor = %v, expected blue", m.BackgroundColor)
	}
	if len(m.Actors) == 0 || m.Actors[0].Type != "player" {
		t.Errorf("first actor = %+v, expected the player", m.Actors)
	}

	s, ok := p.Sprite("player")
	if !ok {
		t.Fatal("Sprite(player) not found")
	}
	if _, ok := s.Animation("run"); !ok {
		t.Error("player sprite has no run animation")
	}
}

func TestDemoTiles(t *testing.T) {
	p, err := Demo()
	if err != nil {
		t.Fatalf("Demo() error = %v", err)
	}
	m, _ := p.Map("demo")

	tests := []struct {
		name    string
		rect    core.Rect
		channel int
		want    bool
	}{
		{"floor", core.NewRect(16, 104, 8, 8), 0, true},
		{"open air", core.NewRect(16, 16, 8, 8), 0, false},
		{"platform top half", core.NewRect(64, 72, 8, 4), 0, true},
		{"platform bottom half", core.NewRect(64, 76, 8, 4), 0, false},
		{"water on default channel", core.NewRect(288, 96, 8, 8), 0, false},
		{"water on channel 1", core.NewRect(288, 96, 8, 8), 1, true},
		{"stars never collide", core.NewRect(0, 0, 8, 8), 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.CheckCollision(tt.rect, tt.channel); got != tt.want {
				t.Errorf("CheckCollision(%v, %d) = %v, expected %v", tt.rect, tt.channel, got, tt.want)
			}
		})
	}

	water := m.Main().Tile(36, 12).Tile()
	ts, _ := p.TileSet("ground")
	if got := water.GlyphAt(ts.FrameForTime(25)); got != '≈' {
		t.Errorf("water glyph at t=25 = %q, expected '≈'", got)
	}
}

func TestAddCrossFileTileSets(t *testing.T) {
	p := NewPack()
	if err := p.Add([]byte(baseTiles), "tiles.yaml"); err != nil {
		t.Fatalf("Add(tiles) error = %v", err)
	}

	level := `
maps:
  - id: tiny
    layers:
      - tile_sets: [t]
        width: 2
        height: 2
        tiles: [[0, 0], [], [], [0, 1]]
    actors:
      - {type: coin, x: 8, y: 0, data: {value: 2}}
`
	if err := p.Add([]byte(level), "level.yaml"); err != nil {
		t.Fatalf("Add(level) error = %v", err)
	}

	m, ok := p.Map("tiny")
	if !ok {
		t.Fatal("Map(tiny) not found")
	}
	l := m.Main()
	if l.Tile(0, 0).Tile().Glyph != '#' || l.Tile(1, 0) != nil || l.Tile(1, 1).Tile().Glyph != 'w' {
		t.Error("tiles not placed row-major")
	}
	if got := m.Actors[0].Data["value"]; got != 2 {
		t.Errorf("actor data value = %v (%T), expected 2", got, got)
	}
}

func TestAddInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"tile count", `
maps:
  - id: m
    layers:
      - {tile_sets: [t], width: 2, height: 2, tiles: [[0, 0]]}`},
		{"unknown tile set", `
maps:
  - id: m
    layers:
      - {tile_sets: [nope], width: 1, height: 1, tiles: [[]]}`},
		{"tile index", `
maps:
  - id: m
    layers:
      - {tile_sets: [t], width: 1, height: 1, tiles: [[0, 7]]}`},
		{"tile set reference", `
maps:
  - id: m
    layers:
      - {tile_sets: [t], width: 1, height: 1, tiles: [[1, 0]]}`},
		{"tile format", `
maps:
  - id: m
    layers:
      - {tile_sets: [t], width: 1, height: 1, tiles: [[0]]}`},
		{"gameplay parallax", `
maps:
  - id: m
    layers:
      - {tile_sets: [t], width: 1, height: 1, tiles: [[]], parallax_x: 0x80}`},
		{"gameplay auto scroll", `
maps:
  - id: m
    layers:
      - {tile_sets: [t], width: 1, height: 1, tiles: [[]], auto_scroll_y: 2}`},
		{"main layer out of range", `
maps:
  - id: m
    main_layer: 3
    layers:
      - {tile_sets: [t], width: 1, height: 1, tiles: [[]]}`},
		{"main layer is effect", `
maps:
  - id: m
    main_layer: 0
    layers:
      - {tile_sets: [t], width: 1, height: 1, tiles: [[]], effect: true}
      - {tile_sets: [t], width: 1, height: 1, tiles: [[]]}`},
		{"only effect layers", `
maps:
  - id: m
    layers:
      - {tile_sets: [t], width: 1, height: 1, tiles: [[]], effect: true}`},
		{"blend mode", `
maps:
  - id: m
    layers:
      - {tile_sets: [t], width: 1, height: 1, tiles: [[]], blend: screen}`},
		{"row width", `
maps:
  - id: m
    layers:
      - tile_sets: [t]
        legend: {"#": [0, 0]}
        rows: ["##", "#"]`},
		{"legend", `
maps:
  - id: m
    layers:
      - tile_sets: [t]
        legend: {"#": [0, 0]}
        rows: ["#x"]`},
		{"negative rect", `
tile_sets:
  - id: bad
    tile_width: 8
    tile_height: 8
    tiles:
      - {glyph: "#", collision: [[0, 0, -8, 8]]}`},
		{"short rect", `
tile_sets:
  - id: bad
    tile_width: 8
    tile_height: 8
    tiles:
      - {glyph: "#", collision: [[0, 0, 8]]}`},
		{"glyph", `
tile_sets:
  - id: bad
    tile_width: 8
    tile_height: 8
    tiles:
      - {glyph: "##"}`},
		{"tile size", `
tile_sets:
  - id: big
    tile_width: 16
    tile_height: 16
    tiles:
      - {glyph: "#"}
maps:
  - id: m
    layers:
      - {tile_sets: [t, big], width: 1, height: 1, tiles: [[]]}`},
		{"empty animation", `
sprites:
  - id: s
    animations:
      - {name: idle, frames: []}`},
		{"sprite without animations", `
sprites:
  - id: s`},
		{"duplicate tile set", `
tile_sets:
  - {id: t, tile_width: 8, tile_height: 8}`},
		{"actor without type", `
maps:
  - id: m
    layers:
      - {tile_sets: [t], width: 1, height: 1, tiles: [[]]}
    actors:
      - {x: 1, y: 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPack()
			if err := p.Add([]byte(baseTiles), "base.yaml"); err != nil {
				t.Fatalf("Add(base) error = %v", err)
			}
			err := p.Add([]byte(tt.yaml), "bad.yaml")
			if !errors.Is(err, ErrInvalidAsset) {
				t.Fatalf("Add() error = %v, expected ErrInvalidAsset", err)
			}
			if !strings.HasPrefix(err.Error(), "assets: bad.yaml: ") {
				t.Errorf("error %q does not name the source", err)
			}
		})
	}
}

func TestAddIsAtomic(t *testing.T) {
	p := NewPack()
	doc := baseTiles + `
maps:
  - id: m
    layers:
      - {tile_sets: [t], width: 1, height: 1, tiles: [[0, 9]]}`
	if err := p.Add([]byte(doc), "doc.yaml"); err == nil {
		t.Fatal("Add() error = nil, expected an error")
	}
	if _, ok := p.TileSet("t"); ok {
		t.Error("tile set from a rejected document was added")
	}
}

func TestAddSyntaxError(t *testing.T) {
	err := NewPack().Add([]byte("maps: [\n"), "broken.yaml")
	if err == nil || errors.Is(err, ErrInvalidAsset) {
		t.Errorf("Add() error = %v, expected a YAML error", err)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	level := `
maps:
  - id: extra
    layers:
      - tile_sets: [ground]
        legend: {"#": [0, 0]}
        rows: ["###"]
`
	if err := os.WriteFile(filepath.Join(dir, "extra.yaml"), []byte(level), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	m, ok := p.Map("extra")
	if !ok {
		t.Fatal("Map(extra) not found")
	}
	if got := m.Main().Tile(2, 0).Set.ID; got != "ground" {
		t.Errorf("tile set = %q, expected ground", got)
	}
}

func TestLoadFileMissing(t *testing.T) {
	err := NewPack().AddFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("AddFile() error = %v, expected not exist", err)
	}
}

func TestLayerDefaults(t *testing.T) {
	p := NewPack()
	doc := baseTiles + `
maps:
  - id: m
    layers:
      - name: fx
        effect: true
        auto_scroll_x: 3
        blend: add
        alpha: 8
        tile_sets: [t]
        rows: ["."]
      - tile_sets: [t]
        rows: ["."]
`
	if err := p.Add([]byte(doc), "doc.yaml"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	m, _ := p.Map("m")
	fx := m.Layers[0]
	if fx.Blend != tilemap.BlendAdd || fx.Alpha != 8 || fx.AutoScrollX != 3 {
		t.Errorf("effect layer = %+v", fx)
	}
	if fx.ParallaxX != tilemap.ParallaxNone || fx.TileW != 8 {
		t.Errorf("effect layer defaults: parallax %#x tile width %d", fx.ParallaxX, fx.TileW)
	}
	if m.MainLayer != 1 {
		t.Errorf("MainLayer = %d, expected 1", m.MainLayer)
	}
}
