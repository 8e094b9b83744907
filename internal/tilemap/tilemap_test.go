package tilemap

import (
	"testing"

	"github.com/vovakirdan/tilesim/internal/core"
)

// testTiles returns a tile set with an empty tile (0), a full solid tile (1),
// a half-height floor tile (2) and a tile solid only on channel 1 (3).
func testTiles() *TileSet {
	ts := NewTileSet("test", 8, 8)
	ts.Add(Tile{Glyph: '.'})
	ts.Add(Tile{Glyph: '#', Collision: map[int][]core.Rect{
		ChannelDefault: {core.NewRect(0, 0, 8, 8)},
	}})
	ts.Add(Tile{Glyph: '_', Collision: map[int][]core.Rect{
		ChannelDefault: {core.NewRect(0, 4, 8, 4)},
	}})
	ts.Add(Tile{Glyph: '=', Collision: map[int][]core.Rect{
		1: {core.NewRect(0, 0, 8, 8)},
	}})
	return ts
}

// fillLayer builds a layer from rows of tile indices; -1 leaves the cell empty.
func fillLayer(ts *TileSet, rows [][]int) *Layer {
	l := NewLayer("main", len(rows[0]), len(rows), ts.TileW, ts.TileH)
	for y, row := range rows {
		for x, idx := range row {
			if idx >= 0 {
				l.SetTile(x, y, &TileRef{Set: ts, Index: idx})
			}
		}
	}
	return l
}

func TestLayerTileAccess(t *testing.T) {
	ts := testTiles()
	l := NewLayer("l", 4, 3, 8, 8)
	l.SetTile(2, 1, &TileRef{Set: ts, Index: 1})
	l.SetTile(10, 10, &TileRef{Set: ts, Index: 1})

	if l.Tile(2, 1) == nil {
		t.Fatal("Tile(2, 1) should be set")
	}
	if l.Tile(10, 10) != nil || l.Tile(-1, 0) != nil {
		t.Error("Out of range Tile() should return nil")
	}
	if l.PixelW() != 32 || l.PixelH() != 24 {
		t.Errorf("Pixel size = %dx%d, expected 32x24", l.PixelW(), l.PixelH())
	}

	l.Resize(3, 2)
	if l.Width != 3 || l.Height != 2 || len(l.Tiles) != 6 {
		t.Fatalf("After Resize(3, 2) got %dx%d with %d tiles", l.Width, l.Height, len(l.Tiles))
	}
	if l.Tile(2, 1) == nil {
		t.Error("Resize should keep tiles in the overlapping region")
	}
}

func TestTileRefDangling(t *testing.T) {
	ts := testTiles()
	ref := &TileRef{Set: ts, Index: 99}
	if ref.Tile() != nil {
		t.Error("Dangling index should resolve to nil")
	}
	var nilRef *TileRef
	if nilRef.Tile() != nil {
		t.Error("Nil ref should resolve to nil")
	}
	if nilRef.Tile().Solid(ChannelDefault) {
		t.Error("Nil tile should not be solid")
	}
}

func TestTileSetFrameForTime(t *testing.T) {
	ts := testTiles()
	if ts.FrameForTime(17) != 0 {
		t.Error("Static tile set should always show frame 0")
	}

	ts.SetAnimation([]int{2, 1})
	want := []int{0, 0, 1, 0, 0, 1}
	for tick, frame := range want {
		if got := ts.FrameForTime(tick); got != frame {
			t.Errorf("FrameForTime(%d) = %d, expected %d", tick, got, frame)
		}
	}
}

func TestLayerCheckCollision(t *testing.T) {
	ts := testTiles()
	l := fillLayer(ts, [][]int{
		{0, 0, 0, 0},
		{0, 1, 0, 0},
		{2, 2, 2, 3},
	})

	tests := []struct {
		name    string
		rect    core.Rect
		channel int
		want    bool
	}{
		{"open space", core.NewRect(0, 0, 8, 8), ChannelDefault, false},
		{"inside solid", core.NewRect(10, 10, 2, 2), ChannelDefault, true},
		{"touching solid edge", core.NewRect(0, 8, 8, 8), ChannelDefault, false},
		{"above half tile", core.NewRect(0, 16, 8, 4), ChannelDefault, false},
		{"into half tile", core.NewRect(0, 17, 8, 4), ChannelDefault, true},
		{"left of grid", core.NewRect(-1, 0, 4, 4), ChannelDefault, true},
		{"below grid", core.NewRect(0, 22, 4, 4), ChannelDefault, true},
		{"channel tile on default", core.NewRect(24, 16, 8, 8), ChannelDefault, false},
		{"channel tile on its channel", core.NewRect(24, 16, 8, 8), 1, true},
		{"zero area", core.NewRect(10, 10, 0, 0), ChannelDefault, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.CheckCollision(tt.rect, tt.channel); got != tt.want {
				t.Errorf("CheckCollision(%v, %d) = %v, expected %v", tt.rect, tt.channel, got, tt.want)
			}
		})
	}
}

func TestLayerSweepCollisionX(t *testing.T) {
	ts := testTiles()
	l := fillLayer(ts, [][]int{
		{0, 0, 0, 0, 0, 1},
		{0, 0, 0, 0, 0, 0},
	})

	tests := []struct {
		name   string
		rect   core.Rect
		finalX int
		wantX  int
		wantOK bool
	}{
		{"free move", core.NewRect(0, 8, 4, 4), 20, 0, false},
		{"stop before wall", core.NewRect(0, 0, 4, 4), 38, 36, true},
		{"short of wall", core.NewRect(0, 0, 4, 4), 30, 0, false},
		{"leave right edge", core.NewRect(30, 8, 4, 4), 60, 44, true},
		{"leave left edge", core.NewRect(10, 8, 4, 4), -5, 0, true},
		{"already outside", core.NewRect(-2, 8, 4, 4), -5, -2, true},
		{"other axis outside", core.NewRect(4, -2, 4, 4), 10, 4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, ok := l.SweepCollisionX(tt.rect, tt.finalX, ChannelDefault)
			if ok != tt.wantOK || (ok && x != tt.wantX) {
				t.Errorf("SweepCollisionX(%v, %d) = (%d, %v), expected (%d, %v)",
					tt.rect, tt.finalX, x, ok, tt.wantX, tt.wantOK)
			}
		})
	}
}

func TestSweepCollisionChannels(t *testing.T) {
	ts := testTiles()
	l := fillLayer(ts, [][]int{{0, 0, 3, 0, 0, 1}})
	m := New("m")
	m.AddLayer(l)

	tests := []struct {
		name    string
		channel int
		finalX  int
		wantX   int
		wantOK  bool
	}{
		{"channel 1 stops at its tile", 1, 20, 12, true},
		{"channel 0 passes channel 1 tile", ChannelDefault, 20, 0, false},
		{"channel 0 stops at its wall", ChannelDefault, 40, 36, true},
		{"channel 1 stops before channel 0 wall", 1, 40, 12, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rect := core.NewRect(0, 0, 4, 4)
			x, ok := l.SweepCollisionX(rect, tt.finalX, tt.channel)
			if ok != tt.wantOK || (ok && x != tt.wantX) {
				t.Errorf("Layer sweep = (%d, %v), expected (%d, %v)", x, ok, tt.wantX, tt.wantOK)
			}
			x, ok = m.SweepCollisionX(rect, tt.finalX, tt.channel)
			if ok != tt.wantOK || (ok && x != tt.wantX) {
				t.Errorf("Map sweep = (%d, %v), expected (%d, %v)", x, ok, tt.wantX, tt.wantOK)
			}
		})
	}
}

func TestLayerSweepCollisionY(t *testing.T) {
	ts := testTiles()
	l := fillLayer(ts, [][]int{
		{0, 0},
		{0, 0},
		{2, 1},
	})

	// Half tile surface is at y=20, so a 4px rect rests at 16
	y, ok := l.SweepCollisionY(core.NewRect(0, 0, 4, 4), 30, ChannelDefault)
	if !ok || y != 16 {
		t.Errorf("Falling onto floor: got (%d, %v), expected (16, true)", y, ok)
	}

	// Falling onto the full tile stops at its top (16) minus height
	y, ok = l.SweepCollisionY(core.NewRect(8, 0, 4, 4), 30, ChannelDefault)
	if !ok || y != 12 {
		t.Errorf("Falling onto solid: got (%d, %v), expected (12, true)", y, ok)
	}

	// Jumping up leaves the grid and stops at the top edge
	y, ok = l.SweepCollisionY(core.NewRect(0, 8, 4, 4), -10, ChannelDefault)
	if !ok || y != 0 {
		t.Errorf("Leaving top edge: got (%d, %v), expected (0, true)", y, ok)
	}
}

func TestMapCheckCollisionSkipsEffectLayers(t *testing.T) {
	ts := testTiles()
	m := New("m")
	m.AddLayer(fillLayer(ts, [][]int{{0, 0}, {0, 0}}))

	fx := fillLayer(ts, [][]int{{1, 1}, {1, 1}})
	fx.Effect = true
	m.AddLayer(fx)

	if m.CheckCollision(core.NewRect(2, 2, 4, 4), ChannelDefault) {
		t.Error("Effect layers must not collide")
	}
	if !m.CheckPoint(-1, 0, ChannelDefault) {
		t.Error("Points outside the map should collide")
	}
	if m.MainLayer != 0 {
		t.Errorf("MainLayer = %d, expected 0", m.MainLayer)
	}
}

func TestMapBounds(t *testing.T) {
	m := New("empty")
	if _, ok := m.Bounds(); ok {
		t.Error("Map without layers should have no bounds")
	}

	ts := testTiles()
	fx := NewLayer("sky", 100, 100, 8, 8)
	fx.Effect = true
	m.AddLayer(fx)
	m.AddLayer(fillLayer(ts, [][]int{{0, 0, 0}, {0, 0, 0}}))

	b, ok := m.Bounds()
	if !ok || b != core.NewRect(0, 0, 24, 16) {
		t.Errorf("Bounds() = (%v, %v), expected {0,0 24x16}", b, ok)
	}
	if m.Main() != m.Layers[1] {
		t.Error("Main() should be the first gameplay layer")
	}
}

func TestMapSweepFoldsAcrossLayers(t *testing.T) {
	ts := testTiles()
	m := New("m")
	// Far wall on layer 0, near wall on layer 1
	m.AddLayer(fillLayer(ts, [][]int{{0, 0, 0, 0, 0, 1}}))
	m.AddLayer(fillLayer(ts, [][]int{{0, 0, 0, 1, 0, 0}}))

	x, ok := m.SweepCollisionX(core.NewRect(0, 0, 4, 4), 40, ChannelDefault)
	if !ok || x != 20 {
		t.Errorf("Fold should keep nearest wall: got (%d, %v), expected (20, true)", x, ok)
	}

	// Reversed layer order gives the same answer
	m2 := New("m2")
	m2.AddLayer(m.Layers[1])
	m2.AddLayer(m.Layers[0])
	x, ok = m2.SweepCollisionX(core.NewRect(0, 0, 4, 4), 40, ChannelDefault)
	if !ok || x != 20 {
		t.Errorf("Later layers must not relax the bound: got (%d, %v), expected (20, true)", x, ok)
	}
}

func TestMapSweepZeroDistance(t *testing.T) {
	ts := testTiles()
	m := New("m")
	m.AddLayer(fillLayer(ts, [][]int{{1, 1}, {1, 1}}))

	// Embedded in a solid tile but not moving on this axis
	rect := core.NewRect(2, 2, 4, 4)
	if _, ok := m.SweepCollisionX(rect, rect.X, ChannelDefault); ok {
		t.Error("Zero-distance X sweep should report no collision")
	}
	if _, ok := m.SweepCollisionY(rect, rect.Y, ChannelDefault); ok {
		t.Error("Zero-distance Y sweep should report no collision")
	}
	if x, ok := m.SweepCollisionX(rect, 5, ChannelDefault); !ok || x != 2 {
		t.Errorf("Moving while embedded should stay put: got (%d, %v), expected (2, true)", x, ok)
	}
}

func TestTileGlyphAt(t *testing.T) {
	tile := Tile{Glyph: '~', Frames: []rune{'~', '-'}}
	tests := []struct {
		frame int
		want  rune
	}{
		{0, '~'},
		{1, '-'},
		{2, '~'},
		{-1, '~'},
	}
	for _, tt := range tests {
		if got := tile.GlyphAt(tt.frame); got != tt.want {
			t.Errorf("GlyphAt(%d) = %q, expected %q", tt.frame, got, tt.want)
		}
	}
}
