// Package assets loads tile sets, sprites and maps from YAML and validates
// them before they reach the engine. Malformed geometry is rejected here so
// the simulation never has to handle it.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tilesim/internal/core"
	"github.com/vovakirdan/tilesim/internal/sprite"
	"github.com/vovakirdan/tilesim/internal/tilemap"
)

//go:embed data/*.yaml
var demoFS embed.FS

// ErrInvalidAsset is wrapped by every validation failure.
var ErrInvalidAsset = errors.New("invalid asset")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidAsset}, args...)...)
}

// Pack is a set of loaded assets addressed by ID. Later files may refer to
// tile sets declared by earlier ones.
type Pack struct {
	tileSets map[string]*tilemap.TileSet
	sprites  map[string]*sprite.Sprite
	maps     map[string]*tilemap.Map
}

// NewPack returns an empty pack.
func NewPack() *Pack {
	return &Pack{
		tileSets: make(map[string]*tilemap.TileSet),
		sprites:  make(map[string]*sprite.Sprite),
		maps:     make(map[string]*tilemap.Map),
	}
}

// Demo loads the embedded demo assets.
func Demo() (*Pack, error) {
	p := NewPack()
	if err := p.AddFS(demoFS, "data/*.yaml"); err != nil {
		return nil, err
	}
	return p, nil
}

// Load returns the demo assets plus every YAML file in dir, if dir is set.
func Load(dir string) (*Pack, error) {
	p, err := Demo()
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return p, nil
	}
	if err := p.AddFS(os.DirFS(dir), "*.yaml"); err != nil {
		return nil, err
	}
	return p, nil
}

// AddFS adds every file of fsys matching pattern, in name order.
func (p *Pack) AddFS(fsys fs.FS, pattern string) error {
	names, err := fs.Glob(fsys, pattern)
	if err != nil {
		return fmt.Errorf("assets: %s: %w", pattern, err)
	}
	sort.Strings(names)
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("assets: %s: %w", name, err)
		}
		if err := p.Add(data, path.Base(name)); err != nil {
			return err
		}
	}
	return nil
}

// AddFile adds one YAML file from disk.
func (p *Pack) AddFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("assets: %w", err)
	}
	return p.Add(data, filename)
}

// Add parses one YAML document. source names it in error messages. Nothing
// is added to the pack unless the whole document is valid.
func (p *Pack) Add(data []byte, source string) error {
	var raw rawFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("assets: %s: %w", source, err)
	}

	tileSets := make(map[string]*tilemap.TileSet, len(raw.TileSets))
	for _, rt := range raw.TileSets {
		ts, err := buildTileSet(rt)
		if err != nil {
			return fmt.Errorf("assets: %s: tile set %q: %w", source, rt.ID, err)
		}
		if p.hasTileSet(ts.ID) || tileSets[ts.ID] != nil {
			return fmt.Errorf("assets: %s: %w", source, invalid("duplicate tile set %q", ts.ID))
		}
		tileSets[ts.ID] = ts
	}

	sprites := make(map[string]*sprite.Sprite, len(raw.Sprites))
	for _, rs := range raw.Sprites {
		s, err := buildSprite(rs)
		if err != nil {
			return fmt.Errorf("assets: %s: sprite %q: %w", source, rs.ID, err)
		}
		if p.sprites[s.ID] != nil || sprites[s.ID] != nil {
			return fmt.Errorf("assets: %s: %w", source, invalid("duplicate sprite %q", s.ID))
		}
		sprites[s.ID] = s
	}

	lookup := func(id string) (*tilemap.TileSet, bool) {
		if ts, ok := tileSets[id]; ok {
			return ts, true
		}
		ts, ok := p.tileSets[id]
		return ts, ok
	}
	maps := make(map[string]*tilemap.Map, len(raw.Maps))
	for _, rm := range raw.Maps {
		m, err := buildMap(rm, lookup)
		if err != nil {
			return fmt.Errorf("assets: %s: map %q: %w", source, rm.ID, err)
		}
		if p.maps[m.ID] != nil || maps[m.ID] != nil {
			return fmt.Errorf("assets: %s: %w", source, invalid("duplicate map %q", m.ID))
		}
		maps[m.ID] = m
	}

	for id, ts := range tileSets {
		p.tileSets[id] = ts
	}
	for id, s := range sprites {
		p.sprites[id] = s
	}
	for id, m := range maps {
		p.maps[id] = m
	}
	return nil
}

func (p *Pack) hasTileSet(id string) bool {
	_, ok := p.tileSets[id]
	return ok
}

// TileSet returns the tile set with the given ID.
func (p *Pack) TileSet(id string) (*tilemap.TileSet, bool) {
	ts, ok := p.tileSets[id]
	return ts, ok
}

// Sprite returns the sprite with the given ID.
func (p *Pack) Sprite(id string) (*sprite.Sprite, bool) {
	s, ok := p.sprites[id]
	return s, ok
}

// Map returns the map with the given ID.
func (p *Pack) Map(id string) (*tilemap.Map, bool) {
	m, ok := p.maps[id]
	return m, ok
}

// MapIDs returns the IDs of all maps, sorted.
func (p *Pack) MapIDs() []string {
	return sortedKeys(p.maps)
}

// SpriteIDs returns the IDs of all sprites, sorted.
func (p *Pack) SpriteIDs() []string {
	return sortedKeys(p.sprites)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func parseGlyph(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, invalid("glyph %q must be exactly one character", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

func parseRect(v []int) (core.Rect, error) {
	if len(v) != 4 {
		return core.Rect{}, invalid("rect %v must have 4 values [x, y, w, h]", v)
	}
	if v[2] < 0 || v[3] < 0 {
		return core.Rect{}, invalid("rect %v has negative size", v)
	}
	return core.NewRect(v[0], v[1], v[2], v[3]), nil
}

func parseRects(vs [][]int) ([]core.Rect, error) {
	rects := make([]core.Rect, 0, len(vs))
	for _, v := range vs {
		r, err := parseRect(v)
		if err != nil {
			return nil, err
		}
		rects = append(rects, r)
	}
	return rects, nil
}

func buildTileSet(rt rawTileSet) (*tilemap.TileSet, error) {
	if rt.ID == "" {
		return nil, invalid("missing id")
	}
	if rt.TileWidth <= 0 || rt.TileHeight <= 0 {
		return nil, invalid("tile size %dx%d must be positive", rt.TileWidth, rt.TileHeight)
	}

	ts := tilemap.NewTileSet(rt.Name, rt.TileWidth, rt.TileHeight)
	ts.ID = rt.ID
	if ts.Name == "" {
		ts.Name = rt.ID
	}

	for i, raw := range rt.Tiles {
		t, err := buildTile(raw, len(rt.FrameLengths))
		if err != nil {
			return nil, fmt.Errorf("tile %d: %w", i, err)
		}
		ts.Add(t)
	}

	if len(rt.FrameLengths) > 0 {
		total := 0
		for _, n := range rt.FrameLengths {
			if n < 0 {
				return nil, invalid("negative frame length")
			}
			total += n
		}
		if total == 0 {
			return nil, invalid("animation with zero length")
		}
		ts.SetAnimation(rt.FrameLengths)
	}
	return ts, nil
}

func buildTile(raw rawTile, frameCount int) (tilemap.Tile, error) {
	glyph, err := parseGlyph(raw.Glyph)
	if err != nil {
		return tilemap.Tile{}, err
	}
	t := tilemap.Tile{Glyph: glyph, Color: core.ParseColor(raw.Color)}

	if raw.Frames != "" {
		t.Frames = []rune(raw.Frames)
		if len(t.Frames) != frameCount {
			return tilemap.Tile{}, invalid("%d frame glyphs for %d animation frames", len(t.Frames), frameCount)
		}
	}

	if len(raw.Collision) > 0 || len(raw.Channels) > 0 {
		t.Collision = make(map[int][]core.Rect)
	}
	if len(raw.Collision) > 0 {
		rects, err := parseRects(raw.Collision)
		if err != nil {
			return tilemap.Tile{}, err
		}
		t.Collision[tilemap.ChannelDefault] = rects
	}
	for ch, vs := range raw.Channels {
		if ch == tilemap.ChannelDefault && len(raw.Collision) > 0 {
			return tilemap.Tile{}, invalid("channel 0 declared twice")
		}
		rects, err := parseRects(vs)
		if err != nil {
			return tilemap.Tile{}, fmt.Errorf("channel %d: %w", ch, err)
		}
		t.Collision[ch] = rects
	}
	return t, nil
}

func buildSprite(rs rawSprite) (*sprite.Sprite, error) {
	if rs.ID == "" {
		return nil, invalid("missing id")
	}
	w, h := rs.Width, rs.Height
	if w == 0 && h == 0 {
		w, h = 1, 1
	}
	if w <= 0 || h <= 0 {
		return nil, invalid("size %dx%d must be positive", w, h)
	}
	if len(rs.Animations) == 0 {
		return nil, invalid("no animations")
	}

	s := sprite.New(rs.ID, w, h)
	if rs.Name != "" {
		s.Name = rs.Name
	}
	for _, ra := range rs.Animations {
		frames := make([]sprite.Frame, 0, len(ra.Frames))
		lengths := make([]int, 0, len(ra.Frames))
		for _, rf := range ra.Frames {
			glyph, err := parseGlyph(rf.Glyph)
			if err != nil {
				return nil, fmt.Errorf("animation %q: %w", ra.Name, err)
			}
			frames = append(frames, sprite.Frame{Glyph: glyph, Color: core.ParseColor(rf.Color)})
			length := rf.Length
			if length == 0 {
				length = 1
			}
			lengths = append(lengths, length)
		}
		anim, err := sprite.NewAnimation(ra.Name, frames, lengths, ra.Looping)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidAsset, err)
		}
		if err := s.Add(anim); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidAsset, err)
		}
	}
	return s, nil
}

func buildMap(rm rawMap, tileSets func(string) (*tilemap.TileSet, bool)) (*tilemap.Map, error) {
	if rm.ID == "" {
		return nil, invalid("missing id")
	}
	if len(rm.Layers) == 0 {
		return nil, invalid("no layers")
	}

	m := tilemap.New(rm.Name)
	m.ID = rm.ID
	if m.Name == "" {
		m.Name = rm.ID
	}
	m.BackgroundColor = core.ParseColor(rm.Background)

	for i, rl := range rm.Layers {
		l, err := buildLayer(rl, tileSets)
		if err != nil {
			return nil, fmt.Errorf("layer %d (%s): %w", i, rl.Name, err)
		}
		m.AddLayer(l)
	}

	if rm.MainLayer != nil {
		idx := *rm.MainLayer
		if idx < 0 || idx >= len(m.Layers) {
			return nil, invalid("main layer %d out of range", idx)
		}
		if m.Layers[idx].Effect {
			return nil, invalid("main layer %d is an effect layer", idx)
		}
		m.MainLayer = idx
	}
	if m.MainLayer < 0 {
		return nil, invalid("no gameplay layer")
	}

	for i, ra := range rm.Actors {
		if ra.Type == "" {
			return nil, invalid("actor %d has no type", i)
		}
		if ra.Width < 0 || ra.Height < 0 {
			return nil, invalid("actor %d has negative size", i)
		}
		m.Actors = append(m.Actors, tilemap.ActorSpawn{
			X: ra.X, Y: ra.Y, W: ra.Width, H: ra.Height,
			Type: ra.Type,
			Data: ra.Data,
		})
	}
	return m, nil
}

func buildLayer(rl rawLayer, lookup func(string) (*tilemap.TileSet, bool)) (*tilemap.Layer, error) {
	if len(rl.TileSets) == 0 {
		return nil, invalid("no tile sets")
	}
	sets := make([]*tilemap.TileSet, 0, len(rl.TileSets))
	for _, id := range rl.TileSets {
		ts, ok := lookup(id)
		if !ok {
			return nil, invalid("tile set %q not found", id)
		}
		sets = append(sets, ts)
	}

	tileW, tileH := rl.TileWidth, rl.TileHeight
	if tileW == 0 && tileH == 0 {
		tileW, tileH = sets[0].TileW, sets[0].TileH
	}
	for _, ts := range sets {
		if ts.TileW != tileW || ts.TileH != tileH {
			return nil, invalid("tile set %q does not match tile size %dx%d", ts.ID, tileW, tileH)
		}
	}

	width, height := rl.Width, rl.Height
	if len(rl.Rows) > 0 {
		if height == 0 {
			height = len(rl.Rows)
		}
		if width == 0 {
			width = utf8.RuneCountInString(rl.Rows[0])
		}
	}
	if width <= 0 || height <= 0 {
		return nil, invalid("size %dx%d must be positive", width, height)
	}

	blend, ok := tilemap.ParseBlendMode(rl.Blend)
	if !ok {
		return nil, invalid("unknown blend mode %q", rl.Blend)
	}
	if rl.Alpha < 0 || rl.Alpha > 255 {
		return nil, invalid("alpha %d out of range", rl.Alpha)
	}

	l := tilemap.NewLayer(rl.Name, width, height, tileW, tileH)
	if rl.ID != "" {
		l.ID = rl.ID
	}
	l.Effect = rl.Effect
	l.Blend = blend
	l.Alpha = uint8(rl.Alpha)
	if rl.ParallaxX != nil {
		l.ParallaxX = *rl.ParallaxX
	}
	if rl.ParallaxY != nil {
		l.ParallaxY = *rl.ParallaxY
	}
	l.AutoScrollX = rl.AutoScrollX
	l.AutoScrollY = rl.AutoScrollY

	if !l.Effect && (l.ParallaxX != tilemap.ParallaxNone || l.ParallaxY != tilemap.ParallaxNone ||
		l.AutoScrollX != 0 || l.AutoScrollY != 0) {
		return nil, invalid("gameplay layers cannot have scrolling effects")
	}

	ref := func(pair []int) (*tilemap.TileRef, error) {
		if len(pair) == 0 {
			return nil, nil
		}
		if len(pair) != 2 {
			return nil, invalid("tile %v must be [] or [set, tile]", pair)
		}
		if pair[0] < 0 || pair[0] >= len(sets) {
			return nil, invalid("tile set reference %d out of range", pair[0])
		}
		ts := sets[pair[0]]
		if pair[1] < 0 || pair[1] >= len(ts.Tiles) {
			return nil, invalid("tile %d not in tile set %q", pair[1], ts.ID)
		}
		return &tilemap.TileRef{Set: ts, Index: pair[1]}, nil
	}

	switch {
	case len(rl.Rows) > 0 && len(rl.Tiles) > 0:
		return nil, invalid("both rows and tiles given")
	case len(rl.Rows) > 0:
		if len(rl.Rows) != height {
			return nil, invalid("%d rows for height %d", len(rl.Rows), height)
		}
		legend := make(map[rune]*tilemap.TileRef, len(rl.Legend))
		for key, pair := range rl.Legend {
			ch, err := parseGlyph(key)
			if err != nil {
				return nil, fmt.Errorf("legend: %w", err)
			}
			r, err := ref(pair)
			if err != nil {
				return nil, fmt.Errorf("legend %q: %w", key, err)
			}
			legend[ch] = r
		}
		for y, row := range rl.Rows {
			cells := []rune(row)
			if len(cells) != width {
				return nil, invalid("row %d has %d cells, expected %d", y, len(cells), width)
			}
			for x, ch := range cells {
				if ch == '.' || ch == ' ' {
					continue
				}
				r, ok := legend[ch]
				if !ok {
					return nil, invalid("row %d: %q not in legend", y, ch)
				}
				l.SetTile(x, y, r)
			}
		}
	default:
		if len(rl.Tiles) != width*height {
			return nil, invalid("tile count %d does not match %dx%d", len(rl.Tiles), width, height)
		}
		for i, pair := range rl.Tiles {
			r, err := ref(pair)
			if err != nil {
				return nil, fmt.Errorf("cell %d: %w", i, err)
			}
			l.Tiles[i] = r
		}
	}
	return l, nil
}
