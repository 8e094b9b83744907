package engine

import (
	"github.com/vovakirdan/tilesim/internal/core"
	"github.com/vovakirdan/tilesim/internal/tilemap"
)

// recorder records every hook invocation.
type recorder struct {
	Base

	inits     int
	updates   int
	worldHits int
	actorHits []Ref
	deaths    int
	buttons   []string
	axes      map[string]float64

	onInit    func(p *recorder, w *World)
	onUpdate  func(p *recorder, w *World)
	onCollide func(p *recorder, other Ref, w *World)
}

func newRecorder(x, y int) *recorder {
	return &recorder{Base: NewBase(x, y), axes: make(map[string]float64)}
}

// newBox creates a recorder with an 8x8 footprint.
func newBox(x, y int, blocking bool) *recorder {
	p := newRecorder(x, y)
	SetCollisionBounds(p, core.NewRect(0, 0, 8, 8))
	p.State.BlockingCollision = blocking
	return p
}

func (p *recorder) Init(w *World) {
	p.inits++
	if p.onInit != nil {
		p.onInit(p, w)
	}
}

func (p *recorder) Update(w *World) {
	p.updates++
	if p.onUpdate != nil {
		p.onUpdate(p, w)
	}
}

func (p *recorder) OnCollideWithWorld(*World) {
	p.worldHits++
}

func (p *recorder) OnCollideWithActor(other Ref, w *World) {
	p.actorHits = append(p.actorHits, other)
	if p.onCollide != nil {
		p.onCollide(p, other, w)
	}
}

func (p *recorder) OnDeath(*World) {
	p.deaths++
}

func (p *recorder) OnButtonDown(name string, _ *World) {
	p.buttons = append(p.buttons, "+"+name)
}

func (p *recorder) OnButtonUp(name string, _ *World) {
	p.buttons = append(p.buttons, "-"+name)
}

func (p *recorder) OnAxisChanged(name string, value float64, _ *World) {
	p.axes[name] = value
}

// testMap builds a single-layer map of 8px tiles from rows where '#' is solid.
func testMap(rows ...string) *tilemap.Map {
	ts := tilemap.NewTileSet("test", 8, 8)
	solid := ts.Add(tilemap.Tile{Glyph: '#', Collision: map[int][]core.Rect{
		tilemap.ChannelDefault: {core.NewRect(0, 0, 8, 8)},
	}})

	l := tilemap.NewLayer("main", len(rows[0]), len(rows), 8, 8)
	for y, row := range rows {
		for x, ch := range row {
			if ch == '#' {
				l.SetTile(x, y, &tilemap.TileRef{Set: ts, Index: solid})
			}
		}
	}

	m := tilemap.New("test")
	m.AddLayer(l)
	return m
}

func newTestWorld() *World {
	return NewWorld(DefaultWorldConfig(), nil)
}
