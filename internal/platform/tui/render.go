package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tilesim/internal/core"
	"github.com/vovakirdan/tilesim/internal/engine"
	"github.com/vovakirdan/tilesim/internal/tilemap"
)

// colorCodes maps core.Color to ANSI 256-color codes.
var colorCodes = map[core.Color]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

// colorStyles maps core.Color to lipgloss foreground styles.
var colorStyles = func() map[core.Color]lipgloss.Style {
	styles := map[core.Color]lipgloss.Style{core.ColorDefault: lipgloss.NewStyle()}
	for c, code := range colorCodes {
		styles[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(code))
	}
	return styles
}()

// Sprite and layer alpha runs from 0 (opaque) to 16 (invisible).
const (
	alphaDim    = 8
	alphaHidden = 16
)

// Fade alpha thresholds on the 0..255 scale of engine.Fade.
const (
	fadeDim   = 96
	fadeBlank = 192
)

// defaultCell is the cell size used when no map is loaded.
const defaultCell = 8

// view is what one frame of drawing needs to place things on screen.
type view struct {
	scrollX, scrollY int
	cellW, cellH     int
	frame            int
}

// cellSize returns how many pixels one screen cell covers: one tile of the
// main layer.
func cellSize(m *tilemap.Map) (int, int) {
	if m != nil {
		if l := m.Main(); l != nil && l.TileW > 0 && l.TileH > 0 {
			return l.TileW, l.TileH
		}
	}
	return defaultCell, defaultCell
}

// Snapshot draws w into a new screen covering its whole view.
func Snapshot(w *engine.World) *core.Screen {
	cellW, cellH := cellSize(w.Map())
	viewW, viewH := w.View()
	s := core.NewScreen(max(viewW/cellW, 1), max(viewH/cellH, 1))
	DrawWorld(s, w)
	return s
}

// DrawWorld draws the layers and actors of w into s, back to front. Actors
// are drawn right after the main layer, or on top when the map has none.
func DrawWorld(s *core.Screen, w *engine.World) {
	s.Clear()

	m := w.Map()
	v := view{frame: w.Frame()}
	v.scrollX, v.scrollY = w.Scroll()
	v.cellW, v.cellH = cellSize(m)

	actorsDrawn := false
	if m != nil {
		for i, l := range m.Layers {
			drawLayer(s, l, v)
			if i == m.MainLayer {
				drawActors(s, w, v)
				actorsDrawn = true
			}
		}
	}
	if !actorsDrawn {
		drawActors(s, w, v)
	}

	applyFade(s, w.Fade().Alpha())
}

func drawLayer(s *core.Screen, l *tilemap.Layer, v view) {
	if l.Alpha >= alphaHidden || l.Width == 0 || l.Height == 0 || l.TileW <= 0 || l.TileH <= 0 {
		return
	}

	// Effect layers scroll at their parallax factor, drift by their
	// auto-scroll speed and repeat in both directions.
	originX := core.FloorDiv(v.scrollX*l.ParallaxX+l.AutoScrollX*v.frame, tilemap.ParallaxNone)
	originY := core.FloorDiv(v.scrollY*l.ParallaxY+l.AutoScrollY*v.frame, tilemap.ParallaxNone)

	for cy := range s.Height() {
		ty := core.FloorDiv(originY+cy*v.cellH, l.TileH)
		for cx := range s.Width() {
			tx := core.FloorDiv(originX+cx*v.cellW, l.TileW)
			if l.Effect {
				tx, ty = wrap(tx, l.Width), wrap(ty, l.Height)
			}
			ref := l.Tile(tx, ty)
			t := ref.Tile()
			if t == nil {
				continue
			}
			glyph := t.GlyphAt(ref.Set.FrameForTime(v.frame))
			put(s, cx, cy, glyph, t.Color, l.Blend, l.Alpha)
		}
	}
}

func drawActors(s *core.Screen, w *engine.World, v view) {
	w.EachActor(func(_ engine.Ref, info *engine.Info) {
		if info.Destroyed {
			return
		}
		for i := range info.Sprites {
			sp := &info.Sprites[i]
			if sp.Sprite == nil {
				continue
			}
			f := sp.CurrentFrame()
			if f.Glyph == 0 {
				continue
			}
			x := core.FloorDiv(info.X+sp.OffsetX-v.scrollX+v.cellW/2, v.cellW)
			y := core.FloorDiv(info.Y+sp.OffsetY-v.scrollY+v.cellH/2, v.cellH)
			for dy := range sp.Sprite.Height {
				for dx := range sp.Sprite.Width {
					put(s, x+dx, y+dy, f.Glyph, f.Color, sp.Blend, sp.Alpha)
				}
			}
		}
	})
}

// put draws one glyph. Only normal blending replaces what is already there;
// the other modes draw into empty cells. Half transparent glyphs are grayed.
func put(s *core.Screen, x, y int, r rune, c core.Color, blend tilemap.BlendMode, alpha uint8) {
	if alpha >= alphaHidden {
		return
	}
	if blend != tilemap.BlendNormal && s.Get(x, y) != ' ' {
		return
	}
	if alpha >= alphaDim {
		c = core.ColorGray
	}
	s.SetCell(x, y, core.Cell{Rune: r, Color: c})
}

func applyFade(s *core.Screen, alpha int) {
	if alpha < fadeDim {
		return
	}
	for y := range s.Height() {
		for x := range s.Width() {
			if alpha >= fadeBlank {
				s.SetCell(x, y, core.Cell{Rune: ' '})
				continue
			}
			c := s.GetCell(x, y)
			c.Color = core.ColorGray
			s.SetCell(x, y, c)
		}
	}
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	return RenderScreenOn(s, core.ColorDefault)
}

// RenderScreenOn is RenderScreen with every cell drawn on a background color.
func RenderScreenOn(s *core.Screen, background core.Color) string {
	styles := colorStyles
	if code, ok := colorCodes[background]; ok {
		styles = make(map[core.Color]lipgloss.Style, len(colorStyles))
		for c, st := range colorStyles {
			styles[c] = st.Background(lipgloss.Color(code))
		}
	}

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := styles[startColor]
			if !ok {
				style = styles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
