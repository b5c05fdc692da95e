package render

import (
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Grid is a Canvas for character terminals. It keeps one color per pixel and
// packs two pixel rows into each character cell using the upper half block.
type Grid struct {
	width  int
	height int
	pixels []core.Color
	screen *core.Screen
}

// NewGrid returns an empty grid; call Resize before drawing.
func NewGrid() *Grid {
	return &Grid{screen: core.NewScreen(0, 0)}
}

// Resize sets the pixel size. The composed screen is (h+1)/2 rows tall.
func (g *Grid) Resize(w, h int) {
	g.width, g.height = w, h
	g.pixels = make([]core.Color, w*h)
	g.screen.Resize(w, (h+1)/2)
	g.screen.Clear()
}

// Size returns the pixel size.
func (g *Grid) Size() (w, h int) {
	return g.width, g.height
}

// CellSize returns the size of the composed screen in characters.
func (g *Grid) CellSize() (w, h int) {
	return g.width, (g.height + 1) / 2
}

// StrokeVertical draws a one pixel wide line downward from (x, y).
func (g *Grid) StrokeVertical(x, y, length int, c core.Color) {
	for i := 0; i < length; i++ {
		g.set(x, y+i, c)
	}
}

// StrokeHorizontal draws a one pixel high line rightward from (x, y).
func (g *Grid) StrokeHorizontal(x, y, length int, c core.Color) {
	for i := 0; i < length; i++ {
		g.set(x+i, y, c)
	}
}

// FillRect fills rect, clipped to the grid.
func (g *Grid) FillRect(r core.Rect, c core.Color) {
	r = r.Intersect(core.NewRect(0, 0, g.width, g.height))
	for y := r.Y; y < r.Bottom(); y++ {
		row := g.pixels[y*g.width : (y+1)*g.width]
		for x := r.X; x < r.Right(); x++ {
			row[x] = c
		}
	}
}

// At returns the color of one pixel. Out-of-bounds reads are black.
func (g *Grid) At(x, y int) core.Color {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return core.ColorBlack
	}
	return g.pixels[y*g.width+x]
}

// Screen composes the pixels into character cells and returns the screen.
// The screen is reused between calls.
func (g *Grid) Screen() *core.Screen {
	for row := 0; row < (g.height+1)/2; row++ {
		top := row * 2
		for x := 0; x < g.width; x++ {
			if top+1 < g.height {
				g.screen.SetHalves(x, row, g.At(x, top), g.At(x, top+1))
				continue
			}
			// odd last pixel row: lower half stays terminal default
			g.screen.SetColored(x, row, core.HalfBlock, g.At(x, top))
		}
	}
	return g.screen
}

func (g *Grid) set(x, y int, c core.Color) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return
	}
	g.pixels[y*g.width+x] = c
}
