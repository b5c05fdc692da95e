// Package render paints a tile board onto a 2D canvas: a lattice of grid
// lines, then one filled square per tile in a palette color.
package render

import (
	"fmt"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// DefaultCellEdge is the tile edge length in pixels when none is configured.
const DefaultCellEdge = 8

// Canvas is a pixel surface supporting unit-width strokes and filled rectangles.
type Canvas interface {
	// Resize sets the canvas size in pixels and clears it.
	Resize(w, h int)
	StrokeVertical(x, y, length int, c core.Color)
	StrokeHorizontal(x, y, length int, c core.Color)
	FillRect(r core.Rect, c core.Color)
}

// Palette maps tile kinds to colors. Grid colors the lattice lines.
type Palette struct {
	Grid   core.Color
	Empty  core.Color
	Wall   core.Color
	Block  core.Color
	Paddle core.Color
	Ball   core.Color
}

// DefaultPalette returns the built-in palette.
func DefaultPalette() Palette {
	return Palette{
		Grid:   core.MustParseHex("#cccccc"),
		Empty:  core.MustParseHex("#ffffff"),
		Wall:   core.MustParseHex("#202020"),
		Block:  core.MustParseHex("#3366cc"),
		Paddle: core.MustParseHex("#22aa44"),
		Ball:   core.MustParseHex("#dd3322"),
	}
}

// PaletteFromConfig parses hex colors from the config. Empty entries keep
// the default color.
func PaletteFromConfig(pc config.PaletteConfig) (Palette, error) {
	p := DefaultPalette()
	entries := []struct {
		name string
		hex  string
		dst  *core.Color
	}{
		{"grid", pc.Grid, &p.Grid},
		{"empty", pc.Empty, &p.Empty},
		{"wall", pc.Wall, &p.Wall},
		{"block", pc.Block, &p.Block},
		{"paddle", pc.Paddle, &p.Paddle},
		{"ball", pc.Ball, &p.Ball},
	}

	for _, e := range entries {
		if e.hex == "" {
			continue
		}
		c, err := core.ParseHex(e.hex)
		if err != nil {
			return Palette{}, fmt.Errorf("render: palette %s: %w", e.name, err)
		}
		*e.dst = c
	}
	return p, nil
}

// Color returns the fill color for a tile. Unknown kinds use the Empty color.
func (p Palette) Color(t core.Tile) core.Color {
	switch t {
	case core.TileWall:
		return p.Wall
	case core.TileBlock:
		return p.Block
	case core.TilePaddle:
		return p.Paddle
	case core.TileBall:
		return p.Ball
	default: // TileEmpty and kinds this palette does not know
		return p.Empty
	}
}

// Renderer paints boards with a fixed cell edge and palette.
type Renderer struct {
	CellEdge int
	Palette  Palette
}

// New creates a renderer. Non-positive edges fall back to DefaultCellEdge.
func New(cellEdge int, p Palette) *Renderer {
	if cellEdge <= 0 {
		cellEdge = DefaultCellEdge
	}
	return &Renderer{CellEdge: cellEdge, Palette: p}
}

// CanvasSize returns the canvas size for a board: each axis is
// (edge+1)*tiles+1 pixels, one separator line around every tile.
func (r *Renderer) CanvasSize(g core.Geometry) (w, h int) {
	step := r.CellEdge + 1
	return step*g.Width + 1, step*g.Height + 1
}

// Paint draws the whole board. The lattice goes first, then every tile in
// row-major order, so the output depends only on the view and geometry.
func (r *Renderer) Paint(c Canvas, v core.TileView, g core.Geometry) {
	w, h := r.CanvasSize(g)
	step := r.CellEdge + 1

	for i := 0; i <= g.Width; i++ {
		c.StrokeVertical(i*step, 0, h, r.Palette.Grid)
	}
	for j := 0; j <= g.Height; j++ {
		c.StrokeHorizontal(0, j*step, w, r.Palette.Grid)
	}

	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			cell := core.NewRect(col*step+1, row*step+1, r.CellEdge, r.CellEdge)
			c.FillRect(cell, r.Palette.Color(v.AtCell(g, row, col)))
		}
	}
}
