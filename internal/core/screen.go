package core

import (
	"strings"
)

// Cell is one character position of a Screen.
// Styled cells carry a foreground color; unstyled cells use the terminal default.
// Filled cells also carry a background color.
type Cell struct {
	Rune       rune
	Color      Color
	Background Color
	Styled     bool
	Filled     bool
}

// HalfBlock is the upper half block used to show two pixels in one cell.
const HalfBlock = '▀'

var blankCell = Cell{Rune: ' '}

// Screen is a character cell buffer. Canvases compose into it and the
// terminal hosts copy it out, so nothing here knows about a terminal.
type Screen struct {
	width  int
	height int
	cells  []Cell // row-major
}

// NewScreen creates a blank screen of the given size.
func NewScreen(width, height int) *Screen {
	s := &Screen{}
	s.Resize(width, height)
	return s
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Resize changes the dimensions. A new size starts blank; resizing to the
// current size keeps the content.
func (s *Screen) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width == s.width && height == s.height && s.cells != nil {
		return
	}
	s.width, s.height = width, height
	s.cells = make([]Cell, width*height)
	s.Clear()
}

// Clear fills the entire screen with unstyled spaces.
func (s *Screen) Clear() {
	for i := range s.cells {
		s.cells[i] = blankCell
	}
}

// Set places an unstyled rune. Out-of-bounds writes are ignored, as they
// are for every setter.
func (s *Screen) Set(x, y int, r rune) {
	s.SetCell(x, y, Cell{Rune: r})
}

// SetColored places a rune drawn in color c.
func (s *Screen) SetColored(x, y int, r rune, c Color) {
	s.SetCell(x, y, Cell{Rune: r, Color: c, Styled: true})
}

// SetHalves shows two vertically stacked pixels in one cell: the upper half
// block in the top color over a background in the bottom color.
func (s *Screen) SetHalves(x, y int, top, bottom Color) {
	s.SetCell(x, y, Cell{Rune: HalfBlock, Color: top, Background: bottom, Styled: true, Filled: true})
}

// SetCell places a full cell.
func (s *Screen) SetCell(x, y int, c Cell) {
	if i, ok := s.index(x, y); ok {
		s.cells[i] = c
	}
}

// Get returns the rune at (x, y), or a space out of bounds.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the cell at (x, y), or a blank cell out of bounds.
func (s *Screen) GetCell(x, y int) Cell {
	if i, ok := s.index(x, y); ok {
		return s.cells[i]
	}
	return blankCell
}

// DrawText writes text from (x, y) rightwards, one rune per cell, clipped
// at the edge.
func (s *Screen) DrawText(x, y int, text string) {
	for _, r := range text {
		s.Set(x, y, r)
		x++
	}
}

// String returns the runes as plain text, one row per line.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(len(s.cells) + s.height)
	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range s.cells[y*s.width : (y+1)*s.width] {
			sb.WriteRune(c.Rune)
		}
	}
	return sb.String()
}

func (s *Screen) index(x, y int) (int, bool) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return 0, false
	}
	return y*s.width + x, true
}
