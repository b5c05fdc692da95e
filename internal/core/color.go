package core

import (
	"fmt"
	"image/color"
	"strings"
)

// Color is a 24-bit RGB color used by both the terminal and raster canvases.
// Terminal backends pass Hex() to lipgloss/tcell; raster backends use RGBA().
type Color struct {
	R, G, B uint8
}

// Common colors.
var (
	ColorBlack = Color{0x00, 0x00, 0x00}
	ColorWhite = Color{0xFF, 0xFF, 0xFF}
	ColorGray  = Color{0x8A, 0x8A, 0x8A}
)

// RGB builds a color from its components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ParseHex parses "#rrggbb" or "rrggbb" (also the short "#rgb" form).
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return Color{}, fmt.Errorf("core: invalid color %q", s)
	}

	var c Color
	if _, err := fmt.Sscanf(h, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return Color{}, fmt.Errorf("core: invalid color %q: %w", s, err)
	}
	return c, nil
}

// MustParseHex is ParseHex for package-level palette literals.
func MustParseHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RGBA returns an opaque image/color value.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
}
