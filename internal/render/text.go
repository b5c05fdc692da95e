package render

import (
	"strings"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Text dumps the board as plain text, one glyph per tile and one line per row.
func Text(v core.TileView, g core.Geometry) string {
	var sb strings.Builder
	sb.Grow(g.Len() + g.Height)
	for row := 0; row < g.Height; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := 0; col < g.Width; col++ {
			sb.WriteRune(v.AtCell(g, row, col).Glyph())
		}
	}
	return sb.String()
}
