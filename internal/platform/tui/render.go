package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// cellStyle identifies a lipgloss style by the colors it applies.
type cellStyle struct {
	fg, bg         core.Color
	styled, filled bool
}

// styleCache builds lipgloss styles on first use.
type styleCache map[cellStyle]lipgloss.Style

func (c styleCache) get(k cellStyle, r *lipgloss.Renderer) lipgloss.Style {
	if s, ok := c[k]; ok {
		return s
	}
	s := r.NewStyle()
	if k.styled {
		s = s.Foreground(lipgloss.Color(k.fg.Hex()))
	}
	if k.filled {
		s = s.Background(lipgloss.Color(k.bg.Hex()))
	}
	c[k] = s
	return s
}

func styleOf(c core.Cell) cellStyle {
	k := cellStyle{styled: c.Styled, filled: c.Filled}
	if c.Styled {
		k.fg = c.Color
	}
	if c.Filled {
		k.bg = c.Background
	}
	return k
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	return renderScreen(s, make(styleCache), lipgloss.DefaultRenderer())
}

func renderScreen(s *core.Screen, styles styleCache, r *lipgloss.Renderer) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*8 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := styleOf(s.GetCell(x, y))

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if styleOf(cell) != start {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if !start.styled && !start.filled {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styles.get(start, r).Render(run.String()))
		}
	}
	return sb.String()
}
