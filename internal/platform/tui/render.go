package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-kraken/internal/core"
)

var colorStyles = func() []lipgloss.Style {
	colors := core.Colors()
	styles := make([]lipgloss.Style, len(colors))
	for i, c := range colors {
		styles[i] = lipgloss.NewStyle()
		if code := c.ANSI(); code != "" {
			styles[i] = styles[i].Foreground(lipgloss.Color(code))
		}
	}
	return styles
}()

func styleFor(c core.Color) lipgloss.Style {
	if int(c) < len(colorStyles) {
		return colorStyles[c]
	}
	return colorStyles[core.ColorDefault]
}

// RenderScreen converts a Screen to a styled string. Runs of cells sharing a
// color are styled together to keep escape sequences short.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}

		for x := 0; x < s.Width(); {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}

			if color == core.ColorDefault {
				sb.WriteString(run.String())
			} else {
				sb.WriteString(styleFor(color).Render(run.String()))
			}
		}
	}
	return sb.String()
}
