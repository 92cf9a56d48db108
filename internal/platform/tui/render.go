package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// colorStyles maps core.Color to lipgloss styles (ANSI 256 palette).
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:  lipgloss.NewStyle(),
	core.ColorGray:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorWhite:    lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorRed:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorYellow:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorGreen:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorCyan:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorTile2:    tileStyle("252"),
	core.ColorTile4:    tileStyle("230"),
	core.ColorTile8:    tileStyle("215"),
	core.ColorTile16:   tileStyle("209"),
	core.ColorTile32:   tileStyle("203"),
	core.ColorTile64:   tileStyle("196"),
	core.ColorTile128:  tileStyle("229"),
	core.ColorTile256:  tileStyle("228"),
	core.ColorTile512:  tileStyle("227"),
	core.ColorTile1024: tileStyle("220"),
	core.ColorTile2048: tileStyle("214"),
	core.ColorTileMax:  tileStyle("201"),
}

func tileStyle(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same color share one styled run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

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

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
