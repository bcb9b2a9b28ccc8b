package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// ansiCodes maps core.Color to ANSI 256-color codes. ColorDefault uses the terminal's.
var ansiCodes = map[core.Color]string{
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

// colorStyles holds one lipgloss style per core.Color, built from ansiCodes.
// Tile colors are bold so numbers stand out from the grid.
var colorStyles = func() map[core.Color]lipgloss.Style {
	styles := map[core.Color]lipgloss.Style{
		core.ColorDefault: lipgloss.NewStyle(),
	}
	for c, code := range ansiCodes {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(code))
		if c != core.ColorGray {
			style = style.Bold(true)
		}
		styles[c] = style
	}
	return styles
}()

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			// Collect consecutive cells with same color
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

// centerText pads text on the left to center it within width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
