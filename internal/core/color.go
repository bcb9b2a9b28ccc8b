package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// tilePalette cycles through colors by tile exponent: 2 -> index 0, 4 -> 1, ...
var tilePalette = []Color{
	ColorWhite,
	ColorBrightWhite,
	ColorYellow,
	ColorOrange,
	ColorBrightRed,
	ColorRed,
	ColorBrightYellow,
	ColorBrightGreen,
	ColorGreen,
	ColorBrightCyan,
	ColorCyan,
	ColorBrightBlue,
	ColorBlue,
	ColorBrightMagenta,
	ColorMagenta,
}

// TileColor returns the display color for a tile value (a power of two).
func TileColor(value int64) Color {
	if value < 2 {
		return ColorGray
	}
	exp := 0
	for v := value; v > 2; v >>= 1 {
		exp++
	}
	return tilePalette[exp%len(tilePalette)]
}
