package core

// Color represents a foreground color for a screen cell.
// Values map onto ANSI 256-color codes in the platform layer.
type Color uint8

// Predefined colors. The tile palette runs from ColorTile2 up to ColorTileMax.
const (
	ColorDefault Color = iota
	ColorGray
	ColorWhite
	ColorRed
	ColorYellow
	ColorGreen
	ColorCyan
	ColorTile2
	ColorTile4
	ColorTile8
	ColorTile16
	ColorTile32
	ColorTile64
	ColorTile128
	ColorTile256
	ColorTile512
	ColorTile1024
	ColorTile2048
	ColorTileMax
)

// TileColor returns the palette color for a tile value.
// Values above 2048 share ColorTileMax; zero and negatives use ColorGray.
func TileColor(value int) Color {
	if value <= 0 {
		return ColorGray
	}
	c := ColorTile2
	for v := 2; v < value && c < ColorTileMax; v *= 2 {
		c++
	}
	return c
}
