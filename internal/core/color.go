package core

// Color is a foreground color for a screen cell, mapped to a terminal
// color by the platform layer.
type Color uint8

// Palette used by the playfield.
const (
	ColorDefault Color = iota
	ColorFrame
	ColorDivider
	ColorHUD
	ColorBrown
	ColorOrange
	ColorYellow
	ColorPink
	ColorRed
	ColorGreen
	ColorBlue
	ColorMagenta
	ColorCyan
	colorCount
)

// ConfettiColors are the colors a confetti piece may take.
var ConfettiColors = []Color{
	ColorYellow, ColorPink, ColorRed, ColorGreen, ColorBlue, ColorMagenta, ColorCyan, ColorOrange,
}

// Valid reports whether c is a known palette entry.
func (c Color) Valid() bool {
	return c < colorCount
}
