package core

import (
	"strconv"
	"strings"
)

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
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
	ColorGold
)

// palette holds approximate RGB values of the predefined colors, used to
// map effect colors given as hex strings onto terminal colors.
var palette = []struct {
	c       Color
	r, g, b int
}{
	{ColorRed, 205, 49, 49},
	{ColorGreen, 13, 188, 121},
	{ColorYellow, 229, 229, 16},
	{ColorBlue, 36, 114, 200},
	{ColorMagenta, 188, 63, 188},
	{ColorCyan, 17, 168, 205},
	{ColorWhite, 229, 229, 229},
	{ColorBrightRed, 241, 76, 76},
	{ColorBrightGreen, 35, 209, 139},
	{ColorBrightYellow, 245, 245, 67},
	{ColorBrightBlue, 59, 142, 234},
	{ColorBrightMagenta, 214, 112, 214},
	{ColorBrightCyan, 41, 184, 219},
	{ColorBrightWhite, 255, 255, 255},
	{ColorOrange, 255, 135, 0},
	{ColorGray, 138, 138, 138},
	{ColorGold, 255, 215, 0},
}

// ColorFromHex maps a "#rrggbb" (or "#rgb") string to the nearest predefined color.
// Malformed input yields ColorDefault.
func ColorFromHex(hex string) Color {
	h := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return ColorDefault
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return ColorDefault
	}
	r, g, b := int(v>>16&0xff), int(v>>8&0xff), int(v&0xff)

	best := ColorDefault
	bestDist := -1
	for _, p := range palette {
		dr, dg, db := r-p.r, g-p.g, b-p.b
		d := dr*dr + dg*dg + db*db
		if bestDist < 0 || d < bestDist {
			best, bestDist = p.c, d
		}
	}
	return best
}
