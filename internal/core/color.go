package core

// Color is a foreground color for a screen cell. The zero value leaves the
// terminal's own foreground untouched.
type Color uint8

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

	colorCount
)

var ansiCodes = [colorCount]string{
	ColorRed:           "1",
	ColorGreen:         "2",
	ColorYellow:        "3",
	ColorBlue:          "4",
	ColorMagenta:       "5",
	ColorCyan:          "6",
	ColorWhite:         "7",
	ColorBrightRed:     "9",
	ColorBrightGreen:   "10",
	ColorBrightYellow:  "11",
	ColorBrightBlue:    "12",
	ColorBrightMagenta: "13",
	ColorBrightCyan:    "14",
	ColorBrightWhite:   "15",
	ColorOrange:        "208",
	ColorGray:          "245",
}

// ANSI returns the 256-color code for c, or "" for the default color and
// values outside the palette.
func (c Color) ANSI() string {
	if c >= colorCount {
		return ""
	}
	return ansiCodes[c]
}

// Colors returns every palette entry, default included, in code order.
func Colors() []Color {
	out := make([]Color, colorCount)
	for i := range out {
		out[i] = Color(i)
	}
	return out
}
