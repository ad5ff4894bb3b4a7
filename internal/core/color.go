package core

// Color is a foreground color for a screen cell.
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
	ColorBrightBlack
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorGray
)

// colorGray is a mid gray of the 256-color palette.
const colorGray = "245"

// ANSI returns the terminal palette index of c as a string, or "" for the
// terminal's default foreground.
func (c Color) ANSI() string {
	switch {
	case c == ColorDefault:
		return ""
	case c == ColorGray:
		return colorGray
	case c <= ColorBrightWhite:
		return ansiIndex[c]
	default:
		return ""
	}
}

var ansiIndex = [...]string{
	ColorRed:           "1",
	ColorGreen:         "2",
	ColorYellow:        "3",
	ColorBlue:          "4",
	ColorMagenta:       "5",
	ColorCyan:          "6",
	ColorWhite:         "7",
	ColorBrightBlack:   "8",
	ColorBrightRed:     "9",
	ColorBrightGreen:   "10",
	ColorBrightYellow:  "11",
	ColorBrightBlue:    "12",
	ColorBrightMagenta: "13",
	ColorBrightCyan:    "14",
	ColorBrightWhite:   "15",
}
