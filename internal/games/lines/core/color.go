package core

import "fmt"

// BallColor is the color of a ball. The zero value NoBall marks an empty slot.
type BallColor uint8

const (
	NoBall BallColor = iota
	Red
	Green
	Blue
	Yellow
	Purple
	Cyan
	Black
)

// ColorCount is the number of real ball colors.
const ColorCount = 7

// AllColors lists the real ball colors in declaration order.
func AllColors() []BallColor {
	return []BallColor{Red, Green, Blue, Yellow, Purple, Cyan, Black}
}

var colorNames = [...]string{
	NoBall: "none",
	Red:    "red",
	Green:  "green",
	Blue:   "blue",
	Yellow: "yellow",
	Purple: "purple",
	Cyan:   "cyan",
	Black:  "black",
}

var colorChars = [...]byte{
	NoBall: '.',
	Red:    'R',
	Green:  'G',
	Blue:   'B',
	Yellow: 'Y',
	Purple: 'P',
	Cyan:   'C',
	Black:  'K',
}

// Valid reports whether c is one of the seven real colors.
func (c BallColor) Valid() bool {
	return c >= Red && c <= Black
}

// String returns the lowercase color name.
func (c BallColor) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return fmt.Sprintf("BallColor(%d)", uint8(c))
}

// Char returns the single uppercase letter used in board dumps.
// NoBall maps to '.'.
func (c BallColor) Char() byte {
	if int(c) < len(colorChars) {
		return colorChars[c]
	}
	return '?'
}

// ParseBallColor maps a board-dump letter back to a color.
// Lowercase letters are accepted and map to the same color.
func ParseBallColor(ch byte) (BallColor, error) {
	if ch >= 'a' && ch <= 'z' {
		ch -= 'a' - 'A'
	}
	for i, c := range colorChars {
		if c == ch {
			return BallColor(i), nil
		}
	}
	return NoBall, fmt.Errorf("core: unknown color letter %q", ch)
}

// ParseColorName maps a lowercase color name back to a color.
func ParseColorName(name string) (BallColor, error) {
	for i, n := range colorNames {
		if i > 0 && n == name {
			return BallColor(i), nil
		}
	}
	return NoBall, fmt.Errorf("core: unknown color %q", name)
}
