package lines

import (
	platformcore "github.com/vovakirdan/tui-lines/internal/core"
	"github.com/vovakirdan/tui-lines/internal/games/lines/core"
)

const (
	cellWidth  = 4 // including the left border
	cellHeight = 2 // including the top border
	hudHeight  = 3

	boardW = core.Size*cellWidth + 1
	boardH = core.Size*cellHeight + 1

	// Title, score line and next balls above the board; status and help
	// below it.
	fullHeight = hudHeight + boardH + 2
	minWidth   = boardW
	minHeight  = hudHeight + boardH
)

// layout places the HUD and board on the screen.
type layout struct {
	top      int // first HUD row
	board    platformcore.Rect
	screen   platformcore.Rect
	tooSmall bool
}

func computeLayout(w, h int) layout {
	l := layout{screen: platformcore.NewRect(0, 0, w, h)}
	if w < minWidth || h < minHeight {
		l.tooSmall = true
		return l
	}
	l.top = max(0, (h-fullHeight)/2)
	l.board = platformcore.NewRect((w-boardW)/2, l.top+hudHeight, boardW, boardH)
	return l
}

// cellAt maps a screen position to a board cell. Grid lines map to no cell.
func (l layout) cellAt(x, y int) (core.Coord, bool) {
	if l.tooSmall || !l.board.Contains(x, y) {
		return core.Coord{}, false
	}
	rx, ry := x-l.board.X, y-l.board.Y
	if rx%cellWidth == 0 || ry%cellHeight == 0 {
		return core.Coord{}, false
	}
	c := core.C(rx/cellWidth, ry/cellHeight)
	return c, c.InBounds()
}

// cellOrigin returns the screen position of the first interior column of c.
func (l layout) cellOrigin(c core.Coord) (int, int) {
	return l.board.X + c.X*cellWidth + 1, l.board.Y + c.Y*cellHeight + 1
}

// statusRow and helpRow return -1 when the screen has no room for them.
func (l layout) statusRow() int {
	if y := l.board.Bottom(); y < l.screen.H {
		return y
	}
	return -1
}

func (l layout) helpRow() int {
	if y := l.board.Bottom() + 1; y < l.screen.H {
		return y
	}
	return -1
}
