package lines

import (
	"fmt"

	platformcore "github.com/vovakirdan/tui-lines/internal/core"
	"github.com/vovakirdan/tui-lines/internal/games/lines/core"
	"github.com/vovakirdan/tui-lines/internal/games/lines/engine"
)

const (
	glyphBall    = '●'
	glyphPreview = '•'
	glyphTrail   = '·'
	glyphReach   = '˙'
	glyphPop     = '✦'
)

var ballColors = map[core.BallColor]platformcore.Color{
	core.Red:    platformcore.ColorBrightRed,
	core.Green:  platformcore.ColorBrightGreen,
	core.Blue:   platformcore.ColorBrightBlue,
	core.Yellow: platformcore.ColorBrightYellow,
	core.Purple: platformcore.ColorBrightMagenta,
	core.Cyan:   platformcore.ColorBrightCyan,
	core.Black:  platformcore.ColorBrightBlack,
}

const (
	colorGrid   = platformcore.ColorGray
	colorCursor = platformcore.ColorBrightWhite
	colorReach  = platformcore.ColorBrightBlack
	colorBad    = platformcore.ColorRed
	colorTitle  = platformcore.ColorBrightWhite
)

// Render draws the HUD, the board and any overlay.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()
	if g.eng == nil {
		return
	}

	if g.layout.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	st := g.eng.State()
	g.renderHUD(dst, st)
	g.renderGrid(dst)
	g.renderCells(dst, st)
	g.renderStatus(dst, st)

	if st.GameOver {
		g.renderGameOver(dst, st)
	}
}

func (g *Game) renderTooSmall(dst *platformcore.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", platformcore.ColorDefault)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", minWidth, minHeight), platformcore.ColorGray)
}

func (g *Game) renderHUD(dst *platformcore.Screen, st engine.GameState) {
	top := g.layout.top
	dst.DrawTextCentered(top, g.Title(), colorTitle)

	info := fmt.Sprintf("Score %d   Best %d   Time %s", st.Score, max(g.best, st.Score), formatClock(st.Timer))
	dst.DrawTextCentered(top+1, info, platformcore.ColorDefault)

	label := "Next "
	width := len(label) + 2*len(st.NextBalls) - 1
	x := (dst.Width() - width) / 2
	dst.DrawTextColored(x, top+2, label, platformcore.ColorGray)
	x += len(label)
	for _, c := range st.NextBalls {
		dst.SetColored(x, top+2, glyphBall, ballColors[c])
		x += 2
	}
}

func (g *Game) renderGrid(dst *platformcore.Screen) {
	bx, by := g.layout.board.X, g.layout.board.Y
	for y := range core.Size + 1 {
		for x := range core.Size + 1 {
			px := bx + x*cellWidth
			py := by + y*cellHeight
			dst.SetColored(px, py, gridJoint(x, y), colorGrid)

			if x < core.Size {
				for i := 1; i < cellWidth; i++ {
					dst.SetColored(px+i, py, '─', colorGrid)
				}
			}
			if y < core.Size {
				for i := 1; i < cellHeight; i++ {
					dst.SetColored(px, py+i, '│', colorGrid)
				}
			}
		}
	}
}

func gridJoint(x, y int) rune {
	last := core.Size
	switch {
	case y == 0 && x == 0:
		return '┌'
	case y == 0 && x == last:
		return '┐'
	case y == last && x == 0:
		return '└'
	case y == last && x == last:
		return '┘'
	case y == 0:
		return '┬'
	case y == last:
		return '┴'
	case x == 0:
		return '├'
	case x == last:
		return '┤'
	default:
		return '┼'
	}
}

func (g *Game) renderCells(dst *platformcore.Screen, st engine.GameState) {
	trail := make(map[core.Coord]bool)
	for _, c := range g.eng.HoverPath() {
		trail[c] = true
	}
	reach := g.eng.Reachable()
	popping := make(map[core.Coord]bool)
	for _, c := range g.eng.Popping() {
		popping[c] = true
	}

	var source core.Coord
	movePath := g.eng.MovePath()
	if len(movePath) > 0 {
		source = movePath[0]
	}
	movingAt, movingColor, moving := g.eng.MovingBall()

	for y := range core.Size {
		for x := range core.Size {
			c := core.C(x, y)
			cell := st.Board.At(c)
			ox, oy := g.layout.cellOrigin(c)

			switch {
			case moving && c == movingAt:
				dst.SetColored(ox+1, oy, glyphBall, ballColors[movingColor])
			case moving && c == source:
				// The ball is travelling; leave its cell empty.
			case !cell.Empty():
				dst.SetColored(ox+1, oy, glyphBall, ballColors[cell.Ball])
			case popping[c]:
				dst.SetColored(ox+1, oy, glyphPop, colorCursor)
			case cell.Incoming != core.NoBall:
				dst.SetColored(ox+1, oy, glyphPreview, ballColors[cell.Incoming])
			case trail[c]:
				dst.SetColored(ox+1, oy, glyphTrail, colorGrid)
			case reach[c]:
				dst.SetColored(ox+1, oy, glyphReach, colorReach)
			}

			if cell.Active {
				dst.SetColored(ox, oy, '(', colorCursor)
				dst.SetColored(ox+2, oy, ')', colorCursor)
			}
		}
	}

	if !st.GameOver {
		ox, oy := g.layout.cellOrigin(g.cursor)
		color := colorCursor
		if g.eng.NotReachable() {
			color = colorBad
		}
		dst.SetColored(ox, oy, '[', color)
		dst.SetColored(ox+2, oy, ']', color)
	}
}

func (g *Game) renderStatus(dst *platformcore.Screen, st engine.GameState) {
	if y := g.layout.statusRow(); y >= 0 {
		switch {
		case st.GameOver:
		case g.eng.NotReachable():
			dst.DrawTextCentered(y, "Not reachable", colorBad)
		case st.Selected != nil:
			dst.DrawTextCentered(y, "Pick an empty cell", platformcore.ColorGray)
		}
	}
	if y := g.layout.helpRow(); y >= 0 {
		dst.DrawTextCentered(y, "Arrows/mouse move  Space select  N new game  Esc menu  Q quit", platformcore.ColorGray)
	}
}

func (g *Game) renderGameOver(dst *platformcore.Screen, st engine.GameState) {
	stats := g.eng.Stats()
	lines := []string{
		"GAME OVER",
		"",
		fmt.Sprintf("Score  %d", st.Score),
		fmt.Sprintf("Time   %s", formatClock(st.Timer)),
		fmt.Sprintf("Turns  %d", stats.Turns),
		fmt.Sprintf("Lines  %d (longest %d)", stats.LinesPopped, stats.LongestLine),
		fmt.Sprintf("Balls  %d", stats.BallsPopped),
	}
	if g.eng.NewHighScore() {
		lines = append(lines, "", "NEW HIGH SCORE!")
	}
	lines = append(lines, "", "N: new game  Esc: menu")

	box := g.layout.board.Centered(boardW-6, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, colorCursor)
	for i, line := range lines {
		color := platformcore.ColorDefault
		switch {
		case i == 0:
			color = colorBad
		case line == "NEW HIGH SCORE!":
			color = platformcore.ColorBrightYellow
		}
		x := box.X + (box.W-len([]rune(line)))/2
		dst.DrawTextColored(x, box.Y+1+i, line, color)
	}
}

func formatClock(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
