package engine

import (
	"github.com/vovakirdan/tui-lines/internal/games/lines/core"
)

// Outcome says what SelectOrMove did with a click.
type Outcome int

const (
	OutcomeIgnored     Outcome = iota // game over, animating, off-board, or empty cell with nothing selected
	OutcomeSelected                   // a ball is now selected
	OutcomeUnreachable                // empty target with no path; selection kept
	OutcomeMoving                     // a move is animating along its path
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeSelected:
		return "selected"
	case OutcomeUnreachable:
		return "unreachable"
	case OutcomeMoving:
		return "moving"
	default:
		return "unknown"
	}
}

// SelectOrMove handles a click on c. A ball is selected; an empty cell is
// a move target for the current selection.
func (e *Engine) SelectOrMove(c core.Coord) Outcome {
	if e.gameOver || e.phase == PhaseAnimating || !c.InBounds() {
		return OutcomeIgnored
	}
	e.popping = nil

	if !e.board.At(c).Empty() {
		b := e.board.Clone()
		b.SetActive(c)
		e.board = b
		sel := c
		e.selected = &sel
		e.phase = PhaseSelected
		e.notReachable = false
		return OutcomeSelected
	}

	if e.phase != PhaseSelected || e.selected == nil {
		return OutcomeIgnored
	}

	path := core.FindPath(&e.board, *e.selected, c)
	if len(path) < 2 {
		e.notReachable = true
		e.hoverPath = nil
		return OutcomeUnreachable
	}

	e.moving = &move{path: path, color: e.board.At(path[0]).Ball}
	e.phase = PhaseAnimating
	e.hoverPath = nil
	e.notReachable = false
	return OutcomeMoving
}

// Hover computes the path preview toward c for the current selection.
// It has no effect on the committed state.
func (e *Engine) Hover(c core.Coord) {
	e.hoverPath = nil
	e.notReachable = false
	if e.gameOver || e.phase != PhaseSelected || e.selected == nil || !c.InBounds() {
		return
	}
	if !e.board.At(c).Empty() {
		return
	}
	path := core.FindPath(&e.board, *e.selected, c)
	if path == nil {
		e.notReachable = true
		return
	}
	e.hoverPath = path
}

// LeaveHover drops the path preview.
func (e *Engine) LeaveHover() {
	e.hoverPath = nil
	e.notReachable = false
}

// HoverPath returns the previewed path, or nil.
func (e *Engine) HoverPath() []core.Coord {
	return append([]core.Coord(nil), e.hoverPath...)
}

// NotReachable reports whether the last hover or move target had no path.
func (e *Engine) NotReachable() bool {
	return e.notReachable
}

// Reachable returns the empty cells the selected ball can travel to, or
// nil when nothing is selected.
func (e *Engine) Reachable() map[core.Coord]bool {
	if e.gameOver || e.phase != PhaseSelected || e.selected == nil {
		return nil
	}
	return core.ReachableFrom(&e.board, *e.selected)
}

// MovingBall returns the animated ball's current position and color.
func (e *Engine) MovingBall() (core.Coord, core.BallColor, bool) {
	if e.moving == nil {
		return core.Coord{}, core.NoBall, false
	}
	return e.moving.path[e.moving.step], e.moving.color, true
}

// MovePath returns the full path of the move in flight, or nil.
func (e *Engine) MovePath() []core.Coord {
	if e.moving == nil {
		return nil
	}
	return append([]core.Coord(nil), e.moving.path...)
}

// Advance moves the animated ball one step. When it reaches the end of its
// path the settle sequence runs. It returns false when nothing is moving.
func (e *Engine) Advance() bool {
	if e.phase != PhaseAnimating || e.moving == nil {
		return false
	}
	e.moving.step++
	if e.moving.step >= len(e.moving.path)-1 {
		e.settle()
	}
	return true
}

// FinishMove walks any in-flight move to completion.
func (e *Engine) FinishMove() {
	for e.Advance() {
	}
}

// settle commits a finished move: relocate the ball, handle a landed-on
// preview, then either clear lines or let the previews arrive.
func (e *Engine) settle() {
	mv := e.moving
	e.moving = nil
	from, to := mv.path[0], mv.path[len(mv.path)-1]

	before := e.board
	b := before.Clone()
	landedOnPreview := b.At(to).Incoming != core.NoBall
	b.RemoveBalls([]core.Coord{from})
	b.SetBall(to, mv.color)
	b[to.Y][to.X].Incoming = core.NoBall
	b.ClearActive()

	e.selected = nil
	e.phase = PhaseIdle
	e.stats.Turns++
	if !e.timerActive && e.timer == 0 {
		e.timerActive = true
	}

	e.logger.Debug("settle", "game", e.gameID, "from", from, "to", to, "color", mv.color, "preview", landedOnPreview)

	// The source cell is empty again, so the board has room until the
	// spawn below. Cells the previews held before a landed-on preview are
	// avoided by both the recomputed spawn and the next preview, room
	// permitting.
	var avoid map[core.Coord]bool
	if landedOnPreview {
		avoid = make(map[core.Coord]bool)
		for _, c := range core.IncomingCoords(&before) {
			avoid[c] = true
		}
		b = e.reschedulePreviews(&b, avoid)
	}

	if lines := core.FindLines(&b, to, mv.color); len(lines) > 0 {
		e.clearLines(&b, lines)
		e.rollNextBalls()
		b = e.repaintPreviews(&b)
		if !core.HasAnyMove(&b) {
			// Nothing is left to move, so the previews arrive now.
			e.logger.Debug("board cleared", "game", e.gameID)
			b = e.spawn(&b, nil)
		}
		e.board = b
		e.reportScore()
		return
	}

	e.board = e.spawn(&b, avoid)
	if e.board.IsFull() {
		e.board = core.ClearIncoming(&e.board)
		e.endGame("board full after spawn")
	}
}

// spawn turns the previews into balls and schedules the next ones. With
// no preview on the board (a game started without one) nextBalls is dealt
// straight onto random empty cells.
func (e *Engine) spawn(b *core.Board, avoid map[core.Coord]bool) core.Board {
	out := *b
	if len(core.IncomingCoords(&out)) == 0 {
		out = core.PlacePreviews(&out, e.pickCells(&out, avoid), e.nextBalls[:])
	}
	out, spawned := core.ConvertIncoming(&out)
	scored := e.rules.ClearSpawnedLines && e.clearSpawnedLines(&out, spawned)

	e.rollNextBalls()
	out = core.PlacePreviews(&out, e.pickCells(&out, avoid), e.nextBalls[:])
	if scored {
		e.reportScore()
	}
	return out
}

// reschedulePreviews replaces every preview with a fresh placement of the
// current nextBalls.
func (e *Engine) reschedulePreviews(b *core.Board, avoid map[core.Coord]bool) core.Board {
	clean := core.ClearIncoming(b)
	return core.PlacePreviews(&clean, e.pickCells(&clean, avoid), e.nextBalls[:])
}

// pickCells chooses BallsPerTurn empty cells outside avoid, falling back
// to any empty cell when avoiding would leave too little room.
func (e *Engine) pickCells(b *core.Board, avoid map[core.Coord]bool) []core.Coord {
	if len(avoid) > 0 && len(b.EmptyCoords(avoid)) < core.BallsPerTurn {
		avoid = nil
	}
	return core.ChooseEmptyCells(b, core.BallsPerTurn, avoid, e.rng)
}

// repaintPreviews recolors the existing previews with nextBalls and tops
// them up to BallsPerTurn when a clear has made room.
func (e *Engine) repaintPreviews(b *core.Board) core.Board {
	out := core.RecolorIncoming(b, e.nextBalls[:])
	coords := core.IncomingCoords(&out)
	if n := len(coords); n < core.BallsPerTurn {
		taken := make(map[core.Coord]bool, n)
		for _, c := range coords {
			taken[c] = true
		}
		out = core.PlacePreviews(&out, core.ChooseEmptyCells(&out, core.BallsPerTurn-n, taken, e.rng), e.nextBalls[n:])
	}
	return out
}

// clearLines removes the union of lines from b and scores each line.
func (e *Engine) clearLines(b *core.Board, lines [][]core.Coord) {
	cells := core.UniqueCells(lines)
	gained := core.ScoreLines(lines)
	b.RemoveBalls(cells)

	e.popping = cells
	e.score += gained
	e.stats.recordLines(lines, len(cells))

	e.logger.Debug("lines cleared", "game", e.gameID, "lines", len(lines), "balls", len(cells), "points", gained, "score", e.score)
}

// clearSpawnedLines clears lines completed by arriving balls.
func (e *Engine) clearSpawnedLines(b *core.Board, spawned []core.Coord) bool {
	var lines [][]core.Coord
	for _, c := range spawned {
		lines = append(lines, core.FindLines(b, c, b.At(c).Ball)...)
	}
	if len(lines) == 0 {
		return false
	}
	e.clearLines(b, core.DistinctLines(lines))
	return true
}

func (e *Engine) endGame(reason string) {
	e.gameOver = true
	e.timerActive = false
	e.phase = PhaseIdle
	e.selected = nil
	e.moving = nil
	e.LeaveHover()

	b := e.board.Clone()
	b.ClearActive()
	e.board = b

	e.logger.Info("game over", "game", e.gameID, "reason", reason, "score", e.score, "turns", e.stats.Turns, "seconds", e.timer)
}
