package engine

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-lines/internal/games/lines/core"
)

func inline(task func()) { task() }

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	base := []Option{WithSeed(1), WithDispatcher(inline)}
	return New(append(base, opts...)...)
}

// load replaces the engine's board and next colors with a fixture.
func load(t *testing.T, e *Engine, next [core.BallsPerTurn]core.BallColor, rows ...string) {
	t.Helper()
	b, err := core.ParseRows(rows)
	require.NoError(t, err)
	e.board = b
	e.nextBalls = next
}

// lineFreeBoard fills every cell so that no two neighbors in any
// direction share a color.
func lineFreeBoard() core.Board {
	b := core.NewBoard()
	colors := core.AllColors()
	for y := range core.Size {
		for x := range core.Size {
			b.SetBall(core.C(x, y), colors[(x+3*y)%len(colors)])
		}
	}
	return b
}

func playMove(t *testing.T, e *Engine, from, to core.Coord) {
	t.Helper()
	require.Equal(t, OutcomeSelected, e.SelectOrMove(from))
	require.Equal(t, OutcomeMoving, e.SelectOrMove(to))
	e.FinishMove()
}

func cellAt(e *Engine, c core.Coord) core.Cell {
	b := e.Board()
	return b.At(c)
}

func previewColors(b *core.Board) []core.BallColor {
	var out []core.BallColor
	for _, c := range core.IncomingCoords(b) {
		out = append(out, b.At(c).Incoming)
	}
	slices.Sort(out)
	return out
}

func sorted(colors []core.BallColor) []core.BallColor {
	out := slices.Clone(colors)
	slices.Sort(out)
	return out
}

func TestNewGameDefaultRules(t *testing.T) {
	e := newTestEngine(t)
	st := e.State()

	assert.Equal(t, 3, st.Board.CountBalls())
	assert.Len(t, core.IncomingCoords(&st.Board), 3)
	assert.Equal(t, sorted(st.NextBalls[:]), previewColors(&st.Board))
	assert.Zero(t, st.Score)
	assert.Nil(t, st.Selected)
	assert.False(t, st.GameOver)
	assert.Zero(t, st.Timer)
	assert.False(t, st.TimerActive)
	assert.Equal(t, PhaseIdle, e.Phase())
	assert.NotEmpty(t, e.GameID())
}

func TestNewGameClassicRules(t *testing.T) {
	e := newTestEngine(t, WithRules(ClassicRules()))
	st := e.State()

	assert.Equal(t, 5, st.Board.CountBalls())
	assert.Empty(t, core.IncomingCoords(&st.Board))
}

func TestNewGameResets(t *testing.T) {
	e := newTestEngine(t)
	first := e.GameID()
	e.score = 40
	e.timer = 12
	e.timerActive = true
	e.gameOver = true

	e.NewGame()
	st := e.State()
	assert.Zero(t, st.Score)
	assert.Zero(t, st.Timer)
	assert.False(t, st.TimerActive)
	assert.False(t, st.GameOver)
	assert.NotEqual(t, first, e.GameID())
}

func TestSelectOrMoveSelection(t *testing.T) {
	e := newTestEngine(t)
	load(t, e, [3]core.BallColor{core.Red, core.Red, core.Red},
		"R........",
		".........",
		".........",
		".........",
		"....G....",
		".........",
		".........",
		".........",
		".........",
	)

	assert.Equal(t, OutcomeIgnored, e.SelectOrMove(core.C(3, 3)), "empty cell with nothing selected")
	assert.Equal(t, OutcomeSelected, e.SelectOrMove(core.C(0, 0)))
	assert.Equal(t, OutcomeSelected, e.SelectOrMove(core.C(4, 4)))

	st := e.State()
	require.NotNil(t, st.Selected)
	assert.Equal(t, core.C(4, 4), *st.Selected)
	active, ok := st.Board.ActiveCoord()
	require.True(t, ok)
	assert.Equal(t, core.C(4, 4), active)
	assert.False(t, st.Board.At(core.C(0, 0)).Active)
	assert.Equal(t, PhaseSelected, e.Phase())
	assert.Equal(t, OutcomeIgnored, e.SelectOrMove(core.C(-1, 0)))
}

func TestSelectOrMoveUnreachable(t *testing.T) {
	e := newTestEngine(t)
	load(t, e, [3]core.BallColor{core.Red, core.Red, core.Red},
		".B.......",
		"B........",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
		"........Y",
	)

	require.Equal(t, OutcomeSelected, e.SelectOrMove(core.C(8, 8)))
	assert.Equal(t, OutcomeUnreachable, e.SelectOrMove(core.C(0, 0)))
	assert.True(t, e.NotReachable())
	assert.Equal(t, PhaseSelected, e.Phase())
	require.NotNil(t, e.State().Selected)
	assert.Equal(t, core.C(8, 8), *e.State().Selected)
}

func TestClicksIgnoredWhileAnimating(t *testing.T) {
	e := newTestEngine(t)
	load(t, e, [3]core.BallColor{core.Red, core.Red, core.Red},
		"R........",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
		"........G",
	)

	require.Equal(t, OutcomeSelected, e.SelectOrMove(core.C(0, 0)))
	require.Equal(t, OutcomeMoving, e.SelectOrMove(core.C(0, 5)))
	assert.Equal(t, PhaseAnimating, e.Phase())
	assert.Equal(t, OutcomeIgnored, e.SelectOrMove(core.C(8, 8)))

	pos, color, ok := e.MovingBall()
	require.True(t, ok)
	assert.Equal(t, core.C(0, 0), pos)
	assert.Equal(t, core.Red, color)

	require.True(t, e.Advance())
	pos, _, _ = e.MovingBall()
	assert.Equal(t, core.C(0, 1), pos)

	e.FinishMove()
	assert.Equal(t, PhaseIdle, e.Phase())
	assert.False(t, e.Advance())
	assert.Equal(t, core.Red, cellAt(e, core.C(0, 5)).Ball)
	assert.Equal(t, core.NoBall, cellAt(e, core.C(0, 0)).Ball)
}

func TestMoveCompletesLine(t *testing.T) {
	e := newTestEngine(t)
	load(t, e, [3]core.BallColor{core.Green, core.Yellow, core.Cyan},
		".....R...",
		".........",
		".........",
		".........",
		".RRRR....",
		".........",
		".........",
		"........g",
		".......yc",
	)

	playMove(t, e, core.C(5, 0), core.C(5, 4))
	st := e.State()

	assert.Equal(t, 5, st.Score)
	assert.Zero(t, st.Board.CountBalls(), "line and moved ball removed, nothing spawned")
	assert.Len(t, e.Popping(), 5)
	assert.Len(t, core.IncomingCoords(&st.Board), 3)
	assert.Equal(t, sorted(st.NextBalls[:]), previewColors(&st.Board))

	stats := e.Stats()
	assert.Equal(t, 1, stats.Turns)
	assert.Equal(t, 1, stats.LinesPopped)
	assert.Equal(t, 5, stats.LongestLine)
	assert.Equal(t, 5, stats.BallsPopped)
	assert.Equal(t, []int{5}, stats.LineScores)

	e.ClearPopping()
	assert.Empty(t, e.Popping())
}

func TestCrossingLinesScoreEachLine(t *testing.T) {
	e := newTestEngine(t)
	load(t, e, [3]core.BallColor{core.Green, core.Yellow, core.Cyan},
		"....R....",
		"....R....",
		"....R....",
		"....R....",
		"RRRR.....",
		"....R....",
		".........",
		".........",
		"........R",
	)

	playMove(t, e, core.C(8, 8), core.C(4, 4))

	assert.Equal(t, 13, e.Score())
	assert.Len(t, e.Popping(), 10)
	assert.Equal(t, 6, e.Stats().LongestLine)

	// The clear emptied the board, so the previews arrive at once.
	b := e.Board()
	assert.Equal(t, core.BallsPerTurn, b.CountBalls())
	assert.Len(t, core.IncomingCoords(&b), core.BallsPerTurn)
	assert.True(t, core.HasAnyMove(&b))
	assert.False(t, e.GameOver())
}

func TestMoveWithoutLineSpawns(t *testing.T) {
	e := newTestEngine(t)
	load(t, e, [3]core.BallColor{core.Green, core.Yellow, core.Cyan},
		"B........",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
		"........g",
		".......yc",
	)

	playMove(t, e, core.C(0, 0), core.C(1, 0))
	st := e.State()

	assert.Zero(t, st.Score)
	assert.Equal(t, 4, st.Board.CountBalls())
	assert.Equal(t, core.Green, st.Board.At(core.C(8, 7)).Ball)
	assert.Equal(t, core.Yellow, st.Board.At(core.C(7, 8)).Ball)
	assert.Equal(t, core.Cyan, st.Board.At(core.C(8, 8)).Ball)
	assert.Len(t, core.IncomingCoords(&st.Board), 3)
	assert.Equal(t, sorted(st.NextBalls[:]), previewColors(&st.Board))
	for _, c := range core.IncomingCoords(&st.Board) {
		assert.True(t, st.Board.At(c).Empty(), "preview at %v sits on a ball", c)
	}
	assert.Nil(t, st.Selected)
	assert.False(t, st.GameOver)
}

func TestMoveOntoPreviewReschedules(t *testing.T) {
	e := newTestEngine(t)
	load(t, e, [3]core.BallColor{core.Green, core.Yellow, core.Cyan},
		"Bg.......",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
		"........c",
		"........y",
	)
	before := e.Board()
	old := map[core.Coord]bool{}
	for _, c := range core.IncomingCoords(&before) {
		old[c] = true
	}

	playMove(t, e, core.C(0, 0), core.C(1, 0))
	after := e.Board()

	assert.Equal(t, core.Blue, after.At(core.C(1, 0)).Ball)
	assert.Equal(t, core.NoBall, after.At(core.C(1, 0)).Incoming)

	var spawned []core.BallColor
	for y := range core.Size {
		for x := range core.Size {
			c := core.C(x, y)
			if c == core.C(1, 0) || after.At(c).Empty() {
				continue
			}
			assert.False(t, old[c], "spawn landed on old preview cell %v", c)
			spawned = append(spawned, after.At(c).Ball)
		}
	}
	assert.Equal(t, sorted([]core.BallColor{core.Green, core.Yellow, core.Cyan}), sorted(spawned))

	next := core.IncomingCoords(&after)
	assert.Len(t, next, 3)
	for _, c := range next {
		assert.False(t, old[c], "next preview reused old cell %v", c)
		assert.True(t, after.At(c).Empty())
	}
}

// The move itself always frees its source cell; the game ends when the
// following spawn fills the board.
func TestSpawnFillingBoardEndsGame(t *testing.T) {
	e := newTestEngine(t)
	b := lineFreeBoard()
	b.RemoveBalls([]core.Coord{core.C(8, 8)})
	b[8][8].Incoming = core.Red
	e.board = b
	e.nextBalls = [3]core.BallColor{core.Red, core.Green, core.Blue}

	playMove(t, e, core.C(7, 8), core.C(8, 8))
	st := e.State()

	assert.True(t, st.GameOver)
	assert.True(t, st.Board.IsFull())
	assert.Empty(t, core.IncomingCoords(&st.Board))
	assert.False(t, st.TimerActive)
	assert.Zero(t, st.Score)

	// Game over is sticky.
	assert.Equal(t, OutcomeIgnored, e.SelectOrMove(core.C(0, 0)))
	e.TickSecond()
	assert.Zero(t, e.State().Timer)
	assert.True(t, e.State().GameOver)

	e.NewGame()
	assert.False(t, e.State().GameOver)
}

func TestTimerStartsAfterFirstMove(t *testing.T) {
	e := newTestEngine(t)
	load(t, e, [3]core.BallColor{core.Green, core.Yellow, core.Cyan},
		"B........",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
	)

	e.TickSecond()
	assert.Zero(t, e.State().Timer)
	assert.False(t, e.State().TimerActive)

	playMove(t, e, core.C(0, 0), core.C(0, 1))
	assert.True(t, e.State().TimerActive)

	e.TickSecond()
	e.TickSecond()
	assert.Equal(t, 2, e.State().Timer)

	e.endGame("test")
	e.TickSecond()
	assert.Equal(t, 2, e.State().Timer, "timer pauses on game over")
	assert.False(t, e.State().TimerActive)
}

func TestStateIsolation(t *testing.T) {
	e := newTestEngine(t)
	load(t, e, [3]core.BallColor{core.Green, core.Yellow, core.Cyan},
		"B........",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
	)
	require.Equal(t, OutcomeSelected, e.SelectOrMove(core.C(0, 0)))

	st := e.State()
	st.Board.SetBall(core.C(5, 5), core.Red)
	st.Board.RemoveBalls([]core.Coord{core.C(0, 0)})
	st.NextBalls[0] = core.Black
	*st.Selected = core.C(8, 8)

	fresh := e.State()
	assert.Equal(t, core.Blue, fresh.Board.At(core.C(0, 0)).Ball)
	assert.Equal(t, core.NoBall, fresh.Board.At(core.C(5, 5)).Ball)
	assert.Equal(t, core.Green, fresh.NextBalls[0])
	assert.Equal(t, core.C(0, 0), *fresh.Selected)
}

func TestHover(t *testing.T) {
	e := newTestEngine(t)
	load(t, e, [3]core.BallColor{core.Green, core.Yellow, core.Cyan},
		".R.......",
		"R........",
		".........",
		".........",
		"....B....",
		".........",
		".........",
		".........",
		".........",
	)

	e.Hover(core.C(4, 6))
	assert.Nil(t, e.HoverPath(), "no selection, no preview")

	require.Equal(t, OutcomeSelected, e.SelectOrMove(core.C(4, 4)))
	e.Hover(core.C(4, 6))
	assert.Len(t, e.HoverPath(), 3)
	assert.False(t, e.NotReachable())

	e.Hover(core.C(0, 0))
	assert.Nil(t, e.HoverPath())
	assert.True(t, e.NotReachable())

	e.LeaveHover()
	assert.False(t, e.NotReachable())
	assert.Equal(t, PhaseSelected, e.Phase(), "hover has no state effect")
}

func TestClearSpawnedLines(t *testing.T) {
	rows := []string{
		"RRRRr....",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
		"B........",
	}

	off := newTestEngine(t)
	load(t, off, [3]core.BallColor{core.Red, core.Red, core.Red}, rows...)
	playMove(t, off, core.C(0, 8), core.C(1, 8))
	assert.Zero(t, off.Score())
	assert.Equal(t, core.Red, cellAt(off, core.C(4, 0)).Ball)

	on := newTestEngine(t, WithRules(Rules{InitialBalls: 3, InitialPreview: true, ClearSpawnedLines: true}))
	load(t, on, [3]core.BallColor{core.Red, core.Red, core.Red}, rows...)
	playMove(t, on, core.C(0, 8), core.C(1, 8))
	assert.Equal(t, 5, on.Score())
	assert.Equal(t, core.NoBall, cellAt(on, core.C(4, 0)).Ball)
	assert.Len(t, on.Popping(), 5)
}

func TestSeededGamesAreDeterministic(t *testing.T) {
	a := newTestEngine(t, WithSeed(42))
	z := newTestEngine(t, WithSeed(42))
	assert.Equal(t, a.State(), z.State())

	// Move the last ball in row-major order to its first reachable cell.
	for range 5 {
		st := a.State()
		var from core.Coord
		for y := range core.Size {
			for x := range core.Size {
				if !st.Board[y][x].Empty() {
					from = core.C(x, y)
				}
			}
		}
		var to core.Coord
		for c := range core.ReachableFrom(&st.Board, from) {
			if to == (core.Coord{}) || c.Y < to.Y || (c.Y == to.Y && c.X < to.X) {
				to = c
			}
		}
		for _, e := range []*Engine{a, z} {
			e.SelectOrMove(from)
			e.SelectOrMove(to)
			e.FinishMove()
		}
		require.Equal(t, a.State(), z.State())
	}
}

type recordCall struct {
	score, elapsed int
	meta           Metadata
}

type fakeRecorder struct {
	best  int
	err   error
	calls []recordCall
}

func (f *fakeRecorder) IsNewHighScore(score int) bool {
	return score > f.best
}

func (f *fakeRecorder) RecordHighScore(score, elapsed int, meta Metadata) (bool, error) {
	f.calls = append(f.calls, recordCall{score: score, elapsed: elapsed, meta: meta})
	if f.err != nil {
		return false, f.err
	}
	f.best = score
	return true, nil
}

func lineFixture(t *testing.T, e *Engine) {
	t.Helper()
	load(t, e, [3]core.BallColor{core.Green, core.Yellow, core.Cyan},
		".....R...",
		".........",
		".........",
		".........",
		".RRRR....",
		".........",
		".........",
		".........",
		".........",
	)
}

func TestRecorderCalledOnNewBest(t *testing.T) {
	rec := &fakeRecorder{}
	e := newTestEngine(t, WithRecorder(rec))
	lineFixture(t, e)
	e.timer = 7
	e.timerActive = true

	playMove(t, e, core.C(5, 0), core.C(5, 4))

	require.Len(t, rec.calls, 1)
	call := rec.calls[0]
	assert.Equal(t, 5, call.score)
	assert.Equal(t, 7, call.elapsed)
	assert.Equal(t, e.GameID(), call.meta.GameID)
	assert.Equal(t, 1, call.meta.Moves)
	assert.Equal(t, 1, call.meta.LinesCleared)
	assert.Equal(t, []int{5}, call.meta.LineLengths)
	assert.True(t, e.NewHighScore())
}

func TestRecorderSkippedWhenNotBest(t *testing.T) {
	rec := &fakeRecorder{best: 100}
	e := newTestEngine(t, WithRecorder(rec))
	lineFixture(t, e)

	playMove(t, e, core.C(5, 0), core.C(5, 4))

	assert.Empty(t, rec.calls)
	assert.False(t, e.NewHighScore())
	assert.Equal(t, 5, e.Score())
}

func TestRecorderFailureDoesNotAffectGame(t *testing.T) {
	rec := &fakeRecorder{err: errors.New("disk full")}
	e := newTestEngine(t, WithRecorder(rec))
	lineFixture(t, e)

	playMove(t, e, core.C(5, 0), core.C(5, 4))

	assert.Len(t, rec.calls, 1)
	assert.Equal(t, 5, e.Score())
	assert.False(t, e.NewHighScore())
	assert.Equal(t, PhaseIdle, e.Phase())
}

func TestRecorderNotCalledWithoutScore(t *testing.T) {
	rec := &fakeRecorder{}
	e := newTestEngine(t, WithRecorder(rec))
	load(t, e, [3]core.BallColor{core.Green, core.Yellow, core.Cyan},
		"B........",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
	)

	playMove(t, e, core.C(0, 0), core.C(0, 1))
	assert.Empty(t, rec.calls)
}

func TestClassicFirstMoveSpawns(t *testing.T) {
	e := newTestEngine(t, WithRules(ClassicRules()))
	load(t, e, [3]core.BallColor{core.Green, core.Yellow, core.Cyan},
		"B.......R",
		".........",
		".........",
		".........",
		"....P....",
		".........",
		".........",
		".........",
		"K.......C",
	)
	before := e.Board()
	require.Empty(t, core.IncomingCoords(&before))

	playMove(t, e, core.C(0, 0), core.C(1, 0))
	after := e.Board()

	assert.Zero(t, e.Score())
	assert.Equal(t, 5+core.BallsPerTurn, after.CountBalls())
	var spawned []core.BallColor
	for y := range core.Size {
		for x := range core.Size {
			c := core.C(x, y)
			if c == core.C(1, 0) || after.At(c).Empty() || (c != core.C(0, 0) && !before.At(c).Empty()) {
				continue
			}
			spawned = append(spawned, after.At(c).Ball)
		}
	}
	assert.Equal(t, sorted([]core.BallColor{core.Green, core.Yellow, core.Cyan}), sorted(spawned))
	assert.Len(t, core.IncomingCoords(&after), core.BallsPerTurn)
}

func TestReachable(t *testing.T) {
	e := newTestEngine(t)
	load(t, e, [3]core.BallColor{core.Green, core.Yellow, core.Cyan},
		"R.B......",
		"BB.......",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
	)
	assert.Nil(t, e.Reachable())

	require.Equal(t, OutcomeSelected, e.SelectOrMove(core.C(0, 0)))
	assert.Equal(t, map[core.Coord]bool{core.C(1, 0): true}, e.Reachable())

	require.Equal(t, OutcomeSelected, e.SelectOrMove(core.C(2, 0)))
	reach := e.Reachable()
	assert.True(t, reach[core.C(8, 8)])
	assert.False(t, reach[core.C(1, 0)])
}
