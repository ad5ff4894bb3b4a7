// Package engine implements the Lines turn state machine: selection,
// animated moves, the settle sequence (move, match, clear or spawn,
// fullness check), the score timer and high-score reporting.
//
// An Engine is single-owner. Callers drive it from one goroutine; the
// only work it hands off is high-score recording, through the dispatcher.
package engine

import (
	"encoding/hex"
	"io"
	"math"
	"math/rand"
	"slices"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"lukechampine.com/frand"

	"github.com/vovakirdan/tui-lines/internal/games/lines/core"
)

// Phase is the position of the turn state machine. Game over is tracked
// separately because it can be entered from any phase.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSelected
	PhaseAnimating
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSelected:
		return "selected"
	case PhaseAnimating:
		return "animating"
	default:
		return "unknown"
	}
}

// Rules are the per-variant knobs. Board size, balls per turn and the
// clear threshold are fixed in the core package.
type Rules struct {
	InitialBalls      int  // balls placed by NewGame
	InitialPreview    bool // whether NewGame also places the first preview
	ClearSpawnedLines bool // whether arriving balls can complete lines
}

// DefaultRules starts with three balls and three previews.
func DefaultRules() Rules {
	return Rules{InitialBalls: 3, InitialPreview: true}
}

// ClassicRules starts with five balls and no preview.
func ClassicRules() Rules {
	return Rules{InitialBalls: 5}
}

func (r Rules) normalized() Rules {
	maxInitial := core.Size*core.Size - core.BallsPerTurn
	switch {
	case r.InitialBalls < 1:
		r.InitialBalls = 1
	case r.InitialBalls > maxInitial:
		r.InitialBalls = maxInitial
	}
	return r
}

// GameState is the published snapshot of the engine. Board and NextBalls
// are arrays, so a snapshot shares nothing with the engine.
type GameState struct {
	Board       core.Board
	Score       int
	Selected    *core.Coord
	GameOver    bool
	NextBalls   [core.BallsPerTurn]core.BallColor
	Timer       int
	TimerActive bool
}

// move is a confirmed move stepping along its path.
type move struct {
	path  []core.Coord
	step  int
	color core.BallColor
}

// Engine owns all mutable game state.
type Engine struct {
	rules    Rules
	rng      core.Source
	recorder HighScoreRecorder
	dispatch func(func())
	logger   *log.Logger

	gameID      string
	board       core.Board
	score       int
	selected    *core.Coord
	phase       Phase
	gameOver    bool
	nextBalls   [core.BallsPerTurn]core.BallColor
	timer       int
	timerActive bool
	stats       Stats

	moving       *move
	hoverPath    []core.Coord
	notReachable bool
	popping      []core.Coord

	reported int
	newHigh  *atomic.Bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithSource sets the randomness for spawns and colors.
func WithSource(src core.Source) Option {
	return func(e *Engine) { e.rng = src }
}

// WithSeed seeds a math/rand source.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.rng = rand.New(rand.NewSource(seed)) }
}

// WithRecorder attaches a high-score recorder.
func WithRecorder(r HighScoreRecorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithDispatcher sets how recorder calls are run. The default starts a
// goroutine per call; tests pass a function that runs the task inline.
func WithDispatcher(d func(func())) Option {
	return func(e *Engine) {
		if d != nil {
			e.dispatch = d
		}
	}
}

// WithRules sets the variant rules.
func WithRules(r Rules) Option {
	return func(e *Engine) { e.rules = r }
}

// New builds an engine and starts the first game.
func New(opts ...Option) *Engine {
	e := &Engine{
		rules:    DefaultRules(),
		dispatch: func(task func()) { go task() },
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(int64(frand.Uint64n(math.MaxInt64))))
	}
	e.rules = e.rules.normalized()
	e.NewGame()
	return e
}

// NewGame discards the current game and deals a fresh board.
func (e *Engine) NewGame() {
	b := core.NewBoard()
	initial := core.RandomColors(e.rules.InitialBalls, e.rng)
	b = core.PlaceBalls(&b, core.ChooseEmptyCells(&b, len(initial), nil, e.rng), initial)

	e.rollNextBalls()
	if e.rules.InitialPreview {
		b = core.PlacePreviews(&b, core.ChooseEmptyCells(&b, core.BallsPerTurn, nil, e.rng), e.nextBalls[:])
	}

	e.gameID = newGameID()
	e.board = b
	e.score = 0
	e.selected = nil
	e.phase = PhaseIdle
	e.gameOver = false
	e.timer = 0
	e.timerActive = false
	e.stats = Stats{}
	e.moving = nil
	e.popping = nil
	e.reported = 0
	e.newHigh = new(atomic.Bool)
	e.LeaveHover()

	e.logger.Debug("new game", "game", e.gameID, "balls", e.rules.InitialBalls, "preview", e.rules.InitialPreview)
}

func (e *Engine) rollNextBalls() {
	copy(e.nextBalls[:], core.RandomColors(core.BallsPerTurn, e.rng))
}

func newGameID() string {
	return hex.EncodeToString(frand.Bytes(8))
}

// State returns a snapshot of the committed game state.
func (e *Engine) State() GameState {
	st := GameState{
		Board:       e.board,
		Score:       e.score,
		GameOver:    e.gameOver,
		NextBalls:   e.nextBalls,
		Timer:       e.timer,
		TimerActive: e.timerActive,
	}
	if e.selected != nil {
		sel := *e.selected
		st.Selected = &sel
	}
	return st
}

// Board returns a copy of the current board.
func (e *Engine) Board() core.Board {
	return e.board
}

// Score returns the current score.
func (e *Engine) Score() int {
	return e.score
}

// GameOver reports whether the game has ended.
func (e *Engine) GameOver() bool {
	return e.gameOver
}

// Phase returns the state machine phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// GameID identifies the current game. It changes on every NewGame.
func (e *Engine) GameID() string {
	return e.gameID
}

// Rules returns the active rules.
func (e *Engine) Rules() Rules {
	return e.rules
}

// Stats returns a copy of the per-game statistics.
func (e *Engine) Stats() Stats {
	s := e.stats
	s.LineLengths = slices.Clone(e.stats.LineLengths)
	s.LineScores = slices.Clone(e.stats.LineScores)
	return s
}

// Popping returns the cells cleared by the most recent settle, for the
// pop animation. The list is empty once ClearPopping has been called.
func (e *Engine) Popping() []core.Coord {
	return slices.Clone(e.popping)
}

// ClearPopping ends the pop animation.
func (e *Engine) ClearPopping() {
	e.popping = nil
}

// NewHighScore reports whether the recorder accepted a score from this game.
func (e *Engine) NewHighScore() bool {
	return e.newHigh.Load()
}

// TickSecond advances the score timer by one second while it runs.
func (e *Engine) TickSecond() {
	if e.timerActive && !e.gameOver {
		e.timer++
	}
}
