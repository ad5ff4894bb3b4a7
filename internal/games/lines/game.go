// Package lines adapts the Lines engine to the platform: keyboard cursor
// and mouse input, tick-based animation pacing, the game clock, and
// rendering into a core.Screen.
package lines

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-lines/internal/config"
	platformcore "github.com/vovakirdan/tui-lines/internal/core"
	"github.com/vovakirdan/tui-lines/internal/games/lines/core"
	"github.com/vovakirdan/tui-lines/internal/games/lines/engine"
	"github.com/vovakirdan/tui-lines/internal/registry"
)

var errNotStarted = errors.New("lines: game not started")

// Game implements registry.Game for one Lines variant.
type Game struct {
	variant  string
	cfg      config.LinesConfig
	recorder engine.HighScoreRecorder
	logger   *log.Logger
	dispatch func(func())
	eng      *engine.Engine

	tick     uint64
	tickRate int
	screenW  int
	screenH  int
	layout   layout
	best     int

	cursor     core.Coord
	stepTicks  int // ticks per path cell, 0 = instant
	popTicks   int // ticks the pop marker stays, 0 = until next click
	moveWait   int
	popLeft    int
	clockTicks int
}

func init() {
	registry.Register(config.VariantStandard, func() registry.Game {
		return New(config.VariantStandard)
	})
	registry.Register(config.VariantClassic, func() registry.Game {
		return New(config.VariantClassic)
	})
}

// New creates a game for the given variant with the built-in configuration.
func New(variant string) *Game {
	g := &Game{
		variant: variant,
		logger:  log.New(io.Discard),
	}
	g.Configure(config.DefaultLinesConfig())
	return g
}

// Configure replaces the configuration. The rules take effect on the next
// Reset; animation pacing applies immediately.
func (g *Game) Configure(cfg config.LinesConfig) {
	config.ApplyVariant(&cfg, g.variant)
	cfg.Normalize()
	g.cfg = cfg
	g.updatePacing()
}

// UseRecorder attaches the high-score collaborator for future games.
func (g *Game) UseRecorder(r engine.HighScoreRecorder) {
	g.recorder = r
}

// UseLogger sets the logger handed to the engine.
func (g *Game) UseLogger(l *log.Logger) {
	if l != nil {
		g.logger = l
	}
}

// UseDispatcher overrides how recorder calls are run.
func (g *Game) UseDispatcher(d func(func())) {
	g.dispatch = d
}

// UseBestScore sets the best known score shown in the HUD.
func (g *Game) UseBestScore(best int) {
	g.best = best
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return g.variant
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.variant == config.VariantClassic {
		return "Lines (Classic)"
	}
	return "Lines"
}

// Engine exposes the turn engine, mainly for tests and tooling.
func (g *Game) Engine() *engine.Engine {
	return g.eng
}

// Reset starts a new game.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = platformcore.DefaultConfig().TickRate
	}
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.layout = computeLayout(g.screenW, g.screenH)
	g.updatePacing()

	opts := []engine.Option{
		engine.WithSeed(cfg.Seed),
		engine.WithRules(engine.Rules{
			InitialBalls:      g.cfg.Rules.InitialBalls,
			InitialPreview:    g.cfg.Rules.InitialPreview,
			ClearSpawnedLines: g.cfg.Rules.ClearSpawnedLines,
		}),
		engine.WithLogger(g.logger),
		engine.WithDispatcher(g.dispatch),
	}
	if g.recorder != nil {
		opts = append(opts, engine.WithRecorder(g.recorder))
	}
	g.eng = engine.New(opts...)

	g.tick = 0
	g.resetTransient()
}

// Resize updates the layout without restarting the game.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
	g.layout = computeLayout(w, h)
}

func (g *Game) resetTransient() {
	g.cursor = core.C(core.Size/2, core.Size/2)
	g.moveWait = 0
	g.popLeft = 0
	g.clockTicks = 0
}

func (g *Game) updatePacing() {
	rate := g.tickRate
	if rate <= 0 {
		rate = platformcore.DefaultConfig().TickRate
	}
	g.stepTicks = msToTicks(g.cfg.Animation.MoveStepMs, rate)
	g.popTicks = msToTicks(g.cfg.Animation.PopMs, rate)
}

// msToTicks rounds up, so any positive duration lasts at least one tick.
func msToTicks(ms, rate int) int {
	if ms <= 0 {
		return 0
	}
	return (ms*rate + 999) / 1000
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	if g.eng == nil {
		return platformcore.StepResult{}
	}
	g.tick++

	if in.Has(platformcore.ActionRestart) {
		g.eng.NewGame()
		g.resetTransient()
		return platformcore.StepResult{State: g.State()}
	}

	if !g.layout.tooSmall {
		g.handleKeys(in)
		for _, ev := range in.Pointer {
			g.handlePointer(ev)
		}
	}

	g.animate()
	g.runClock()

	return platformcore.StepResult{State: g.State()}
}

// click forwards a board click to the engine and starts the move
// animation when a move was accepted.
func (g *Game) click(c core.Coord) {
	if g.eng.SelectOrMove(c) != engine.OutcomeMoving {
		return
	}
	g.popLeft = 0
	g.moveWait = 0
	if g.stepTicks == 0 {
		g.eng.FinishMove()
		g.settled()
	}
}

func (g *Game) animate() {
	if g.eng.Phase() == engine.PhaseAnimating {
		g.moveWait++
		if g.moveWait < g.stepTicks {
			return
		}
		g.moveWait = 0
		g.eng.Advance()
		if g.eng.Phase() != engine.PhaseAnimating {
			g.settled()
		}
		return
	}

	if g.popLeft > 0 {
		g.popLeft--
		if g.popLeft == 0 {
			g.eng.ClearPopping()
		}
	}
}

// settled runs after the engine finished a move.
func (g *Game) settled() {
	if len(g.eng.Popping()) > 0 {
		g.popLeft = g.popTicks
		if g.popTicks == 0 {
			g.eng.ClearPopping()
		}
	}
	// Keep the path preview in sync with the new board.
	g.eng.Hover(g.cursor)
}

func (g *Game) runClock() {
	g.clockTicks++
	if g.clockTicks >= g.tickRate {
		g.clockTicks = 0
		g.eng.TickSecond()
	}
}

// State returns the platform-facing game state.
func (g *Game) State() platformcore.GameState {
	if g.eng == nil {
		return platformcore.GameState{}
	}
	st := g.eng.State()
	return platformcore.GameState{
		Score:    st.Score,
		GameOver: st.GameOver,
		Elapsed:  st.Timer,
	}
}

// SaveState serializes the committed game state.
func (g *Game) SaveState() ([]byte, error) {
	if g.eng == nil {
		return nil, errNotStarted
	}
	return g.eng.Save().Encode()
}

// RestoreState resumes a game produced by SaveState.
func (g *Game) RestoreState(data []byte) error {
	if g.eng == nil {
		return errNotStarted
	}
	saved, err := engine.DecodeSavedGame(data)
	if err != nil {
		return fmt.Errorf("lines: cannot restore: %w", err)
	}
	if err := g.eng.Restore(saved); err != nil {
		return fmt.Errorf("lines: cannot restore: %w", err)
	}
	g.resetTransient()
	return nil
}

var (
	_ registry.Resumable = (*Game)(nil)
	_ registry.Resizable = (*Game)(nil)
)
