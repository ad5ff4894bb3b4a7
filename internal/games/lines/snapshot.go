package lines

import (
	"github.com/vovakirdan/tui-lines/internal/games/lines/core"
	"github.com/vovakirdan/tui-lines/internal/games/lines/engine"
)

// GameStateType represents the current game state.
type GameStateType string

const (
	StateIdle        GameStateType = "idle"
	StateSelected    GameStateType = "selected"
	StateAnimating   GameStateType = "animating"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Tick        uint64
	Variant     string
	Board       []string // core row encoding
	NextBalls   string   // one letter per ball
	Score       int
	Timer       int
	TimerActive bool
	Selected    string // "x,y" or empty
	CursorX     int
	CursorY     int
	Turns       int
	State       GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	if g.eng == nil {
		return Snapshot{Variant: g.variant}
	}
	st := g.eng.State()

	state := StateIdle
	switch {
	case g.layout.tooSmall:
		state = StatePausedSmall
	case st.GameOver:
		state = StateGameOver
	case g.eng.Phase() == engine.PhaseAnimating:
		state = StateAnimating
	case g.eng.Phase() == engine.PhaseSelected:
		state = StateSelected
	}

	next := make([]byte, 0, core.BallsPerTurn)
	for _, c := range st.NextBalls {
		next = append(next, c.Char())
	}

	var selected string
	if st.Selected != nil {
		selected = st.Selected.String()
	}

	return Snapshot{
		Tick:        g.tick,
		Variant:     g.variant,
		Board:       st.Board.Rows(),
		NextBalls:   string(next),
		Score:       st.Score,
		Timer:       st.Timer,
		TimerActive: st.TimerActive,
		Selected:    selected,
		CursorX:     g.cursor.X,
		CursorY:     g.cursor.Y,
		Turns:       g.eng.Stats().Turns,
		State:       state,
	}
}
