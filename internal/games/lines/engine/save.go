package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/cespare/xxhash"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-lines/internal/games/lines/core"
)

// saveVersion is bumped whenever the SavedGame layout changes.
const saveVersion = 1

// ErrInvalidSave is returned by Restore and DecodeSavedGame for saves that
// fail validation.
var ErrInvalidSave = errors.New("engine: invalid saved game")

// SavedGame is the persisted form of an in-progress game.
// Board rows use the core Rows encoding.
type SavedGame struct {
	Version     int      `yaml:"version"`
	GameID      string   `yaml:"game_id"`
	Board       []string `yaml:"board"`
	Score       int      `yaml:"score"`
	NextBalls   []string `yaml:"next_balls"`
	Timer       int      `yaml:"timer"`
	TimerActive bool     `yaml:"timer_active"`
	GameOver    bool     `yaml:"game_over"`
	Stats       Stats    `yaml:"stats"`
	Checksum    uint64   `yaml:"checksum"`
}

func (s SavedGame) digest() uint64 {
	var sb strings.Builder
	sb.WriteString(strings.Join(s.Board, "/"))
	sb.WriteByte('|')
	sb.WriteString(strings.Join(s.NextBalls, ","))
	sb.WriteByte('|')
	sb.WriteString(strconv.Itoa(s.Score))
	sb.WriteByte('|')
	sb.WriteString(strconv.Itoa(s.Timer))
	return xxhash.Sum64String(sb.String())
}

// Encode serializes the save as YAML.
func (s SavedGame) Encode() ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("engine: cannot encode saved game: %w", err)
	}
	return data, nil
}

// DecodeSavedGame parses YAML produced by Encode and verifies its checksum.
func DecodeSavedGame(data []byte) (SavedGame, error) {
	var s SavedGame
	if err := yaml.Unmarshal(data, &s); err != nil {
		return SavedGame{}, fmt.Errorf("%w: %v", ErrInvalidSave, err)
	}
	if s.Version != saveVersion {
		return SavedGame{}, fmt.Errorf("%w: version %d", ErrInvalidSave, s.Version)
	}
	if s.Checksum != s.digest() {
		return SavedGame{}, fmt.Errorf("%w: checksum mismatch", ErrInvalidSave)
	}
	return s, nil
}

// Save captures the committed state. A move still animating is not part
// of it, and neither is the selection.
func (e *Engine) Save() SavedGame {
	s := SavedGame{
		Version:     saveVersion,
		GameID:      e.gameID,
		Board:       e.board.Rows(),
		Score:       e.score,
		Timer:       e.timer,
		TimerActive: e.timerActive,
		GameOver:    e.gameOver,
		Stats:       e.Stats(),
	}
	for _, c := range e.nextBalls {
		s.NextBalls = append(s.NextBalls, c.String())
	}
	s.Checksum = s.digest()
	return s
}

// Restore replaces the current game with s. On error the engine is left
// untouched.
func (e *Engine) Restore(s SavedGame) error {
	board, err := core.ParseRows(s.Board)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSave, err)
	}
	if len(s.NextBalls) != core.BallsPerTurn {
		return fmt.Errorf("%w: want %d next balls, got %d", ErrInvalidSave, core.BallsPerTurn, len(s.NextBalls))
	}
	var next [core.BallsPerTurn]core.BallColor
	for i, name := range s.NextBalls {
		c, err := core.ParseColorName(name)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSave, err)
		}
		next[i] = c
	}
	if s.Score < 0 || s.Timer < 0 {
		return fmt.Errorf("%w: negative score or timer", ErrInvalidSave)
	}

	e.gameID = s.GameID
	if e.gameID == "" {
		e.gameID = newGameID()
	}
	e.board = board
	e.score = s.Score
	e.nextBalls = next
	e.timer = s.Timer
	e.timerActive = s.TimerActive && !s.GameOver
	e.gameOver = s.GameOver
	e.stats = s.Stats
	e.selected = nil
	e.phase = PhaseIdle
	e.moving = nil
	e.popping = nil
	e.reported = s.Score
	e.newHigh = new(atomic.Bool)
	e.LeaveHover()

	e.logger.Debug("game restored", "game", e.gameID, "score", e.score, "turns", e.stats.Turns)
	return nil
}
