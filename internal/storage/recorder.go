package storage

import (
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/vovakirdan/tui-lines/internal/games/lines/engine"
)

// Recorder feeds engine high scores into the leaderboard for one variant
// and player. Writes are retried, since a concurrent writer can briefly
// hold the database lock.
type Recorder struct {
	store    *Store
	gameID   string
	player   string
	attempts uint
	delay    time.Duration
}

var _ engine.HighScoreRecorder = (*Recorder)(nil)

// NewRecorder creates a recorder for gameID and player.
func NewRecorder(store *Store, gameID, player string) *Recorder {
	return &Recorder{
		store:    store,
		gameID:   gameID,
		player:   player,
		attempts: 3,
		delay:    25 * time.Millisecond,
	}
}

// IsNewHighScore reports whether score would enter the leaderboard. A
// failing query counts as "no".
func (r *Recorder) IsNewHighScore(score int) bool {
	ok, err := r.store.IsNewHighScore(r.gameID, score)
	return err == nil && ok
}

// RecordHighScore upserts the game's leaderboard row.
func (r *Recorder) RecordHighScore(score, elapsedSeconds int, meta engine.Metadata) (bool, error) {
	entry := HighScoreEntry{
		GameUID:      meta.GameID,
		GameID:       r.gameID,
		Player:       r.player,
		Score:        score,
		Duration:     elapsedSeconds,
		Moves:        meta.Moves,
		LinesCleared: meta.LinesCleared,
		LongestLine:  meta.LongestLine,
		BallsPopped:  meta.BallsPopped,
		LineLengths:  meta.LineLengths,
	}

	var kept bool
	err := r.retry(func() error {
		var err error
		kept, err = r.store.UpsertHighScore(entry)
		return err
	})
	return kept, err
}

// SaveGame stores a suspended game with the same retry policy.
func (r *Recorder) SaveGame(data []byte) error {
	return r.retry(func() error {
		return r.store.SaveGame(r.gameID, r.player, data)
	})
}

func (r *Recorder) retry(fn func() error) error {
	return retry.Do(
		fn,
		retry.Attempts(r.attempts),
		retry.Delay(r.delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
}
