package engine

// HighScoreRecorder is the persistence collaborator for high scores.
// Implementations may block; the engine never calls them on its own
// goroutine.
type HighScoreRecorder interface {
	// IsNewHighScore reports whether score would enter the high-score table.
	IsNewHighScore(score int) bool
	// RecordHighScore stores the score. It reports whether the entry was kept.
	RecordHighScore(score, elapsedSeconds int, meta Metadata) (bool, error)
}

// reportScore offers the current score to the recorder when it improved
// since the last report. Failures are logged and otherwise ignored.
func (e *Engine) reportScore() {
	if e.recorder == nil || e.score <= e.reported {
		return
	}
	e.reported = e.score

	rec := e.recorder
	logger := e.logger
	score, elapsed, meta := e.score, e.timer, e.metadata()
	flag := e.newHigh

	e.dispatch(func() {
		if !rec.IsNewHighScore(score) {
			return
		}
		ok, err := rec.RecordHighScore(score, elapsed, meta)
		if err != nil {
			logger.Warn("high score not recorded", "game", meta.GameID, "score", score, "err", err)
			return
		}
		if ok {
			flag.Store(true)
			logger.Debug("high score recorded", "game", meta.GameID, "score", score)
		}
	})
}
