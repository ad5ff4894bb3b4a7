// Package storage provides SQLite persistence for Lines: the leaderboard,
// finished-game history and suspended games. It uses the pure-Go
// modernc.org/sqlite driver to avoid CGO.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// HighScoreCapacity is the number of entries kept per leaderboard.
const HighScoreCapacity = 10

// ErrNoSavedGame is returned by LoadGame when nothing is saved.
var ErrNoSavedGame = errors.New("storage: no saved game")

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// HighScoreEntry is one leaderboard row.
type HighScoreEntry struct {
	ID           int64
	GameUID      string // engine game identifier; one row per game
	GameID       string // variant, e.g. "lines" or "lines_classic"
	Player       string
	Score        int
	Duration     int // seconds
	Moves        int
	LinesCleared int
	LongestLine  int
	BallsPopped  int
	LineLengths  []int
	CreatedAt    time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_game_id ON scores(game_id);

		CREATE TABLE IF NOT EXISTS high_scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_uid TEXT NOT NULL UNIQUE,
			game_id TEXT NOT NULL,
			player TEXT NOT NULL,
			score INTEGER NOT NULL,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			moves INTEGER NOT NULL DEFAULT 0,
			lines_cleared INTEGER NOT NULL DEFAULT 0,
			longest_line INTEGER NOT NULL DEFAULT 0,
			balls_popped INTEGER NOT NULL DEFAULT 0,
			line_lengths TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_high_scores_top ON high_scores(game_id, score DESC);

		CREATE TABLE IF NOT EXISTS saved_games (
			game_id TEXT NOT NULL,
			player TEXT NOT NULL,
			data BLOB NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (game_id, player)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScore appends a finished game to the history.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(gameID string, score, durationSecs int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (game_id, score, duration_secs) VALUES (?, ?, ?)",
		gameID, score, durationSecs,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// UpsertHighScore stores e, keyed by its GameUID: a later, higher score
// from the same game replaces the earlier row. The board is then trimmed
// to HighScoreCapacity; the result reports whether e survived the trim.
func (s *Store) UpsertHighScore(e HighScoreEntry) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	_, err = tx.Exec(
		`INSERT INTO high_scores
		 (game_uid, game_id, player, score, duration_secs, moves, lines_cleared, longest_line, balls_popped, line_lengths)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(game_uid) DO UPDATE SET
			score = excluded.score,
			duration_secs = excluded.duration_secs,
			moves = excluded.moves,
			lines_cleared = excluded.lines_cleared,
			longest_line = excluded.longest_line,
			balls_popped = excluded.balls_popped,
			line_lengths = excluded.line_lengths
		 WHERE excluded.score > high_scores.score`,
		e.GameUID, e.GameID, e.Player, e.Score, e.Duration,
		e.Moves, e.LinesCleared, e.LongestLine, e.BallsPopped, joinInts(e.LineLengths),
	)
	if err != nil {
		return false, fmt.Errorf("storage: cannot save high score: %w", err)
	}

	_, err = tx.Exec(
		`DELETE FROM high_scores
		 WHERE game_id = ? AND id NOT IN (
			SELECT id FROM high_scores WHERE game_id = ?
			ORDER BY score DESC, id ASC
			LIMIT ?
		 )`,
		e.GameID, e.GameID, HighScoreCapacity,
	)
	if err != nil {
		return false, fmt.Errorf("storage: cannot trim high scores: %w", err)
	}

	var kept int
	if err := tx.QueryRow("SELECT COUNT(*) FROM high_scores WHERE game_uid = ?", e.GameUID).Scan(&kept); err != nil {
		return false, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("storage: cannot commit high score: %w", err)
	}
	return kept > 0, nil
}

// TopHighScores returns the leaderboard for gameID, best first.
func (s *Store) TopHighScores(gameID string, limit int) ([]HighScoreEntry, error) {
	if limit <= 0 {
		limit = HighScoreCapacity
	}

	rows, err := s.db.Query(
		`SELECT id, game_uid, game_id, player, score, duration_secs, moves,
		        lines_cleared, longest_line, balls_popped, line_lengths, created_at
		 FROM high_scores
		 WHERE game_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query high scores: %w", err)
	}
	defer rows.Close()

	var entries []HighScoreEntry
	for rows.Next() {
		var e HighScoreEntry
		var lengths string
		var createdAt any
		if err := rows.Scan(
			&e.ID, &e.GameUID, &e.GameID, &e.Player, &e.Score, &e.Duration, &e.Moves,
			&e.LinesCleared, &e.LongestLine, &e.BallsPopped, &lengths, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.LineLengths = splitInts(lengths)
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// IsNewHighScore reports whether score would enter the leaderboard.
func (s *Store) IsNewHighScore(gameID string, score int) (bool, error) {
	if score <= 0 {
		return false, nil
	}

	var count int
	var lowest sql.NullInt64
	err := s.db.QueryRow(
		`SELECT COUNT(*), MIN(score) FROM (
			SELECT score FROM high_scores WHERE game_id = ?
			ORDER BY score DESC LIMIT ?
		 )`,
		gameID, HighScoreCapacity,
	).Scan(&count, &lowest)
	if err != nil {
		return false, fmt.Errorf("storage: cannot query high scores: %w", err)
	}

	if count < HighScoreCapacity || !lowest.Valid {
		return true, nil
	}
	return int64(score) > lowest.Int64, nil
}

// HighScore returns the best leaderboard score for gameID, or 0.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM high_scores WHERE game_id = ?",
		gameID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearScores deletes the leaderboard and history for gameID.
func (s *Store) ClearScores(gameID string) error {
	for _, table := range []string{"scores", "high_scores"} {
		if _, err := s.db.Exec("DELETE FROM "+table+" WHERE game_id = ?", gameID); err != nil {
			return fmt.Errorf("storage: cannot clear %s: %w", table, err)
		}
	}
	return nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalTime  int // seconds played across finished games
	LastPlayed time.Time
}

// GetGameStats aggregates the finished-game history for gameID.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(duration_secs), 0), MAX(created_at)
		 FROM scores WHERE game_id = ?`,
		gameID,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalTime, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// SaveGame stores a suspended game, replacing any earlier one for the
// same game and player.
func (s *Store) SaveGame(gameID, player string, data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO saved_games (game_id, player, data, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(game_id, player) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at`,
		gameID, player, data,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save game: %w", err)
	}
	return nil
}

// LoadGame returns the suspended game for gameID and player, or
// ErrNoSavedGame.
func (s *Store) LoadGame(gameID, player string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow(
		"SELECT data FROM saved_games WHERE game_id = ? AND player = ?",
		gameID, player,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSavedGame
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load game: %w", err)
	}
	return data, nil
}

// DeleteGame removes a suspended game. Deleting nothing is not an error.
func (s *Store) DeleteGame(gameID, player string) error {
	_, err := s.db.Exec("DELETE FROM saved_games WHERE game_id = ? AND player = ?", gameID, player)
	if err != nil {
		return fmt.Errorf("storage: cannot delete saved game: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and the SQLite text format.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func joinInts(xs []int) string {
	return strings.Join(lo.Map(xs, func(n int, _ int) string {
		return strconv.Itoa(n)
	}), ",")
}

func splitInts(s string) []int {
	if s == "" {
		return nil
	}
	var out []int
	for _, part := range strings.Split(s, ",") {
		if n, err := strconv.Atoi(part); err == nil {
			out = append(out, n)
		}
	}
	return out
}
