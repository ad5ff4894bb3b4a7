package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-lines/internal/games/lines/engine"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func entry(uid string, score int) HighScoreEntry {
	return HighScoreEntry{GameUID: uid, GameID: "lines", Player: "ada", Score: score}
}

func TestStoreOpenCreatesFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err)
}

func TestUpsertHighScoreOrdering(t *testing.T) {
	store := openTestStore(t)

	for i, score := range []int{40, 90, 15} {
		kept, err := store.UpsertHighScore(entry(fmt.Sprintf("g%d", i), score))
		require.NoError(t, err)
		assert.True(t, kept)
	}

	top, err := store.TopHighScores("lines", 10)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, []int{90, 40, 15}, []int{top[0].Score, top[1].Score, top[2].Score})
	assert.Equal(t, "ada", top[0].Player)

	best, err := store.HighScore("lines")
	require.NoError(t, err)
	assert.Equal(t, 90, best)
}

func TestUpsertHighScoreSameGameKeepsBest(t *testing.T) {
	store := openTestStore(t)

	e := entry("game-1", 10)
	e.LineLengths = []int{5}
	_, err := store.UpsertHighScore(e)
	require.NoError(t, err)

	e.Score = 23
	e.Moves = 14
	e.LineLengths = []int{5, 6}
	_, err = store.UpsertHighScore(e)
	require.NoError(t, err)

	e.Score = 7
	_, err = store.UpsertHighScore(e)
	require.NoError(t, err)

	top, err := store.TopHighScores("lines", 0)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, 23, top[0].Score)
	assert.Equal(t, 14, top[0].Moves)
	assert.Equal(t, []int{5, 6}, top[0].LineLengths)
}

func TestUpsertHighScoreCapacity(t *testing.T) {
	store := openTestStore(t)

	for i := range HighScoreCapacity {
		_, err := store.UpsertHighScore(entry(fmt.Sprintf("g%d", i), 10*(i+1)))
		require.NoError(t, err)
	}

	ok, err := store.IsNewHighScore("lines", 10)
	require.NoError(t, err)
	assert.False(t, ok, "ties with the lowest entry do not qualify")

	ok, err = store.IsNewHighScore("lines", 11)
	require.NoError(t, err)
	assert.True(t, ok)

	kept, err := store.UpsertHighScore(entry("low", 5))
	require.NoError(t, err)
	assert.False(t, kept)

	kept, err = store.UpsertHighScore(entry("high", 55))
	require.NoError(t, err)
	assert.True(t, kept)

	top, err := store.TopHighScores("lines", 100)
	require.NoError(t, err)
	assert.Len(t, top, HighScoreCapacity)
	assert.Equal(t, 20, top[len(top)-1].Score)
}

func TestIsNewHighScore(t *testing.T) {
	store := openTestStore(t)

	ok, err := store.IsNewHighScore("lines", 0)
	require.NoError(t, err)
	assert.False(t, ok, "zero never qualifies")

	ok, err = store.IsNewHighScore("lines", 1)
	require.NoError(t, err)
	assert.True(t, ok, "empty board accepts any positive score")
}

func TestLeaderboardsArePerVariant(t *testing.T) {
	store := openTestStore(t)

	_, err := store.UpsertHighScore(entry("a", 50))
	require.NoError(t, err)
	classic := entry("b", 70)
	classic.GameID = "lines_classic"
	_, err = store.UpsertHighScore(classic)
	require.NoError(t, err)

	top, err := store.TopHighScores("lines", 10)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, 50, top[0].Score)

	require.NoError(t, store.ClearScores("lines"))
	top, err = store.TopHighScores("lines", 10)
	require.NoError(t, err)
	assert.Empty(t, top)

	top, err = store.TopHighScores("lines_classic", 10)
	require.NoError(t, err)
	assert.Len(t, top, 1)
}

func TestGameStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetGameStats("lines")
	require.NoError(t, err)
	assert.Zero(t, stats.GamesCount)
	assert.True(t, stats.LastPlayed.IsZero())

	for _, s := range []struct{ score, secs int }{{10, 60}, {30, 120}} {
		_, err := store.SaveScore("lines", s.score, s.secs)
		require.NoError(t, err)
	}

	stats, err = store.GetGameStats("lines")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.GamesCount)
	assert.Equal(t, 30, stats.HighScore)
	assert.InDelta(t, 20.0, stats.AvgScore, 0.001)
	assert.Equal(t, 180, stats.TotalTime)
}

func TestSavedGames(t *testing.T) {
	store := openTestStore(t)

	_, err := store.LoadGame("lines", "ada")
	assert.ErrorIs(t, err, ErrNoSavedGame)

	require.NoError(t, store.SaveGame("lines", "ada", []byte("first")))
	require.NoError(t, store.SaveGame("lines", "ada", []byte("second")))
	require.NoError(t, store.SaveGame("lines", "bob", []byte("other")))

	data, err := store.LoadGame("lines", "ada")
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	require.NoError(t, store.DeleteGame("lines", "ada"))
	_, err = store.LoadGame("lines", "ada")
	assert.ErrorIs(t, err, ErrNoSavedGame)

	data, err = store.LoadGame("lines", "bob")
	require.NoError(t, err)
	assert.Equal(t, "other", string(data))

	assert.NoError(t, store.DeleteGame("lines", "nobody"))
}

func TestRecorder(t *testing.T) {
	store := openTestStore(t)
	rec := NewRecorder(store, "lines", "ada")

	assert.True(t, rec.IsNewHighScore(5))
	assert.False(t, rec.IsNewHighScore(0))

	meta := engine.Metadata{
		GameID:       "uid-1",
		Moves:        9,
		LinesCleared: 2,
		LongestLine:  6,
		BallsPopped:  11,
		LineLengths:  []int{5, 6},
	}
	kept, err := rec.RecordHighScore(13, 42, meta)
	require.NoError(t, err)
	assert.True(t, kept)

	top, err := store.TopHighScores("lines", 10)
	require.NoError(t, err)
	require.Len(t, top, 1)
	got := top[0]
	assert.Equal(t, "uid-1", got.GameUID)
	assert.Equal(t, "ada", got.Player)
	assert.Equal(t, 13, got.Score)
	assert.Equal(t, 42, got.Duration)
	assert.Equal(t, 9, got.Moves)
	assert.Equal(t, 2, got.LinesCleared)
	assert.Equal(t, 6, got.LongestLine)
	assert.Equal(t, 11, got.BallsPopped)
	assert.Equal(t, []int{5, 6}, got.LineLengths)

	require.NoError(t, rec.SaveGame([]byte("suspended")))
	data, err := store.LoadGame("lines", "ada")
	require.NoError(t, err)
	assert.Equal(t, "suspended", string(data))
}

func TestRecorderReportsStoreFailure(t *testing.T) {
	store := openTestStore(t)
	rec := NewRecorder(store, "lines", "ada")
	rec.delay = 0
	require.NoError(t, store.Close())

	assert.False(t, rec.IsNewHighScore(5))
	_, err := rec.RecordHighScore(5, 1, engine.Metadata{GameID: "x"})
	assert.Error(t, err)
}
