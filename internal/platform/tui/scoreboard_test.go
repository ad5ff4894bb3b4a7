package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-lines/internal/config"
	"github.com/vovakirdan/tui-lines/internal/storage"
)

func TestScoreboardSwitchesVariant(t *testing.T) {
	store := openTestStore(t)
	_, err := store.UpsertHighScore(storage.HighScoreEntry{
		GameUID: "g1", GameID: config.VariantClassic, Player: "ada", Score: 42, Duration: 75,
	})
	require.NoError(t, err)

	m := NewScoreboardModel(Options{Store: store}, 80, 24)
	g, ok := m.current()
	require.True(t, ok)
	assert.Equal(t, config.VariantStandard, g.ID)
	assert.Contains(t, m.View(), "No scores recorded yet")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(ScoreboardModel)
	g, _ = m.current()
	assert.Equal(t, config.VariantClassic, g.ID)
	require.Len(t, m.scores, 1)

	view := m.View()
	assert.Contains(t, view, "ada")
	assert.Contains(t, view, "1:15")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = next.(ScoreboardModel)
	g, _ = m.current()
	assert.Equal(t, config.VariantStandard, g.ID)
}

func TestScoreboardDropsColumnsWhenNarrow(t *testing.T) {
	wide := NewScoreboardModel(Options{}, 200, 40)
	narrow := NewScoreboardModel(Options{}, 50, 40)

	assert.Len(t, wide.table.Columns(), len(scoreColumns))
	assert.Less(t, len(narrow.table.Columns()), len(scoreColumns))
	assert.GreaterOrEqual(t, len(narrow.table.Columns()), 4)
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(Options{}, 80, 24)
	assert.Contains(t, m.View(), "Scores are not available")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(ScoreboardModel)
	assert.True(t, m.IsGoingBack())
	assert.False(t, m.IsQuitting())
	assert.NotNil(t, cmd)
}
