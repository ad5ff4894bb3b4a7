package tui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/vovakirdan/tui-lines/internal/registry"
	"github.com/vovakirdan/tui-lines/internal/storage"
)

// minWidthForTabs is the width below which only the current variant is
// named above the table.
const minWidthForTabs = 60

// scoreColumns are the leaderboard columns at their natural widths. The
// trailing ones are dropped first on narrow terminals.
var scoreColumns = []table.Column{
	{Title: "#", Width: 3},
	{Title: "Player", Width: 16},
	{Title: "Score", Width: 7},
	{Title: "Time", Width: 6},
	{Title: "Turns", Width: 6},
	{Title: "Lines", Width: 6},
	{Title: "Best", Width: 5},
	{Title: "Balls", Width: 6},
	{Title: "Date", Width: 12},
}

// scoreboardHelp narrows the key map to the bindings the scoreboard uses.
type scoreboardHelp struct{ k KeyMap }

func (h scoreboardHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Up, h.k.Down, h.k.Left, h.k.Right, h.k.Back, h.k.Quit}
}

func (h scoreboardHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}

// ScoreboardModel shows the leaderboard of one variant at a time.
type ScoreboardModel struct {
	games      []registry.GameInfo
	gameCursor int
	store      *storage.Store
	renderer   *lipgloss.Renderer
	scores     []storage.HighScoreEntry
	loadErr    error
	table      table.Model
	help       help.Model
	keys       KeyMap
	width      int
	height     int
	quitting   bool
	goingBack  bool // True if user pressed back (not quit)
}

// NewScoreboardModel creates a scoreboard over the session's store.
func NewScoreboardModel(opts Options, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:    registry.List(),
		store:    opts.Store,
		renderer: opts.renderer(),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		width:    width,
		height:   height,
	}
	m.table = m.createTable()
	m.loadScores()
	return m
}

// createTable sizes the table to the terminal.
func (m *ScoreboardModel) createTable() table.Model {
	columns := slices.Clone(scoreColumns)
	available := m.width - 6 // border and padding
	for len(columns) > 4 && columnsWidth(columns) > available {
		columns = columns[:len(columns)-1]
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, min(storage.HighScoreCapacity+1, m.height-10))),
	)

	s := table.DefaultStyles()
	s.Header = m.renderer.NewStyle().
		Padding(0, 1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = m.renderer.NewStyle().
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(s)

	return t
}

// columnsWidth includes the cell padding of the default styles.
func columnsWidth(columns []table.Column) int {
	return lo.SumBy(columns, func(c table.Column) int { return c.Width + 2 })
}

func (m *ScoreboardModel) current() (registry.GameInfo, bool) {
	if len(m.games) == 0 {
		return registry.GameInfo{}, false
	}
	return m.games[m.gameCursor], true
}

// loadScores reads the leaderboard of the current variant.
func (m *ScoreboardModel) loadScores() {
	m.scores, m.loadErr = nil, nil
	if g, ok := m.current(); ok && m.store != nil {
		m.scores, m.loadErr = m.store.TopHighScores(g.ID, storage.HighScoreCapacity)
	}
	m.updateTableRows()
}

func (m *ScoreboardModel) updateTableRows() {
	n := len(m.table.Columns())
	m.table.SetRows(lo.Map(m.scores, func(s storage.HighScoreEntry, i int) table.Row {
		return scoreRow(i+1, s)[:n]
	}))
	m.table.GotoTop()
}

func scoreRow(rank int, s storage.HighScoreEntry) table.Row {
	return table.Row{
		strconv.Itoa(rank),
		s.Player,
		strconv.Itoa(s.Score),
		formatDuration(s.Duration),
		strconv.Itoa(s.Moves),
		strconv.Itoa(s.LinesCleared),
		strconv.Itoa(s.LongestLine),
		strconv.Itoa(s.BallsPopped),
		s.CreatedAt.Local().Format("Jan 02 15:04"),
	}
}

func formatDuration(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Scores):
			m.switchGame(1)
			return m, nil
		case key.Matches(msg, m.keys.Left):
			m.switchGame(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.createTable()
		m.updateTableRows()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) switchGame(delta int) {
	if len(m.games) == 0 {
		return
	}
	m.gameCursor = (m.gameCursor + delta + len(m.games)) % len(m.games)
	m.loadScores()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}
	r := m.renderer
	dim := r.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(r.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	box := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	for _, line := range strings.Split(box.Render(m.renderTableContent()), "\n") {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(dim.Render(m.help.View(scoreboardHelp{m.keys})), m.width))
	return b.String()
}

// renderTabs names every variant with the current one highlighted, or
// just the current one when the terminal is narrow.
func (m ScoreboardModel) renderTabs() string {
	g, ok := m.current()
	if !ok {
		return ""
	}
	active := m.renderer.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)
	if m.width < minWidthForTabs {
		return active.Render(fmt.Sprintf("< %s >", g.Title))
	}

	inactive := m.renderer.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	tabs := lo.Map(m.games, func(info registry.GameInfo, i int) string {
		if i == m.gameCursor {
			return active.Render(info.Title)
		}
		return inactive.Render(info.Title)
	})
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderTableContent renders the table or an empty/error message.
func (m ScoreboardModel) renderTableContent() string {
	note := m.renderer.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return note.Render("Scores are not available.\nThe database could not be opened.")
	case m.loadErr != nil:
		return note.Render("Could not load scores:\n" + m.loadErr.Error())
	case len(m.scores) == 0:
		return note.Render("No scores recorded yet.\nClear a line to set a high score!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(opts Options, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(opts, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
