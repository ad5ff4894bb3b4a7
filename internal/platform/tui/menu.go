package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-lines/internal/core"
	"github.com/vovakirdan/tui-lines/internal/registry"
)

// MenuItem represents a selectable entry in the menu.
type MenuItem struct {
	GameID string
	Title  string
	Resume bool // continue the player's saved game
	Best   int  // leaderboard top score, 0 when none
}

// MenuModel is the Bubble Tea model for the variant picker menu.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	opts           Options
	config         core.RuntimeConfig
	keys           KeyMap
	help           help.Model
	quitting       bool
	selected       *MenuItem // Set when user selects a game
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model.
func NewMenuModel(opts Options, cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		items:  menuItems(opts),
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		opts:   opts,
		config: cfg,
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
}

// menuItems lists every registered variant, each preceded by a continue
// entry when the player has a suspended game for it.
func menuItems(opts Options) []MenuItem {
	games := registry.List()
	items := make([]MenuItem, 0, 2*len(games))
	for _, g := range games {
		if hasSavedGame(opts, g.ID) {
			items = append(items, MenuItem{GameID: g.ID, Title: "Continue " + g.Title, Resume: true})
		}
		item := MenuItem{GameID: g.ID, Title: g.Title}
		if opts.Store != nil {
			item.Best, _ = opts.Store.HighScore(g.ID) //nolint:errcheck
		}
		items = append(items, item)
	}
	return items
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.MapKeyToMenuAction(msg)
	switch action {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp, MenuActionDown:
		if n := len(m.items); n > 0 {
			step := 1
			if action == MenuActionUp {
				step = n - 1
			}
			m.cursor = (m.cursor + step) % n
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to start game
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	r := m.opts.renderer()
	titleStyle := r.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	activeStyle := r.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	dimStyle := r.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  L I N E S  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(dimStyle.Render("Line up five balls of a color"), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		label := item.Title
		if item.Best > 0 {
			label += dimStyle.Render(fmt.Sprintf("  best %d", item.Best))
		}
		line := "  " + label
		if i == m.cursor {
			line = activeStyle.Render("> "+item.Title) + strings.TrimPrefix(label, item.Title)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.opts.Store != nil {
		b.WriteString(centerText(dimStyle.Render(fmt.Sprintf("Playing as %s", m.opts.player())), m.width))
		b.WriteString("\n")
	}
	b.WriteString(centerText(m.help.View(menuHelp{m.keys}), m.width))
	b.WriteString("\n")

	return b.String()
}

// menuHelp narrows the key map to the bindings the menu reacts to.
type menuHelp struct{ k KeyMap }

func (h menuHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Up, h.k.Down, h.k.Select, h.k.Scores, h.k.Quit}
}

func (h menuHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width. Styled text is measured
// without its escape sequences.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Resume          bool
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// result converts the final menu state into a MenuResult.
func (m MenuModel) result() MenuResult {
	res := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		res.WantsScoreboard = true
	case m.IsQuitting() || m.Selected() == nil:
		res.Quit = true
	default:
		res.GameID = m.Selected().GameID
		res.Resume = m.Selected().Resume
	}
	return res
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(opts Options, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(opts, cfg), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.result(), nil
}
