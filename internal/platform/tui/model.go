package tui

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"lukechampine.com/frand"

	"github.com/vovakirdan/tui-lines/internal/config"
	"github.com/vovakirdan/tui-lines/internal/core"
	"github.com/vovakirdan/tui-lines/internal/registry"
	"github.com/vovakirdan/tui-lines/internal/storage"
)

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	palette    *Palette
	opts       Options
	recorder   *storage.Recorder
	config     core.RuntimeConfig
	keys       KeyMap
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	quitOnBack bool // standalone program: Esc ends it
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, opts Options, cfg core.RuntimeConfig) Model {
	if cfg.Seed == 0 {
		cfg.Seed = int64(frand.Uint64n(math.MaxInt64))
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		palette:    NewPalette(opts.Renderer),
		opts:       opts,
		recorder:   prepareGame(game, opts),
		config:     cfg,
		keys:       DefaultKeyMap(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init starts the game, resuming a saved one when asked to.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	if m.opts.Resume {
		resumeGame(m.game, m.opts)
	}
	// gameState is picked up on the first tick (value receiver)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if ev, ok := MapMouse(msg); ok {
			m.inputFrame.Point(ev)
		}
		return m, nil

	case tea.BlurMsg:
		m.inputFrame.Point(core.PointerEvent{Kind: core.PointerLeave})
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Back):
		m.suspend()
		m.backToMenu = true
		if m.quitOnBack {
			return m, tea.Quit
		}
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.suspend()
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize keeps the game running at the new size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizable); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	switch {
	case m.gameState.GameOver && !m.scoreSaved:
		m.finishGame()
		m.scoreSaved = true
	case !m.gameState.GameOver:
		m.scoreSaved = false
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// finishGame records a completed game in the history and drops its save.
func (m *Model) finishGame() {
	store := m.opts.Store
	if store == nil {
		return
	}
	if m.gameState.Score > 0 {
		//nolint:errcheck // Best-effort save, game continues regardless
		store.SaveScore(m.game.ID(), m.gameState.Score, m.gameState.Elapsed)
	}
	//nolint:errcheck // Best-effort, a stale save is discarded on resume
	store.DeleteGame(m.game.ID(), m.opts.player())

	if cg, ok := m.game.(configurableGame); ok {
		if best, err := store.HighScore(m.game.ID()); err == nil {
			cg.UseBestScore(max(best, m.gameState.Score))
		}
	}
}

// suspend saves a game in progress so `--resume` can pick it up.
func (m *Model) suspend() {
	if m.recorder == nil || m.game.State().GameOver {
		return
	}
	rg, ok := m.game.(registry.Resumable)
	if !ok {
		return
	}
	logger := m.opts.logger()

	data, err := rg.SaveState()
	if err != nil {
		logger.Warn("could not save game", "game", m.game.ID(), "err", err)
		return
	}
	if err := m.recorder.SaveGame(data); err != nil {
		logger.Warn("could not save game", "game", m.game.ID(), "err", err)
		return
	}
	logger.Debug("game saved", "game", m.game.ID(), "player", m.opts.player())
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := config.UserPath("screenshots")
	if dir == "" {
		return
	}
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return m.palette.Render(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// programOptions are shared by local and SSH programs.
func programOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	}
}

// Run plays game until the user quits or goes back. It reports whether
// the user asked for the menu.
func Run(game registry.Game, opts Options, cfg core.RuntimeConfig) (backToMenu bool, err error) {
	model := NewModel(game, opts, cfg)
	model.quitOnBack = true

	p := tea.NewProgram(model, programOptions()...)
	finalModel, err := p.Run()
	if opts.Tasks != nil {
		opts.Tasks.Wait()
	}
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
