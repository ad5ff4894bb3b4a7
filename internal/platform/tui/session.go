package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-lines/internal/config"
	"github.com/vovakirdan/tui-lines/internal/games/lines/engine"
	"github.com/vovakirdan/tui-lines/internal/registry"
	"github.com/vovakirdan/tui-lines/internal/storage"
)

// Options carry the collaborators of a play session.
type Options struct {
	Store  *storage.Store      // nil plays without persistence
	Player string              // leaderboard and saved-game owner
	Lines  *config.LinesConfig // nil keeps the built-in configuration
	Logger *log.Logger         // nil discards
	Resume bool                // restore the player's saved game on start

	// Renderer styles output for the session's terminal; nil uses stdout.
	Renderer *lipgloss.Renderer

	// Tasks runs the game's background leaderboard writes. Run waits for
	// them before returning. Nil leaves the game's own dispatcher.
	Tasks *Tasks
}

// Tasks tracks background work that must finish before the process exits.
type Tasks struct {
	g errgroup.Group
}

// Go runs task on its own goroutine.
func (t *Tasks) Go(task func()) {
	t.g.Go(func() error {
		task()
		return nil
	})
}

// Wait blocks until every started task has returned.
func (t *Tasks) Wait() {
	t.g.Wait() //nolint:errcheck // tasks never fail
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.New(io.Discard)
	}
	return o.Logger
}

func (o Options) renderer() *lipgloss.Renderer {
	if o.Renderer == nil {
		return lipgloss.DefaultRenderer()
	}
	return o.Renderer
}

func (o Options) player() string {
	if o.Player == "" {
		return config.DefaultLinesConfig().Player.Name
	}
	return o.Player
}

// configurableGame is the part of the Lines adapter the platform wires
// before a game starts.
type configurableGame interface {
	Configure(cfg config.LinesConfig)
	UseLogger(l *log.Logger)
	UseRecorder(r engine.HighScoreRecorder)
	UseBestScore(best int)
	UseDispatcher(d func(func()))
}

// prepareGame applies the configuration and attaches the leaderboard. It
// returns the recorder, or nil when the session has no store.
func prepareGame(game registry.Game, opts Options) *storage.Recorder {
	cg, ok := game.(configurableGame)
	if !ok {
		return nil
	}
	if opts.Lines != nil {
		cg.Configure(*opts.Lines)
	}
	cg.UseLogger(opts.Logger)
	if opts.Tasks != nil {
		cg.UseDispatcher(opts.Tasks.Go)
	}

	if opts.Store == nil {
		return nil
	}
	rec := storage.NewRecorder(opts.Store, game.ID(), opts.player())
	cg.UseRecorder(rec)
	if best, err := opts.Store.HighScore(game.ID()); err == nil {
		cg.UseBestScore(best)
	}
	return rec
}

// hasSavedGame reports whether the player has a suspended game for gameID.
func hasSavedGame(opts Options, gameID string) bool {
	if opts.Store == nil {
		return false
	}
	_, err := opts.Store.LoadGame(gameID, opts.player())
	return err == nil
}

// resumeGame restores the player's saved game, if any.
func resumeGame(game registry.Game, opts Options) {
	rg, ok := game.(registry.Resumable)
	if !ok || opts.Store == nil {
		return
	}
	logger := opts.logger()

	data, err := opts.Store.LoadGame(game.ID(), opts.player())
	if errors.Is(err, storage.ErrNoSavedGame) {
		return
	}
	if err != nil {
		logger.Warn("could not load saved game", "game", game.ID(), "err", err)
		return
	}
	if err := rg.RestoreState(data); err != nil {
		logger.Warn("discarding saved game", "game", game.ID(), "err", err)
		//nolint:errcheck // Best-effort cleanup of an unusable save
		opts.Store.DeleteGame(game.ID(), opts.player())
		return
	}
	logger.Debug("game resumed", "game", game.ID(), "player", opts.player())
}

// ensureDir creates the parent directory of path.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("tui: cannot create directory %s: %w", dir, err)
	}
	return nil
}
