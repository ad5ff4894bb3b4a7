package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-lines/internal/config"
	"github.com/vovakirdan/tui-lines/internal/core"
	"github.com/vovakirdan/tui-lines/internal/platform/tui"
	"github.com/vovakirdan/tui-lines/internal/storage"
)

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// loadConfig reads lines.yaml and applies --player.
func loadConfig() (config.LinesConfig, error) {
	cfg, err := config.LoadLines(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagPlayer != "" {
		cfg.Player.Name = flagPlayer
	}
	cfg.Normalize()
	return cfg, nil
}

// openStore opens the database. Without it the game still works, only
// scores and saves are lost.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// openDebugLog returns a file logger when --debug is set. The terminal
// belongs to the game, so nothing is logged to stderr.
func openDebugLog() (*log.Logger, func(), error) {
	if !flagDebug {
		return nil, func() {}, nil
	}
	path := config.UserPath("logs", "lines.log")
	if path == "" {
		return nil, nil, errors.New("cannot resolve log path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          "lines",
	})
	return logger, func() { f.Close() }, nil
}

// newSession gathers everything a local play session needs. The returned
// cleanup closes the store and the log.
func newSession() (tui.Options, func(), error) {
	lines, err := loadConfig()
	if err != nil {
		return tui.Options{}, nil, err
	}
	logger, closeLog, err := openDebugLog()
	if err != nil {
		return tui.Options{}, nil, err
	}
	store := openStore()

	opts := tui.Options{
		Store:  store,
		Player: lines.Player.Name,
		Lines:  &lines,
		Logger: logger,
		Tasks:  new(tui.Tasks),
	}
	cleanup := func() {
		opts.Tasks.Wait()
		if store != nil {
			store.Close()
		}
		closeLog()
	}
	return opts, cleanup, nil
}
