package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lines/internal/platform/tui"
	"github.com/vovakirdan/tui-lines/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a variant picker menu",
	Long: `Start Lines in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a variant. A
suspended game shows up as a "Continue" entry. Esc in a game returns
to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - High scores
  Q            - Quit

Examples:
  lines menu
  lines menu --player alice
  lines menu --db ./lines.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	opts, cleanup, err := newSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(opts, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(opts, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		gameOpts := opts
		gameOpts.Resume = menuResult.Resume
		backToMenu, err := tui.Run(game, gameOpts, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			continue
		}
		if !backToMenu {
			return
		}
	}
}
