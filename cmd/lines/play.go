package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lines/internal/config"
	"github.com/vovakirdan/tui-lines/internal/platform/tui"
	"github.com/vovakirdan/tui-lines/internal/registry"
)

var flagResume bool

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the specified variant (default: lines).

Controls:
  Arrows/hjkl/WASD  - Move the cursor
  Mouse             - Hover shows the path, click selects or moves
  Space/Enter       - Select a ball, then move it to the cursor
  N/R               - New game
  Esc/Q             - Quit (a game in progress is saved)
  Ctrl+S            - Save a screenshot to ~/.lines/screenshots

Variants:
  lines          - 3 balls and 3 previewed arrivals to start
  lines_classic  - 5 balls, no preview until the first move

Examples:
  lines play
  lines play lines_classic
  lines play --resume
  lines play --seed 42 --config ./my-lines.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagResume, "resume", false, "Continue the saved game of this variant")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := config.VariantStandard
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'lines list' to see available variants.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	opts, cleanup, err := newSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	opts.Resume = flagResume

	_, runErr := tui.Run(game, opts, runtimeConfig())
	cleanup()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
