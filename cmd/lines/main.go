// lines is the Lines ball puzzle for the terminal: move balls across a
// 9x9 board and line up five of a color to clear them.
//
// Usage:
//
//	lines list              - List available variants
//	lines play [variant]    - Play a variant (default: lines)
//	lines menu              - Start menu to pick a variant interactively
//	lines serve             - Start SSH server for remote play
//	lines scores [variant]  - Show the leaderboard of a variant
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: 30)
//	--seed <value>   - Set RNG seed for reproducible gameplay
//	--db <path>      - Set database path (default: ~/.lines/lines.db)
//	--config <path>  - Use a custom lines.yaml
//	--player <name>  - Name on the leaderboard and saved games
//	--debug          - Write a debug log to ~/.lines/logs/lines.log
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tui-lines/internal/games/lines"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagConfig string
	flagPlayer string
	flagDebug  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lines",
	Short: "Lines - line up five balls in your terminal",
	Long: `Lines is the classic color lines puzzle for the terminal.

Select a ball and pick an empty cell it can reach; the ball travels
there. Five or more balls of one color in a row, column or diagonal
disappear and score points. Otherwise three new balls arrive where the
small dots show. The game ends when the board is full.

Available commands:
  list     - Show all variants
  play     - Play a variant directly
  menu     - Interactive variant picker
  serve    - Start SSH server for remote play
  scores   - View the leaderboard

Examples:
  lines play
  lines play lines_classic --seed 42
  lines play --resume
  lines menu --player alice
  lines serve --ssh :2222
  lines scores`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.lines/lines.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom lines.yaml")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Player name (default from config)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Write a debug log under ~/.lines/logs")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
