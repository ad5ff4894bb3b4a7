package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lines/internal/config"
	"github.com/vovakirdan/tui-lines/internal/registry"
	"github.com/vovakirdan/tui-lines/internal/storage"
)

var (
	flagScoresLimit int
	flagClearScores bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show the leaderboard of a variant",
	Long: `Display the top 10 games of the specified variant (default: lines),
along with overall statistics.

Examples:
  lines scores
  lines scores lines_classic
  lines scores --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", storage.HighScoreCapacity, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete the leaderboard and history of the variant")
}

func runScores(_ *cobra.Command, args []string) {
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
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClearScores {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared scores for %s\n", title)
		return
	}

	scores, err := store.TopHighScores(gameID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'lines play %s' to set the first high score!\n", gameID)
		return
	}

	rows := lo.Map(scores, func(e storage.HighScoreEntry, i int) []string {
		return []string{
			strconv.Itoa(i + 1), e.Player, strconv.Itoa(e.Score), clock(e.Duration),
			strconv.Itoa(e.Moves), strconv.Itoa(e.LinesCleared), strconv.Itoa(e.LongestLine),
			strconv.Itoa(e.BallsPopped), e.CreatedAt.Local().Format("2006-01-02 15:04"),
		}
	})
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("RANK", "PLAYER", "SCORE", "TIME", "TURNS", "LINES", "LONGEST", "BALLS", "DATE").
		Rows(rows...)
	fmt.Println(t.Render())

	stats, err := store.GetGameStats(gameID)
	if err != nil || stats.GamesCount == 0 {
		return
	}
	fmt.Println()
	fmt.Printf("Games finished: %d   Average: %.1f   Time played: %s\n",
		stats.GamesCount, stats.AvgScore, time.Duration(stats.TotalTime)*time.Second)
}

func clock(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
