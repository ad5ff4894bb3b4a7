package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lines/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available variants",
	Long: `Shows the registered Lines variants with the best score of each and
whether the current player has a suspended game to continue.`,
	Run: runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()
	if len(games) == 0 {
		fmt.Println("No variants available.")
		return
	}

	player := ""
	if cfg, err := loadConfig(); err == nil {
		player = cfg.Player.Name
	}
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("ID", "TITLE", "BEST", "SAVED")
	for _, g := range games {
		best, saved := "-", "-"
		if store != nil {
			if score, err := store.HighScore(g.ID); err == nil && score > 0 {
				best = strconv.Itoa(score)
			}
			if _, err := store.LoadGame(g.ID, player); err == nil {
				saved = "yes"
			}
		}
		t.Row(g.ID, g.Title, best, saved)
	}
	fmt.Println(t.Render())

	fmt.Println()
	fmt.Println("Run 'lines play <id>' to play a variant, add --resume to continue a saved game.")
}
