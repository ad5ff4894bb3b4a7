// Package tui provides the Bubble Tea integration for Lines.
// It runs the tick loop, maps keys and mouse to actions, and moves
// between the menu, the game and the scoreboard.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Frame rates outside this range are clamped.
const (
	minTickRate = 1
	maxTickRate = 120
)

// TickMsg drives one simulation step.
type TickMsg time.Time

// frameInterval converts a rate in ticks per second to the delay between
// ticks.
func frameInterval(rate int) time.Duration {
	return time.Second / time.Duration(min(max(rate, minTickRate), maxTickRate))
}

func tickCmd(rate int) tea.Cmd {
	return tea.Tick(frameInterval(rate), func(t time.Time) tea.Msg { return TickMsg(t) })
}
