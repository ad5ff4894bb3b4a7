package engine

import (
	"github.com/samber/lo"

	"github.com/vovakirdan/tui-lines/internal/games/lines/core"
)

// Stats accumulates per-game counters for the end-of-game summary.
type Stats struct {
	Turns       int   `yaml:"turns"`
	LinesPopped int   `yaml:"lines_popped"`
	LongestLine int   `yaml:"longest_line"`
	BallsPopped int   `yaml:"balls_popped"`
	LineLengths []int `yaml:"line_lengths,omitempty"`
	LineScores  []int `yaml:"line_scores,omitempty"`
}

func (s *Stats) recordLines(lines [][]core.Coord, balls int) {
	lengths := lo.Map(lines, func(line []core.Coord, _ int) int {
		return len(line)
	})
	s.LinesPopped += len(lines)
	s.BallsPopped += balls
	s.LongestLine = max(s.LongestLine, lo.Max(lengths))
	s.LineLengths = append(s.LineLengths, lengths...)
	s.LineScores = append(s.LineScores, lo.Map(lengths, func(n int, _ int) int {
		return core.LineScore(n)
	})...)
}

// Metadata describes a game for a high-score entry.
type Metadata struct {
	GameID       string
	Moves        int
	LinesCleared int
	LongestLine  int
	BallsPopped  int
	LineLengths  []int
}

func (e *Engine) metadata() Metadata {
	return Metadata{
		GameID:       e.gameID,
		Moves:        e.stats.Turns,
		LinesCleared: e.stats.LinesPopped,
		LongestLine:  e.stats.LongestLine,
		BallsPopped:  e.stats.BallsPopped,
		LineLengths:  append([]int(nil), e.stats.LineLengths...),
	}
}
