package core

import "github.com/samber/lo"

// lineScores rewards longer lines super-linearly.
var lineScores = map[int]int{
	5: 5,
	6: 8,
	7: 13,
	8: 21,
	9: 34,
}

// LineScore returns the points for one cleared line of the given length.
// Lengths outside the table score their own length.
func LineScore(length int) int {
	if s, ok := lineScores[length]; ok {
		return s
	}
	return length
}

// ScoreLines sums LineScore over every line. Cells shared by crossing
// lines count toward each line they belong to.
func ScoreLines(lines [][]Coord) int {
	return lo.SumBy(lines, func(line []Coord) int {
		return LineScore(len(line))
	})
}
