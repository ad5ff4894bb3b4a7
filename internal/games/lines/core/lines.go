package core

import "github.com/samber/lo"

// MinLineLength is the shortest run that clears.
const MinLineLength = 5

// axes are the four undirected scan directions: horizontal, vertical,
// diagonal down-right and diagonal up-right.
var axes = [4][2]int{
	{1, 0},
	{0, 1},
	{1, 1},
	{1, -1},
}

// FindLines returns every same-colored run through `at` whose length is
// at least MinLineLength. Each run is ordered from its backward end to its
// forward end along its axis and includes `at`. Shorter runs are dropped.
func FindLines(b *Board, at Coord, color BallColor) [][]Coord {
	if !at.InBounds() || !color.Valid() {
		return nil
	}

	var lines [][]Coord
	for _, d := range axes {
		back := scan(b, at, -d[0], -d[1], color)
		fwd := scan(b, at, d[0], d[1], color)
		if len(back)+1+len(fwd) < MinLineLength {
			continue
		}

		line := make([]Coord, 0, len(back)+1+len(fwd))
		for i := len(back) - 1; i >= 0; i-- {
			line = append(line, back[i])
		}
		line = append(line, at)
		line = append(line, fwd...)
		lines = append(lines, line)
	}
	return lines
}

// scan walks from `at` (exclusive) in direction (dx, dy) while cells hold
// a ball of `color`, returning them nearest first.
func scan(b *Board, at Coord, dx, dy int, color BallColor) []Coord {
	var run []Coord
	for c := at.Add(dx, dy); c.InBounds() && b.At(c).Ball == color; c = c.Add(dx, dy) {
		run = append(run, c)
	}
	return run
}

// UniqueCells merges lines into a list of distinct coordinates, keeping
// first-seen order. A ball shared by two crossing lines appears once.
func UniqueCells(lines [][]Coord) []Coord {
	return lo.Uniq(lo.Flatten(lines))
}

// LineKey identifies a line by its two ends, independent of the
// direction it was scanned in.
func LineKey(line []Coord) [2]Coord {
	if len(line) == 0 {
		return [2]Coord{}
	}
	a, z := line[0], line[len(line)-1]
	if z.Y < a.Y || (z.Y == a.Y && z.X < a.X) {
		a, z = z, a
	}
	return [2]Coord{a, z}
}

// DistinctLines drops lines that cover the same cells as an earlier one.
// Scanning from several landing cells on the same run yields duplicates.
func DistinctLines(lines [][]Coord) [][]Coord {
	return lo.UniqBy(lines, LineKey)
}
