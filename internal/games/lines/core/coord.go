// Package core contains the pure board logic for Lines: the board model,
// the reachability pathfinder, the line matcher and the spawn scheduler.
// Nothing in this package performs I/O or keeps global state; every
// function works on an explicit Board value passed in by the caller.
package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Size is the width and height of the square board.
const Size = 9

// Coord addresses a single cell. X grows to the right, Y grows downward.
type Coord struct {
	X, Y int
}

// C is shorthand for Coord{X: x, Y: y}.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns the "x,y" key form of the coordinate.
func (c Coord) String() string {
	return strconv.Itoa(c.X) + "," + strconv.Itoa(c.Y)
}

// ParseCoord parses the "x,y" key form produced by String.
func ParseCoord(s string) (Coord, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return Coord{}, fmt.Errorf("core: malformed coordinate %q", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return Coord{}, fmt.Errorf("core: malformed coordinate %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return Coord{}, fmt.Errorf("core: malformed coordinate %q: %w", s, err)
	}
	c := Coord{X: x, Y: y}
	if !c.InBounds() {
		return Coord{}, fmt.Errorf("core: coordinate %q outside the board", s)
	}
	return c, nil
}

// InBounds reports whether the coordinate lies on the board.
func (c Coord) InBounds() bool {
	return c.X >= 0 && c.X < Size && c.Y >= 0 && c.Y < Size
}

// Add returns the coordinate offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Adjacent reports whether two coordinates share an edge.
func (c Coord) Adjacent(o Coord) bool {
	dx, dy := c.X-o.X, c.Y-o.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx+dy == 1
}

// neighborOffsets is the N, E, S, W enumeration order used by the pathfinder.
var neighborOffsets = [4][2]int{
	{0, -1},
	{1, 0},
	{0, 1},
	{-1, 0},
}

// Neighbors returns the in-bounds orthogonal neighbors in N, E, S, W order.
func (c Coord) Neighbors() []Coord {
	out := make([]Coord, 0, 4)
	for _, d := range neighborOffsets {
		n := c.Add(d[0], d[1])
		if n.InBounds() {
			out = append(out, n)
		}
	}
	return out
}
