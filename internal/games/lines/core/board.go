package core

import (
	"fmt"
	"strings"
)

// Cell is one square of the board.
// Ball is the placed ball, Incoming is the preview of next turn's spawn.
// At most one cell on a board is Active (the selected source).
type Cell struct {
	X, Y     int
	Ball     BallColor
	Incoming BallColor
	Active   bool
}

// Empty reports whether the cell holds no placed ball.
// A cell with only a preview marker counts as empty.
func (c Cell) Empty() bool {
	return c.Ball == NoBall
}

// Board is the full grid indexed [y][x]. It is a plain array of values,
// so assigning a Board produces an independent copy.
type Board [Size][Size]Cell

// NewBoard returns an empty board with every cell's coordinates filled in.
func NewBoard() Board {
	var b Board
	for y := range Size {
		for x := range Size {
			b[y][x] = Cell{X: x, Y: y}
		}
	}
	return b
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() Board {
	return *b
}

// At returns the cell at c. The caller must pass an in-bounds coordinate.
func (b *Board) At(c Coord) Cell {
	return b[c.Y][c.X]
}

// IsFull reports whether every cell holds a placed ball.
func (b *Board) IsFull() bool {
	return b.CountEmpty() == 0
}

// CountEmpty returns the number of cells without a placed ball.
func (b *Board) CountEmpty() int {
	n := 0
	for y := range Size {
		for x := range Size {
			if b[y][x].Empty() {
				n++
			}
		}
	}
	return n
}

// EmptyCoords returns every empty coordinate in row-major order,
// skipping those present in exclude.
func (b *Board) EmptyCoords(exclude map[Coord]bool) []Coord {
	out := make([]Coord, 0, Size*Size)
	for y := range Size {
		for x := range Size {
			c := Coord{X: x, Y: y}
			if !b[y][x].Empty() || exclude[c] {
				continue
			}
			out = append(out, c)
		}
	}
	return out
}

// CountBalls returns the number of placed balls.
func (b *Board) CountBalls() int {
	return Size*Size - b.CountEmpty()
}

// SetBall places a ball of the given color at c.
func (b *Board) SetBall(c Coord, color BallColor) {
	b[c.Y][c.X].Ball = color
}

// RemoveBalls empties every listed cell.
func (b *Board) RemoveBalls(coords []Coord) {
	for _, c := range coords {
		b[c.Y][c.X].Ball = NoBall
	}
}

// SetActive marks c as the selected cell and clears any previous selection.
func (b *Board) SetActive(c Coord) {
	b.ClearActive()
	b[c.Y][c.X].Active = true
}

// ClearActive removes the selection mark from every cell.
func (b *Board) ClearActive() {
	for y := range Size {
		for x := range Size {
			b[y][x].Active = false
		}
	}
}

// ActiveCoord returns the selected cell, if any.
func (b *Board) ActiveCoord() (Coord, bool) {
	for y := range Size {
		for x := range Size {
			if b[y][x].Active {
				return Coord{X: x, Y: y}, true
			}
		}
	}
	return Coord{}, false
}

// String renders the board as nine rows using the Rows encoding.
func (b *Board) String() string {
	return strings.Join(b.Rows(), "\n")
}

// Rows encodes the board as nine strings of nine characters.
// A placed ball is its uppercase color letter, a preview marker is the
// lowercase letter, and an empty cell is '.'.
func (b *Board) Rows() []string {
	rows := make([]string, Size)
	for y := range Size {
		var sb strings.Builder
		sb.Grow(Size)
		for x := range Size {
			cell := b[y][x]
			switch {
			case cell.Ball != NoBall:
				sb.WriteByte(cell.Ball.Char())
			case cell.Incoming != NoBall:
				sb.WriteByte(cell.Incoming.Char() + ('a' - 'A'))
			default:
				sb.WriteByte('.')
			}
		}
		rows[y] = sb.String()
	}
	return rows
}

// ParseRows is the inverse of Rows. Spaces inside a row are ignored so
// fixtures can be laid out for readability.
func ParseRows(rows []string) (Board, error) {
	if len(rows) != Size {
		return Board{}, fmt.Errorf("core: board needs %d rows, got %d", Size, len(rows))
	}
	b := NewBoard()
	for y, row := range rows {
		row = strings.ReplaceAll(row, " ", "")
		if len(row) != Size {
			return Board{}, fmt.Errorf("core: row %d needs %d cells, got %d", y, Size, len(row))
		}
		for x := range Size {
			ch := row[x]
			color, err := ParseBallColor(ch)
			if err != nil {
				return Board{}, fmt.Errorf("core: row %d col %d: %w", y, x, err)
			}
			if ch >= 'a' && ch <= 'z' {
				b[y][x].Incoming = color
			} else {
				b[y][x].Ball = color
			}
		}
	}
	return b, nil
}

// MustParseRows is ParseRows for fixtures known to be valid.
func MustParseRows(rows ...string) Board {
	b, err := ParseRows(rows)
	if err != nil {
		panic(err)
	}
	return b
}
