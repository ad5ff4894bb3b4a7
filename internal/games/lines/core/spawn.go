package core

// BallsPerTurn is how many balls arrive after each move that clears nothing.
const BallsPerTurn = 3

// Source is the randomness the scheduler draws from. *math/rand.Rand
// satisfies it, which keeps seeded games reproducible.
type Source interface {
	Intn(n int) int
}

// ChooseEmptyCells picks up to count distinct empty cells not in exclude,
// uniformly at random. Fewer are returned when the board lacks room.
func ChooseEmptyCells(b *Board, count int, exclude map[Coord]bool, rng Source) []Coord {
	if count <= 0 {
		return nil
	}
	cells := b.EmptyCoords(exclude)
	// Fisher-Yates over the candidates, then take the prefix.
	for i := len(cells) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		cells[i], cells[j] = cells[j], cells[i]
	}
	if count > len(cells) {
		count = len(cells)
	}
	return cells[:count]
}

// RandomColors draws n independent uniform colors. Repeats are allowed.
func RandomColors(n int, rng Source) []BallColor {
	all := AllColors()
	out := make([]BallColor, n)
	for i := range out {
		out[i] = all[rng.Intn(len(all))]
	}
	return out
}

// PlaceBalls returns a copy of b with colors[i] placed at coords[i].
// Extra entries on either side are ignored.
func PlaceBalls(b *Board, coords []Coord, colors []BallColor) Board {
	out := b.Clone()
	for i := 0; i < len(coords) && i < len(colors); i++ {
		c := coords[i]
		out[c.Y][c.X].Ball = colors[i]
		out[c.Y][c.X].Incoming = NoBall
	}
	return out
}

// PlacePreviews returns a copy of b with preview markers at coords,
// paired with colors by index.
func PlacePreviews(b *Board, coords []Coord, colors []BallColor) Board {
	out := b.Clone()
	for i := 0; i < len(coords) && i < len(colors); i++ {
		c := coords[i]
		out[c.Y][c.X].Incoming = colors[i]
	}
	return out
}

// IncomingCoords lists cells carrying a preview marker in row-major order.
func IncomingCoords(b *Board) []Coord {
	var out []Coord
	for y := range Size {
		for x := range Size {
			if b[y][x].Incoming != NoBall {
				out = append(out, Coord{X: x, Y: y})
			}
		}
	}
	return out
}

// ClearIncoming returns a copy of b without any preview markers.
func ClearIncoming(b *Board) Board {
	out := b.Clone()
	for y := range Size {
		for x := range Size {
			out[y][x].Incoming = NoBall
		}
	}
	return out
}

// ConvertIncoming turns every preview on an empty cell into a placed ball
// and drops previews sitting under an existing ball. It returns the new
// board and the coordinates that received a ball.
func ConvertIncoming(b *Board) (Board, []Coord) {
	out := b.Clone()
	var spawned []Coord
	for y := range Size {
		for x := range Size {
			cell := &out[y][x]
			if cell.Incoming == NoBall {
				continue
			}
			if cell.Ball == NoBall {
				cell.Ball = cell.Incoming
				spawned = append(spawned, Coord{X: x, Y: y})
			}
			cell.Incoming = NoBall
		}
	}
	return out, spawned
}

// RecolorIncoming repaints the existing preview markers with colors, in
// row-major order of the markers.
func RecolorIncoming(b *Board, colors []BallColor) Board {
	return PlacePreviews(b, IncomingCoords(b), colors)
}
