package core

// FindPath returns the shortest orthogonal route from `from` to `to`
// through empty cells, both ends included. The source cell is expected
// to hold the ball being moved and is not checked.
//
// It returns nil when from == to, when either end is off the board,
// when the destination is occupied, or when no route exists. Any
// returned path has at least two elements.
func FindPath(b *Board, from, to Coord) []Coord {
	if from == to || !from.InBounds() || !to.InBounds() {
		return nil
	}
	if !b.At(to).Empty() {
		return nil
	}

	var visited [Size][Size]bool
	var prev [Size][Size]Coord

	queue := make([]Coord, 0, Size*Size)
	queue = append(queue, from)
	visited[from.Y][from.X] = true

	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		if cur == to {
			return walkBack(&prev, from, to)
		}
		for _, n := range cur.Neighbors() {
			if visited[n.Y][n.X] || !b.At(n).Empty() {
				continue
			}
			visited[n.Y][n.X] = true
			prev[n.Y][n.X] = cur
			queue = append(queue, n)
		}
	}
	return nil
}

func walkBack(prev *[Size][Size]Coord, from, to Coord) []Coord {
	var path []Coord
	for c := to; c != from; c = prev[c.Y][c.X] {
		path = append(path, c)
	}
	path = append(path, from)
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// ReachableFrom returns every empty cell reachable from `from` through
// empty cells. The source itself is not included.
func ReachableFrom(b *Board, from Coord) map[Coord]bool {
	out := make(map[Coord]bool)
	if !from.InBounds() {
		return out
	}

	var visited [Size][Size]bool
	visited[from.Y][from.X] = true
	queue := []Coord{from}

	for head := 0; head < len(queue); head++ {
		for _, n := range queue[head].Neighbors() {
			if visited[n.Y][n.X] || !b.At(n).Empty() {
				continue
			}
			visited[n.Y][n.X] = true
			out[n] = true
			queue = append(queue, n)
		}
	}
	return out
}

// HasAnyMove reports whether at least one placed ball can reach at least
// one empty cell.
func HasAnyMove(b *Board) bool {
	for y := range Size {
		for x := range Size {
			if b[y][x].Empty() {
				continue
			}
			for _, n := range (Coord{X: x, Y: y}).Neighbors() {
				if b.At(n).Empty() {
					return true
				}
			}
		}
	}
	return false
}
