package engine

// CountUnvisited counts the unvisited cells in a visit grid
func CountUnvisited(visits [][]int) int {
	count := 0
	for _, row := range visits {
		for _, order := range row {
			if order == Unvisited {
				count++
			}
		}
	}
	return count
}

// KnightDistance returns the minimum number of knight moves from one cell
// to another on an otherwise empty board of the given dimensions, ignoring
// visited state. Returns UnreachableDistance when no path exists, such as
// between the centre and edge of a 3x3 board.
func KnightDistance(rows, cols int, from, to Position) int {
	if from == to {
		return 0
	}

	inBounds := func(p Position) bool {
		return p.Row >= 0 && p.Row < rows && p.Col >= 0 && p.Col < cols
	}
	if !inBounds(from) || !inBounds(to) {
		return UnreachableDistance
	}

	dist := map[Position]int{from: 0}
	queue := []Position{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range knightDeltas {
			next := Position{Row: cur.Row + d.Row, Col: cur.Col + d.Col}
			if !inBounds(next) {
				continue
			}
			if _, seen := dist[next]; seen {
				continue
			}
			dist[next] = dist[cur] + 1
			if next == to {
				return dist[next]
			}
			queue = append(queue, next)
		}
	}

	return UnreachableDistance
}

// FindNearestUnvisited finds the unvisited cell reachable from the knight's
// position in the fewest knight moves (ignoring visited cells as blockers,
// since visited squares can still be jumped over). Returns the cell, its
// distance, and whether one was found.
func FindNearestUnvisited(b *Board) (Position, int, bool) {
	from, ok := b.CurrentPosition()
	if !ok {
		return Position{}, 0, false
	}

	minDistance := -1
	var nearest Position
	found := false

	for r := 0; r < b.Rows(); r++ {
		for c := 0; c < b.Cols(); c++ {
			if b.visits[r][c] != Unvisited {
				continue
			}
			cell := Position{Row: r, Col: c}
			distance := KnightDistance(b.Rows(), b.Cols(), from, cell)
			if distance == UnreachableDistance {
				continue
			}
			if minDistance == -1 || distance < minDistance {
				minDistance = distance
				nearest = cell
				found = true
			}
		}
	}

	return nearest, minDistance, found
}

// DegreeMap returns, for every cell, the number of unvisited knight targets
// reachable from it on the current board. Used by the analysis tooling and
// the hint surfaces.
func DegreeMap(b *Board) [][]int {
	degrees := make([][]int, b.Rows())
	for r := range degrees {
		degrees[r] = make([]int, b.Cols())
		for c := range degrees[r] {
			degrees[r][c] = onwardDegree(b, Position{Row: r, Col: c})
		}
	}
	return degrees
}

// ReachableCells flood-fills the knight graph from a cell on an empty board
// of the given dimensions and returns the number of cells reachable from it,
// counting the cell itself. A cell with no knight moves at all (the centre
// of a 3x3 board) returns 1.
func ReachableCells(rows, cols int, from Position) int {
	inBounds := func(p Position) bool {
		return p.Row >= 0 && p.Row < rows && p.Col >= 0 && p.Col < cols
	}
	if !inBounds(from) {
		return 0
	}

	seen := map[Position]bool{from: true}
	queue := []Position{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range knightDeltas {
			next := Position{Row: cur.Row + d.Row, Col: cur.Col + d.Col}
			if !inBounds(next) || seen[next] {
				continue
			}
			seen[next] = true
			queue = append(queue, next)
		}
	}

	return len(seen)
}
