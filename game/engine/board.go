package engine

// Board is the single source of truth for which cells are visited, in what
// order, and where the knight currently sits. Visit orders form a
// contiguous 1..n sequence; the knight's cell always carries the highest
// assigned order. All mutation goes through CommitMove.
type Board struct {
	rows   int
	cols   int
	visits [][]int
	pos    *Position
	next   int
}

// NewBoard creates a fresh board with all cells unvisited and no knight
// position. Non-positive dimensions fail with a ConfigurationError.
func NewBoard(rows, cols int) (*Board, error) {
	if rows < MinBoardRows {
		return nil, &ConfigurationError{Reason: "rows must be positive"}
	}
	if cols < MinBoardCols {
		return nil, &ConfigurationError{Reason: "cols must be positive"}
	}

	b := &Board{rows: rows, cols: cols}
	b.Reset()
	return b, nil
}

// Reset returns the board to its initial state: all cells unvisited,
// position unset.
func (b *Board) Reset() {
	visits := make([][]int, b.rows)
	for r := range visits {
		visits[r] = make([]int, b.cols)
	}
	b.visits = visits
	b.pos = nil
	b.next = 1
}

// Rows returns the number of board rows.
func (b *Board) Rows() int { return b.rows }

// Cols returns the number of board columns.
func (b *Board) Cols() int { return b.cols }

// TotalCells returns rows*cols.
func (b *Board) TotalCells() int { return b.rows * b.cols }

// InBounds reports whether cell lies within the board.
func (b *Board) InBounds(cell Position) bool {
	return cell.Row >= 0 && cell.Row < b.rows && cell.Col >= 0 && cell.Col < b.cols
}

// IsVisited reports whether cell has been visited. Out-of-range cells fail
// with an OutOfBoundsError.
func (b *Board) IsVisited(cell Position) (bool, error) {
	if !b.InBounds(cell) {
		return false, &OutOfBoundsError{Cell: cell, Rows: b.rows, Cols: b.cols}
	}
	return b.visits[cell.Row][cell.Col] != Unvisited, nil
}

// VisitOrder returns the 1-based visit order of cell, or Unvisited. Out-of-
// range cells fail with an OutOfBoundsError.
func (b *Board) VisitOrder(cell Position) (int, error) {
	if !b.InBounds(cell) {
		return Unvisited, &OutOfBoundsError{Cell: cell, Rows: b.rows, Cols: b.cols}
	}
	return b.visits[cell.Row][cell.Col], nil
}

// CommitMove marks cell visited with the next visit order and moves the
// knight there. It is the only mutator in the system. Fails with
// OutOfBoundsError or AlreadyVisitedError, leaving the board untouched.
func (b *Board) CommitMove(cell Position) (int, error) {
	if !b.InBounds(cell) {
		return 0, &OutOfBoundsError{Cell: cell, Rows: b.rows, Cols: b.cols}
	}
	if order := b.visits[cell.Row][cell.Col]; order != Unvisited {
		return 0, &AlreadyVisitedError{Cell: cell, Order: order}
	}

	order := b.next
	b.visits[cell.Row][cell.Col] = order
	b.next++
	pos := cell
	b.pos = &pos
	return order, nil
}

// CurrentPosition returns the knight's cell and whether one is set. The
// position is unset on a fresh or reset board, before the first move.
func (b *Board) CurrentPosition() (Position, bool) {
	if b.pos == nil {
		return Position{}, false
	}
	return *b.pos, true
}

// VisitedCount returns the number of visited cells.
func (b *Board) VisitedCount() int {
	return b.next - 1
}

// Clone returns a deep copy of the board, used for scratch simulations.
func (b *Board) Clone() *Board {
	visits := make([][]int, b.rows)
	for r := range visits {
		visits[r] = make([]int, b.cols)
		copy(visits[r], b.visits[r])
	}

	clone := &Board{rows: b.rows, cols: b.cols, visits: visits, next: b.next}
	if b.pos != nil {
		pos := *b.pos
		clone.pos = &pos
	}
	return clone
}

// Visits returns a deep copy of the visit-order grid.
func (b *Board) Visits() [][]int {
	visits := make([][]int, b.rows)
	for r := range visits {
		visits[r] = make([]int, b.cols)
		copy(visits[r], b.visits[r])
	}
	return visits
}
