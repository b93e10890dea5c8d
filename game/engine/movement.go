package engine

import (
	"sort"
	"time"
)

// knightDeltas are the eight (±1,±2)/(±2,±1) displacements a knight may
// make, in no particular order.
var knightDeltas = [8]Position{
	{Row: -2, Col: -1},
	{Row: -2, Col: 1},
	{Row: -1, Col: -2},
	{Row: -1, Col: 2},
	{Row: 1, Col: -2},
	{Row: 1, Col: 2},
	{Row: 2, Col: -1},
	{Row: 2, Col: 1},
}

// IsKnightMove reports whether the displacement from one cell to another is
// one of the eight knight deltas.
func IsKnightMove(from, to Position) bool {
	for _, d := range knightDeltas {
		if to.Row-from.Row == d.Row && to.Col-from.Col == d.Col {
			return true
		}
	}
	return false
}

// KnightTargets enumerates the knight-reachable, in-bounds, unvisited cells
// from an explicit source cell, sorted ascending by row then column. Fails
// with an OutOfBoundsError if from lies outside the board.
func KnightTargets(b *Board, from Position) ([]Position, error) {
	if !b.InBounds(from) {
		return nil, &OutOfBoundsError{Cell: from, Rows: b.Rows(), Cols: b.Cols()}
	}

	targets := make([]Position, 0, len(knightDeltas))
	for _, d := range knightDeltas {
		cell := Position{Row: from.Row + d.Row, Col: from.Col + d.Col}
		if !b.InBounds(cell) {
			continue
		}
		if b.visits[cell.Row][cell.Col] != Unvisited {
			continue
		}
		targets = append(targets, cell)
	}

	sortPositions(targets)
	return targets, nil
}

// LegalMoves returns the legal target cells for the next move, sorted
// ascending by row then column. From an unset position (fresh or reset
// board) every unvisited cell is legal: the opening placement may go
// anywhere and is not a knight move. An empty result with a set position
// means no legal moves remain.
func LegalMoves(b *Board) []Position {
	from, ok := b.CurrentPosition()
	if !ok {
		return unvisitedCells(b)
	}

	// from is the knight's own cell, always in bounds.
	targets, _ := KnightTargets(b, from)
	return targets
}

// GameOver reports whether the game has ended: at least one move committed
// and no legal onward move from the knight's cell.
func GameOver(b *Board) bool {
	if _, ok := b.CurrentPosition(); !ok {
		return false
	}
	return len(LegalMoves(b)) == 0
}

// BoardComplete reports whether every cell has been visited.
func BoardComplete(b *Board) bool {
	return b.VisitedCount() == b.TotalCells()
}

// unvisitedCells lists every unvisited cell in row-major order.
func unvisitedCells(b *Board) []Position {
	cells := make([]Position, 0, b.TotalCells()-b.VisitedCount())
	for r := 0; r < b.Rows(); r++ {
		for c := 0; c < b.Cols(); c++ {
			if b.visits[r][c] == Unvisited {
				cells = append(cells, Position{Row: r, Col: c})
			}
		}
	}
	return cells
}

// sortPositions orders cells ascending by row then column, the fixed
// deterministic order used everywhere a cell set is returned.
func sortPositions(cells []Position) {
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Row != cells[j].Row {
			return cells[i].Row < cells[j].Row
		}
		return cells[i].Col < cells[j].Col
	})
}

// AddMoveToHistory adds a move attempt to the game's move history
func (gs *GameState) AddMoveToHistory(target Position, fromPos *Position, visitOrder int, success bool, reason string) {
	entry := MoveRecord{
		Target:     target,
		VisitOrder: visitOrder,
		Attempt:    gs.Attempt,
		Timestamp:  time.Now().Unix(),
		Success:    success,
		Reason:     reason,
		MoveNumber: gs.TotalMoves + 1,
	}
	if fromPos != nil {
		from := *fromPos
		entry.FromPosition = &from
	}
	// Append to cumulative history (never cleared by reset) and increment total
	gs.MoveHistory = append(gs.MoveHistory, entry)
	gs.TotalMoves++

	// Append to the current attempt's history and increment its counter
	gs.CurrentMoves = append(gs.CurrentMoves, entry)
	gs.CurrentMovesCount++
}
