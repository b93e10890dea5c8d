package engine

import "fmt"

// OutOfBoundsError reports a coordinate outside the board.
type OutOfBoundsError struct {
	Cell Position
	Rows int
	Cols int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("position (%d,%d) is out of bounds for %dx%d board", e.Cell.Row, e.Cell.Col, e.Rows, e.Cols)
}

// AlreadyVisitedError reports a move onto a cell the knight has entered.
type AlreadyVisitedError struct {
	Cell  Position
	Order int
}

func (e *AlreadyVisitedError) Error() string {
	return fmt.Sprintf("position (%d,%d) already visited (move %d)", e.Cell.Row, e.Cell.Col, e.Order)
}

// IllegalMoveError reports a move that is not a knight move from the
// knight's current cell. Only possible once a position is set; the opening
// placement may go anywhere.
type IllegalMoveError struct {
	From Position
	To   Position
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("no knight move from (%d,%d) to (%d,%d)", e.From.Row, e.From.Col, e.To.Row, e.To.Col)
}

// InvalidStartError reports a tour estimate requested for an out-of-bounds
// starting cell.
type InvalidStartError struct {
	Start Position
	Rows  int
	Cols  int
}

func (e *InvalidStartError) Error() string {
	return fmt.Sprintf("start (%d,%d) is outside %dx%d board", e.Start.Row, e.Start.Col, e.Rows, e.Cols)
}

// ConfigurationError reports a board configuration that cannot produce a
// playable game, such as non-positive dimensions.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("config validation: %s", e.Reason)
}
