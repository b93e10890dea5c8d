package engine

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewBoard(t *testing.T) {
	board, err := NewBoard(5, 10)
	if err != nil {
		t.Fatalf("Failed to create board: %v", err)
	}

	if board.Rows() != 5 || board.Cols() != 10 {
		t.Errorf("Expected 5x10 board, got %dx%d", board.Rows(), board.Cols())
	}
	if board.TotalCells() != 50 {
		t.Errorf("Expected 50 total cells, got %d", board.TotalCells())
	}
	if board.VisitedCount() != 0 {
		t.Errorf("Expected 0 visited cells, got %d", board.VisitedCount())
	}
	if _, ok := board.CurrentPosition(); ok {
		t.Error("Expected position to be unset on a fresh board")
	}
}

func TestNewBoard_InvalidDimensions(t *testing.T) {
	tests := []struct {
		name string
		rows int
		cols int
	}{
		{"zero rows", 0, 10},
		{"zero cols", 5, 0},
		{"negative rows", -1, 10},
		{"negative cols", 5, -3},
		{"both zero", 0, 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewBoard(test.rows, test.cols)
			if err == nil {
				t.Fatalf("Expected error for %dx%d board", test.rows, test.cols)
			}
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Errorf("Expected ConfigurationError, got %T", err)
			}
		})
	}
}

func TestBoard_CommitMove(t *testing.T) {
	board, err := NewBoard(5, 10)
	if err != nil {
		t.Fatalf("Failed to create board: %v", err)
	}

	order, err := board.CommitMove(Position{Row: 0, Col: 0})
	if err != nil {
		t.Fatalf("Expected first commit to succeed: %v", err)
	}
	if order != 1 {
		t.Errorf("Expected visit order 1, got %d", order)
	}

	pos, ok := board.CurrentPosition()
	if !ok {
		t.Fatal("Expected position to be set after commit")
	}
	if pos != (Position{Row: 0, Col: 0}) {
		t.Errorf("Expected position (0,0), got (%d,%d)", pos.Row, pos.Col)
	}
	if board.VisitedCount() != 1 {
		t.Errorf("Expected 1 visited cell, got %d", board.VisitedCount())
	}

	// Orders are assigned as a contiguous 1..n sequence.
	cells := []Position{{Row: 1, Col: 2}, {Row: 2, Col: 4}, {Row: 4, Col: 3}}
	for i, cell := range cells {
		order, err := board.CommitMove(cell)
		if err != nil {
			t.Fatalf("Commit %d failed: %v", i+2, err)
		}
		if order != i+2 {
			t.Errorf("Expected visit order %d, got %d", i+2, order)
		}
	}

	// The position always carries the highest assigned order.
	pos, _ = board.CurrentPosition()
	got, err := board.VisitOrder(pos)
	if err != nil {
		t.Fatalf("VisitOrder failed: %v", err)
	}
	if got != board.VisitedCount() {
		t.Errorf("Expected position's order %d to equal visited count %d", got, board.VisitedCount())
	}
}

func TestBoard_CommitMoveRejections(t *testing.T) {
	board, err := NewBoard(5, 10)
	if err != nil {
		t.Fatalf("Failed to create board: %v", err)
	}
	if _, err := board.CommitMove(Position{Row: 2, Col: 2}); err != nil {
		t.Fatalf("Setup commit failed: %v", err)
	}

	outOfBounds := []Position{
		{Row: -1, Col: 0},
		{Row: 0, Col: -1},
		{Row: 5, Col: 0},
		{Row: 0, Col: 10},
		{Row: 99, Col: 99},
	}
	for _, cell := range outOfBounds {
		_, err := board.CommitMove(cell)
		var oob *OutOfBoundsError
		if !errors.As(err, &oob) {
			t.Errorf("Commit to (%d,%d): expected OutOfBoundsError, got %v", cell.Row, cell.Col, err)
		}
	}

	_, err = board.CommitMove(Position{Row: 2, Col: 2})
	var visited *AlreadyVisitedError
	if !errors.As(err, &visited) {
		t.Fatalf("Expected AlreadyVisitedError for revisit, got %v", err)
	}

	// Rejections leave the board untouched.
	if board.VisitedCount() != 1 {
		t.Errorf("Expected visited count to stay 1 after rejections, got %d", board.VisitedCount())
	}
	pos, _ := board.CurrentPosition()
	if pos != (Position{Row: 2, Col: 2}) {
		t.Errorf("Expected position unchanged at (2,2), got (%d,%d)", pos.Row, pos.Col)
	}
}

func TestBoard_IsVisited(t *testing.T) {
	board, err := NewBoard(3, 3)
	if err != nil {
		t.Fatalf("Failed to create board: %v", err)
	}

	visited, err := board.IsVisited(Position{Row: 1, Col: 1})
	if err != nil {
		t.Fatalf("IsVisited failed: %v", err)
	}
	if visited {
		t.Error("Expected fresh cell to be unvisited")
	}

	board.CommitMove(Position{Row: 1, Col: 1})
	visited, err = board.IsVisited(Position{Row: 1, Col: 1})
	if err != nil {
		t.Fatalf("IsVisited failed: %v", err)
	}
	if !visited {
		t.Error("Expected committed cell to be visited")
	}

	if _, err := board.IsVisited(Position{Row: 3, Col: 0}); err == nil {
		t.Error("Expected error for out-of-bounds query")
	}
}

func TestBoard_Reset(t *testing.T) {
	board, err := NewBoard(4, 4)
	if err != nil {
		t.Fatalf("Failed to create board: %v", err)
	}

	board.CommitMove(Position{Row: 0, Col: 0})
	board.CommitMove(Position{Row: 1, Col: 2})
	board.Reset()

	if board.VisitedCount() != 0 {
		t.Errorf("Expected 0 visited cells after reset, got %d", board.VisitedCount())
	}
	if _, ok := board.CurrentPosition(); ok {
		t.Error("Expected position unset after reset")
	}

	// Orders restart at 1 after reset.
	order, err := board.CommitMove(Position{Row: 3, Col: 3})
	if err != nil {
		t.Fatalf("Commit after reset failed: %v", err)
	}
	if order != 1 {
		t.Errorf("Expected visit order 1 after reset, got %d", order)
	}
}

func TestBoard_Clone(t *testing.T) {
	board, err := NewBoard(4, 5)
	if err != nil {
		t.Fatalf("Failed to create board: %v", err)
	}
	board.CommitMove(Position{Row: 0, Col: 0})
	board.CommitMove(Position{Row: 2, Col: 1})

	clone := board.Clone()

	if !reflect.DeepEqual(clone.Visits(), board.Visits()) {
		t.Error("Expected clone to carry the same visit grid")
	}
	clonePos, _ := clone.CurrentPosition()
	boardPos, _ := board.CurrentPosition()
	if clonePos != boardPos {
		t.Errorf("Expected clone position %v, got %v", boardPos, clonePos)
	}

	// Mutating the clone must not touch the original.
	before := board.Visits()
	clone.CommitMove(Position{Row: 0, Col: 2})
	if !reflect.DeepEqual(board.Visits(), before) {
		t.Error("Commit on clone mutated the original board")
	}
	if board.VisitedCount() != 2 {
		t.Errorf("Expected original visited count 2, got %d", board.VisitedCount())
	}
	if clone.VisitedCount() != 3 {
		t.Errorf("Expected clone visited count 3, got %d", clone.VisitedCount())
	}
}

func TestBoard_VisitsReturnsCopy(t *testing.T) {
	board, err := NewBoard(2, 2)
	if err != nil {
		t.Fatalf("Failed to create board: %v", err)
	}
	board.CommitMove(Position{Row: 0, Col: 0})

	visits := board.Visits()
	visits[0][0] = 99
	visits[1][1] = 42

	order, _ := board.VisitOrder(Position{Row: 0, Col: 0})
	if order != 1 {
		t.Errorf("Expected board to be unaffected by mutations of Visits copy, order now %d", order)
	}
	if visited, _ := board.IsVisited(Position{Row: 1, Col: 1}); visited {
		t.Error("Expected (1,1) to remain unvisited after mutating the copy")
	}
}
