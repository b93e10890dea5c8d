package engine

import (
	"errors"
	"strings"
	"testing"
)

func TestValidationConstants(t *testing.T) {
	tests := []struct {
		name     string
		actual   int
		expected int
	}{
		{"MinBoardRows", MinBoardRows, 1},
		{"MinBoardCols", MinBoardCols, 1},
		{"MaxBulkMoves", MaxBulkMoves, 50},
		{"UnreachableDistance", UnreachableDistance, 999999},
		{"WebSocketBufferSize", WebSocketBufferSize, 256},
		{"Unvisited", Unvisited, 0},
	}

	for _, test := range tests {
		if test.actual != test.expected {
			t.Errorf("%s: expected %d, got %d", test.name, test.expected, test.actual)
		}
	}
}

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{
			name:     "out of bounds",
			err:      &OutOfBoundsError{Cell: Position{Row: 7, Col: 3}, Rows: 5, Cols: 10},
			contains: "(7,3) is out of bounds",
		},
		{
			name:     "already visited",
			err:      &AlreadyVisitedError{Cell: Position{Row: 1, Col: 2}, Order: 4},
			contains: "(1,2) already visited (move 4)",
		},
		{
			name:     "illegal move",
			err:      &IllegalMoveError{From: Position{Row: 0, Col: 0}, To: Position{Row: 3, Col: 3}},
			contains: "no knight move from (0,0) to (3,3)",
		},
		{
			name:     "invalid start",
			err:      &InvalidStartError{Start: Position{Row: -1, Col: 0}, Rows: 5, Cols: 10},
			contains: "start (-1,0) is outside",
		},
		{
			name:     "configuration",
			err:      &ConfigurationError{Reason: "rows must be positive, got 0"},
			contains: "config validation: rows must be positive",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if !strings.Contains(test.err.Error(), test.contains) {
				t.Errorf("Expected error to contain %q, got %q", test.contains, test.err.Error())
			}
		})
	}
}

func TestErrorKindsMatchWithErrorsAs(t *testing.T) {
	board, err := NewBoard(5, 10)
	if err != nil {
		t.Fatalf("Failed to create board: %v", err)
	}

	_, err = board.CommitMove(Position{Row: 9, Col: 0})
	var oob *OutOfBoundsError
	if !errors.As(err, &oob) {
		t.Fatalf("Expected OutOfBoundsError, got %T", err)
	}
	if oob.Rows != 5 || oob.Cols != 10 {
		t.Errorf("Expected board dims 5x10 on error, got %dx%d", oob.Rows, oob.Cols)
	}

	if _, err := board.CommitMove(Position{Row: 0, Col: 0}); err != nil {
		t.Fatalf("Expected first commit to succeed: %v", err)
	}
	_, err = board.CommitMove(Position{Row: 0, Col: 0})
	var visited *AlreadyVisitedError
	if !errors.As(err, &visited) {
		t.Fatalf("Expected AlreadyVisitedError, got %T", err)
	}
	if visited.Order != 1 {
		t.Errorf("Expected recorded order 1, got %d", visited.Order)
	}
}

func TestAddMoveToHistory(t *testing.T) {
	state := InitGameStateFromConfig(nil)

	from := Position{Row: 0, Col: 0}
	state.AddMoveToHistory(Position{Row: 1, Col: 2}, &from, 2, true, "")
	state.AddMoveToHistory(Position{Row: 4, Col: 4}, &from, 0, false, "illegal_move")

	if state.TotalMoves != 2 {
		t.Errorf("Expected 2 total moves, got %d", state.TotalMoves)
	}
	if state.CurrentMovesCount != 2 {
		t.Errorf("Expected 2 current moves, got %d", state.CurrentMovesCount)
	}
	if len(state.MoveHistory) != 2 {
		t.Fatalf("Expected 2 history entries, got %d", len(state.MoveHistory))
	}

	first := state.MoveHistory[0]
	if !first.Success || first.VisitOrder != 2 || first.MoveNumber != 1 {
		t.Errorf("Unexpected first entry: %+v", first)
	}
	if first.FromPosition == nil || *first.FromPosition != from {
		t.Errorf("Expected from position %v, got %v", from, first.FromPosition)
	}

	second := state.MoveHistory[1]
	if second.Success {
		t.Error("Expected second entry to record a failure")
	}
	if second.Reason != "illegal_move" {
		t.Errorf("Expected reason 'illegal_move', got %q", second.Reason)
	}
	if second.MoveNumber != 2 {
		t.Errorf("Expected move number 2, got %d", second.MoveNumber)
	}
}
