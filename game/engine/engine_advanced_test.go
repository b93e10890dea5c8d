package engine

import (
	"reflect"
	"testing"
)

func TestCountUnvisited(t *testing.T) {
	visits := [][]int{
		{0, 1, 0},
		{2, 0, 0},
	}
	if got := CountUnvisited(visits); got != 4 {
		t.Errorf("Expected 4 unvisited cells, got %d", got)
	}

	if got := CountUnvisited([][]int{}); got != 0 {
		t.Errorf("Expected 0 for an empty grid, got %d", got)
	}
}

func TestKnightDistance(t *testing.T) {
	tests := []struct {
		name     string
		rows     int
		cols     int
		from     Position
		to       Position
		expected int
	}{
		{"same cell", 8, 8, Position{Row: 3, Col: 3}, Position{Row: 3, Col: 3}, 0},
		{"single hop", 8, 8, Position{Row: 0, Col: 0}, Position{Row: 1, Col: 2}, 1},
		{"two hops", 8, 8, Position{Row: 0, Col: 0}, Position{Row: 2, Col: 4}, 2},
		{"adjacent diagonal takes four", 8, 8, Position{Row: 0, Col: 0}, Position{Row: 1, Col: 1}, 4},
		{"3x3 centre is cut off", 3, 3, Position{Row: 1, Col: 1}, Position{Row: 0, Col: 0}, UnreachableDistance},
		{"3x3 into the centre", 3, 3, Position{Row: 0, Col: 0}, Position{Row: 1, Col: 1}, UnreachableDistance},
		{"out of bounds origin", 5, 5, Position{Row: -1, Col: 0}, Position{Row: 0, Col: 0}, UnreachableDistance},
		{"out of bounds target", 5, 5, Position{Row: 0, Col: 0}, Position{Row: 5, Col: 5}, UnreachableDistance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := KnightDistance(tt.rows, tt.cols, tt.from, tt.to)
			if got != tt.expected {
				t.Errorf("Expected distance %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestReachableCells(t *testing.T) {
	tests := []struct {
		name     string
		rows     int
		cols     int
		from     Position
		expected int
	}{
		{"3x3 corner reaches the outer cycle", 3, 3, Position{Row: 0, Col: 0}, 8},
		{"3x3 centre reaches only itself", 3, 3, Position{Row: 1, Col: 1}, 1},
		{"1x1 single cell", 1, 1, Position{Row: 0, Col: 0}, 1},
		{"2x2 has no knight moves", 2, 2, Position{Row: 1, Col: 1}, 1},
		{"5x5 is fully connected", 5, 5, Position{Row: 0, Col: 0}, 25},
		{"5x10 is fully connected", 5, 10, Position{Row: 2, Col: 4}, 50},
		{"out of bounds", 3, 3, Position{Row: 3, Col: 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReachableCells(tt.rows, tt.cols, tt.from)
			if got != tt.expected {
				t.Errorf("Expected %d reachable cells, got %d", tt.expected, got)
			}
		})
	}
}

func TestFindNearestUnvisited(t *testing.T) {
	t.Run("no position set", func(t *testing.T) {
		board := mustBoard(t, 5, 10)
		if _, _, found := FindNearestUnvisited(board); found {
			t.Error("Expected no result before the first move")
		}
	})

	t.Run("nearest is one hop away", func(t *testing.T) {
		board := mustBoard(t, 5, 10)
		if _, err := board.CommitMove(Position{Row: 0, Col: 0}); err != nil {
			t.Fatalf("CommitMove failed: %v", err)
		}

		cell, distance, found := FindNearestUnvisited(board)
		if !found {
			t.Fatal("Expected an unvisited cell to be found")
		}
		if distance != 1 {
			t.Errorf("Expected distance 1, got %d", distance)
		}
		if cell != (Position{Row: 1, Col: 2}) {
			t.Errorf("Expected nearest cell (1,2), got (%d,%d)", cell.Row, cell.Col)
		}
	})

	t.Run("isolated centre finds nothing", func(t *testing.T) {
		board := mustBoard(t, 3, 3)
		if _, err := board.CommitMove(Position{Row: 1, Col: 1}); err != nil {
			t.Fatalf("CommitMove failed: %v", err)
		}
		if _, _, found := FindNearestUnvisited(board); found {
			t.Error("Expected no reachable unvisited cell from the 3x3 centre")
		}
	})

	t.Run("complete board finds nothing", func(t *testing.T) {
		board := mustBoard(t, 1, 1)
		if _, err := board.CommitMove(Position{Row: 0, Col: 0}); err != nil {
			t.Fatalf("CommitMove failed: %v", err)
		}
		if _, _, found := FindNearestUnvisited(board); found {
			t.Error("Expected no unvisited cell on a complete board")
		}
	})
}

func TestDegreeMap(t *testing.T) {
	board := mustBoard(t, 3, 3)

	degrees := DegreeMap(board)
	if len(degrees) != 3 || len(degrees[0]) != 3 {
		t.Fatalf("Expected a 3x3 degree grid, got %dx%d", len(degrees), len(degrees[0]))
	}

	// Every outer cell of the 3x3 cycle has exactly two onward moves; the
	// centre has none.
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			expected := 2
			if r == 1 && c == 1 {
				expected = 0
			}
			if degrees[r][c] != expected {
				t.Errorf("Expected degree %d at (%d,%d), got %d", expected, r, c, degrees[r][c])
			}
		}
	}
}

func TestDegreeMap_DropsVisitedTargets(t *testing.T) {
	board := mustBoard(t, 5, 10)
	if _, err := board.CommitMove(Position{Row: 1, Col: 2}); err != nil {
		t.Fatalf("CommitMove failed: %v", err)
	}

	degrees := DegreeMap(board)
	// (0,0) normally reaches (1,2) and (2,1); with (1,2) visited only one
	// target remains.
	if degrees[0][0] != 1 {
		t.Errorf("Expected degree 1 at (0,0) with (1,2) visited, got %d", degrees[0][0])
	}
}

func TestEngine_SetState(t *testing.T) {
	source := NewEngineWithDefaults()
	for _, cell := range []Position{{Row: 0, Col: 0}, {Row: 1, Col: 2}, {Row: 3, Col: 3}} {
		if _, err := source.CommitMove(cell); err != nil {
			t.Fatalf("Setup move to (%d,%d) failed: %v", cell.Row, cell.Col, err)
		}
	}
	captured := source.GetState()

	restored := NewEngineWithDefaults()
	if err := restored.SetState(captured); err != nil {
		t.Fatalf("SetState failed: %v", err)
	}

	if restored.GetVisitedCount() != 3 {
		t.Errorf("Expected 3 visited cells after restore, got %d", restored.GetVisitedCount())
	}
	pos, ok := restored.GetKnightPosition()
	if !ok || pos != (Position{Row: 3, Col: 3}) {
		t.Errorf("Expected knight at (3,3) after restore, got %v (set=%v)", pos, ok)
	}
	if !reflect.DeepEqual(restored.GetLegalMoves(), source.GetLegalMoves()) {
		t.Error("Expected restored legal moves to match the source engine")
	}

	// The restored board continues where the source left off.
	order, err := restored.CommitMove(Position{Row: 1, Col: 4})
	if err != nil {
		t.Fatalf("Move on restored board failed: %v", err)
	}
	if order != 4 {
		t.Errorf("Expected visit order 4 on the restored board, got %d", order)
	}
}

func TestEngine_SetState_NilState(t *testing.T) {
	engine := NewEngineWithDefaults()
	if err := engine.SetState(nil); err == nil {
		t.Error("Expected nil state to be rejected")
	}
}

func TestEngine_SetState_RejectsBadDimensions(t *testing.T) {
	engine := NewEngineWithDefaults()
	state := engine.GetState()
	state.Rows = 0
	if err := engine.SetState(state); err == nil {
		t.Error("Expected zero-row state to be rejected")
	}
}

func TestEngine_EstimateFixedAtFirstMove(t *testing.T) {
	engine := NewEngineWithDefaults()

	if _, err := engine.CommitMove(Position{Row: 0, Col: 0}); err != nil {
		t.Fatalf("Opening move failed: %v", err)
	}
	estimate := engine.GetState().TourEstimate
	if estimate < 1 {
		t.Fatalf("Expected estimate to be set at the opening move, got %d", estimate)
	}

	// Later moves never recompute the per-attempt figure.
	if _, err := engine.CommitMove(Position{Row: 1, Col: 2}); err != nil {
		t.Fatalf("Second move failed: %v", err)
	}
	if _, err := engine.CommitMove(Position{Row: 2, Col: 4}); err != nil {
		t.Fatalf("Third move failed: %v", err)
	}
	if got := engine.GetState().TourEstimate; got != estimate {
		t.Errorf("Expected estimate to stay at %d for the attempt, got %d", estimate, got)
	}
}

func TestEngine_EstimateRecomputedEachAttempt(t *testing.T) {
	engine := NewEngineWithDefaults()

	if _, err := engine.CommitMove(Position{Row: 0, Col: 0}); err != nil {
		t.Fatalf("Opening move failed: %v", err)
	}
	first := engine.GetState().TourEstimate

	engine.Reset()
	if got := engine.GetState().TourEstimate; got != 0 {
		t.Fatalf("Expected no estimate before the next opening move, got %d", got)
	}

	if _, err := engine.CommitMove(Position{Row: 0, Col: 0}); err != nil {
		t.Fatalf("Opening move after reset failed: %v", err)
	}
	if got := engine.GetState().TourEstimate; got != first {
		t.Errorf("Expected the same estimate for the same start on a fresh board: %d vs %d", first, got)
	}
}

func TestEngine_BestTourStableDuringAttempt(t *testing.T) {
	engine := NewEngineWithDefaults()
	before := engine.GetBestTour()

	if _, err := engine.CommitMove(Position{Row: 2, Col: 5}); err != nil {
		t.Fatalf("Opening move failed: %v", err)
	}
	if _, err := engine.CommitMove(Position{Row: 0, Col: 4}); err != nil {
		t.Fatalf("Second move failed: %v", err)
	}

	// The board-wide figure describes the fresh board; play does not move it.
	after := engine.GetBestTour()
	if before != after {
		t.Errorf("Expected best tour to stay at %+v during play, got %+v", before, after)
	}
}

func TestEngine_AttemptCounterAcrossResets(t *testing.T) {
	engine := NewEngineWithDefaults()

	for i := 0; i < 3; i++ {
		if _, err := engine.CommitMove(Position{Row: 0, Col: i}); err != nil {
			t.Fatalf("Opening move on attempt %d failed: %v", i+1, err)
		}
		engine.Reset()
	}

	state := engine.GetState()
	if state.Attempt != 4 {
		t.Errorf("Expected attempt 4 after three resets, got %d", state.Attempt)
	}
	if state.TotalMoves != 3 {
		t.Errorf("Expected 3 cumulative moves, got %d", state.TotalMoves)
	}
	if len(state.MoveHistory) != 3 {
		t.Errorf("Expected 3 cumulative history records, got %d", len(state.MoveHistory))
	}
}

func TestEngine_EmptyBulkMove(t *testing.T) {
	engine := NewEngineWithDefaults()
	results := engine.BulkMove([]Position{})
	if len(results) != 0 {
		t.Errorf("Expected 0 results for empty input, got %d", len(results))
	}
}
