package engine

const (
	// Validation constants
	MinBoardRows = 1
	MinBoardCols = 1

	MaxBulkMoves        = 50
	UnreachableDistance = 999999
	WebSocketBufferSize = 256
)

// Unvisited is the visit-order value of a cell the knight has not entered.
const Unvisited = 0

// Position represents a row,col cell coordinate (0-indexed from the
// top-left corner).
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Messages holds the human-readable strings templated into GameState.Message.
type Messages struct {
	Welcome       string `json:"welcome"`
	GameOver      string `json:"game_over"`
	BoardComplete string `json:"board_complete"`
	CellVisited   string `json:"cell_visited"`
}

// BoardConfig represents a board preset loaded from JSON.
type BoardConfig struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Rows        int      `json:"rows"`
	Cols        int      `json:"cols"`
	Messages    Messages `json:"messages"`
}

// TourEstimate pairs a starting cell with the tour length the greedy
// simulation reached from it.
type TourEstimate struct {
	Start  Position `json:"start"`
	Length int      `json:"length"`
}

// GameState represents the complete game state
type GameState struct {
	Rows         int       `json:"rows"`
	Cols         int       `json:"cols"`
	Visits       [][]int   `json:"visits"`
	KnightPos    *Position `json:"knight_pos,omitempty"`
	VisitedCount int       `json:"visited_count"`
	TotalCells   int       `json:"total_cells"`

	LegalMoves    []Position `json:"legal_moves"`
	GameOver      bool       `json:"game_over"`
	BoardComplete bool       `json:"board_complete"`

	// TourEstimate is the Warnsdorff estimate from this attempt's starting
	// cell, 0 until the first move of the attempt is committed.
	TourEstimate int `json:"tour_estimate,omitempty"`
	// BestTour is the board-wide best estimate over all starting cells,
	// recomputed whenever the board is (re)initialized.
	BestTour *TourEstimate `json:"best_tour,omitempty"`

	Message     string       `json:"message"`
	ConfigName  string       `json:"config_name"`
	Attempt     int          `json:"attempt"`
	MoveHistory []MoveRecord `json:"move_history"`
	TotalMoves  int          `json:"total_moves"`

	// CurrentMoves tracks only the moves since the last reset. It mirrors
	// MoveHistory entries but gets cleared on reset while MoveHistory
	// remains cumulative.
	CurrentMoves      []MoveRecord `json:"current_moves"`
	CurrentMovesCount int          `json:"current_moves_count"`
}

// MoveRecord represents a single move attempt in the game history
type MoveRecord struct {
	Target       Position  `json:"target"`
	FromPosition *Position `json:"from_position,omitempty"`
	VisitOrder   int       `json:"visit_order,omitempty"`
	Attempt      int       `json:"attempt"`
	Timestamp    int64     `json:"timestamp"`
	Success      bool      `json:"success"`
	Reason       string    `json:"reason,omitempty"`
	MoveNumber   int       `json:"move_number"`
}
