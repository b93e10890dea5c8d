package service

import (
	"time"

	"github.com/wricardo/mcp-training/knightstour/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string              `json:"id"`
	ConfigName     string              `json:"config_name"`
	CreatedAt      time.Time           `json:"created_at"`
	LastAccessedAt time.Time           `json:"last_accessed_at"`
	GameState      *engine.GameState   `json:"game_state"`
	BoardConfig    *engine.BoardConfig `json:"board_config"`
}

// MoveResult contains the result of a move operation
type MoveResult struct {
	Success     bool              `json:"success"`
	VisitOrder  int               `json:"visit_order,omitempty"`
	GameState   *engine.GameState `json:"game_state"`
	Message     string            `json:"message"`
	Events      []GameEvent       `json:"events,omitempty"`
	Step        *StepInfo         `json:"step,omitempty"`
	AttemptedTo *AttemptInfo      `json:"attempted_to,omitempty"`
}

// BulkMoveResult contains the result of multiple moves
type BulkMoveResult struct {
	// Summary
	MovesExecuted  int               `json:"moves_executed"`
	RequestedMoves int               `json:"requested_moves"`
	Success        bool              `json:"success"`
	GameState      *engine.GameState `json:"game_state"`
	Events         []GameEvent       `json:"events"`
	StoppedReason  string            `json:"stopped_reason,omitempty"`   // Human-readable reason
	StopReasonCode string            `json:"stop_reason_code,omitempty"` // Machine-friendly code: completed|move_rejected|game_over|max_moves_exceeded
	StoppedOnMove  int               `json:"stopped_on_move,omitempty"`  // 1-based index of the move that caused stop
	Truncated      bool              `json:"truncated,omitempty"`
	Limit          int               `json:"limit,omitempty"`

	// Start/end snapshot
	StartPos     *engine.Position `json:"start_pos,omitempty"`
	EndPos       *engine.Position `json:"end_pos,omitempty"`
	StartVisited int              `json:"start_visited"`
	EndVisited   int              `json:"end_visited"`

	// Per-step compact trace (only for this call)
	Steps []StepInfo `json:"steps,omitempty"`

	// Failure diagnostics
	AttemptedTo *AttemptInfo `json:"attempted_to,omitempty"`

	// Final status aids
	GameOver      bool              `json:"game_over"`
	BoardComplete bool              `json:"board_complete"`
	GameOverCode  string            `json:"game_over_code,omitempty"`
	Message       string            `json:"message,omitempty"`
	LegalMoves    []engine.Position `json:"legal_moves,omitempty"`
}

// StepInfo is a compact record for each executed move in the bulk call
type StepInfo struct {
	Idx           int              `json:"idx"`
	From          *engine.Position `json:"from,omitempty"`
	To            engine.Position  `json:"to"`
	VisitOrder    int              `json:"visit_order"`
	VisitedAfter  int              `json:"visited_after"`
	Success       bool             `json:"success"`
	GameOver      bool             `json:"game_over,omitempty"`
	BoardComplete bool             `json:"board_complete,omitempty"`
}

// AttemptInfo details the first rejected target cell attempted
type AttemptInfo struct {
	Row             int    `json:"row"`
	Col             int    `json:"col"`
	InBounds        bool   `json:"in_bounds"`
	Visited         bool   `json:"visited"`
	KnightReachable bool   `json:"knight_reachable"`
	Reason          string `json:"reason"`
}

// EstimateResult carries a tour estimate for an explicit starting cell
type EstimateResult struct {
	Start    engine.Position      `json:"start"`
	Length   int                  `json:"length"`
	BestTour *engine.TourEstimate `json:"best_tour,omitempty"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string          `json:"type"` // "move", "tour_estimated", "game_over", "board_complete", "reset"
	Message   string          `json:"message"`
	Timestamp time.Time       `json:"timestamp"`
	Position  engine.Position `json:"position,omitempty"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveRecord `json:"moves"`
	TotalMoves  int                 `json:"total_moves"`
	Page        int                 `json:"page"`
	PageSize    int                 `json:"page_size"`
	TotalPages  int                 `json:"total_pages"`
	HasNext     bool                `json:"has_next"`
	HasPrevious bool                `json:"has_previous"`
}

// ConfigInfo provides information about a board configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	Rows        int    `json:"rows"`
	Cols        int    `json:"cols"`
}
