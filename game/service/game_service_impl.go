package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wricardo/mcp-training/knightstour/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	// Fallback: return as-is or "default"
	if configName == "" {
		return "default"
	}
	return configName
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Load configuration
	var config *engine.BoardConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			// Provide helpful error message with available options
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v", configName, configIDs)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations", configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	logBoardPotential(session.ID, session.Engine)

	// Determine the config identifier to return - prefer the input configName if provided,
	// otherwise look up the config_id by display name
	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     configID, // Return the config_id, not the display name
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Engine.GetState(),
		BoardConfig:    session.Config,
	}, nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     s.getConfigID(session.Config.Name), // Return config_id consistently
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Engine.GetState(),
		BoardConfig:    session.Config,
	}, nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		result = append(result, &SessionInfo{
			ID:             sess.ID,
			ConfigName:     s.getConfigID(sess.Config.Name), // Return config_id consistently
			CreatedAt:      sess.CreatedAt,
			LastAccessedAt: sess.LastAccessedAt,
			GameState:      sess.Engine.GetState(),
			BoardConfig:    sess.Config,
		})
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Move commits a single move for a session. A move rejected by the game
// rules (out of bounds, already visited, not a knight move) is not an
// error: the result carries success=false and the attempt diagnostics, and
// the session state is unchanged.
func (s *gameServiceImpl) Move(ctx context.Context, sessionID string, cell engine.Position, reset bool) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Get session
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	// Update last accessed time
	s.sessions.UpdateLastAccessed(sessionID)

	// Collect events
	events := []GameEvent{}

	// Handle reset if requested
	if reset {
		sess.Engine.Reset()
		events = append(events, GameEvent{
			Type:      "reset",
			Message:   "Board reset to initial state",
			Timestamp: time.Now(),
		})
		logBoardPotential(sessionID, sess.Engine)
	}

	// Execute move
	from := knightPosPtr(sess.Engine)
	order, moveErr := sess.Engine.CommitMove(cell)
	state := sess.Engine.GetState()

	// Build result
	result := &MoveResult{
		Success:    moveErr == nil,
		VisitOrder: order,
		GameState:  state,
		Message:    state.Message,
		Events:     events,
	}

	if moveErr == nil {
		moveEvents := extractMoveEvents(sess, from, cell, order)
		result.Events = append(result.Events, moveEvents...)
		result.Step = &StepInfo{
			Idx:           1,
			From:          from,
			To:            cell,
			VisitOrder:    order,
			VisitedAfter:  state.VisitedCount,
			Success:       true,
			GameOver:      state.GameOver,
			BoardComplete: state.BoardComplete,
		}
	} else {
		result.AttemptedTo = describeAttempt(sess, cell, moveErr)
	}

	// Auto-save session after move
	if err := s.sessions.Save(sessionID); err != nil {
		logrus.WithError(err).WithField("session_id", sessionID).Warn("Failed to persist session after move")
	}

	return result, nil
}

// BulkMove commits multiple moves in sequence, stopping at the first
// rejection or when the game ends
func (s *gameServiceImpl) BulkMove(ctx context.Context, sessionID string, cells []engine.Position, reset bool) (*BulkMoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	// Update last accessed
	s.sessions.UpdateLastAccessed(sessionID)

	// Initialize result and capture start snapshot
	state := sess.Engine.GetState()

	result := &BulkMoveResult{
		RequestedMoves: len(cells),
		Events:         make([]GameEvent, 0),
		Success:        true,
		StartPos:       knightPosPtr(sess.Engine),
		StartVisited:   state.VisitedCount,
		GameOver:       state.GameOver,
		Message:        state.Message,
	}

	// Handle reset
	if reset {
		sess.Engine.Reset()
		result.Events = append(result.Events, GameEvent{
			Type:      "reset",
			Message:   "Board reset to initial state",
			Timestamp: time.Now(),
		})
		logBoardPotential(sessionID, sess.Engine)
		result.StartPos = nil
		result.StartVisited = 0
	}

	// Limit moves to prevent abuse
	if len(cells) > engine.MaxBulkMoves {
		result.Truncated = true
		result.Limit = engine.MaxBulkMoves
		cells = cells[:engine.MaxBulkMoves]
	}

	// Execute moves
	for i, cell := range cells {
		if sess.Engine.IsGameOver() {
			result.StoppedReason = "game_over"
			result.StopReasonCode = "game_over"
			result.StoppedOnMove = result.MovesExecuted + 1
			break
		}

		from := knightPosPtr(sess.Engine)
		order, moveErr := sess.Engine.CommitMove(cell)

		if moveErr != nil {
			result.Success = false
			result.StoppedReason = fmt.Sprintf("move %d rejected at (%d,%d): %v", i+1, cell.Row, cell.Col, moveErr)
			result.StopReasonCode = "move_rejected"
			result.StoppedOnMove = i + 1
			result.AttemptedTo = describeAttempt(sess, cell, moveErr)
			break
		}

		result.MovesExecuted++

		// Collect events for this move
		events := extractMoveEvents(sess, from, cell, order)
		result.Events = append(result.Events, events...)

		// Build step info for this executed move
		currState := sess.Engine.GetState()
		result.Steps = append(result.Steps, StepInfo{
			Idx:           i + 1,
			From:          from,
			To:            cell,
			VisitOrder:    order,
			VisitedAfter:  currState.VisitedCount,
			Success:       true,
			GameOver:      currState.GameOver,
			BoardComplete: currState.BoardComplete,
		})
	}

	// Finalize snapshots
	endState := sess.Engine.GetState()
	result.GameState = endState
	result.EndPos = knightPosPtr(sess.Engine)
	result.EndVisited = endState.VisitedCount
	result.GameOver = endState.GameOver
	result.BoardComplete = endState.BoardComplete
	result.Message = endState.Message

	if result.GameOver {
		if result.BoardComplete {
			result.GameOverCode = "board_complete"
		} else {
			result.GameOverCode = "game_over"
		}
		if result.StopReasonCode == "" {
			// The last executed move ended the game.
			result.StopReasonCode = result.GameOverCode
		}
	}
	if result.StopReasonCode == "" {
		if result.Truncated {
			result.StopReasonCode = "max_moves_exceeded"
		} else {
			result.StopReasonCode = "completed"
		}
	}

	// Decision aids
	result.LegalMoves = sess.Engine.GetLegalMoves()

	// Auto-save session after bulk moves
	if err := s.sessions.Save(sessionID); err != nil {
		logrus.WithError(err).WithField("session_id", sessionID).Warn("Failed to persist session after bulk moves")
	}

	return result, nil
}

// Reset resets a game session to a fresh board
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	state := sess.Engine.Reset()
	logBoardPotential(sessionID, sess.Engine)

	// Auto-save session after reset
	if err := s.sessions.Save(sessionID); err != nil {
		logrus.WithError(err).WithField("session_id", sessionID).Warn("Failed to persist session after reset")
	}

	return state, nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.GetState(), nil
}

// GetLegalMoves returns the legal target cells for the session's next move
func (s *gameServiceImpl) GetLegalMoves(ctx context.Context, sessionID string) ([]engine.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	return sess.Engine.GetLegalMoves(), nil
}

// EstimateTour runs the greedy tour simulation from an explicit start
// against the session's current board
func (s *gameServiceImpl) EstimateTour(ctx context.Context, sessionID string, start engine.Position) (*EstimateResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	length, err := sess.Engine.EstimateFrom(start)
	if err != nil {
		return nil, err
	}

	best := sess.Engine.GetBestTour()
	return &EstimateResult{
		Start:    start,
		Length:   length,
		BestTour: &best,
	}, nil
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Engine.GetMoveHistory()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	// Calculate pagination
	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	// Get the slice of moves
	var moves []engine.MoveRecord
	if opts.Order == "desc" {
		// Reverse order (most recent first)
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			moves = append(moves, history[i])
		}
	} else {
		// Normal chronological order
		if start < total {
			moves = history[start:end]
		}
	}

	// Ensure moves is not nil
	if moves == nil {
		moves = []engine.MoveRecord{}
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns available board configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific board configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.BoardConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a board configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.BoardConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// extractMoveEvents generates events from a committed move
func extractMoveEvents(sess *Session, from *engine.Position, to engine.Position, order int) []GameEvent {
	events := []GameEvent{}
	state := sess.Engine.GetState()

	// Basic move event
	verb := "moved to"
	if from == nil {
		verb = "placed on"
	}
	events = append(events, GameEvent{
		Type:      "move",
		Message:   fmt.Sprintf("Knight %s (%d,%d), square %d of %d", verb, to.Row, to.Col, order, state.TotalCells),
		Timestamp: time.Now(),
		Position:  to,
	})

	// The opening placement fixes the estimate for this attempt.
	if order == 1 {
		events = append(events, GameEvent{
			Type:      "tour_estimated",
			Message:   fmt.Sprintf("Estimated max tour from (%d,%d): %d squares", to.Row, to.Col, state.TourEstimate),
			Timestamp: time.Now(),
			Position:  to,
		})
	}

	// Check for game over events
	if state.BoardComplete {
		events = append(events, GameEvent{
			Type:      "board_complete",
			Message:   state.Message,
			Timestamp: time.Now(),
		})
	} else if state.GameOver {
		events = append(events, GameEvent{
			Type:      "game_over",
			Message:   state.Message,
			Timestamp: time.Now(),
		})
	}

	return events
}

// describeAttempt details a rejected target for failure diagnostics
func describeAttempt(sess *Session, cell engine.Position, err error) *AttemptInfo {
	state := sess.Engine.GetState()
	info := &AttemptInfo{
		Row:    cell.Row,
		Col:    cell.Col,
		Reason: rejectionCode(err),
	}

	info.InBounds = cell.Row >= 0 && cell.Row < state.Rows && cell.Col >= 0 && cell.Col < state.Cols
	if info.InBounds {
		info.Visited = state.Visits[cell.Row][cell.Col] != engine.Unvisited
	}
	if from, ok := sess.Engine.GetKnightPosition(); ok {
		info.KnightReachable = info.InBounds && engine.IsKnightMove(from, cell)
	} else {
		// Before the first move any in-bounds cell is reachable.
		info.KnightReachable = info.InBounds
	}

	return info
}

// rejectionCode maps a move rejection to its machine-friendly code
func rejectionCode(err error) string {
	var oob *engine.OutOfBoundsError
	var visited *engine.AlreadyVisitedError
	var illegal *engine.IllegalMoveError
	switch {
	case errors.As(err, &oob):
		return "out_of_bounds"
	case errors.As(err, &visited):
		return "already_visited"
	case errors.As(err, &illegal):
		return "illegal_move"
	default:
		return "rejected"
	}
}

// logBoardPotential logs the per-start tour estimates for a fresh board, one
// debug line per cell, and the board-wide best at info level.
func logBoardPotential(sessionID string, eng *engine.GameEngine) {
	log := logrus.WithField("session_id", sessionID)
	for _, est := range eng.StartEstimates() {
		log.Debugf("Estimated max tour from (%d,%d): %d", est.Start.Row, est.Start.Col, est.Length)
	}
	best := eng.GetBestTour()
	log.WithFields(logrus.Fields{
		"row":    best.Start.Row,
		"col":    best.Start.Col,
		"length": best.Length,
	}).Info("Computed board tour potential")
}

// knightPosPtr snapshots the knight's position, nil when unset
func knightPosPtr(e *engine.GameEngine) *engine.Position {
	if pos, ok := e.GetKnightPosition(); ok {
		p := pos
		return &p
	}
	return nil
}
