package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/wricardo/mcp-training/knightstour/game/engine"
	"github.com/wricardo/mcp-training/knightstour/game/service"
)

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	sessions map[string]*service.Session
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		sessions: make(map[string]*service.Session),
	}
}

func (m *MockSessionManager) Create(id string, config *engine.BoardConfig) (*service.Session, error) {
	// Generate ID if empty (mimics real session manager behavior)
	if id == "" {
		id = fmt.Sprintf("test_%d", len(m.sessions)+1)
	}

	if _, exists := m.sessions[id]; exists {
		return nil, errors.New("session already exists")
	}

	eng, err := engine.NewEngine(config)
	if err != nil {
		return nil, err
	}

	session := &service.Session{
		ID:             id,
		Engine:         eng,
		Config:         config,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}

	m.sessions[id] = session
	return session, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	session, exists := m.sessions[id]
	if !exists {
		return nil, errors.New("session not found")
	}
	return session, nil
}

func (m *MockSessionManager) GetOrCreate(id string, config *engine.BoardConfig) (*service.Session, error) {
	if session, exists := m.sessions[id]; exists {
		return session, nil
	}
	return m.Create(id, config)
}

func (m *MockSessionManager) List() []*service.Session {
	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	if session, exists := m.sessions[id]; exists {
		session.LastAccessedAt = time.Now()
		return nil
	}
	return errors.New("session not found")
}

func (m *MockSessionManager) Save(id string) error {
	if _, exists := m.sessions[id]; !exists {
		return errors.New("session not found")
	}
	// Mock save - in real implementation this would persist to disk
	return nil
}

// MockConfigManager implements service.ConfigManager for testing
type MockConfigManager struct {
	configs map[string]*engine.BoardConfig
}

func NewMockConfigManager() *MockConfigManager {
	defaultConfig := &engine.BoardConfig{
		Name:        "test",
		Description: "Test configuration",
		Rows:        5,
		Cols:        10,
		Messages: engine.Messages{
			Welcome:       "Welcome to test!",
			GameOver:      "Test over at %d squares",
			BoardComplete: "Test complete with %d squares!",
			CellVisited:   "Test visited %d of %d",
		},
	}

	tinyConfig := &engine.BoardConfig{
		Name:        "tiny",
		Description: "3x3 board with an isolated centre",
		Rows:        3,
		Cols:        3,
		Messages: engine.Messages{
			Welcome:       "Welcome to tiny!",
			GameOver:      "Tiny over at %d squares",
			BoardComplete: "Tiny complete with %d squares!",
			CellVisited:   "Tiny visited %d of %d",
		},
	}

	return &MockConfigManager{
		configs: map[string]*engine.BoardConfig{
			"test":    defaultConfig,
			"default": defaultConfig,
			"tiny":    tinyConfig,
		},
	}
}

func (m *MockConfigManager) LoadConfig(name string) (*engine.BoardConfig, error) {
	config, exists := m.configs[name]
	if !exists {
		return nil, errors.New("config not found")
	}
	return config, nil
}

func (m *MockConfigManager) ListConfigs() ([]*service.ConfigInfo, error) {
	result := make([]*service.ConfigInfo, 0, len(m.configs))
	for name, config := range m.configs {
		result = append(result, &service.ConfigInfo{
			Filename:    name + ".json",
			ConfigID:    name,
			Name:        config.Name,
			Description: config.Description,
			Rows:        config.Rows,
			Cols:        config.Cols,
		})
	}
	return result, nil
}

func (m *MockConfigManager) GetDefault() *engine.BoardConfig {
	return m.configs["default"]
}

func (m *MockConfigManager) SaveConfig(name string, config *engine.BoardConfig) error {
	if err := engine.ValidateBoardConfig(config); err != nil {
		return err
	}
	m.configs[name] = config
	return nil
}

// Test cases
func TestGameService_CreateSession(t *testing.T) {
	ctx := context.Background()
	sessions := NewMockSessionManager()
	configs := NewMockConfigManager()
	svc := service.NewGameService(sessions, configs)

	tests := []struct {
		name       string
		configName string
		wantErr    bool
	}{
		{
			name:       "create with default config",
			configName: "",
			wantErr:    false,
		},
		{
			name:       "create with specific config",
			configName: "tiny",
			wantErr:    false,
		},
		{
			name:       "create with invalid config",
			configName: "nonexistent",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := svc.CreateSession(ctx, tt.configName)
			if (err != nil) != tt.wantErr {
				t.Errorf("CreateSession() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && session == nil {
				t.Error("CreateSession() returned nil session")
			}
			if !tt.wantErr && session.GameState == nil {
				t.Error("CreateSession() returned session without game state")
			}
		})
	}
}

func TestGameService_Move(t *testing.T) {
	ctx := context.Background()
	sessions := NewMockSessionManager()
	configs := NewMockConfigManager()
	svc := service.NewGameService(sessions, configs)

	// Create a session first
	sessionInfo, err := svc.CreateSession(ctx, "test")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	tests := []struct {
		name      string
		sessionID string
		cell      engine.Position
		reset     bool
		wantErr   bool
	}{
		{
			name:      "opening placement",
			sessionID: sessionInfo.ID,
			cell:      engine.Position{Row: 0, Col: 0},
			reset:     false,
			wantErr:   false,
		},
		{
			name:      "move with reset",
			sessionID: sessionInfo.ID,
			cell:      engine.Position{Row: 2, Col: 4},
			reset:     true,
			wantErr:   false,
		},
		{
			name:      "invalid session",
			sessionID: "nonexistent",
			cell:      engine.Position{Row: 0, Col: 0},
			reset:     false,
			wantErr:   true,
		},
		{
			name:      "rejected move",
			sessionID: sessionInfo.ID,
			cell:      engine.Position{Row: 2, Col: 5},
			reset:     false,
			wantErr:   false, // Won't error but success will be false
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Move(ctx, tt.sessionID, tt.cell, tt.reset)
			if (err != nil) != tt.wantErr {
				t.Errorf("Move() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && result == nil {
				t.Error("Move() returned nil result")
			}
		})
	}

	// Additional checks: StepInfo on success and AttemptInfo on failure.
	// Reset to ensure a consistent start.
	_, _ = svc.Reset(ctx, sessionInfo.ID)

	// Opening placement fixes the estimate and has no origin.
	res1, err := svc.Move(ctx, sessionInfo.ID, engine.Position{Row: 0, Col: 0}, false)
	if err != nil {
		t.Fatalf("Opening move failed unexpectedly: %v", err)
	}
	if res1.Step == nil || !res1.Success {
		t.Fatalf("Expected success with StepInfo, got success=%v step=%v", res1.Success, res1.Step)
	}
	if res1.Step.From != nil || res1.Step.VisitOrder != 1 {
		t.Errorf("Invalid StepInfo for opening move: %+v", res1.Step)
	}
	estimated := false
	for _, ev := range res1.Events {
		if ev.Type == "tour_estimated" {
			estimated = true
		}
	}
	if !estimated {
		t.Error("Expected tour_estimated event on the opening move")
	}

	// Rejected move: (0,1) is in bounds and unvisited but not a knight move
	// from (0,0).
	res2, err := svc.Move(ctx, sessionInfo.ID, engine.Position{Row: 0, Col: 1}, false)
	if err != nil {
		t.Fatalf("Rejected move returned error: %v", err)
	}
	if res2.Success {
		t.Error("Expected rejection moving to a non-knight target")
	}
	if res2.AttemptedTo == nil {
		t.Fatal("Expected attempt diagnostics on rejection")
	}
	if res2.AttemptedTo.Reason != "illegal_move" || !res2.AttemptedTo.InBounds || res2.AttemptedTo.Visited || res2.AttemptedTo.KnightReachable {
		t.Errorf("Expected in-bounds unvisited unreachable attempt, got %+v", res2.AttemptedTo)
	}

	// Out-of-bounds rejection.
	res3, err := svc.Move(ctx, sessionInfo.ID, engine.Position{Row: -1, Col: 0}, false)
	if err != nil {
		t.Fatalf("Out-of-bounds move returned error: %v", err)
	}
	if res3.Success || res3.AttemptedTo == nil || res3.AttemptedTo.Reason != "out_of_bounds" {
		t.Errorf("Expected out_of_bounds diagnostics, got %+v", res3.AttemptedTo)
	}
}

func TestGameService_Move_GameOverEvent(t *testing.T) {
	ctx := context.Background()
	sessions := NewMockSessionManager()
	configs := NewMockConfigManager()
	svc := service.NewGameService(sessions, configs)

	sessionInfo, err := svc.CreateSession(ctx, "tiny")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	// The 3x3 centre has no onward move, so placing there ends the game.
	result, err := svc.Move(ctx, sessionInfo.ID, engine.Position{Row: 1, Col: 1}, false)
	if err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if !result.Success {
		t.Fatal("Expected the opening placement to succeed")
	}

	gameOver := false
	for _, ev := range result.Events {
		if ev.Type == "game_over" {
			gameOver = true
		}
	}
	if !gameOver {
		t.Error("Expected game_over event after placing on the isolated centre")
	}
	if !result.GameState.GameOver {
		t.Error("Expected game over in the returned state")
	}
}

func TestGameService_BulkMove(t *testing.T) {
	ctx := context.Background()
	sessions := NewMockSessionManager()
	configs := NewMockConfigManager()
	svc := service.NewGameService(sessions, configs)

	// Create a session
	sessionInfo, err := svc.CreateSession(ctx, "test")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	tests := []struct {
		name      string
		sessionID string
		cells     []engine.Position
		reset     bool
		wantErr   bool
	}{
		{
			name:      "valid bulk moves",
			sessionID: sessionInfo.ID,
			cells: []engine.Position{
				{Row: 0, Col: 0},
				{Row: 1, Col: 2},
				{Row: 2, Col: 0},
			},
			reset:   false,
			wantErr: false,
		},
		{
			name:      "bulk moves with reset",
			sessionID: sessionInfo.ID,
			cells: []engine.Position{
				{Row: 4, Col: 9},
				{Row: 2, Col: 8},
			},
			reset:   true,
			wantErr: false,
		},
		{
			name:      "empty moves",
			sessionID: sessionInfo.ID,
			cells:     []engine.Position{},
			reset:     false,
			wantErr:   false,
		},
		{
			name:      "invalid session",
			sessionID: "nonexistent",
			cells:     []engine.Position{{Row: 0, Col: 0}},
			reset:     false,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.BulkMove(ctx, tt.sessionID, tt.cells, tt.reset)
			if (err != nil) != tt.wantErr {
				t.Errorf("BulkMove() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && result == nil {
				t.Error("BulkMove() returned nil result")
			}
			if !tt.wantErr && result != nil {
				if result.RequestedMoves != len(tt.cells) {
					t.Errorf("BulkMove() RequestedMoves = %v, want %v", result.RequestedMoves, len(tt.cells))
				}
			}
		})
	}

	// Additional bulk diagnostics: steps, stop_reason_code, attempted_to.
	// Sequence: two knight moves then a sideways step that gets rejected.
	res, err := svc.BulkMove(ctx, sessionInfo.ID, []engine.Position{
		{Row: 0, Col: 0},
		{Row: 1, Col: 2},
		{Row: 1, Col: 3},
	}, true)
	if err != nil {
		t.Fatalf("BulkMove diagnostics failed with error: %v", err)
	}
	if res.MovesExecuted != 2 {
		t.Errorf("Expected 2 executed moves, got %d", res.MovesExecuted)
	}
	if len(res.Steps) != 2 {
		t.Errorf("Expected 2 steps, got %d", len(res.Steps))
	}
	if res.StopReasonCode != "move_rejected" {
		t.Errorf("Expected stop_reason_code 'move_rejected', got %q", res.StopReasonCode)
	}
	if res.StoppedOnMove != 3 {
		t.Errorf("Expected stop on move 3, got %d", res.StoppedOnMove)
	}
	if res.AttemptedTo == nil || res.AttemptedTo.Reason != "illegal_move" {
		t.Errorf("Expected illegal_move diagnostics, got %+v", res.AttemptedTo)
	}
	if res.EndVisited != 2 {
		t.Errorf("Expected 2 visited cells at end, got %d", res.EndVisited)
	}
	if len(res.LegalMoves) == 0 {
		t.Error("Expected legal moves in the bulk result")
	}
}

func TestGameService_BulkMove_Truncation(t *testing.T) {
	ctx := context.Background()
	sessions := NewMockSessionManager()
	configs := NewMockConfigManager()
	svc := service.NewGameService(sessions, configs)

	sessionInfo, err := svc.CreateSession(ctx, "test")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	cells := make([]engine.Position, engine.MaxBulkMoves+10)
	for i := range cells {
		cells[i] = engine.Position{Row: 0, Col: 0}
	}

	result, err := svc.BulkMove(ctx, sessionInfo.ID, cells, false)
	if err != nil {
		t.Fatalf("BulkMove failed: %v", err)
	}
	if !result.Truncated {
		t.Error("Expected the request to be truncated")
	}
	if result.Limit != engine.MaxBulkMoves {
		t.Errorf("Expected limit %d, got %d", engine.MaxBulkMoves, result.Limit)
	}
	if result.RequestedMoves != engine.MaxBulkMoves+10 {
		t.Errorf("Expected requested count to reflect the raw request, got %d", result.RequestedMoves)
	}
}

func TestGameService_BulkMove_StopsOnGameOver(t *testing.T) {
	ctx := context.Background()
	sessions := NewMockSessionManager()
	configs := NewMockConfigManager()
	svc := service.NewGameService(sessions, configs)

	sessionInfo, err := svc.CreateSession(ctx, "tiny")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	// Placing on the centre ends the game; the rest is never attempted.
	result, err := svc.BulkMove(ctx, sessionInfo.ID, []engine.Position{
		{Row: 1, Col: 1},
		{Row: 0, Col: 0},
	}, false)
	if err != nil {
		t.Fatalf("BulkMove failed: %v", err)
	}
	if result.MovesExecuted != 1 {
		t.Errorf("Expected 1 executed move, got %d", result.MovesExecuted)
	}
	if result.StopReasonCode != "game_over" {
		t.Errorf("Expected stop_reason_code 'game_over', got %q", result.StopReasonCode)
	}
	if !result.GameOver {
		t.Error("Expected game over flag in the result")
	}
}

func TestGameService_GetLegalMoves(t *testing.T) {
	ctx := context.Background()
	sessions := NewMockSessionManager()
	configs := NewMockConfigManager()
	svc := service.NewGameService(sessions, configs)

	sessionInfo, err := svc.CreateSession(ctx, "test")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	// Before the first move every cell is legal.
	moves, err := svc.GetLegalMoves(ctx, sessionInfo.ID)
	if err != nil {
		t.Fatalf("GetLegalMoves() error = %v", err)
	}
	if len(moves) != 50 {
		t.Errorf("Expected all 50 cells legal before the first move, got %d", len(moves))
	}

	if _, err := svc.Move(ctx, sessionInfo.ID, engine.Position{Row: 0, Col: 0}, false); err != nil {
		t.Fatalf("Move failed: %v", err)
	}

	moves, err = svc.GetLegalMoves(ctx, sessionInfo.ID)
	if err != nil {
		t.Fatalf("GetLegalMoves() error = %v", err)
	}
	if len(moves) != 2 {
		t.Errorf("Expected 2 legal moves from (0,0), got %d", len(moves))
	}

	if _, err := svc.GetLegalMoves(ctx, "nonexistent"); err == nil {
		t.Error("Expected error for unknown session")
	}
}

func TestGameService_EstimateTour(t *testing.T) {
	ctx := context.Background()
	sessions := NewMockSessionManager()
	configs := NewMockConfigManager()
	svc := service.NewGameService(sessions, configs)

	sessionInfo, err := svc.CreateSession(ctx, "tiny")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	result, err := svc.EstimateTour(ctx, sessionInfo.ID, engine.Position{Row: 0, Col: 0})
	if err != nil {
		t.Fatalf("EstimateTour() error = %v", err)
	}
	if result.Length != 8 {
		t.Errorf("Expected estimate 8 from the 3x3 corner, got %d", result.Length)
	}
	if result.BestTour == nil || result.BestTour.Length != 8 {
		t.Errorf("Expected best tour 8 in the result, got %+v", result.BestTour)
	}

	// An out-of-bounds start is a real error, not a rejected move.
	_, err = svc.EstimateTour(ctx, sessionInfo.ID, engine.Position{Row: 9, Col: 9})
	if err == nil {
		t.Fatal("Expected error for out-of-bounds start")
	}
	var invalid *engine.InvalidStartError
	if !errors.As(err, &invalid) {
		t.Errorf("Expected InvalidStartError, got %T", err)
	}
}

func TestGameService_GetMoveHistory(t *testing.T) {
	ctx := context.Background()
	sessions := NewMockSessionManager()
	configs := NewMockConfigManager()
	svc := service.NewGameService(sessions, configs)

	// Create a session and make some moves
	sessionInfo, err := svc.CreateSession(ctx, "test")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	// Make some moves to generate history
	cells := []engine.Position{
		{Row: 0, Col: 0},
		{Row: 1, Col: 2},
		{Row: 2, Col: 0},
		{Row: 2, Col: 1},
	}
	_, err = svc.BulkMove(ctx, sessionInfo.ID, cells, false)
	if err != nil {
		t.Fatalf("Failed to make moves: %v", err)
	}

	tests := []struct {
		name      string
		sessionID string
		opts      service.HistoryOptions
		wantErr   bool
	}{
		{
			name:      "default options",
			sessionID: sessionInfo.ID,
			opts:      service.HistoryOptions{},
			wantErr:   false,
		},
		{
			name:      "with pagination",
			sessionID: sessionInfo.ID,
			opts: service.HistoryOptions{
				Page:  1,
				Limit: 2,
				Order: "asc",
			},
			wantErr: false,
		},
		{
			name:      "descending order",
			sessionID: sessionInfo.ID,
			opts: service.HistoryOptions{
				Page:  1,
				Limit: 10,
				Order: "desc",
			},
			wantErr: false,
		},
		{
			name:      "invalid session",
			sessionID: "nonexistent",
			opts:      service.HistoryOptions{},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.GetMoveHistory(ctx, tt.sessionID, tt.opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("GetMoveHistory() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && result == nil {
				t.Error("GetMoveHistory() returned nil result")
			}
			if !tt.wantErr && result != nil {
				if result.Moves == nil {
					t.Error("GetMoveHistory() returned nil moves slice")
				}
			}
		})
	}

	// The bulk sequence above commits three moves and rejects the fourth;
	// all four attempts land in the history.
	history, err := svc.GetMoveHistory(ctx, sessionInfo.ID, service.HistoryOptions{Order: "asc", Limit: 10})
	if err != nil {
		t.Fatalf("GetMoveHistory() error = %v", err)
	}
	if history.TotalMoves != 4 {
		t.Errorf("Expected 4 recorded attempts, got %d", history.TotalMoves)
	}
	if len(history.Moves) != 4 {
		t.Fatalf("Expected 4 moves in the page, got %d", len(history.Moves))
	}
	if history.Moves[0].MoveNumber != 1 {
		t.Errorf("Expected ascending order to start at move 1, got %d", history.Moves[0].MoveNumber)
	}
	if history.Moves[3].Success {
		t.Error("Expected the rejected attempt to be recorded as a failure")
	}

	// Descending puts the most recent attempt first.
	desc, err := svc.GetMoveHistory(ctx, sessionInfo.ID, service.HistoryOptions{Order: "desc", Limit: 2})
	if err != nil {
		t.Fatalf("GetMoveHistory() error = %v", err)
	}
	if desc.Moves[0].MoveNumber != 4 {
		t.Errorf("Expected descending order to start at move 4, got %d", desc.Moves[0].MoveNumber)
	}
	if !desc.HasNext || desc.HasPrevious {
		t.Errorf("Expected has_next without has_previous on page 1, got next=%v prev=%v", desc.HasNext, desc.HasPrevious)
	}
}

func TestGameService_ListSessions(t *testing.T) {
	ctx := context.Background()
	sessions := NewMockSessionManager()
	configs := NewMockConfigManager()
	svc := service.NewGameService(sessions, configs)

	// Create multiple sessions
	for i := 0; i < 3; i++ {
		_, err := svc.CreateSession(ctx, "test")
		if err != nil {
			t.Fatalf("Failed to create session %d: %v", i, err)
		}
	}

	// List sessions
	sessionList, err := svc.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions() error = %v", err)
	}

	if len(sessionList) != 3 {
		t.Errorf("ListSessions() returned %d sessions, want 3", len(sessionList))
	}
}

func TestGameService_Reset(t *testing.T) {
	ctx := context.Background()
	sessions := NewMockSessionManager()
	configs := NewMockConfigManager()
	svc := service.NewGameService(sessions, configs)

	// Create a session
	sessionInfo, err := svc.CreateSession(ctx, "test")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	// Make a move
	_, err = svc.Move(ctx, sessionInfo.ID, engine.Position{Row: 0, Col: 0}, false)
	if err != nil {
		t.Fatalf("Failed to move: %v", err)
	}

	// Reset the game
	state, err := svc.Reset(ctx, sessionInfo.ID)
	if err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	if state == nil {
		t.Fatal("Reset() returned nil state")
	}
	if state.VisitedCount != 0 {
		t.Errorf("Expected fresh board after reset, got %d visited", state.VisitedCount)
	}
	if state.KnightPos != nil {
		t.Errorf("Expected unset knight after reset, got %+v", state.KnightPos)
	}
	if state.Attempt != 2 {
		t.Errorf("Expected attempt 2 after reset, got %d", state.Attempt)
	}
}
