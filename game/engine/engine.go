package engine

import "fmt"

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	SetState(state *GameState) error
	Reset() *GameState
	IsGameOver() bool
	IsBoardComplete() bool
	GetVisitedCount() int
	GetKnightPosition() (Position, bool)

	// Movement operations
	CommitMove(cell Position) (int, error)
	CanMoveTo(cell Position) error
	GetLegalMoves() []Position
	BulkMove(cells []Position) []bool

	// Tour estimation
	EstimateFrom(start Position) (int, error)
	StartEstimates() []TourEstimate
	GetBestTour() TourEstimate

	// Configuration
	GetConfig() *BoardConfig
	SetConfig(config *BoardConfig) error

	// History
	GetMoveHistory() []MoveRecord
	GetLastMove() *MoveRecord
}

// GameEngine implements the Engine interface
type GameEngine struct {
	config *BoardConfig
	board  *Board
	state  *GameState

	// startEstimates caches the per-start simulations behind the
	// board-wide best figure, recomputed on every fresh board.
	startEstimates []TourEstimate
}

// NewEngine creates a new game engine with the provided configuration
func NewEngine(config *BoardConfig) (*GameEngine, error) {
	if err := ValidateBoardConfig(config); err != nil {
		return nil, err
	}

	board, err := NewBoard(config.Rows, config.Cols)
	if err != nil {
		return nil, err
	}

	engine := &GameEngine{
		config: config,
		board:  board,
		state:  InitGameStateFromConfig(config),
	}
	engine.rescanBoardPotential()
	engine.refreshState()
	return engine, nil
}

// NewEngineWithDefaults creates a new game engine with the default board
func NewEngineWithDefaults() *GameEngine {
	engine, err := NewEngine(DefaultBoardConfig())
	if err != nil {
		// The built-in default always validates.
		panic(fmt.Sprintf("default board config invalid: %v", err))
	}
	return engine
}

// GetState returns the current game state
func (e *GameEngine) GetState() *GameState {
	return e.state
}

// SetState restores the engine from a previously captured state (used for
// persistence loading). The board is rebuilt from the state's visit grid.
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}

	board, err := NewBoard(state.Rows, state.Cols)
	if err != nil {
		return fmt.Errorf("restore board: %w", err)
	}
	count := 0
	for r, row := range state.Visits {
		for c, order := range row {
			if order != Unvisited {
				board.visits[r][c] = order
				count++
			}
		}
	}
	board.next = count + 1
	if state.KnightPos != nil {
		pos := *state.KnightPos
		board.pos = &pos
	}

	e.board = board
	e.state = state
	e.startEstimates = nil
	e.refreshState()
	return nil
}

// Reset reinitializes the board: all cells unvisited, position unset, the
// full board legal again. Cumulative history and totals survive resets; the
// attempt counter advances and the board-wide best tour is recomputed.
func (e *GameEngine) Reset() *GameState {
	prevHistory := e.state.MoveHistory
	prevTotal := e.state.TotalMoves
	attempt := e.state.Attempt + 1

	e.board.Reset()
	e.state = InitGameStateFromConfig(e.config)
	e.state.MoveHistory = prevHistory
	e.state.TotalMoves = prevTotal
	e.state.Attempt = attempt
	e.state.CurrentMoves = []MoveRecord{}
	e.state.CurrentMovesCount = 0

	e.rescanBoardPotential()
	e.refreshState()
	return e.state
}

// IsGameOver returns whether the knight has no legal onward move
func (e *GameEngine) IsGameOver() bool {
	return e.state.GameOver
}

// IsBoardComplete returns whether every cell has been visited
func (e *GameEngine) IsBoardComplete() bool {
	return e.state.BoardComplete
}

// GetVisitedCount returns the number of visited cells
func (e *GameEngine) GetVisitedCount() int {
	return e.board.VisitedCount()
}

// GetKnightPosition returns the knight's cell and whether one is set
func (e *GameEngine) GetKnightPosition() (Position, bool) {
	return e.board.CurrentPosition()
}

// CommitMove validates and commits a move to the target cell, returning the
// assigned visit order. Rejections come back as OutOfBoundsError,
// AlreadyVisitedError, or IllegalMoveError, in that order of checks, and
// leave the board untouched. The first commit after a fresh board or reset
// may target any cell and triggers the per-start tour estimate.
func (e *GameEngine) CommitMove(cell Position) (int, error) {
	from, hasFrom := e.board.CurrentPosition()

	if err := e.CanMoveTo(cell); err != nil {
		reason := rejectionReason(err)
		e.state.AddMoveToHistory(cell, positionPtr(from, hasFrom), 0, false, reason)
		return 0, err
	}

	order, err := e.board.CommitMove(cell)
	if err != nil {
		// CanMoveTo already vetted bounds and visitedness.
		return 0, err
	}

	if order == 1 {
		estimate, _ := EstimateMaxTour(e.board, cell)
		e.state.TourEstimate = estimate
	}

	e.state.AddMoveToHistory(cell, positionPtr(from, hasFrom), order, true, "")
	e.refreshState()
	return order, nil
}

// CanMoveTo reports whether a commit to cell would succeed, returning the
// rejection the commit would produce
func (e *GameEngine) CanMoveTo(cell Position) error {
	if !e.board.InBounds(cell) {
		return &OutOfBoundsError{Cell: cell, Rows: e.board.Rows(), Cols: e.board.Cols()}
	}
	if visited, _ := e.board.IsVisited(cell); visited {
		order, _ := e.board.VisitOrder(cell)
		return &AlreadyVisitedError{Cell: cell, Order: order}
	}
	if from, ok := e.board.CurrentPosition(); ok && !IsKnightMove(from, cell) {
		return &IllegalMoveError{From: from, To: cell}
	}
	return nil
}

// GetLegalMoves returns the legal target cells for the next move, sorted
// ascending by row then column
func (e *GameEngine) GetLegalMoves() []Position {
	return LegalMoves(e.board)
}

// BulkMove commits multiple moves in sequence, returning success status for
// each. Execution stops once the game is over.
func (e *GameEngine) BulkMove(cells []Position) []bool {
	results := make([]bool, 0, len(cells))

	for _, cell := range cells {
		if e.IsGameOver() {
			break
		}

		_, err := e.CommitMove(cell)
		results = append(results, err == nil)
	}

	return results
}

// EstimateFrom runs the greedy tour simulation from start against the
// board's current visited set, without mutating it
func (e *GameEngine) EstimateFrom(start Position) (int, error) {
	return EstimateMaxTour(e.board, start)
}

// StartEstimates returns the cached per-start simulations for the current
// board, computing them if necessary
func (e *GameEngine) StartEstimates() []TourEstimate {
	if e.startEstimates == nil {
		e.rescanBoardPotential()
	}
	return e.startEstimates
}

// GetBestTour returns the board-wide best estimate over all starting cells
func (e *GameEngine) GetBestTour() TourEstimate {
	if e.state.BestTour != nil {
		return *e.state.BestTour
	}
	return BestTour(e.board)
}

// GetConfig returns the current board configuration
func (e *GameEngine) GetConfig() *BoardConfig {
	return e.config
}

// SetConfig sets a new board configuration and restarts the game on it
func (e *GameEngine) SetConfig(config *BoardConfig) error {
	if err := ValidateBoardConfig(config); err != nil {
		return err
	}

	board, err := NewBoard(config.Rows, config.Cols)
	if err != nil {
		return err
	}

	e.config = config
	e.board = board
	e.state = InitGameStateFromConfig(config)
	e.rescanBoardPotential()
	e.refreshState()
	return nil
}

// GetMoveHistory returns the complete move history
func (e *GameEngine) GetMoveHistory() []MoveRecord {
	return e.state.MoveHistory
}

// GetLastMove returns the last move made, or nil if no moves
func (e *GameEngine) GetLastMove() *MoveRecord {
	if len(e.state.MoveHistory) == 0 {
		return nil
	}
	return &e.state.MoveHistory[len(e.state.MoveHistory)-1]
}

// rescanBoardPotential recomputes the per-start estimates and the board-wide
// best tour. Runs on every fresh board, matching the "Max" figure the
// player sees before choosing a start.
func (e *GameEngine) rescanBoardPotential() {
	e.startEstimates = EstimateAllStarts(e.board)

	best := TourEstimate{}
	for _, est := range e.startEstimates {
		if est.Length > best.Length {
			best = est
		}
	}
	e.state.BestTour = &best
}

// refreshState mirrors the board into the live state and re-derives the
// game-over and completion flags and the status message.
func (e *GameEngine) refreshState() {
	e.state.Rows = e.board.Rows()
	e.state.Cols = e.board.Cols()
	e.state.Visits = e.board.Visits()
	e.state.TotalCells = e.board.TotalCells()
	e.state.VisitedCount = e.board.VisitedCount()
	e.state.LegalMoves = LegalMoves(e.board)

	if pos, ok := e.board.CurrentPosition(); ok {
		p := pos
		e.state.KnightPos = &p
	} else {
		e.state.KnightPos = nil
	}

	e.state.BoardComplete = BoardComplete(e.board)
	e.state.GameOver = GameOver(e.board)

	msgs := e.config.Messages
	switch {
	case e.state.BoardComplete:
		e.state.Message = fmt.Sprintf(msgs.BoardComplete, e.state.VisitedCount)
	case e.state.GameOver:
		e.state.Message = fmt.Sprintf(msgs.GameOver, e.state.VisitedCount)
	case e.state.VisitedCount > 0:
		e.state.Message = fmt.Sprintf(msgs.CellVisited, e.state.VisitedCount, e.state.TotalCells)
	default:
		e.state.Message = msgs.Welcome
	}
}

// rejectionReason maps a move rejection to its history reason code.
func rejectionReason(err error) string {
	switch err.(type) {
	case *OutOfBoundsError:
		return "out_of_bounds"
	case *AlreadyVisitedError:
		return "already_visited"
	case *IllegalMoveError:
		return "illegal_move"
	default:
		return "rejected"
	}
}

func positionPtr(pos Position, ok bool) *Position {
	if !ok {
		return nil
	}
	p := pos
	return &p
}
