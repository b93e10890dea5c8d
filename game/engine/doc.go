// Package engine provides the core game logic for the Knight's Tour Game.
//
// The engine package implements the game mechanics including:
//   - Board state: visit-order tracking and the knight's position
//   - Knight-move legality and legal-target enumeration
//   - Dead-end (game over) and full-tour detection
//   - Warnsdorff's-heuristic tour-length estimation
//   - Game state management and persistence
//   - Configuration loading and validation
//
// Core Types:
//
// Board owns the visit-order grid and the knight's position and is the only
// mutable piece of state; every change goes through Board.CommitMove. The
// move rules live in package-level functions over a Board (LegalMoves,
// KnightTargets, GameOver, EstimateMaxTour) so they can run against scratch
// clones without touching the live board. The Engine interface defines the
// main contract for game operations, implemented by GameEngine. GameState
// is the serializable snapshot handed to transports, while BoardConfig
// defines the board shape and messages loaded from JSON files.
//
// Usage:
//
//	config, err := engine.LoadConfigByName("chessboard")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameEngine, err := engine.NewEngine(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Commit a move
//	order, err := gameEngine.CommitMove(engine.Position{Row: 0, Col: 0})
//	state := gameEngine.GetState()
//
// Game Rules:
//
// The knight may be placed on any square to open an attempt; every later
// move must be a knight move ((±1,±2) or (±2,±1)) onto an unvisited,
// in-bounds square. Each visited square records the 1-based order it was
// entered. The attempt ends when no legal onward move remains; visiting
// every square is a full tour. The board-wide "best tour" figure and the
// per-start estimate both come from Warnsdorff's heuristic (always continue
// to the reachable square with the fewest onward options) and are estimates,
// not guarantees.
//
// Determinism:
//
// Wherever a set of cells is returned it is sorted ascending by row then
// column, and the estimator breaks degree ties the same way, so identical
// inputs always produce identical outputs.
package engine
