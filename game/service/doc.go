// Package service provides the business logic layer for the knight's tour
// game.
//
// The service package implements:
//   - Multi-session game management
//   - Configuration management and loading
//   - Move processing over the engine's commit rules
//   - Session lifecycle management
//   - Move history tracking with pagination
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages board configuration loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine, providing session isolation, configuration management, and
// business logic orchestration. Each session maintains its own game engine
// instance with independent state. Moves rejected by the game rules are not
// service errors: the result carries success=false with attempt diagnostics,
// so transports can surface the rejection without aborting the request.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	// Create a new session
//	sessionInfo, err := gameService.CreateSession(ctx, "chessboard")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Commit a move
//	result, err := gameService.Move(ctx, sessionInfo.ID, engine.Position{Row: 0, Col: 0}, false)
//
// Session Management:
//
// Sessions are identified by unique 4-character IDs and maintain independent
// game state. Multiple sessions can run concurrently with different
// configurations. Sessions track creation time, last access time, and move
// history for analytics and debugging.
package service
