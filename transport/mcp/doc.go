// Package mcp provides the Model Context Protocol interface for the Knight's Tour game.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for game operations
//   - Thin proxying of every tool call to the REST API
//   - Stdio and HTTP transport modes
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - get_state: Current board state with visit orders and legal moves
//   - move_knight: Single knight move (or opening placement)
//   - bulk_moves: Execute a planned move sequence, stops at first rejection
//   - get_legal_moves: List legal targets from the knight's square
//   - estimate_tour: Greedy tour-length estimate from a starting square
//   - reset_game: Clear the board for a fresh attempt
//   - get_history: Retrieve move history with pagination
//   - create_session: Create new game session with board config selection
//   - get_session: Get specific session details
//   - list_sessions: List all active sessions
//   - delete_session: Remove a session
//   - list_configs: List available board configurations
//   - game_instructions: Comprehensive rules and strategy guidance
//
// Transport Modes:
//
// The server supports two transport modes:
//   - Stdio: Direct stdio communication for local MCP clients
//   - HTTP: HTTP endpoint for remote MCP integration
//
// Architecture:
//
// The client holds no game state. Every tool call is translated into an
// HTTP request against the REST API and the JSON response is rendered as
// text: an ASCII board of visit orders with the knight's square bracketed,
// the legal-move list, and estimate-vs-progress numbers.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	if err := server.ServeStdio(client.GetMCPServer()); err != nil {
//		log.Fatal(err)
//	}
//
// AI Integration:
//
// The MCP interface enables AI agents to:
//   - Autonomously play the knight's tour
//   - Compare starting squares via tour estimates before committing
//   - Plan and submit whole move sequences
//   - Manage multiple game sessions
//   - Learn from move history across attempts
package mcp
