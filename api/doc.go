// Package api provides HTTP REST API handlers for the knight's tour game.
//
// The api package implements:
//   - RESTful endpoints for game operations
//   - Session management endpoints
//   - Configuration listing and creation
//   - WebSocket upgrade handling
//   - Static file serving
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session (optional config_id)
//   - GET /api/sessions - List all sessions (sort/order/limit)
//   - GET /api/sessions/unified - Multi-session view
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Current game state
//   - POST /api/sessions/{id}/move - Commit a move (single cell or bulk)
//   - POST /api/sessions/{id}/reset - Reset the board
//   - GET /api/sessions/{id}/legal-moves - Legal target cells
//   - GET /api/sessions/{id}/estimate?row=&col= - Greedy tour estimate
//   - GET /api/sessions/{id}/history - Move history with pagination
//
// Configuration:
//   - GET /api/configs - List available board presets
//   - POST /api/configs - Save a board preset
//   - GET /api/configs/{name} - Fetch a preset
//
// Request/Response Format:
//
// All endpoints accept and return JSON. A move targets a cell by its
// zero-based coordinates:
//
//	{
//	  "row": 2,
//	  "col": 4,
//	  "reset": false            // optional reset before the move
//	}
//
// or commits a whole sequence:
//
//	{
//	  "cells": [{"row":0,"col":0},{"row":1,"col":2}],
//	  "reset": true
//	}
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
//
// Moves rejected by the game rules (out of bounds, already visited, not a
// knight move) are NOT HTTP errors: they come back 200 with success=false
// and diagnostics, so clients can treat an invalid click as a no-op.
package api

//
// Enriched Responses (Move)
//
// Move (POST /api/sessions/{id}/move), single form
//   Response:
//     - step: { idx, from{row,col}, to{row,col}, visit_order, visited_after, success, game_over, board_complete }
//     - attempted_to: { row, col, in_bounds, visited, knight_reachable, reason } // present when rejected
//     - events: move / tour_estimated / game_over / board_complete
//
// Move (POST /api/sessions/{id}/move), bulk form
//   Response:
//     - requested_moves, moves_executed
//     - stopped_reason (text), stop_reason_code (enum), stopped_on_move (1-based), truncated, limit
//     - steps: [{ idx, from, to, visit_order, visited_after, success, game_over, board_complete }]
//     - attempted_to: failed target cell on first rejection
//     - start_pos, end_pos, start_visited, end_visited
//     - legal_moves: remaining targets from the final position
