// Package websocket provides real-time board updates for knight's tour
// sessions.
//
// The websocket package implements:
//   - Session-aware WebSocket connections
//   - Automatic state broadcasting after each committed move
//   - Connection lifecycle management with ping/pong keepalives
//   - Per-session fan-out so spectators of one board never see another
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. The hub's Run loop owns the session registry;
// registration, unregistration, and broadcasts all arrive over channels,
// so callers on other goroutines never touch shared state directly.
//
// Message Protocol:
//
// Outgoing messages are JSON-encoded:
//
//	{"session_id": "abc1", "event": "state_update", "game_state": {...}}
//
// The game_state payload is the complete GameState after the change, so a
// client can redraw the whole board without tracking deltas. Incoming
// client messages are currently ignored; moves go through the REST API.
//
// Session Integration:
//
// Clients specify their session ID via query parameter (?session=abc1)
// when establishing the connection. State updates are broadcast only to
// clients connected to the same session.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// after a successful move
//	hub.BroadcastToSession(sessionID, state)
package websocket
