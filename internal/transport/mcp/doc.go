// Package mcp exposes 2048 games to AI agents over the Model Context Protocol.
//
// Each agent game lives in a session keyed by a UUID. Moves are settled
// immediately, without the move delay of the terminal front end.
//
// MCP Tools:
//   - new_game: start a session on a board variant, optionally seeded
//   - move: slide the tiles of a session up, down, left or right
//   - game_state: show the grid, score, best score and game-over flag
//   - list_sessions: list the active sessions
//   - end_game: discard a session
//   - list_variants: list the board variants
//
// Usage:
//
//	sessions := mcp.NewSessions(cfg, store, logger)
//	srv := mcp.NewServer(sessions, logger)
//	err := srv.ServeStdio()
package mcp
