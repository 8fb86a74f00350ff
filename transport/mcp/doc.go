// Package mcp exposes Maze Escape to AI agents over the Model Context Protocol.
//
// The Client is a thin proxy: every tool call is translated into a request
// against the REST API, so agents, browsers and TCP players share the same
// sessions.
//
// MCP Tools:
//   - create_session: Create a session, optionally on a named board
//   - list_sessions: List active sessions
//   - get_session: Session details with the discovered map
//   - send_command: Send one protocol command and return the reply
//   - game_state: Current game state
//   - list_boards: Available boards with shortest path lengths
//   - game_instructions: Rules, command reference and map legend
//
// Transport Modes:
//   - HTTP: POST /mcp on the HTTP server (http mode)
//   - Stdio: server.ServeStdio for local MCP clients (stdio-mcp mode)
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
