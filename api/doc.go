// Package api provides the HTTP REST API for the Maze Escape server.
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create a session, body {"board": "in"} (optional)
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/{id} - Get a session
//   - DELETE /api/sessions/{id} - Delete a session
//
// Game Operations:
//   - POST /api/sessions/{id}/command - Run one protocol command, body {"command": "start"}
//   - GET /api/sessions/{id}/state - Get the game state
//
// Boards:
//   - GET /api/boards - List boards with reachability and shortest path
//   - POST /api/boards - Upload a board, body {"name": "spiral", "layout": "2 1 0 ..."}
//
// Other:
//   - GET /ws?session={id} - Watch a session over WebSocket
//   - GET /health - Liveness check
//
// Command replies carry the same text the TCP server sends:
//
//	{
//	  "session_id": "a1b2c3d4",
//	  "command": "start",
//	  "response": "possible moves: right",
//	  "end_session": false,
//	  "started": true,
//	  "completed": false,
//	  "player_pos": {"x": 0, "y": 0}
//	}
//
// Every command result is also pushed to the session's WebSocket watchers.
//
// Error Handling:
//
// Errors are returned as {"error": "message"} with a status code:
//   - 400 for malformed bodies and empty commands
//   - 404 for unknown sessions and boards
//   - 422 when a board file cannot be loaded
//   - 500 otherwise
package api
