// Package config provides board and environment configuration for the Maze Escape server.
//
// The config package handles:
//   - Loading boards from a directory of text files
//   - Board validation against the configured size bounds
//   - Default board management
//   - Board discovery and listing
//   - Reading server settings from the environment and .env files
//
// Board Format:
//
// Boards are stored as ".txt" files in the board directory. Each line is one
// row of whitespace-separated integers: 0 wall, 1 path, 2 entrance, 3 exit.
// Boards must be square and contain exactly one entrance and one exit.
//
// Usage:
//
//	manager, err := config.NewManager("input", engine.DefaultBoardPolicy)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Load a board by name (file input/in.txt)
//	board, err := manager.LoadBoard("in")
//
//	// Get a source that reloads the board on every start
//	source, err := manager.Source("in")
//	eng, err := engine.NewEngine(source)
//
//	// List available boards
//	boards, err := manager.ListBoards()
//
// Environment:
//
// LoadEnv reads MAZE_BOARD_DIR, MAZE_BOARD, MAZE_MIN_BOARD_SIZE,
// MAZE_MAX_BOARD_SIZE, MAZE_PROTO, MAZE_PORT, MAZE_HTTP_HOST, MAZE_HTTP_PORT,
// MAZE_SESSION_TTL and MAZE_DEBUG after loading a .env file if present.
package config
