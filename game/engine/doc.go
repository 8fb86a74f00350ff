// Package engine provides the core game logic for the Maze Escape game.
//
// The engine package implements the game mechanics including:
//   - Board loading and validation from whitespace-separated integer grids
//   - Fog of war: a 3x3 neighborhood is revealed around every visited cell
//   - The command state machine (start, up, down, left, right, map, hint, reset, exit)
//   - Breadth-first shortest-path hints toward the exit
//   - Map rendering with per-cell glyphs
//
// Core Types:
//
// Board is an immutable, validated N×N grid with exactly one entrance and
// one exit. GameEngine holds one game's mutable state and turns each command
// into a Response. A BoardSource supplies a fresh board on every start and reset.
//
// Usage:
//
//	source := engine.BoardSourceFunc(func() (*engine.Board, error) {
//		return engine.LoadBoardFile("boards/in.txt", engine.DefaultBoardPolicy)
//	})
//
//	gameEngine, err := engine.NewEngine(source)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	resp, err := gameEngine.Execute("start")
//	fmt.Println(resp.String()) // possible moves: right
//
// Game Rules:
//
// The player starts on the entrance and may step onto path and exit cells
// only. Walls and the entrance itself block movement. Stepping onto the exit
// prints an escape notice together with the fully revealed map.
package engine
