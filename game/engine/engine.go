package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBoardLoadFailed wraps any error returned by a BoardSource during start or reset
var ErrBoardLoadFailed = errors.New("board load failed")

// BoardSource supplies a freshly loaded board for each start/reset
type BoardSource interface {
	LoadBoard() (*Board, error)
}

// BoardSourceFunc adapts a function to BoardSource
type BoardSourceFunc func() (*Board, error)

// LoadBoard calls f
func (f BoardSourceFunc) LoadBoard() (*Board, error) {
	return f()
}

// StaticBoard returns a BoardSource that always yields board
func StaticBoard(board *Board) BoardSource {
	return BoardSourceFunc(func() (*Board, error) {
		return board, nil
	})
}

// Engine provides the main interface for game operations
type Engine interface {
	// Command processing
	Execute(command string) (Response, error)

	// Game state
	GetState() *GameState
	IsStarted() bool
	IsCompleted() bool
	GetPlayerPosition() Position
	GetBoard() *Board

	// Movement and guidance
	GetPossibleMoves() []Direction
	Hint() (Route, bool)
	RenderMap(revealAll bool) string
}

// GameEngine holds the complete state of one game: board, player position,
// discovery mask and lifecycle flags. It is not safe for concurrent use.
type GameEngine struct {
	source    BoardSource
	board     *Board
	discovery *Discovery
	player    Position
	started   bool
	completed bool
}

// NewEngine creates an engine that loads its board from source on every
// start and reset. The game is not started until the start command arrives.
func NewEngine(source BoardSource) (*GameEngine, error) {
	if source == nil {
		return nil, fmt.Errorf("board source cannot be nil")
	}
	return &GameEngine{source: source}, nil
}

// Response is the reply to one command. Parts are joined with newlines
// when sent.
type Response struct {
	Parts      []string `json:"parts"`
	EndSession bool     `json:"end_session"`
}

// String joins the response parts
func (r Response) String() string {
	return strings.Join(r.Parts, "\n")
}

func reply(parts ...string) Response {
	return Response{Parts: parts}
}

// load replaces the board and resets every piece of per-game state. A failed
// load leaves the engine not started.
func (e *GameEngine) load() error {
	board, err := e.source.LoadBoard()
	if err == nil && board == nil {
		err = errors.New("board source returned no board")
	}
	if err != nil {
		e.board = nil
		e.discovery = nil
		e.started = false
		e.completed = false
		return fmt.Errorf("%w: %w", ErrBoardLoadFailed, err)
	}

	e.board = board
	e.player = board.Entrance
	e.discovery = NewDiscovery(board.Size)
	e.discovery.ResetTo(e.player)
	e.started = true
	e.completed = false
	return nil
}

// GetState returns a snapshot of the current game
func (e *GameEngine) GetState() *GameState {
	state := &GameState{
		Started:   e.started,
		Completed: e.completed,
		PlayerPos: e.player,
	}
	if e.board != nil {
		state.BoardSize = e.board.Size
		state.Discovered = e.discovery.Count()
		if e.started {
			state.Map = e.RenderMap(false)
		}
	}
	return state
}

// IsStarted returns whether a game is active
func (e *GameEngine) IsStarted() bool {
	return e.started
}

// IsCompleted returns whether the player has reached the exit
func (e *GameEngine) IsCompleted() bool {
	return e.completed
}

// GetPlayerPosition returns the current player position
func (e *GameEngine) GetPlayerPosition() Position {
	return e.player
}

// GetBoard returns the loaded board, or nil before the first successful start
func (e *GameEngine) GetBoard() *Board {
	return e.board
}

// IsDiscovered reports whether p has been revealed in the current game
func (e *GameEngine) IsDiscovered(p Position) bool {
	return e.discovery != nil && e.discovery.IsDiscovered(p)
}

// GetPossibleMoves returns the legal directions from the player's cell
func (e *GameEngine) GetPossibleMoves() []Direction {
	if e.board == nil {
		return nil
	}
	return e.board.PossibleMoves(e.player)
}

// Hint returns a shortest route from the player to the exit
func (e *GameEngine) Hint() (Route, bool) {
	if e.board == nil {
		return nil, false
	}
	return FindPathToExit(e.board, e.player)
}

// RenderMap draws the current board honoring the discovery mask unless
// revealAll is set
func (e *GameEngine) RenderMap(revealAll bool) string {
	if e.board == nil {
		return ""
	}
	return RenderMap(e.board, e.discovery, e.player, revealAll)
}
