package service

import (
	"time"

	"github.com/wricardo/maze-escape/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string            `json:"id"`
	BoardName      string            `json:"board_name"`
	CreatedAt      time.Time         `json:"created_at"`
	LastAccessedAt time.Time         `json:"last_accessed_at"`
	GameState      *engine.GameState `json:"game_state"`
}

// CommandResult contains the reply to one protocol command
type CommandResult struct {
	SessionID  string          `json:"session_id"`
	Command    string          `json:"command"`
	Response   string          `json:"response"`
	EndSession bool            `json:"end_session"`
	Started    bool            `json:"started"`
	Completed  bool            `json:"completed"`
	PlayerPos  engine.Position `json:"player_pos"`
}

// BoardInfo provides information about a board file
type BoardInfo struct {
	Filename      string          `json:"filename"`
	BoardID       string          `json:"board_id"` // The identifier to use for session creation
	Size          int             `json:"size"`
	Entrance      engine.Position `json:"entrance"`
	Exit          engine.Position `json:"exit"`
	ExitReachable bool            `json:"exit_reachable"`
	ShortestPath  int             `json:"shortest_path"` // -1 when the exit is unreachable
}
