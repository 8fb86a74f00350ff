package main

import (
	"strings"

	"github.com/wricardo/maze-escape/game/engine"
)

// Local replies for commands that never reach the server
const (
	ErrLocalCommandNotFound = "error: command not found"
	ErrLocalStartFirst      = "error: start the game first"
)

// Gate tracks what the client knows about the game so it can reject
// commands before they are sent. The server accepts anything; the gate is
// what keeps a won game frozen until reset.
type Gate struct {
	active bool
	won    bool
}

// Check decides whether cmd is forwarded. When it is not, reply holds the
// text to show the user; after a win, ignored commands get no reply at all.
func (g *Gate) Check(cmd string) (reply string, forward bool) {
	if g.won && cmd != engine.CmdReset && cmd != engine.CmdExit {
		return "", false
	}
	if !engine.IsCommand(cmd) {
		return ErrLocalCommandNotFound, false
	}
	if !g.active && cmd != engine.CmdStart {
		return ErrLocalStartFirst, false
	}
	return "", true
}

// Observe updates the gate with the server's reply to cmd. It returns true
// once the session is over.
func (g *Gate) Observe(cmd, reply string) bool {
	switch {
	case cmd == engine.CmdExit:
		return true
	case cmd == engine.CmdStart, cmd == engine.CmdReset:
		g.active = true
		g.won = false
	case strings.Contains(reply, engine.MsgEscaped):
		g.won = true
	}
	return false
}

// Active reports whether a game has been started
func (g *Gate) Active() bool {
	return g.active
}

// Won reports whether the current game has been escaped
func (g *Gate) Won() bool {
	return g.won
}
