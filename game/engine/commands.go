package engine

import "strings"

// Protocol commands
const (
	CmdStart = "start"
	CmdUp    = "up"
	CmdDown  = "down"
	CmdLeft  = "left"
	CmdRight = "right"
	CmdMap   = "map"
	CmdHint  = "hint"
	CmdReset = "reset"
	CmdExit  = "exit"
)

// Commands lists every command the engine understands
var Commands = []string{CmdStart, CmdUp, CmdDown, CmdLeft, CmdRight, CmdMap, CmdHint, CmdReset, CmdExit}

// Response texts
const (
	MsgPossibleMoves   = "possible moves: "
	MsgCannotGo        = "error: you cannot go this way"
	MsgStartFirst      = "error: start the game first!"
	MsgCommandNotFound = "error: command not found"
	MsgHint            = "Hint: "
	MsgNoPath          = "No path to exit found!"
	MsgEscaped         = "You escaped!"
)

// IsCommand reports whether s is a known command
func IsCommand(s string) bool {
	for _, c := range Commands {
		if c == s {
			return true
		}
	}
	return false
}

// Execute processes one command and returns the reply. The only error is a
// board load failure on start or reset; the reply is then empty.
func (e *GameEngine) Execute(command string) (Response, error) {
	if command == CmdStart {
		return e.start()
	}

	if !e.started {
		resp := reply(MsgStartFirst)
		// exit always ends the session, started or not
		resp.EndSession = command == CmdExit
		return resp, nil
	}

	if dir, ok := ParseDirection(command); ok {
		return e.move(dir), nil
	}

	switch command {
	case CmdMap:
		return reply(e.RenderMap(false)), nil
	case CmdHint:
		return reply(e.hintText()), nil
	case CmdReset:
		return e.start()
	case CmdExit:
		e.started = false
		e.completed = false
		return Response{EndSession: true}, nil
	}

	return reply(MsgCommandNotFound), nil
}

// start loads the board and answers with the moves available at the entrance.
// reset goes through the same path.
func (e *GameEngine) start() (Response, error) {
	if err := e.load(); err != nil {
		return Response{}, err
	}
	return reply(e.movesSummary()), nil
}

// move applies a directional command. Illegal moves leave the position
// unchanged. Landing on the exit completes the game and reveals the full map
// for this reply only.
func (e *GameEngine) move(d Direction) Response {
	var parts []string

	target := e.player.Step(d)
	if e.board.CanEnter(target) {
		e.player = target
		e.discovery.RevealAround(target)
	} else {
		parts = append(parts, MsgCannotGo)
	}
	parts = append(parts, e.movesSummary())

	if e.board.KindAt(e.player) == Exit {
		e.completed = true
		parts = append(parts, MsgEscaped, e.RenderMap(true))
	}

	return reply(parts...)
}

func (e *GameEngine) movesSummary() string {
	moves := e.GetPossibleMoves()
	names := make([]string, len(moves))
	for i, d := range moves {
		names[i] = d.String()
	}
	return MsgPossibleMoves + strings.Join(names, ", ")
}

func (e *GameEngine) hintText() string {
	path, ok := e.Hint()
	if !ok {
		return MsgNoPath
	}
	return MsgHint + strings.Join(path.Strings(), ", ")
}
