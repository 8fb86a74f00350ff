package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/wricardo/maze-escape/game/engine"
)

var (
	ErrNoPath       = errors.New("server reports no path to the exit")
	ErrMoveLimit    = errors.New("move limit reached before escaping")
	ErrNotStarted   = errors.New("server did not start the game")
	ErrUnknownReply = errors.New("unexpected hint reply")
)

// Solver plays a game automatically by asking for a hint and walking it
type Solver struct {
	Sender   Sender
	MaxMoves int
	Delay    time.Duration

	log *log.Entry
}

// NewSolver creates a solver with a move limit
func NewSolver(sender Sender, maxMoves int) *Solver {
	return &Solver{
		Sender:   sender,
		MaxMoves: maxMoves,
		log:      log.WithField("component", "solver"),
	}
}

// Solve starts a game and follows hints until the exit is reached. It
// returns the number of moves taken and the final revealed map.
func (s *Solver) Solve() (int, string, error) {
	reply, err := s.Sender.Send(engine.CmdStart)
	if err != nil {
		return 0, "", err
	}
	if !strings.HasPrefix(reply, engine.MsgPossibleMoves) {
		return 0, "", fmt.Errorf("%w: %q", ErrNotStarted, reply)
	}
	s.log.Debug(reply)

	moves := 0
	for moves < s.MaxMoves {
		hint, err := s.Sender.Send(engine.CmdHint)
		if err != nil {
			return moves, "", err
		}
		path, err := ParseHint(hint)
		if err != nil {
			return moves, "", err
		}
		if len(path) == 0 {
			return moves, "", fmt.Errorf("%w: empty hint", ErrUnknownReply)
		}
		s.log.WithField("hint", strings.Join(path, ",")).Debug("following hint")

		for _, dir := range path {
			if moves >= s.MaxMoves {
				break
			}
			reply, err := s.Sender.Send(dir)
			if err != nil {
				return moves, "", err
			}
			moves++

			if i := strings.Index(reply, engine.MsgEscaped); i >= 0 {
				s.log.WithField("moves", moves).Info("escaped")
				revealed := strings.TrimPrefix(reply[i+len(engine.MsgEscaped):], "\n")
				return moves, revealed, nil
			}
			if strings.HasPrefix(reply, engine.MsgCannotGo) {
				// The board changed under us, ask again
				s.log.WithField("move", dir).Warn("hint led into a wall")
				break
			}

			if s.Delay > 0 {
				time.Sleep(s.Delay)
			}
		}
	}

	return moves, "", ErrMoveLimit
}

// ParseHint extracts the directions from a hint reply
func ParseHint(reply string) ([]string, error) {
	if reply == engine.MsgNoPath {
		return nil, ErrNoPath
	}
	rest, ok := strings.CutPrefix(reply, engine.MsgHint)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownReply, reply)
	}
	if strings.TrimSpace(rest) == "" {
		return nil, nil
	}

	parts := strings.Split(rest, ",")
	path := make([]string, 0, len(parts))
	for _, p := range parts {
		dir := strings.TrimSpace(p)
		if _, ok := engine.ParseDirection(dir); !ok {
			return nil, fmt.Errorf("%w: bad direction %q", ErrUnknownReply, dir)
		}
		path = append(path, dir)
	}
	return path, nil
}
