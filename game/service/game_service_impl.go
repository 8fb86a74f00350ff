package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/wricardo/maze-escape/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	boards   BoardManager
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, boards BoardManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		boards:   boards,
	}
}

// CreateSession creates a new game session on the named board. The game is
// not started until the start command arrives.
func (s *gameServiceImpl) CreateSession(ctx context.Context, boardName string) (*SessionInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if boardName == "" {
		boardName = s.boards.DefaultBoard()
	}

	source, err := s.boards.Source(boardName)
	if err != nil {
		// Provide helpful error message with available options
		if available, listErr := s.boards.ListBoards(); listErr == nil && len(available) > 0 {
			ids := make([]string, 0, len(available))
			for _, b := range available {
				ids = append(ids, b.BoardID)
			}
			return nil, fmt.Errorf("%w. Available boards: %s", err, strings.Join(ids, ", "))
		}
		return nil, err
	}

	// Let the session manager generate the ID
	sess, err := s.sessions.Create("", boardName, source)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	log.WithFields(log.Fields{"session": sess.ID, "board": boardName}).Info("session created")
	return sess.Info(), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Info(), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, sess.Info())
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(sessionID)
}

// Execute runs one protocol command. Surrounding whitespace and NUL bytes are
// trimmed; matching is otherwise exact. A command that ends the session
// removes it. A board load failure on start/reset is returned as an error
// wrapping engine.ErrBoardLoadFailed.
func (s *gameServiceImpl) Execute(ctx context.Context, sessionID, command string) (*CommandResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	command = strings.Trim(command, " \t\r\n\x00")
	if command == "" {
		return nil, ErrEmptyCommand
	}

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	s.sessions.UpdateLastAccessed(sessionID)

	logger := log.WithFields(log.Fields{"session": sess.ID, "command": command})

	resp, state, err := sess.Execute(command)
	if err != nil {
		logger.Errorf("command failed: %v", err)
		return nil, err
	}

	if command == engine.CmdStart || command == engine.CmdReset {
		logger.Info("starting new game")
	}
	if state.Completed && strings.Contains(resp.String(), engine.MsgEscaped) {
		logger.Info("player escaped")
	}

	if resp.EndSession {
		if err := s.sessions.Delete(sess.ID); err != nil && !errors.Is(err, ErrSessionNotFound) {
			logger.Warnf("failed to remove ended session: %v", err)
		}
		logger.Info("session ended")
	}

	return &CommandResult{
		SessionID:  sess.ID,
		Command:    command,
		Response:   resp.String(),
		EndSession: resp.EndSession,
		Started:    state.Started,
		Completed:  state.Completed,
		PlayerPos:  state.PlayerPos,
	}, nil
}

// GetGameState returns the current state of a session's game
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.State(), nil
}

// ListBoards returns information about every available board
func (s *gameServiceImpl) ListBoards(ctx context.Context) ([]*BoardInfo, error) {
	return s.boards.ListBoards()
}
