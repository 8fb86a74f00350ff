package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/wricardo/maze-escape/game/engine"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrEmptyCommand    = errors.New("command is required")
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, boardName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Execute(ctx context.Context, sessionID, command string) (*CommandResult, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)

	// Boards
	ListBoards(ctx context.Context) ([]*BoardInfo, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id, boardName string, source engine.BoardSource) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// BoardManager resolves board names to board sources
type BoardManager interface {
	Source(name string) (engine.BoardSource, error)
	ListBoards() ([]*BoardInfo, error)
	DefaultBoard() string
}

// Session represents an active game session. Commands for one session are
// serialized by its mutex; the engine itself does no locking.
type Session struct {
	ID        string
	BoardName string
	Engine    *engine.GameEngine
	CreatedAt time.Time

	mu             sync.Mutex
	lastAccessedAt time.Time
}

// NewSession wraps an engine in a session
func NewSession(id, boardName string, eng *engine.GameEngine) *Session {
	now := time.Now()
	return &Session{
		ID:             id,
		BoardName:      boardName,
		Engine:         eng,
		CreatedAt:      now,
		lastAccessedAt: now,
	}
}

// Execute runs one command against the session's engine and returns the
// reply together with the state it left behind
func (s *Session) Execute(command string) (engine.Response, *engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	resp, err := s.Engine.Execute(command)
	return resp, s.Engine.GetState(), err
}

// State returns a snapshot of the session's game
func (s *Session) State() *engine.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Engine.GetState()
}

// Touch records an access
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAccessedAt = time.Now()
}

// LastAccessed returns the time of the last access
func (s *Session) LastAccessed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAccessedAt
}

// Info returns a snapshot of the session
func (s *Session) Info() *SessionInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &SessionInfo{
		ID:             s.ID,
		BoardName:      s.BoardName,
		CreatedAt:      s.CreatedAt,
		LastAccessedAt: s.lastAccessedAt,
		GameState:      s.Engine.GetState(),
	}
}
