package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/wricardo/maze-escape/game/engine"
	"github.com/wricardo/maze-escape/game/service"
)

var (
	ErrBoardNotFound = errors.New("board not found")
	ErrInvalidBoard  = errors.New("invalid board")
)

// BoardExt is the file extension of board files in the board directory
const BoardExt = ".txt"

// DefaultBoardName is the board served when none is requested
const DefaultBoardName = "in"

// Manager handles board discovery and loading from a directory. Boards are
// read from disk on every load so edits take effect on the next start.
type Manager struct {
	boardDir     string
	policy       engine.BoardPolicy
	defaultBoard string
	mu           sync.RWMutex
}

// NewManager creates a new board manager
func NewManager(boardDir string, policy engine.BoardPolicy) (*Manager, error) {
	info, err := os.Stat(boardDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("board directory does not exist: %s", boardDir)
	}
	if policy.MinSize <= 0 || policy.MaxSize < policy.MinSize {
		return nil, fmt.Errorf("invalid board size bounds %d..%d", policy.MinSize, policy.MaxSize)
	}

	return &Manager{
		boardDir:     boardDir,
		policy:       policy,
		defaultBoard: DefaultBoardName,
	}, nil
}

// Policy returns the size bounds applied to every board
func (m *Manager) Policy() engine.BoardPolicy {
	return m.policy
}

// LoadBoard reads and validates a board by name. An empty name selects the
// default board.
func (m *Manager) LoadBoard(name string) (*engine.Board, error) {
	path, err := m.boardPath(name)
	if err != nil {
		return nil, err
	}

	board, err := engine.LoadBoardFile(path, m.policy)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrBoardNotFound, m.resolveName(name))
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidBoard, err)
	}

	return board, nil
}

// Source returns a BoardSource that reloads the named board on every start.
// A named board must exist when the source is created. The default board may
// be missing; its absence is reported by the load on start.
func (m *Manager) Source(name string) (engine.BoardSource, error) {
	name = m.resolveName(name)
	path, err := m.boardPath(name)
	if err != nil {
		return nil, err
	}
	if name != m.DefaultBoard() {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrBoardNotFound, name)
		}
	}

	return engine.BoardSourceFunc(func() (*engine.Board, error) {
		return m.LoadBoard(name)
	}), nil
}

// ListBoards returns information about every valid board in the directory
func (m *Manager) ListBoards() ([]*service.BoardInfo, error) {
	entries, err := os.ReadDir(m.boardDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read board directory: %w", err)
	}

	boards := make([]*service.BoardInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), BoardExt) {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), BoardExt)
		board, err := m.LoadBoard(name)
		if err != nil {
			log.WithField("board", name).Warnf("skipping board: %v", err)
			continue
		}

		boards = append(boards, NewBoardInfo(name, board))
	}

	sort.Slice(boards, func(i, j int) bool {
		return boards[i].BoardID < boards[j].BoardID
	})

	return boards, nil
}

// NewBoardInfo summarizes a loaded board
func NewBoardInfo(name string, board *engine.Board) *service.BoardInfo {
	info := &service.BoardInfo{
		Filename:     name + BoardExt,
		BoardID:      name,
		Size:         board.Size,
		Entrance:     board.Entrance,
		Exit:         board.Exit,
		ShortestPath: -1,
	}
	if path, ok := engine.FindPathToExit(board, board.Entrance); ok {
		info.ExitReachable = true
		info.ShortestPath = len(path)
	}
	return info
}

// DefaultBoard returns the name of the default board
func (m *Manager) DefaultBoard() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultBoard
}

// SetDefault sets the default board by name after checking that it loads
func (m *Manager) SetDefault(name string) error {
	if _, err := m.LoadBoard(name); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultBoard = name
	return nil
}

// SaveBoard writes a board to the directory in the board file format
func (m *Manager) SaveBoard(name string, board *engine.Board) error {
	if board == nil {
		return fmt.Errorf("%w: nil board", ErrInvalidBoard)
	}

	// Re-parse the serialized form so only loadable boards reach disk
	text := board.String()
	if _, err := engine.ParseBoard(strings.NewReader(text), m.policy); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBoard, err)
	}

	path, err := m.boardPath(name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write board file: %w", err)
	}

	return nil
}

func (m *Manager) resolveName(name string) string {
	if name == "" {
		return m.DefaultBoard()
	}
	return strings.TrimSuffix(name, BoardExt)
}

// boardPath maps a board name to a file inside the board directory
func (m *Manager) boardPath(name string) (string, error) {
	name = m.resolveName(name)
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return "", fmt.Errorf("%w: invalid board name %q", ErrBoardNotFound, name)
	}
	return filepath.Join(m.boardDir, name+BoardExt), nil
}
