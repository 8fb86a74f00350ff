package tcp

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/wricardo/maze-escape/game/engine"
	"github.com/wricardo/maze-escape/game/service"
)

// MaxRecordSize bounds a single request record, terminator included
const MaxRecordSize = 1024

// Terminator ends every reply record
const Terminator = '\x00'

// ErrInvalidProto is returned for an address family other than v4 or v6
var ErrInvalidProto = errors.New("invalid protocol, expected v4 or v6")

// ResultFunc observes every command result produced by the server
type ResultFunc func(sessionID string, result *service.CommandResult)

// Server accepts one client at a time and plays one game per connection
type Server struct {
	service service.GameService
	network string
	addr    string
	board   string

	// OnResult, when set, is called after every executed command
	OnResult ResultFunc

	log *log.Entry

	mu       sync.Mutex
	listener net.Listener
}

// Network maps the protocol family argument (v4 or v6) to a Go network name
func Network(proto string) (string, error) {
	switch strings.ToLower(proto) {
	case "v4", "ipv4":
		return "tcp4", nil
	case "v6", "ipv6":
		return "tcp6", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidProto, proto)
	}
}

// NewServer creates a server listening on all interfaces of the protocol
// family on port. Each connection plays on the named board; an empty name
// uses the default board.
func NewServer(gameService service.GameService, proto string, port int, board string) (*Server, error) {
	network, err := Network(proto)
	if err != nil {
		return nil, err
	}
	if port < 0 || port > 65535 {
		return nil, fmt.Errorf("invalid port %d", port)
	}

	return &Server{
		service: gameService,
		network: network,
		addr:    fmt.Sprintf(":%d", port),
		board:   board,
		log:     log.WithField("component", "tcp"),
	}, nil
}

// Addr returns the listening address, or nil before ListenAndServe binds
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// ListenAndServe binds the listener and serves until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen(s.network, s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s %s: %w", s.network, s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln one at a time. It returns nil once ctx is
// cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()
	defer ln.Close()

	s.log.WithField("addr", ln.Addr().String()).Info("listening")

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}

		s.handleConn(ctx, conn)
	}
}

// handleConn plays one game over conn and returns when the client leaves
func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()
	defer conn.Close()

	logger := s.log.WithField("remote", conn.RemoteAddr().String())

	info, err := s.service.CreateSession(ctx, s.board)
	if err != nil {
		logger.Errorf("failed to create session: %v", err)
		return
	}
	logger = logger.WithField("session", info.ID)
	logger.Info("client connected")

	ended := false
	defer func() {
		if !ended {
			if err := s.service.DeleteSession(context.Background(), info.ID); err != nil && !errors.Is(err, service.ErrSessionNotFound) {
				logger.Warnf("failed to remove session: %v", err)
			}
		}
		logger.Info("client disconnected")
	}()

	scanner := NewRecordScanner(conn)
	writer := bufio.NewWriter(conn)

	for scanner.Scan() {
		command := strings.TrimSpace(scanner.Text())
		if command == "" {
			continue
		}

		reply, end := s.execute(ctx, logger, info.ID, command)
		if err := writeRecord(writer, reply); err != nil {
			logger.Warnf("failed to send reply: %v", err)
			return
		}

		if end {
			ended = true
			return
		}
	}

	if err := scanner.Err(); err != nil && ctx.Err() == nil && !errors.Is(err, net.ErrClosed) {
		logger.Warnf("read failed: %v", err)
	}
}

// execute runs one command and returns the reply text and whether the
// session ended
func (s *Server) execute(ctx context.Context, logger *log.Entry, sessionID, command string) (string, bool) {
	result, err := s.service.Execute(ctx, sessionID, command)
	if err != nil {
		if errors.Is(err, engine.ErrBoardLoadFailed) {
			logger.Errorf("failed to initialize game board: %v", err)
			return "", false
		}
		if errors.Is(err, service.ErrSessionNotFound) {
			return "", true
		}
		logger.Errorf("command failed: %v", err)
		return "", false
	}

	logger.WithField("command", command).Debug("command executed")

	if s.OnResult != nil {
		s.OnResult(sessionID, result)
	}
	return result.Response, result.EndSession
}

func writeRecord(w *bufio.Writer, reply string) error {
	if _, err := w.WriteString(reply); err != nil {
		return err
	}
	if err := w.WriteByte(Terminator); err != nil {
		return err
	}
	return w.Flush()
}

// NewRecordScanner splits a stream into records terminated by '\n' or NUL.
// A trailing record without a terminator is returned at EOF.
func NewRecordScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, MaxRecordSize), MaxRecordSize)
	scanner.Split(scanRecords)
	return scanner
}

func scanRecords(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\n\x00"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
