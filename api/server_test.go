package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/wricardo/maze-escape/game/config"
	"github.com/wricardo/maze-escape/game/engine"
	"github.com/wricardo/maze-escape/game/service"
	"github.com/wricardo/maze-escape/game/session"
	"github.com/wricardo/maze-escape/transport/websocket"
)

const testBoard = `2 1 0 0 0
0 1 0 1 3
0 1 1 1 0
0 0 0 1 0
0 0 0 0 0
`

// MockGameService implements service.GameService for testing
type MockGameService struct {
	CreateSessionFunc func(ctx context.Context, boardName string) (*service.SessionInfo, error)
	GetSessionFunc    func(ctx context.Context, sessionID string) (*service.SessionInfo, error)
	ListSessionsFunc  func(ctx context.Context) ([]*service.SessionInfo, error)
	DeleteSessionFunc func(ctx context.Context, sessionID string) error
	ExecuteFunc       func(ctx context.Context, sessionID, command string) (*service.CommandResult, error)
	GetGameStateFunc  func(ctx context.Context, sessionID string) (*engine.GameState, error)
	ListBoardsFunc    func(ctx context.Context) ([]*service.BoardInfo, error)
}

func (m *MockGameService) CreateSession(ctx context.Context, boardName string) (*service.SessionInfo, error) {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx, boardName)
	}
	return &service.SessionInfo{
		ID:        "test-session",
		BoardName: boardName,
		CreatedAt: time.Now(),
	}, nil
}

func (m *MockGameService) GetSession(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, sessionID)
	}
	return &service.SessionInfo{
		ID:        sessionID,
		BoardName: "in",
		CreatedAt: time.Now(),
	}, nil
}

func (m *MockGameService) ListSessions(ctx context.Context) ([]*service.SessionInfo, error) {
	if m.ListSessionsFunc != nil {
		return m.ListSessionsFunc(ctx)
	}
	return []*service.SessionInfo{}, nil
}

func (m *MockGameService) DeleteSession(ctx context.Context, sessionID string) error {
	if m.DeleteSessionFunc != nil {
		return m.DeleteSessionFunc(ctx, sessionID)
	}
	return nil
}

func (m *MockGameService) Execute(ctx context.Context, sessionID, command string) (*service.CommandResult, error) {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, sessionID, command)
	}
	return &service.CommandResult{SessionID: sessionID, Command: command}, nil
}

func (m *MockGameService) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	if m.GetGameStateFunc != nil {
		return m.GetGameStateFunc(ctx, sessionID)
	}
	return &engine.GameState{}, nil
}

func (m *MockGameService) ListBoards(ctx context.Context) ([]*service.BoardInfo, error) {
	if m.ListBoardsFunc != nil {
		return m.ListBoardsFunc(ctx)
	}
	return []*service.BoardInfo{}, nil
}

// Test helpers
func setupTestServer(t *testing.T, mockService *MockGameService) *Server {
	t.Helper()
	hub := websocket.NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return NewServer(mockService, hub)
}

func makeRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), target); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
}

// Session Management Tests

func TestCreateSession(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockGameService)
		expectedStatus int
		validateResp   func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:        "Create session on default board",
			requestBody: nil,
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, boardName string) (*service.SessionInfo, error) {
					if boardName != "" {
						t.Errorf("Expected empty board name, got %s", boardName)
					}
					return &service.SessionInfo{ID: "a1b2c3d4", BoardName: "in", CreatedAt: time.Now()}, nil
				}
			},
			expectedStatus: http.StatusCreated,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.SessionInfo
				parseResponse(t, w, &resp)
				if resp.ID != "a1b2c3d4" {
					t.Errorf("Expected session ID a1b2c3d4, got %s", resp.ID)
				}
			},
		},
		{
			name:        "Create session on named board",
			requestBody: map[string]string{"board": "spiral"},
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, boardName string) (*service.SessionInfo, error) {
					return &service.SessionInfo{ID: "s1", BoardName: boardName}, nil
				}
			},
			expectedStatus: http.StatusCreated,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.SessionInfo
				parseResponse(t, w, &resp)
				if resp.BoardName != "spiral" {
					t.Errorf("Expected board 'spiral', got %s", resp.BoardName)
				}
			},
		},
		{
			name:        "Unknown board",
			requestBody: map[string]string{"board": "nope"},
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, boardName string) (*service.SessionInfo, error) {
					return nil, fmt.Errorf("%w: nope", config.ErrBoardNotFound)
				}
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Malformed body",
			requestBody:    "not an object",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Handle service error",
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, boardName string) (*service.SessionInfo, error) {
					return nil, fmt.Errorf("service error")
				}
			},
			expectedStatus: http.StatusInternalServerError,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp map[string]string
				parseResponse(t, w, &resp)
				if resp["error"] != "service error" {
					t.Errorf("Expected error message 'service error', got %s", resp["error"])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockGameService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			server := setupTestServer(t, mockService)
			w := httptest.NewRecorder()
			server.ServeHTTP(w, makeRequest("POST", "/api/sessions", tt.requestBody))

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if tt.validateResp != nil {
				tt.validateResp(t, w)
			}
		})
	}
}

func TestListSessions(t *testing.T) {
	now := time.Now()
	mockService := &MockGameService{
		ListSessionsFunc: func(ctx context.Context) ([]*service.SessionInfo, error) {
			return []*service.SessionInfo{
				{ID: "old", CreatedAt: now.Add(-2 * time.Hour), LastAccessedAt: now.Add(-time.Minute)},
				{ID: "new", CreatedAt: now.Add(-time.Hour), LastAccessedAt: now.Add(-time.Hour)},
				{ID: "mid", CreatedAt: now.Add(-90 * time.Minute), LastAccessedAt: now},
			}, nil
		},
	}
	server := setupTestServer(t, mockService)

	tests := []struct {
		name     string
		query    string
		expected []string
		total    float64
	}{
		{"default sorts by access desc", "", []string{"mid", "old", "new"}, 3},
		{"created ascending", "?sort=created&order=asc", []string{"old", "mid", "new"}, 3},
		{"limit", "?sort=created&limit=1", []string{"new"}, 3},
		{"invalid limit ignored", "?limit=zero", []string{"mid", "old", "new"}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			server.ServeHTTP(w, makeRequest("GET", "/api/sessions"+tt.query, nil))

			if w.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d", w.Code)
			}

			var resp struct {
				Count    int                    `json:"count"`
				Total    float64                `json:"total"`
				Sessions []*service.SessionInfo `json:"sessions"`
			}
			parseResponse(t, w, &resp)

			if resp.Total != tt.total {
				t.Errorf("Expected total %v, got %v", tt.total, resp.Total)
			}
			if resp.Count != len(tt.expected) {
				t.Fatalf("Expected count %d, got %d", len(tt.expected), resp.Count)
			}
			for i, id := range tt.expected {
				if resp.Sessions[i].ID != id {
					t.Errorf("Expected session %d to be %s, got %s", i, id, resp.Sessions[i].ID)
				}
			}
		})
	}
}

func TestGetAndDeleteSession(t *testing.T) {
	mockService := &MockGameService{
		GetSessionFunc: func(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
			if sessionID != "abc" {
				return nil, fmt.Errorf("%w: %s", service.ErrSessionNotFound, sessionID)
			}
			return &service.SessionInfo{ID: "abc", BoardName: "in"}, nil
		},
		DeleteSessionFunc: func(ctx context.Context, sessionID string) error {
			if sessionID != "abc" {
				return service.ErrSessionNotFound
			}
			return nil
		},
	}
	server := setupTestServer(t, mockService)

	tests := []struct {
		method         string
		path           string
		expectedStatus int
	}{
		{"GET", "/api/sessions/abc", http.StatusOK},
		{"GET", "/api/sessions/missing", http.StatusNotFound},
		{"DELETE", "/api/sessions/abc", http.StatusOK},
		{"DELETE", "/api/sessions/missing", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			server.ServeHTTP(w, makeRequest(tt.method, tt.path, nil))
			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}

// Game Operation Tests

func TestCommand(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		execErr        error
		expectedStatus int
	}{
		{"valid command", map[string]string{"command": "start"}, nil, http.StatusOK},
		{"malformed body", "start", nil, http.StatusBadRequest},
		{"empty command", map[string]string{"command": ""}, service.ErrEmptyCommand, http.StatusBadRequest},
		{"unknown session", map[string]string{"command": "start"}, service.ErrSessionNotFound, http.StatusNotFound},
		{"board load failure", map[string]string{"command": "start"},
			fmt.Errorf("%w: %w", engine.ErrBoardLoadFailed, engine.ErrInvalidDimensions), http.StatusUnprocessableEntity},
		{"unexpected failure", map[string]string{"command": "start"}, fmt.Errorf("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotCommand string
			mockService := &MockGameService{
				ExecuteFunc: func(ctx context.Context, sessionID, command string) (*service.CommandResult, error) {
					gotCommand = command
					if tt.execErr != nil {
						return nil, tt.execErr
					}
					return &service.CommandResult{
						SessionID: sessionID,
						Command:   command,
						Response:  "possible moves: right",
						Started:   true,
					}, nil
				},
			}
			server := setupTestServer(t, mockService)

			w := httptest.NewRecorder()
			server.ServeHTTP(w, makeRequest("POST", "/api/sessions/abc/command", tt.body))

			if w.Code != tt.expectedStatus {
				t.Fatalf("Expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var resp service.CommandResult
			parseResponse(t, w, &resp)
			if gotCommand != "start" {
				t.Errorf("Expected command 'start' to reach the service, got %q", gotCommand)
			}
			if resp.Response != "possible moves: right" || !resp.Started {
				t.Errorf("Unexpected result %+v", resp)
			}
		})
	}
}

func TestGetGameState(t *testing.T) {
	mockService := &MockGameService{
		GetGameStateFunc: func(ctx context.Context, sessionID string) (*engine.GameState, error) {
			if sessionID == "missing" {
				return nil, service.ErrSessionNotFound
			}
			return &engine.GameState{Started: true, BoardSize: 5, Discovered: 4}, nil
		},
	}
	server := setupTestServer(t, mockService)

	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/api/sessions/abc/state", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var state engine.GameState
	parseResponse(t, w, &state)
	if !state.Started || state.Discovered != 4 {
		t.Errorf("Unexpected state %+v", state)
	}

	w = httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/api/sessions/missing/state", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

// Board Tests

func TestListBoards(t *testing.T) {
	mockService := &MockGameService{
		ListBoardsFunc: func(ctx context.Context) ([]*service.BoardInfo, error) {
			return []*service.BoardInfo{{BoardID: "in", Filename: "in.txt", Size: 5, ExitReachable: true, ShortestPath: 7}}, nil
		},
	}
	server := setupTestServer(t, mockService)

	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/api/boards", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var boards []service.BoardInfo
	parseResponse(t, w, &boards)
	if len(boards) != 1 || boards[0].BoardID != "in" || boards[0].ShortestPath != 7 {
		t.Errorf("Unexpected boards %+v", boards)
	}
}

func TestSaveBoard(t *testing.T) {
	dir := t.TempDir()
	boards, err := config.NewManager(dir, engine.DefaultBoardPolicy)
	if err != nil {
		t.Fatalf("Failed to create board manager: %v", err)
	}

	server := setupTestServer(t, &MockGameService{})

	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("POST", "/api/boards", map[string]string{"name": "x", "layout": testBoard}))
	if w.Code != http.StatusNotImplemented {
		t.Errorf("Expected status 501 without a board store, got %d", w.Code)
	}

	server.SetBoardStore(boards)

	tests := []struct {
		name           string
		body           map[string]string
		expectedStatus int
	}{
		{"valid board", map[string]string{"name": "small.txt", "layout": testBoard}, http.StatusCreated},
		{"missing name", map[string]string{"layout": testBoard}, http.StatusBadRequest},
		{"invalid layout", map[string]string{"name": "bad", "layout": "2 3\n0 0\n"}, http.StatusUnprocessableEntity},
		{"path traversal", map[string]string{"name": "../evil", "layout": testBoard}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			server.ServeHTTP(w, makeRequest("POST", "/api/boards", tt.body))
			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}

	if _, err := os.Stat(filepath.Join(dir, "small.txt")); err != nil {
		t.Errorf("Expected board file to be written: %v", err)
	}
}

func TestHealth(t *testing.T) {
	server := setupTestServer(t, &MockGameService{})

	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "healthy") {
		t.Errorf("Expected healthy status, got %s", w.Body.String())
	}
}

func TestWebSocketRequiresSession(t *testing.T) {
	mockService := &MockGameService{
		GetSessionFunc: func(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
			return nil, service.ErrSessionNotFound
		},
	}
	server := setupTestServer(t, mockService)

	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/ws", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 without session, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/ws?session=nope", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for unknown session, got %d", w.Code)
	}
}

// End-to-end through the real service, session manager and board directory
func TestFullGameOverHTTP(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "in.txt"), []byte(testBoard), 0644); err != nil {
		t.Fatalf("Failed to write board: %v", err)
	}
	boards, err := config.NewManager(dir, engine.DefaultBoardPolicy)
	if err != nil {
		t.Fatalf("Failed to create board manager: %v", err)
	}

	gameService := service.NewGameService(session.NewManager(), boards)
	hub := websocket.NewHub(gameService.Execute)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	srv := httptest.NewServer(NewServer(gameService, hub))
	defer srv.Close()

	post := func(path string, body interface{}, target interface{}) int {
		t.Helper()
		data, _ := json.Marshal(body)
		resp, err := http.Post(srv.URL+path, "application/json", bytes.NewReader(data))
		if err != nil {
			t.Fatalf("POST %s failed: %v", path, err)
		}
		defer resp.Body.Close()
		if target != nil {
			json.NewDecoder(resp.Body).Decode(target)
		}
		return resp.StatusCode
	}

	var info service.SessionInfo
	if code := post("/api/sessions", map[string]string{}, &info); code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", code)
	}

	var last service.CommandResult
	for _, cmd := range []string{"start", "right", "down", "down", "right", "right", "up", "right"} {
		if code := post("/api/sessions/"+info.ID+"/command", map[string]string{"command": cmd}, &last); code != http.StatusOK {
			t.Fatalf("Command %q: expected 200, got %d", cmd, code)
		}
	}
	if !last.Completed || !strings.Contains(last.Response, engine.MsgEscaped) {
		t.Errorf("Expected escape, got %+v", last)
	}

	if code := post("/api/sessions/"+info.ID+"/command", map[string]string{"command": "exit"}, &last); code != http.StatusOK {
		t.Fatalf("exit: expected 200, got %d", code)
	}
	if !last.EndSession {
		t.Error("Expected exit to end the session")
	}

	resp, err := http.Get(srv.URL + "/api/sessions/" + info.ID)
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected ended session to be gone, got %d", resp.StatusCode)
	}
}
