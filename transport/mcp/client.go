package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/maze-escape/game/engine"
	"github.com/wricardo/maze-escape/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Maze Escape",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Maze Escape - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Walk from the entrance (>) to the exit (X) of a square maze. Only the cells
around the player are revealed as you move.

AVAILABLE TOOLS:
- create_session: Create a new game session on a board
- list_sessions: List all active sessions
- get_session: Get session details and the discovered map
- send_command: Send one protocol command (start, up, down, left, right, map, hint, reset, exit)
- game_state: Get the current game state
- list_boards: List available boards
- game_instructions: Get the rules and the command reference

Call send_command with "start" before moving.`),
	)

	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session, optionally on a named board",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"board": map[string]interface{}{
					"type":        "string",
					"description": "Board ID to play (optional, see list_boards)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "send_command",
		Description: "Send one protocol command to a session and return the server reply",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"command": map[string]interface{}{
					"type":        "string",
					"enum":        engine.Commands,
					"description": "Command to send",
				},
			},
			Required: []string{"session_id", "command"},
		},
	}, c.handleSendCommand)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current game state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	// Boards
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_boards",
		Description: "List available boards with size and shortest path length",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListBoards)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the game rules, command reference and map legend",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func sessionPath(sessionID string, suffix string) string {
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	board := request.GetString("board", "")

	body := map[string]string{}
	if board != "" {
		body["board"] = board
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nBoard: %s\nSend the start command to begin.\n", session.ID, session.BoardName)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if response.Count == 0 {
		return mcp.NewToolResultText("No active sessions"), nil
	}

	var result strings.Builder
	fmt.Fprintf(&result, "Active sessions (%d):\n", response.Count)
	for _, session := range response.Sessions {
		status := "not started"
		if session.GameState != nil && session.GameState.Completed {
			status = "escaped"
		} else if session.GameState != nil && session.GameState.Started {
			status = "playing"
		}
		fmt.Fprintf(&result, "- %s (board: %s, %s)\n", session.ID, session.BoardName, status)
	}
	return mcp.NewToolResultText(result.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, ""), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleSendCommand(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	command, err := request.RequireString("command")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result service.CommandResult
	body := map[string]string{"command": command}
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/command"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatCommandResult(&result)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var state engine.GameState
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handleListBoards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var boards []*service.BoardInfo
	if err := c.apiCall(ctx, "GET", "/api/boards", nil, &boards); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatBoards(boards)), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `MAZE ESCAPE

OBJECTIVE:
Reach the exit of the maze, starting from the entrance.

COMMANDS (exact, lowercase):
- start: load the board and place the player on the entrance
- up, down, left, right: move one cell
- map: show the discovered part of the maze
- hint: list the moves of the shortest path from the current cell to the exit
- reset: reload the board and start over
- exit: end the session

REPLIES:
- "possible moves: right, down" after every successful move, in the order up, right, down, left
- "error: you cannot go this way" when the target is a wall, outside the board, or the entrance
- "error: start the game first!" when a command other than start or exit arrives before start
- "error: command not found" for anything else
- "You escaped!" together with the revealed map when the exit is reached

MAP LEGEND:
  #  wall
  _  path
  >  entrance
  X  exit (also the player standing on the exit)
  +  player
  ?  not yet discovered

Only cells next to positions you have visited are revealed. After escaping,
only reset and exit make sense.`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nBoard: %s\nCreated: %s\n\n%s",
		session.ID, session.BoardName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}
	if !state.Started {
		return "Game not started. Send the start command."
	}

	var result strings.Builder
	status := "PLAYING"
	if state.Completed {
		status = "ESCAPED"
	}
	fmt.Fprintf(&result, "Status: %s\n", status)
	fmt.Fprintf(&result, "Position: (%d,%d)\n", state.PlayerPos.X, state.PlayerPos.Y)
	fmt.Fprintf(&result, "Board: %dx%d, %d cells discovered\n", state.BoardSize, state.BoardSize, state.Discovered)
	if state.Map != "" {
		result.WriteString("\n")
		result.WriteString(state.Map)
	}
	return result.String()
}

func formatCommandResult(result *service.CommandResult) string {
	var out strings.Builder
	fmt.Fprintf(&out, "> %s\n", result.Command)
	if result.Response != "" {
		out.WriteString(result.Response)
		if !strings.HasSuffix(result.Response, "\n") {
			out.WriteString("\n")
		}
	}
	switch {
	case result.EndSession:
		out.WriteString("(session ended)\n")
	case result.Completed:
		out.WriteString("(escaped: send reset to play again)\n")
	}
	return out.String()
}

func formatBoards(boards []*service.BoardInfo) string {
	if len(boards) == 0 {
		return "No boards available"
	}

	var out strings.Builder
	fmt.Fprintf(&out, "Available boards (%d):\n", len(boards))
	for _, b := range boards {
		path := "no path to exit"
		if b.ExitReachable {
			path = fmt.Sprintf("shortest path %d moves", b.ShortestPath)
		}
		fmt.Fprintf(&out, "- %s: %dx%d, entrance (%d,%d), exit (%d,%d), %s\n",
			b.BoardID, b.Size, b.Size, b.Entrance.X, b.Entrance.Y, b.Exit.X, b.Exit.Y, path)
	}
	return out.String()
}
