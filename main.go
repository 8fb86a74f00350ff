// Command maze-escape starts the Maze Escape server.
//
// It supports three modes:
//  1. "tcp" (default) – serves the NUL-terminated line protocol, one client at a time
//  2. "http" – runs the REST API, WebSocket and /mcp endpoint next to the TCP listener
//  3. "stdio-mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//
// The classic invocation "maze-escape v4 51511" is accepted as tcp mode with
// the given address family and port.
//
// Flags default from MAZE_* environment variables (see game/config.Env) and
// an optional .env file.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	log "github.com/sirupsen/logrus"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/wricardo/maze-escape/api"
	"github.com/wricardo/maze-escape/game/config"
	"github.com/wricardo/maze-escape/game/service"
	"github.com/wricardo/maze-escape/game/session"
	"github.com/wricardo/maze-escape/transport/mcp"
	"github.com/wricardo/maze-escape/transport/tcp"
	"github.com/wricardo/maze-escape/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Maze Escape Server"
)

// Server modes
const (
	ModeTCP      = "tcp"
	ModeHTTP     = "http"
	ModeStdioMCP = "stdio-mcp"
)

var env = config.LoadEnv()

// Configuration flags control how the server starts and which services are enabled.
var (
	proto        = flag.String("proto", env.Proto, "TCP address family: v4 or v6")
	port         = flag.Int("port", env.TCPPort, "TCP protocol port (0 disables the listener in http mode)")
	host         = flag.String("host", env.HTTPHost, "HTTP server host")
	httpPort     = flag.Int("http-port", env.HTTPPort, "HTTP server port")
	boardDir     = flag.String("board-dir", env.BoardDir, "Directory containing board files")
	board        = flag.String("board", env.DefaultBoard, "Default board name")
	debug        = flag.Bool("debug", env.Debug, "Enable debug logging")
	version      = flag.Bool("version", false, "Show version information")
	ngrokEnabled = flag.Bool("ngrok", false, "Enable ngrok tunnel (http mode)")
	ngrokAuth    = flag.String("ngrok-auth", "", "Ngrok auth token (or use NGROK_AUTHTOKEN env var)")
	ngrokDomain  = flag.String("ngrok-domain", "", "Custom ngrok domain (optional)")
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] [MODE]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s [OPTIONS] <v4|v6> <port>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "%s v%s\n\n", AppName, Version)
		fmt.Fprintf(os.Stderr, "Available modes:\n")
		fmt.Fprintf(os.Stderr, "  tcp              Serve the line protocol over TCP (default)\n")
		fmt.Fprintf(os.Stderr, "  http, server     Run HTTP server with API, WebSocket, and MCP endpoint, plus TCP\n")
		fmt.Fprintf(os.Stderr, "  stdio-mcp        Run MCP stdio server with internal HTTP server\n")
		fmt.Fprintf(os.Stderr, "  mcp-stdio, mcp   Aliases for stdio-mcp\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s v4 51511                   # Serve IPv4 clients on port 51511\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -proto v6 -port 5000       # Serve IPv6 clients on port 5000\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -http-port 9090 http       # HTTP on 9090 and TCP on the default port\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s stdio-mcp                  # Run MCP stdio server\n", os.Args[0])
	}
}

// main parses flags, initializes services, and starts the selected mode.
func main() {
	flag.Parse()

	if *version {
		fmt.Printf("%s v%s\n", AppName, Version)
		os.Exit(0)
	}

	setupLogging(*debug)

	mode, err := parseArgs(flag.Args(), proto, port)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(1)
	}

	log.WithFields(log.Fields{"mode": mode, "version": Version}).Infof("Starting %s", AppName)

	svc, err := initializeServices(*boardDir, *board, env)
	if err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sessionCleanupRoutine(ctx, svc.sessions, env.SessionTTL)

	switch mode {
	case ModeTCP:
		runTCPServer(ctx, svc.game, nil)
	case ModeHTTP:
		runHTTPServer(ctx, svc)
	case ModeStdioMCP:
		runStdioMCPWithInternalServer(svc)
	}
}

func setupLogging(debug bool) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stderr)
	if debug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

// parseArgs resolves the mode from the positional arguments. "v4 51511"
// style arguments select tcp mode and override proto and port.
func parseArgs(args []string, proto *string, port *int) (string, error) {
	if len(args) == 0 {
		return ModeTCP, nil
	}

	switch args[0] {
	case "tcp":
		return ModeTCP, checkExtra(args, 1)
	case "http", "server":
		return ModeHTTP, checkExtra(args, 1)
	case "stdio-mcp", "mcp-stdio", "mcp":
		return ModeStdioMCP, checkExtra(args, 1)
	}

	if _, err := tcp.Network(args[0]); err != nil {
		return "", fmt.Errorf("unknown mode: %s", args[0])
	}
	if len(args) != 2 {
		return "", fmt.Errorf("usage: <v4|v6> <server port>")
	}
	p, err := strconv.Atoi(args[1])
	if err != nil || p <= 0 || p > 65535 {
		return "", fmt.Errorf("invalid port: %s", args[1])
	}

	*proto = args[0]
	*port = p
	return ModeTCP, nil
}

func checkExtra(args []string, n int) error {
	if len(args) > n {
		return fmt.Errorf("unexpected arguments: %v", args[n:])
	}
	return nil
}

// services groups the wired managers so modes can reach them
type services struct {
	game     service.GameService
	sessions *session.Manager
	boards   *config.Manager
}

// initializeServices wires the board directory, session manager and game
// service. An unloadable default board is only a warning; the board is read
// again on every start.
func initializeServices(boardDir, defaultBoard string, cfg config.Env) (*services, error) {
	boards, err := config.NewManager(boardDir, cfg.BoardPolicy())
	if err != nil {
		return nil, fmt.Errorf("failed to create board manager: %w", err)
	}

	if defaultBoard != "" && defaultBoard != boards.DefaultBoard() {
		if err := boards.SetDefault(defaultBoard); err != nil {
			return nil, fmt.Errorf("failed to select default board: %w", err)
		}
	}
	if _, err := boards.LoadBoard(boards.DefaultBoard()); err != nil {
		log.Warnf("Default board %q does not load yet: %v", boards.DefaultBoard(), err)
	}

	sessions := session.NewManager()

	return &services{
		game:     service.NewGameService(sessions, boards),
		sessions: sessions,
		boards:   boards,
	}, nil
}

// sessionCleanupRoutine periodically removes sessions that have not been accessed
// within ttl.
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	interval := ttl / 24
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			manager.CleanupExpiredSessions(ttl)
		}
	}
}

// runTCPServer serves the line protocol until ctx is cancelled
func runTCPServer(ctx context.Context, gameService service.GameService, onResult tcp.ResultFunc) {
	srv, err := tcp.NewServer(gameService, *proto, *port, "")
	if err != nil {
		log.Fatalf("Failed to create TCP server: %v", err)
	}
	srv.OnResult = onResult

	if err := srv.ListenAndServe(ctx); err != nil {
		log.Fatalf("TCP server failed: %v", err)
	}
	log.Info("TCP server stopped")
}

// mcpHandler serves MCP JSON-RPC messages over HTTP POST
func mcpHandler(mcpServer *server.MCPServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpServer.HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	}
}

// newHTTPHandler combines the REST API, WebSocket hub and /mcp endpoint
func newHTTPHandler(svc *services, hub *websocket.Hub, baseURL string) http.Handler {
	apiServer := api.NewServer(svc.game, hub)
	apiServer.SetBoardStore(svc.boards)

	mcpClient := mcp.NewClient(baseURL)

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", mcpHandler(mcpClient.GetMCPServer()))
	return mainRouter
}

// runHTTPServer starts the HTTP server with REST API, WebSocket hub, and an /mcp proxy endpoint.
// The TCP listener runs alongside it and its games are visible to WebSocket watchers.
// If ngrok is enabled (via flag or environment), it also provisions a public tunnel.
func runHTTPServer(ctx context.Context, svc *services) {
	hub := websocket.NewHub(svc.game.Execute)
	go hub.Run(ctx)

	addr := net.JoinHostPort(*host, strconv.Itoa(*httpPort))
	handler := newHTTPHandler(svc, hub, "http://"+addr)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Infof("HTTP server listening on %s", addr)
		log.Infof("REST API: http://%s/api", addr)
		log.Infof("WebSocket: ws://%s/ws?session=<session_id>", addr)
		log.Infof("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	if *port > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runTCPServer(ctx, svc.game, hub.BroadcastResult)
		}()
	}

	if ngrokShouldRun() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(ctx, handler)
		}()
	}

	<-ctx.Done()
	log.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Errorf("HTTP server shutdown error: %v", err)
	}

	wg.Wait()
	log.Info("Server stopped")
}

// ngrokShouldRun reports whether the tunnel is enabled by flag or NGROK_ENABLED
func ngrokShouldRun() bool {
	if *ngrokEnabled {
		return true
	}
	enabled := os.Getenv("NGROK_ENABLED")
	return enabled == "true" || enabled == "1"
}

// ngrokAuthToken resolves the auth token from the flag or environment
func ngrokAuthToken() string {
	if *ngrokAuth != "" {
		return *ngrokAuth
	}
	if token := os.Getenv("NGROK_AUTHTOKEN"); token != "" {
		return token
	}
	return os.Getenv("NGROK_AUTH_TOKEN")
}

// runNgrokTunnel exposes handler on a public ngrok endpoint until ctx is done
func runNgrokTunnel(ctx context.Context, handler http.Handler) {
	authToken := ngrokAuthToken()
	if authToken == "" {
		log.Warn("Ngrok enabled but no auth token provided (use -ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN env var)")
		return
	}

	log.Info("Starting ngrok tunnel...")

	domain := *ngrokDomain
	if domain == "" {
		domain = os.Getenv("NGROK_DOMAIN")
	}

	var tunnel ngrokConfig.Tunnel
	if domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
		log.Infof("Using custom ngrok domain: %s", domain)
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(authToken))
	if err != nil {
		log.Errorf("Failed to start ngrok tunnel: %v", err)
		return
	}

	ngrokURL := tun.URL()
	log.Infof("Ngrok tunnel established: %s", ngrokURL)
	log.Infof("  REST API (ngrok): %s/api", ngrokURL)
	log.Infof("  WebSocket (ngrok): %s/ws?session=<session_id>", ngrokURL)
	log.Infof("  MCP endpoint (ngrok): %s/mcp", ngrokURL)

	go func() {
		<-ctx.Done()
		if err := tun.Close(); err != nil {
			log.Errorf("Failed to close ngrok tunnel: %v", err)
		}
	}()

	if err := http.Serve(tun, handler); err != nil && !errors.Is(err, http.ErrServerClosed) && ctx.Err() == nil {
		log.Errorf("Ngrok server error: %v", err)
	}
	log.Info("Ngrok tunnel closed")
}

// runStdioMCPWithInternalServer runs an MCP stdio server.
// It tries to reuse an external API at the configured HTTP address; if unavailable, it
// starts a minimal internal HTTP API bound to a random loopback port and targets that.
func runStdioMCPWithInternalServer(svc *services) {
	externalURL := "http://" + net.JoinHostPort(*host, strconv.Itoa(*httpPort))
	baseURL := externalURL

	log.Infof("Checking for external API server at %s...", externalURL)

	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(externalURL + "/health")
	if err == nil && resp.StatusCode < 500 {
		resp.Body.Close()
		log.Infof("External API server found at %s, using it for MCP", externalURL)
	} else {
		log.Info("No external API server found, starting internal HTTP server")

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			log.Fatalf("Failed to get available port: %v", err)
		}
		baseURL = "http://" + listener.Addr().String()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		hub := websocket.NewHub(svc.game.Execute)
		go hub.Run(ctx)

		apiServer := api.NewServer(svc.game, hub)
		httpServer := &http.Server{Handler: apiServer}

		go func() {
			if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Errorf("Internal HTTP server error: %v", err)
			}
		}()

		log.Infof("Internal HTTP server on %s for MCP stdio", listener.Addr())
	}

	mcpClient := mcp.NewClient(baseURL)

	log.Info("MCP stdio server ready")
	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		log.Fatalf("MCP stdio server error: %v", err)
	}
}
