// Package service provides the business logic layer for the Maze Escape server.
//
// The service package implements:
//   - Multi-session game management
//   - Board selection per session
//   - Command dispatch to the session's engine
//   - Session lifecycle management
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// BoardManager resolves board names to board sources.
//
// Architecture:
//
// The service layer sits between the transports (TCP/HTTP/WebSocket/MCP) and
// the game engine. Each session owns one engine and a mutex; every command
// for a session runs under that mutex, so transports may call in from any
// goroutine.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	boardMgr, _ := config.NewManager("input", engine.DefaultBoardPolicy)
//	gameService := service.NewGameService(sessionMgr, boardMgr)
//
//	info, err := gameService.CreateSession(ctx, "in")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.Execute(ctx, info.ID, "start")
//	fmt.Println(result.Response) // possible moves: right
//
// A command that ends the session (exit) removes it from the session manager.
package service
