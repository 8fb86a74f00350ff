// Package websocket provides the WebSocket transport for Maze Escape.
//
// Browsers and other watchers attach to a session with /ws?session=<id>.
// Every command result for that session, whichever transport produced it, is
// pushed to all attached clients as JSON:
//
//	{"session_id":"abc1","event":"command_result","result":{...}}
//
// A text frame sent by a client is treated as a protocol command ("start",
// "right", "map", ...). Its result is broadcast to every watcher of the
// session, while an error goes back to the sender only:
//
//	{"session_id":"abc1","event":"error","error":"session not found: abc1"}
//
// When a session ends (exit), clients receive a session_ended event and are
// disconnected.
//
// Usage:
//
//	hub := websocket.NewHub(gameService.Execute)
//	go hub.Run(ctx)
//
//	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session"))
//	})
//
// The hub goroutine owns registration; broadcasts go through a buffered
// channel so callers never block on slow clients.
package websocket
