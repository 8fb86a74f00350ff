// Package tcp implements the Maze Escape line protocol over TCP.
//
// A client sends one command per record; records end with '\n' or NUL. The
// server answers every record with one reply terminated by a single NUL
// byte. Blank records are ignored.
//
//	client: start\x00
//	server: possible moves: right\x00
//
// The server plays one game per connection and serves connections one at a
// time, in accept order. A connection gets its own session, removed when the
// client disconnects or sends exit. exit is answered with an empty reply
// before the server closes the connection.
//
// Usage:
//
//	srv, err := tcp.NewServer(gameService, "v4", 51511, "in")
//	if err != nil {
//		log.Fatal(err)
//	}
//	go srv.ListenAndServe(ctx)
//
//	c, err := tcp.Dial(ctx, "v4", "127.0.0.1:51511")
//	reply, err := c.Send("start") // "possible moves: right"
package tcp
