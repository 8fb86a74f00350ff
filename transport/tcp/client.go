package tcp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"time"
)

// ErrConnectionClosed is returned when the server hangs up before replying
var ErrConnectionClosed = errors.New("connection closed by server")

// Client speaks the line protocol: one command out, one NUL-terminated reply in
type Client struct {
	conn    net.Conn
	reader  *bufio.Reader
	Timeout time.Duration
}

// Dial connects to a server at host:port. proto selects the address family
// ("v4" or "v6"); an empty proto lets the resolver choose.
func Dial(ctx context.Context, proto, address string) (*Client, error) {
	network := "tcp"
	if proto != "" {
		var err error
		if network, err = Network(proto); err != nil {
			return nil, err
		}
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, network, address)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	return &Client{
		conn:    conn,
		reader:  bufio.NewReaderSize(conn, MaxRecordSize),
		Timeout: 10 * time.Second,
	}, nil
}

// Send writes a command and waits for its reply. The reply is returned
// without the terminator; the exit command yields an empty reply.
func (c *Client) Send(command string) (string, error) {
	command = strings.TrimSpace(command)
	if command == "" || len(command) >= MaxRecordSize {
		return "", fmt.Errorf("invalid command %q", command)
	}

	if c.Timeout > 0 {
		c.conn.SetDeadline(time.Now().Add(c.Timeout))
	}

	if _, err := c.conn.Write(append([]byte(command), Terminator)); err != nil {
		return "", fmt.Errorf("send: %w", err)
	}

	reply, err := c.reader.ReadString(Terminator)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", ErrConnectionClosed
		}
		return "", fmt.Errorf("receive: %w", err)
	}
	return strings.TrimSuffix(reply, string(Terminator)), nil
}

// RemoteAddr returns the server address
func (c *Client) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

// Close closes the connection
func (c *Client) Close() error {
	return c.conn.Close()
}
