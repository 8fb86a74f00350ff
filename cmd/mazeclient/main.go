// Command mazeclient is the terminal client for the Maze Escape line
// protocol. It checks commands locally before sending them, so a game must
// be started first and a won game only accepts reset or exit.
//
// Usage:
//
//	mazeclient [server IP] [server port]
//	mazeclient solve [server IP] [server port]
package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/wricardo/maze-escape/game/config"
	"github.com/wricardo/maze-escape/transport/tcp"
)

func main() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	prompt := term.IsTerminal(int(os.Stdin.Fd()))
	app := newApp(config.LoadEnv(), os.Stdin, os.Stdout, prompt)
	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(env config.Env, in io.Reader, out io.Writer, prompt bool) *cli.Command {
	return &cli.Command{
		Name:      "mazeclient",
		Usage:     "play Maze Escape against a running server",
		ArgsUsage: "[server IP] [server port]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "host",
				Value:   "127.0.0.1",
				Usage:   "server address",
				Sources: cli.EnvVars("MAZE_SERVER"),
			},
			&cli.IntFlag{
				Name:  "port",
				Value: env.TCPPort,
				Usage: "server port",
			},
			&cli.StringFlag{
				Name:  "proto",
				Usage: "force the address family (v4 or v6)",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: 10 * time.Second,
				Usage: "reply timeout",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Value:   env.Debug,
				Usage:   "enable debug logging",
				Sources: cli.EnvVars("MAZE_DEBUG"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("debug") {
				log.SetLevel(log.DebugLevel)
			}
			return ctx, nil
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			client, err := connect(ctx, cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			return Play(in, out, client, prompt)
		},
		Commands: []*cli.Command{
			{
				Name:      "solve",
				Usage:     "start a game and walk the hints to the exit",
				ArgsUsage: "[server IP] [server port]",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "max-moves",
						Value: 1000,
						Usage: "give up after this many moves",
					},
					&cli.DurationFlag{
						Name:  "delay",
						Usage: "pause between moves",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					client, err := connect(ctx, cmd)
					if err != nil {
						return err
					}
					defer client.Close()

					solver := NewSolver(client, cmd.Int("max-moves"))
					solver.Delay = cmd.Duration("delay")

					moves, revealed, err := solver.Solve()
					if err != nil {
						return fmt.Errorf("after %d moves: %w", moves, err)
					}
					fmt.Fprintf(out, "escaped in %d moves\n%s\n", moves, revealed)

					_, err = client.Send("exit")
					return err
				},
			},
		},
	}
}

// connect dials the server named by the flags. Positional arguments
// "<server IP> <server port>" take precedence over flags.
func connect(ctx context.Context, cmd *cli.Command) (*tcp.Client, error) {
	host, port, err := serverAddress(cmd.Args().Slice(), cmd.String("host"), cmd.Int("port"))
	if err != nil {
		return nil, cli.Exit(err.Error(), 1)
	}

	address := net.JoinHostPort(host, strconv.Itoa(port))
	client, err := tcp.Dial(ctx, cmd.String("proto"), address)
	if err != nil {
		return nil, err
	}
	client.Timeout = cmd.Duration("timeout")

	log.WithField("server", address).Debug("connected")
	return client, nil
}

func serverAddress(args []string, host string, port int) (string, int, error) {
	switch len(args) {
	case 0:
	case 1:
		host = args[0]
	case 2:
		host = args[0]
		p, err := strconv.Atoi(args[1])
		if err != nil {
			return "", 0, fmt.Errorf("invalid port: %s", args[1])
		}
		port = p
	default:
		return "", 0, fmt.Errorf("usage: mazeclient <server IP> <server port>")
	}

	if host == "" {
		return "", 0, fmt.Errorf("missing server address")
	}
	if port <= 0 || port > 65535 {
		return "", 0, fmt.Errorf("invalid port: %d", port)
	}
	return host, port, nil
}
