package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Sender sends one command and returns the server's reply
type Sender interface {
	Send(command string) (string, error)
}

// Play reads commands from in, one per line, and prints the replies to out
// until the user sends exit or in runs dry.
func Play(in io.Reader, out io.Writer, sender Sender, prompt bool) error {
	var gate Gate
	scanner := bufio.NewScanner(in)

	for {
		if prompt {
			fmt.Fprint(out, "> ")
		}
		if !scanner.Scan() {
			return scanner.Err()
		}

		cmd := strings.TrimSpace(scanner.Text())
		if cmd == "" {
			continue
		}

		local, forward := gate.Check(cmd)
		if !forward {
			if local != "" {
				fmt.Fprintln(out, local)
			}
			continue
		}

		reply, err := sender.Send(cmd)
		if err != nil {
			return fmt.Errorf("%s: %w", cmd, err)
		}
		fmt.Fprintf(out, "\n%s\n", reply)

		if gate.Observe(cmd, reply) {
			return nil
		}
	}
}
