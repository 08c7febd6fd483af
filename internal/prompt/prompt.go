// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompt reads one line of operator input at a time.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrEndOfInput reports that the input closed before a line arrived.
	ErrEndOfInput = errors.New("end of input")

	// ErrBusy reports a ReadLine call made while another is outstanding.
	ErrBusy = errors.New("prompt already waiting for input")
)

// Channel writes prompts to out and reads replies from in. It serves one
// ReadLine at a time.
type Channel struct {
	in   *bufio.Reader
	out  io.Writer
	busy bool
}

// New returns a Channel reading from in and prompting on out.
func New(in io.Reader, out io.Writer) *Channel {
	return &Channel{in: bufio.NewReader(in), out: out}
}

// ReadLine writes text, waits for one line, and returns it trimmed of
// surrounding whitespace. A final line without a newline is still returned;
// ErrEndOfInput is returned only when no characters arrived.
func (c *Channel) ReadLine(text string) (string, error) {
	if c.busy {
		return "", ErrBusy
	}
	c.busy = true
	defer func() { c.busy = false }()

	if _, err := io.WriteString(c.out, text); err != nil {
		return "", fmt.Errorf("writing prompt: %w", err)
	}

	line, err := c.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("reading input: %w", err)
		}
		if line == "" {
			return "", ErrEndOfInput
		}
	}
	return strings.TrimSpace(line), nil
}
