package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/amsa/internal/journal"
	"github.com/pdiddy/amsa/internal/prompt"
)

// Exit codes reported by amsa.
const (
	ExitSuccess          = 0
	ExitError            = 1 // Runtime failure, or a usage error (bad arguments, unknown command)
	ExitEmptyQueue       = 2 // answer on a journal with no questions
	ExitInvalidSelection = 3 // Selection was not an integer or out of range
	ExitValidation       = 4 // Question or answer text was blank
	ExitEndOfInput       = 5 // Input closed before a reply was read
)

// usageError reports bad invocation. main prints the command's usage after it.
type usageError struct {
	cmd *cobra.Command
	msg string
}

func (e *usageError) Error() string { return e.msg }

// exactArgs requires exactly n positional arguments, reporting a usageError otherwise.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return &usageError{cmd: cmd, msg: fmt.Sprintf("%s expects %d argument(s), got %d", cmd.Name(), n, len(args))}
		}
		return nil
	}
}

// minArgs requires at least n positional arguments, reporting a usageError otherwise.
func minArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return &usageError{cmd: cmd, msg: fmt.Sprintf("%s expects at least %d argument(s), got %d", cmd.Name(), n, len(args))}
		}
		return nil
	}
}

func exitCode(err error) int {
	var selErr *journal.SelectionError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, journal.ErrEmptyQueue):
		return ExitEmptyQueue
	case errors.As(err, &selErr), errors.Is(err, journal.ErrInvalidSelection):
		return ExitInvalidSelection
	case errors.Is(err, journal.ErrValidation):
		return ExitValidation
	case errors.Is(err, prompt.ErrEndOfInput):
		return ExitEndOfInput
	default:
		return ExitError
	}
}

// reportError writes the operator-facing diagnostic for err to w.
func reportError(w io.Writer, err error) {
	var usageErr *usageError
	switch {
	case errors.As(err, &usageErr):
		fmt.Fprintf(w, "%s\n\n", usageErr.msg)
		fmt.Fprint(w, usageErr.cmd.UsageString())
	case errors.Is(err, journal.ErrEmptyQueue):
		fmt.Fprintln(w, "No questions yet")
	default:
		fmt.Fprintln(w, "Error:", err)
	}
}
