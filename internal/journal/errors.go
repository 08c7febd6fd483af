// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package journal

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyQueue reports an answer attempt on a journal with no questions.
	ErrEmptyQueue = errors.New("no questions yet")

	// ErrInvalidSelection reports a non-integer or out-of-range queue index.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrValidation reports question or answer text that cannot be stored.
	ErrValidation = errors.New("validation failed")
)

// SelectionError names the operator input that did not select a question.
type SelectionError struct {
	// Input is the offending value as the operator typed it.
	Input string

	// Len is the queue length at the time of selection.
	Len int
}

func (e *SelectionError) Error() string {
	if e.Len == 0 {
		return fmt.Sprintf("%q is not a valid index", e.Input)
	}
	return fmt.Sprintf("%q is not a valid index (expected 0-%d)", e.Input, e.Len-1)
}

func (e *SelectionError) Unwrap() error { return ErrInvalidSelection }

// LoadError describes why a journal file could not be used. Load reports it
// as a warning and falls back to an empty document.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading journal %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
