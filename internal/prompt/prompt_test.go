// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prompt

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "single line", input: "Life?\n", want: []string{"Life?"}},
		{name: "trims whitespace", input: "  42 \t\r\n", want: []string{"42"}},
		{name: "two lines in order", input: "first\nsecond\n", want: []string{"first", "second"}},
		{name: "last line without newline", input: "one\ntwo", want: []string{"one", "two"}},
		{name: "blank line is a line", input: "\n", want: []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			ch := New(strings.NewReader(tt.input), &out)
			for _, want := range tt.want {
				got, err := ch.ReadLine("?> ")
				require.NoError(t, err)
				assert.Equal(t, want, got)
			}
			assert.Equal(t, strings.Repeat("?> ", len(tt.want)), out.String())
		})
	}
}

func TestReadLineEndOfInput(t *testing.T) {
	var out bytes.Buffer
	ch := New(strings.NewReader("only\n"), &out)

	_, err := ch.ReadLine("?> ")
	require.NoError(t, err)

	_, err = ch.ReadLine("!> ")
	assert.ErrorIs(t, err, ErrEndOfInput)
	assert.Equal(t, "?> !> ", out.String(), "prompt is written before waiting")
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestReadLineReadError(t *testing.T) {
	ch := New(failingReader{}, io.Discard)
	_, err := ch.ReadLine("?> ")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEndOfInput)
	assert.Contains(t, err.Error(), "boom")
}

// reentrantReader issues a nested ReadLine from inside a read, the way a
// misbehaving caller would while the first call is still waiting.
type reentrantReader struct {
	ch     *Channel
	nested error
}

func (r *reentrantReader) Read(p []byte) (int, error) {
	_, r.nested = r.ch.ReadLine("nested> ")
	return copy(p, "outer\n"), nil
}

func TestReadLineRejectsConcurrentCall(t *testing.T) {
	r := &reentrantReader{}
	ch := New(r, io.Discard)
	r.ch = ch

	got, err := ch.ReadLine("?> ")
	require.NoError(t, err)
	assert.Equal(t, "outer", got)
	assert.ErrorIs(t, r.nested, ErrBusy)

	// The busy flag clears once the outstanding call returns.
	got, err = ch.ReadLine("?> ")
	require.NoError(t, err)
	assert.Equal(t, "outer", got)
}
