// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/amsa/pkg/types"
)

func descriptions(doc *types.Document) []string {
	out := make([]string, len(doc.Questions))
	for i, q := range doc.Questions {
		out[i] = q.Description
	}
	return out
}

func queueOf(t *testing.T, descs ...string) (*Queue, *types.Document) {
	t.Helper()
	doc := types.NewDocument()
	q := NewQueue(doc)
	for i, d := range descs {
		_, err := q.Enqueue(d, int64(100+i))
		require.NoError(t, err)
	}
	return q, doc
}

func TestEnqueue(t *testing.T) {
	q, doc := queueOf(t, "A")

	got, err := q.Enqueue("  Life?\n", 200)
	require.NoError(t, err)

	assert.Equal(t, "Life?", got.Description)
	assert.Equal(t, int64(200), got.Date)
	assert.Empty(t, got.Answers)
	assert.NotNil(t, got.Answers)
	assert.Equal(t, []string{"A", "Life?"}, descriptions(doc))
	assert.Equal(t, 2, q.Len())
}

func TestEnqueueRejectsBlank(t *testing.T) {
	for _, desc := range []string{"", "   ", "\t\n"} {
		q, doc := queueOf(t, "A")
		_, err := q.Enqueue(desc, 200)
		require.ErrorIs(t, err, ErrValidation)
		assert.Contains(t, err.Error(), "description is required")
		assert.Equal(t, []string{"A"}, descriptions(doc))
	}
}

func TestList(t *testing.T) {
	q, doc := queueOf(t, "A", "B", "C")
	doc.Questions[1].Answers = append(doc.Questions[1].Answers, types.Answer{Date: 1, Description: "x"})

	want := []types.Choice{
		{Index: 0, Description: "A", Answers: 0},
		{Index: 1, Description: "B", Answers: 1},
		{Index: 2, Description: "C", Answers: 0},
	}
	assert.Equal(t, want, q.List())
	assert.Equal(t, []string{"A", "B", "C"}, descriptions(doc), "List must not mutate")
}

func TestListEmpty(t *testing.T) {
	q, _ := queueOf(t)
	assert.Empty(t, q.List())
}

func TestSelectAndRequeueMovesToTail(t *testing.T) {
	tests := []struct {
		index int
		want  []string
	}{
		{index: 0, want: []string{"B", "C", "A"}},
		{index: 1, want: []string{"A", "C", "B"}},
		{index: 2, want: []string{"A", "B", "C"}},
	}

	for _, tt := range tests {
		q, doc := queueOf(t, "A", "B", "C")

		selected, err := q.Select(tt.index)
		require.NoError(t, err)
		assert.Equal(t, 2, q.Len(), "selection withdraws the question")

		q.Requeue(selected)
		assert.Equal(t, tt.want, descriptions(doc))
		assert.Equal(t, 3, q.Len())
	}
}

func TestSelectOutOfRange(t *testing.T) {
	for _, index := range []int{-1, 3, 100} {
		q, doc := queueOf(t, "A", "B", "C")
		before := descriptions(doc)

		_, err := q.Select(index)
		require.ErrorIs(t, err, ErrInvalidSelection)

		var selErr *SelectionError
		require.ErrorAs(t, err, &selErr)
		assert.Equal(t, 3, selErr.Len)
		assert.Contains(t, err.Error(), selErr.Input)
		assert.Equal(t, before, descriptions(doc))
	}
}

func TestSelectLast(t *testing.T) {
	q, doc := queueOf(t, "A", "B")
	got, err := q.SelectLast()
	require.NoError(t, err)
	assert.Equal(t, "B", got.Description)
	assert.Equal(t, []string{"A"}, descriptions(doc))

	empty, _ := queueOf(t)
	_, err = empty.SelectLast()
	assert.ErrorIs(t, err, ErrEmptyQueue)
}

func TestSelectedAnswersStayWithQuestion(t *testing.T) {
	q, doc := queueOf(t, "A", "B", "C")

	selected, err := q.Select(0)
	require.NoError(t, err)
	answer, err := NewAnswer("ans", 500)
	require.NoError(t, err)
	selected.Answers = append(selected.Answers, answer)
	q.Requeue(selected)

	require.Equal(t, []string{"B", "C", "A"}, descriptions(doc))
	assert.Empty(t, doc.Questions[0].Answers)
	assert.Empty(t, doc.Questions[1].Answers)
	assert.Equal(t, []types.Answer{{Date: 500, Description: "ans"}}, doc.Questions[2].Answers)
}

func TestRestore(t *testing.T) {
	q, doc := queueOf(t, "A", "B", "C")
	selected, err := q.Select(1)
	require.NoError(t, err)

	q.Restore(1, selected)
	assert.Equal(t, []string{"A", "B", "C"}, descriptions(doc))

	selected, err = q.Select(0)
	require.NoError(t, err)
	q.Restore(10, selected)
	assert.Equal(t, []string{"B", "C", "A"}, descriptions(doc))
}

func TestNewAnswer(t *testing.T) {
	got, err := NewAnswer(" 42 \n", 7)
	require.NoError(t, err)
	assert.Equal(t, types.Answer{Date: 7, Description: "42"}, got)

	_, err = NewAnswer("  ", 7)
	assert.ErrorIs(t, err, ErrValidation)
}
