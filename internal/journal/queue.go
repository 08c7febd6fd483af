// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package journal

import (
	"slices"
	"strconv"
	"strings"

	"github.com/pdiddy/amsa/pkg/types"
)

// Queue orders a Document's questions for answering. Selecting a question
// withdraws it; requeueing appends it to the tail, so the question answered
// longest ago is always at the front.
type Queue struct {
	doc *types.Document
}

// NewQueue returns a Queue operating in place on doc.
func NewQueue(doc *types.Document) *Queue {
	normalize(doc)
	return &Queue{doc: doc}
}

// Len returns the number of questions currently queued.
func (q *Queue) Len() int { return len(q.doc.Questions) }

// Enqueue creates a question dated now with no answers and appends it to the
// tail. Blank descriptions are rejected with ErrValidation.
func (q *Queue) Enqueue(description string, now int64) (types.Question, error) {
	question := types.Question{
		Date:        now,
		Description: strings.TrimSpace(description),
		Answers:     []types.Answer{},
	}
	if err := Validate(&question); err != nil {
		return types.Question{}, err
	}
	q.doc.Questions = append(q.doc.Questions, question)
	return question, nil
}

// List returns a snapshot of the queue in order for presenting choices.
func (q *Queue) List() []types.Choice {
	choices := make([]types.Choice, len(q.doc.Questions))
	for i, question := range q.doc.Questions {
		choices[i] = types.Choice{
			Index:       i,
			Description: question.Description,
			Answers:     len(question.Answers),
		}
	}
	return choices
}

// Select withdraws the question at index. An index outside [0, Len) returns
// a *SelectionError and leaves the queue untouched.
func (q *Queue) Select(index int) (types.Question, error) {
	if index < 0 || index >= len(q.doc.Questions) {
		return types.Question{}, &SelectionError{Input: strconv.Itoa(index), Len: len(q.doc.Questions)}
	}
	question := q.doc.Questions[index]
	q.doc.Questions = slices.Delete(q.doc.Questions, index, index+1)
	return question, nil
}

// SelectLast withdraws the tail question, which right after Enqueue is the
// question just asked.
func (q *Queue) SelectLast() (types.Question, error) {
	if len(q.doc.Questions) == 0 {
		return types.Question{}, ErrEmptyQueue
	}
	return q.Select(len(q.doc.Questions) - 1)
}

// Requeue appends a withdrawn question to the tail.
func (q *Queue) Requeue(question types.Question) {
	q.doc.Questions = append(q.doc.Questions, question)
}

// Restore puts a withdrawn question back at index, undoing Select. Indexes
// past the tail append.
func (q *Queue) Restore(index int, question types.Question) {
	index = max(0, min(index, len(q.doc.Questions)))
	q.doc.Questions = slices.Insert(q.doc.Questions, index, question)
}

// NewAnswer builds an answer dated now from operator text. Blank text is
// rejected with ErrValidation.
func NewAnswer(description string, now int64) (types.Answer, error) {
	answer := types.Answer{
		Date:        now,
		Description: strings.TrimSpace(description),
	}
	if err := Validate(&answer); err != nil {
		return types.Answer{}, err
	}
	return answer, nil
}
