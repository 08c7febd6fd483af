// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Answer is one dated reply to a Question. Date and Description never change
// once the answer is recorded.
type Answer struct {
	// Date is the creation time in milliseconds since the Unix epoch.
	Date int64 `json:"date" yaml:"date" validate:"gt=0"`

	// Description is the answer body.
	Description string `json:"description" yaml:"description" validate:"required"`
}

// Time returns Date as a time.Time.
func (a Answer) Time() time.Time { return time.UnixMilli(a.Date) }

// Question is a journal question with its answers in chronological
// (append) order.
type Question struct {
	// Date is the creation time in milliseconds since the Unix epoch.
	Date int64 `json:"date" yaml:"date" validate:"gt=0"`

	// Description is the question body.
	Description string `json:"description" yaml:"description" validate:"required"`

	// Answers lists replies oldest first. Never nil after load or creation so
	// it serializes as [] rather than null.
	Answers []Answer `json:"answers" yaml:"answers" validate:"dive"`
}

// Time returns Date as a time.Time.
func (q Question) Time() time.Time { return time.UnixMilli(q.Date) }

// LastAnswered returns the date of the newest answer, or zero when the
// question has never been answered.
func (q Question) LastAnswered() int64 {
	if len(q.Answers) == 0 {
		return 0
	}
	return q.Answers[len(q.Answers)-1].Date
}

// Document is the whole persisted journal. The order of Questions is the
// answering queue: least recently answered first. It is not sorted by Date.
type Document struct {
	Questions []Question `json:"questions" yaml:"questions" validate:"dive"`
}

// NewDocument returns an empty journal.
func NewDocument() *Document {
	return &Document{Questions: []Question{}}
}

// AnswerCount returns the total number of answers across all questions.
func (d *Document) AnswerCount() int {
	n := 0
	for _, q := range d.Questions {
		n += len(q.Answers)
	}
	return n
}

// Choice pairs a question with its queue position for selection prompts.
type Choice struct {
	Index       int    `json:"index" yaml:"index"`
	Description string `json:"description" yaml:"description"`
	Answers     int    `json:"answers" yaml:"answers"`
}
