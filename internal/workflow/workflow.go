// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package workflow runs the interactive ask and answer commands against an
// in-memory journal. It never touches the filesystem; the caller saves the
// document once a workflow returns without error.
package workflow

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/pdiddy/amsa/internal/journal"
	"github.com/pdiddy/amsa/pkg/types"
)

// Prompt texts shown to the operator.
const (
	PromptQuestion  = "?> "
	PromptAnswer    = "!> "
	PromptSelection = "Which to answer? [int] "
)

const defaultDateFormat = "2006-01-02 15:04"

// LineReader requests one trimmed line of operator input.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// Options configures a Controller. Zero values select defaults.
type Options struct {
	// Prompt supplies operator input. Required.
	Prompt LineReader

	// Out receives listings and question display. Defaults to io.Discard.
	Out io.Writer

	// Clock dates new questions and answers. Defaults to wall time.
	Clock *journal.Clock

	// Log receives debug diagnostics. Defaults to a no-op logger.
	Log *zap.Logger

	Config types.WorkflowConfig
}

// Controller sequences prompts and queue operations for one command.
type Controller struct {
	doc    *types.Document
	queue  *journal.Queue
	prompt LineReader
	out    io.Writer
	clock  *journal.Clock
	log    *zap.Logger

	dateFormat string
	indexStyle lipgloss.Style
	dateStyle  lipgloss.Style
}

// New returns a Controller that mutates doc in place.
func New(doc *types.Document, opts Options) *Controller {
	c := &Controller{
		doc:        doc,
		queue:      journal.NewQueue(doc),
		prompt:     opts.Prompt,
		out:        opts.Out,
		clock:      opts.Clock,
		log:        opts.Log,
		dateFormat: opts.Config.DateFormat,
	}
	if c.out == nil {
		c.out = io.Discard
	}
	if c.clock == nil {
		c.clock = journal.NewClock(nil)
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	if c.dateFormat == "" {
		c.dateFormat = defaultDateFormat
	}

	r := lipgloss.NewRenderer(c.out)
	c.indexStyle = r.NewStyle()
	c.dateStyle = r.NewStyle()
	if !opts.Config.NoColor {
		c.indexStyle = c.indexStyle.Foreground(lipgloss.Color("2"))
		c.dateStyle = c.dateStyle.Faint(true)
	}
	return c
}

// Document returns the journal the controller mutates.
func (c *Controller) Document() *types.Document { return c.doc }

// Ask reads a new question, appends it to the queue, and answers it at once.
func (c *Controller) Ask() error {
	text, err := c.prompt.ReadLine(PromptQuestion)
	if err != nil {
		return fmt.Errorf("reading question: %w", err)
	}

	question, err := c.queue.Enqueue(text, c.clock.Now())
	if err != nil {
		return err
	}
	c.log.Debug("question asked", zap.Int64("date", question.Date))

	return c.Answer(true)
}

// Answer records one answer. When immediate is set it answers the tail
// question without asking which; otherwise it lists the queue and reads an
// index. The answered question moves to the tail of the queue. On error the
// queue order and answers are left as they were.
func (c *Controller) Answer(immediate bool) error {
	if c.queue.Len() == 0 {
		return journal.ErrEmptyQueue
	}

	index := c.queue.Len() - 1
	if !immediate {
		c.printChoices()
		reply, err := c.prompt.ReadLine(PromptSelection)
		if err != nil {
			return fmt.Errorf("reading selection: %w", err)
		}
		index, err = strconv.Atoi(reply)
		if err != nil {
			return &journal.SelectionError{Input: reply, Len: c.queue.Len()}
		}
	}

	target, err := c.queue.Select(index)
	if err != nil {
		return err
	}

	c.printQuestion(target)

	text, err := c.prompt.ReadLine(PromptAnswer)
	if err != nil {
		c.queue.Restore(index, target)
		return fmt.Errorf("reading answer: %w", err)
	}
	answer, err := journal.NewAnswer(text, c.clock.Now())
	if err != nil {
		c.queue.Restore(index, target)
		return err
	}

	target.Answers = append(target.Answers, answer)
	c.queue.Requeue(target)
	c.log.Debug("question answered",
		zap.Int("from", index),
		zap.Int("answers", len(target.Answers)))
	return nil
}

func (c *Controller) printChoices() {
	var b strings.Builder
	b.WriteString("\n")
	for _, choice := range c.queue.List() {
		fmt.Fprintf(&b, "  %s %s\n", c.indexStyle.Render(strconv.Itoa(choice.Index)+"."), choice.Description)
	}
	b.WriteString("\n")
	io.WriteString(c.out, b.String())
}

func (c *Controller) printQuestion(q types.Question) {
	fmt.Fprintf(c.out, "\n  %s\n  %s\n\n",
		c.dateStyle.Render(q.Time().Format(c.dateFormat)), q.Description)
}
