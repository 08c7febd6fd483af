// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/amsa/internal/index"
	"github.com/pdiddy/amsa/internal/journal"
	"github.com/pdiddy/amsa/internal/pagegen"
	"github.com/pdiddy/amsa/internal/prompt"
	"github.com/pdiddy/amsa/internal/workflow"
	"github.com/pdiddy/amsa/pkg/types"
)

var askCmd = &cobra.Command{
	Use:   "ask your_amsa.json",
	Short: "Ask a new question",
	Long: `Ask reads a new question, adds it to the journal, and prompts for its
first answer right away. The journal is created if it does not exist.`,
	Args: exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWorkflow(cmd, args[0], (*workflow.Controller).Ask)
	},
}

var answerCmd = &cobra.Command{
	Use:   "answer your_amsa.json",
	Short: "Answer a question",
	Long: `Answer lists the questions, least recently answered first, reads the
index of the one to answer, and records the answer. The answered question
moves to the end of the list.`,
	Args: exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWorkflow(cmd, args[0], func(c *workflow.Controller) error {
			return c.Answer(false)
		})
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(answerCmd)
}

// runWorkflow loads the journal, runs fn against it, and on success saves the
// journal, regenerates the page, and refreshes the search index. Nothing is
// written when fn fails.
func runWorkflow(cmd *cobra.Command, journalPath string, fn func(*workflow.Controller) error) error {
	cfg, log := setup(cmd)
	defer log.Sync()

	doc := journal.Load(journalPath, log)
	ctrl := workflow.New(doc, workflow.Options{
		Prompt: prompt.New(cmd.InOrStdin(), cmd.OutOrStdout()),
		Out:    cmd.OutOrStdout(),
		Log:    log,
		Config: cfg.Workflow,
	})

	if err := fn(ctrl); err != nil {
		return err
	}

	if err := journal.Save(journalPath, doc); err != nil {
		return fmt.Errorf("saving journal: %w", err)
	}
	log.Debug("journal saved", zap.String("path", journalPath))

	return publish(cmd.Context(), journalPath, doc, cfg, log)
}

// publish regenerates the page and the search index for a saved journal.
// Index failures are logged; the journal itself is already safe on disk.
func publish(ctx context.Context, journalPath string, doc *types.Document, cfg types.Config, log *zap.Logger) error {
	page, err := pagegen.Render(doc, journalPath, cfg.Page, time.Now())
	if err != nil {
		return fmt.Errorf("generating page: %w", err)
	}
	if page != "" {
		log.Info("page generated", zap.String("path", page))
	}

	if cfg.Index.Disabled {
		return nil
	}
	ic, err := indexConfig(cfg, journalPath)
	if err != nil {
		log.Warn("search index unavailable", zap.Error(err))
		return nil
	}
	store, err := index.Open(ic)
	if err != nil {
		log.Warn("search index unavailable", zap.Error(err))
		return nil
	}
	defer store.Close()
	if err := store.Sync(ctx, doc); err != nil {
		log.Warn("search index not updated", zap.Error(err))
	}
	return nil
}

func indexConfig(cfg types.Config, journalPath string) (types.IndexConfig, error) {
	ic := cfg.Index
	if ic.Path == "" {
		ic.Path = index.DefaultPath(journalPath)
	}
	if journal.SamePath(ic.Path, journalPath) {
		return ic, fmt.Errorf("index path %s is the journal itself", ic.Path)
	}
	return ic, nil
}
