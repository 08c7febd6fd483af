// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/amsa/internal/index"
	"github.com/pdiddy/amsa/internal/journal"
)

var searchCmd = &cobra.Command{
	Use:   "search your_amsa.json QUERY...",
	Short: "Search questions and answers",
	Long: `Search refreshes the SQLite index from the journal and prints questions
and answers containing the query text, newest first.`,
	Args: minArgs(2),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Int("limit", 0, "maximum results (0 = use index.max_results)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, log := setup(cmd)
	defer log.Sync()

	if cfg.Index.Disabled {
		return fmt.Errorf("search index is disabled")
	}

	journalPath := args[0]
	doc := journal.Load(journalPath, log)

	ic, err := indexConfig(cfg, journalPath)
	if err != nil {
		return err
	}
	store, err := index.Open(ic)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Sync(cmd.Context(), doc); err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")
	hits, err := store.Search(cmd.Context(), strings.Join(args[1:], " "), limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(hits)
	}

	stats, err := store.Stats(cmd.Context())
	if err != nil {
		return err
	}
	return formatHits(cmd.OutOrStdout(), hits, stats, cfg.Workflow.DateFormat)
}

const questionColumn = 30

func formatHits(w io.Writer, hits []index.Hit, stats index.Stats, dateFormat string) error {
	if len(hits) == 0 {
		fmt.Fprintf(w, "No results found. (%d questions, %d answers indexed)\n", stats.Questions, stats.Answers)
		return nil
	}

	fmt.Fprintf(w, "%-8s  %-16s  %-30s  %s\n", "Kind", "Date", "Question", "Text")
	fmt.Fprintln(w, strings.Repeat("-", 90))

	for _, h := range hits {
		fmt.Fprintf(w, "%-8s  %-16s  %-30s  %s\n",
			h.Kind, time.UnixMilli(h.Date).Format(dateFormat), truncate(h.Question, questionColumn), h.Text)
	}

	fmt.Fprintf(w, "\n%d results (%d questions, %d answers indexed, %d unanswered)\n",
		len(hits), stats.Questions, stats.Answers, stats.Unanswered)
	return nil
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
