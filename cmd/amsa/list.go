// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/amsa/internal/journal"
	"github.com/pdiddy/amsa/pkg/types"
)

var listCmd = &cobra.Command{
	Use:   "list your_amsa.json",
	Short: "Show the question queue without changing it",
	Long: `List prints the questions in answering order with their answer counts
and the date each was last answered. Use --yaml to dump the whole journal.`,
	Args: exactArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().Bool("yaml", false, "print the whole journal as YAML")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, log := setup(cmd)
	defer log.Sync()

	doc := journal.Load(args[0], log)

	asYAML, _ := cmd.Flags().GetBool("yaml")
	if asYAML {
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return enc.Close()
	}
	return formatQueue(cmd.OutOrStdout(), doc, cfg.Workflow.DateFormat)
}

func formatQueue(w io.Writer, doc *types.Document, dateFormat string) error {
	if len(doc.Questions) == 0 {
		fmt.Fprintln(w, "No questions yet.")
		return nil
	}

	fmt.Fprintf(w, "%-5s  %-7s  %-16s  %s\n", "Index", "Answers", "Last answered", "Question")
	fmt.Fprintln(w, strings.Repeat("-", 80))

	queue := journal.NewQueue(doc)
	for i, choice := range queue.List() {
		last := "never"
		if ms := doc.Questions[i].LastAnswered(); ms != 0 {
			last = time.UnixMilli(ms).Format(dateFormat)
		}
		fmt.Fprintf(w, "%-5d  %-7d  %-16s  %s\n", choice.Index, choice.Answers, last, choice.Description)
	}

	fmt.Fprintf(w, "\n%d questions, %d answers\n", len(doc.Questions), doc.AnswerCount())
	return nil
}
