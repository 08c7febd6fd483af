// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/amsa/internal/journal"
	"github.com/pdiddy/amsa/internal/pagegen"
)

var renderCmd = &cobra.Command{
	Use:   "render your_amsa.json",
	Short: "Regenerate the journal page without changing the journal",
	Args:  exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log := setup(cmd)
		defer log.Sync()

		doc := journal.Load(args[0], log)
		path, err := pagegen.Render(doc, args[0], cfg.Page, time.Now())
		if err != nil {
			return err
		}
		if path == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "Page generation is disabled (page.format: none)")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
}
