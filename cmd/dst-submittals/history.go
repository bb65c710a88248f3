// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacobe603/dst-submittals-v2/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past generation runs",
	Long: `History lists recorded generation runs, newest first, with their output
location, page counts, and any warnings from assembly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := pipelineConfig()
		store, err := history.NewStore(cfg.History)
		if err != nil {
			return err
		}
		defer store.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		runs, err := store.List(limit)
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			data, err := json.MarshalIndent(runs, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		if len(runs) == 0 {
			fmt.Println(dimStyle.Render("no runs recorded"))
			return nil
		}

		for _, run := range runs {
			fmt.Printf("%s %s\n",
				tagStyle.Render(fmt.Sprintf("#%d", run.ID)),
				dimStyle.Render(run.StartedAt.Local().Format("2006-01-02 15:04:05")))
			fmt.Printf("  %s -> %s\n", run.DocsPath, run.OutputPath)
			fmt.Printf("  %s\n", dimStyle.Render(fmt.Sprintf(
				"%d pages, %d sections, %d documents (%d tagged, %d unclassified)",
				run.Pages, run.Groups, run.Documents, run.Tagged, run.Unclassified)))
			for _, warn := range run.Warnings {
				fmt.Printf("  %s %s/%s: %s\n",
					warnStyle.Render("warning:"), warn.Tag, warn.Name, warn.Reason)
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum runs to list (0 for all)")
	historyCmd.Flags().Bool("json", false, "print runs as JSON")

	rootCmd.AddCommand(historyCmd)
}
