// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jacobe603/dst-submittals-v2/internal/pipeline"
	"github.com/jacobe603/dst-submittals-v2/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate <docs-dir>",
	Short: "Run the full pipeline and assemble the submittal PDF",
	Long: `Generate runs extraction, conversion, pricing filtering, and assembly
over a directory of equipment documents, producing one submittal PDF
with a title page and bookmark per equipment unit.

Pass --structure-file to assemble from a reviewed structure written by
extract --output instead of re-extracting.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := pipelineConfig()
		if mode, _ := cmd.Flags().GetString("mode"); mode != "" {
			cfg.Extraction.Mode = types.ExtractionMode(mode)
		}
		if url, _ := cmd.Flags().GetString("gotenberg-url"); url != "" {
			cfg.Conversion.GotenbergURL = url
		}
		if n, _ := cmd.Flags().GetInt("concurrency"); n > 0 {
			cfg.Conversion.Concurrency = n
		}
		if timeout, _ := cmd.Flags().GetString("timeout"); timeout != "" {
			cfg.Conversion.Timeout = durationFlag(timeout, cfg.Conversion.Timeout)
		}
		if noFilter, _ := cmd.Flags().GetBool("no-pricing-filter"); noFilter {
			cfg.Assembly.FilterPricing = false
		}

		opts := pipeline.RunOptions{DocsPath: args[0]}
		opts.OutputPath, _ = cmd.Flags().GetString("output")
		opts.StructureFile, _ = cmd.Flags().GetString("structure-file")

		result, err := pipeline.Run(cmd.Context(), cfg, opts, os.Stderr)
		if err != nil {
			fmt.Fprintln(os.Stderr, errorStyle.Render("generation failed: "+err.Error()))
			return err
		}

		fmt.Println()
		renderStructure(os.Stdout, result.Structure)
		fmt.Printf("\n%s %s %s\n",
			successStyle.Render("Submittal ready:"),
			result.Assembly.OutputPath,
			dimStyle.Render(fmt.Sprintf("(%d pages, %d sections)",
				result.Assembly.Pages, result.Assembly.Groups)))
		for _, warn := range result.Assembly.Warnings {
			fmt.Printf("%s %s/%s: %s\n",
				warnStyle.Render("warning:"), warn.Tag, warn.Name, warn.Reason)
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().StringP("output", "o", "", "output PDF path (default: <output-dir>/submittal_<timestamp>.pdf)")
	generateCmd.Flags().String("structure-file", "", "assemble from an edited structure JSON instead of extracting")
	generateCmd.Flags().String("mode", "", "extraction mode: filename or content (default from config)")
	generateCmd.Flags().String("gotenberg-url", "", "Gotenberg base URL (default from config)")
	generateCmd.Flags().Int("concurrency", 0, "parallel document conversions (default from config)")
	generateCmd.Flags().String("timeout", "", "per-document conversion timeout, e.g. 90s")
	generateCmd.Flags().Bool("no-pricing-filter", false, "keep pricing pages in the output")

	rootCmd.AddCommand(generateCmd)
}
