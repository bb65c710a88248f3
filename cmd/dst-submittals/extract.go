// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jacobe603/dst-submittals-v2/internal/extract"
	"github.com/jacobe603/dst-submittals-v2/internal/structure"
	"github.com/jacobe603/dst-submittals-v2/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract <docs-dir>",
	Short: "Extract equipment tags and preview the document structure",
	Long: `Extract scans a directory of equipment documents, pulls equipment tags
from filenames (and document content in content mode), classifies each
document's role, and prints the grouped structure that generate would
assemble. The structure can be saved, edited, and fed back to generate
with --structure-file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := pipelineConfig()
		if mode, _ := cmd.Flags().GetString("mode"); mode != "" {
			cfg.Extraction.Mode = types.ExtractionMode(mode)
		}

		files, err := extract.Discover(args[0])
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("no supported documents in %s", args[0])
		}

		result := extract.ExtractBatch(files, extract.Options{
			Mode:       cfg.Extraction.Mode,
			Vocabulary: cfg.Extraction.Vocabulary,
			Text:       extract.FileText{},
		}, os.Stderr)
		st := structure.Build(result)

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			data, err := json.MarshalIndent(st, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
		} else {
			fmt.Println()
			renderStructure(os.Stdout, st)
		}

		if out, _ := cmd.Flags().GetString("structure-file"); out != "" {
			if err := structure.Save(st, out); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "\nStructure written to %s\n", out)
		}
		return nil
	},
}

func init() {
	extractCmd.Flags().String("mode", "", "extraction mode: filename or content (default from config)")
	extractCmd.Flags().String("structure-file", "", "write the structure to a file for later editing")
	extractCmd.Flags().Bool("json", false, "print the structure as JSON")

	rootCmd.AddCommand(extractCmd)
}
