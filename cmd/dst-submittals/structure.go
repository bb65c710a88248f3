// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jacobe603/dst-submittals-v2/internal/structure"
)

var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Inspect and validate saved document structures",
}

var structureShowCmd = &cobra.Command{
	Use:   "show <structure-file>",
	Short: "Print a saved structure in group order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := structure.Load(args[0])
		if err != nil {
			return err
		}
		renderStructure(os.Stdout, st)
		return nil
	},
}

var structureValidateCmd = &cobra.Command{
	Use:   "validate <structure-file>",
	Short: "Check a structure file before feeding it to generate",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Read without validating so every problem is listed, not just
		// the first one Load would reject.
		st, err := structure.Read(args[0])
		if err != nil {
			return err
		}
		problems := structure.Validate(st)
		if len(problems) == 0 {
			fmt.Println(successStyle.Render("structure is valid"),
				dimStyle.Render(fmt.Sprintf("(%d groups, %d documents)",
					len(st.Groups), st.DocumentCount())))
			return nil
		}
		for _, p := range problems {
			fmt.Println(errorStyle.Render("invalid:"), p)
		}
		return fmt.Errorf("%d problems found", len(problems))
	},
}

func init() {
	structureCmd.AddCommand(structureShowCmd)
	structureCmd.AddCommand(structureValidateCmd)
	rootCmd.AddCommand(structureCmd)
}
