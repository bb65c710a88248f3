// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/jacobe603/dst-submittals-v2/pkg/types"
)

var (
	// tagStyle for equipment tag headers
	tagStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	// dimStyle for muted metadata text
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// successStyle for success indicators
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// warnStyle for warnings and unclassified files
	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	// errorStyle for error indicators
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// renderStructure prints the grouped document structure, one section
// per equipment tag with its ordered documents.
func renderStructure(w io.Writer, st *types.Structure) {
	for _, g := range st.Groups {
		heading := g.Tag
		if g.IsCutSheets() {
			heading = "Cut Sheets"
		}
		fmt.Fprintf(w, "%s %s\n", tagStyle.Render(heading),
			dimStyle.Render(fmt.Sprintf("(%d documents)", len(g.Documents))))
		for _, d := range g.Documents {
			fmt.Fprintf(w, "  %s  %s %s\n",
				successStyle.Render("•"), d.File.Name,
				dimStyle.Render(fmt.Sprintf("[%s, %.1f]", d.Role.Label(), d.Confidence)))
		}
	}
	if len(st.Failures) > 0 {
		fmt.Fprintf(w, "%s\n", warnStyle.Render("Unclassified:"))
		for _, f := range st.Failures {
			fmt.Fprintf(w, "  %s  %s %s\n",
				warnStyle.Render("?"), f.Name, dimStyle.Render("("+f.Reason+")"))
		}
	}
}
