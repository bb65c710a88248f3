// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package assemble merges the rendered documents into the final
// submittal PDF, with a title page before each equipment group and a
// bookmark tree mirroring the group structure.
package assemble

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/jacobe603/dst-submittals-v2/internal/titlepage"
	"github.com/jacobe603/dst-submittals-v2/pkg/types"
)

// ErrNothingAssembled is returned when no group contributed a single
// document, so there is no output to write.
var ErrNothingAssembled = errors.New("no documents available for assembly")

// Result summarizes one assembly run.
type Result struct {
	// OutputPath is the assembled PDF.
	OutputPath string

	// Pages is the page count of the output.
	Pages int

	// Groups is the number of sections included.
	Groups int

	// Documents is the number of source documents included.
	Documents int

	// Warnings lists documents that were dropped and why.
	Warnings []types.AssemblyWarning
}

// segment is one input PDF queued for the merge, with resolved length.
type segment struct {
	path  string
	pages int
}

// Assemble merges the plan into its output path. Documents with no
// rendered PDF or zero pages become warnings, groups left empty are
// omitted, and the run fails only when nothing at all survives.
func Assemble(plan types.AssemblyPlan, w io.Writer) (Result, error) {
	var (
		segments  []segment
		bookmarks []pdfcpu.Bookmark
		warnings  []types.AssemblyWarning
		offset    int
		docCount  int
	)

	for _, group := range plan.Structure.Groups {
		heading := group.Tag
		markTitle := group.Tag
		if group.IsCutSheets() {
			heading = titlepage.CutSheetsTitle
			markTitle = "Cut Sheets"
		}

		var (
			docSegments []segment
			kids        []pdfcpu.Bookmark
			kidOffset   int
		)
		for _, doc := range group.Documents {
			rendered, ok := plan.Rendered[doc.File.Path]
			if !ok {
				warnings = append(warnings, types.AssemblyWarning{
					Tag: group.Tag, Name: doc.File.Name, Reason: "no rendered PDF",
				})
				continue
			}
			pages, err := api.PageCountFile(rendered)
			if err != nil {
				warnings = append(warnings, types.AssemblyWarning{
					Tag: group.Tag, Name: doc.File.Name,
					Reason: fmt.Sprintf("unreadable PDF: %v", err),
				})
				continue
			}
			if pages == 0 {
				warnings = append(warnings, types.AssemblyWarning{
					Tag: group.Tag, Name: doc.File.Name, Reason: "no pages after filtering",
				})
				continue
			}
			docSegments = append(docSegments, segment{path: rendered, pages: pages})
			// Equipment groups label children by role; the cut-sheets
			// section labels them by filename.
			title := doc.Role.Label()
			if group.IsCutSheets() {
				title = strings.TrimSuffix(doc.File.Name, filepath.Ext(doc.File.Name))
			}
			kids = append(kids, pdfcpu.Bookmark{
				Title:    title,
				PageFrom: kidOffset + 1,
			})
			kidOffset += pages
		}
		if len(docSegments) == 0 {
			// Nothing survived for this group; no title page either.
			continue
		}

		titlePages := 0
		if titlePath, ok := plan.TitlePages[heading]; ok {
			pages, err := api.PageCountFile(titlePath)
			if err != nil {
				return Result{}, fmt.Errorf("reading title page for %s: %w", heading, err)
			}
			segments = append(segments, segment{path: titlePath, pages: pages})
			titlePages = pages
		}

		groupMark := pdfcpu.Bookmark{Title: markTitle, PageFrom: offset + 1}
		for i := range kids {
			kids[i].PageFrom += offset + titlePages
		}
		groupMark.Kids = kids
		bookmarks = append(bookmarks, groupMark)

		for _, s := range docSegments {
			segments = append(segments, s)
			offset += s.pages
		}
		offset += titlePages
		docCount += len(docSegments)
		fmt.Fprintf(w, "section: %s (%d documents)\n", heading, len(docSegments))
	}

	for _, warn := range warnings {
		fmt.Fprintf(w, "dropped: %s / %s (%s)\n", warn.Tag, warn.Name, warn.Reason)
	}
	if len(segments) == 0 {
		return Result{Warnings: warnings}, ErrNothingAssembled
	}

	inFiles := make([]string, len(segments))
	for i, s := range segments {
		inFiles[i] = s.path
	}
	conf := model.NewDefaultConfiguration()
	if err := api.MergeCreateFile(inFiles, plan.OutputPath, false, conf); err != nil {
		return Result{}, fmt.Errorf("merging into %s: %w", plan.OutputPath, err)
	}
	if err := api.AddBookmarksFile(plan.OutputPath, "", bookmarks, true, conf); err != nil {
		return Result{}, fmt.Errorf("adding bookmarks to %s: %w", plan.OutputPath, err)
	}

	total, err := api.PageCountFile(plan.OutputPath)
	if err != nil {
		return Result{}, fmt.Errorf("verifying %s: %w", plan.OutputPath, err)
	}
	fmt.Fprintf(w, "\nAssembled %s: %d pages, %d sections, %d documents\n",
		filepath.Base(plan.OutputPath), total, len(bookmarks), docCount)

	return Result{
		OutputPath: plan.OutputPath,
		Pages:      total,
		Groups:     len(bookmarks),
		Documents:  docCount,
		Warnings:   warnings,
	}, nil
}
