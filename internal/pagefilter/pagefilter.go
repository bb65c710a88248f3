// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pagefilter strips pricing pages from rendered PDFs before
// assembly. A page is a pricing page when any of its text lines carries
// a dollar amount. Pages whose text cannot be read are kept; dropping a
// drawing is worse than leaving a price in.
package pagefilter

import (
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// dollarAmountPattern matches currency amounts such as "$1,250.00",
// "$ 980", and "$12,000".
var dollarAmountPattern = regexp.MustCompile(`\$\s?[0-9][0-9,]*(\.[0-9]{2})?`)

// PageReader extracts the text of one page of a PDF. Page numbers are
// 1-based.
type PageReader interface {
	PageCount(path string) (int, error)
	PageText(path string, page int) (string, error)
}

// Result describes what the filter did to one document.
type Result struct {
	// Path is the filtered PDF, or the original when nothing was removed.
	Path string

	// Removed lists the 1-based pages that were dropped.
	Removed []int

	// Empty is true when every page was a pricing page. The document
	// is excluded from assembly and reported as a warning.
	Empty bool
}

// Filter removes pricing pages from the PDF at path, writing the
// trimmed copy next to it as "<stem>_filtered.pdf". The original file
// is never modified.
func Filter(r PageReader, path string, w io.Writer) (Result, error) {
	flagged, err := FlagPages(r, path)
	if err != nil {
		return Result{}, err
	}
	if len(flagged) == 0 {
		return Result{Path: path}, nil
	}

	total, err := r.PageCount(path)
	if err != nil {
		return Result{}, fmt.Errorf("counting pages of %s: %w", filepath.Base(path), err)
	}
	if len(flagged) == total {
		fmt.Fprintf(w, "pricing:  %s (all %d pages, document dropped)\n", filepath.Base(path), total)
		return Result{Removed: flagged, Empty: true}, nil
	}

	outPath := filteredPath(path)
	selection := make([]string, len(flagged))
	for i, p := range flagged {
		selection[i] = fmt.Sprintf("%d", p)
	}
	conf := model.NewDefaultConfiguration()
	if err := api.RemovePagesFile(path, outPath, selection, conf); err != nil {
		return Result{}, fmt.Errorf("removing pages from %s: %w", filepath.Base(path), err)
	}

	fmt.Fprintf(w, "pricing:  %s (%d of %d pages removed)\n", filepath.Base(path), len(flagged), total)
	return Result{Path: outPath, Removed: flagged}, nil
}

// FlagPages returns the 1-based pages of the PDF that carry a dollar
// amount. Unreadable pages are never flagged.
func FlagPages(r PageReader, path string) ([]int, error) {
	total, err := r.PageCount(path)
	if err != nil {
		return nil, fmt.Errorf("counting pages of %s: %w", filepath.Base(path), err)
	}

	var flagged []int
	for page := 1; page <= total; page++ {
		text, err := r.PageText(path, page)
		if err != nil {
			continue
		}
		if containsDollarAmount(text) {
			flagged = append(flagged, page)
		}
	}
	return flagged, nil
}

func containsDollarAmount(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		if dollarAmountPattern.MatchString(line) {
			return true
		}
	}
	return false
}

func filteredPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_filtered" + ext
}
