// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package titlepage renders the single-page section separators that
// precede each equipment group in the assembled submittal.
package titlepage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
)

// CutSheetsTitle is the heading of the trailing catch-all section.
const CutSheetsTitle = "CUT SHEETS"

// Generator renders a title page for one section heading.
type Generator interface {
	// Generate writes a one-page PDF with the heading centered on it.
	Generate(title, outputPath string) error
}

// PDFGenerator renders letter-sized title pages with a large centered
// heading.
type PDFGenerator struct{}

// Generate writes the title page to outputPath.
func (PDFGenerator) Generate(title, outputPath string) error {
	doc := gofpdf.New("P", "pt", "Letter", "")
	doc.AddPage()
	doc.SetFont("Helvetica", "B", 48)

	pageW, pageH := doc.GetPageSize()
	textW := doc.GetStringWidth(title)
	doc.Text((pageW-textW)/2, pageH/2, title)

	if err := doc.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("writing title page %s: %w", outputPath, err)
	}
	return nil
}

// GenerateAll renders a title page per heading into dir, returning a
// heading-to-path map. Filenames are derived from the headings.
func GenerateAll(g Generator, headings []string, dir string) (map[string]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}
	pages := make(map[string]string, len(headings))
	for _, h := range headings {
		path := filepath.Join(dir, safeName(h)+".pdf")
		if err := g.Generate(h, path); err != nil {
			return nil, err
		}
		pages[h] = path
	}
	return pages, nil
}

func safeName(title string) string {
	out := make([]rune, 0, len(title))
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			out = append(out, r)
		case r == ' ':
			out = append(out, '_')
		}
	}
	if len(out) == 0 {
		return "section"
	}
	return string(out)
}
