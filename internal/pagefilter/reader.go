// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pagefilter

import (
	"fmt"

	ledongthuc "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// FileReader is the production PageReader, backed by the pdf text
// extractor for page text and pdfcpu for page counting.
type FileReader struct{}

// PageCount returns the number of pages in the PDF at path.
func (FileReader) PageCount(path string) (int, error) {
	return api.PageCountFile(path)
}

// PageText returns the plain text of the given 1-based page.
func (FileReader) PageText(path string, page int) (string, error) {
	f, r, err := ledongthuc.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if page < 1 || page > r.NumPage() {
		return "", fmt.Errorf("page %d out of range in %s", page, path)
	}
	p := r.Page(page)
	if p.V.IsNull() {
		return "", fmt.Errorf("page %d of %s has no content", page, path)
	}
	text, err := p.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("extracting page %d of %s: %w", page, path, err)
	}
	return text, nil
}
