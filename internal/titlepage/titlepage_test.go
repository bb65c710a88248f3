// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package titlepage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

func TestGenerate(t *testing.T) {
	out := filepath.Join(t.TempDir(), "title.pdf")
	if err := (PDFGenerator{}).Generate("MAU-5", out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pages, err := api.PageCountFile(out)
	if err != nil {
		t.Fatalf("output is not a readable PDF: %v", err)
	}
	if pages != 1 {
		t.Errorf("title page has %d pages, want 1", pages)
	}
}

func TestGenerateAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "title_pages")
	headings := []string{"MAU-5", "AHU-10", CutSheetsTitle}

	pages, err := GenerateAll(PDFGenerator{}, headings, dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 3 {
		t.Fatalf("got %d title pages, want 3", len(pages))
	}
	for _, h := range headings {
		path, ok := pages[h]
		if !ok {
			t.Fatalf("no title page recorded for %q", h)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("title page for %q missing on disk: %v", h, err)
		}
	}
}

func TestSafeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"MAU-5", "MAU-5"},
		{"CUT SHEETS", "CUT_SHEETS"},
		{"a/b\\c", "abc"},
		{"///", "section"},
	}
	for _, tt := range tests {
		if got := safeName(tt.in); got != tt.want {
			t.Errorf("safeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
