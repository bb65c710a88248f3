// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// FileText is the production TextExtractor. PDF bodies go through the
// PDF text layer; legacy word-processor files fall back to scanning the
// raw bytes for printable runs, which is enough to locate tag tokens
// without a full OLE parser.
type FileText struct{}

// Text extracts the plain-text body of the file at path.
func (FileText) Text(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return pdfText(path)
	case ".doc", ".docx":
		return printableBytes(path)
	default:
		return "", fmt.Errorf("no text extraction for %s", filepath.Ext(path))
	}
}

// pdfText concatenates the text layer of every page.
func pdfText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			// A single unreadable page should not sink the scan.
			continue
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// printableBytes reads the file and keeps printable ASCII runs, the
// cheap-and-cheerful way to see tag tokens inside binary .doc blobs.
func printableBytes(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	b := make([]byte, len(data))
	for i, c := range data {
		if c >= 0x20 && c < 0x7f {
			b[i] = c
		} else {
			b[i] = ' '
		}
	}
	return string(b), nil
}
