// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert renders source documents to single-document PDFs with
// pluggable backends. Word-processor files go through Gotenberg, images
// are rasterized locally, and PDFs pass through untouched. Conversion
// failures are isolated per document; one broken drawing never blocks
// the batch.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jacobe603/dst-submittals-v2/pkg/types"
)

// Converter renders one source document into a PDF at outputPath.
type Converter interface {
	// Convert renders the document at inputPath to outputPath.
	Convert(ctx context.Context, inputPath, outputPath string) error
}

// Dispatcher routes each file to a backend by extension.
type Dispatcher struct {
	// Office handles .doc and .docx (Gotenberg in production).
	Office Converter

	// Image handles .jpg, .jpeg, and .png.
	Image Converter
}

// Convert picks the backend for the file's extension. PDF inputs are
// copied through unchanged.
func (d *Dispatcher) Convert(ctx context.Context, inputPath, outputPath string) error {
	switch strings.ToLower(filepath.Ext(inputPath)) {
	case ".pdf":
		return copyFile(inputPath, outputPath)
	case ".doc", ".docx":
		if d.Office == nil {
			return fmt.Errorf("no office backend configured for %s", filepath.Base(inputPath))
		}
		return d.Office.Convert(ctx, inputPath, outputPath)
	case ".jpg", ".jpeg", ".png":
		if d.Image == nil {
			return fmt.Errorf("no image backend configured for %s", filepath.Base(inputPath))
		}
		return d.Image.Convert(ctx, inputPath, outputPath)
	default:
		return fmt.Errorf("no conversion backend for %s", filepath.Ext(inputPath))
	}
}

// Failure records one document that could not be rendered.
type Failure struct {
	// Name is the source filename.
	Name string

	// Err is the conversion error.
	Err error
}

// BatchResult holds the outcome of a batch conversion run. Rendered
// maps source paths to rendered PDF paths; the assembler consumes it.
type BatchResult struct {
	Rendered map[string]string
	Skipped  int
	Failures []Failure
}

// Total returns the total number of documents processed. Rendered
// already includes reused outputs, so Skipped is not added again.
func (r BatchResult) Total() int {
	return len(r.Rendered) + len(r.Failures)
}

// HasFailures reports whether any documents failed conversion.
func (r BatchResult) HasFailures() bool {
	return len(r.Failures) > 0
}

// ConvertBatch renders every file through the converter with bounded
// parallelism, writing outputs into workDir as "<stem>.pdf". Existing
// outputs are reused. Per-file status goes to w; failures accumulate in
// the result instead of aborting the batch.
func ConvertBatch(ctx context.Context, c Converter, files []types.RawFile, workDir string, concurrency int, w io.Writer) BatchResult {
	if concurrency <= 0 {
		concurrency = 3
	}
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		result := BatchResult{Rendered: map[string]string{}}
		for _, f := range files {
			result.Failures = append(result.Failures, Failure{Name: f.Name, Err: err})
		}
		return result
	}

	type outcome struct {
		file    types.RawFile
		outPath string
		skipped bool
		err     error
	}

	outcomes := make([]outcome, len(files))
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i, f := range files {
		wg.Add(1)
		go func(i int, f types.RawFile) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			stem := strings.TrimSuffix(f.Name, filepath.Ext(f.Name))
			outPath := filepath.Join(workDir, stem+".pdf")

			if _, err := os.Stat(outPath); err == nil {
				outcomes[i] = outcome{file: f, outPath: outPath, skipped: true}
				return
			}
			if err := c.Convert(ctx, f.Path, outPath); err != nil {
				outcomes[i] = outcome{file: f, err: err}
				return
			}
			outcomes[i] = outcome{file: f, outPath: outPath}
		}(i, f)
	}
	wg.Wait()

	result := BatchResult{Rendered: make(map[string]string, len(files))}
	for _, o := range outcomes {
		switch {
		case o.err != nil:
			fmt.Fprintf(w, "failed:  %s (%v)\n", o.file.Name, o.err)
			result.Failures = append(result.Failures, Failure{Name: o.file.Name, Err: o.err})
		case o.skipped:
			fmt.Fprintf(w, "skipped: %s (already rendered)\n", o.file.Name)
			result.Rendered[o.file.Path] = o.outPath
			result.Skipped++
		default:
			fmt.Fprintf(w, "rendered: %s\n", o.file.Name)
			result.Rendered[o.file.Path] = o.outPath
		}
	}

	fmt.Fprintf(w, "\nConversion summary: %d rendered, %d reused, %d failed (total: %d)\n",
		len(result.Rendered)-result.Skipped, result.Skipped, len(result.Failures), result.Total())
	return result
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying %s: %w", src, err)
	}
	return out.Close()
}
