// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract derives equipment tags and document-type strings from
// input files. Filename mode applies an ordered pattern table to the
// filename; content mode falls back to scanning document text. Each file
// yields zero or one TagMatch; files yielding zero are reported as
// ExtractionFailures and the batch continues.
package extract

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/jacobe603/dst-submittals-v2/pkg/types"
)

// supportedExtensions lists the file types extraction accepts.
var supportedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// TextExtractor reads the plain-text body of a document for
// content-mode matching. Implementations exist for PDF and for raw
// byte scanning of legacy word-processor files.
type TextExtractor interface {
	// Text returns the extracted plain text for the file at path.
	Text(path string) (string, error)
}

// Options configures an extraction run.
type Options struct {
	// Mode selects filename-only or content-fallback extraction.
	Mode types.ExtractionMode

	// Vocabulary is the equipment-prefix list; empty means
	// types.DefaultVocabulary.
	Vocabulary []string

	// Text supplies document text for content mode. Required when
	// Mode is ModeContent; ignored otherwise.
	Text TextExtractor
}

func (o Options) vocabulary() []string {
	if len(o.Vocabulary) > 0 {
		return o.Vocabulary
	}
	return types.DefaultVocabulary
}

// Result holds the outcome of a batch extraction run. Matches preserve
// the input file order.
type Result struct {
	Matches  []types.TagMatch
	Failures []types.ExtractionFailure
}

// HasFailures reports whether any files produced no tag.
func (r Result) HasFailures() bool {
	return len(r.Failures) > 0
}

// Discover lists the supported files in dir, sorted by name. Files with
// unsupported extensions are skipped; subdirectories are not descended.
func Discover(dir string) ([]types.RawFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading documents directory %s: %w", dir, err)
	}

	var files []types.RawFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !supportedExtensions[ext] {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		abs, err := filepath.Abs(filepath.Join(dir, entry.Name()))
		if err != nil {
			abs = filepath.Join(dir, entry.Name())
		}
		files = append(files, types.RawFile{
			Name: entry.Name(),
			Path: abs,
			Size: info.Size(),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// ExtractFile produces zero or one TagMatch for a single file. The
// returned reason is set when ok is false. The build context must have
// been constructed for the whole batch before any call.
func ExtractFile(file types.RawFile, bc *BuildContext, opts Options) (match types.TagMatch, ok bool, reason string) {
	ext := strings.ToLower(filepath.Ext(file.Name))
	if !supportedExtensions[ext] {
		return types.TagMatch{}, false, fmt.Sprintf("unsupported file type %s", ext)
	}

	if m, ok := matchFilename(file, bc, opts.vocabulary()); ok {
		return m, true, ""
	}

	if opts.Mode == types.ModeContent && opts.Text != nil {
		m, ok, err := matchContent(file, opts)
		if err != nil {
			return types.TagMatch{}, false, fmt.Sprintf("content scan failed: %v", err)
		}
		if ok {
			return m, true, ""
		}
		return types.TagMatch{}, false, "no tag in filename or document text"
	}

	return types.TagMatch{}, false, "no filename pattern matched"
}

// ExtractBatch runs extraction across all files in parallel and collects
// results back into input order. The build context is constructed
// sequentially first, since numeric-prefix resolution depends on tags
// seen elsewhere in the batch.
func ExtractBatch(files []types.RawFile, opts Options, w io.Writer) Result {
	bc := NewBuildContext(files, opts)

	type outcome struct {
		match  types.TagMatch
		ok     bool
		reason string
	}

	outcomes := make([]outcome, len(files))
	var wg sync.WaitGroup
	for i, f := range files {
		wg.Add(1)
		go func(i int, f types.RawFile) {
			defer wg.Done()
			m, ok, reason := ExtractFile(f, bc, opts)
			outcomes[i] = outcome{match: m, ok: ok, reason: reason}
		}(i, f)
	}
	wg.Wait()

	var result Result
	for i, f := range files {
		o := outcomes[i]
		if !o.ok {
			fmt.Fprintf(w, "unclassified: %s (%s)\n", f.Name, o.reason)
			result.Failures = append(result.Failures, types.ExtractionFailure{
				Name:   f.Name,
				Reason: o.reason,
			})
			continue
		}
		fmt.Fprintf(w, "tagged: %s -> %s [%s]\n", f.Name, o.match.Tag, o.match.DocType)
		result.Matches = append(result.Matches, o.match)
	}

	fmt.Fprintf(w, "\n%d tagged, %d unclassified (total: %d)\n",
		len(result.Matches), len(result.Failures), len(files))
	return result
}
