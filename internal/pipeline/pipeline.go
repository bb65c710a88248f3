// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline drives a full generation run: discover, extract,
// structure, convert, filter, and assemble, recording the outcome in
// the run history.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jacobe603/dst-submittals-v2/internal/assemble"
	"github.com/jacobe603/dst-submittals-v2/internal/container"
	"github.com/jacobe603/dst-submittals-v2/internal/convert"
	"github.com/jacobe603/dst-submittals-v2/internal/extract"
	"github.com/jacobe603/dst-submittals-v2/internal/history"
	"github.com/jacobe603/dst-submittals-v2/internal/pagefilter"
	"github.com/jacobe603/dst-submittals-v2/internal/structure"
	"github.com/jacobe603/dst-submittals-v2/internal/titlepage"
	"github.com/jacobe603/dst-submittals-v2/pkg/types"
)

// healthDeadline bounds how long a run waits for an auto-started
// Gotenberg container to come up.
const healthDeadline = 30 * time.Second

// RunOptions holds per-run inputs on top of the pipeline configuration.
type RunOptions struct {
	// DocsPath is the directory of source documents.
	DocsPath string

	// OutputPath overrides the default timestamped output location.
	OutputPath string

	// StructureFile, when set, loads an edited document structure
	// instead of building one from extraction.
	StructureFile string
}

// RunResult summarizes one completed generation run.
type RunResult struct {
	Structure *types.Structure
	Assembly  assemble.Result
	Tagged    int
	RunID     int64
}

// Run executes the full pipeline and records it in the history store.
// Stage progress goes to w.
func Run(ctx context.Context, cfg types.PipelineConfig, opts RunOptions, w io.Writer) (*RunResult, error) {
	startedAt := time.Now()

	files, err := extract.Discover(opts.DocsPath)
	if err != nil {
		return nil, fmt.Errorf("discovering documents: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no supported documents in %s", opts.DocsPath)
	}

	var (
		st     *types.Structure
		tagged int
	)
	if opts.StructureFile != "" {
		st, err = structure.Load(opts.StructureFile)
		if err != nil {
			return nil, fmt.Errorf("loading structure: %w", err)
		}
		if problems := structure.Validate(st); len(problems) > 0 {
			return nil, fmt.Errorf("invalid structure %s: %s",
				opts.StructureFile, strings.Join(problems, "; "))
		}
		tagged = st.DocumentCount()
		fmt.Fprintf(w, "Using edited structure from %s (%d documents)\n\n",
			opts.StructureFile, tagged)
	} else {
		result := extract.ExtractBatch(files, extract.Options{
			Mode:       cfg.Extraction.Mode,
			Vocabulary: cfg.Extraction.Vocabulary,
			Text:       extract.FileText{},
		}, w)
		tagged = len(result.Matches)
		st = structure.Build(result)
	}

	converter, err := buildConverter(ctx, cfg.Conversion, structuredFiles(st))
	if err != nil {
		return nil, err
	}
	batch := convert.ConvertBatch(ctx, converter, structuredFiles(st),
		cfg.Conversion.WorkDir, cfg.Conversion.Concurrency, w)
	rendered := batch.Rendered

	var warnings []types.AssemblyWarning
	if cfg.Assembly.FilterPricing {
		st, rendered, warnings = filterPricing(st, rendered, w)
	}

	outputPath := opts.OutputPath
	if outputPath == "" {
		outputPath = filepath.Join(cfg.Assembly.OutputDir,
			fmt.Sprintf("submittal_%s.pdf", startedAt.Format("20060102_150405")))
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	titlePages, err := titlepage.GenerateAll(titlepage.PDFGenerator{},
		headings(st), cfg.Assembly.TitlePagesDir)
	if err != nil {
		return nil, fmt.Errorf("generating title pages: %w", err)
	}

	assembled, err := assemble.Assemble(types.AssemblyPlan{
		Structure:  st,
		Rendered:   rendered,
		TitlePages: titlePages,
		OutputPath: outputPath,
	}, w)
	if err != nil {
		return nil, err
	}
	assembled.Warnings = append(warnings, assembled.Warnings...)

	result := &RunResult{Structure: st, Assembly: assembled, Tagged: tagged}

	store, err := history.NewStore(cfg.History)
	if err != nil {
		fmt.Fprintf(w, "warning: run not recorded: %v\n", err)
		return result, nil
	}
	defer store.Close()
	result.RunID, err = store.Record(history.Run{
		StartedAt:    startedAt,
		DocsPath:     opts.DocsPath,
		OutputPath:   assembled.OutputPath,
		Pages:        assembled.Pages,
		Groups:       assembled.Groups,
		Documents:    assembled.Documents,
		Tagged:       tagged,
		Unclassified: len(st.Failures),
		Warnings:     assembled.Warnings,
		Failures:     st.Failures,
	})
	if err != nil {
		fmt.Fprintf(w, "warning: run not recorded: %v\n", err)
	}
	return result, nil
}

// buildConverter wires the per-extension backends, starting the
// Gotenberg container first when office documents need it.
func buildConverter(ctx context.Context, cfg types.ConversionConfig, files []types.RawFile) (convert.Converter, error) {
	d := &convert.Dispatcher{Image: convert.ImageConverter{}}
	if !needsOffice(files) {
		return d, nil
	}

	client := convert.NewGotenbergClient(cfg.GotenbergURL, cfg.Timeout)
	if !client.Healthy(ctx) {
		if !cfg.AutoStart {
			return nil, fmt.Errorf("gotenberg at %s is not reachable", cfg.GotenbergURL)
		}
		rt, err := container.DetectRuntime()
		if err != nil {
			return nil, fmt.Errorf("gotenberg unreachable and %w", err)
		}
		if err := container.EnsureGotenberg(rt); err != nil {
			return nil, fmt.Errorf("starting gotenberg: %w", err)
		}
		if err := client.WaitHealthy(ctx, healthDeadline); err != nil {
			return nil, err
		}
	}
	d.Office = client
	return d, nil
}

func needsOffice(files []types.RawFile) bool {
	for _, f := range files {
		switch strings.ToLower(filepath.Ext(f.Name)) {
		case ".doc", ".docx":
			return true
		}
	}
	return false
}

// structuredFiles returns the source files the structure references, in
// group order.
func structuredFiles(st *types.Structure) []types.RawFile {
	var files []types.RawFile
	for _, g := range st.Groups {
		for _, d := range g.Documents {
			files = append(files, d.File)
		}
	}
	return files
}

// filterPricing runs the pricing filter over every rendered document.
// Documents whose pages were all pricing become warnings; the input
// structure is left untouched and a rebuilt copy without those
// documents (and without groups they emptied) is returned.
func filterPricing(st *types.Structure, rendered map[string]string, w io.Writer) (*types.Structure, map[string]string, []types.AssemblyWarning) {
	reader := pagefilter.FileReader{}
	filtered := make(map[string]string, len(rendered))
	var warnings []types.AssemblyWarning

	empty := map[string]bool{}
	for gi := range st.Groups {
		for _, doc := range st.Groups[gi].Documents {
			path, ok := rendered[doc.File.Path]
			if !ok {
				continue
			}
			res, err := pagefilter.Filter(reader, path, w)
			if err != nil {
				// Keep the unfiltered document rather than drop it.
				fmt.Fprintf(w, "pricing:  %s not filtered (%v)\n", doc.File.Name, err)
				filtered[doc.File.Path] = path
				continue
			}
			if res.Empty {
				empty[doc.File.Path] = true
				warnings = append(warnings, types.AssemblyWarning{
					Tag: st.Groups[gi].Tag, Name: doc.File.Name,
					Reason: "all pages carried pricing",
				})
				continue
			}
			filtered[doc.File.Path] = res.Path
		}
	}
	if len(empty) == 0 {
		return st, filtered, warnings
	}

	out := &types.Structure{Failures: st.Failures}
	for _, g := range st.Groups {
		kept := make([]types.DocumentEntry, 0, len(g.Documents))
		for _, doc := range g.Documents {
			if !empty[doc.File.Path] {
				kept = append(kept, doc)
			}
		}
		if len(kept) == 0 {
			continue
		}
		g.Documents = kept
		out.Groups = append(out.Groups, g)
	}
	return out, filtered, warnings
}

// headings returns the title-page heading for every group, cut-sheets
// included.
func headings(st *types.Structure) []string {
	out := make([]string, 0, len(st.Groups))
	for i := range st.Groups {
		if st.Groups[i].IsCutSheets() {
			out = append(out, titlepage.CutSheetsTitle)
		} else {
			out = append(out, st.Groups[i].Tag)
		}
	}
	return out
}
