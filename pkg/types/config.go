package types

import "time"

// ExtractionMode selects how tags are extracted from input files.
type ExtractionMode string

const (
	// ModeFilename extracts tags from filenames only (fast, no file I/O).
	ModeFilename ExtractionMode = "filename"

	// ModeContent falls back to scanning document text when the
	// filename yields no tag.
	ModeContent ExtractionMode = "content"
)

// DefaultVocabulary lists the equipment-type prefixes recognized by
// content-mode extraction and tag normalization. Longer prefixes come
// first so OAHU wins over AHU and BCU over BC.
var DefaultVocabulary = []string{
	"OAHU", "WSHP", "DOAS", "BCU", "AHU", "MAU", "RTU", "FCU",
	"VAV", "CAV", "EF", "HP", "FC", "BC", "CH",
}

// ExtractionConfig holds settings for the tag extraction stage.
type ExtractionConfig struct {
	// Mode selects filename-only or content-fallback extraction.
	Mode ExtractionMode `json:"mode" yaml:"mode"`

	// Vocabulary is the equipment-type prefix list. Empty means
	// DefaultVocabulary.
	Vocabulary []string `json:"vocabulary,omitempty" yaml:"vocabulary,omitempty"`
}

// ConversionConfig holds settings for the document-to-PDF conversion stage.
type ConversionConfig struct {
	// GotenbergURL is the base URL of the Gotenberg service
	// (default "http://localhost:3000").
	GotenbergURL string `json:"gotenberg_url" yaml:"gotenberg_url"`

	// Timeout is the per-document conversion request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// Concurrency bounds how many documents are converted in parallel
	// (default 3).
	Concurrency int `json:"concurrency" yaml:"concurrency"`

	// WorkDir is where rendered per-document PDFs are written
	// (default "output/converted").
	WorkDir string `json:"work_dir" yaml:"work_dir"`

	// AutoStart controls whether a missing Gotenberg service is
	// started via the local container runtime.
	AutoStart bool `json:"auto_start" yaml:"auto_start"`
}

// AssemblyConfig holds settings for page filtering and final assembly.
type AssemblyConfig struct {
	// FilterPricing removes pages with currency amounts from the
	// merged output. Uniform per run; there is no per-file override.
	FilterPricing bool `json:"filter_pricing" yaml:"filter_pricing"`

	// TitlePagesDir is where generated title pages are written
	// (default "output/title_pages").
	TitlePagesDir string `json:"title_pages_dir" yaml:"title_pages_dir"`

	// OutputDir is where the final submittal PDF is written
	// (default "output").
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// HistoryConfig holds settings for the run history store.
type HistoryConfig struct {
	// Dir is the directory containing index/history.db (default "output").
	Dir string `json:"dir" yaml:"dir"`

	// MaxRuns is the default listing limit (default 20).
	MaxRuns int `json:"max_runs" yaml:"max_runs"`
}

// PipelineConfig groups all stage configurations for one run.
type PipelineConfig struct {
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction"`
	Conversion ConversionConfig `json:"conversion" yaml:"conversion"`
	Assembly   AssemblyConfig   `json:"assembly" yaml:"assembly"`
	History    HistoryConfig    `json:"history" yaml:"history"`
}
