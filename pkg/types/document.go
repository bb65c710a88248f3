// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// RawFile is an input file reference discovered in the documents
// directory. It is immutable once discovered; extraction consumes it.
type RawFile struct {
	// Name is the original filename including extension.
	Name string `json:"name" yaml:"name"`

	// Path is the absolute path to the file.
	Path string `json:"path" yaml:"path"`

	// Size is the file size in bytes.
	Size int64 `json:"size" yaml:"size"`
}

// MatchSource identifies where a tag match came from.
type MatchSource string

const (
	SourceFilename MatchSource = "filename"
	SourceContent  MatchSource = "content"
)

// TagMatch is the result of tag extraction for one RawFile. A file
// yields zero or one TagMatch; files yielding zero are reported as
// ExtractionFailures, never dropped silently.
type TagMatch struct {
	// File is the input file this match was extracted from.
	File RawFile `json:"file" yaml:"file"`

	// Tag is the normalized equipment tag, e.g. "AHU-10". Cut sheet
	// files carry the literal tag "CUTSHEET".
	Tag string `json:"tag" yaml:"tag"`

	// DocType is the raw document-type string as it appeared in the
	// filename or content, e.g. "Technical Data Sheet".
	DocType string `json:"doc_type" yaml:"doc_type"`

	// Confidence scores the match: 1.0 exact filename tag, 0.9 labeled
	// content match, 0.8 numeric-prefix resolution, 0.6 bare content token.
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// Source records whether the match came from the filename or the
	// document text.
	Source MatchSource `json:"source" yaml:"source"`
}

// DocumentRole is the semantic category of a document within an
// equipment's submittal section.
type DocumentRole string

const (
	RoleTechnicalData DocumentRole = "technical_data"
	RoleFanCurve      DocumentRole = "fan_curve"
	RoleDrawing       DocumentRole = "drawing"
	RoleItemSummary   DocumentRole = "item_summary"
	RoleSpecification DocumentRole = "specification"
	RoleCutsheet      DocumentRole = "cutsheet"
	RoleUnknown       DocumentRole = "unknown"
)

// Precedence returns the fixed sort rank of the role inside an
// equipment group. Lower ranks appear first in the assembled output.
func (r DocumentRole) Precedence() int {
	switch r {
	case RoleTechnicalData:
		return 0
	case RoleFanCurve:
		return 1
	case RoleDrawing:
		return 2
	case RoleItemSummary:
		return 3
	case RoleSpecification:
		return 4
	default:
		return 5
	}
}

// Label returns the human-readable bookmark label for the role.
func (r DocumentRole) Label() string {
	switch r {
	case RoleTechnicalData:
		return "Technical Data"
	case RoleFanCurve:
		return "Fan Curve"
	case RoleDrawing:
		return "Drawing"
	case RoleItemSummary:
		return "Item Summary"
	case RoleSpecification:
		return "Specification"
	case RoleCutsheet:
		return "Cut Sheet"
	default:
		return "Document"
	}
}

// ExtractionFailure records a file that produced no tag. Failures are
// accumulated and surfaced to the caller; they never abort a batch.
type ExtractionFailure struct {
	// Name is the filename that failed extraction.
	Name string `json:"name" yaml:"name"`

	// Reason describes why no tag was found.
	Reason string `json:"reason" yaml:"reason"`
}
