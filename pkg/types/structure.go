// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// CutSheetsTag is the synthetic tag for the trailing cut-sheets section.
const CutSheetsTag = "CUTSHEETS"

// DocumentEntry is one classified document inside an equipment group.
type DocumentEntry struct {
	// File is the source file for this entry.
	File RawFile `json:"file" yaml:"file"`

	// Role is the semantic classification of the document.
	Role DocumentRole `json:"role" yaml:"role"`

	// DocType is the raw type string the role was derived from.
	DocType string `json:"doc_type" yaml:"doc_type"`

	// Confidence is carried over from the originating TagMatch.
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// Source is carried over from the originating TagMatch.
	Source MatchSource `json:"source" yaml:"source"`
}

// EquipmentGroup holds all documents for one equipment tag, in role
// precedence order. Each tag maps to exactly one group per run.
type EquipmentGroup struct {
	// Tag is the normalized equipment tag, e.g. "MAU-12", or
	// CutSheetsTag for the synthetic cut-sheets group.
	Tag string `json:"tag" yaml:"tag"`

	// Order is the group's position in the final submittal, starting at 0.
	Order int `json:"order" yaml:"order"`

	// Documents are the group's entries sorted by role precedence,
	// ties broken by filename.
	Documents []DocumentEntry `json:"documents" yaml:"documents"`
}

// IsCutSheets reports whether this is the synthetic cut-sheets group.
func (g *EquipmentGroup) IsCutSheets() bool {
	return g.Tag == CutSheetsTag
}

// Structure is the full ordered plan of equipment groups for one
// submittal run. It is immutable once built; re-running extraction
// produces a wholly new Structure rather than patching the old one.
type Structure struct {
	// Groups are the equipment groups in submittal order. When cut
	// sheets exist, the cut-sheets group is always the last element.
	Groups []EquipmentGroup `json:"groups" yaml:"groups"`

	// Failures lists files that produced no tag, surfaced so a human
	// can supplement the submittal manually.
	Failures []ExtractionFailure `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// Group returns the group for the given tag, or nil.
func (s *Structure) Group(tag string) *EquipmentGroup {
	for i := range s.Groups {
		if s.Groups[i].Tag == tag {
			return &s.Groups[i]
		}
	}
	return nil
}

// DocumentCount returns the total number of documents across all groups.
func (s *Structure) DocumentCount() int {
	n := 0
	for i := range s.Groups {
		n += len(s.Groups[i].Documents)
	}
	return n
}

// AssemblyPlan is a read-only view over a Structure plus the rendered
// artifacts the assembler consumes. Built fresh per run and discarded
// after assembly.
type AssemblyPlan struct {
	// Structure is the ordered plan being assembled.
	Structure *Structure

	// Rendered maps a source file path to its rendered single-document
	// PDF path. Documents missing from the map are skipped with a warning.
	Rendered map[string]string

	// TitlePages maps an equipment tag (or CutSheetsTag) to its
	// generated title-page PDF path.
	TitlePages map[string]string

	// OutputPath is where the merged submittal PDF is written.
	OutputPath string
}

// AssemblyWarning records a non-fatal problem encountered during
// assembly: a skipped document, an empty group, a filtered-out page set.
type AssemblyWarning struct {
	// Tag is the equipment group the warning belongs to.
	Tag string `json:"tag" yaml:"tag"`

	// Name is the affected filename, empty for group-level warnings.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Reason describes what went wrong.
	Reason string `json:"reason" yaml:"reason"`
}
