// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify maps raw document-type strings to semantic roles.
// The rule table is ordered and the first hit wins, so a type string
// containing both "drawing" and "specification" resolves to whichever
// entry sits higher in the table. That tie-break is a designed property
// of the table order, not an accident of iteration.
package classify

import (
	"regexp"

	"github.com/jacobe603/dst-submittals-v2/pkg/types"
)

// rule pairs one compiled pattern with the role it yields.
type rule struct {
	pattern *regexp.Regexp
	role    types.DocumentRole
}

// ruleTable is checked top to bottom. Synonyms for a role sit at the
// role's position so precedence stays a single ordered list; the bare
// "curve" catch-all sits last so it can never outrank a specific entry.
var ruleTable = []rule{
	{regexp.MustCompile(`(?i)technical\s+data`), types.RoleTechnicalData},
	{regexp.MustCompile(`(?i)tech\s+data`), types.RoleTechnicalData},
	{regexp.MustCompile(`(?i)data\s+sheet`), types.RoleTechnicalData},
	{regexp.MustCompile(`(?i)fan\s+curve`), types.RoleFanCurve},
	{regexp.MustCompile(`(?i)performance\s+curve`), types.RoleFanCurve},
	{regexp.MustCompile(`(?i)drawing`), types.RoleDrawing},
	{regexp.MustCompile(`(?i)\bdwg\b`), types.RoleDrawing},
	{regexp.MustCompile(`(?i)\bcad\b`), types.RoleDrawing},
	{regexp.MustCompile(`(?i)item\s+summary`), types.RoleItemSummary},
	{regexp.MustCompile(`(?i)specification`), types.RoleSpecification},
	{regexp.MustCompile(`(?i)\bspecs?\b`), types.RoleSpecification},
	{regexp.MustCompile(`(?i)cut.?sheet`), types.RoleCutsheet},
	{regexp.MustCompile(`(?i)\bcurve\b`), types.RoleFanCurve},
}

// Ambiguity notes a type string that matched more than one table entry.
// Resolved by table order; reported so the caller can log it.
type Ambiguity struct {
	// Tag and DocType identify the document.
	Tag     string
	DocType string

	// Chosen is the role the table order selected.
	Chosen types.DocumentRole

	// AlsoMatched lists the later entries that would also have hit.
	AlsoMatched []types.DocumentRole
}

// Classify maps a raw type string to exactly one DocumentRole. A tag of
// literal CUTSHEET forces cutsheet regardless of the type string. No
// matching entry yields RoleUnknown.
func Classify(tag, docType string) types.DocumentRole {
	role, _ := ClassifyDetail(tag, docType)
	return role
}

// ClassifyDetail is Classify plus the ambiguity report. The report is
// nil for unambiguous inputs.
func ClassifyDetail(tag, docType string) (types.DocumentRole, *Ambiguity) {
	if tag == "CUTSHEET" {
		return types.RoleCutsheet, nil
	}

	chosen := types.RoleUnknown
	var also []types.DocumentRole
	for _, r := range ruleTable {
		if !r.pattern.MatchString(docType) {
			continue
		}
		if chosen == types.RoleUnknown {
			chosen = r.role
			continue
		}
		if r.role != chosen && !containsRole(also, r.role) {
			also = append(also, r.role)
		}
	}

	if len(also) == 0 {
		return chosen, nil
	}
	return chosen, &Ambiguity{Tag: tag, DocType: docType, Chosen: chosen, AlsoMatched: also}
}

func containsRole(roles []types.DocumentRole, role types.DocumentRole) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
