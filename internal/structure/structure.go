// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package structure groups classified documents by equipment tag and
// orders them into the canonical submittal sequence. The builder needs
// the complete batch before it runs: tier and order decisions depend on
// the full tag set, so partial structures are never built incrementally.
package structure

import (
	"sort"

	"github.com/jacobe603/dst-submittals-v2/internal/classify"
	"github.com/jacobe603/dst-submittals-v2/internal/extract"
	"github.com/jacobe603/dst-submittals-v2/pkg/types"
)

// mauPrefix is the first-tier equipment prefix. Makeup air units are
// documented ahead of everything else; this is a submittal convention,
// not an alphabetical accident.
const mauPrefix = "MAU"

// Build consumes the full extraction result and produces one Structure.
// Cut-sheet matches collect into the trailing synthetic group; every
// other match joins the group for its normalized tag. The returned
// Structure is complete and immutable; rebuild rather than mutate.
func Build(result extract.Result) *types.Structure {
	byTag := make(map[string][]types.DocumentEntry)
	var cutsheets []types.DocumentEntry

	for _, m := range result.Matches {
		role := classify.Classify(m.Tag, m.DocType)
		entry := types.DocumentEntry{
			File:       m.File,
			Role:       role,
			DocType:    m.DocType,
			Confidence: m.Confidence,
			Source:     m.Source,
		}
		if role == types.RoleCutsheet {
			cutsheets = append(cutsheets, entry)
			continue
		}
		byTag[m.Tag] = append(byTag[m.Tag], entry)
	}

	tags := make([]string, 0, len(byTag))
	for tag := range byTag {
		tags = append(tags, tag)
	}
	sortTags(tags)

	s := &types.Structure{Failures: result.Failures}
	for i, tag := range tags {
		docs := byTag[tag]
		sortDocuments(docs)
		s.Groups = append(s.Groups, types.EquipmentGroup{
			Tag:       tag,
			Order:     i,
			Documents: docs,
		})
	}

	if len(cutsheets) > 0 {
		sort.Slice(cutsheets, func(i, j int) bool {
			return cutsheets[i].File.Name < cutsheets[j].File.Name
		})
		s.Groups = append(s.Groups, types.EquipmentGroup{
			Tag:       types.CutSheetsTag,
			Order:     len(tags),
			Documents: cutsheets,
		})
	}

	return s
}

// sortDocuments orders a group's entries by role precedence, ties broken
// by filename so repeated runs are byte-identical.
func sortDocuments(docs []types.DocumentEntry) {
	sort.SliceStable(docs, func(i, j int) bool {
		pi, pj := docs[i].Role.Precedence(), docs[j].Role.Precedence()
		if pi != pj {
			return pi < pj
		}
		return docs[i].File.Name < docs[j].File.Name
	})
}

// sortTags orders group tags into the two-tier convention: every MAU
// group before every non-MAU group. Within a tier, prefixes sort
// alphabetically; within a prefix, numeric suffixes ascend and
// non-numeric suffixes follow them alphabetically.
func sortTags(tags []string) {
	sort.Slice(tags, func(i, j int) bool {
		return tagLess(tags[i], tags[j])
	})
}

func tagLess(a, b string) bool {
	pa, sa, na, aNum := extract.SplitTag(a)
	pb, sb, nb, bNum := extract.SplitTag(b)

	aMAU := pa == mauPrefix
	bMAU := pb == mauPrefix
	if aMAU != bMAU {
		return aMAU
	}
	if pa != pb {
		return pa < pb
	}
	switch {
	case aNum && bNum:
		return na < nb
	case aNum != bNum:
		return aNum // numeric suffixes before alphanumeric ones
	default:
		return sa < sb
	}
}
