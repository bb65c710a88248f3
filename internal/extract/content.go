// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jacobe603/dst-submittals-v2/pkg/types"
)

// labeledTagPattern matches explicitly labeled tags in document text,
// e.g. "Unit Tag: AHU-10" or "Equipment ID: MAU-5". A labeled hit is
// stronger evidence than a bare token and scores 0.9.
var labeledTagPattern = regexp.MustCompile(`(?i)(?:unit tag|equipment id|unit|tag)\s*:\s*([A-Za-z]{1,6}-[A-Za-z0-9]+)`)

// bareTagPattern matches bare tag tokens over the vocabulary, e.g.
// "AHU-10" in running text. Scores 0.6.
func bareTagPattern(vocab []string) *regexp.Regexp {
	alts := make([]string, len(vocab))
	for i, v := range vocab {
		alts[i] = regexp.QuoteMeta(v)
	}
	return regexp.MustCompile(`(?i)\b((?:` + strings.Join(alts, "|") + `)-[0-9]+[A-Za-z0-9]*)\b`)
}

// matchContent scans the document text for tag candidates. When several
// distinct tags appear, the first occurrence by text position wins; the
// labeled form wins a positional tie. Documents with no candidate at all
// stay unclassified.
func matchContent(file types.RawFile, opts Options) (types.TagMatch, bool, error) {
	text, err := opts.Text.Text(file.Path)
	if err != nil {
		return types.TagMatch{}, false, err
	}

	vocab := opts.vocabulary()
	best := -1
	var bestTag string
	var bestConfidence float64

	if loc := labeledTagPattern.FindStringSubmatchIndex(text); loc != nil {
		if tag, ok := NormalizeTag(text[loc[2]:loc[3]]); ok {
			best = loc[0]
			bestTag = tag
			bestConfidence = 0.9
		}
	}

	if loc := bareTagPattern(vocab).FindStringSubmatchIndex(text); loc != nil {
		if tag, ok := NormalizeTag(text[loc[2]:loc[3]]); ok {
			if best < 0 || loc[0] < best {
				best = loc[0]
				bestTag = tag
				bestConfidence = 0.6
			}
		}
	}

	if best < 0 {
		return types.TagMatch{}, false, nil
	}

	return types.TagMatch{
		File:       file,
		Tag:        bestTag,
		DocType:    docTypeFromStem(file.Name),
		Confidence: bestConfidence,
		Source:     types.SourceContent,
	}, true, nil
}

// docTypeFromStem recovers a document-type string from a filename whose
// tag came from content, e.g. "10_Fan_Curve.doc" → "Fan Curve". With no
// recognizable remainder the whole stem is the type string, leaving the
// classifier to sort it out.
func docTypeFromStem(name string) string {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if m := numericPrefixPattern.FindStringSubmatch(stem); m != nil {
		return underscoresToSpaces(m[2])
	}
	return underscoresToSpaces(stem)
}
