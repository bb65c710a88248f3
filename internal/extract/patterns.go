// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/jacobe603/dst-submittals-v2/pkg/types"
)

// Filename patterns, tried in priority order. First match wins; later
// patterns are not attempted once one matches.
var (
	// explicitDashPattern matches "AHU-10 - Technical Data Sheet".
	explicitDashPattern = regexp.MustCompile(`^([A-Za-z]{1,6}[-_][A-Za-z0-9]+)\s+-\s+(.+)$`)

	// secureDashPattern matches the sanitized upload form
	// "AHU-10_-_Technical_Data_Sheet".
	secureDashPattern = regexp.MustCompile(`^([A-Za-z]{1,6}[-_][A-Za-z0-9]+)_-_(.+)$`)

	// numericPrefixPattern matches the legacy form "10_Item Summary".
	// The prefix is not a tag; it resolves through the build context.
	numericPrefixPattern = regexp.MustCompile(`^([0-9]+)[_ -](.+)$`)

	// cutSheetPattern matches cut-sheet files: "CS_Filter.pdf",
	// "CS Filter.pdf", "CS-Filter.pdf", or a bare "CS".
	cutSheetPattern = regexp.MustCompile(`(?i)^cs([ _-].*)?$`)
)

// secureUnderscorePattern matches "AHU-10_Drawing" style names where the
// tag prefix belongs to the vocabulary. Built per vocabulary since an
// unrestricted form would eat names like "Fan_Curve_Notes".
func secureUnderscorePattern(vocab []string) *regexp.Regexp {
	alts := make([]string, len(vocab))
	for i, v := range vocab {
		alts[i] = regexp.QuoteMeta(v)
	}
	return regexp.MustCompile(`(?i)^((?:` + strings.Join(alts, "|") + `)[-_][A-Za-z0-9]+)_(.+)$`)
}

// matchFilename applies the ordered filename pattern table to the file's
// stem. Cut-sheet files short-circuit to the literal CUTSHEET tag before
// any tag pattern runs, mirroring the rule that CS files never carry
// equipment tags.
func matchFilename(file types.RawFile, bc *BuildContext, vocab []string) (types.TagMatch, bool) {
	stem := strings.TrimSuffix(file.Name, filepath.Ext(file.Name))

	if cutSheetPattern.MatchString(stem) {
		return types.TagMatch{
			File:       file,
			Tag:        "CUTSHEET",
			DocType:    "cutsheet",
			Confidence: 1.0,
			Source:     types.SourceFilename,
		}, true
	}

	if m := explicitDashPattern.FindStringSubmatch(stem); m != nil {
		if tag, ok := NormalizeTag(m[1]); ok {
			return explicitMatch(file, tag, strings.TrimSpace(m[2])), true
		}
	}

	if m := secureDashPattern.FindStringSubmatch(stem); m != nil {
		if tag, ok := NormalizeTag(m[1]); ok {
			return explicitMatch(file, tag, underscoresToSpaces(m[2])), true
		}
	}

	if m := secureUnderscorePattern(vocab).FindStringSubmatch(stem); m != nil {
		if tag, ok := NormalizeTag(m[1]); ok {
			return explicitMatch(file, tag, underscoresToSpaces(m[2])), true
		}
	}

	if m := numericPrefixPattern.FindStringSubmatch(stem); m != nil {
		if tag, ok := bc.Resolve(m[1]); ok {
			return types.TagMatch{
				File:       file,
				Tag:        tag,
				DocType:    underscoresToSpaces(m[2]),
				Confidence: 0.8,
				Source:     types.SourceFilename,
			}, true
		}
	}

	return types.TagMatch{}, false
}

func explicitMatch(file types.RawFile, tag, docType string) types.TagMatch {
	return types.TagMatch{
		File:       file,
		Tag:        tag,
		DocType:    docType,
		Confidence: 1.0,
		Source:     types.SourceFilename,
	}
}

func underscoresToSpaces(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "_", " "))
}

// NormalizeTag canonicalizes a raw tag token to PREFIX-SUFFIX form: the
// prefix uppercased, underscore separators rewritten to a hyphen, and
// numeric suffixes re-rendered without leading zeros so AHU-01 and AHU-1
// collapse to the same tag. The prefix must be alphabetic; suffixes may
// be alphanumeric (AHU-D4). Any alphabetic prefix is accepted; the
// vocabulary gates content-mode scanning only. ok is false when the
// token is not tag-shaped.
func NormalizeTag(raw string) (tag string, ok bool) {
	raw = strings.TrimSpace(raw)
	sep := strings.IndexAny(raw, "-_")
	if sep <= 0 || sep == len(raw)-1 {
		return "", false
	}

	prefix := strings.ToUpper(raw[:sep])
	suffix := strings.ToUpper(raw[sep+1:])
	for _, r := range prefix {
		if r < 'A' || r > 'Z' {
			return "", false
		}
	}
	if n, err := strconv.Atoi(suffix); err == nil {
		suffix = strconv.Itoa(n)
	}
	return prefix + "-" + suffix, true
}

// SplitTag breaks a normalized tag into its prefix and suffix. The
// numeric return is valid only when isNum is true.
func SplitTag(tag string) (prefix, suffix string, num int, isNum bool) {
	sep := strings.Index(tag, "-")
	if sep < 0 {
		return tag, "", 0, false
	}
	prefix, suffix = tag[:sep], tag[sep+1:]
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return prefix, suffix, 0, false
	}
	return prefix, suffix, n, true
}
