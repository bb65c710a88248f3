// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"path/filepath"
	"strings"

	"github.com/jacobe603/dst-submittals-v2/pkg/types"
)

// BuildContext owns the numeric-prefix-to-tag mapping used to resolve
// legacy "10_Item Summary.docx" filenames. It is built in a single
// sequential pass over the whole batch and is read-only afterwards, so
// the parallel extraction pass can share it without locking.
type BuildContext struct {
	prefixTags map[string]string
}

// NewBuildContext scans the batch sequentially and records a
// prefix→tag entry whenever a numeric-prefixed file resolves to a tag
// by some other means: an explicit tag following the prefix in the same
// name ("10_AHU-3 - Drawing"), or a content-mode hit when content mode
// is enabled. Sibling files sharing the prefix then inherit the tag.
func NewBuildContext(files []types.RawFile, opts Options) *BuildContext {
	bc := &BuildContext{prefixTags: make(map[string]string)}

	for _, f := range files {
		stem := strings.TrimSuffix(f.Name, filepath.Ext(f.Name))
		m := numericPrefixPattern.FindStringSubmatch(stem)
		if m == nil {
			continue
		}
		num, rest := m[1], m[2]
		if _, seen := bc.prefixTags[num]; seen {
			continue
		}

		// An explicit tag may follow the numeric prefix.
		if em := explicitDashPattern.FindStringSubmatch(rest); em != nil {
			if tag, ok := NormalizeTag(em[1]); ok {
				bc.prefixTags[num] = tag
				continue
			}
		}

		if opts.Mode == types.ModeContent && opts.Text != nil {
			if cm, ok, err := matchContent(f, opts); err == nil && ok {
				bc.prefixTags[num] = cm.Tag
			}
		}
	}

	return bc
}

// Resolve returns the tag recorded for a numeric prefix.
func (bc *BuildContext) Resolve(num string) (tag string, ok bool) {
	tag, ok = bc.prefixTags[num]
	return tag, ok
}

// Len returns the number of known prefix mappings.
func (bc *BuildContext) Len() int {
	return len(bc.prefixTags)
}
