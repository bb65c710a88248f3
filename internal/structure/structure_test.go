// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package structure

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacobe603/dst-submittals-v2/internal/extract"
	"github.com/jacobe603/dst-submittals-v2/pkg/types"
)

func match(name, tag, docType string) types.TagMatch {
	return types.TagMatch{
		File:       types.RawFile{Name: name, Path: "/docs/" + name},
		Tag:        tag,
		DocType:    docType,
		Confidence: 1.0,
		Source:     types.SourceFilename,
	}
}

func TestBuildGroupOrdering(t *testing.T) {
	result := extract.Result{Matches: []types.TagMatch{
		match("AHU-10 - Technical Data Sheet.docx", "AHU-10", "Technical Data Sheet"),
		match("AHU-10 - Fan Curve.jpg", "AHU-10", "Fan Curve"),
		match("MAU-5 - Technical Data Sheet.docx", "MAU-5", "Technical Data Sheet"),
		match("CS_Filter.pdf", "CUTSHEET", "cutsheet"),
	}}

	s := Build(result)
	require.Len(t, s.Groups, 3)
	assert.Equal(t, "MAU-5", s.Groups[0].Tag)
	assert.Equal(t, "AHU-10", s.Groups[1].Tag)
	assert.Equal(t, types.CutSheetsTag, s.Groups[2].Tag)
	assert.True(t, s.Groups[2].IsCutSheets())
	assert.Equal(t, 4, s.DocumentCount())
}

func TestBuildRolePrecedenceWithinGroup(t *testing.T) {
	result := extract.Result{Matches: []types.TagMatch{
		match("AHU-1 - Specification.docx", "AHU-1", "Specification"),
		match("AHU-1 - Drawing.pdf", "AHU-1", "Drawing"),
		match("AHU-1 - Item Summary.docx", "AHU-1", "Item Summary"),
		match("AHU-1 - Fan Curve.jpg", "AHU-1", "Fan Curve"),
		match("AHU-1 - Technical Data Sheet.docx", "AHU-1", "Technical Data Sheet"),
	}}

	s := Build(result)
	require.Len(t, s.Groups, 1)
	docs := s.Groups[0].Documents
	require.Len(t, docs, 5)

	wantRoles := []types.DocumentRole{
		types.RoleTechnicalData,
		types.RoleFanCurve,
		types.RoleDrawing,
		types.RoleItemSummary,
		types.RoleSpecification,
	}
	for i, want := range wantRoles {
		assert.Equal(t, want, docs[i].Role, "position %d", i)
	}
}

func TestBuildOmitsCutSheetsWhenEmpty(t *testing.T) {
	result := extract.Result{Matches: []types.TagMatch{
		match("AHU-1 - Drawing.pdf", "AHU-1", "Drawing"),
	}}
	s := Build(result)
	require.Len(t, s.Groups, 1)
	assert.False(t, s.Groups[0].IsCutSheets())
}

func TestTagLess(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"MAU-5", "AHU-1", true},   // MAU tier first
		{"AHU-1", "MAU-12", false}, // even against higher MAU numbers
		{"MAU-2", "MAU-10", true},  // numeric, not lexicographic
		{"AHU-2", "AHU-10", true},  // numeric within prefix
		{"AHU-1", "RTU-1", true},   // prefix alphabetical within tier
		{"AHU-2", "AHU-D4", true},  // numeric suffixes before alphanumeric
		{"AHU-D1", "AHU-D4", true}, // alphanumeric suffixes alphabetical
		{"MAU-1", "MAU-1", false},  // irreflexive
	}
	for _, tt := range tests {
		t.Run(tt.a+"<"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, tagLess(tt.a, tt.b))
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	result := extract.Result{
		Matches: []types.TagMatch{
			match("MAU-5 - Technical Data Sheet.docx", "MAU-5", "Technical Data Sheet"),
			match("AHU-10 - Drawing.pdf", "AHU-10", "Drawing"),
			match("CS_Filter.pdf", "CUTSHEET", "cutsheet"),
		},
		Failures: []types.ExtractionFailure{
			{Name: "99_Unknown.docx", Reason: "no filename pattern matched"},
		},
	}
	s := Build(result)

	path := filepath.Join(t.TempDir(), "structure.json")
	require.NoError(t, Save(s, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)

	// YAML is selected by extension and round-trips the same document.
	yamlPath := filepath.Join(t.TempDir(), "structure.yaml")
	require.NoError(t, Save(s, yamlPath))
	loaded, err = Load(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}

func TestReadSkipsValidation(t *testing.T) {
	// Two problems at once: a duplicated tag and an entry with no path.
	s := &types.Structure{Groups: []types.EquipmentGroup{
		{Tag: "AHU-1", Documents: []types.DocumentEntry{{File: types.RawFile{Name: "a.pdf", Path: "/a.pdf"}, Role: types.RoleDrawing}}},
		{Tag: "AHU-1", Documents: []types.DocumentEntry{{File: types.RawFile{Name: "b.pdf"}, Role: types.RoleDrawing}}},
	}}
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, Save(s, path))

	_, err := Load(path)
	require.Error(t, err)

	// Read hands the document back so a caller can report every
	// problem, not just the first.
	loaded, err := Read(path)
	require.NoError(t, err)
	assert.Len(t, Validate(loaded), 2)
}

func TestValidate(t *testing.T) {
	valid := Build(extract.Result{Matches: []types.TagMatch{
		match("AHU-1 - Drawing.pdf", "AHU-1", "Drawing"),
		match("CS_Filter.pdf", "CUTSHEET", "cutsheet"),
	}})
	assert.Empty(t, Validate(valid))

	t.Run("duplicate tags", func(t *testing.T) {
		s := &types.Structure{Groups: []types.EquipmentGroup{
			{Tag: "AHU-1", Documents: []types.DocumentEntry{{File: types.RawFile{Name: "a.pdf", Path: "/a.pdf"}, Role: types.RoleDrawing}}},
			{Tag: "AHU-1", Documents: []types.DocumentEntry{{File: types.RawFile{Name: "b.pdf", Path: "/b.pdf"}, Role: types.RoleDrawing}}},
		}}
		errs := Validate(s)
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0], "more than one group")
	})

	t.Run("cut sheets not last", func(t *testing.T) {
		s := &types.Structure{Groups: []types.EquipmentGroup{
			{Tag: types.CutSheetsTag, Documents: []types.DocumentEntry{{File: types.RawFile{Name: "cs.pdf", Path: "/cs.pdf"}, Role: types.RoleCutsheet}}},
			{Tag: "AHU-1", Documents: []types.DocumentEntry{{File: types.RawFile{Name: "a.pdf", Path: "/a.pdf"}, Role: types.RoleDrawing}}},
		}}
		errs := Validate(s)
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0], "last group")
	})

	t.Run("missing file path", func(t *testing.T) {
		s := &types.Structure{Groups: []types.EquipmentGroup{
			{Tag: "AHU-1", Documents: []types.DocumentEntry{{File: types.RawFile{Name: "a.pdf"}, Role: types.RoleDrawing}}},
		}}
		errs := Validate(s)
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0], "no file path")
	})

	t.Run("unknown role string", func(t *testing.T) {
		s := &types.Structure{Groups: []types.EquipmentGroup{
			{Tag: "AHU-1", Documents: []types.DocumentEntry{{File: types.RawFile{Name: "a.pdf", Path: "/a.pdf"}, Role: types.DocumentRole("mystery")}}},
		}}
		errs := Validate(s)
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0], "unknown role")
	})
}
