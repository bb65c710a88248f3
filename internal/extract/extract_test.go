// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacobe603/dst-submittals-v2/pkg/types"
)

// fakeText is a TextExtractor serving canned text keyed by base name.
type fakeText map[string]string

func (f fakeText) Text(path string) (string, error) {
	if text, ok := f[filepath.Base(path)]; ok {
		return text, nil
	}
	return "", errors.New("no text for " + filepath.Base(path))
}

func rawFiles(names ...string) []types.RawFile {
	files := make([]types.RawFile, len(names))
	for i, n := range names {
		files[i] = types.RawFile{Name: n, Path: "/docs/" + n}
	}
	return files
}

func TestNormalizeTag(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"AHU-10", "AHU-10", true},
		{"AHU-01", "AHU-1", true},
		{"ahu-1", "AHU-1", true},
		{"AHU_03", "AHU-3", true},
		{"mau-05", "MAU-5", true},
		{"AHU-D4", "AHU-D4", true},
		{"AHU-007", "AHU-7", true},
		{"AHU", "", false},
		{"AHU-", "", false},
		{"-10", "", false},
		{"10-3", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := NormalizeTag(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeTagIdempotent(t *testing.T) {
	once, ok := NormalizeTag("ahu_01")
	require.True(t, ok)
	twice, ok := NormalizeTag(once)
	require.True(t, ok)
	assert.Equal(t, once, twice)
}

func TestExtractFileFilenamePatterns(t *testing.T) {
	opts := Options{Mode: types.ModeFilename}
	bc := NewBuildContext(nil, opts)

	tests := []struct {
		name        string
		wantTag     string
		wantDocType string
		wantConf    float64
	}{
		{"AHU-10 - Technical Data Sheet.docx", "AHU-10", "Technical Data Sheet", 1.0},
		{"AHU-10_-_Fan_Curve.pdf", "AHU-10", "Fan Curve", 1.0},
		{"MAU-5_Drawing.pdf", "MAU-5", "Drawing", 1.0},
		{"mau-05 - Specification.docx", "MAU-5", "Specification", 1.0},
		{"CS_Filter.pdf", "CUTSHEET", "cutsheet", 1.0},
		{"CS.pdf", "CUTSHEET", "cutsheet", 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok, reason := ExtractFile(types.RawFile{Name: tt.name, Path: "/docs/" + tt.name}, bc, opts)
			require.True(t, ok, "reason: %s", reason)
			assert.Equal(t, tt.wantTag, m.Tag)
			assert.Equal(t, tt.wantDocType, m.DocType)
			assert.Equal(t, tt.wantConf, m.Confidence)
			assert.Equal(t, types.SourceFilename, m.Source)
		})
	}
}

func TestExtractFileUnclassified(t *testing.T) {
	opts := Options{Mode: types.ModeFilename}
	bc := NewBuildContext(nil, opts)

	_, ok, reason := ExtractFile(types.RawFile{Name: "99_Unknown.docx"}, bc, opts)
	assert.False(t, ok)
	assert.NotEmpty(t, reason)
}

func TestNumericPrefixInheritsSiblingTag(t *testing.T) {
	files := rawFiles("10_AHU-3 - Drawing.pdf", "10_Item Summary.docx")
	opts := Options{Mode: types.ModeFilename}
	bc := NewBuildContext(files, opts)
	require.Equal(t, 1, bc.Len())

	m, ok, reason := ExtractFile(files[1], bc, opts)
	require.True(t, ok, "reason: %s", reason)
	assert.Equal(t, "AHU-3", m.Tag)
	assert.Equal(t, "Item Summary", m.DocType)
	assert.Equal(t, 0.8, m.Confidence)
}

func TestContentModeFallback(t *testing.T) {
	text := fakeText{
		"submittal_page.pdf": "Unit Tag: MAU-5\nSupply fan performance",
		"loose_notes.pdf":    "see AHU-10 for duct sizing",
		"no_tags.pdf":        "general installation notes",
	}
	opts := Options{Mode: types.ModeContent, Text: text}
	bc := NewBuildContext(nil, opts)

	m, ok, _ := ExtractFile(types.RawFile{Name: "submittal_page.pdf", Path: "/docs/submittal_page.pdf"}, bc, opts)
	require.True(t, ok)
	assert.Equal(t, "MAU-5", m.Tag)
	assert.Equal(t, 0.9, m.Confidence)
	assert.Equal(t, types.SourceContent, m.Source)

	m, ok, _ = ExtractFile(types.RawFile{Name: "loose_notes.pdf", Path: "/docs/loose_notes.pdf"}, bc, opts)
	require.True(t, ok)
	assert.Equal(t, "AHU-10", m.Tag)
	assert.Equal(t, 0.6, m.Confidence)

	_, ok, reason := ExtractFile(types.RawFile{Name: "no_tags.pdf", Path: "/docs/no_tags.pdf"}, bc, opts)
	assert.False(t, ok)
	assert.Contains(t, reason, "no tag")
}

func TestContentModeEarliestPositionWins(t *testing.T) {
	text := fakeText{
		"doc.pdf": "AHU-10 schedule excerpt ... Unit Tag: MAU-5",
	}
	opts := Options{Mode: types.ModeContent, Text: text}
	bc := NewBuildContext(nil, opts)

	m, ok, _ := ExtractFile(types.RawFile{Name: "doc.pdf", Path: "/docs/doc.pdf"}, bc, opts)
	require.True(t, ok)
	assert.Equal(t, "AHU-10", m.Tag)
	assert.Equal(t, 0.6, m.Confidence)
}

func TestExtractBatch(t *testing.T) {
	files := rawFiles(
		"AHU-10 - Technical Data Sheet.docx",
		"AHU-10 - Fan Curve.jpg",
		"MAU-5 - Technical Data Sheet.docx",
		"CS_Filter.pdf",
		"99_Unknown.docx",
	)
	var buf bytes.Buffer
	result := ExtractBatch(files, Options{Mode: types.ModeFilename}, &buf)

	require.Len(t, result.Matches, 4)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "99_Unknown.docx", result.Failures[0].Name)
	assert.True(t, result.HasFailures())

	// Matches come back in input order regardless of goroutine timing.
	assert.Equal(t, "AHU-10 - Technical Data Sheet.docx", result.Matches[0].File.Name)
	assert.Equal(t, "CS_Filter.pdf", result.Matches[3].File.Name)

	assert.Contains(t, buf.String(), "4 tagged, 1 unclassified (total: 5)")
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.pdf", "a.docx", "notes.txt", "c.PNG"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	files, err := Discover(dir)
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, "a.docx", files[0].Name)
	assert.Equal(t, "b.pdf", files[1].Name)
	assert.Equal(t, "c.PNG", files[2].Name)
	for _, f := range files {
		assert.True(t, filepath.IsAbs(f.Path))
		assert.Equal(t, int64(1), f.Size)
	}
}
