// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacobe603/dst-submittals-v2/pkg/types"
)

func testStore(t *testing.T, maxRuns int) *Store {
	t.Helper()
	s, err := NewStore(types.HistoryConfig{Dir: t.TempDir(), MaxRuns: maxRuns})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRun(docsPath string) Run {
	return Run{
		StartedAt:    time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC),
		DocsPath:     docsPath,
		OutputPath:   "output/submittal_20260830_140000.pdf",
		Pages:        42,
		Groups:       3,
		Documents:    9,
		Tagged:       9,
		Unclassified: 1,
		Warnings: []types.AssemblyWarning{
			{Tag: "AHU-10", Name: "pricing.pdf", Reason: "all pages carried pricing"},
		},
		Failures: []types.ExtractionFailure{
			{Name: "99_Unknown.docx", Reason: "no filename pattern matched"},
		},
	}
}

func TestRecordAndList(t *testing.T) {
	s := testStore(t, 0)

	id, err := s.Record(sampleRun("/jobs/lincoln-high"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	runs, err := s.List(0)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	got := runs[0]
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "/jobs/lincoln-high", got.DocsPath)
	assert.Equal(t, 42, got.Pages)
	assert.Equal(t, 3, got.Groups)
	assert.True(t, got.StartedAt.Equal(sampleRun("").StartedAt))
	require.Len(t, got.Warnings, 1)
	assert.Equal(t, "AHU-10", got.Warnings[0].Tag)
	require.Len(t, got.Failures, 1)
	assert.Equal(t, "99_Unknown.docx", got.Failures[0].Name)
}

func TestListNewestFirstWithLimit(t *testing.T) {
	s := testStore(t, 0)
	for i := 0; i < 5; i++ {
		_, err := s.Record(sampleRun(fmt.Sprintf("/jobs/run-%d", i)))
		require.NoError(t, err)
	}

	runs, err := s.List(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "/jobs/run-4", runs[0].DocsPath)
	assert.Equal(t, "/jobs/run-3", runs[1].DocsPath)
}

func TestMaxRunsPruning(t *testing.T) {
	s := testStore(t, 3)
	for i := 0; i < 5; i++ {
		_, err := s.Record(sampleRun(fmt.Sprintf("/jobs/run-%d", i)))
		require.NoError(t, err)
	}

	runs, err := s.List(0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "/jobs/run-4", runs[0].DocsPath)
	assert.Equal(t, "/jobs/run-2", runs[2].DocsPath)
}

func TestEmptyHistory(t *testing.T) {
	s := testStore(t, 0)
	runs, err := s.List(0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
