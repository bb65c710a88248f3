// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacobe603/dst-submittals-v2/pkg/types"
)

// fakeConverter records inputs and writes a marker output file. Batch
// conversion calls it from several goroutines, hence the lock.
type fakeConverter struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]bool // base name -> force failure
}

func (f *fakeConverter) Convert(_ context.Context, inputPath, outputPath string) error {
	base := filepath.Base(inputPath)
	f.mu.Lock()
	f.calls = append(f.calls, base)
	f.mu.Unlock()
	if f.fail[base] {
		return errors.New("conversion blew up")
	}
	return os.WriteFile(outputPath, []byte("%PDF-fake "+base), 0o644)
}

func TestDispatcherRouting(t *testing.T) {
	dir := t.TempDir()
	office := &fakeConverter{}
	image := &fakeConverter{}
	d := &Dispatcher{Office: office, Image: image}

	src := filepath.Join(dir, "AHU-1 - Technical Data Sheet.docx")
	require.NoError(t, os.WriteFile(src, []byte("doc"), 0o644))
	require.NoError(t, d.Convert(context.Background(), src, filepath.Join(dir, "out1.pdf")))
	assert.Len(t, office.calls, 1)
	assert.Empty(t, image.calls)

	src = filepath.Join(dir, "AHU-1 - Fan Curve.JPG")
	require.NoError(t, os.WriteFile(src, []byte("img"), 0o644))
	require.NoError(t, d.Convert(context.Background(), src, filepath.Join(dir, "out2.pdf")))
	assert.Len(t, image.calls, 1)

	// PDFs pass through as a byte copy, touching no backend.
	src = filepath.Join(dir, "AHU-1 - Drawing.pdf")
	require.NoError(t, os.WriteFile(src, []byte("%PDF original"), 0o644))
	out := filepath.Join(dir, "out3.pdf")
	require.NoError(t, d.Convert(context.Background(), src, out))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "%PDF original", string(data))
	assert.Len(t, office.calls, 1)
	assert.Len(t, image.calls, 1)
}

func TestDispatcherUnsupportedExtension(t *testing.T) {
	d := &Dispatcher{}
	err := d.Convert(context.Background(), "notes.txt", "out.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".txt")
}

func TestDispatcherMissingBackend(t *testing.T) {
	d := &Dispatcher{} // no office backend wired
	err := d.Convert(context.Background(), "report.docx", "out.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "office")
}

func TestConvertBatch(t *testing.T) {
	srcDir := t.TempDir()
	workDir := filepath.Join(t.TempDir(), "converted")

	names := []string{"AHU-1 - Drawing.docx", "AHU-1 - Fan Curve.docx", "broken.docx"}
	files := make([]types.RawFile, len(names))
	for i, n := range names {
		path := filepath.Join(srcDir, n)
		require.NoError(t, os.WriteFile(path, []byte("doc"), 0o644))
		files[i] = types.RawFile{Name: n, Path: path}
	}

	c := &fakeConverter{fail: map[string]bool{"broken.docx": true}}
	var buf bytes.Buffer
	result := ConvertBatch(context.Background(), c, files, workDir, 2, &buf)

	assert.Len(t, result.Rendered, 2)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "broken.docx", result.Failures[0].Name)
	assert.True(t, result.HasFailures())
	assert.Equal(t, 3, result.Total())

	for _, src := range files[:2] {
		out, ok := result.Rendered[src.Path]
		require.True(t, ok, "missing rendered entry for %s", src.Name)
		assert.True(t, strings.HasSuffix(out, ".pdf"))
		_, err := os.Stat(out)
		require.NoError(t, err)
	}
	assert.Contains(t, buf.String(), "failed:  broken.docx")
}

func TestConvertBatchReusesExistingOutput(t *testing.T) {
	srcDir := t.TempDir()
	workDir := t.TempDir()

	src := filepath.Join(srcDir, "AHU-1 - Drawing.docx")
	require.NoError(t, os.WriteFile(src, []byte("doc"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(workDir, "AHU-1 - Drawing.pdf"), []byte("%PDF cached"), 0o644))

	c := &fakeConverter{}
	var buf bytes.Buffer
	result := ConvertBatch(context.Background(), c,
		[]types.RawFile{{Name: "AHU-1 - Drawing.docx", Path: src}}, workDir, 1, &buf)

	assert.Empty(t, c.calls, "cached output should not be re-converted")
	assert.Equal(t, 1, result.Skipped)
	assert.Len(t, result.Rendered, 1)
	assert.Equal(t, 1, result.Total(), "reused output counts once")
	assert.Contains(t, buf.String(), "skipped:")
}
