package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "nested")
	fm := NewFileManager(dir, "")

	require.NoError(t, fm.EnsureOutputDir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Idempotent on an existing directory.
	assert.NoError(t, fm.EnsureOutputDir())
}

func TestArchiveBatchFile(t *testing.T) {
	tmp := t.TempDir()
	source := filepath.Join(tmp, "utlägg_20240315_po3.txt")
	require.NoError(t, os.WriteFile(source, []byte("MH00\nMT00"), 0o644))

	fm := NewFileManager(tmp, filepath.Join(tmp, "archive"))

	archived, err := fm.ArchiveBatchFile(source)
	require.NoError(t, err)

	content, err := os.ReadFile(archived)
	require.NoError(t, err)
	assert.Equal(t, "MH00\nMT00", string(content))

	base := filepath.Base(archived)
	assert.True(t, strings.HasPrefix(base, "utlägg_20240315_po3_"), "name %q", base)
	assert.True(t, strings.HasSuffix(base, ".txt"), "name %q", base)

	// The source stays in place; archival is a copy.
	_, err = os.Stat(source)
	assert.NoError(t, err)
}

func TestArchiveBatchFileNamesNeverCollide(t *testing.T) {
	tmp := t.TempDir()
	source := filepath.Join(tmp, "utlägg_20240315_po3.txt")
	require.NoError(t, os.WriteFile(source, []byte("MH00"), 0o644))

	fm := NewFileManager(tmp, filepath.Join(tmp, "archive"))

	first, err := fm.ArchiveBatchFile(source)
	require.NoError(t, err)
	second, err := fm.ArchiveBatchFile(source)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestArchiveBatchFileMissingSource(t *testing.T) {
	tmp := t.TempDir()
	fm := NewFileManager(tmp, filepath.Join(tmp, "archive"))

	_, err := fm.ArchiveBatchFile(filepath.Join(tmp, "missing.txt"))
	assert.Error(t, err)
}
