package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dave/jennifer/jen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_WriteFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	w := NewWriter(dir)

	f := jen.NewFile("model")
	f.HeaderComment("Code generated by microtype. DO NOT EDIT.")
	f.Type().Id("Email").Struct(jen.Id("v").String())

	require.NoError(t, w.WriteFile(f, "types_gen.go"))

	data, err := os.ReadFile(filepath.Join(dir, "types_gen.go"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "package model")
	assert.Contains(t, string(data), "type Email struct")

	m := w.Metrics()
	assert.Equal(t, 1, m.FilesGenerated)
	assert.Equal(t, int64(len(data)), m.TotalBytes)
}

func TestWriter_WriteFileCreatesSubdirectories(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	w := NewWriter(dir)

	f := jen.NewFile("internal")
	f.Var().Id("marker").Op("=").Lit(1)

	require.NoError(t, w.WriteFile(f, filepath.Join("internal", "marker_gen.go")))
	_, err := os.Stat(filepath.Join(dir, "internal", "marker_gen.go"))
	assert.NoError(t, err)
}

func TestWriter_RenderFailure(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	w := NewWriter(dir)

	// A file-level statement that is not a declaration fails to render.
	f := jen.NewFile("model")
	f.Id("not a declaration")

	err := w.WriteFile(f, "broken_gen.go")
	require.Error(t, err)
	assert.True(t, IsGenerationError(err))

	// Nothing is written for a file that fails to render.
	_, statErr := os.Stat(filepath.Join(dir, "broken_gen.go"))
	assert.True(t, os.IsNotExist(statErr))
	assert.Equal(t, 0, w.Metrics().FilesGenerated)
}

func TestWriter_RemoveFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	w := NewWriter(dir)

	path := filepath.Join(dir, "stale_gen.go")
	require.NoError(t, os.WriteFile(path, []byte("package model\n"), 0o644))

	require.NoError(t, w.RemoveFile("stale_gen.go"))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	assert.Equal(t, 1, w.Metrics().FilesRemoved)

	// Removing a missing file is not an error and not counted.
	require.NoError(t, w.RemoveFile("stale_gen.go"))
	assert.Equal(t, 1, w.Metrics().FilesRemoved)
}

func TestWriter_MarkSkipped(t *testing.T) {
	t.Parallel()
	w := NewWriter(t.TempDir())
	w.MarkSkipped(2)
	w.MarkSkipped(1)
	assert.Equal(t, 3, w.Metrics().FilesSkipped)
}
