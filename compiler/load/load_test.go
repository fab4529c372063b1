package load

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromReader(t *testing.T) {
	t.Parallel()

	src := `
package: model
target: ./model
inputs:
  - schema/*.microtype
features: [deref, snapshot]
disabled: [serde]
header: "Source: schema"
`
	c, err := FromReader(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, "model", c.Package)
	assert.Equal(t, "./model", c.Target)
	assert.Equal(t, []string{"schema/*.microtype"}, c.Inputs)
	assert.Equal(t, []string{"deref", "snapshot"}, c.Features)
	assert.Equal(t, []string{"serde"}, c.Disabled)
	assert.Equal(t, "Source: schema", c.Header)
}

func TestFromReaderDefaults(t *testing.T) {
	t.Parallel()

	c, err := FromReader(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, ".", c.Target)
	assert.Equal(t, []string{"*.microtype"}, c.Inputs)
	assert.Empty(t, c.Package)
}

func TestFromReaderRejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unknown feature", "features: [turbo]", "unknown feature name"},
		{"bad package name", "package: 9model", "not a valid Go package name"},
		{"unknown field", "pakcage: model", "decode project config"},
		{"bad glob", `inputs: ["[oops"]`, "malformed glob pattern"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := FromReader(strings.NewReader(tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestConfigErrorIs(t *testing.T) {
	t.Parallel()

	_, err := FromReader(strings.NewReader("features: [turbo]"))
	require.ErrorIs(t, err, ErrConfig)
}

func TestFromFileMissing(t *testing.T) {
	t.Parallel()

	c, err := FromFile(filepath.Join(t.TempDir(), ConfigFile))
	require.NoError(t, err)
	assert.Equal(t, ".", c.Target)
	assert.Equal(t, []string{"*.microtype"}, c.Inputs)
}

func TestFromDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := "package: ids\ntarget: ./ids\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte(cfg), 0o644))

	c, err := FromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, "ids", c.Package)
	assert.Equal(t, "./ids", c.Target)
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "schema"), 0o755))
	for _, name := range []string{"b.microtype", "a.microtype", "notes.txt", "schema/c.microtype"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("string { X }"), 0o644))
	}

	// Overlapping globs de-duplicate; non-declaration files are skipped
	// even when a glob matches them; output is sorted.
	paths, err := Discover(dir, []string{"*.microtype", "*", "schema/*.microtype"})
	require.NoError(t, err)
	require.Len(t, paths, 3)
	assert.Equal(t, filepath.Join(dir, "a.microtype"), paths[0])
	assert.Equal(t, filepath.Join(dir, "b.microtype"), paths[1])
	assert.Equal(t, filepath.Join(dir, "schema", "c.microtype"), paths[2])
}

func TestReadInputs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "ids.microtype")
	require.NoError(t, os.WriteFile(path, []byte("string { UserID }"), 0o644))

	inputs, err := ReadInputs([]string{path})
	require.NoError(t, err)
	require.Len(t, inputs, 1)
	assert.Equal(t, path, inputs[0].Path)
	assert.Equal(t, "string { UserID }", string(inputs[0].Source))

	gi := GenInputs(inputs)
	require.Len(t, gi, 1)
	assert.Equal(t, path, gi[0].Path)
}

func TestOptions(t *testing.T) {
	t.Parallel()

	c := &Config{Package: "model", Target: "./model", Features: []string{"secret"}, Disabled: []string{"serde"}}
	c.Defaults()
	require.NoError(t, c.Validate())
	assert.Len(t, c.Options(), 4)
}
