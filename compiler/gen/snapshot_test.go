package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotManifest_RoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), snapshotFile)

	m := newSnapshotManifest("cfg-digest")
	m.record("a.microtype", "digest-a", []string{"a_gen.go"})
	m.record("b.microtype", "digest-b", []string{"b_gen.go", "b_hooks_gen.go"})
	require.NoError(t, m.save(path))

	loaded := loadSnapshot(path, "cfg-digest")
	assert.Equal(t, snapshotVersion, loaded.Version)
	require.Len(t, loaded.Inputs, 2)
	assert.Equal(t, "digest-a", loaded.Inputs["a.microtype"].Digest)
	assert.Equal(t, []string{"b_gen.go", "b_hooks_gen.go"}, loaded.Inputs["b.microtype"].Outputs)
}

func TestLoadSnapshot_ToleratesBadManifests(t *testing.T) {
	t.Parallel()
	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		m := loadSnapshot(filepath.Join(t.TempDir(), snapshotFile), "cfg")
		assert.Empty(t, m.Inputs)
		assert.Equal(t, "cfg", m.Config)
	})
	t.Run("corrupt file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), snapshotFile)
		require.NoError(t, os.WriteFile(path, []byte("not msgpack"), 0o644))
		m := loadSnapshot(path, "cfg")
		assert.Empty(t, m.Inputs)
	})
	t.Run("config digest mismatch resets", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), snapshotFile)
		m := newSnapshotManifest("old-cfg")
		m.record("a.microtype", "digest-a", []string{"a_gen.go"})
		require.NoError(t, m.save(path))

		loaded := loadSnapshot(path, "new-cfg")
		assert.Empty(t, loaded.Inputs)
		assert.Equal(t, "new-cfg", loaded.Config)
	})
}

func TestSnapshotManifest_Unchanged(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_gen.go"), []byte("package model\n"), 0o644))

	m := newSnapshotManifest("cfg")
	m.record("a.microtype", "digest-a", []string{"a_gen.go"})

	assert.True(t, m.unchanged("a.microtype", "digest-a", dir))
	assert.False(t, m.unchanged("a.microtype", "digest-other", dir), "changed digest")
	assert.False(t, m.unchanged("missing.microtype", "digest-a", dir), "unknown input")

	// A deleted output forces regeneration.
	require.NoError(t, os.Remove(filepath.Join(dir, "a_gen.go")))
	assert.False(t, m.unchanged("a.microtype", "digest-a", dir))
}

func TestSnapshotManifest_Prune(t *testing.T) {
	t.Parallel()
	m := newSnapshotManifest("cfg")
	m.record("a.microtype", "da", []string{"a_gen.go"})
	m.record("b.microtype", "db", []string{"b_gen.go", "b_hooks_gen.go"})
	m.record("c.microtype", "dc", []string{"c_gen.go"})

	orphaned := m.prune(map[string]bool{"a.microtype": true})
	assert.Equal(t, []string{"b_gen.go", "b_hooks_gen.go", "c_gen.go"}, orphaned)
	require.Len(t, m.Inputs, 1)
	_, ok := m.Inputs["a.microtype"]
	assert.True(t, ok)
}

func TestSourceDigest(t *testing.T) {
	t.Parallel()
	a := sourceDigest([]byte("string { Email }"))
	b := sourceDigest([]byte("string { Email }"))
	c := sourceDigest([]byte("string { Username }"))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}

func TestConfigDigest(t *testing.T) {
	t.Parallel()
	base := &Config{Package: "model", Header: ""}
	same := configDigest(base, Families{Serde: true}, "golang")
	assert.Equal(t, same, configDigest(base, Families{Serde: true}, "golang"))
	assert.NotEqual(t, same, configDigest(base, Families{}, "golang"), "families differ")
	assert.NotEqual(t, same, configDigest(&Config{Package: "other"}, Families{Serde: true}, "golang"), "package differs")
	assert.NotEqual(t, same, configDigest(base, Families{Serde: true}, "stub"), "renderer differs")
}
