package gen

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/vmihailenco/msgpack/v5"
)

// snapshotFile is the manifest name stored next to the generated output.
const snapshotFile = ".microtype.snap"

// snapshotVersion guards the manifest layout. Manifests with a different
// version are discarded, never migrated.
const snapshotVersion = 1

// snapshotManifest records, per input path, the digest of the source that
// produced the current output files. Inputs whose digest has not changed
// are skipped on the next run.
type snapshotManifest struct {
	Version int                       `msgpack:"version"`
	Config  string                    `msgpack:"config"`
	Inputs  map[string]snapshotRecord `msgpack:"inputs"`
}

type snapshotRecord struct {
	Digest  string   `msgpack:"digest"`
	Outputs []string `msgpack:"outputs"`
}

// newSnapshotManifest returns an empty manifest bound to a config fingerprint.
func newSnapshotManifest(config string) *snapshotManifest {
	return &snapshotManifest{
		Version: snapshotVersion,
		Config:  config,
		Inputs:  make(map[string]snapshotRecord),
	}
}

// loadSnapshot reads the manifest at path. A missing, corrupt, or
// incompatible manifest yields a fresh one; staleness is never fatal.
func loadSnapshot(path, config string) *snapshotManifest {
	data, err := os.ReadFile(path)
	if err != nil {
		return newSnapshotManifest(config)
	}
	var m snapshotManifest
	if err := msgpack.Unmarshal(data, &m); err != nil {
		return newSnapshotManifest(config)
	}
	if m.Version != snapshotVersion || m.Config != config {
		return newSnapshotManifest(config)
	}
	if m.Inputs == nil {
		m.Inputs = make(map[string]snapshotRecord)
	}
	return &m
}

// save writes the manifest to path.
func (m *snapshotManifest) save(path string) error {
	data, err := msgpack.Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// unchanged reports whether the input can be skipped: same digest, and
// every recorded output still present under dir.
func (m *snapshotManifest) unchanged(source, digest, dir string) bool {
	rec, ok := m.Inputs[source]
	if !ok || rec.Digest != digest {
		return false
	}
	for _, out := range rec.Outputs {
		if _, err := os.Stat(filepath.Join(dir, out)); err != nil {
			return false
		}
	}
	return true
}

// record stores the outputs written for an input.
func (m *snapshotManifest) record(source, digest string, outputs []string) {
	m.Inputs[source] = snapshotRecord{Digest: digest, Outputs: outputs}
}

// prune drops records for inputs no longer present and returns the
// output files they owned, sorted.
func (m *snapshotManifest) prune(current map[string]bool) []string {
	var orphaned []string
	for source, rec := range m.Inputs {
		if !current[source] {
			orphaned = append(orphaned, rec.Outputs...)
			delete(m.Inputs, source)
		}
	}
	sort.Strings(orphaned)
	return orphaned
}

// sourceDigest fingerprints one input source.
func sourceDigest(src []byte) string {
	sum := sha256.Sum256(src)
	return hex.EncodeToString(sum[:])
}

// configDigest fingerprints the parts of the config that influence the
// generated output. A changed fingerprint invalidates the whole manifest.
func configDigest(c *Config, fams Families, renderer string) string {
	h := sha256.New()
	fmt.Fprintf(h, "pkg=%s;header=%s;renderer=%s;", c.Package, c.Header, renderer)
	fmt.Fprintf(h, "serde=%t;deref=%t;secret=%t;testdebug=%t", fams.Serde, fams.Deref, fams.Secret, fams.TestDebug)
	return hex.EncodeToString(h.Sum(nil))
}
