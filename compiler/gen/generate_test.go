package gen

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/dave/jennifer/jen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/microtype/compiler/parse"
)

// stubRenderer emits one constant per planned spec, enough to exercise
// the pipeline without the full Go renderer.
type stubRenderer struct{}

func (stubRenderer) Name() string { return "stub" }

func (stubRenderer) RenderUnit(u *Unit) (*jen.File, error) {
	f := jen.NewFile(u.Package)
	f.HeaderComment("Code generated by microtype. DO NOT EDIT.")
	for _, p := range u.Specs {
		f.Const().Id("_" + p.Spec.Name + "Planned").Op("=").Lit(p.Plan.String())
	}
	return f, nil
}

func (stubRenderer) RenderHooks(u *Unit) (*jen.File, error) {
	if !u.NeedsHooks() {
		return nil, nil
	}
	f := jen.NewFile(u.Package)
	f.HeaderComment("Code generated by microtype. DO NOT EDIT.")
	f.Const().Id("_" + u.Base + "HooksPlanned").Op("=").True()
	return f, nil
}

func testConfig(t *testing.T, opts ...Option) *Config {
	t.Helper()
	base := []Option{
		WithTarget(t.TempDir()),
		WithPackage("model"),
		WithRenderer(stubRenderer{}),
	}
	cfg, err := NewConfig(append(base, opts...)...)
	require.NoError(t, err)
	return cfg
}

func TestNewGenerator_Validation(t *testing.T) {
	t.Parallel()
	t.Run("missing target", func(t *testing.T) {
		t.Parallel()
		_, err := NewGenerator(&Config{Renderer: stubRenderer{}})
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})
	t.Run("missing renderer", func(t *testing.T) {
		t.Parallel()
		_, err := NewGenerator(&Config{Target: t.TempDir()})
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})
	t.Run("defaults resolved", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{Target: "/tmp/out/model", Renderer: stubRenderer{}}
		g, err := NewGenerator(cfg)
		require.NoError(t, err)
		assert.Equal(t, "model", cfg.Package)
		assert.Positive(t, cfg.Workers)
		assert.True(t, g.Families().Serde)
	})
}

func TestGenerator_Plan(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t, WithPackage("model"), WithFeatures(FeatureSecret))
	g, err := NewGenerator(cfg)
	require.NoError(t, err)

	units, diags := g.Plan([]Input{
		{Path: "user_types.microtype", Source: []byte(`
string { Email, Username }
#[secret] string { Password }
`)},
		{Path: "OrderTypes.microtype", Source: []byte(`#[int] int64 { OrderID }`)},
	})
	require.Empty(t, diags)
	require.Len(t, units, 2)

	assert.Equal(t, "user_types", units[0].Base)
	assert.Equal(t, "user_types_gen.go", units[0].GenFile())
	assert.Equal(t, "user_types_hooks_gen.go", units[0].HooksFile())
	assert.Len(t, units[0].Specs, 3)
	assert.True(t, units[0].NeedsHooks())
	assert.NotEmpty(t, units[0].Digest)

	assert.Equal(t, "order_types", units[1].Base)
	assert.False(t, units[1].NeedsHooks())
}

func TestGenerator_Plan_CollectsAcrossInputs(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t)
	g, err := NewGenerator(cfg)
	require.NoError(t, err)

	units, diags := g.Plan([]Input{
		{Path: "bad_syntax.microtype", Source: []byte(`string {`)},
		{Path: "bad_attrs.microtype", Source: []byte(`#[string]
#[string]
string { Email }
#[int]
#[int]
int { Age }
`)},
		{Path: "good.microtype", Source: []byte(`string { Email }`)},
	})
	require.Len(t, diags, 3)
	assert.ErrorIs(t, diags[0], parse.ErrSyntax)
	assert.Equal(t, "bad_syntax.microtype", diags[0].Path)
	assert.ErrorIs(t, diags[1], ErrDuplicateAttribute)
	assert.Equal(t, "Email", diags[1].Spec)
	assert.ErrorIs(t, diags[2], ErrDuplicateAttribute)
	assert.Equal(t, "Age", diags[2].Spec)

	// The unparsable input yields no unit; planned units keep only clean specs.
	require.Len(t, units, 2)
	assert.Empty(t, units[0].Specs)
	require.Len(t, units[1].Specs, 1)
	assert.Equal(t, "Email", units[1].Specs[0].Spec.Name)
}

func TestGenerator_Run_WritesFiles(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t, WithFeatures(FeatureSecret))
	g, err := NewGenerator(cfg)
	require.NoError(t, err)

	err = g.Run(context.Background(), []Input{
		{Path: "types.microtype", Source: []byte(`
string { Email }
#[secret] string { Password }
`)},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(cfg.Target, "types_gen.go"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Code generated by microtype. DO NOT EDIT.")
	assert.Contains(t, string(data), "_EmailPlanned")
	assert.Contains(t, string(data), "_PasswordPlanned")

	_, err = os.Stat(filepath.Join(cfg.Target, "types_hooks_gen.go"))
	require.NoError(t, err)

	m := g.Metrics()
	assert.Equal(t, 2, m.FilesGenerated)
	assert.Positive(t, m.TotalBytes)
}

func TestGenerator_Run_DiagnosticsWriteNothing(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t)
	g, err := NewGenerator(cfg)
	require.NoError(t, err)

	err = g.Run(context.Background(), []Input{
		{Path: "good.microtype", Source: []byte(`string { Email }`)},
		{Path: "bad.microtype", Source: []byte(`#[secret] string { Password }`)},
	})
	require.Error(t, err)
	de, ok := AsDiagnostics(err)
	require.True(t, ok)
	require.Len(t, de.Diags, 1)
	assert.ErrorIs(t, err, ErrUnsupportedCombination)

	entries, err := os.ReadDir(cfg.Target)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGenerator_Run_RemovesStaleHooksFile(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t, WithFeatures(FeatureSecret))
	input := Input{Path: "types.microtype", Source: []byte(`#[secret] string { Password }`)}

	g, err := NewGenerator(cfg)
	require.NoError(t, err)
	require.NoError(t, g.Run(context.Background(), []Input{input}))
	hooks := filepath.Join(cfg.Target, "types_hooks_gen.go")
	_, err = os.Stat(hooks)
	require.NoError(t, err)

	// With testdebug on, the helpers fold into the main file and the
	// guarded file from the previous run is removed.
	cfg2, err := NewConfig(
		WithTarget(cfg.Target),
		WithPackage("model"),
		WithRenderer(stubRenderer{}),
		WithFeatures(FeatureSecret, FeatureTestDebug),
	)
	require.NoError(t, err)
	g2, err := NewGenerator(cfg2)
	require.NoError(t, err)
	require.NoError(t, g2.Run(context.Background(), []Input{input}))

	_, err = os.Stat(hooks)
	assert.True(t, os.IsNotExist(err))
	assert.Equal(t, 1, g2.Metrics().FilesRemoved)
}

func TestGenerator_Run_SnapshotSkipsUnchanged(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t, WithFeatures(FeatureSnapshot))
	inputs := []Input{
		{Path: "a.microtype", Source: []byte(`string { Email }`)},
		{Path: "b.microtype", Source: []byte(`int64 { CustomerID }`)},
	}

	g, err := NewGenerator(cfg)
	require.NoError(t, err)
	require.NoError(t, g.Run(context.Background(), inputs))
	assert.Equal(t, 2, g.Metrics().FilesGenerated)
	_, err = os.Stat(filepath.Join(cfg.Target, snapshotFile))
	require.NoError(t, err)

	rerun := func(t *testing.T, opts ...Option) *Generator {
		t.Helper()
		c, err := NewConfig(append([]Option{
			WithTarget(cfg.Target),
			WithPackage("model"),
			WithRenderer(stubRenderer{}),
			WithFeatures(FeatureSnapshot),
		}, opts...)...)
		require.NoError(t, err)
		g, err := NewGenerator(c)
		require.NoError(t, err)
		return g
	}

	t.Run("unchanged inputs are skipped", func(t *testing.T) {
		g := rerun(t)
		require.NoError(t, g.Run(context.Background(), inputs))
		assert.Equal(t, 0, g.Metrics().FilesGenerated)
		assert.Equal(t, 2, g.Metrics().FilesSkipped)
	})

	t.Run("changed input regenerates", func(t *testing.T) {
		g := rerun(t)
		changed := []Input{
			inputs[0],
			{Path: "b.microtype", Source: []byte(`int64 { CustomerID, OrderID }`)},
		}
		require.NoError(t, g.Run(context.Background(), changed))
		assert.Equal(t, 1, g.Metrics().FilesGenerated)
		assert.Equal(t, 1, g.Metrics().FilesSkipped)
	})

	t.Run("force regenerates everything", func(t *testing.T) {
		g := rerun(t, WithForce(true))
		require.NoError(t, g.Run(context.Background(), inputs))
		assert.Equal(t, 2, g.Metrics().FilesGenerated)
		assert.Equal(t, 0, g.Metrics().FilesSkipped)
	})

	t.Run("removed input prunes its outputs", func(t *testing.T) {
		g := rerun(t)
		require.NoError(t, g.Run(context.Background(), inputs[:1]))
		_, err := os.Stat(filepath.Join(cfg.Target, "b_gen.go"))
		assert.True(t, os.IsNotExist(err))
	})
}

func TestGenerator_Run_DeletedOutputRegenerates(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t, WithFeatures(FeatureSnapshot))
	inputs := []Input{{Path: "a.microtype", Source: []byte(`string { Email }`)}}

	g, err := NewGenerator(cfg)
	require.NoError(t, err)
	require.NoError(t, g.Run(context.Background(), inputs))
	require.NoError(t, os.Remove(filepath.Join(cfg.Target, "a_gen.go")))

	g2, err := NewGenerator(MustNewConfig(
		WithTarget(cfg.Target),
		WithPackage("model"),
		WithRenderer(stubRenderer{}),
		WithFeatures(FeatureSnapshot),
	))
	require.NoError(t, err)
	require.NoError(t, g2.Run(context.Background(), inputs))
	assert.Equal(t, 1, g2.Metrics().FilesGenerated)
}

func TestGenerator_Hooks(t *testing.T) {
	t.Parallel()
	var rendered atomic.Int32
	counting := func(next Renderer) Renderer {
		return renderCounter{next: next, n: &rendered}
	}
	cfg := testConfig(t, WithHooks(counting))
	g, err := NewGenerator(cfg)
	require.NoError(t, err)

	err = g.Run(context.Background(), []Input{
		{Path: "a.microtype", Source: []byte(`string { Email }`)},
		{Path: "b.microtype", Source: []byte(`string { Username }`)},
	})
	require.NoError(t, err)
	assert.Equal(t, int32(2), rendered.Load())
}

type renderCounter struct {
	next Renderer
	n    *atomic.Int32
}

func (r renderCounter) Name() string { return r.next.Name() }

func (r renderCounter) RenderUnit(u *Unit) (*jen.File, error) {
	r.n.Add(1)
	return r.next.RenderUnit(u)
}

func TestFileBase(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "user_types", fileBase("schema/UserTypes.microtype"))
	assert.Equal(t, "types", fileBase("types.microtype"))
	assert.Equal(t, "order_v2", fileBase("/abs/path/order_v2.microtype"))
}

func TestUniqueBase(t *testing.T) {
	t.Parallel()
	seen := make(map[string]int)
	assert.Equal(t, "types", uniqueBase(seen, "types"))
	assert.Equal(t, "types_2", uniqueBase(seen, "types"))
	assert.Equal(t, "types_3", uniqueBase(seen, "types"))
	assert.Equal(t, "other", uniqueBase(seen, "other"))
}
