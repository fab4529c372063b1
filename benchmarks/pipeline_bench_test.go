// Package benchmarks measures the declaration pipeline end to end over
// the fixture schemas.
package benchmarks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/microtype/compiler/gen"
	"github.com/syssam/microtype/compiler/gen/golang"
	"github.com/syssam/microtype/compiler/load"
)

// fixtureInputs reads every fixture schema once per benchmark.
func fixtureInputs(tb testing.TB) []gen.Input {
	tb.Helper()
	paths, err := load.Discover("fixtures", []string{"*.microtype"})
	require.NoError(tb, err)
	require.NotEmpty(tb, paths)
	inputs, err := load.ReadInputs(paths)
	require.NoError(tb, err)
	return load.GenInputs(inputs)
}

// BenchmarkPlan measures parse, flatten, validation, and dispatch
// without rendering or writing.
func BenchmarkPlan(b *testing.B) {
	inputs := fixtureInputs(b)
	cfg := gen.MustNewConfig(
		gen.WithTarget(b.TempDir()),
		gen.WithRenderer(golang.New()),
		gen.WithFeatureNames("secret", "deref"),
	)
	g, err := gen.NewGenerator(cfg)
	require.NoError(b, err)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		units, diags := g.Plan(inputs)
		if len(diags) > 0 || len(units) == 0 {
			b.Fatalf("plan failed: %d diagnostics", len(diags))
		}
	}
}

// BenchmarkGenerate measures the full pipeline including rendering,
// formatting, and file writes.
func BenchmarkGenerate(b *testing.B) {
	inputs := fixtureInputs(b)
	cfg := gen.MustNewConfig(
		gen.WithTarget(b.TempDir()),
		gen.WithRenderer(golang.New()),
		gen.WithFeatureNames("secret", "deref"),
	)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := gen.Generate(context.Background(), cfg, inputs); err != nil {
			b.Fatal(err)
		}
	}
}
