package gen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/dave/jennifer/jen"
	"github.com/go-openapi/inflect"
	"golang.org/x/sync/errgroup"

	"github.com/syssam/microtype/compiler/parse"
)

// Input is one declaration source to compile.
type Input struct {
	// Path identifies the source, used for diagnostics and output naming.
	Path string
	// Source is the declaration text.
	Source []byte
}

// Planned couples a spec with its validated attributes and capability plan.
type Planned struct {
	Spec *Spec
	// Passthrough holds the annotations not claimed by the generator,
	// re-emitted above the generated type.
	Passthrough []*parse.Annotation
	Attrs       *ControlAttributes
	Plan        CapabilityPlan
}

// Unit is the planned content of one input file. Every spec of the input
// lands in one generated file named after the input.
type Unit struct {
	// Package is the name of the generated package.
	Package string
	// Source is the input path the unit was planned from.
	Source string
	// Base is the snake-cased output file base name.
	Base string
	// Digest fingerprints the input source.
	Digest string
	// Specs holds the planned wrappers in declaration order.
	Specs []*Planned
}

// GenFile returns the name of the main generated file.
func (u *Unit) GenFile() string {
	return u.Base + "_gen.go"
}

// HooksFile returns the name of the guarded debug helper file.
func (u *Unit) HooksFile() string {
	return u.Base + "_hooks_gen.go"
}

// NeedsHooks reports whether any spec in the unit plans the guarded
// debug helper group.
func (u *Unit) NeedsHooks() bool {
	for _, p := range u.Specs {
		if p.Plan.TestHooks {
			return true
		}
	}
	return false
}

// Renderer renders a planned unit into a Go source file.
type Renderer interface {
	// Name identifies the renderer in logs and manifests.
	Name() string
	// RenderUnit renders the main generated file for a unit.
	RenderUnit(u *Unit) (*jen.File, error)
}

// HooksRenderer is implemented by renderers that emit the guarded debug
// helper file alongside the main one. Capability is detected via type
// assertion, renderers without it simply never produce hook files.
type HooksRenderer interface {
	RenderHooks(u *Unit) (*jen.File, error)
}

// Hook wraps a renderer with custom behavior around unit rendering.
type Hook func(Renderer) Renderer

// Generator runs the pipeline: parse, flatten, validate, dispatch, render,
// write. Validation collects diagnostics across all inputs before failing;
// nothing is written when any diagnostic exists.
type Generator struct {
	cfg      *Config
	renderer Renderer
	hooksGen HooksRenderer
	fams     Families
	writer   *Writer
}

// NewGenerator validates the config and resolves its defaults.
// A renderer must be configured; the golang package provides the default.
func NewGenerator(cfg *Config) (*Generator, error) {
	if cfg.Target == "" {
		return nil, NewConfigError("Target", nil, "missing target directory in config")
	}
	if cfg.Renderer == nil {
		return nil, NewConfigError("Renderer", nil, "no renderer set: use golang.Generate or WithRenderer")
	}
	if cfg.Package == "" {
		cfg.Package = filepath.Base(cfg.Target)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	fams, err := cfg.Families()
	if err != nil {
		return nil, err
	}
	r := cfg.Renderer
	for i := len(cfg.Hooks) - 1; i >= 0; i-- {
		r = cfg.Hooks[i](r)
	}
	g := &Generator{
		cfg:      cfg,
		renderer: r,
		fams:     fams,
		writer:   NewWriter(cfg.Target),
	}
	// Detect optional capabilities via type assertion
	if hr, ok := r.(HooksRenderer); ok {
		g.hooksGen = hr
	}
	return g, nil
}

// Families returns the resolved capability families for this run.
func (g *Generator) Families() Families {
	return g.fams
}

// Metrics returns the writer metrics for this run.
func (g *Generator) Metrics() *WriterMetrics {
	return g.writer.Metrics()
}

// Plan parses and plans every input. Diagnostics from independent inputs
// and specs accumulate; a unit is produced for every input that parsed,
// holding its cleanly planned specs.
func (g *Generator) Plan(inputs []Input) ([]*Unit, []*Diagnostic) {
	var (
		units []*Unit
		diags []*Diagnostic
		bases = make(map[string]int)
	)
	for _, in := range inputs {
		f, err := parse.Parse(in.Path, in.Source)
		if err != nil {
			diags = append(diags, syntaxDiagnostic(in.Path, err))
			continue
		}
		u := &Unit{
			Package: g.cfg.Package,
			Source:  in.Path,
			Base:    uniqueBase(bases, fileBase(in.Path)),
			Digest:  sourceDigest(in.Source),
		}
		for _, spec := range Flatten(f) {
			rest, attrs, diag := Extract(spec)
			if diag != nil {
				diags = append(diags, diag)
				continue
			}
			plan, diag := Dispatch(spec, attrs, g.fams)
			if diag != nil {
				diags = append(diags, diag)
				continue
			}
			u.Specs = append(u.Specs, &Planned{
				Spec:        spec,
				Passthrough: rest,
				Attrs:       attrs,
				Plan:        plan,
			})
		}
		units = append(units, u)
	}
	return units, diags
}

// Run executes the full pipeline for the given inputs. When any input or
// spec yields a diagnostic, Run returns the aggregate and writes nothing.
func (g *Generator) Run(ctx context.Context, inputs []Input) error {
	units, diags := g.Plan(inputs)
	if len(diags) > 0 {
		return NewDiagnosticsError(diags...)
	}
	if err := os.MkdirAll(g.cfg.Target, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := g.cleanupFeatures(); err != nil {
		return err
	}

	snapEnabled, err := g.cfg.FeatureEnabled(FeatureSnapshot.Name)
	if err != nil {
		return err
	}
	var manifest *snapshotManifest
	if snapEnabled {
		manifest = loadSnapshot(g.snapshotPath(), configDigest(g.cfg, g.fams, g.renderer.Name()))
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.cfg.Workers)

	var mu sync.Mutex
	logger := g.cfg.logger()
	current := make(map[string]bool, len(units))
	for _, u := range units {
		current[u.Source] = true
		if snapEnabled && !g.cfg.Force && manifest.unchanged(u.Source, u.Digest, g.cfg.Target) {
			logger.Debug("unchanged, skipping", "source", u.Source)
			g.writer.MarkSkipped(1)
			continue
		}
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			outputs, err := g.generateUnit(u)
			if err != nil {
				return err
			}
			if snapEnabled {
				mu.Lock()
				manifest.record(u.Source, u.Digest, outputs)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	if snapEnabled {
		for _, orphan := range manifest.prune(current) {
			if err := g.writer.RemoveFile(orphan); err != nil {
				return err
			}
		}
		if err := manifest.save(g.snapshotPath()); err != nil {
			return fmt.Errorf("save snapshot manifest: %w", err)
		}
	}

	m := g.writer.Metrics()
	logger.Info("generation complete",
		"files", m.FilesGenerated,
		"skipped", m.FilesSkipped,
		"bytes", m.TotalBytes,
	)
	return nil
}

// generateUnit renders and writes one unit, returning the written file names.
func (g *Generator) generateUnit(u *Unit) ([]string, error) {
	f, err := g.renderer.RenderUnit(u)
	if err != nil {
		return nil, NewGenerationError("render", u.GenFile(), "render unit", err)
	}
	if err := g.writer.WriteFile(f, u.GenFile()); err != nil {
		return nil, err
	}
	outputs := []string{u.GenFile()}
	if u.NeedsHooks() && g.hooksGen != nil {
		hf, err := g.hooksGen.RenderHooks(u)
		if err != nil {
			return nil, NewGenerationError("render", u.HooksFile(), "render hooks", err)
		}
		if hf != nil {
			if err := g.writer.WriteFile(hf, u.HooksFile()); err != nil {
				return nil, err
			}
			outputs = append(outputs, u.HooksFile())
			return outputs, nil
		}
	}
	// A previous run may have left a guarded helper file behind.
	if err := g.writer.RemoveFile(u.HooksFile()); err != nil {
		return nil, err
	}
	return outputs, nil
}

// cleanupFeatures applies the cleanup of every disabled feature.
func (g *Generator) cleanupFeatures() error {
	enabled := make(map[string]bool)
	fs, err := g.cfg.EnabledFeatures()
	if err != nil {
		return err
	}
	for _, f := range fs {
		enabled[f.Name] = true
	}
	var errs []error
	for _, f := range AllFeatures {
		if f.cleanup != nil && !enabled[f.Name] {
			if err := f.cleanup(g.cfg); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// snapshotPath resolves the manifest location for this run.
func (g *Generator) snapshotPath() string {
	if g.cfg.SnapshotPath != "" {
		return g.cfg.SnapshotPath
	}
	return filepath.Join(g.cfg.Target, snapshotFile)
}

// syntaxDiagnostic converts a parse failure into a located diagnostic.
func syntaxDiagnostic(path string, err error) *Diagnostic {
	var pe *parse.Error
	if errors.As(err, &pe) {
		return &Diagnostic{Kind: DiagSyntax, Path: pe.Path, Pos: pe.Pos, Msg: pe.Msg}
	}
	return &Diagnostic{Kind: DiagSyntax, Path: path, Msg: err.Error()}
}

// fileBase derives the snake-cased output base name from an input path.
func fileBase(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return inflect.Underscore(name)
}

// uniqueBase disambiguates output names when two inputs share a base name.
func uniqueBase(seen map[string]int, base string) string {
	n := seen[base]
	seen[base] = n + 1
	if n == 0 {
		return base
	}
	return fmt.Sprintf("%s_%d", base, n+1)
}

// Generate runs the full pipeline for the given inputs.
//
// A renderer must be set on the config to avoid import cycles with the
// renderer packages. Use the golang package's Generate helper to default
// to the Go renderer:
//
//	import "github.com/syssam/microtype/compiler/gen/golang"
//	err := golang.Generate(ctx, cfg, inputs)
//
// Or manually:
//
//	cfg := gen.MustNewConfig(
//		gen.WithTarget("./model"),
//		gen.WithRenderer(golang.New()),
//	)
//	err := gen.Generate(ctx, cfg, inputs)
func Generate(ctx context.Context, cfg *Config, inputs []Input) error {
	g, err := NewGenerator(cfg)
	if err != nil {
		return err
	}
	return g.Run(ctx, inputs)
}
