// Package golang renders planned microtype units into Go source files.
//
// This package implements the gen.Renderer interface and is the default
// code generation backend.
//
// Usage:
//
//	import (
//	    "github.com/syssam/microtype/compiler/gen"
//	    "github.com/syssam/microtype/compiler/gen/golang"
//	)
//
//	cfg := gen.MustNewConfig(
//	    gen.WithPackage("model"),
//	    gen.WithTarget("./model"),
//	)
//	err := golang.Generate(ctx, cfg, inputs)
//
// Generated code structure:
//
//	{target}/
//	├── {input}_gen.go        # Wrapper types of one declaration file
//	└── {input}_hooks_gen.go  # Secret debug helpers, guarded by the
//	                          # microtypetest build tag
package golang

import (
	"context"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/microtype/compiler/gen"
)

// Generate runs the full pipeline with the Go renderer. This is the
// recommended entry point for code generation.
//
// A renderer already present on the config is kept, which allows hooks
// and tests to substitute their own.
//
// Example:
//
//	cfg := gen.MustNewConfig(gen.WithTarget("./model"))
//	err := golang.Generate(ctx, cfg, inputs)
func Generate(ctx context.Context, cfg *gen.Config, inputs []gen.Input) error {
	if cfg.Renderer == nil {
		cfg.Renderer = New(WithHeader(cfg.Header))
	}
	return gen.Generate(ctx, cfg, inputs)
}

// Renderer renders planned units into Go source files: one wrapper
// type per spec with the capability groups its plan names.
type Renderer struct {
	header string
}

// Option configures the renderer.
type Option func(*Renderer)

// WithHeader adds an extra header comment line to every generated file.
func WithHeader(line string) Option {
	return func(r *Renderer) {
		r.header = line
	}
}

// New creates the Go renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name returns the renderer name recorded in logs and snapshots.
func (r *Renderer) Name() string {
	return "golang"
}

// RenderUnit renders the main generated file for a unit. Specs render
// in declaration order, capability groups in their plan order.
func (r *Renderer) RenderUnit(u *gen.Unit) (*jen.File, error) {
	f := r.newFile(u.Package)
	for _, p := range u.Specs {
		if err := renderSpec(f, p); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// RenderHooks renders the guarded debug helper file for units with
// secret specs whose helpers stay behind the microtypetest build tag.
func (r *Renderer) RenderHooks(u *gen.Unit) (*jen.File, error) {
	if !u.NeedsHooks() {
		return nil, nil
	}
	f := r.newFile(u.Package)
	f.HeaderComment("//go:build microtypetest")
	for _, p := range u.Specs {
		if !p.Plan.TestHooks {
			continue
		}
		inner, err := resolveInner(p)
		if err != nil {
			return nil, err
		}
		genDebugHelpers(f, p, inner)
	}
	return f, nil
}

// newFile opens a generated file with the standard header.
func (r *Renderer) newFile(pkg string) *jen.File {
	f := jen.NewFile(pkg)
	f.HeaderComment("Code generated by microtype. DO NOT EDIT.")
	if r.header != "" {
		f.HeaderComment(r.header)
	}
	return f
}

// renderSpec renders one planned wrapper into the file. The inner type
// and the declared column type resolve first, so an unmappable spec
// fails before anything of it is emitted.
func renderSpec(f *jen.File, p *gen.Planned) error {
	inner, err := resolveInner(p)
	if err != nil {
		return err
	}
	col, err := resolveColumn(p, inner)
	if err != nil {
		return err
	}

	if p.Plan.Secret() {
		if p.Plan.SecretStringOps && inner.class != classString {
			return renderError(p, p.Attrs.Kind.Pos, "#[string] requires inner type string, "+inner.String()+" declared")
		}
		genSecretType(f, p, inner)
		genSecretCarrier(f, p, inner)
		genSecretCore(f, p, inner)
		if p.Plan.SecretDeserialize {
			genSecretDeserialize(f, p, inner)
		}
		if p.Plan.SecretSerialize {
			genSecretSerialize(f, p, inner)
		}
		if p.Plan.SecretStringOps {
			genSecretStringOps(f, p, inner)
		}
		if p.Plan.Column {
			genColumn(f, p, inner, col, true)
		}
		if p.Plan.RelaxedDebug {
			genDebugHelpers(f, p, inner)
		}
		return nil
	}

	if p.Plan.StringOps && inner.class != classString {
		return renderError(p, p.Attrs.Kind.Pos, "#[string] requires inner type string, "+inner.String()+" declared")
	}
	if p.Plan.IntOps && !inner.integer() {
		return renderError(p, p.Attrs.Kind.Pos, "#[int] requires an integer inner type, "+inner.String()+" declared")
	}
	genWrapperType(f, p, inner)
	genCore(f, p, inner)
	if p.Plan.Deref {
		genDeref(f, p, inner)
	}
	if p.Plan.Serde {
		genSerde(f, p, inner)
	}
	if p.Plan.StringOps {
		genStringOps(f, p, inner)
	}
	if p.Plan.IntOps {
		genIntOps(f, p, inner)
	}
	if p.Plan.Column {
		genColumn(f, p, inner, col, false)
	}
	return nil
}

// Verify Renderer implements the generator interfaces at compile time.
var (
	_ gen.Renderer      = (*Renderer)(nil)
	_ gen.HooksRenderer = (*Renderer)(nil)
)
