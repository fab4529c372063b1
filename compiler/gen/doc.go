// Package gen provides code generation for microtype declarations.
//
// This package is responsible for turning parsed wrapper declarations into
// type-safe Go code: single-field wrapper structs with constructors,
// accessors, serialization, and the optional capability groups requested
// through annotations.
//
// # Architecture
//
// The code generation pipeline follows this flow:
//
//	Declaration files (*.microtype)
//	        ↓
//	   parse.File (syntax tree)
//	        ↓
//	   Spec (flattened, one per declared name)
//	        ↓
//	   ControlAttributes (validated markers)
//	        ↓
//	   CapabilityPlan (artifact groups to emit)
//	        ↓
//	   Renderer (Go source per input file)
//	        ↓
//	   Generated code ({input}_gen.go)
//
// # Key Types
//
// The package provides several key types:
//
//   - Spec: One wrapper to generate, with its merged annotations
//   - ControlAttributes: The validated secret, kind, and column markers
//   - CapabilityPlan: The artifact groups planned for one spec
//   - Unit: All planned specs of one input file
//   - Config: Global configuration for code generation
//
// # Renderer Interface
//
// Renderers implement the minimal Renderer interface; additional
// capabilities are detected via type assertion:
//
//	Renderer (basic rendering support)
//	├── Name() string
//	└── RenderUnit(*Unit) (*jen.File, error)
//
//	HooksRenderer (optional, guarded debug helper files)
//	└── RenderHooks(*Unit) (*jen.File, error)
//
// Custom renderers can implement Renderer alone; the built-in Go renderer
// in the golang package implements both.
//
// # Error Handling
//
// Validation failures are located diagnostics, not panics. Each spec fails
// fast on its first offense, independent specs and files are all inspected,
// and nothing is written when any diagnostic exists:
//
//	err := gen.Generate(ctx, cfg, inputs)
//	if de, ok := gen.AsDiagnostics(err); ok {
//	    for _, d := range de.Diags {
//	        fmt.Println(d) // file:line:column: message
//	    }
//	}
//
// Sentinel errors classify diagnostics for errors.Is: ErrDuplicateAttribute,
// ErrConflictingAttributes, ErrUnsupportedCombination, ErrBadAnnotation.
//
// # Configuration
//
// Configuration is done via the functional options pattern:
//
//	cfg, err := gen.NewConfig(
//	    gen.WithTarget("./model"),
//	    gen.WithFeatures(gen.FeatureSecret),
//	)
//
// The serde feature is enabled by default; turn it off explicitly when
// wrappers must not gain JSON marshaling:
//
//	cfg, err := gen.NewConfig(
//	    gen.WithTarget("./model"),
//	    gen.WithoutFeatures("serde"),
//	)
//
// # Generated Output
//
// The generator produces one file per input, plus a guarded helper file
// for inputs declaring secrets:
//
//	{target}/
//	├── {input}_gen.go        // Wrapper types and capability groups
//	├── {input}_hooks_gen.go  // Debug helpers behind the microtypetest tag
//	└── .microtype.snap       // Snapshot manifest (snapshot feature)
//
// # Features
//
// The generator supports optional features that widen the capability
// families the dispatcher may plan:
//
//   - serde: transparent JSON marshaling (default on)
//   - deref: pointer accessor to the inner value
//   - secret: secret wrapper variant with redacted formatting
//   - testdebug: unguarded debug helpers instead of the build tag
//   - snapshot: skip regeneration of unchanged inputs
package gen
