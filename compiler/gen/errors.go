package gen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/syssam/microtype/compiler/parse"
)

// Sentinel errors for the diagnostic kinds produced by the pipeline.
var (
	// ErrDuplicateAttribute indicates a control annotation repeated on one spec.
	ErrDuplicateAttribute = errors.New("microtype: duplicate attribute")
	// ErrConflictingAttributes indicates mutually exclusive control annotations.
	ErrConflictingAttributes = errors.New("microtype: conflicting attributes")
	// ErrUnsupportedCombination indicates an annotation requiring a disabled
	// capability family.
	ErrUnsupportedCombination = errors.New("microtype: unsupported combination")
	// ErrBadAnnotation indicates a malformed control annotation argument list.
	ErrBadAnnotation = errors.New("microtype: malformed annotation")
	// ErrGenerationFailed indicates a rendering or writing failure.
	ErrGenerationFailed = errors.New("microtype: code generation failed")
)

// DiagnosticKind classifies a located diagnostic.
type DiagnosticKind int

const (
	// DiagSyntax reports malformed declaration input.
	DiagSyntax DiagnosticKind = iota
	// DiagDuplicate reports a repeated control annotation.
	DiagDuplicate
	// DiagConflict reports mutually exclusive control annotations.
	DiagConflict
	// DiagUnsupported reports a request for a disabled capability family.
	DiagUnsupported
	// DiagBadAnnotation reports a malformed control annotation.
	DiagBadAnnotation
)

// A Diagnostic is a located error artifact. The pipeline returns diagnostics
// as values; nothing is written when any diagnostic exists for a run.
type Diagnostic struct {
	Kind DiagnosticKind
	Path string    // source file, may be empty for in-memory input
	Pos  parse.Pos // position of the offending annotation or argument
	Spec string    // wrapper name, empty for file-level diagnostics
	Msg  string
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	var b strings.Builder
	b.WriteString("microtype: ")
	if d.Path != "" {
		b.WriteString(d.Path)
		b.WriteByte(':')
	}
	if d.Pos.IsValid() {
		b.WriteString(d.Pos.String())
		b.WriteString(": ")
	} else if d.Path != "" {
		b.WriteString(" ")
	}
	b.WriteString(d.Msg)
	if d.Spec != "" {
		fmt.Fprintf(&b, " (type %s)", d.Spec)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel for the diagnostic kind.
func (d *Diagnostic) Is(target error) bool {
	switch d.Kind {
	case DiagSyntax:
		return target == parse.ErrSyntax
	case DiagDuplicate:
		return target == ErrDuplicateAttribute
	case DiagConflict:
		return target == ErrConflictingAttributes
	case DiagUnsupported:
		return target == ErrUnsupportedCombination
	case DiagBadAnnotation:
		return target == ErrBadAnnotation
	default:
		return false
	}
}

// newDiagnostic creates a diagnostic located at pos for the given spec.
func newDiagnostic(kind DiagnosticKind, spec *Spec, pos parse.Pos, msg string) *Diagnostic {
	d := &Diagnostic{Kind: kind, Pos: pos, Msg: msg}
	if spec != nil {
		d.Path = spec.Path
		d.Spec = spec.Name
	}
	return d
}

// IsDiagnostic reports whether the error is a single Diagnostic.
func IsDiagnostic(err error) bool {
	var d *Diagnostic
	return errors.As(err, &d)
}

// DiagnosticsError aggregates every diagnostic collected in one run.
// Specs fail fast individually, but independent specs and files are all
// inspected before reporting.
type DiagnosticsError struct {
	Diags []*Diagnostic
}

// Error implements the error interface.
func (e *DiagnosticsError) Error() string {
	switch len(e.Diags) {
	case 0:
		return "microtype: no diagnostics"
	case 1:
		return e.Diags[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "microtype: %d diagnostics:", len(e.Diags))
	for i, d := range e.Diags {
		fmt.Fprintf(&b, "\n  [%d] %v", i+1, d)
	}
	return b.String()
}

// Unwrap exposes the individual diagnostics to errors.Is and errors.As.
func (e *DiagnosticsError) Unwrap() []error {
	errs := make([]error, len(e.Diags))
	for i, d := range e.Diags {
		errs[i] = d
	}
	return errs
}

// NewDiagnosticsError returns an aggregated error for the given diagnostics,
// or nil when there are none.
func NewDiagnosticsError(diags ...*Diagnostic) error {
	if len(diags) == 0 {
		return nil
	}
	return &DiagnosticsError{Diags: diags}
}

// AsDiagnostics extracts the aggregated diagnostics from an error, if any.
func AsDiagnostics(err error) (*DiagnosticsError, bool) {
	var de *DiagnosticsError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("microtype: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("microtype: config error for %q: %s", e.Option, e.Message)
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{Option: option, Value: value, Message: message}
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// GenerationError represents a rendering or writing failure for one file.
type GenerationError struct {
	Phase   string // "render", "format", "write"
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("microtype: generation error")
	if e.Phase != "" {
		b.WriteString(" in phase ")
		b.WriteString(e.Phase)
	}
	if e.File != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.File)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(phase, file, message string, cause error) *GenerationError {
	return &GenerationError{Phase: phase, File: file, Message: message, Cause: cause}
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}
