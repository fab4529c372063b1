package gen

import (
	"github.com/syssam/microtype/compiler/parse"
)

// Kind enumerates the declared value kind markers.
type Kind int

const (
	// KindNone means no kind marker was declared.
	KindNone Kind = iota
	// KindString marks a textual wrapper gaining string operations.
	KindString
	// KindInt marks a numeric wrapper gaining integer operations.
	KindInt
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	default:
		return "none"
	}
}

// SecretAttr records a validated secret marker.
type SecretAttr struct {
	// Serialize is true for the serialize form of the marker.
	Serialize bool
	Pos       parse.Pos
}

// KindAttr records a validated kind marker. The zero value means none.
type KindAttr struct {
	Kind Kind
	Pos  parse.Pos
}

// ColumnAttr records a validated column mapping marker.
type ColumnAttr struct {
	// SQLType names the declared column type.
	SQLType parse.TypeRef
	Pos     parse.Pos
}

// ControlAttributes is the validated control subset of a spec's
// annotations. Everything not captured here passes through to the
// generated output untouched.
type ControlAttributes struct {
	Secret *SecretAttr
	Kind   KindAttr
	Column *ColumnAttr
}

// controlNames lists the annotation names claimed by the generator.
// Annotations with any other name pass through verbatim.
var controlNames = map[string]bool{
	"secret": true,
	"string": true,
	"int":    true,
	"column": true,
}

// IsControl reports whether an annotation name is claimed by the generator.
func IsControl(name string) bool {
	return controlNames[name]
}

// Extract partitions a spec's annotations into the pass-through remainder
// and the validated control attributes. The remainder preserves the merged
// annotation order. Validation fails fast: the first offense yields a
// diagnostic located at the offending annotation or argument and the spec
// produces no artifacts.
func Extract(spec *Spec) ([]*parse.Annotation, *ControlAttributes, *Diagnostic) {
	attrs := &ControlAttributes{}
	rest := spec.Annotations

	rest, secrets := partition(rest, "secret")
	switch len(secrets) {
	case 0:
	case 1:
		sa, diag := secretAttr(spec, secrets[0])
		if diag != nil {
			return nil, nil, diag
		}
		attrs.Secret = sa
	default:
		return nil, nil, newDiagnostic(DiagDuplicate, spec, secrets[1].Pos, "duplicate secret annotation")
	}

	rest, strs := partition(rest, "string")
	if len(strs) > 1 {
		return nil, nil, newDiagnostic(DiagDuplicate, spec, strs[1].Pos, "duplicate string annotation")
	}
	rest, ints := partition(rest, "int")
	if len(ints) > 1 {
		return nil, nil, newDiagnostic(DiagDuplicate, spec, ints[1].Pos, "duplicate int annotation")
	}
	switch {
	case len(strs) == 1 && len(ints) == 1:
		return nil, nil, newDiagnostic(DiagConflict, spec, ints[0].Pos, "only one of #[string] and #[int] is allowed")
	case len(strs) == 1:
		attrs.Kind = KindAttr{Kind: KindString, Pos: strs[0].Pos}
	case len(ints) == 1:
		attrs.Kind = KindAttr{Kind: KindInt, Pos: ints[0].Pos}
	}

	rest, cols := partition(rest, "column")
	switch len(cols) {
	case 0:
	case 1:
		ca, diag := columnAttr(spec, cols[0])
		if diag != nil {
			return nil, nil, diag
		}
		attrs.Column = ca
	default:
		return nil, nil, newDiagnostic(DiagDuplicate, spec, cols[1].Pos, "duplicate column annotation")
	}

	return rest, attrs, nil
}

// secretAttr validates the argument list of a secret marker. The bare form
// and the single serialize argument are the only accepted shapes.
func secretAttr(spec *Spec, a *parse.Annotation) (*SecretAttr, *Diagnostic) {
	if len(a.Args) == 0 {
		return &SecretAttr{Pos: a.Pos}, nil
	}
	for i, arg := range a.Args {
		if i > 0 || arg.Kind != parse.ArgIdent || arg.Name != "serialize" {
			return nil, newDiagnostic(DiagBadAnnotation, spec, arg.Pos,
				"expected either #[secret] or #[secret(serialize)]")
		}
	}
	return &SecretAttr{Serialize: true, Pos: a.Pos}, nil
}

// columnAttr validates the argument list of a column marker. Exactly one
// sql_type assignment naming a type is accepted.
func columnAttr(spec *Spec, a *parse.Annotation) (*ColumnAttr, *Diagnostic) {
	if len(a.Args) != 1 {
		return nil, newDiagnostic(DiagBadAnnotation, spec, a.Pos,
			"expected #[column(sql_type = <type>)]")
	}
	arg := a.Args[0]
	if arg.Kind != parse.ArgAssign || arg.Name != "sql_type" || arg.Val.Kind != parse.ValueType {
		return nil, newDiagnostic(DiagBadAnnotation, spec, arg.Pos,
			"expected #[column(sql_type = <type>)]")
	}
	return &ColumnAttr{SQLType: arg.Val.Type, Pos: a.Pos}, nil
}

// partition splits annotations into those not matching the name and those
// matching it, both preserving relative order.
func partition(anns []*parse.Annotation, name string) (rest, matched []*parse.Annotation) {
	for _, a := range anns {
		if a.Name == name {
			matched = append(matched, a)
		} else {
			rest = append(rest, a)
		}
	}
	return rest, matched
}
