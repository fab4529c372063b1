package parse

import (
	"strconv"
	"strings"
)

// A File is the parsed content of one declaration file. Blocks appear in
// source order.
type File struct {
	Path   string
	Blocks []*Block
}

// A Block declares one or more wrapper names over a single inner type:
//
//	#[serde_rename_all("camelCase")]
//	pub string {
//		Email,
//		#[secret] Password,
//	}
//
// Block-level annotations apply to every name declared in the block.
type Block struct {
	Annotations []*Annotation
	Visibility  *Visibility
	Inner       TypeRef
	Names       []*NameDecl
	Pos         Pos
}

// A NameDecl declares a single wrapper name inside a block, optionally
// carrying its own annotations.
type NameDecl struct {
	Annotations []*Annotation
	Name        string
	Pos         Pos
}

// A Visibility is the optional "pub" marker on a block. It is recorded for
// round-tripping only; exportedness of generated Go types follows the
// declared identifier's case.
type Visibility struct {
	Scope string // the parenthesized scope, if any; empty for bare "pub"
	Pos   Pos
}

// String returns the visibility in source form.
func (v *Visibility) String() string {
	if v.Scope != "" {
		return "pub(" + v.Scope + ")"
	}
	return "pub"
}

// A TypeRef references an inner type: a builtin ("string", "int64"), a byte
// slice ("[]byte"), or a single-qualified name ("time.Time", "uuid.UUID").
type TypeRef struct {
	Package string // qualifier, empty for builtins
	Name    string
	Slice   bool // true for the "[]" prefix
	Pos     Pos
}

// String returns the type reference in source form.
func (t TypeRef) String() string {
	var b strings.Builder
	if t.Slice {
		b.WriteString("[]")
	}
	if t.Package != "" {
		b.WriteString(t.Package)
		b.WriteByte('.')
	}
	b.WriteString(t.Name)
	return b.String()
}

// IsZero reports whether the reference is unset.
func (t TypeRef) IsZero() bool {
	return t.Name == ""
}

// An Annotation is a single "#[...]" marker attached to a block or to a
// declared name. Recognized control annotations (secret, string, int,
// column) are consumed during validation; the rest pass through to the
// generated output verbatim.
type Annotation struct {
	Name string
	Args []*Arg
	// Parens records whether an argument list was written, so that
	// "#[secret]" and "#[secret()]" round-trip distinctly.
	Parens bool
	Pos    Pos
}

// String returns the annotation body in canonical source form, without the
// surrounding "#[...]".
func (a *Annotation) String() string {
	var b strings.Builder
	b.WriteString(a.Name)
	if a.Parens {
		b.WriteByte('(')
		for i, arg := range a.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(arg.String())
		}
		b.WriteByte(')')
	}
	return b.String()
}

// ArgKind identifies the shape of an annotation argument.
type ArgKind int

const (
	// ArgIdent is a bare identifier argument, e.g. "serialize".
	ArgIdent ArgKind = iota
	// ArgString is a bare string literal argument.
	ArgString
	// ArgAssign is a "name = value" argument, e.g. "sql_type = Text".
	ArgAssign
)

// An Arg is one argument inside an annotation's parenthesized list.
type Arg struct {
	Kind ArgKind
	Name string // the identifier for ArgIdent and ArgAssign
	Val  Value  // the literal for ArgString, the right-hand side for ArgAssign
	Pos  Pos
}

// String returns the argument in canonical source form.
func (a *Arg) String() string {
	switch a.Kind {
	case ArgIdent:
		return a.Name
	case ArgString:
		return strconv.Quote(a.Val.Str)
	default:
		return a.Name + " = " + a.Val.String()
	}
}

// ValueKind identifies the shape of an argument value.
type ValueKind int

const (
	// ValueType is a type reference value, e.g. "Text" or "time.Time".
	ValueType ValueKind = iota
	// ValueString is a quoted string value.
	ValueString
	// ValueInt is an integer value.
	ValueInt
)

// A Value is the right-hand side of a "name = value" argument, or the
// literal of a bare string argument.
type Value struct {
	Kind ValueKind
	Type TypeRef // set for ValueType
	Str  string  // set for ValueString
	Int  int64   // set for ValueInt
	Pos  Pos
}

// String returns the value in canonical source form.
func (v Value) String() string {
	switch v.Kind {
	case ValueString:
		return strconv.Quote(v.Str)
	case ValueInt:
		return strconv.FormatInt(v.Int, 10)
	default:
		return v.Type.String()
	}
}
