package golang

import (
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/microtype/compiler/gen"
	"github.com/syssam/microtype/compiler/parse"
	"github.com/syssam/microtype/sqltype"
)

// Import paths of the runtime packages generated code depends on.
const (
	microtypePkg = "github.com/syssam/microtype"
	secretPkg    = "github.com/syssam/microtype/secret"
	sqltypePkg   = "github.com/syssam/microtype/sqltype"
	uuidPkg      = "github.com/google/uuid"
)

// innerClass groups the representable inner types by the code shapes
// they need (string operations, arithmetic, column decode function).
type innerClass int

const (
	classString innerClass = iota
	classBool
	classInt
	classUint
	classFloat
	classBytes
	classTime
	classUUID
)

// innerType is a resolved inner type reference. The renderer only emits
// code for types in its table; everything else fails resolution.
type innerType struct {
	ref   parse.TypeRef
	class innerClass
	// bits is the integer or float bit size; 0 for the platform-sized
	// int and uint, which strconv treats specially.
	bits int
	// qualPath is the import path for qualified types, empty for builtins.
	qualPath string
}

// integer reports whether arithmetic and integer parsing apply.
func (t innerType) integer() bool {
	return t.class == classInt || t.class == classUint
}

// String returns the inner type in declaration form.
func (t innerType) String() string {
	return t.ref.String()
}

// code returns the jennifer expression for the inner type.
func (t innerType) code() jen.Code {
	if t.qualPath != "" {
		return jen.Qual(t.qualPath, t.ref.Name)
	}
	if t.class == classBytes {
		return jen.Index().Byte()
	}
	return jen.Id(t.ref.Name)
}

// builtins is the table of unqualified inner types.
var builtins = map[string]innerType{
	"string":  {class: classString},
	"bool":    {class: classBool},
	"int":     {class: classInt},
	"int8":    {class: classInt, bits: 8},
	"int16":   {class: classInt, bits: 16},
	"int32":   {class: classInt, bits: 32},
	"int64":   {class: classInt, bits: 64},
	"uint":    {class: classUint},
	"uint8":   {class: classUint, bits: 8},
	"uint16":  {class: classUint, bits: 16},
	"uint32":  {class: classUint, bits: 32},
	"uint64":  {class: classUint, bits: 64},
	"float32": {class: classFloat, bits: 32},
	"float64": {class: classFloat, bits: 64},
}

// resolveInner maps the declared inner type onto the renderer's type
// table. Unknown types are a render failure, not a validation failure:
// the pipeline's semantic checks are annotation-level only.
func resolveInner(p *gen.Planned) (innerType, error) {
	ref := p.Spec.Inner
	switch {
	case ref.Slice:
		if ref.Package == "" && ref.Name == "byte" {
			return innerType{ref: ref, class: classBytes}, nil
		}
	case ref.Package == "time" && ref.Name == "Time":
		return innerType{ref: ref, class: classTime, qualPath: "time"}, nil
	case ref.Package == "uuid" && ref.Name == "UUID":
		return innerType{ref: ref, class: classUUID, qualPath: uuidPkg}, nil
	case ref.Package == "":
		if t, ok := builtins[ref.Name]; ok {
			t.ref = ref
			return t, nil
		}
	}
	return innerType{}, renderError(p, ref.Pos, "unsupported inner type "+ref.String())
}

// columnTypes lists the column types each inner class can map onto.
// The sets mirror what the sqltype codecs accept for both Scan and
// Value; asymmetric pairs (a []byte in a text column decodes but never
// encodes) are rejected here.
var columnTypes = map[innerClass][]sqltype.Type{
	classString: {sqltype.Text, sqltype.UUID},
	classBool:   {sqltype.Boolean},
	classInt:    {sqltype.Integer, sqltype.BigInt},
	classUint:   {sqltype.Integer, sqltype.BigInt},
	classFloat:  {sqltype.Float},
	classBytes:  {sqltype.Binary},
	classTime:   {sqltype.Timestamp},
	classUUID:   {sqltype.UUID},
}

// resolveColumn resolves the declared sql_type against the sqltype
// registry and checks it against the inner type's column set. Specs
// without a column plan resolve to the invalid type.
func resolveColumn(p *gen.Planned, inner innerType) (sqltype.Type, error) {
	if !p.Plan.Column {
		return sqltype.Invalid, nil
	}
	attr := p.Attrs.Column
	ref := attr.SQLType
	if ref.Slice || ref.Package != "" {
		return sqltype.Invalid, renderError(p, attr.Pos, "unknown sql_type "+ref.String())
	}
	ct, ok := sqltype.Lookup(ref.Name)
	if !ok {
		return sqltype.Invalid, renderError(p, attr.Pos, "unknown sql_type "+ref.Name)
	}
	for _, want := range columnTypes[inner.class] {
		if ct == want {
			return ct, nil
		}
	}
	return sqltype.Invalid, renderError(p, attr.Pos,
		"sql_type "+ct.ConstName()+" cannot store inner type "+inner.String())
}

// renderError builds the located failure for an unmappable spec. It
// carries the same shape as validation diagnostics so the CLI renders
// every failure the same way.
func renderError(p *gen.Planned, pos parse.Pos, msg string) error {
	return &gen.Diagnostic{
		Kind: gen.DiagUnsupported,
		Path: p.Spec.Path,
		Pos:  pos,
		Spec: p.Spec.Name,
		Msg:  msg,
	}
}

// receiver returns the generated receiver name, the lowercased first
// letter of the wrapper name.
func receiver(name string) string {
	return strings.ToLower(name[:1])
}

// carrierName synthesizes the hidden secret carrier type name. Declared
// identifiers cannot begin with an underscore, so the name never
// collides with user-visible types.
func carrierName(name string) string {
	return "_" + strings.ToLower(name[:1]) + name[1:] + "Secret"
}

// passthrough re-emits the annotations the generator did not claim as
// directive comments above the type definition, name-level ones first.
func passthrough(f *jen.File, p *gen.Planned) {
	for _, a := range p.Passthrough {
		f.Comment("//microtype:" + a.String())
	}
}
