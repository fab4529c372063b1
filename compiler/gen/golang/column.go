package golang

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/microtype/compiler/gen"
	"github.com/syssam/microtype/sqltype"
)

// decodeFuncs maps an inner class onto the sqltype decode function for
// its Go shape. Unsigned inners ride the int64 decoder, so column
// values are bounded by math.MaxInt64 in both directions; Encode
// rejects larger uint64 values, keeping Scan and Value symmetric.
var decodeFuncs = map[innerClass]string{
	classString: "DecodeString",
	classBool:   "DecodeBool",
	classInt:    "DecodeInt64",
	classUint:   "DecodeInt64",
	classFloat:  "DecodeFloat64",
	classBytes:  "DecodeBytes",
	classTime:   "DecodeTime",
	classUUID:   "DecodeUUID",
}

// genColumn generates the database column glue: Scan decodes a raw
// driver value through the sqltype codec and rebuilds the wrapper via
// its constructor, Value encodes the inner value through the same
// codec. Secret wrappers encode over ExposeSecret, the only read path
// they have.
func genColumn(f *jen.File, p *gen.Planned, inner innerType, col sqltype.Type, isSecret bool) {
	name := p.Spec.Name
	r := receiver(name)
	// jen statements cannot be reused across positions, hence a factory.
	colConst := func() jen.Code { return jen.Qual(sqltypePkg, col.ConstName()) }

	// The decode functions return the widest Go shape of their class;
	// narrower inner types convert on assignment.
	decoded := jen.Id("v")
	switch {
	case inner.class == classInt && inner.ref.Name != "int64",
		inner.class == classUint,
		inner.class == classFloat && inner.ref.Name != "float64":
		decoded = jen.Id(inner.ref.Name).Parens(jen.Id("v"))
	}

	f.Commentf("Scan implements sql.Scanner, decoding a %s column value.", col)
	f.Func().Params(jen.Id(r).Op("*").Id(name)).Id("Scan").Params(jen.Id("src").Any()).Error().Block(
		jen.List(jen.Id("v"), jen.Err()).Op(":=").Qual(sqltypePkg, decodeFuncs[inner.class]).Call(
			colConst(), jen.Id("src"),
		),
		jen.If(jen.Err().Op("!=").Nil()).Block(
			jen.Return(jen.Err()),
		),
		jen.Op("*").Id(r).Op("=").Id("New"+name).Call(decoded),
		jen.Return(jen.Nil()),
	)

	source := jen.Id(r).Dot("v")
	if isSecret {
		source = jen.Id(r).Dot("ExposeSecret").Call()
	}
	f.Commentf("Value implements driver.Valuer, encoding through the %s codec.", col)
	f.Func().Params(jen.Id(r).Id(name)).Id("Value").Params().Params(
		jen.Qual("database/sql/driver", "Value"), jen.Error(),
	).Block(
		jen.Return(jen.Qual(sqltypePkg, "Encode").Call(colConst(), source)),
	)
}
