package golang

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/microtype/compiler/gen"
)

// genWrapperType generates the wrapper struct. The single unexported
// field keeps the layout identical to the inner type.
func genWrapperType(f *jen.File, p *gen.Planned, inner innerType) {
	name := p.Spec.Name
	passthrough(f, p)
	f.Commentf("%s wraps %s as a distinct type.", name, inner)
	f.Type().Id(name).Struct(
		jen.Id("v").Add(inner.code()),
	)
}

// genCore generates the constructor, the accessors, and the typed
// conversion helper restricted to wrappers over the same inner type.
func genCore(f *jen.File, p *gen.Planned, inner innerType) {
	name := p.Spec.Name
	r := receiver(name)

	f.Commentf("New%s returns a %s wrapping v.", name, name)
	f.Func().Id("New" + name).Params(jen.Id("v").Add(inner.code())).Id(name).Block(
		jen.Return(jen.Id(name).Values(jen.Id("v").Op(":").Id("v"))),
	)

	f.Comment("Inner returns the wrapped value.")
	f.Func().Params(jen.Id(r).Id(name)).Id("Inner").Params().Add(inner.code()).Block(
		jen.Return(jen.Id(r).Dot("v")),
	)

	f.Comment("SetInner replaces the wrapped value.")
	f.Func().Params(jen.Id(r).Op("*").Id(name)).Id("SetInner").Params(jen.Id("v").Add(inner.code())).Block(
		jen.Id(r).Dot("v").Op("=").Id("v"),
	)

	f.Commentf("Convert%s rebuilds a %s from any wrapper sharing the inner type %s.", name, name, inner)
	f.Func().Id("Convert" + name).
		Types(jen.Id("S").Qual(microtypePkg, "Wrapper").Index(inner.code())).
		Params(jen.Id("src").Id("S")).Id(name).Block(
		jen.Return(jen.Id("New" + name).Call(jen.Id("src").Dot("Inner").Call())),
	)
}

// genDeref generates the pointer accessor to the inner value.
func genDeref(f *jen.File, p *gen.Planned, inner innerType) {
	name := p.Spec.Name
	r := receiver(name)

	f.Comment("Deref returns a pointer to the wrapped value.")
	f.Func().Params(jen.Id(r).Op("*").Id(name)).Id("Deref").Params().Op("*").Add(inner.code()).Block(
		jen.Return(jen.Op("&").Id(r).Dot("v")),
	)
}

// genSerde generates transparent JSON marshaling: the wrapper reads and
// writes exactly as its inner value does.
func genSerde(f *jen.File, p *gen.Planned, inner innerType) {
	name := p.Spec.Name
	r := receiver(name)

	f.Comment("MarshalJSON implements json.Marshaler over the inner value.")
	f.Func().Params(jen.Id(r).Id(name)).Id("MarshalJSON").Params().Params(jen.Index().Byte(), jen.Error()).Block(
		jen.Return(jen.Qual("encoding/json", "Marshal").Call(jen.Id(r).Dot("v"))),
	)

	f.Comment("UnmarshalJSON implements json.Unmarshaler over the inner value.")
	f.Func().Params(jen.Id(r).Op("*").Id(name)).Id("UnmarshalJSON").Params(jen.Id("data").Index().Byte()).Error().Block(
		jen.Return(jen.Qual("encoding/json", "Unmarshal").Call(jen.Id("data"), jen.Op("&").Id(r).Dot("v"))),
	)
}

// genStringOps generates the textual capability group for string-kinded
// wrappers. Parsing from text is total for strings, so UnmarshalText
// never fails.
func genStringOps(f *jen.File, p *gen.Planned, inner innerType) {
	name := p.Spec.Name
	r := receiver(name)

	f.Comment("String implements fmt.Stringer.")
	f.Func().Params(jen.Id(r).Id(name)).Id("String").Params().String().Block(
		jen.Return(jen.Id(r).Dot("v")),
	)

	f.Comment("MarshalText implements encoding.TextMarshaler.")
	f.Func().Params(jen.Id(r).Id(name)).Id("MarshalText").Params().Params(jen.Index().Byte(), jen.Error()).Block(
		jen.Return(jen.Index().Byte().Parens(jen.Id(r).Dot("v")), jen.Nil()),
	)

	f.Comment("UnmarshalText implements encoding.TextUnmarshaler. It never fails.")
	f.Func().Params(jen.Id(r).Op("*").Id(name)).Id("UnmarshalText").Params(jen.Id("text").Index().Byte()).Error().Block(
		jen.Id(r).Dot("v").Op("=").String().Parens(jen.Id("text")),
		jen.Return(jen.Nil()),
	)
}

// genIntOps generates the numeric capability group: formatting verbs,
// decimal Stringer, arithmetic with in-place variants, and parsing with
// strconv's native error.
func genIntOps(f *jen.File, p *gen.Planned, inner innerType) {
	name := p.Spec.Name
	r := receiver(name)
	wide, format, parse := widenFor(inner)

	f.Comment("Format implements fmt.Formatter over the verbs d, o, x, X, b, v, e and E.")
	f.Func().Params(jen.Id(r).Id(name)).Id("Format").Params(
		jen.Id("f").Qual("fmt", "State"), jen.Id("verb").Rune(),
	).Block(
		jen.Switch(jen.Id("verb")).Block(
			jen.Case(jen.LitRune('d'), jen.LitRune('o'), jen.LitRune('x'), jen.LitRune('X'), jen.LitRune('b'), jen.LitRune('v')).Block(
				jen.Qual("fmt", "Fprintf").Call(
					jen.Id("f"),
					jen.Qual("fmt", "FormatString").Call(jen.Id("f"), jen.Id("verb")),
					jen.Id(wide).Parens(jen.Id(r).Dot("v")),
				),
			),
			jen.Case(jen.LitRune('e'), jen.LitRune('E')).Block(
				jen.Qual("fmt", "Fprintf").Call(
					jen.Id("f"),
					jen.Qual("fmt", "FormatString").Call(jen.Id("f"), jen.Id("verb")),
					jen.Float64().Parens(jen.Id(r).Dot("v")),
				),
			),
			jen.Default().Block(
				jen.Qual("fmt", "Fprintf").Call(
					jen.Id("f"),
					jen.Lit("%%!%c("+name+"=%d)"),
					jen.Id("verb"),
					jen.Id(wide).Parens(jen.Id(r).Dot("v")),
				),
			),
		),
	)

	f.Comment("String implements fmt.Stringer in decimal.")
	f.Func().Params(jen.Id(r).Id(name)).Id("String").Params().String().Block(
		jen.Return(jen.Qual("strconv", format).Call(
			jen.Id(wide).Parens(jen.Id(r).Dot("v")), jen.Lit(10),
		)),
	)

	ops := []struct{ method, verb, op string }{
		{"Add", "the sum of", "+"},
		{"Sub", "the difference of", "-"},
		{"Mul", "the product of", "*"},
		{"Div", "the quotient of", "/"},
		{"Rem", "the remainder of", "%"},
	}
	for _, op := range ops {
		f.Commentf("%s returns a %s wrapping %s the wrapped value and v.", op.method, name, op.verb)
		f.Func().Params(jen.Id(r).Id(name)).Id(op.method).Params(jen.Id("v").Add(inner.code())).Id(name).Block(
			jen.Return(jen.Id(name).Values(jen.Id("v").Op(":").Id(r).Dot("v").Op(op.op).Id("v"))),
		)
	}
	for _, op := range ops {
		f.Commentf("%sAssign applies %s in place.", op.method, op.method)
		f.Func().Params(jen.Id(r).Op("*").Id(name)).Id(op.method+"Assign").Params(jen.Id("v").Add(inner.code())).Block(
			jen.Id(r).Dot("v").Op(op.op + "=").Id("v"),
		)
	}

	f.Commentf("Parse%s parses s in base 10. A failure returns the *strconv.NumError", name)
	f.Commentf("produced by strconv.%s unchanged.", parse)
	f.Func().Id("Parse" + name).Params(jen.Id("s").String()).Params(jen.Id(name), jen.Error()).Block(
		jen.List(jen.Id("v"), jen.Err()).Op(":=").Qual("strconv", parse).Call(
			jen.Id("s"), jen.Lit(10), jen.Lit(inner.bits),
		),
		jen.If(jen.Err().Op("!=").Nil()).Block(
			jen.Return(jen.Id(name).Values(), jen.Err()),
		),
		jen.Return(jen.Id("New"+name).Call(jen.Id(inner.ref.Name).Parens(jen.Id("v"))), jen.Nil()),
	)
}

// widenFor returns the widened Go type, the strconv format function,
// and the strconv parse function for an integer inner type.
func widenFor(inner innerType) (wide, format, parse string) {
	if inner.class == classUint {
		return "uint64", "FormatUint", "ParseUint"
	}
	return "int64", "FormatInt", "ParseInt"
}
