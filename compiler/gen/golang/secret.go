package golang

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/microtype/compiler/gen"
)

// genSecretType generates the outer secret wrapper. The value lives
// behind a secret.Box holding the hidden carrier; the only way back out
// is ExposeSecret.
func genSecretType(f *jen.File, p *gen.Planned, inner innerType) {
	name := p.Spec.Name
	carrier := carrierName(name)

	passthrough(f, p)
	f.Commentf("%s wraps %s as a secret: formatting is redacted and the value", name, inner)
	f.Comment("is reachable only through ExposeSecret.")
	f.Type().Id(name).Struct(
		jen.Id("box").Op("*").Qual(secretPkg, "Box").Index(jen.Op("*").Id(carrier)),
	)
}

// genSecretCarrier generates the hidden carrier and its secret.Secret
// contract: zeroize in place and deep copy. The carrier name starts
// with an underscore, which declared identifiers cannot, so it never
// collides with user-visible types.
func genSecretCarrier(f *jen.File, p *gen.Planned, inner innerType) {
	name := p.Spec.Name
	carrier := carrierName(name)

	f.Commentf("%s carries the raw value of a %s inside its box.", carrier, name)
	f.Type().Id(carrier).Struct(
		jen.Id("v").Add(inner.code()),
	)

	f.Comment("Zeroize wipes the carried value in place.")
	if inner.class == classBytes {
		f.Func().Params(jen.Id("c").Op("*").Id(carrier)).Id("Zeroize").Params().Block(
			jen.Qual(secretPkg, "WipeBytes").Call(jen.Id("c").Dot("v")),
			jen.Id("c").Dot("v").Op("=").Nil(),
		)
	} else {
		f.Func().Params(jen.Id("c").Op("*").Id(carrier)).Id("Zeroize").Params().Block(
			jen.Qual(secretPkg, "Wipe").Call(jen.Op("&").Id("c").Dot("v")),
		)
	}

	f.Comment("CloneSecret returns an independent copy of the carrier.")
	if inner.class == classBytes {
		f.Func().Params(jen.Id("c").Op("*").Id(carrier)).Id("CloneSecret").Params().Op("*").Id(carrier).Block(
			jen.Return(jen.Op("&").Id(carrier).Values(
				jen.Id("v").Op(":").Append(jen.Index().Byte().Parens(jen.Nil()), jen.Id("c").Dot("v").Op("...")),
			)),
		)
	} else {
		f.Func().Params(jen.Id("c").Op("*").Id(carrier)).Id("CloneSecret").Params().Op("*").Id(carrier).Block(
			jen.Return(jen.Op("&").Id(carrier).Values(jen.Id("v").Op(":").Id("c").Dot("v"))),
		)
	}
}

// genSecretCore generates the constructor, the borrowed exposure
// accessor, cloning, destruction, and the redacted formatting set. No
// owning or mutable accessor exists on the secret shape.
func genSecretCore(f *jen.File, p *gen.Planned, inner innerType) {
	name := p.Spec.Name
	carrier := carrierName(name)
	r := receiver(name)

	f.Commentf("New%s boxes v as a secret %s.", name, name)
	f.Func().Id("New" + name).Params(jen.Id("v").Add(inner.code())).Id(name).Block(
		jen.Return(jen.Id(name).Values(
			jen.Id("box").Op(":").Qual(secretPkg, "NewBox").Call(
				jen.Op("&").Id(carrier).Values(jen.Id("v").Op(":").Id("v")),
			),
		)),
	)

	f.Comment("ExposeSecret returns the secret value. It is the only accessor; a")
	f.Comment("destroyed or zero wrapper returns the zero value.")
	f.Func().Params(jen.Id(r).Id(name)).Id("ExposeSecret").Params().Add(inner.code()).Block(
		jen.Id("c").Op(":=").Id(r).Dot("box").Dot("Expose").Call(),
		jen.If(jen.Id("c").Op("==").Nil()).Block(
			jen.Var().Id("zero").Add(inner.code()),
			jen.Return(jen.Id("zero")),
		),
		jen.Return(jen.Id("c").Dot("v")),
	)

	f.Commentf("Clone returns a %s boxing an independent copy of the secret.", name)
	f.Func().Params(jen.Id(r).Id(name)).Id("Clone").Params().Id(name).Block(
		jen.Return(jen.Id(name).Values(jen.Id("box").Op(":").Id(r).Dot("box").Dot("Clone").Call())),
	)

	f.Comment("Destroy wipes the secret in place. It is idempotent.")
	f.Func().Params(jen.Id(r).Id(name)).Id("Destroy").Params().Block(
		jen.Id(r).Dot("box").Dot("Destroy").Call(),
	)

	f.Comment("String implements fmt.Stringer. The value is never printed.")
	f.Func().Params(jen.Id(r).Id(name)).Id("String").Params().String().Block(
		jen.Return(jen.Qual(secretPkg, "Redacted")),
	)

	f.Comment("Format implements fmt.Formatter so that no formatting verb reaches the value.")
	f.Func().Params(jen.Id(r).Id(name)).Id("Format").Params(
		jen.Id("f").Qual("fmt", "State"), jen.Id("verb").Rune(),
	).Block(
		jen.Qual("fmt", "Fprint").Call(jen.Id("f"), jen.Qual(secretPkg, "Redacted")),
	)

	f.Comment("GoString implements fmt.GoStringer. The value is never printed.")
	f.Func().Params(jen.Id(r).Id(name)).Id("GoString").Params().String().Block(
		jen.Return(jen.Qual(secretPkg, "Redacted")),
	)
}

// genSecretDeserialize generates JSON unmarshaling into the box.
func genSecretDeserialize(f *jen.File, p *gen.Planned, inner innerType) {
	name := p.Spec.Name
	r := receiver(name)

	f.Comment("UnmarshalJSON implements json.Unmarshaler, boxing the decoded value.")
	f.Func().Params(jen.Id(r).Op("*").Id(name)).Id("UnmarshalJSON").Params(jen.Id("data").Index().Byte()).Error().Block(
		jen.Var().Id("v").Add(inner.code()),
		jen.If(
			jen.Err().Op(":=").Qual("encoding/json", "Unmarshal").Call(jen.Id("data"), jen.Op("&").Id("v")),
			jen.Err().Op("!=").Nil(),
		).Block(
			jen.Return(jen.Err()),
		),
		jen.Op("*").Id(r).Op("=").Id("New"+name).Call(jen.Id("v")),
		jen.Return(jen.Nil()),
	)
}

// genSecretSerialize generates JSON marshaling of the exposed value.
// It is gated on the serialize form of the secret marker; plain secrets
// never serialize.
func genSecretSerialize(f *jen.File, p *gen.Planned, inner innerType) {
	name := p.Spec.Name
	r := receiver(name)

	f.Comment("MarshalJSON implements json.Marshaler over the exposed value.")
	f.Func().Params(jen.Id(r).Id(name)).Id("MarshalJSON").Params().Params(jen.Index().Byte(), jen.Error()).Block(
		jen.Return(jen.Qual("encoding/json", "Marshal").Call(jen.Id(r).Dot("ExposeSecret").Call())),
	)
}

// genSecretStringOps generates text unmarshaling for string-kinded
// secrets. There is no MarshalText counterpart: a secret never writes
// itself out as text.
func genSecretStringOps(f *jen.File, p *gen.Planned, inner innerType) {
	name := p.Spec.Name
	r := receiver(name)

	f.Comment("UnmarshalText implements encoding.TextUnmarshaler, boxing the text")
	f.Comment("without exposing it. It never fails.")
	f.Func().Params(jen.Id(r).Op("*").Id(name)).Id("UnmarshalText").Params(jen.Id("text").Index().Byte()).Error().Block(
		jen.Op("*").Id(r).Op("=").Id("New"+name).Call(jen.String().Parens(jen.Id("text"))),
		jen.Return(jen.Nil()),
	)
}

// genDebugHelpers generates the debug and equality helpers that expose
// the real value for test assertions. With the testdebug feature off
// they land in a separate file behind the microtypetest build tag;
// with it on they are emitted here unguarded.
func genDebugHelpers(f *jen.File, p *gen.Planned, inner innerType) {
	name := p.Spec.Name
	r := receiver(name)

	f.Comment("DebugString returns the real secret value for test assertions.")
	f.Func().Params(jen.Id(r).Id(name)).Id("DebugString").Params().String().Block(
		jen.Return(jen.Qual("fmt", "Sprint").Call(jen.Id(r).Dot("ExposeSecret").Call())),
	)

	f.Comment("Equal reports whether two secrets expose the same value.")
	eq := f.Func().Params(jen.Id(r).Id(name)).Id("Equal").Params(jen.Id("other").Id(name)).Bool()
	switch inner.class {
	case classBytes:
		eq.Block(
			jen.Return(jen.Qual("bytes", "Equal").Call(
				jen.Id(r).Dot("ExposeSecret").Call(),
				jen.Id("other").Dot("ExposeSecret").Call(),
			)),
		)
	case classTime:
		eq.Block(
			jen.Return(jen.Id(r).Dot("ExposeSecret").Call().Dot("Equal").Call(
				jen.Id("other").Dot("ExposeSecret").Call(),
			)),
		)
	default:
		eq.Block(
			jen.Return(jen.Id(r).Dot("ExposeSecret").Call().Op("==").Id("other").Dot("ExposeSecret").Call()),
		)
	}
}
