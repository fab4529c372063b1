package gen

import "strings"

// Families is the resolved set of capability families a run may plan.
// It is derived from the enabled features; the dispatcher consults it
// when an annotation asks for a gated capability.
type Families struct {
	Serde     bool
	Deref     bool
	Secret    bool
	TestDebug bool
}

// CapabilityPlan lists the artifact groups to emit for one spec. Exactly
// one wrapper shape is planned: the normal shape when SecretWrapper is
// false, the secret shape otherwise. Groups never overlap between the
// two shapes.
type CapabilityPlan struct {
	// Core is the plain wrapper: type, constructor, accessors, and the
	// typed conversion helper. Always planned for normal wrappers.
	Core bool
	// Deref adds the pointer accessor to the inner value.
	Deref bool
	// Serde adds transparent JSON marshaling and unmarshaling.
	Serde bool
	// StringOps adds Stringer and text marshaling.
	StringOps bool
	// IntOps adds formatting verbs, arithmetic, and parsing.
	IntOps bool
	// Column adds database scan and value conversions.
	Column bool

	// SecretWrapper is the boxed secret shape: redacted formatting,
	// controlled exposure, zeroize on destroy. Always planned for
	// secret wrappers.
	SecretWrapper bool
	// SecretDeserialize adds JSON unmarshaling into the box.
	SecretDeserialize bool
	// SecretSerialize adds JSON marshaling of the exposed value.
	SecretSerialize bool
	// SecretStringOps adds text unmarshaling for string-kinded secrets.
	SecretStringOps bool
	// TestHooks emits debug helpers behind the microtypetest build tag.
	TestHooks bool
	// RelaxedDebug emits the debug helpers unguarded.
	RelaxedDebug bool
}

// Secret reports whether the plan is for the secret wrapper shape.
func (p CapabilityPlan) Secret() bool {
	return p.SecretWrapper
}

// Groups returns the names of the planned artifact groups in emission order.
func (p CapabilityPlan) Groups() []string {
	var gs []string
	add := func(on bool, name string) {
		if on {
			gs = append(gs, name)
		}
	}
	add(p.Core, "core")
	add(p.Deref, "deref")
	add(p.Serde, "serde")
	add(p.StringOps, "string_ops")
	add(p.IntOps, "int_ops")
	add(p.SecretWrapper, "secret_wrapper")
	add(p.SecretDeserialize, "secret_deserialize")
	add(p.SecretSerialize, "secret_serialize")
	add(p.SecretStringOps, "secret_string_ops")
	add(p.Column, "column")
	add(p.TestHooks, "test_hooks")
	add(p.RelaxedDebug, "relaxed_debug")
	return gs
}

// String implements fmt.Stringer.
func (p CapabilityPlan) String() string {
	return strings.Join(p.Groups(), ",")
}

// Dispatch computes the capability plan for a validated spec. The checks
// that gate annotations on enabled families run first; a violation yields
// a diagnostic located at the offending annotation and no plan.
func Dispatch(spec *Spec, attrs *ControlAttributes, fams Families) (CapabilityPlan, *Diagnostic) {
	if attrs.Secret != nil {
		if attrs.Secret.Serialize && !fams.Serde {
			return CapabilityPlan{}, newDiagnostic(DiagUnsupported, spec, attrs.Secret.Pos,
				"#[secret(serialize)] has no effect unless the serde feature is enabled")
		}
		if !fams.Secret {
			return CapabilityPlan{}, newDiagnostic(DiagUnsupported, spec, attrs.Secret.Pos,
				"#[secret] is only supported when the secret feature is enabled")
		}
		if attrs.Kind.Kind == KindInt {
			return CapabilityPlan{}, newDiagnostic(DiagUnsupported, spec, attrs.Kind.Pos,
				"#[int] is not supported on secret microtypes")
		}
		return secretPlan(attrs, fams), nil
	}
	return normalPlan(attrs, fams), nil
}

// normalPlan builds the plan for the plain wrapper shape.
func normalPlan(attrs *ControlAttributes, fams Families) CapabilityPlan {
	return CapabilityPlan{
		Core:      true,
		Deref:     fams.Deref,
		Serde:     fams.Serde,
		StringOps: attrs.Kind.Kind == KindString,
		IntOps:    attrs.Kind.Kind == KindInt,
		Column:    attrs.Column != nil,
	}
}

// secretPlan builds the plan for the secret wrapper shape. Exactly one of
// TestHooks and RelaxedDebug is planned.
func secretPlan(attrs *ControlAttributes, fams Families) CapabilityPlan {
	return CapabilityPlan{
		SecretWrapper:     true,
		SecretDeserialize: fams.Serde,
		SecretSerialize:   attrs.Secret.Serialize,
		SecretStringOps:   attrs.Kind.Kind == KindString,
		Column:            attrs.Column != nil,
		TestHooks:         !fams.TestDebug,
		RelaxedDebug:      fams.TestDebug,
	}
}
