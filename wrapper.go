// Package microtype declares the runtime contracts shared by generated
// wrapper types.
//
// The microtype compiler turns declaration files into single-field Go
// wrapper types. The generated code is self-contained except for the
// small contracts in this package and its subpackages: the Wrapper
// constraint below, the secret package's boxing primitives, and the
// sqltype package's column codecs.
package microtype

// Wrapper is satisfied by every generated wrapper over the inner type I.
// Generated conversion functions use it to restrict their source to
// wrappers sharing the same inner type, so a UserID can be rebuilt from
// an OrderID but never from a Quantity.
type Wrapper[I any] interface {
	// Inner returns the wrapped value.
	Inner() I
}

// ConvertTo rebuilds a wrapper from any other wrapper sharing the same
// inner type. Generated packages carry a ConvertName function per type;
// ConvertTo covers the ad-hoc case where only a constructor is at hand:
//
//	admin := microtype.ConvertTo(NewAdminID, userID)
//
// Go has no implicit conversions, so constructing a wrapper from a bare
// inner value goes through the generated constructor directly.
func ConvertTo[W, I any, S Wrapper[I]](construct func(I) W, src S) W {
	return construct(src.Inner())
}
