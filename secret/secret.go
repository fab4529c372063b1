// Package secret boxes sensitive values so they cannot leak through
// formatting, logging, or serialization by accident.
//
// Generated secret wrappers keep their value behind a Box. The box owns
// the only reference, prints as Redacted under every formatting verb,
// and wipes the value on Destroy or, best effort, when the box is
// collected. Reading the value back is always an explicit act through
// the generated ExposeSecret accessor.
package secret

// Redacted is what every secret prints as.
const Redacted = "[REDACTED]"

// Zeroizer wipes a value in place.
type Zeroizer interface {
	Zeroize()
}

// Secret is the contract boxed values implement: wipe in place and copy
// deeply. Generated carrier types satisfy it.
type Secret[T any] interface {
	Zeroizer
	CloneSecret() T
}

// Wipe resets the value at p to its zero value. Scalar and string
// fields of generated carriers are wiped this way; the old string
// backing is left to the collector, Go offers no stronger guarantee.
func Wipe[T any](p *T) {
	var zero T
	*p = zero
}

// WipeBytes zeroes the backing array of b. Callers drop the slice
// afterwards.
func WipeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
