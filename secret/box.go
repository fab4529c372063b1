package secret

import (
	"fmt"
	"runtime"
	"sync"
)

// Box owns one secret value and controls every path to it. The zero
// wrapper of a generated secret type carries a nil box; all methods
// treat the nil box as destroyed.
type Box[T Secret[T]] struct {
	mu        sync.Mutex
	value     T
	destroyed bool
}

// NewBox takes ownership of value. A finalizer wipes the value when the
// box is collected before an explicit Destroy.
func NewBox[T Secret[T]](value T) *Box[T] {
	b := &Box[T]{value: value}
	runtime.SetFinalizer(b, (*Box[T]).finalize)
	return b
}

// Expose returns the boxed value. A destroyed box returns the zero
// value of T.
func (b *Box[T]) Expose() T {
	var zero T
	if b == nil {
		return zero
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.destroyed {
		return zero
	}
	return b.value
}

// Clone boxes an independent copy of the value. Cloning a destroyed box
// returns nil, which behaves as destroyed.
func (b *Box[T]) Clone() *Box[T] {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.destroyed {
		return nil
	}
	return NewBox(b.value.CloneSecret())
}

// Destroy zeroizes the value and marks the box destroyed. It is
// idempotent and safe on the nil box.
func (b *Box[T]) Destroy() {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.destroyed {
		return
	}
	b.value.Zeroize()
	var zero T
	b.value = zero
	b.destroyed = true
	runtime.SetFinalizer(b, nil)
}

// Destroyed reports whether the box no longer holds its value.
func (b *Box[T]) Destroyed() bool {
	if b == nil {
		return true
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.destroyed
}

// finalize is the collection-time fallback for boxes never destroyed
// explicitly.
func (b *Box[T]) finalize() {
	b.Destroy()
}

// String implements fmt.Stringer. The value is never printed.
func (b *Box[T]) String() string {
	return Redacted
}

// Format implements fmt.Formatter so that no formatting verb reaches
// the value.
func (b *Box[T]) Format(f fmt.State, verb rune) {
	fmt.Fprint(f, Redacted)
}

// GoString implements fmt.GoStringer. The value is never printed.
func (b *Box[T]) GoString() string {
	return Redacted
}
