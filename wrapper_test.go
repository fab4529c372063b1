package microtype_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/microtype"
)

// userID and orderID mimic the shape of generated wrappers: a single
// unexported field and an Inner accessor.
type userID struct{ v int64 }

func newUserID(v int64) userID { return userID{v: v} }

func (w userID) Inner() int64 { return w.v }

type orderID struct{ v int64 }

func newOrderID(v int64) orderID { return orderID{v: v} }

func (w orderID) Inner() int64 { return w.v }

type email struct{ v string }

func (w email) Inner() string { return w.v }

func TestConvertTo(t *testing.T) {
	t.Run("converts between wrappers sharing an inner type", func(t *testing.T) {
		order := newOrderID(42)

		user := microtype.ConvertTo(newUserID, order)

		assert.Equal(t, int64(42), user.Inner())
	})

	t.Run("round trip preserves the value", func(t *testing.T) {
		user := newUserID(7)

		back := microtype.ConvertTo(newUserID, microtype.ConvertTo(newOrderID, user))

		assert.Equal(t, user, back)
	})
}

func TestWrapperConstraint(t *testing.T) {
	// Compile-time checks that sample wrappers satisfy the constraint.
	var _ microtype.Wrapper[int64] = userID{}
	var _ microtype.Wrapper[int64] = orderID{}
	var _ microtype.Wrapper[string] = email{}

	assert.Equal(t, "a@b.c", email{v: "a@b.c"}.Inner())
}
