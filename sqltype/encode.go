package sqltype

import (
	"database/sql/driver"
	"math"
	"time"

	"github.com/google/uuid"
)

// Encode validates v against the declared column type and converts it
// into the driver value space. Integer shapes widen to int64, UUIDs
// canonicalize to their textual form.
func Encode(t Type, v any) (driver.Value, error) {
	switch t {
	case Text:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case Integer, BigInt:
		return encodeInt(t, v)
	case Float:
		switch x := v.(type) {
		case float32:
			return float64(x), nil
		case float64:
			return x, nil
		}
	case Boolean:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case Binary:
		if b, ok := v.([]byte); ok {
			return b, nil
		}
	case UUID:
		switch x := v.(type) {
		case uuid.UUID:
			return x.String(), nil
		case string:
			u, err := uuid.Parse(x)
			if err != nil {
				return nil, &ConvertError{Type: t, Value: v, Goal: "driver value", Reason: "malformed uuid", Err: err}
			}
			return u.String(), nil
		}
	case Timestamp:
		if ts, ok := v.(time.Time); ok {
			return ts, nil
		}
	default:
		return nil, NewConvertError(t, v, "driver value", "unknown column type")
	}
	return nil, NewConvertError(t, v, "driver value", "")
}

// encodeInt widens the integer shapes to int64 and range-checks 32-bit
// columns.
func encodeInt(t Type, v any) (driver.Value, error) {
	var n int64
	switch x := v.(type) {
	case int:
		n = int64(x)
	case int8:
		n = int64(x)
	case int16:
		n = int64(x)
	case int32:
		n = int64(x)
	case int64:
		n = x
	case uint:
		if uint64(x) > math.MaxInt64 {
			return nil, NewConvertError(t, v, "int64", "out of range")
		}
		n = int64(x)
	case uint8:
		n = int64(x)
	case uint16:
		n = int64(x)
	case uint32:
		n = int64(x)
	case uint64:
		if x > math.MaxInt64 {
			return nil, NewConvertError(t, v, "int64", "out of range")
		}
		n = int64(x)
	default:
		return nil, NewConvertError(t, v, "int64", "")
	}
	if t == Integer && (n < math.MinInt32 || n > math.MaxInt32) {
		return nil, NewConvertError(t, v, "int64", "out of range for a 32-bit column")
	}
	return n, nil
}
