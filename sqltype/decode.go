package sqltype

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// timeLayouts are the textual timestamp shapes drivers hand over.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// DecodeString decodes a driver value into a string. Text columns pass
// through; UUID columns are parsed and canonicalized.
func DecodeString(t Type, src any) (string, error) {
	if err := expect(t, src, "string", Text, UUID); err != nil {
		return "", err
	}
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case nil:
		return "", &ConvertError{Type: t, Goal: "string"}
	default:
		return "", NewConvertError(t, src, "string", "")
	}
	if t == UUID {
		u, err := uuid.Parse(s)
		if err != nil {
			return "", &ConvertError{Type: t, Value: s, Goal: "string", Reason: "malformed uuid", Err: err}
		}
		return u.String(), nil
	}
	return s, nil
}

// DecodeInt64 decodes a driver value into an int64.
func DecodeInt64(t Type, src any) (int64, error) {
	if err := expect(t, src, "int64", Integer, BigInt); err != nil {
		return 0, err
	}
	switch v := src.(type) {
	case int64:
		return v, nil
	case string:
		return parseInt(t, v)
	case []byte:
		return parseInt(t, string(v))
	case nil:
		return 0, &ConvertError{Type: t, Goal: "int64"}
	}
	return 0, NewConvertError(t, src, "int64", "")
}

// DecodeFloat64 decodes a driver value into a float64.
func DecodeFloat64(t Type, src any) (float64, error) {
	if err := expect(t, src, "float64", Float); err != nil {
		return 0, err
	}
	switch v := src.(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	case string:
		return parseFloat(t, v)
	case []byte:
		return parseFloat(t, string(v))
	case nil:
		return 0, &ConvertError{Type: t, Goal: "float64"}
	}
	return 0, NewConvertError(t, src, "float64", "")
}

// DecodeBool decodes a driver value into a bool. Integer columns accept
// 0 and 1, the storage SQLite uses for booleans.
func DecodeBool(t Type, src any) (bool, error) {
	if err := expect(t, src, "bool", Boolean, Integer); err != nil {
		return false, err
	}
	switch v := src.(type) {
	case bool:
		return v, nil
	case int64:
		switch v {
		case 0:
			return false, nil
		case 1:
			return true, nil
		}
		return false, NewConvertError(t, src, "bool", "integer is neither 0 nor 1")
	case string:
		return parseBool(t, v)
	case []byte:
		return parseBool(t, string(v))
	case nil:
		return false, &ConvertError{Type: t, Goal: "bool"}
	}
	return false, NewConvertError(t, src, "bool", "")
}

// DecodeBytes decodes a driver value into a byte slice. Drivers may
// reuse the buffer between rows, so the bytes are always copied.
func DecodeBytes(t Type, src any) ([]byte, error) {
	if err := expect(t, src, "[]byte", Binary, Text); err != nil {
		return nil, err
	}
	switch v := src.(type) {
	case []byte:
		cp := make([]byte, len(v))
		copy(cp, v)
		return cp, nil
	case string:
		return []byte(v), nil
	case nil:
		return nil, &ConvertError{Type: t, Goal: "[]byte"}
	}
	return nil, NewConvertError(t, src, "[]byte", "")
}

// DecodeTime decodes a driver value into a time.Time. Textual values
// try the known timestamp layouts, integers read as Unix seconds.
func DecodeTime(t Type, src any) (time.Time, error) {
	if err := expect(t, src, "time.Time", Timestamp); err != nil {
		return time.Time{}, err
	}
	switch v := src.(type) {
	case time.Time:
		return v, nil
	case string:
		return parseTime(t, v)
	case []byte:
		return parseTime(t, string(v))
	case int64:
		return time.Unix(v, 0).UTC(), nil
	case nil:
		return time.Time{}, &ConvertError{Type: t, Goal: "time.Time"}
	}
	return time.Time{}, NewConvertError(t, src, "time.Time", "")
}

// DecodeUUID decodes a driver value into a uuid.UUID. Textual values
// are parsed, 16-byte values are taken as the raw representation.
func DecodeUUID(t Type, src any) (uuid.UUID, error) {
	if err := expect(t, src, "uuid.UUID", UUID, Text); err != nil {
		return uuid.Nil, err
	}
	switch v := src.(type) {
	case uuid.UUID:
		return v, nil
	case string:
		u, err := uuid.Parse(v)
		if err != nil {
			return uuid.Nil, &ConvertError{Type: t, Value: src, Goal: "uuid.UUID", Reason: "malformed uuid", Err: err}
		}
		return u, nil
	case []byte:
		var (
			u   uuid.UUID
			err error
		)
		if len(v) == 16 {
			u, err = uuid.FromBytes(v)
		} else {
			u, err = uuid.ParseBytes(v)
		}
		if err != nil {
			return uuid.Nil, &ConvertError{Type: t, Value: src, Goal: "uuid.UUID", Reason: "malformed uuid", Err: err}
		}
		return u, nil
	case nil:
		return uuid.Nil, &ConvertError{Type: t, Goal: "uuid.UUID"}
	}
	return uuid.Nil, NewConvertError(t, src, "uuid.UUID", "")
}

// expect validates the declared column type against the set a decode
// shape accepts.
func expect(t Type, src any, goal string, accepted ...Type) error {
	for _, a := range accepted {
		if t == a {
			return nil
		}
	}
	return NewConvertError(t, src, goal, "column type mismatch")
}

func parseInt(t Type, s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, &ConvertError{Type: t, Value: s, Goal: "int64", Reason: "malformed integer", Err: err}
	}
	return n, nil
}

func parseFloat(t Type, s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ConvertError{Type: t, Value: s, Goal: "float64", Reason: "malformed float", Err: err}
	}
	return f, nil
}

func parseBool(t Type, s string) (bool, error) {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, &ConvertError{Type: t, Value: s, Goal: "bool", Reason: "malformed bool", Err: err}
	}
	return b, nil
}

func parseTime(t Type, s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, NewConvertError(t, s, "time.Time", "unknown timestamp layout")
}
