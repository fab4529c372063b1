// Package sqltype maps declared column types onto database driver
// values.
//
// A wrapper declared with #[column(sql_type = T)] gains Scan and Value
// methods; both delegate here. Scan decodes whatever shape the driver
// hands over into the wrapper's inner type, Value validates the inner
// value and converts it into the driver value space.
package sqltype

// Type identifies a declared column type.
type Type uint8

const (
	// Invalid is the zero Type.
	Invalid Type = iota
	// Text is a variable-length character column.
	Text
	// Integer is a 32-bit integer column.
	Integer
	// BigInt is a 64-bit integer column.
	BigInt
	// Float is a double-precision column.
	Float
	// Boolean is a true/false column.
	Boolean
	// Binary is a raw byte column.
	Binary
	// UUID is a canonical textual UUID column.
	UUID
	// Timestamp is a point-in-time column.
	Timestamp
	endTypes
)

var typeNames = [...]string{
	Invalid:   "invalid",
	Text:      "text",
	Integer:   "integer",
	BigInt:    "bigint",
	Float:     "float",
	Boolean:   "boolean",
	Binary:    "binary",
	UUID:      "uuid",
	Timestamp: "timestamp",
}

var constNames = [...]string{
	Text:      "Text",
	Integer:   "Integer",
	BigInt:    "BigInt",
	Float:     "Float",
	Boolean:   "Boolean",
	Binary:    "Binary",
	UUID:      "UUID",
	Timestamp: "Timestamp",
}

// String returns the lowercase name of the type.
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return typeNames[Invalid]
}

// ConstName returns the Go constant name of the type, the spelling
// declarations use in #[column(sql_type = ...)].
func (t Type) ConstName() string {
	if t.Valid() {
		return constNames[t]
	}
	return typeNames[Invalid]
}

// Valid reports if the given type is a declarable column type.
func (t Type) Valid() bool {
	return t > Invalid && t < endTypes
}

// Numeric reports if the given type is a numeric column type.
func (t Type) Numeric() bool {
	return t == Integer || t == BigInt || t == Float
}

// Lookup resolves a declared sql_type name. Names match the constant
// spelling, e.g. "Text" or "BigInt".
func Lookup(name string) (Type, bool) {
	for t := Invalid + 1; t < endTypes; t++ {
		if constNames[t] == name {
			return t, true
		}
	}
	return Invalid, false
}
