// Package codes defines the one-byte markers of the UBJSON Draft 8 wire
// format and the sets they are grouped into.
package codes

const (
	NoOp = 'N'
	EOS  = 'E'

	Null  = 'Z'
	False = 'F'
	True  = 'T'

	Int8  = 'B'
	Int16 = 'i'
	Int32 = 'I'
	Int64 = 'L'

	Float  = 'd'
	Double = 'D'

	HugeShort = 'h'
	HugeLong  = 'H'

	StringShort = 's'
	StringLong  = 'S'

	ArrayShort = 'a'
	ArrayLong  = 'A'

	ObjectShort = 'o'
	ObjectLong  = 'O'

	// Mixed is the element type of a sized array whose elements carry
	// their own markers.
	Mixed = 'M'
)

const (
	// MaxShortLen is the largest length a short-form token can carry.
	MaxShortLen = 254
	// StreamLen in the length byte of a short array or object marks a
	// streamed container.
	StreamLen = 0xff
)

const (
	setConstant = 1 << iota
	setNumber
	setStringLike
	setShort
	setLong
	setStreamable
	setObjectKey
	setForbidden
	setArrayType
)

var sets = [256]uint16{
	NoOp:  setConstant | setForbidden,
	EOS:   setConstant | setForbidden,
	Null:  setConstant,
	False: setConstant,
	True:  setConstant,

	Int8:   setNumber | setArrayType,
	Int16:  setNumber | setArrayType,
	Int32:  setNumber | setArrayType,
	Int64:  setNumber | setArrayType,
	Float:  setNumber,
	Double: setNumber,

	HugeShort:   setStringLike | setShort,
	HugeLong:    setStringLike | setLong,
	StringShort: setStringLike | setShort | setObjectKey,
	StringLong:  setStringLike | setLong | setObjectKey,

	ArrayShort:  setShort | setStreamable,
	ArrayLong:   setLong,
	ObjectShort: setShort | setStreamable,
	ObjectLong:  setLong,

	Mixed: setArrayType,
}

var widths = [256]uint8{
	Int8:   1,
	Int16:  2,
	Int32:  4,
	Int64:  8,
	Float:  4,
	Double: 8,
}

var names = [256]string{
	NoOp:        "noop",
	EOS:         "end-of-stream",
	Null:        "null",
	False:       "false",
	True:        "true",
	Int8:        "int8",
	Int16:       "int16",
	Int32:       "int32",
	Int64:       "int64",
	Float:       "float32",
	Double:      "float64",
	HugeShort:   "hugeint",
	HugeLong:    "hugeint",
	StringShort: "string",
	StringLong:  "string",
	ArrayShort:  "array",
	ArrayLong:   "array",
	ObjectShort: "object",
	ObjectLong:  "object",
	Mixed:       "mixed",
}

func IsConstant(c byte) bool   { return sets[c]&setConstant != 0 }
func IsNumber(c byte) bool     { return sets[c]&setNumber != 0 }
func IsStringLike(c byte) bool { return sets[c]&setStringLike != 0 }
func IsShort(c byte) bool      { return sets[c]&setShort != 0 }
func IsLong(c byte) bool       { return sets[c]&setLong != 0 }
func IsStreamable(c byte) bool { return sets[c]&setStreamable != 0 }
func IsObjectKey(c byte) bool  { return sets[c]&setObjectKey != 0 }
func IsForbidden(c byte) bool  { return sets[c]&setForbidden != 0 }
func IsArrayType(c byte) bool  { return sets[c]&setArrayType != 0 }

// IsArray reports whether c starts a sized or streamed array.
func IsArray(c byte) bool { return c == ArrayShort || c == ArrayLong }

// IsObject reports whether c starts a sized or streamed object.
func IsObject(c byte) bool { return c == ObjectShort || c == ObjectLong }

// Width returns the payload size of a numeric marker, or 0.
func Width(c byte) int { return int(widths[c]) }

// Name returns a readable name for c, or "" for bytes that are not markers.
func Name(c byte) string { return names[c] }
