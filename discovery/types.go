package discovery

// Type is the primitive type tag of a value descriptor. The set is closed:
// anything outside it parses to TypeUnknown and is mapped to a generic object
// schema downstream.
type Type string

const (
	TypeChar    Type = "char"
	TypeString  Type = "string"
	TypeDouble  Type = "double"
	TypeSingle  Type = "single"
	TypeLogical Type = "logical"
	TypeInt8    Type = "int8"
	TypeUint8   Type = "uint8"
	TypeInt16   Type = "int16"
	TypeUint16  Type = "uint16"
	TypeInt32   Type = "int32"
	TypeUint32  Type = "uint32"
	TypeInt64   Type = "int64"
	TypeUint64  Type = "uint64"
	TypeStruct  Type = "struct"
	TypeCell    Type = "cell"

	TypeUnknown Type = ""
)

// Types returns the closed tag set, excluding TypeUnknown.
func Types() []Type {
	return []Type{
		TypeChar,
		TypeString,
		TypeDouble,
		TypeSingle,
		TypeLogical,
		TypeInt8,
		TypeUint8,
		TypeInt16,
		TypeUint16,
		TypeInt32,
		TypeUint32,
		TypeInt64,
		TypeUint64,
		TypeStruct,
		TypeCell,
	}
}

// Values returns the wire spellings of every known tag.
func (Type) Values() []string {
	types := Types()
	values := make([]string, len(types))
	for i, t := range types {
		values[i] = string(t)
	}
	return values
}

// ParseType maps a wire spelling to its tag, or TypeUnknown.
func ParseType(s string) Type {
	for _, t := range Types() {
		if string(t) == s {
			return t
		}
	}
	return TypeUnknown
}

// String implements fmt.Stringer.
func (t Type) String() string {
	if t == TypeUnknown {
		return "unknown"
	}
	return string(t)
}
