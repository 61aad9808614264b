package ir

import "fmt"

// Type is the kind of a JSON value.
type Type int

const (
	NullType Type = iota
	FalseType
	TrueType
	NumberType
	StringType
	ListType
	ObjectType
)

var typeNames = [...]string{
	NullType:   "Null",
	FalseType:  "False",
	TrueType:   "True",
	NumberType: "Number",
	StringType: "String",
	ListType:   "List",
	ObjectType: "Object",
}

// TypeString returns the name of t, or "Unknown" when t is not one of the
// declared kinds.
func TypeString(t Type) string {
	if t < 0 || int(t) >= len(typeNames) {
		return "Unknown"
	}
	return typeNames[t]
}

func (t Type) String() string {
	return TypeString(t)
}

func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("unrecognized type %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	for i, name := range typeNames {
		if name == string(d) {
			*t = Type(i)
			return nil
		}
	}
	return fmt.Errorf("unrecognized type %q", d)
}

func (t Type) Valid() bool {
	return t >= NullType && t <= ObjectType
}

func Types() []Type {
	return []Type{
		NullType,
		FalseType,
		TrueType,
		NumberType,
		StringType,
		ListType,
		ObjectType,
	}
}

func (t Type) IsLeaf() bool {
	switch t {
	case ObjectType, ListType:
		return false
	default:
		return true
	}
}

func (t Type) IsBool() bool {
	return t == TrueType || t == FalseType
}

func boolType(v bool) Type {
	if v {
		return TrueType
	}
	return FalseType
}

// NumType refines NumberType values by the shape of their literal.
type NumType int

const (
	// UnsignedInteger literals have no sign, fraction or exponent.
	UnsignedInteger NumType = iota
	// SignedInteger literals have a leading minus and no fraction or exponent.
	SignedInteger
	// FloatingPoint literals have a fraction or an exponent.
	FloatingPoint
)

func (n NumType) String() string {
	switch n {
	case UnsignedInteger:
		return "Unsigned_integer"
	case SignedInteger:
		return "Signed_integer"
	case FloatingPoint:
		return "Floating_point"
	default:
		return "Unknown"
	}
}

func (n NumType) IsInteger() bool {
	return n == UnsignedInteger || n == SignedInteger
}
