package rvalue

// Mode selects how failures are reported.
//
// In Tolerant mode, navigation that fails returns an error-marked Value
// (Type NullType, Err non-nil) and accessors return an error. Every
// operation on an error-marked Value reports the same error again, so a
// chain like v.Get("a").Index(2).Get("b") can be checked once at the end.
//
// In Strict mode the same failures panic with an *Error. Use [Catch] to
// turn the panic back into an error.
//
// Both modes detect exactly the same failures. The default is fixed at
// build time by [DefaultMode]; [LoadMode] selects the mode of a parse and
// [Value.WithMode] switches the mode at a call site.
type Mode int

const (
	Tolerant Mode = iota
	Strict
)

func (m Mode) String() string {
	switch m {
	case Tolerant:
		return "tolerant"
	case Strict:
		return "strict"
	default:
		return "unknown"
	}
}

// raise reports e according to m: Strict panics, Tolerant returns e.
func (m Mode) raise(e *Error) error {
	if m == Strict {
		panic(e)
	}
	return e
}
