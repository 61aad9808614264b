package rvalue

import (
	"errors"
	"fmt"
	"strings"

	"github.com/signadot/rwjson/ir"
)

var (
	ErrParse          = errors.New("parse error")
	ErrTypeMismatch   = ir.ErrTypeMismatch
	ErrNotContainer   = ir.ErrNotContainer
	ErrRange          = ir.ErrRange
	ErrKeyNotFound    = errors.New("key not found")
	ErrIndexRange     = errors.New("index out of range")
	ErrNotObjectChild = errors.New("not an object member")
	ErrBadPath        = errors.New("bad path")
	ErrMaxDepth       = errors.New("maximum nesting depth exceeded")
	ErrZeroValue      = errors.New("zero Value")

	errUnexpectedEnd = errors.New("unexpected end of input")
	errUnexpected    = errors.New("unexpected character")
	errTrailing      = errors.New("trailing data after value")
)

const (
	opLoad     = "load"
	opGet      = "get"
	opIndex    = "index"
	opPath     = "path"
	opNumType  = "number type"
	opBool     = "bool"
	opInt      = "int"
	opUint     = "uint"
	opFloat    = "float"
	opString   = "string"
	opLen      = "len"
	opKey      = "key"
	opIterate  = "iterate"
	opValidate = "value"
)

// Error describes a failed operation on a Value. Err wraps one of the
// package's sentinel errors.
type Error struct {
	Op string
	// Key is set for failed key lookups.
	Key string
	// Index is set for failed index lookups.
	Index int
	// Pos is the byte offset of a parse error, at 1-based Line and Col.
	Pos       int
	Line, Col int
	Err       error
}

func (e *Error) Error() string {
	b := &strings.Builder{}
	b.WriteString("rvalue: ")
	b.WriteString(e.Op)
	switch e.Op {
	case opLoad:
		fmt.Fprintf(b, " at offset %d (line %d, col %d)", e.Pos, e.Line, e.Col)
	case opGet, opPath:
		fmt.Fprintf(b, " %q", e.Key)
	case opIndex:
		fmt.Fprintf(b, " [%d]", e.Index)
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

var errZero = &Error{Op: opValidate, Err: ErrZeroValue}

func mismatch(op string, have ir.Type) *Error {
	return &Error{Op: op, Err: fmt.Errorf("%w: have %s", ErrTypeMismatch, have)}
}

func numMismatch(op string, have ir.NumType) *Error {
	return &Error{Op: op, Err: fmt.Errorf("%w: have %s", ErrTypeMismatch, have)}
}

func notContainer(op string, have ir.Type) *Error {
	return &Error{Op: op, Err: fmt.Errorf("%w: have %s", ErrNotContainer, have)}
}

// Catch recovers a panic raised by a Strict mode failure and stores it in
// *errp. Other panics are re-raised. It must be deferred directly:
//
//	defer rvalue.Catch(&err)
func Catch(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	e, ok := r.(*Error)
	if !ok {
		panic(r)
	}
	*errp = e
}
