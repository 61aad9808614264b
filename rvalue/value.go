package rvalue

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/signadot/rwjson/encode"
	"github.com/signadot/rwjson/ir"
)

// Value is a read-only handle on a node of a parsed document.
//
// A Value returned by [Load] or [Parse] borrows the caller's buffer: it is
// valid only while that buffer is alive and unmodified. [Value.Own] returns
// an [Owned] value backed by a private copy.
//
// Values are small and passed by value. Scalars are decoded on access and
// the child index of a container is built on first keyed or positional
// access, so reading a few fields of a large document costs little more
// than parsing it.
type Value struct {
	doc  *document
	idx  int
	mode Mode
	err  *Error
}

// Load parses one JSON document from buf. On malformed input it returns an
// error-marked Value in Tolerant mode and panics with an *Error in Strict
// mode; no partial tree is ever exposed.
func Load(buf []byte, opts ...LoadOption) Value {
	o := getOpts(opts)
	doc, err := parse(buf, o)
	if err != nil {
		return failed(o.mode, err)
	}
	return Value{doc: doc, mode: o.mode}
}

// Parse is like Load but reports malformed input as an error in every mode.
func Parse(buf []byte, opts ...LoadOption) (Value, error) {
	o := getOpts(opts)
	doc, err := parse(buf, o)
	if err != nil {
		return Value{mode: o.mode, err: err}, err
	}
	return Value{doc: doc, mode: o.mode}, nil
}

func failed(m Mode, e *Error) Value {
	m.raise(e)
	return Value{mode: m, err: e}
}

// Err returns the failure that produced v, or nil.
func (v Value) Err() error {
	if e := v.failure(); e != nil {
		return e
	}
	return nil
}

func (v Value) failure() *Error {
	if v.err != nil {
		return v.err
	}
	if v.doc == nil {
		return errZero
	}
	return nil
}

func (v Value) node() *node {
	return &v.doc.tape[v.idx]
}

// fail reports e in v's mode, returning an error-marked Value in Tolerant
// mode.
func (v Value) fail(e *Error) Value {
	return failed(v.mode, e)
}

func (v Value) Mode() Mode {
	return v.mode
}

// WithMode returns v reporting failures in mode m. Values reached from the
// result inherit m.
func (v Value) WithMode(m Mode) Value {
	v.mode = m
	return v
}

func (v Value) Strict() Value {
	return v.WithMode(Strict)
}

func (v Value) Tolerant() Value {
	return v.WithMode(Tolerant)
}

// Type returns the kind of v. Error-marked values are NullType.
func (v Value) Type() ir.Type {
	if v.failure() != nil {
		return ir.NullType
	}
	return v.node().typ
}

// expect returns v's node if it has kind t.
func (v Value) expect(op string, t ir.Type) (*node, error) {
	if e := v.failure(); e != nil {
		return nil, v.mode.raise(e)
	}
	n := v.node()
	if n.typ != t {
		return nil, v.mode.raise(mismatch(op, n.typ))
	}
	return n, nil
}

func (v Value) NumType() (ir.NumType, error) {
	n, err := v.expect(opNumType, ir.NumberType)
	if err != nil {
		return 0, err
	}
	return n.num, nil
}

func (v Value) Bool() (bool, error) {
	if e := v.failure(); e != nil {
		return false, v.mode.raise(e)
	}
	switch t := v.node().typ; t {
	case ir.TrueType:
		return true, nil
	case ir.FalseType:
		return false, nil
	default:
		return false, v.mode.raise(mismatch(opBool, t))
	}
}

// Int returns signed and unsigned integers. A literal outside the int64
// range, including an unsigned one above math.MaxInt64, fails with
// ErrRange.
func (v Value) Int() (int64, error) {
	n, err := v.expect(opInt, ir.NumberType)
	if err != nil {
		return 0, err
	}
	raw := v.doc.buf[n.start:n.end]
	switch n.num {
	case ir.SignedInteger:
		i, err := strconv.ParseInt(string(raw), 10, 64)
		if err != nil {
			return 0, v.mode.raise(rangeErr(opInt, raw))
		}
		return i, nil
	case ir.UnsignedInteger:
		u, err := strconv.ParseUint(string(raw), 10, 64)
		if err != nil || u > math.MaxInt64 {
			return 0, v.mode.raise(rangeErr(opInt, raw))
		}
		return int64(u), nil
	default:
		return 0, v.mode.raise(numMismatch(opInt, n.num))
	}
}

// Uint is valid only for UnsignedInteger values.
func (v Value) Uint() (uint64, error) {
	n, err := v.expect(opUint, ir.NumberType)
	if err != nil {
		return 0, err
	}
	if n.num != ir.UnsignedInteger {
		return 0, v.mode.raise(numMismatch(opUint, n.num))
	}
	raw := v.doc.buf[n.start:n.end]
	u, err := strconv.ParseUint(string(raw), 10, 64)
	if err != nil {
		return 0, v.mode.raise(rangeErr(opUint, raw))
	}
	return u, nil
}

// Float is valid only for FloatingPoint values.
func (v Value) Float() (float64, error) {
	n, err := v.expect(opFloat, ir.NumberType)
	if err != nil {
		return 0, err
	}
	if n.num != ir.FloatingPoint {
		return 0, v.mode.raise(numMismatch(opFloat, n.num))
	}
	raw := v.doc.buf[n.start:n.end]
	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return 0, v.mode.raise(rangeErr(opFloat, raw))
	}
	return f, nil
}

func rangeErr(op string, raw []byte) *Error {
	return &Error{Op: op, Err: fmt.Errorf("%w: %s", ErrRange, raw)}
}

// Str returns the decoded content of a string.
func (v Value) Str() (string, error) {
	n, err := v.expect(opString, ir.StringType)
	if err != nil {
		return "", err
	}
	return v.doc.str(n), nil
}

// Raw returns the literal text of v in the parsed buffer, or nil for an
// error-marked value. The result aliases the buffer.
func (v Value) Raw() []byte {
	if v.failure() != nil {
		return nil
	}
	n := v.node()
	return v.doc.buf[n.start:n.end:n.end]
}

// Len returns the number of children of a list or object.
func (v Value) Len() (int, error) {
	if e := v.failure(); e != nil {
		return 0, v.mode.raise(e)
	}
	n := v.node()
	if n.typ.IsLeaf() {
		return 0, v.mode.raise(notContainer(opLen, n.typ))
	}
	return n.len, nil
}

// Key returns the key under which v is stored in its parent object.
func (v Value) Key() (string, error) {
	if e := v.failure(); e != nil {
		return "", v.mode.raise(e)
	}
	n := v.node()
	if n.key < 0 {
		return "", v.mode.raise(&Error{Op: opKey, Err: ErrNotObjectChild})
	}
	return v.doc.keyOf(n), nil
}

func (v Value) child(idx int) Value {
	return Value{doc: v.doc, idx: idx, mode: v.mode}
}

// Get returns the first child of the object v stored under key.
func (v Value) Get(key string) Value {
	res, err := v.lookup(key)
	if err != nil {
		return v.fail(err)
	}
	return res
}

// Lookup is like Get but returns failures as an error in every mode.
func (v Value) Lookup(key string) (Value, error) {
	res, err := v.lookup(key)
	if err != nil {
		return Value{mode: v.mode, err: err}, err
	}
	return res, nil
}

func (v Value) lookup(key string) (Value, *Error) {
	if e := v.failure(); e != nil {
		return v, e
	}
	n := v.node()
	switch n.typ {
	case ir.ObjectType:
	case ir.ListType:
		return Value{}, &Error{Op: opGet, Key: key, Err: fmt.Errorf("%w: have %s", ErrTypeMismatch, n.typ)}
	default:
		return Value{}, &Error{Op: opGet, Key: key, Err: fmt.Errorf("%w: have %s", ErrNotContainer, n.typ)}
	}
	for _, c := range v.doc.children(v.idx) {
		if v.doc.keyIs(&v.doc.tape[c], key) {
			return v.child(c), nil
		}
	}
	return Value{}, &Error{Op: opGet, Key: key, Err: ErrKeyNotFound}
}

// Index returns the i'th child of a list, or of an object in declaration
// order.
func (v Value) Index(i int) Value {
	res, err := v.at(i)
	if err != nil {
		return v.fail(err)
	}
	return res
}

// At is like Index but returns failures as an error in every mode.
func (v Value) At(i int) (Value, error) {
	res, err := v.at(i)
	if err != nil {
		return Value{mode: v.mode, err: err}, err
	}
	return res, nil
}

func (v Value) at(i int) (Value, *Error) {
	if e := v.failure(); e != nil {
		return v, e
	}
	n := v.node()
	if n.typ.IsLeaf() {
		return Value{}, &Error{Op: opIndex, Index: i, Err: fmt.Errorf("%w: have %s", ErrNotContainer, n.typ)}
	}
	if i < 0 || i >= n.len {
		return Value{}, &Error{Op: opIndex, Index: i, Err: fmt.Errorf("%w: length %d", ErrIndexRange, n.len)}
	}
	return v.child(v.doc.children(v.idx)[i]), nil
}

// Has reports whether v is an object with at least one child under key.
func (v Value) Has(key string) bool {
	return v.Count(key) > 0
}

// Count returns the number of children of v stored under key; it is 0
// when v is not an object.
func (v Value) Count(key string) int {
	res := 0
	v.eachKey(key, func(Value) { res++ })
	return res
}

// GetAll returns every child stored under key in declaration order.
func (v Value) GetAll(key string) []Value {
	var res []Value
	v.eachKey(key, func(c Value) { res = append(res, c) })
	return res
}

func (v Value) eachKey(key string, f func(Value)) {
	if v.failure() != nil || v.node().typ != ir.ObjectType {
		return
	}
	n := v.node()
	for c, i := v.idx+1, 0; i < n.len; c, i = v.doc.tape[c].next, i+1 {
		if v.doc.keyIs(&v.doc.tape[c], key) {
			f(v.child(c))
		}
	}
}

// String returns the compact JSON text of v, or a description of its
// error. It does not panic in Strict mode.
func (v Value) String() string {
	if e := v.failure(); e != nil {
		return "<" + e.Error() + ">"
	}
	s, err := encode.Dump(v.Tolerant())
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return s
}

// IsNotFound reports whether err is a failed key or index lookup.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound) || errors.Is(err, ErrIndexRange)
}
