package rvalue

import (
	"iter"

	"github.com/signadot/rwjson/ir"
)

// Values iterates the children of a list or object in declaration order.
// Each call starts over.
//
// Iterating a scalar or an error-marked value yields one error-marked
// Value in Tolerant mode and panics in Strict mode.
func (v Value) Values() iter.Seq[Value] {
	return func(yield func(Value) bool) {
		if e := v.iterable(); e != nil {
			yield(v.fail(e))
			return
		}
		n := v.node()
		for c, i := v.idx+1, 0; i < n.len; c, i = v.doc.tape[c].next, i+1 {
			if !yield(v.child(c)) {
				return
			}
		}
	}
}

// Entries iterates the key and value of each child of an object. List
// elements have the empty key. Failures are reported as for Values, with
// an empty key.
func (v Value) Entries() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if e := v.iterable(); e != nil {
			yield("", v.fail(e))
			return
		}
		n := v.node()
		for c, i := v.idx+1, 0; i < n.len; c, i = v.doc.tape[c].next, i+1 {
			key := ""
			if cn := &v.doc.tape[c]; cn.key >= 0 {
				key = v.doc.keyOf(cn)
			}
			if !yield(key, v.child(c)) {
				return
			}
		}
	}
}

func (v Value) iterable() *Error {
	if e := v.failure(); e != nil {
		return e
	}
	if t := v.node().typ; t.IsLeaf() {
		return notContainer(opIterate, t)
	}
	return nil
}

// Range implements ir.Source.
func (v Value) Range(f func(key string, child ir.Source) error) error {
	if e := v.iterable(); e != nil {
		return v.mode.raise(e)
	}
	for k, c := range v.Entries() {
		if err := f(k, c); err != nil {
			return err
		}
	}
	return nil
}

var _ ir.Source = Value{}
