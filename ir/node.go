package ir

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
)

// noCopy may be embedded in structs which must not be copied after first
// use; go vet's copylocks check reports copies.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Node is the write-side JSON value: a fully owned, mutable tree.
//
// Nodes are handled by pointer. Assigning a Node by value is reported by go
// vet; use [Node.Take] to move contents and [Node.Clone] for a deep copy.
// The zero Node is null.
type Node struct {
	noCopy noCopy

	typ Type
	num NumType
	str string
	u   uint64
	i   int64
	f   float64
	// lit is the text of a number its Go type cannot hold.
	lit string

	// keys[i] is the key of values[i] for objects; nil for lists.
	keys   []string
	values []*Node
}

func Null() *Node {
	return &Node{}
}

func FromString(v string) *Node {
	n := &Node{}
	n.SetString(v)
	return n
}

func FromBool(v bool) *Node {
	n := &Node{}
	n.SetBool(v)
	return n
}

// FromInt returns a number node. Negative values are SignedInteger, others
// UnsignedInteger, which is what parsing the dumped literal yields.
func FromInt(v int64) *Node {
	n := &Node{}
	n.SetInt(v)
	return n
}

func FromUint(v uint64) *Node {
	n := &Node{}
	n.SetUint(v)
	return n
}

func FromFloat(v float64) *Node {
	n := &Node{}
	n.SetFloat(v)
	return n
}

// Number is the set of Go numeric types a node can be built from.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// FromNumber returns a number node for any integral or floating value.
func FromNumber[T Number](v T) *Node {
	var one T = 1
	if one/(one+one) != 0 {
		return FromFloat(float64(v))
	}
	if v < 0 {
		return FromInt(int64(v))
	}
	return FromUint(uint64(v))
}

func FromSlice(vs []*Node) *Node {
	res := &Node{typ: ListType}
	res.values = make([]*Node, len(vs))
	for i, v := range vs {
		res.values[i] = orNull(v)
	}
	return res
}

type KeyVal struct {
	Key string
	Val *Node
}

// FromKeyVals returns an object with the given entries in order. Duplicate
// keys are kept.
func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{typ: ObjectType}
	res.keys = make([]string, len(kvs))
	res.values = make([]*Node, len(kvs))
	for i := range kvs {
		res.keys[i] = kvs[i].Key
		res.values[i] = orNull(kvs[i].Val)
	}
	return res
}

// FromMap returns an object with the entries of m in key order.
func FromMap(m map[string]*Node) *Node {
	res := &Node{typ: ObjectType}
	res.keys = slices.Sorted(maps.Keys(m))
	res.values = make([]*Node, len(res.keys))
	for i, k := range res.keys {
		res.values[i] = orNull(m[k])
	}
	return res
}

func orNull(n *Node) *Node {
	if n == nil {
		return Null()
	}
	return n
}

func (n *Node) reset(t Type) {
	n.typ = t
	n.num = UnsignedInteger
	n.str = ""
	n.u, n.i, n.f = 0, 0, 0
	n.lit = ""
	n.keys = nil
	n.values = nil
}

// Clear resets n to null, discarding any children.
func (n *Node) Clear() {
	n.reset(NullType)
}

func (n *Node) SetNull() {
	n.reset(NullType)
}

func (n *Node) SetString(v string) {
	n.reset(StringType)
	n.str = v
}

func (n *Node) SetBool(v bool) {
	n.reset(boolType(v))
}

func (n *Node) SetInt(v int64) {
	if v >= 0 {
		n.SetUint(uint64(v))
		return
	}
	n.reset(NumberType)
	n.num = SignedInteger
	n.i = v
}

func (n *Node) SetUint(v uint64) {
	n.reset(NumberType)
	n.num = UnsignedInteger
	n.u = v
}

func (n *Node) SetFloat(v float64) {
	n.reset(NumberType)
	n.num = FloatingPoint
	n.f = v
}

// Key returns the first child of n stored under k, appending a null child
// when there is none. A node which is not an object is first reset to an
// empty object.
func (n *Node) Key(k string) *Node {
	if n.typ != ObjectType {
		n.reset(ObjectType)
	}
	if c := n.Get(k); c != nil {
		return c
	}
	c := Null()
	n.keys = append(n.keys, k)
	n.values = append(n.values, c)
	return c
}

// Index returns the i'th element of n, growing the list with nulls as
// needed. A node which is not a list is first reset to an empty list.
// Index panics if i is negative.
func (n *Node) Index(i int) *Node {
	if i < 0 {
		panic(fmt.Sprintf("ir: negative index %d", i))
	}
	if n.typ != ListType {
		n.reset(ListType)
	}
	for len(n.values) <= i {
		n.values = append(n.values, Null())
	}
	return n.values[i]
}

// Add appends an entry to the object n even if k is already present.
func (n *Node) Add(k string, v *Node) *Node {
	if n.typ != ObjectType {
		n.reset(ObjectType)
	}
	n.keys = append(n.keys, k)
	n.values = append(n.values, orNull(v))
	return n
}

// Append appends v to the list n.
func (n *Node) Append(v *Node) *Node {
	if n.typ != ListType {
		n.reset(ListType)
	}
	n.values = append(n.values, orNull(v))
	return n
}

// Get returns the first child under k, or nil if n is not an object or has
// no such key.
func (n *Node) Get(k string) *Node {
	if n.typ != ObjectType {
		return nil
	}
	for i, key := range n.keys {
		if key == k {
			return n.values[i]
		}
	}
	return nil
}

// At returns the i'th child of a list or object, or nil.
func (n *Node) At(i int) *Node {
	if n.typ.IsLeaf() || i < 0 || i >= len(n.values) {
		return nil
	}
	return n.values[i]
}

// Keys returns the keys of an object in order.
func (n *Node) Keys() []string {
	if n.typ != ObjectType {
		return nil
	}
	return slices.Clone(n.keys)
}

// Take moves the contents of n into a new node and leaves n null.
func (n *Node) Take() *Node {
	res := &Node{
		typ:    n.typ,
		num:    n.num,
		str:    n.str,
		u:      n.u,
		i:      n.i,
		f:      n.f,
		lit:    n.lit,
		keys:   n.keys,
		values: n.values,
	}
	n.Clear()
	return res
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	res := &Node{}
	return n.CloneTo(res)
}

// CloneTo deep copies n into dst, replacing its contents, and returns dst.
func (n *Node) CloneTo(dst *Node) *Node {
	dst.typ = n.typ
	dst.num = n.num
	dst.str = n.str
	dst.u, dst.i, dst.f = n.u, n.i, n.f
	dst.lit = n.lit
	dst.keys = slices.Clone(n.keys)
	dst.values = nil
	if n.values != nil {
		dst.values = make([]*Node, len(n.values))
		for i, v := range n.values {
			dst.values[i] = v.Clone()
		}
	}
	return dst
}

func (n *Node) Visit(f func(n *Node, isPost bool) (bool, error)) error {
	dive, err := f(n, false)
	if err != nil {
		return err
	}
	if dive {
		for _, c := range n.values {
			if err := c.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(n, true); err != nil {
		return err
	}
	return nil
}

func (n *Node) Err() error {
	return nil
}

func (n *Node) Type() Type {
	return n.typ
}

func (n *Node) NumType() (NumType, error) {
	if n.typ != NumberType {
		return 0, mismatch("number type", n.typ)
	}
	return n.num, nil
}

func (n *Node) Bool() (bool, error) {
	if !n.typ.IsBool() {
		return false, mismatch("bool", n.typ)
	}
	return n.typ == TrueType, nil
}

// Int returns integer values. An unsigned value above math.MaxInt64 fails
// with ErrRange.
func (n *Node) Int() (int64, error) {
	if n.typ != NumberType {
		return 0, mismatch("int", n.typ)
	}
	switch n.num {
	case SignedInteger:
		if n.lit != "" {
			i, err := strconv.ParseInt(n.lit, 10, 64)
			if err != nil {
				return 0, n.litRange("int")
			}
			return i, nil
		}
		return n.i, nil
	case UnsignedInteger:
		if n.lit != "" {
			return 0, n.litRange("int")
		}
		if n.u > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %d overflows int64", ErrRange, n.u)
		}
		return int64(n.u), nil
	default:
		return 0, fmt.Errorf("%w: int of %s", ErrTypeMismatch, n.num)
	}
}

func (n *Node) Uint() (uint64, error) {
	if n.typ != NumberType || n.num != UnsignedInteger {
		return 0, n.numMismatch("uint")
	}
	if n.lit != "" {
		return 0, n.litRange("uint")
	}
	return n.u, nil
}

func (n *Node) Float() (float64, error) {
	if n.typ != NumberType || n.num != FloatingPoint {
		return 0, n.numMismatch("float")
	}
	if n.lit != "" {
		return 0, n.litRange("float")
	}
	return n.f, nil
}

func (n *Node) Str() (string, error) {
	if n.typ != StringType {
		return "", mismatch("string", n.typ)
	}
	return n.str, nil
}

func (n *Node) Len() (int, error) {
	if n.typ.IsLeaf() {
		return 0, fmt.Errorf("%w: len of %s", ErrNotContainer, n.typ)
	}
	return len(n.values), nil
}

func (n *Node) Range(f func(key string, child Source) error) error {
	if n.typ.IsLeaf() {
		return fmt.Errorf("%w: range over %s", ErrNotContainer, n.typ)
	}
	for i, c := range n.values {
		key := ""
		if n.keys != nil {
			key = n.keys[i]
		}
		if err := f(key, c); err != nil {
			return err
		}
	}
	return nil
}

func (n *Node) numMismatch(op string) error {
	if n.typ != NumberType {
		return mismatch(op, n.typ)
	}
	return fmt.Errorf("%w: %s of %s", ErrTypeMismatch, op, n.num)
}

func mismatch(op string, t Type) error {
	return fmt.Errorf("%w: %s of %s", ErrTypeMismatch, op, t)
}
