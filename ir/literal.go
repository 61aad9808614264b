package ir

import (
	"errors"
	"fmt"
	"strconv"
)

// Literal is implemented by sources that keep the text a number was read
// from. Raw returns nil when there is none.
type Literal interface {
	Raw() []byte
}

// LiteralText returns the literal text of the number s, or nil if s is not
// a number or does not keep its text.
func LiteralText(s Source) []byte {
	if s.Err() != nil || s.Type() != NumberType {
		return nil
	}
	if l, ok := s.(Literal); ok {
		return l.Raw()
	}
	return nil
}

// Raw returns the literal of a number too large for the Go type of its
// subkind, or a SignedInteger written "-0", and nil otherwise.
func (n *Node) Raw() []byte {
	if n.typ != NumberType || n.lit == "" {
		return nil
	}
	return []byte(n.lit)
}

// setLiteral sets n to the number written raw with subkind nt. The text is
// kept when the Go type of nt cannot hold it.
func (n *Node) setLiteral(nt NumType, raw []byte) error {
	s := string(raw)
	var err error
	switch nt {
	case UnsignedInteger:
		var u uint64
		if u, err = strconv.ParseUint(s, 10, 64); err == nil {
			n.SetUint(u)
			return nil
		}
	case SignedInteger:
		var i int64
		if i, err = strconv.ParseInt(s, 10, 64); err == nil && i < 0 {
			n.SetInt(i)
			return nil
		}
	default:
		var f float64
		if f, err = strconv.ParseFloat(s, 64); err == nil {
			n.SetFloat(f)
			return nil
		}
	}
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return fmt.Errorf("%w: bad number %q", ErrTypeMismatch, s)
	}
	n.reset(NumberType)
	n.num = nt
	n.lit = s
	return nil
}

func (n *Node) litRange(op string) error {
	return fmt.Errorf("%w: %s of %s", ErrRange, op, n.lit)
}
