package ir

import "fmt"

// Source is the read view shared by write-side nodes and parsed values.
//
// Accessors return an error wrapping [ErrTypeMismatch] when the value has
// another kind and [ErrNotContainer] when Len or Range is called on a
// scalar. Err reports a value that is itself the result of a failure.
type Source interface {
	Err() error
	Type() Type
	NumType() (NumType, error)
	Bool() (bool, error)
	Int() (int64, error)
	Uint() (uint64, error)
	Float() (float64, error)
	Str() (string, error)
	Len() (int, error)
	// Range calls f for every child in declaration order, with key set to
	// the child's object key, or "" for list elements. Range stops at the
	// first error returned by f and returns it.
	Range(f func(key string, child Source) error) error
}

// FromSource returns a deep, fully owned copy of src.
func FromSource(src Source) (*Node, error) {
	if n, ok := src.(*Node); ok {
		return n.Clone(), nil
	}
	if err := src.Err(); err != nil {
		return nil, err
	}
	res := &Node{}
	if err := res.copyFrom(src); err != nil {
		return nil, err
	}
	return res, nil
}

func (n *Node) copyFrom(src Source) error {
	switch t := src.Type(); t {
	case NullType:
		n.SetNull()
	case TrueType, FalseType:
		n.SetBool(t == TrueType)
	case StringType:
		s, err := src.Str()
		if err != nil {
			return err
		}
		n.SetString(s)
	case NumberType:
		nt, err := src.NumType()
		if err != nil {
			return err
		}
		if raw := LiteralText(src); len(raw) > 0 {
			return n.setLiteral(nt, raw)
		}
		switch nt {
		case UnsignedInteger:
			u, err := src.Uint()
			if err != nil {
				return err
			}
			n.SetUint(u)
		case SignedInteger:
			i, err := src.Int()
			if err != nil {
				return err
			}
			n.SetInt(i)
		default:
			f, err := src.Float()
			if err != nil {
				return err
			}
			n.SetFloat(f)
		}
	case ListType, ObjectType:
		n.reset(t)
		return src.Range(func(key string, child Source) error {
			c := &Node{}
			if err := c.copyFrom(child); err != nil {
				return err
			}
			if t == ObjectType {
				n.keys = append(n.keys, key)
			}
			n.values = append(n.values, c)
			return nil
		})
	default:
		return fmt.Errorf("%w: %s", ErrTypeMismatch, t)
	}
	return nil
}
