package eval

import (
	"fmt"
	"math"
	"reflect"

	jsoniter "github.com/json-iterator/go"

	"github.com/signadot/rwjson/ir"
	"github.com/signadot/rwjson/rvalue"
)

var jsonStd = jsoniter.ConfigCompatibleWithStandardLibrary

// ToAny converts v to plain Go values: nil, bool, string, int (uint64 or
// int64 when out of int range), float64, []any and map[string]any. When an
// object repeats a key the first entry wins.
func ToAny(v ir.Source) (any, error) {
	if err := v.Err(); err != nil {
		return nil, err
	}
	switch t := v.Type(); t {
	case ir.NullType:
		return nil, nil
	case ir.TrueType, ir.FalseType:
		return t == ir.TrueType, nil
	case ir.StringType:
		return v.Str()
	case ir.NumberType:
		nt, err := v.NumType()
		if err != nil {
			return nil, err
		}
		switch nt {
		case ir.UnsignedInteger:
			u, err := v.Uint()
			if err != nil {
				return nil, err
			}
			if u > math.MaxInt {
				return u, nil
			}
			return int(u), nil
		case ir.SignedInteger:
			i, err := v.Int()
			if err != nil {
				return nil, err
			}
			if i < math.MinInt {
				return i, nil
			}
			return int(i), nil
		default:
			return v.Float()
		}
	case ir.ListType:
		n, err := v.Len()
		if err != nil {
			return nil, err
		}
		res := make([]any, 0, n)
		err = v.Range(func(_ string, child ir.Source) error {
			c, err := ToAny(child)
			res = append(res, c)
			return err
		})
		return res, err
	case ir.ObjectType:
		res := map[string]any{}
		err := v.Range(func(key string, child ir.Source) error {
			if _, ok := res[key]; ok {
				return nil
			}
			c, err := ToAny(child)
			res[key] = c
			return err
		})
		return res, err
	default:
		return nil, fmt.Errorf("%w: %s", ir.ErrTypeMismatch, t)
	}
}

// FromAny converts the result of an expression to a node. Sources are
// copied, Go maps become objects with sorted keys, and any other value is
// converted through its standard JSON marshaling.
func FromAny(v any) (*ir.Node, error) {
	switch x := v.(type) {
	case nil:
		return ir.Null(), nil
	case *ir.Node:
		if x == nil {
			return ir.Null(), nil
		}
		return x.Clone(), nil
	case ir.Source:
		return ir.FromSource(x)
	case bool:
		return ir.FromBool(x), nil
	case string:
		return ir.FromString(x), nil
	case int:
		return ir.FromNumber(x), nil
	case int8:
		return ir.FromNumber(x), nil
	case int16:
		return ir.FromNumber(x), nil
	case int32:
		return ir.FromNumber(x), nil
	case int64:
		return ir.FromNumber(x), nil
	case uint:
		return ir.FromNumber(x), nil
	case uint8:
		return ir.FromNumber(x), nil
	case uint16:
		return ir.FromNumber(x), nil
	case uint32:
		return ir.FromNumber(x), nil
	case uint64:
		return ir.FromNumber(x), nil
	case float32:
		return ir.FromNumber(x), nil
	case float64:
		return ir.FromNumber(x), nil
	case []any:
		res := make([]*ir.Node, len(x))
		for i, elt := range x {
			n, err := FromAny(elt)
			if err != nil {
				return nil, err
			}
			res[i] = n
		}
		return ir.FromSlice(res), nil
	case []*ir.Node:
		res := make([]*ir.Node, len(x))
		for i, elt := range x {
			res[i] = elt.Clone()
		}
		return ir.FromSlice(res), nil
	case map[string]any:
		m := make(map[string]*ir.Node, len(x))
		for k, elt := range x {
			n, err := FromAny(elt)
			if err != nil {
				return nil, err
			}
			m[k] = n
		}
		return ir.FromMap(m), nil
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Func || rv.Kind() == reflect.Chan {
		return nil, fmt.Errorf("cannot convert %T to a value", v)
	}
	d, err := jsonStd.Marshal(v)
	if err != nil {
		return nil, err
	}
	pv, err := rvalue.Parse(d, rvalue.LoadTolerant())
	if err != nil {
		return nil, err
	}
	return ir.FromSource(pv)
}
