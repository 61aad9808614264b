package eval

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/rwjson/encode"
	"github.com/signadot/rwjson/ir"
)

// ExpandString replaces each $[expr] in v with the text of its result:
// strings as is, other values as compact JSON. Within an expression, a
// backslash escapes the next character so \] does not close it. An
// unterminated $[ is kept literally.
func ExpandString(v string, env Env) (string, error) {
	if !strings.Contains(v, "$[") {
		return v, nil
	}
	out := &strings.Builder{}
	i := 0
	for i < len(v) {
		j := strings.Index(v[i:], "$[")
		if j < 0 {
			out.WriteString(v[i:])
			break
		}
		out.WriteString(v[i : i+j])
		start := i + j
		code, end, ok := scanExpr(v, start+2)
		if !ok {
			out.WriteString(v[start:])
			break
		}
		x, err := evalAny(strings.TrimSpace(code), nil, env)
		if err != nil {
			return "", err
		}
		s, err := anyText(x)
		if err != nil {
			return "", fmt.Errorf("could not render result of %q: %w", code, err)
		}
		out.WriteString(s)
		i = end
	}
	return out.String(), nil
}

// scanExpr reads an expression starting at v[i] up to the first unescaped
// ']', returning it unescaped and the index after the ']'.
func scanExpr(v string, i int) (string, int, bool) {
	b := []byte{}
	for i < len(v) {
		switch c := v[i]; c {
		case '\\':
			if i+1 < len(v) {
				b = append(b, v[i+1])
				i += 2
				continue
			}
			b = append(b, c)
		case ']':
			return string(b), i + 1, true
		default:
			b = append(b, c)
		}
		i++
	}
	return "", 0, false
}

func anyText(x any) (string, error) {
	switch y := x.(type) {
	case string:
		return y, nil
	case bool:
		return strconv.FormatBool(y), nil
	case float64:
		return strconv.FormatFloat(y, 'f', -1, 64), nil
	}
	n, err := FromAny(x)
	if err != nil {
		return "", err
	}
	return encode.Dump(n)
}

// IsRawRef reports whether v has the form .[expr], a string which
// Expand replaces by the value of expr.
func IsRawRef(v string) bool {
	return len(v) >= 3 && strings.HasPrefix(v, ".[") && strings.HasSuffix(v, "]")
}

// Expand returns a copy of n with its strings expanded. A string of the
// form .[expr] is replaced by the value of expr, which may be of any kind;
// other strings are expanded with ExpandString. Object keys are kept.
func Expand(n *ir.Node, env Env) (*ir.Node, error) {
	switch n.Type() {
	case ir.ObjectType:
		keys := n.Keys()
		kvs := make([]ir.KeyVal, len(keys))
		for i, k := range keys {
			c, err := Expand(n.At(i), env)
			if err != nil {
				return nil, err
			}
			kvs[i] = ir.KeyVal{Key: k, Val: c}
		}
		return ir.FromKeyVals(kvs), nil
	case ir.ListType:
		l, _ := n.Len()
		res := make([]*ir.Node, l)
		for i := range l {
			c, err := Expand(n.At(i), env)
			if err != nil {
				return nil, err
			}
			res[i] = c
		}
		return ir.FromSlice(res), nil
	case ir.StringType:
		s, _ := n.Str()
		if IsRawRef(s) {
			code := s[2 : len(s)-1]
			x, err := evalAny(code, nil, env)
			if err != nil {
				return nil, err
			}
			return FromAny(x)
		}
		xs, err := ExpandString(s, env)
		if err != nil {
			return nil, fmt.Errorf("error expanding %q: %w", s, err)
		}
		return ir.FromString(xs), nil
	default:
		return n.Clone(), nil
	}
}
