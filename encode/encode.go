package encode

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/signadot/rwjson/debug"
	"github.com/signadot/rwjson/format"
	"github.com/signadot/rwjson/ir"
	"github.com/signadot/rwjson/token"
)

var ErrEncoding = errors.New("encoding error")

type EncState struct {
	depth, indent int

	format format.Format

	Color func(ir.Type, ColorAttr, string) string
}

// Encode writes v to w. JSON output is compact unless EncodeIndent is
// given and carries no trailing newline.
func Encode(v ir.Source, w io.Writer, opts ...EncodeOption) error {
	d, err := Append(nil, v, opts...)
	if err != nil {
		return err
	}
	_, err = w.Write(d)
	return err
}

// Dump returns the text of v.
func Dump(v ir.Source, opts ...EncodeOption) (string, error) {
	d, err := Append(nil, v, opts...)
	if err != nil {
		return "", err
	}
	return string(d), nil
}

// Append appends the text of v to dst. On failure dst is returned
// unchanged with the error.
func Append(dst []byte, v ir.Source, opts ...EncodeOption) ([]byte, error) {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	var (
		res []byte
		err error
	)
	switch es.format {
	case format.JSONFormat:
		res, err = appendValue(dst, v, es)
	case format.YAMLFormat:
		res, err = appendYAML(dst, v, es)
	default:
		err = fmt.Errorf("%w: unsupported format %s", ErrEncoding, es.format)
	}
	if err != nil {
		return dst, err
	}
	if debug.Encode() {
		debug.Logf("encode: %s as %s: %s\n", v.Type(), es.format, res[len(dst):])
	}
	return res, nil
}

func applyColor(es *EncState, t ir.Type, attr ColorAttr, v string) string {
	if es.Color == nil {
		return v
	}
	return es.Color(t, attr, v)
}

func appendColored(dst []byte, es *EncState, t ir.Type, attr ColorAttr, v []byte) []byte {
	if es.Color == nil {
		return append(dst, v...)
	}
	return append(dst, es.Color(t, attr, string(v))...)
}

func appendSep(dst []byte, es *EncState, t ir.Type, sep string) []byte {
	return append(dst, applyColor(es, t, SepColor, sep)...)
}

func appendNL(dst []byte, es *EncState) []byte {
	if es.indent <= 0 {
		return dst
	}
	dst = append(dst, '\n')
	return append(dst, strings.Repeat(" ", es.indent*es.depth)...)
}

func appendValue(dst []byte, v ir.Source, es *EncState) ([]byte, error) {
	if err := v.Err(); err != nil {
		return dst, fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	switch t := v.Type(); t {
	case ir.NullType:
		return appendColored(dst, es, t, ValueColor, []byte("null")), nil
	case ir.TrueType:
		return appendColored(dst, es, t, ValueColor, []byte("true")), nil
	case ir.FalseType:
		return appendColored(dst, es, t, ValueColor, []byte("false")), nil
	case ir.NumberType:
		return appendNumber(dst, v, es)
	case ir.StringType:
		s, err := v.Str()
		if err != nil {
			return dst, fmt.Errorf("%w: %w", ErrEncoding, err)
		}
		return appendColored(dst, es, t, ValueColor, quote(s)), nil
	case ir.ListType, ir.ObjectType:
		return appendContainer(dst, v, t, es)
	default:
		return dst, fmt.Errorf("%w: unknown type %d", ErrEncoding, t)
	}
}

func quote(s string) []byte {
	d := make([]byte, 0, len(s)+2)
	d = append(d, '"')
	d = token.AppendEscape(d, s)
	return append(d, '"')
}

func appendNumber(dst []byte, v ir.Source, es *EncState) ([]byte, error) {
	nt, err := v.NumType()
	if err != nil {
		return dst, fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	var num []byte
	if raw := ir.LiteralText(v); len(raw) > 0 {
		num, err = literalNumber(nt, raw)
		if err != nil {
			return dst, err
		}
		return appendColored(dst, es, ir.NumberType, ValueColor, num), nil
	}
	switch nt {
	case ir.UnsignedInteger:
		u, err := v.Uint()
		if err != nil {
			return dst, fmt.Errorf("%w: %w", ErrEncoding, err)
		}
		num = strconv.AppendUint(nil, u, 10)
	case ir.SignedInteger:
		i, err := v.Int()
		if err != nil {
			return dst, fmt.Errorf("%w: %w", ErrEncoding, err)
		}
		num = strconv.AppendInt(nil, i, 10)
	default:
		f, err := v.Float()
		if err != nil {
			return dst, fmt.Errorf("%w: %w", ErrEncoding, err)
		}
		num, err = AppendFloat(nil, f)
		if err != nil {
			return dst, err
		}
	}
	return appendColored(dst, es, ir.NumberType, ValueColor, num), nil
}

// literalNumber returns the text to write for a number read as raw.
// Integer literals are written as read. Floats are written in shortest form
// unless they overflow float64, in which case the literal is kept.
func literalNumber(nt ir.NumType, raw []byte) ([]byte, error) {
	if nt != ir.FloatingPoint {
		return raw, nil
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	switch {
	case err == nil:
		return AppendFloat(nil, f)
	case errors.Is(err, strconv.ErrRange):
		return raw, nil
	default:
		return nil, fmt.Errorf("%w: bad number %q", ErrEncoding, raw)
	}
}

// AppendFloat appends the shortest text reading back as f. The text always
// holds a fraction or an exponent so that it parses as a floating point
// number. Infinities and NaN fail with ErrEncoding.
func AppendFloat(dst []byte, f float64) ([]byte, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return dst, fmt.Errorf("%w: %v is not representable", ErrEncoding, f)
	}
	n := len(dst)
	dst = strconv.AppendFloat(dst, f, 'g', -1, 64)
	if !bytes.ContainsAny(dst[n:], ".e") {
		dst = append(dst, ".0"...)
	}
	return dst, nil
}

func appendContainer(dst []byte, v ir.Source, t ir.Type, es *EncState) ([]byte, error) {
	opener, closer := "[", "]"
	if t == ir.ObjectType {
		opener, closer = "{", "}"
	}
	dst = appendSep(dst, es, t, opener)
	es.depth++
	i := 0
	err := v.Range(func(key string, child ir.Source) error {
		if i > 0 {
			dst = appendSep(dst, es, t, ",")
		}
		i++
		dst = appendNL(dst, es)
		if t == ir.ObjectType {
			dst = appendColored(dst, es, t, FieldColor, quote(key))
			dst = appendSep(dst, es, t, ":")
			if es.indent > 0 {
				dst = append(dst, ' ')
			}
		}
		var err error
		dst, err = appendValue(dst, child, es)
		return err
	})
	es.depth--
	if err != nil {
		if !errors.Is(err, ErrEncoding) {
			err = fmt.Errorf("%w: %w", ErrEncoding, err)
		}
		return dst, err
	}
	if i > 0 {
		dst = appendNL(dst, es)
	}
	return appendSep(dst, es, t, closer), nil
}

func appendYAML(dst []byte, v ir.Source, es *EncState) ([]byte, error) {
	y, err := toYAML(v)
	if err != nil {
		return dst, err
	}
	indent := es.indent
	if indent <= 0 {
		indent = 2
	}
	d, err := yaml.MarshalWithOptions(y, yaml.Indent(indent))
	if err != nil {
		return dst, fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return append(dst, d...), nil
}

// toYAML converts v to values the yaml package renders in order: objects
// become yaml.MapSlice so duplicate and ordered keys survive.
func toYAML(v ir.Source) (any, error) {
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncoding, err)
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
		if raw := ir.LiteralText(v); len(raw) > 0 {
			return yamlNumber(nt, raw)
		}
		switch nt {
		case ir.UnsignedInteger:
			return v.Uint()
		case ir.SignedInteger:
			return v.Int()
		default:
			f, err := v.Float()
			if err != nil {
				return nil, err
			}
			if math.IsInf(f, 0) || math.IsNaN(f) {
				return nil, fmt.Errorf("%w: %v is not representable", ErrEncoding, f)
			}
			return f, nil
		}
	case ir.ListType:
		res := []any{}
		err := v.Range(func(_ string, child ir.Source) error {
			c, err := toYAML(child)
			res = append(res, c)
			return err
		})
		return res, err
	case ir.ObjectType:
		res := yaml.MapSlice{}
		err := v.Range(func(key string, child ir.Source) error {
			c, err := toYAML(child)
			res = append(res, yaml.MapItem{Key: key, Value: c})
			return err
		})
		return res, err
	default:
		return nil, fmt.Errorf("%w: unknown type %d", ErrEncoding, t)
	}
}

// yamlNumber reads a number literal into the Go type of its subkind. YAML
// output has no form for literals out of that range.
func yamlNumber(nt ir.NumType, raw []byte) (any, error) {
	var (
		res any
		err error
	)
	switch nt {
	case ir.UnsignedInteger:
		res, err = strconv.ParseUint(string(raw), 10, 64)
	case ir.SignedInteger:
		res, err = strconv.ParseInt(string(raw), 10, 64)
	default:
		res, err = strconv.ParseFloat(string(raw), 64)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not representable in yaml", ErrEncoding, raw)
	}
	return res, nil
}
