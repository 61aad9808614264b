package encode

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/signadot/rwjson/format"
	"github.com/signadot/rwjson/ir"
)

func TestDumpCompact(t *testing.T) {
	tests := []struct {
		name string
		in   *ir.Node
		want string
	}{
		{"null", ir.Null(), "null"},
		{"true", ir.FromBool(true), "true"},
		{"false", ir.FromBool(false), "false"},
		{"uint", ir.FromUint(18446744073709551615), "18446744073709551615"},
		{"int", ir.FromInt(-42), "-42"},
		{"float", ir.FromFloat(1.5), "1.5"},
		{"float whole", ir.FromFloat(100), "100.0"},
		{"float zero", ir.FromFloat(0), "0.0"},
		{"float neg zero", ir.FromFloat(math.Copysign(0, -1)), "-0.0"},
		{"float exp", ir.FromFloat(1e21), "1e+21"},
		{"string", ir.FromString("a\"b\\c\n\x01"), `"a\"b\\c\n\u0001"`},
		{"empty list", ir.FromSlice(nil), "[]"},
		{"empty object", ir.FromKeyVals(nil), "{}"},
		{
			"list",
			ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromString("x"), ir.Null()}),
			`[1,"x",null]`,
		},
		{
			"object order and duplicates",
			ir.FromKeyVals([]ir.KeyVal{
				{Key: "b", Val: ir.FromInt(1)},
				{Key: "a", Val: ir.FromInt(2)},
				{Key: "b", Val: ir.FromInt(3)},
			}),
			`{"b":1,"a":2,"b":3}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Dump(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %s want %s", got, tt.want)
			}
		})
	}
}

func TestDumpIndent(t *testing.T) {
	n := ir.Null()
	n.Key("a").Index(1).SetInt(2)
	n.Key("b").SetString("c")
	n.Key("e")
	n.Key("f").Add("x", ir.FromSlice(nil))
	got, err := Dump(n, EncodeIndent(2))
	if err != nil {
		t.Fatal(err)
	}
	want := `{
  "a": [
    null,
    2
  ],
  "b": "c",
  "e": null,
  "f": {
    "x": []
  }
}`
	if got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestDumpErrors(t *testing.T) {
	for _, f := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		n := ir.FromSlice([]*ir.Node{ir.FromFloat(f)})
		if _, err := Dump(n); !errors.Is(err, ErrEncoding) {
			t.Errorf("%v: got %v want ErrEncoding", f, err)
		}
		if _, err := Dump(n, EncodeFormat(format.YAMLFormat)); !errors.Is(err, ErrEncoding) {
			t.Errorf("yaml %v: got %v want ErrEncoding", f, err)
		}
	}
	if _, err := Dump(ir.Null(), EncodeFormat(format.Format(7))); !errors.Is(err, ErrEncoding) {
		t.Errorf("got %v want ErrEncoding", err)
	}
}

func TestAppendKeepsPrefix(t *testing.T) {
	d, err := Append([]byte("x="), ir.FromInt(3))
	if err != nil {
		t.Fatal(err)
	}
	if string(d) != "x=3" {
		t.Errorf("got %q", d)
	}
	d, err = Append([]byte("x="), ir.FromFloat(math.NaN()))
	if err == nil || string(d) != "x=" {
		t.Errorf("got %q, %v", d, err)
	}
}

func TestMustDump(t *testing.T) {
	if got := MustDump(ir.FromString("x")); got != `"x"` {
		t.Errorf("got %s", got)
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	MustDump(ir.FromFloat(math.Inf(1)))
}

func TestYAML(t *testing.T) {
	n := ir.Null()
	n.Key("z").SetString("last")
	n.Key("a").Append(ir.FromInt(1)).Append(ir.FromBool(true))
	got, err := Dump(n, EncodeFormat(format.YAMLFormat))
	if err != nil {
		t.Fatal(err)
	}
	zi, ai := strings.Index(got, "z:"), strings.Index(got, "a:")
	if zi < 0 || ai < 0 || zi > ai {
		t.Errorf("keys out of order in\n%s", got)
	}
	if !strings.Contains(got, "- 1") || !strings.Contains(got, "- true") {
		t.Errorf("missing list items in\n%s", got)
	}
}

func TestColors(t *testing.T) {
	c := &Colors{
		Default: colorDefault,
		Map: map[Colorable]func(string, ...any) string{
			{Type: ir.ObjectType, Attr: FieldColor}: func(s string, _ ...any) string { return "<" + s + ">" },
			{Type: ir.NumberType, Attr: ValueColor}: func(s string, _ ...any) string { return "#" + s },
		},
	}
	n := ir.Null()
	n.Key("a").SetInt(1)
	got, err := Dump(n, EncodeColors(c))
	if err != nil {
		t.Fatal(err)
	}
	if want := `{<"a">:#1}`; got != want {
		t.Errorf("got %s want %s", got, want)
	}
	if NewColors().Get(ir.ListType, FieldColor) == nil {
		t.Error("expected default color func")
	}
}
