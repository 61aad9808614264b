package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/scott-cotton/cli"

	"github.com/signadot/rwjson/format"
	"github.com/signadot/rwjson/rvalue"
)

func TestEnvFunc(t *testing.T) {
	env := map[string]any{}
	for _, a := range []string{"a=one", "b.c=hello", "b.d=[x, y]", "e={x: true}"} {
		if err := envFunc(env, a); err != nil {
			t.Fatalf("%s: %v", a, err)
		}
	}
	want := map[string]any{
		"a": "one",
		"b": map[string]any{
			"c": "hello",
			"d": []any{"x", "y"},
		},
		"e": map[string]any{"x": true},
	}
	if diff := cmp.Diff(want, env); diff != "" {
		t.Errorf("env mismatch (-want +got):\n%s", diff)
	}
	if err := envFunc(env, "novalue"); !errors.Is(err, cli.ErrUsage) {
		t.Errorf("got %v want ErrUsage", err)
	}
	if err := envFunc(env, "a.b=1"); err == nil {
		t.Error("expected error descending into a scalar")
	}
}

func TestDocWriter(t *testing.T) {
	doc := rvalue.LoadString(`{"a":[1,2]}`)
	tests := []struct {
		name string
		cfg  *MainConfig
		want string
	}{
		{"json", &MainConfig{}, "{\"a\":[1,2]}\n{\"a\":[1,2]}\n"},
		{"indent", &MainConfig{Indent: 1}, "{\n \"a\": [\n  1,\n  2\n ]\n}\n{\n \"a\": [\n  1,\n  2\n ]\n}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			dw := tt.cfg.docWriter(buf)
			for range 2 {
				if err := dw.write(doc); err != nil {
					t.Fatal(err)
				}
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("got %q want %q", got, tt.want)
			}
		})
	}
}

func TestDocWriterYAML(t *testing.T) {
	buf := &bytes.Buffer{}
	dw := (&MainConfig{Y: true}).docWriter(buf)
	for _, s := range []string{`{"a":1}`, `{"b":2}`} {
		if err := dw.write(rvalue.LoadString(s)); err != nil {
			t.Fatal(err)
		}
	}
	first, second, ok := strings.Cut(buf.String(), "---\n")
	if !ok || !strings.Contains(first, "a: 1") || !strings.Contains(second, "b: 2") {
		t.Errorf("unexpected yaml stream %q", buf.String())
	}
}

func TestOutFormat(t *testing.T) {
	y := format.YAMLFormat
	cfg := &MainConfig{J: true}
	if got := cfg.outFormat(); got != format.JSONFormat {
		t.Errorf("got %s", got)
	}
	cfg.OutFormat = &y
	if got := cfg.outFormat(); got != format.YAMLFormat {
		t.Errorf("got %s", got)
	}
	if _, err := cfg.fmtFunc(&cfg.OutFormat)(nil, "xml"); !errors.Is(err, cli.ErrUsage) {
		t.Errorf("got %v want ErrUsage", err)
	}
}

func TestGetLookup(t *testing.T) {
	doc := rvalue.LoadString(`{"a":{"k":1,"k":2},"l":[true]}`)
	tests := []struct {
		path string
		all  bool
		want []string
	}{
		{"a.k", false, []string{"1"}},
		{"a.k", true, []string{"1", "2"}},
		{"l[0]", true, []string{"true"}},
		{"", false, []string{`{"a":{"k":1,"k":2},"l":[true]}`}},
	}
	for _, tt := range tests {
		segs, err := rvalue.ParsePath(tt.path)
		if err != nil {
			t.Fatal(err)
		}
		cfg := &GetConfig{MainConfig: &MainConfig{}, All: tt.all}
		var got []string
		for _, v := range cfg.lookup(doc.Value, segs) {
			got = append(got, v.String())
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("%s all=%v (-want +got):\n%s", tt.path, tt.all, diff)
		}
	}
	segs, _ := rvalue.ParsePath("a.missing")
	cfg := &GetConfig{MainConfig: &MainConfig{}, All: true}
	res := cfg.lookup(doc.Value, segs)
	if len(res) != 1 || !rvalue.IsNotFound(res[0].Err()) {
		t.Errorf("got %v want one not found value", res)
	}
}
