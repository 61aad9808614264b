package rvalue

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		in   string
		want []Segment
		out  string
	}{
		{"", nil, ""},
		{"a", []Segment{{Key: "a"}}, "a"},
		{"a.b", []Segment{{Key: "a"}, {Key: "b"}}, "a.b"},
		{"[0]", []Segment{{Index: 0, IsIndex: true}}, "[0]"},
		{"a[2][3]", []Segment{{Key: "a"}, {Index: 2, IsIndex: true}, {Index: 3, IsIndex: true}}, "a[2][3]"},
		{`a."b c"[1]`, []Segment{{Key: "a"}, {Key: "b c"}, {Index: 1, IsIndex: true}}, `a."b c"[1]`},
		{`"a.b"`, []Segment{{Key: "a.b"}}, `"a.b"`},
		{`[0].x`, []Segment{{Index: 0, IsIndex: true}, {Key: "x"}}, `[0].x`},
	}
	for _, tt := range tests {
		got, err := ParsePath(tt.in)
		if err != nil {
			t.Errorf("%q: %v", tt.in, err)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("%q (-want +got):\n%s", tt.in, diff)
		}
		if out := FormatPath(got); out != tt.out {
			t.Errorf("%q: formatted %q want %q", tt.in, out, tt.out)
		}
	}
}

func TestParsePathErrors(t *testing.T) {
	for _, in := range []string{".a", "a..b", "a.", "a[", "a[x]", "a[-1]", "a[0]b", `a."b`, `a"b"`} {
		if _, err := ParsePath(in); !errors.Is(err, ErrBadPath) {
			t.Errorf("%q: got %v", in, err)
		}
	}
}

func TestGetPath(t *testing.T) {
	v := load(t, `{"a": {"b": [10, {"c d": true}]}}`)
	if b, err := v.GetPath(`a.b[1]."c d"`).Bool(); err != nil || !b {
		t.Errorf("got %v, %v", b, err)
	}
	if i, _ := v.GetPath("a.b[0]").Int(); i != 10 {
		t.Errorf("got %d", i)
	}
	if got := v.GetPath(""); got.idx != v.idx {
		t.Error("empty path")
	}
	if err := v.GetPath("a.b[5]").Err(); !errors.Is(err, ErrIndexRange) {
		t.Errorf("got %v", err)
	}
	if err := v.GetPath("a.x.y").Err(); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("got %v", err)
	}
	err := v.GetPath("a..b").Err()
	if !errors.Is(err, ErrBadPath) {
		t.Errorf("got %v", err)
	}
	var e *Error
	if !errors.As(err, &e) || e.Op != "path" || e.Key != "a..b" {
		t.Errorf("got %#v", e)
	}
}
