package format

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		err  bool
	}{
		{"json", JSONFormat, false},
		{"j", JSONFormat, false},
		{"yaml", YAMLFormat, false},
		{"yml", YAMLFormat, false},
		{"toml", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.err {
			if !errors.Is(err, ErrBadFormat) {
				t.Errorf("ParseFormat(%q): got err %v, want ErrBadFormat", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFormat(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestTextRoundTrip(t *testing.T) {
	for _, f := range AllFormats() {
		d, err := f.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var g Format
		if err := g.UnmarshalText(d); err != nil {
			t.Fatal(err)
		}
		if g != f {
			t.Errorf("got %s want %s", g, f)
		}
		h, err := FromSuffix(f.Suffix())
		if err != nil || h != f {
			t.Errorf("FromSuffix(%q) = %s, %v", f.Suffix(), h, err)
		}
	}
	if _, err := Format(9).MarshalText(); err == nil {
		t.Error("expected error for unknown format")
	}
}
