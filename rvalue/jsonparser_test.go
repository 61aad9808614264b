package rvalue

import (
	"testing"

	"github.com/buger/jsonparser"
	"github.com/google/go-cmp/cmp"

	"github.com/signadot/rwjson/ir"
)

const crossDoc = `{
  "name": "edén \"q\"",
  "tags": ["a", "b\tc", ""],
  "size": {"w": 1280, "h": -720, "ratio": 1.7777},
  "on": true,
  "off": null,
  "deep": [[1, [2, {"k": [3]}]]]
}`

// Lookups agree with jsonparser on the bytes and the decoded strings.
func TestAgreesWithJSONParser(t *testing.T) {
	data := []byte(crossDoc)
	v := load(t, crossDoc)
	tests := []struct {
		path string
		keys []string
		typ  jsonparser.ValueType
	}{
		{"name", []string{"name"}, jsonparser.String},
		{"tags", []string{"tags"}, jsonparser.Array},
		{"tags[1]", []string{"tags", "[1]"}, jsonparser.String},
		{"tags[2]", []string{"tags", "[2]"}, jsonparser.String},
		{"size", []string{"size"}, jsonparser.Object},
		{"size.h", []string{"size", "h"}, jsonparser.Number},
		{"size.ratio", []string{"size", "ratio"}, jsonparser.Number},
		{"on", []string{"on"}, jsonparser.Boolean},
		{"off", []string{"off"}, jsonparser.Null},
		{"deep[0][1][1].k[0]", []string{"deep", "[0]", "[1]", "[1]", "k", "[0]"}, jsonparser.Number},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			want, typ, _, err := jsonparser.Get(data, tt.keys...)
			if err != nil {
				t.Fatal(err)
			}
			if typ != tt.typ {
				t.Fatalf("jsonparser type %s want %s", typ, tt.typ)
			}
			got := v.GetPath(tt.path)
			if err := got.Err(); err != nil {
				t.Fatal(err)
			}
			if typ != jsonparser.String {
				if string(got.Raw()) != string(want) {
					t.Errorf("raw %s want %s", got.Raw(), want)
				}
				return
			}
			ws, err := jsonparser.GetString(data, tt.keys...)
			if err != nil {
				t.Fatal(err)
			}
			gs, err := got.Str()
			if err != nil {
				t.Fatal(err)
			}
			if gs != ws {
				t.Errorf("str %q want %q", gs, ws)
			}
		})
	}
}

func TestEntriesAgreeWithJSONParser(t *testing.T) {
	data := []byte(crossDoc)
	var want []string
	err := jsonparser.ObjectEach(data, func(key, _ []byte, _ jsonparser.ValueType, _ int) error {
		want = append(want, string(key))
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for k := range load(t, crossDoc).Entries() {
		got = append(got, k)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	var wantTypes []ir.Type
	_, err = jsonparser.ArrayEach(data, func(_ []byte, typ jsonparser.ValueType, _ int, _ error) {
		switch typ {
		case jsonparser.Number:
			wantTypes = append(wantTypes, ir.NumberType)
		case jsonparser.Array:
			wantTypes = append(wantTypes, ir.ListType)
		}
	}, "deep", "[0]")
	if err != nil {
		t.Fatal(err)
	}
	var gotTypes []ir.Type
	for e := range load(t, crossDoc).GetPath("deep[0]").Values() {
		gotTypes = append(gotTypes, e.Type())
	}
	if diff := cmp.Diff(wantTypes, gotTypes); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
