package server

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/rwjson/encode"
	"github.com/signadot/rwjson/rvalue"
)

func TestStore(t *testing.T) {
	s := NewStore()
	d, change, err := s.Put("a", rvalue.LoadString(`{"x":1}`))
	if err != nil {
		t.Fatal(err)
	}
	if d.Rev != 1 {
		t.Errorf("rev %d want 1", d.Rev)
	}
	if got, want := encode.MustDump(change), `{"!insert":{"x":1}}`; got != want {
		t.Errorf("got %s want %s", got, want)
	}
	_, change, err = s.Put("a", rvalue.LoadString(`{"x":1}`))
	if err != nil {
		t.Fatal(err)
	}
	if change != nil {
		t.Errorf("unchanged put gave diff %s", encode.MustDump(change))
	}
	d, change, err = s.Update("a", func(cur *Doc) (rvalue.Owned, error) {
		x, err := cur.Value.Get("x").Int()
		if err != nil {
			return rvalue.Owned{}, err
		}
		if x != 1 {
			t.Errorf("x = %d", x)
		}
		return rvalue.LoadString(`{"x":2}`), nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if d.Rev != 3 {
		t.Errorf("rev %d want 3", d.Rev)
	}
	if got, want := encode.MustDump(change), `{"x":{"!replace":{"from":1,"to":2}}}`; got != want {
		t.Errorf("got %s want %s", got, want)
	}
	if _, _, err := s.Put("b", rvalue.LoadString(`[]`)); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, s.Names()); diff != "" {
		t.Errorf("names (-want +got):\n%s", diff)
	}
	err = s.View2("a", "b", func(da, db *Doc) error {
		if da.Name != "a" || db.Name != "b" {
			t.Errorf("got %s %s", da.Name, db.Name)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if !s.Delete("a") || s.Delete("a") {
		t.Error("delete")
	}
	if err := s.View("a", func(*Doc) error { return nil }); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v want ErrNotFound", err)
	}
	if _, _, err := s.Update("a", nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v want ErrNotFound", err)
	}
	if s.Rev() != 5 {
		t.Errorf("rev %d want 5", s.Rev())
	}
}
