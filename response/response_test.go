package response

import (
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/rwjson/encode"
	"github.com/signadot/rwjson/ir"
	"github.com/signadot/rwjson/rvalue"
)

func TestFromNode(t *testing.T) {
	n := ir.Null()
	n.Key("a").SetInt(1)
	n.Key("b").Append(ir.FromString("x"))
	r, err := FromNode(n)
	if err != nil {
		t.Fatal(err)
	}
	if n.Type() != ir.NullType {
		t.Errorf("source not cleared: %s", n.Type())
	}
	if got, want := string(r.Body), `{"a":1,"b":["x"]}`; got != want {
		t.Errorf("body %s want %s", got, want)
	}
	if r.Code != http.StatusOK {
		t.Errorf("code %d", r.Code)
	}
	if got := r.GetHeader("content-type"); got != JSONType {
		t.Errorf("content type %q", got)
	}
	if r.JSON() == nil || encode.MustDump(r.JSON()) != string(r.Body) {
		t.Errorf("JSON() = %v", r.JSON())
	}
}

func TestFromNodeFailure(t *testing.T) {
	n := ir.FromSlice([]*ir.Node{ir.FromFloat(math.NaN())})
	if _, err := FromNode(n); !errors.Is(err, encode.ErrEncoding) {
		t.Errorf("got %v", err)
	}
	if n.Type() != ir.ListType {
		t.Errorf("source changed to %s", n.Type())
	}
}

func TestFromJSON(t *testing.T) {
	v := rvalue.Load([]byte(`{ "ok" : true }`), rvalue.LoadTolerant())
	r, err := FromJSON(http.StatusCreated, v)
	if err != nil {
		t.Fatal(err)
	}
	if r.Code != http.StatusCreated || string(r.Body) != `{"ok":true}` {
		t.Errorf("got %d %s", r.Code, r.Body)
	}
	if r.JSON() != nil {
		t.Error("JSON() set without a node")
	}
	if _, err := FromJSON(200, v.Get("missing")); !errors.Is(err, rvalue.ErrKeyNotFound) {
		t.Errorf("got %v", err)
	}
}

func TestHeaders(t *testing.T) {
	r := New(http.StatusOK)
	r.SetHeader("X-A", "1")
	r.AddHeader("x-a", "2")
	if diff := cmp.Diff([]string{"1", "2"}, r.Header.Values("X-A")); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	r.SetHeader("x-A", "3")
	if got := r.GetHeader("X-a"); got != "3" || len(r.Header.Values("X-A")) != 1 {
		t.Errorf("got %q", got)
	}
	var zero Response
	zero.SetHeader("k", "v")
	if zero.GetHeader("K") != "v" {
		t.Error("zero response header")
	}
	if FromString("x").GetHeader(ContentType) != "" {
		t.Error("string response has content type")
	}
}

func TestWriteEndClear(t *testing.T) {
	r := FromString("a")
	r.Write([]byte("b"))
	r.WriteString("c")
	calls := 0
	r.OnComplete(func() { calls++ })
	if r.IsCompleted() {
		t.Error("completed early")
	}
	r.End("d")
	r.End()
	if !r.IsCompleted() || calls != 1 {
		t.Errorf("completed %v calls %d", r.IsCompleted(), calls)
	}
	if string(r.Body) != "abcd" {
		t.Errorf("body %q", r.Body)
	}
	r.Redirect("/x")
	if r.Code != http.StatusMovedPermanently || r.GetHeader("location") != "/x" {
		t.Errorf("redirect: %d %q", r.Code, r.GetHeader("Location"))
	}
	r.Clear()
	if r.Code != http.StatusOK || len(r.Body) != 0 || len(r.Header) != 0 || r.IsCompleted() {
		t.Errorf("not cleared: %+v", r)
	}
}

func TestSend(t *testing.T) {
	r, err := FromJSON(http.StatusAccepted, ir.FromString("x"))
	if err != nil {
		t.Fatal(err)
	}
	r.AddHeader("X-B", "1")
	rec := httptest.NewRecorder()
	if err := r.Send(rec); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusAccepted || rec.Body.String() != `"x"` {
		t.Errorf("got %d %s", rec.Code, rec.Body)
	}
	if rec.Header().Get("Content-Type") != JSONType || rec.Header().Get("X-B") != "1" {
		t.Errorf("headers %v", rec.Header())
	}
}

func TestHandler(t *testing.T) {
	var done bool
	h := &Handler{Serve: func(req *http.Request) *Response {
		if req.URL.Path == "/empty" {
			return nil
		}
		r := FromString(req.URL.Path)
		r.OnComplete(func() { done = true })
		return r
	}}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/p", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "/p" || !done {
		t.Errorf("got %d %s %v", rec.Code, rec.Body, done)
	}
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/empty", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("got %d", rec.Code)
	}
}
