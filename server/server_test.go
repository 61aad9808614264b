package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/signadot/rwjson/rvalue"
)

func newTestServer(t *testing.T, cfg *Config) *Server {
	t.Helper()
	return New(&Spec{
		Config: cfg,
		Log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

type step struct {
	method, target, body string
	code                 int
	want                 string
}

func runSteps(t *testing.T, h http.Handler, steps []step) {
	t.Helper()
	for i, s := range steps {
		w := do(t, h, s.method, s.target, s.body)
		if w.Code != s.code {
			t.Fatalf("step %d %s %s: code %d want %d: %s", i, s.method, s.target, w.Code, s.code, w.Body)
		}
		if s.want != "" && w.Body.String() != s.want {
			t.Fatalf("step %d %s %s: got %s want %s", i, s.method, s.target, w.Body, s.want)
		}
	}
}

func TestDocuments(t *testing.T) {
	h := newTestServer(t, nil).Handler()
	runSteps(t, h, []step{
		{"PUT", "/docs/a", `{"x":1,"y":[1,2]}`, 200, `{"name":"a","rev":1,"diff":{"!insert":{"x":1,"y":[1,2]}}}`},
		{"GET", "/docs/a", "", 200, `{"x":1,"y":[1,2]}`},
		{"GET", "/docs/a?path=y[1]", "", 200, `2`},
		{"GET", "/docs/a?path=z", "", 404, ""},
		{"GET", "/docs/a?path=%5B", "", 400, ""},
		{"PUT", "/docs/a", `{"x":2,"y":[1,2]}`, 200, `{"name":"a","rev":2,"diff":{"x":{"!replace":{"from":1,"to":2}}}}`},
		{"PATCH", "/docs/a", `{"x":{"!replace":{"from":2,"to":3}}}`, 200, ""},
		{"GET", "/docs/a?path=x", "", 200, `3`},
		{"PATCH", "/docs/a?reverse=true", `{"x":{"!replace":{"from":2,"to":3}}}`, 200, ""},
		{"GET", "/docs/a?path=x", "", 200, `2`},
		{"PATCH", "/docs/a", `{"!delete":1}`, 400, ""},
		{"PUT", "/docs/b", `{"x":2}`, 200, ""},
		{"GET", "/docs/a/diff/b", "", 200, `{"y":{"!delete":[1,2]}}`},
		{"GET", "/docs/b/diff/b", "", 200, `null`},
		{"GET", "/docs/a/diff/c", "", 404, ""},
		{"GET", "/docs", "", 200, `{"rev":5,"docs":["a","b"]}`},
		{"GET", "/docs?match=%7B%22y%22%3Anull%7D", "", 200, `{"rev":5,"docs":["a"]}`},
		{"GET", "/docs?match=%7B", "", 400, ""},
		{"DELETE", "/docs/b", "", 204, ""},
		{"DELETE", "/docs/b", "", 404, ""},
		{"POST", "/docs/a", `{}`, 405, ""},
	})
}

func TestWideNumbersAndBangKeys(t *testing.T) {
	h := newTestServer(t, nil).Handler()
	d := `{"big":{"!replace":{"from":18446744073709551616,"to":18446744073709551617}},"!!delete":{"!replace":{"from":1,"to":2}}}`
	runSteps(t, h, []step{
		{"PUT", "/docs/n", `{"big":18446744073709551616,"!delete":1}`, 200, `{"name":"n","rev":1,"diff":{"!insert":{"big":18446744073709551616,"!delete":1}}}`},
		{"GET", "/docs/n", "", 200, `{"big":18446744073709551616,"!delete":1}`},
		{"PUT", "/docs/n", `{"big":18446744073709551617,"!delete":2}`, 200, `{"name":"n","rev":2,"diff":` + d + `}`},
		{"GET", "/docs/n?path=big", "", 200, `18446744073709551617`},
		{"PATCH", "/docs/n?reverse=true", d, 200, ""},
		{"GET", "/docs/n", "", 200, `{"big":18446744073709551616,"!delete":1}`},
		{"PATCH", "/docs/n", d, 200, ""},
		{"GET", "/docs/n?path=%22%21delete%22", "", 200, `2`},
	})
}

func TestEval(t *testing.T) {
	h := newTestServer(t, nil).Handler()
	runSteps(t, h, []step{
		{"PUT", "/docs/a", `{"x":2,"items":[{"name":"first"}]}`, 200, ""},
		{"POST", "/docs/a/eval", `{"expr":"doc.x + n","env":{"n":10}}`, 200, `12`},
		{"POST", "/docs/a/eval", `{"expr":"doc.items[0].name"}`, 200, `"first"`},
		{"POST", "/docs/a/eval", `{"expr":"doc.("}`, 422, ""},
		{"POST", "/docs/a/eval", `{"env":{}}`, 400, ""},
		{"POST", "/docs/a/eval", `{"expr":"1","env":[]}`, 400, ""},
		{"POST", "/docs/none/eval", `{"expr":"1"}`, 404, ""},
	})
}

func TestRequestErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxBody = 16
	h := newTestServer(t, cfg).Handler()
	runSteps(t, h, []step{
		{"PUT", "/docs/a", `{"x":"0123456789abcdef"}`, 413, ""},
		{"PUT", "/docs/a", `{"x":`, 400, ""},
		{"PATCH", "/docs/a", `{}`, 404, ""},
		{"GET", "/docs/a", "", 404, `{"error":"document not found: \"a\"","code":404}`},
	})
	req := httptest.NewRequest("PUT", "/docs/a", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != 400 {
		t.Errorf("code %d want 400", w.Code)
	}
}

func TestStrictDocuments(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Strict = true
	s := newTestServer(t, cfg)
	h := s.Handler()
	runSteps(t, h, []step{
		{"PUT", "/docs/a", `{"x":[1]}`, 200, ""},
		{"GET", "/docs/a?path=x[3]", "", 404, ""},
		{"GET", "/docs/a?path=x.y", "", 400, ""},
	})
	err := s.Store().View("a", func(d *Doc) error {
		if d.Value.Mode() != rvalue.Strict {
			t.Errorf("mode %s want strict", d.Value.Mode())
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestFormats(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Indent = 2
	h := newTestServer(t, cfg).Handler()
	do(t, h, "PUT", "/docs/a", `{"x":1}`)
	w := do(t, h, "GET", "/docs/a", "")
	if got, want := w.Body.String(), "{\n  \"x\": 1\n}"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
	if got := w.Header().Get(RevHeader); got != "1" {
		t.Errorf("rev header %q", got)
	}
	w = do(t, h, "GET", "/docs/a?format=yaml", "")
	if got, want := w.Body.String(), "x: 1\n"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
	if got := w.Header().Get("Content-Type"); got != "application/yaml" {
		t.Errorf("content type %q", got)
	}
	if w := do(t, h, "GET", "/docs/a?format=xml", ""); w.Code != 400 {
		t.Errorf("code %d want 400", w.Code)
	}
}

func TestRootAndHealth(t *testing.T) {
	h := newTestServer(t, nil).Handler()
	w := do(t, h, "GET", "/", "")
	if w.Code != http.StatusMovedPermanently || w.Header().Get("Location") != "/docs" {
		t.Errorf("got %d %q", w.Code, w.Header().Get("Location"))
	}
	runSteps(t, h, []step{{"GET", "/healthz", "", 200, "ok\n"}})
}

func TestStartStop(t *testing.T) {
	s := newTestServer(t, nil)
	if err := s.Start("127.0.0.1:0"); err != nil {
		t.Fatal(err)
	}
	if err := s.Start("127.0.0.1:0"); err == nil {
		t.Error("second start succeeded")
	}
	resp, err := http.Get("http://" + s.Addr() + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Errorf("code %d", resp.StatusCode)
	}
	if err := s.Stop(context.Background()); err != nil {
		t.Fatal(err)
	}
	if s.Addr() != "" {
		t.Errorf("addr %q after stop", s.Addr())
	}
}
