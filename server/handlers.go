package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/signadot/rwjson/encode"
	"github.com/signadot/rwjson/eval"
	"github.com/signadot/rwjson/format"
	"github.com/signadot/rwjson/ir"
	"github.com/signadot/rwjson/libdiff"
	"github.com/signadot/rwjson/match"
	"github.com/signadot/rwjson/response"
	"github.com/signadot/rwjson/rvalue"
)

// RevHeader carries the revision of a returned document.
const RevHeader = "X-Doc-Rev"

type handlerFunc func(*http.Request) (*response.Response, error)

func (s *Server) route(f handlerFunc) http.Handler {
	return &response.Handler{
		Log: s.Spec.Log,
		Serve: func(req *http.Request) *response.Response {
			r, err := call(f, req)
			if err != nil {
				r = s.errorResponse(req, err)
			}
			if r != nil {
				r.OnComplete(func() {
					s.Spec.Log.Debug("request", "method", req.Method, "path", req.URL.Path, "code", r.Code)
				})
			}
			return r
		},
	}
}

// call runs f, recovering failures raised by strict mode documents.
func call(f handlerFunc, req *http.Request) (r *response.Response, err error) {
	defer rvalue.Catch(&err)
	return f(req)
}

func (s *Server) errorResponse(req *http.Request, err error) *response.Response {
	code := statusOf(err)
	if code >= http.StatusInternalServerError {
		s.Spec.Log.Error("request failed", "method", req.Method, "path", req.URL.Path, "error", err)
	}
	n := ir.FromKeyVals([]ir.KeyVal{
		{Key: "error", Val: ir.FromString(err.Error())},
		{Key: "code", Val: ir.FromInt(int64(code))},
	})
	r, derr := response.FromNode(n)
	if derr != nil {
		r = response.FromString(err.Error())
	}
	r.Code = code
	return r
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrEval):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound),
		errors.Is(err, rvalue.ErrKeyNotFound),
		errors.Is(err, rvalue.ErrIndexRange):
		return http.StatusNotFound
	case errors.Is(err, rvalue.ErrParse),
		errors.Is(err, rvalue.ErrMaxDepth),
		errors.Is(err, rvalue.ErrBadPath),
		errors.Is(err, rvalue.ErrTypeMismatch),
		errors.Is(err, rvalue.ErrNotContainer),
		errors.Is(err, libdiff.ErrBadDiff):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func contentType(f format.Format) string {
	if f == format.YAMLFormat {
		return "application/yaml"
	}
	return response.JSONType
}

// replyFormat returns the format asked for by the format query parameter.
func replyFormat(req *http.Request) (format.Format, error) {
	q := req.URL.Query().Get("format")
	if q == "" {
		return format.JSONFormat, nil
	}
	f, err := format.ParseFormat(q)
	if err != nil {
		return f, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return f, nil
}

func (s *Server) reply(code int, v ir.Source, f format.Format) (*response.Response, error) {
	indent := s.Spec.Config.Indent
	if f == format.JSONFormat && indent == 0 {
		return response.FromJSON(code, v)
	}
	body, err := encode.Append(nil, v, encode.EncodeFormat(f), encode.EncodeIndent(indent))
	if err != nil {
		return nil, err
	}
	r := response.New(code)
	r.Body = body
	r.SetHeader(response.ContentType, contentType(f))
	return r, nil
}

// replyNode moves n into a JSON response.
func (s *Server) replyNode(n *ir.Node) (*response.Response, error) {
	if s.Spec.Config.Indent == 0 {
		return response.FromNode(n)
	}
	return s.reply(http.StatusOK, n, format.JSONFormat)
}

func (s *Server) changeReply(d *Doc, change *ir.Node) (*response.Response, error) {
	r, err := s.replyNode(ir.FromKeyVals([]ir.KeyVal{
		{Key: "name", Val: ir.FromString(d.Name)},
		{Key: "rev", Val: ir.FromInt(d.Rev)},
		{Key: "diff", Val: change},
	}))
	if err != nil {
		return nil, err
	}
	r.SetHeader(RevHeader, strconv.FormatInt(d.Rev, 10))
	return r, nil
}

func (s *Server) root(*http.Request) (*response.Response, error) {
	r := response.New(http.StatusOK)
	r.Redirect("/docs")
	return r, nil
}

func (s *Server) health(*http.Request) (*response.Response, error) {
	return response.FromString("ok\n"), nil
}

// listDocs lists the stored documents, restricted by the match query
// parameter to those matching a pattern.
func (s *Server) listDocs(req *http.Request) (*response.Response, error) {
	var pattern ir.Source = ir.Null()
	if q := req.URL.Query().Get("match"); q != "" {
		p, err := rvalue.Parse([]byte(q), rvalue.LoadTolerant())
		if err != nil {
			return nil, fmt.Errorf("%w: match: %w", ErrBadRequest, err)
		}
		pattern = p
	}
	list := []*ir.Node{}
	rev := s.store.Rev()
	err := s.store.Each(func(d *Doc) error {
		ok, err := match.Match(d.Value, pattern)
		if ok {
			list = append(list, ir.FromString(d.Name))
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.replyNode(ir.FromKeyVals([]ir.KeyVal{
		{Key: "rev", Val: ir.FromInt(rev)},
		{Key: "docs", Val: ir.FromSlice(list)},
	}))
}

// getDoc returns a document, or the part of it at the kinded path given by
// the path query parameter.
func (s *Server) getDoc(req *http.Request) (*response.Response, error) {
	name := mux.Vars(req)["name"]
	f, err := replyFormat(req)
	if err != nil {
		return nil, err
	}
	path := req.URL.Query().Get("path")
	var r *response.Response
	err = s.store.View(name, func(d *Doc) error {
		v := d.Value.GetPath(path)
		if err := v.Err(); err != nil {
			return fmt.Errorf("%s at %q: %w", name, path, err)
		}
		var err error
		r, err = s.reply(http.StatusOK, v, f)
		if err != nil {
			return err
		}
		r.SetHeader(RevHeader, strconv.FormatInt(d.Rev, 10))
		return nil
	})
	return r, err
}

func (s *Server) putDoc(req *http.Request) (*response.Response, error) {
	name := mux.Vars(req)["name"]
	v, err := s.readJSON(req)
	if err != nil {
		return nil, err
	}
	d, change, err := s.store.Put(name, v)
	if err != nil {
		return nil, err
	}
	return s.changeReply(d, change)
}

// patchDoc applies the diff in the request body to a document. With
// reverse=true the diff is reversed first.
func (s *Server) patchDoc(req *http.Request) (*response.Response, error) {
	name := mux.Vars(req)["name"]
	in, err := s.readJSON(req)
	if err != nil {
		return nil, err
	}
	patch, err := ir.FromSource(in)
	if err != nil {
		return nil, err
	}
	if q := req.URL.Query().Get("reverse"); q != "" {
		rev, err := strconv.ParseBool(q)
		if err != nil {
			return nil, fmt.Errorf("%w: reverse: %w", ErrBadRequest, err)
		}
		if rev {
			patch, err = libdiff.Reverse(patch)
			if err != nil {
				return nil, err
			}
		}
	}
	d, change, err := s.store.Update(name, func(cur *Doc) (rvalue.Owned, error) {
		n, err := libdiff.Apply(cur.Value, patch)
		if err != nil {
			return rvalue.Owned{}, err
		}
		return rvalue.FromSource(n, s.Spec.Config.loadOpts()...)
	})
	if err != nil {
		return nil, err
	}
	return s.changeReply(d, change)
}

func (s *Server) deleteDoc(req *http.Request) (*response.Response, error) {
	name := mux.Vars(req)["name"]
	if !s.store.Delete(name) {
		return nil, notFound(name)
	}
	return response.New(http.StatusNoContent), nil
}

// diffDocs returns the diff taking one document to another.
func (s *Server) diffDocs(req *http.Request) (*response.Response, error) {
	vars := mux.Vars(req)
	var d *ir.Node
	err := s.store.View2(vars["name"], vars["other"], func(from, to *Doc) error {
		var err error
		d, err = libdiff.Diff(from.Value, to.Value)
		return err
	})
	if err != nil {
		return nil, err
	}
	if d == nil {
		d = ir.Null()
	}
	return s.replyNode(d)
}

func (s *Server) evalDoc(req *http.Request) (*response.Response, error) {
	name := mux.Vars(req)["name"]
	in, err := s.readJSON(req)
	if err != nil {
		return nil, err
	}
	er, err := parseEvalRequest(in.Value)
	if err != nil {
		return nil, err
	}
	var res *ir.Node
	err = s.store.View(name, func(d *Doc) error {
		var err error
		res, err = eval.Eval(er.Expr, d.Value, er.Env)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrEval, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.replyNode(res)
}
