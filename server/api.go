package server

import (
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/signadot/rwjson/eval"
	"github.com/signadot/rwjson/response"
	"github.com/signadot/rwjson/rvalue"
)

// readJSON reads and parses the JSON body of req.
func (s *Server) readJSON(req *http.Request) (rvalue.Owned, error) {
	if ct := req.Header.Get(response.ContentType); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil || mt != response.JSONType {
			return rvalue.Owned{}, fmt.Errorf("%w: Content-Type must be %s, got %q", ErrBadRequest, response.JSONType, ct)
		}
	}
	limit := s.Spec.Config.MaxBody
	body, err := io.ReadAll(io.LimitReader(req.Body, limit+1))
	if err != nil {
		return rvalue.Owned{}, fmt.Errorf("%w: failed to read body: %w", ErrBadRequest, err)
	}
	if int64(len(body)) > limit {
		return rvalue.Owned{}, fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, limit)
	}
	v, err := rvalue.Parse(body, s.Spec.Config.loadOpts()...)
	if err != nil {
		return rvalue.Owned{}, err
	}
	return v.Own(), nil
}

// EvalRequest is the body of an eval request:
//
//	{"expr": "doc.items[0].name", "env": {"x": 1}}
type EvalRequest struct {
	Expr string
	Env  eval.Env
}

func parseEvalRequest(v rvalue.Value) (*EvalRequest, error) {
	v = v.Tolerant()
	x, err := v.Lookup("expr")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	res := &EvalRequest{}
	res.Expr, err = x.Str()
	if err != nil {
		return nil, fmt.Errorf("%w: expr: %w", ErrBadRequest, err)
	}
	e, err := v.Lookup("env")
	if err != nil {
		return res, nil
	}
	env, err := eval.ToAny(e)
	if err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrBadRequest, err)
	}
	m, ok := env.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: env must be an object", ErrBadRequest)
	}
	res.Env = eval.Env(m)
	return res, nil
}
