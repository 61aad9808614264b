package response

import (
	"net/http"

	"github.com/signadot/rwjson/encode"
	"github.com/signadot/rwjson/ir"
)

const (
	ContentType = "Content-Type"
	JSONType    = "application/json"
)

// Response is an HTTP response under construction. A Response built from
// a JSON value carries its dumped text as Body and the content type
// application/json.
type Response struct {
	Code   int
	Body   []byte
	Header http.Header

	node       *ir.Node
	completed  bool
	onComplete func()
}

func New(code int) *Response {
	return &Response{Code: code, Header: http.Header{}}
}

func FromString(body string) *Response {
	r := New(http.StatusOK)
	r.Body = []byte(body)
	return r
}

// FromJSON returns a response with the given code whose body is the JSON
// text of v.
func FromJSON(code int, v ir.Source) (*Response, error) {
	body, err := encode.Append(nil, v)
	if err != nil {
		return nil, err
	}
	r := New(code)
	r.Body = body
	r.jsonMode()
	return r, nil
}

// FromNode moves n into a new 200 response: on success n is left null and
// the response holds its contents, available from JSON. On failure n is
// unchanged.
func FromNode(n *ir.Node) (*Response, error) {
	r, err := FromJSON(http.StatusOK, n)
	if err != nil {
		return nil, err
	}
	r.node = n.Take()
	return r, nil
}

func (r *Response) jsonMode() {
	r.SetHeader(ContentType, JSONType)
}

// JSON returns the node moved in by FromNode, or nil.
func (r *Response) JSON() *ir.Node {
	return r.node
}

// SetHeader replaces any values of the header key.
func (r *Response) SetHeader(key, value string) {
	r.header().Set(key, value)
}

// AddHeader adds a value to the header key, keeping existing ones.
func (r *Response) AddHeader(key, value string) {
	r.header().Add(key, value)
}

// GetHeader returns the first value of the header key, matched without
// regard to case, or "".
func (r *Response) GetHeader(key string) string {
	return r.header().Get(key)
}

func (r *Response) header() http.Header {
	if r.Header == nil {
		r.Header = http.Header{}
	}
	return r.Header
}

// Redirect makes r a permanent redirect to location.
func (r *Response) Redirect(location string) {
	r.Code = http.StatusMovedPermanently
	r.SetHeader("Location", location)
}

// Write appends p to the body.
func (r *Response) Write(p []byte) (int, error) {
	r.Body = append(r.Body, p...)
	return len(p), nil
}

func (r *Response) WriteString(s string) (int, error) {
	r.Body = append(r.Body, s...)
	return len(s), nil
}

// OnComplete registers f to be called once, by the first call to End.
func (r *Response) OnComplete(f func()) {
	r.onComplete = f
}

// End appends parts to the body and marks r complete. Only the first call
// has any effect on completion.
func (r *Response) End(parts ...string) {
	for _, p := range parts {
		r.WriteString(p)
	}
	if r.completed {
		return
	}
	r.completed = true
	if r.onComplete != nil {
		r.onComplete()
	}
}

func (r *Response) IsCompleted() bool {
	return r.completed
}

// Clear resets r to an empty incomplete 200 response.
func (r *Response) Clear() {
	r.Code = http.StatusOK
	r.Body = nil
	r.Header = http.Header{}
	r.node = nil
	r.completed = false
}

// Send writes r to w.
func (r *Response) Send(w http.ResponseWriter) error {
	h := w.Header()
	for k, vs := range r.Header {
		h[k] = append(h[k][:0:0], vs...)
	}
	code := r.Code
	if code == 0 {
		code = http.StatusOK
	}
	w.WriteHeader(code)
	_, err := w.Write(r.Body)
	return err
}
