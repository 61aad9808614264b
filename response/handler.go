package response

import (
	"log/slog"
	"net/http"
)

// Handler adapts a function building responses to an http.Handler.
type Handler struct {
	Log   *slog.Logger
	Serve func(*http.Request) *Response
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r := h.Serve(req)
	if r == nil {
		r = New(http.StatusNoContent)
	}
	r.End()
	if err := r.Send(w); err != nil && h.Log != nil {
		h.Log.Error("error sending response", "method", req.Method, "path", req.URL.Path, "error", err)
	}
}
