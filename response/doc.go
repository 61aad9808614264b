// Package response builds HTTP responses, in particular from JSON values.
//
//	res := ir.Null()
//	res.Key("status").SetString("ok")
//	r, err := response.FromNode(res) // res is now null
//	...
//	err = r.Send(w)
//
// A response built from a value is dumped once, when it is built, and
// carries the header Content-Type: application/json. Headers are held in an
// http.Header, so lookups ignore case.
package response
