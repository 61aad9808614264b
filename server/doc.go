// Package server serves a store of named JSON documents over HTTP.
//
// Routes:
//
//	GET    /docs?match=                names of the stored documents
//	GET    /docs/{name}?path=&format=  a document or the part at a kinded path
//	PUT    /docs/{name}                store a document
//	PATCH  /docs/{name}?reverse=       apply a diff to a document
//	DELETE /docs/{name}                remove a document
//	GET    /docs/{name}/diff/{other}   the diff from one document to another
//	POST   /docs/{name}/eval           evaluate an expression against a document
//
// Changes reply with the new revision and the diff from the previous
// version, in the format of package libdiff. Failures reply with a JSON
// object holding the error text and status code.
package server
