// Package eval evaluates expr-lang expressions over JSON values.
//
// [Eval] binds a document to the variable doc and returns the result of an
// expression as a node:
//
//	res, err := eval.Eval(`doc.items | filter(.price > 10) | map(.name)`, v, nil)
//
// [Expand] rewrites the strings of a node: "$[expr]" inside a string is
// interpolated, and a string that is exactly ".[expr]" is replaced by the
// value of expr.
//
// [ToAny] and [FromAny] convert between values and plain Go data.
package eval
