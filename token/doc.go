// Package token provides the lexical layer for JSON text.
//
// [Escape] and [Quote] render raw strings as JSON string literal content.
// [ScanString] and [ScanNumber] measure and validate literals in a buffer
// without allocating, and [Unquote] decodes a string literal.
package token
