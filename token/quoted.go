package token

import (
	"unicode/utf16"
	"unicode/utf8"
)

// ScanString validates the JSON string literal at the start of d and returns
// its length including both quotes. escaped reports whether the literal
// contains any backslash escape, in which case the content must be decoded
// with [Unquote] rather than used verbatim.
func ScanString(d []byte) (n int, escaped bool, err error) {
	if len(d) == 0 || d[0] != '"' {
		return 0, false, posErr(0, ErrNotString)
	}
	i := 1
	for i < len(d) {
		c := d[i]
		switch {
		case c == '"':
			return i + 1, escaped, nil
		case c == '\\':
			escaped = true
			if i+1 >= len(d) {
				return 0, escaped, posErr(i, ErrUnterminated)
			}
			switch d[i+1] {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				i += 2
			case 'u':
				if i+6 > len(d) {
					return 0, escaped, posErr(i, ErrUnterminated)
				}
				if !allHex(d[i+2 : i+6]) {
					return 0, escaped, posErr(i, ErrBadUnicode)
				}
				i += 6
			default:
				return 0, escaped, posErr(i, ErrBadEscape)
			}
		case c < 0x20:
			return 0, escaped, posErr(i, ErrUnicodeControl)
		case c < utf8.RuneSelf:
			i++
		default:
			r, sz := utf8.DecodeRune(d[i:])
			if r == utf8.RuneError && sz == 1 {
				return 0, escaped, posErr(i, ErrBadUTF8)
			}
			i += sz
		}
	}
	return 0, escaped, posErr(len(d), ErrUnterminated)
}

// Unquote decodes the JSON string literal d, which must be exactly one
// literal including its quotes.
func Unquote(d []byte) (string, error) {
	n, escaped, err := ScanString(d)
	if err != nil {
		return "", err
	}
	if n != len(d) {
		return "", posErr(n, ErrUnterminated)
	}
	body := d[1 : n-1]
	if !escaped {
		return string(body), nil
	}
	return string(AppendUnescaped(make([]byte, 0, len(body)), body)), nil
}

// AppendUnescaped appends the decoded content of body, the bytes between the
// quotes of a literal already validated by [ScanString].
//
// A \u escape naming half of a surrogate pair that is not completed by the
// following escape decodes to U+FFFD.
func AppendUnescaped(dst, body []byte) []byte {
	i := 0
	for i < len(body) {
		c := body[i]
		if c != '\\' {
			j := i + 1
			for j < len(body) && body[j] != '\\' {
				j++
			}
			dst = append(dst, body[i:j]...)
			i = j
			continue
		}
		esc := body[i+1]
		i += 2
		switch esc {
		case 'b':
			dst = append(dst, '\b')
		case 'f':
			dst = append(dst, '\f')
		case 'n':
			dst = append(dst, '\n')
		case 'r':
			dst = append(dst, '\r')
		case 't':
			dst = append(dst, '\t')
		case 'u':
			r := hex4(body[i : i+4])
			i += 4
			if utf16.IsSurrogate(r) {
				r2 := utf8.RuneError
				if i+6 <= len(body) && body[i] == '\\' && body[i+1] == 'u' {
					r2 = utf16.DecodeRune(r, hex4(body[i+2:i+6]))
				}
				if r2 != utf8.RuneError {
					i += 6
				}
				r = r2
			}
			dst = utf8.AppendRune(dst, r)
		default:
			// '"', '\\' and '/' stand for themselves
			dst = append(dst, esc)
		}
	}
	return dst
}

func allHex(d []byte) bool {
	for _, c := range d {
		if c >= '0' && c <= '9' {
			continue
		}
		if c >= 'a' && c <= 'f' {
			continue
		}
		if c >= 'A' && c <= 'F' {
			continue
		}
		return false
	}
	return true
}

func hex4(d []byte) rune {
	var r rune
	for _, c := range d[:4] {
		r <<= 4
		switch {
		case c >= '0' && c <= '9':
			r |= rune(c - '0')
		case c >= 'a' && c <= 'f':
			r |= rune(c - 'a' + 10)
		default:
			r |= rune(c - 'A' + 10)
		}
	}
	return r
}
