package token

const hexDigits = "0123456789abcdef"

// Escape returns s with the characters that may not appear verbatim inside a
// JSON string literal escaped. Bytes below 0x20 without a short escape are
// written as \u00xx; every other byte is copied unchanged.
//
// Escape is not idempotent: escaping its result escapes the backslashes again.
func Escape(s string) string {
	if !needsEscape(s) {
		return s
	}
	return string(AppendEscape(make([]byte, 0, len(s)+8), s))
}

// Quote returns the JSON string literal for s.
func Quote(s string) string {
	d := make([]byte, 1, len(s)+2)
	d[0] = '"'
	d = AppendEscape(d, s)
	return string(append(d, '"'))
}

// AppendEscape appends the escaped form of s to dst.
func AppendEscape(dst []byte, s string) []byte {
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		dst = append(dst, s[start:i]...)
		start = i + 1
		switch c {
		case '"':
			dst = append(dst, '\\', '"')
		case '\\':
			dst = append(dst, '\\', '\\')
		case '\n':
			dst = append(dst, '\\', 'n')
		case '\b':
			dst = append(dst, '\\', 'b')
		case '\f':
			dst = append(dst, '\\', 'f')
		case '\r':
			dst = append(dst, '\\', 'r')
		case '\t':
			dst = append(dst, '\\', 't')
		default:
			dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf])
		}
	}
	return append(dst, s[start:]...)
}

func needsEscape(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 0x20 || c == '"' || c == '\\' {
			return true
		}
	}
	return false
}
