package token

import "testing"

func TestEscape(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"plain", "plain"},
		{"\"", "\\\""},
		{"\\", "\\\\"},
		{"\n", "\\n"},
		{"\b", "\\b"},
		{"\f", "\\f"},
		{"\r", "\\r"},
		{"\t", "\\t"},
		{"\x07", "\\u0007"},
		{"\x19", "\\u0019"},
		{"\x00", "\\u0000"},
		{"\x1f", "\\u001f"},
		{"\"test\ting\"\n", "\\\"test\\ting\\\"\\n"},
		{"héllo/\x7f", "héllo/\x7f"},
	}
	for _, tt := range tests {
		if got := Escape(tt.in); got != tt.want {
			t.Errorf("Escape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEscapeNotIdempotent(t *testing.T) {
	once := Escape("\\")
	if twice := Escape(once); twice == once {
		t.Errorf("escaping %q again should double the backslashes", once)
	}
}

func TestQuote(t *testing.T) {
	if got, want := Quote("a\"b"), `"a\"b"`; got != want {
		t.Errorf("got %s want %s", got, want)
	}
	if got, want := Quote(""), `""`; got != want {
		t.Errorf("got %s want %s", got, want)
	}
}
