package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Parse  bool
	Lazy   bool
	Encode bool
	Eval   bool
	Match  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("JV_DEBUG_PARSE")
	d.Lazy = boolEnv("JV_DEBUG_LAZY")
	d.Encode = boolEnv("JV_DEBUG_ENCODE")
	d.Eval = boolEnv("JV_DEBUG_EVAL")
	d.Match = boolEnv("JV_DEBUG_MATCH")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

// Parse reports whether parse summaries are logged.
func Parse() bool {
	return d.Parse
}

// Lazy reports whether lazy child index construction is logged.
func Lazy() bool {
	return d.Lazy
}

func Encode() bool {
	return d.Encode
}

func Eval() bool {
	return d.Eval
}

func Match() bool {
	return d.Match
}

// Logf writes a debug message to stderr. Byte slice arguments are shown
// as strings, truncated to keep messages about large documents readable.
func Logf(msg string, args ...any) {
	for i := range args {
		switch x := args[i].(type) {
		case []byte:
			args[i] = clip(string(x))
		case string:
			args[i] = clip(x)
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}

const clipLen = 64

func clip(s string) string {
	if len(s) <= clipLen {
		return s
	}
	return s[:clipLen] + "..."
}
