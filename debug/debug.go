// Package debug reads the HRW_DEBUG_* environment switches which turn on
// tracing in the rewriter.
package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Tokens   bool
	Dispatch bool
	Content  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Tokens = boolEnv("HRW_DEBUG_TOKENS")
	d.Dispatch = boolEnv("HRW_DEBUG_DISPATCH")
	d.Content = boolEnv("HRW_DEBUG_CONTENT")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

// Tokens traces every token read.
func Tokens() bool {
	return d.Tokens
}

// Dispatch traces handler matching, end tag matching and implicit closes.
func Dispatch() bool {
	return d.Dispatch
}

// Content traces regions of input dropped because their element's content
// was removed.
func Content() bool {
	return d.Content
}

// Set overrides the switches read from the environment.
func Set(tokens, dispatch, content bool) {
	d.Tokens = tokens
	d.Dispatch = dispatch
	d.Content = content
}
