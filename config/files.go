package config

import (
	"os"
	"strings"
)

const unnamedFile = "unnamed"

// CleanFileName turns a style or sheet name into something usable as a file
// name: characters the platform rejects are dropped, whitespace runs become
// single spaces and leading dots are removed.
func CleanFileName(in string) string {
	out := strings.Map(func(sym rune) rune {
		if sym == 0 || forbiddenInFileName(sym) ||
			sym == os.PathSeparator || sym == os.PathListSeparator {
			return -1
		}
		return sym
	}, in)
	out = strings.Join(strings.Fields(out), " ")
	out = strings.TrimRight(strings.TrimLeft(out, "."), ". ")
	if len(out) == 0 {
		return unnamedFile
	}
	return out
}

// EnableColorOutput checks if colorized output is possible. NO_COLOR in the
// environment always disables it.
func EnableColorOutput(stream *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return colorCapable(stream)
}
