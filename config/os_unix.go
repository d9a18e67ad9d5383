//go:build !windows

package config

import (
	"os"

	"golang.org/x/term"
)

func forbiddenInFileName(rune) bool {
	return false
}

func colorCapable(stream *os.File) bool {
	return term.IsTerminal(int(stream.Fd()))
}
