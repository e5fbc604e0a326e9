//go:build !windows

package config

import (
	"os"

	"golang.org/x/term"
)

const reservedNameChars = "/:"

// EnableColorOutput reports whether stream is a terminal which could be
// colored.
func EnableColorOutput(stream *os.File) bool {
	return !colorRefused() && term.IsTerminal(int(stream.Fd()))
}
