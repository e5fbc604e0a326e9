package config

import (
	"os"
	"strings"
)

// CleanFileName makes name usable as a single path element: control
// characters and characters reserved by the platform are dropped, surrounding
// spaces and leading dots are trimmed.
func CleanFileName(in string) string {
	out := strings.Map(func(r rune) rune {
		if r < ' ' || strings.ContainsRune(reservedNameChars, r) {
			return -1
		}
		return r
	}, in)
	out = strings.TrimLeft(strings.TrimSpace(out), ".")
	if len(out) == 0 {
		return "_bad_file_name_"
	}
	return out
}

// colorRefused reports whether user asked for plain output, see no-color.org.
func colorRefused() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return true
	}
	return os.Getenv("TERM") == "dumb"
}
