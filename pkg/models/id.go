package models

import (
	"strings"
	"unicode"
)

// MaxIDLength bounds caller-supplied record ids.
const MaxIDLength = 255

// IsValidID reports whether id can name a stored record: non-empty, at most MaxIDLength
// bytes, no path separators or control characters, and not "." or "..".
func IsValidID(id string) bool {
	if id == "" || len(id) > MaxIDLength || id == "." || id == ".." {
		return false
	}

	return !strings.ContainsFunc(id, func(r rune) bool {
		return r == '/' || r == '\\' || unicode.IsControl(r)
	})
}
