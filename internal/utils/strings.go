package utils

import (
	"regexp"
	"strings"

	"github.com/PolarWolf314/rsakit/internal/ui"
)

const maxKeyNameLength = 64

var keyNamePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*$`)

// FormatPaths formats a slice of paths into a readable string.
func FormatPaths(paths []string) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, path := range paths {
		b.WriteString("    - ")
		b.WriteString(ui.Path.Sprint(path))
		b.WriteString("\n")
	}
	return b.String()
}

// IsValidKeyName checks a key name is safe to use as a file name:
// alphanumeric start, then alphanumerics, hyphens or underscores.
func IsValidKeyName(name string) bool {
	if name == "" || len(name) > maxKeyNameLength {
		return false
	}
	return keyNamePattern.MatchString(name)
}
