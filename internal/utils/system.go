package utils

import (
	"os"
	"os/user"
	"regexp"
	"strconv"
	"strings"
)

var (
	keyNameInvalidChars = regexp.MustCompile(`[^a-z0-9\-_]`)
	keyNameHyphenRuns   = regexp.MustCompile(`-+`)
)

// GetUsername returns the current username.
func GetUsername() (string, error) {
	user, err := user.Current()
	if err != nil {
		return "", err
	}
	return user.Username, nil
}

// GetHostname returns the system hostname.
func GetHostname() (string, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return "", err
	}
	return hostname, nil
}

// SanitizeKeyName turns arbitrary text into a valid key name: lowercase,
// spaces to hyphens, anything but letters, digits, hyphens and underscores removed.
func SanitizeKeyName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "-")
	name = keyNameInvalidChars.ReplaceAllString(name, "")
	name = keyNameHyphenRuns.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-_")

	if len(name) > maxKeyNameLength {
		name = strings.TrimRight(name[:maxKeyNameLength], "-_")
	}
	if name == "" {
		name = "key"
	}
	return name
}

// GenerateKeyName derives a key name from the hostname, falling back to the
// username. Conflicts with existing names get a numeric suffix (-2, -3, ...).
func GenerateKeyName(existingNames []string) string {
	base, err := GetHostname()
	if err != nil {
		if base, err = GetUsername(); err != nil {
			base = "key"
		}
	}
	return UniqueKeyName(SanitizeKeyName(base), existingNames)
}

// UniqueKeyName returns base, or base with the first free numeric suffix.
// Comparison is case-insensitive.
func UniqueKeyName(base string, existingNames []string) string {
	existing := make(map[string]bool, len(existingNames))
	for _, name := range existingNames {
		existing[strings.ToLower(name)] = true
	}

	name := base
	for suffix := 2; existing[strings.ToLower(name)]; suffix++ {
		name = base + "-" + strconv.Itoa(suffix)
	}
	return name
}
