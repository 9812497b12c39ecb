// Package utils provides shared helpers for rsakit.
//
// # Key Names
//
// Stored keys are addressed by name, which doubles as a file name:
//   - IsValidKeyName: checks a user-supplied name
//   - SanitizeKeyName: normalizes arbitrary text into a valid name
//   - GenerateKeyName: default name derived from the hostname
//   - UniqueKeyName: appends -2, -3, ... on conflict
//
// # System Utilities
//   - GetUsername, GetHostname
//
// # I/O Utilities
//   - ReadStdin: reads a piped value or key text
//   - IsTerminal: decides whether progress spinners are shown
//   - FormatPaths: formats file paths for human-readable output
package utils
