// Package audit records rsakit key operations.
//
// Each key store directory carries its own log, written as JSON Lines:
//
//	<store>/audit.jsonl
//
// An entry holds the UTC timestamp, the local user and host, the operation
// (generate, apply, remove) and whatever detail that operation has: key name,
// bit length, fingerprint, batch size. Input and output values of apply are
// never logged.
//
// # Usage
//
//	entry := audit.NewEntry(audit.OpGenerate)
//	entry.Key = "deploy"
//	entry.Bits = 2048
//	audit.Log(storeDir, entry)
//
// Logging is best-effort: a store that cannot be written to does not make the
// operation fail. ReadEntries skips lines that do not parse, so a torn final
// write does not hide the rest of the history.
package audit
