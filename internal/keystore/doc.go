// Package keystore persists rsakit key pairs on disk.
//
// A store is a single directory:
//
//	<dir>/<name>.key      private key text, 0600
//	<dir>/<name>.pub      public key text, 0644
//	<dir>/manifest.toml   id, bits, fingerprint and creation time per key
//	<dir>/audit.jsonl     operation log (see package audit)
//
// Key files contain exactly the rsakey text form ("<hex-exponent>,<hex-modulus>")
// and a trailing newline, so they can be copied around or pasted into
// --key-text. Keys are stored unencrypted; protecting the directory is up to
// the user. Loading is strict: a file that does not parse yields ErrInvalidKey.
//
// A Store serializes manifest updates with a mutex, so one Store may be shared
// by goroutines saving different keys.
package keystore
