package audit

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/PolarWolf314/rsakit/internal/utils"
)

// LogFile is the audit log's file name inside a key store directory.
const LogFile = "audit.jsonl"

const timestampLayout = "2006-01-02T15:04:05.000000Z"

// Operation names.
const (
	OpGenerate = "generate"
	OpApply    = "apply"
	OpRemove   = "remove"
)

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp string `json:"ts"`
	User      string `json:"user,omitempty"`
	Host      string `json:"host,omitempty"`
	Operation string `json:"op"`

	Key         string `json:"key,omitempty"`
	Bits        int    `json:"bits,omitempty"`
	Fingerprint string `json:"fingerprint,omitempty"`
	Count       int    `json:"count,omitempty"`   // For batch generate.
	Private     bool   `json:"private,omitempty"` // For apply.
	Blocks      bool   `json:"blocks,omitempty"`  // For apply.
	Seeded      bool   `json:"seeded,omitempty"`  // For generate.
}

var writeMu sync.Mutex

// NewEntry returns an entry for op with the local user and host filled in.
func NewEntry(op string) Entry {
	entry := Entry{Operation: op}
	if user, err := utils.GetUsername(); err == nil {
		entry.User = user
	}
	if host, err := utils.GetHostname(); err == nil {
		entry.Host = host
	}
	return entry
}

// LogPath returns the audit log path for the store at dir.
func LogPath(dir string) string {
	return filepath.Join(dir, LogFile)
}

// Log appends entry to the audit log of the store at dir.
// Failures are dropped.
func Log(dir string, entry Entry) {
	_ = Append(dir, entry)
}

// Append is Log that reports why the entry could not be written.
func Append(dir string, entry Entry) error {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format(timestampLayout)
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	writeMu.Lock()
	defer writeMu.Unlock()

	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(LogPath(dir), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ReadEntries reads all entries from the audit log of the store at dir.
// A missing log yields no entries.
func ReadEntries(dir string) ([]Entry, error) {
	data, err := os.ReadFile(LogPath(dir))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data. Malformed lines are skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return entries, err
	}
	return entries, nil
}
