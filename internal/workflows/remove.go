package workflows

import (
	"context"

	"github.com/PolarWolf314/rsakit/internal/audit"
	"github.com/PolarWolf314/rsakit/internal/keystore"
)

// RemoveOptions configures the remove workflow.
type RemoveOptions struct {
	Name     string
	StoreDir string
}

// RemoveResult contains the outcome of a remove operation.
type RemoveResult struct {
	// Entry is the removed manifest entry, nil if the key had none.
	Entry *keystore.Entry

	// RemovedFiles are the key files that were deleted.
	RemovedFiles []string
}

// Remove deletes a stored key pair.
//
// Returns ErrInvalidKeyName if Name is not a valid key name.
// Returns ErrKeyNotFound if the store has no such key.
func Remove(ctx context.Context, opts RemoveOptions) (*RemoveResult, error) {
	_, store, err := openStore(opts.StoreDir)
	if err != nil {
		return nil, err
	}

	result := &RemoveResult{}
	if entry, err := store.Get(opts.Name); err == nil {
		result.Entry = entry
	}

	removed, err := store.Remove(opts.Name)
	result.RemovedFiles = removed
	if err != nil {
		return result, err
	}

	entry := audit.NewEntry(audit.OpRemove)
	entry.Key = opts.Name
	if result.Entry != nil {
		entry.Bits = result.Entry.Bits
		entry.Fingerprint = result.Entry.Fingerprint
	}
	audit.Log(store.Dir, entry)

	return result, nil
}
