package workflows

import (
	"context"

	"github.com/PolarWolf314/rsakit/internal/keystore"
)

// ListResult contains the stored keys.
type ListResult struct {
	Entries  []keystore.Entry
	StoreDir string
}

// List returns the store's manifest entries sorted by name.
// An empty or missing store yields no entries.
func List(ctx context.Context, storeDir string) (*ListResult, error) {
	_, store, err := openStore(storeDir)
	if err != nil {
		return nil, err
	}

	entries, err := store.List()
	if err != nil {
		return nil, err
	}
	return &ListResult{Entries: entries, StoreDir: store.Dir}, nil
}
