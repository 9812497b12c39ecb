package workflows

import (
	"context"
	"fmt"

	kerrors "github.com/PolarWolf314/rsakit/internal/errors"
	"github.com/PolarWolf314/rsakit/internal/keystore"
	"github.com/PolarWolf314/rsakit/internal/rsakey"
)

// InspectOptions configures the inspect workflow.
// Exactly one of KeyName and KeyText must be set.
type InspectOptions struct {
	KeyName  string
	KeyText  string
	StoreDir string
}

// InspectResult describes a key.
type InspectResult struct {
	// Entry is the manifest entry. Nil for KeyText.
	Entry *keystore.Entry

	Public rsakey.Key

	// HasPrivate is set when the store holds a matching private key.
	HasPrivate bool

	Bits        int
	Fingerprint string
	Valid       bool
}

// Inspect reports the size, fingerprint and validity of a key.
// A literal key that does not parse is reported as invalid, not as an error.
//
// Returns ErrInvalidParameter if neither or both of KeyName and KeyText are set.
// Returns ErrKeyNotFound if KeyName is not in the store.
func Inspect(ctx context.Context, opts InspectOptions) (*InspectResult, error) {
	if (opts.KeyName == "") == (opts.KeyText == "") {
		return nil, fmt.Errorf("exactly one of a key name or key text is required: %w", kerrors.ErrInvalidParameter)
	}

	if opts.KeyText != "" {
		return describe(rsakey.FromString(opts.KeyText)), nil
	}

	_, store, err := openStore(opts.StoreDir)
	if err != nil {
		return nil, err
	}

	public, err := store.LoadPublic(opts.KeyName)
	if err != nil {
		return nil, err
	}
	result := describe(public)

	if entry, err := store.Get(opts.KeyName); err == nil {
		result.Entry = entry
	}
	if private, err := store.LoadPrivate(opts.KeyName); err == nil {
		result.HasPrivate = private.SharesModulus(public)
	}
	return result, nil
}

func describe(key rsakey.Key) *InspectResult {
	return &InspectResult{
		Public:      key,
		Bits:        key.BitLen(),
		Fingerprint: key.Fingerprint(),
		Valid:       key.IsValid(),
	}
}
