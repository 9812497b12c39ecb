package workflows

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/PolarWolf314/rsakit/internal/audit"
	kerrors "github.com/PolarWolf314/rsakit/internal/errors"
	"github.com/PolarWolf314/rsakit/internal/rsakey"
)

// ApplyOptions configures the apply workflow.
// Exactly one of KeyName and KeyText must be set.
type ApplyOptions struct {
	// KeyName is a key in the store.
	KeyName string

	// KeyText is a key in "<hex-exponent>,<hex-modulus>" form.
	KeyText string

	// Private selects the private half of a stored key. Ignored with KeyText.
	Private bool

	// Value is the integer to transform, decimal or 0x-prefixed hex.
	Value string

	// Blocks splits values at or above the modulus into base-modulus digits.
	Blocks bool

	// StoreDir overrides the configured key store directory.
	StoreDir string
}

// ApplyResult contains the outcome of an apply operation.
type ApplyResult struct {
	Input  *big.Int
	Output *big.Int

	// Key is the key that was applied.
	Key rsakey.Key

	// KeyName is empty when the key came from KeyText.
	KeyName string

	// LoosePermissions is set when the private key file is readable by others.
	LoosePermissions bool

	// PrivateKeyMode is the private key file's mode when LoosePermissions is set.
	PrivateKeyMode os.FileMode

	// PrivateKeyPath is the private key file that was read, if any.
	PrivateKeyPath string
}

// Apply transforms a value with a stored or literal key.
//
// Returns ErrInvalidParameter if neither or both of KeyName and KeyText are set.
// Returns ErrInvalidValue if Value is not a non-negative integer.
// Returns ErrKeyNotFound if KeyName is not in the store.
// Returns ErrInvalidKey if the key cannot be parsed or has a zero modulus.
func Apply(ctx context.Context, opts ApplyOptions) (*ApplyResult, error) {
	if (opts.KeyName == "") == (opts.KeyText == "") {
		return nil, fmt.Errorf("exactly one of a key name or key text is required: %w", kerrors.ErrInvalidParameter)
	}

	value, err := ParseValue(opts.Value)
	if err != nil {
		return nil, err
	}

	result := &ApplyResult{Input: value, KeyName: opts.KeyName}
	storeDir := ""

	if opts.KeyText != "" {
		key, err := rsakey.ParseKey(opts.KeyText)
		if err != nil {
			return nil, fmt.Errorf("parsing key text: %w", err)
		}
		result.Key = key
	} else {
		_, store, err := openStore(opts.StoreDir)
		if err != nil {
			return nil, err
		}
		storeDir = store.Dir

		if opts.Private {
			mode, loose, err := store.PrivateKeyPermissions(opts.KeyName)
			if err != nil {
				return nil, err
			}
			result.LoosePermissions = loose
			result.PrivateKeyPath = store.PrivateKeyPath(opts.KeyName)
			if loose {
				result.PrivateKeyMode = mode
			}
			result.Key, err = store.LoadPrivate(opts.KeyName)
			if err != nil {
				return nil, err
			}
		} else {
			result.Key, err = store.LoadPublic(opts.KeyName)
			if err != nil {
				return nil, err
			}
		}
	}

	if opts.Blocks {
		result.Output, err = rsakey.ApplyBlocks(result.Key, value)
	} else {
		result.Output, err = rsakey.Apply(result.Key, value)
	}
	if err != nil {
		return nil, err
	}

	if storeDir != "" {
		entry := audit.NewEntry(audit.OpApply)
		entry.Key = opts.KeyName
		entry.Bits = result.Key.BitLen()
		entry.Fingerprint = result.Key.Fingerprint()
		entry.Private = opts.Private
		entry.Blocks = opts.Blocks
		audit.Log(storeDir, entry)
	}

	return result, nil
}

// ParseValue parses a non-negative integer written in decimal or with a 0x prefix in hex.
//
// Returns ErrInvalidValue for anything else.
func ParseValue(text string) (*big.Int, error) {
	s := strings.ReplaceAll(strings.TrimSpace(text), "_", "")
	base := 10
	if lower := strings.ToLower(s); strings.HasPrefix(lower, "0x") {
		s = s[2:]
		base = 16
	}
	if s == "" || s[0] == '-' || s[0] == '+' {
		return nil, fmt.Errorf("%q: %w", text, kerrors.ErrInvalidValue)
	}

	value, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, fmt.Errorf("%q: %w", text, kerrors.ErrInvalidValue)
	}
	return value, nil
}
