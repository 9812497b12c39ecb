package workflows

import (
	"context"
	"fmt"
	"runtime"
	"strconv"

	"github.com/PolarWolf314/rsakit/internal/audit"
	kerrors "github.com/PolarWolf314/rsakit/internal/errors"
	"github.com/PolarWolf314/rsakit/internal/keystore"
	"github.com/PolarWolf314/rsakit/internal/rsakey"
	"github.com/PolarWolf314/rsakit/internal/utils"
	"golang.org/x/sync/errgroup"
)

// GenerateOptions configures the generate workflow.
type GenerateOptions struct {
	// Name is the key name. Derived from the hostname if empty.
	Name string

	// StoreDir overrides the configured key store directory.
	StoreDir string

	// Bits is the modulus size. Zero uses the configured default.
	Bits int

	// Seeds makes generation deterministic. With Count > 1 the batch index is
	// appended, so every pair in the batch differs.
	Seeds []int64

	// Count is the number of pairs to generate. Zero means one.
	// Pairs after the first are named <name>-2, <name>-3 and so on.
	Count int

	// Force overwrites existing keys with the same names.
	Force bool

	// Logger receives debug progress from the generator. Optional.
	Logger rsakey.Logger
}

// GeneratedKey is one saved key pair.
type GeneratedKey struct {
	Entry          keystore.Entry
	Pair           *rsakey.KeyPair
	PublicKeyPath  string
	PrivateKeyPath string
}

// GenerateResult contains the outcome of a generate operation.
type GenerateResult struct {
	// Keys are in batch order.
	Keys []GeneratedKey

	// StoreDir is the directory the keys were saved to.
	StoreDir string

	// Bits is the modulus size that was requested.
	Bits int
}

// Generate creates Count key pairs and saves them to the store.
// Pairs are generated concurrently and nothing is saved unless every pair is
// generated. If saving a pair fails, the pairs this batch created are removed
// again; pairs that replaced existing keys under Force stay replaced.
//
// Returns ErrInvalidKeyName if Name is not a valid key name.
// Returns ErrInvalidParameter if Bits is below rsakey.MinBits or Count is negative.
// Returns ErrKeyExists if a target name is taken and Force is false.
// Returns ErrGenerationFailed if a pair could not be produced.
func Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	if opts.Count < 0 {
		return nil, fmt.Errorf("count must not be negative: %w", kerrors.ErrInvalidParameter)
	}
	count := opts.Count
	if count == 0 {
		count = 1
	}

	config, store, err := openStore(opts.StoreDir)
	if err != nil {
		return nil, err
	}

	bits := opts.Bits
	if bits == 0 {
		bits = config.Keygen.Bits
	}
	if bits < rsakey.MinBits {
		return nil, fmt.Errorf("bit length %d is below the minimum of %d: %w", bits, rsakey.MinBits, kerrors.ErrInvalidParameter)
	}

	existing, err := store.Names()
	if err != nil {
		return nil, err
	}
	names, err := batchNames(opts.Name, count, existing)
	if err != nil {
		return nil, err
	}
	preexisting, err := takenNames(store, names)
	if err != nil {
		return nil, err
	}
	if !opts.Force {
		for _, name := range names {
			if preexisting[name] {
				return nil, fmt.Errorf("key %s: %w", name, kerrors.ErrKeyExists)
			}
		}
	}

	pairs := make([]*rsakey.KeyPair, count)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i := range pairs {
		g.Go(func() error {
			pair, err := rsakey.GenerateKeyPair(gctx, rsakey.GenerateOptions{
				Bits:             bits,
				Seeds:            batchSeeds(opts.Seeds, i, count),
				MaxPrimeAttempts: config.Keygen.MaxPrimeAttempts,
				MaxRetries:       config.Keygen.MaxRetries,
				Logger:           opts.Logger,
			})
			if err != nil {
				return fmt.Errorf("key %s: %w", names[i], err)
			}
			pairs[i] = pair
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &GenerateResult{StoreDir: store.Dir, Bits: bits}
	for i, pair := range pairs {
		entry, err := store.Save(names[i], pair, opts.Force)
		if err != nil {
			discardSaved(store, result.Keys, preexisting)
			return nil, err
		}
		result.Keys = append(result.Keys, GeneratedKey{
			Entry:          *entry,
			Pair:           pair,
			PublicKeyPath:  store.PublicKeyPath(names[i]),
			PrivateKeyPath: store.PrivateKeyPath(names[i]),
		})
	}

	for _, key := range result.Keys {
		auditEntry := audit.NewEntry(audit.OpGenerate)
		auditEntry.Key = key.Entry.Name
		auditEntry.Bits = key.Entry.Bits
		auditEntry.Fingerprint = key.Entry.Fingerprint
		auditEntry.Seeded = len(opts.Seeds) > 0
		if count > 1 {
			auditEntry.Count = count
		}
		audit.Log(store.Dir, auditEntry)
	}

	return result, nil
}

// batchNames returns the names for a batch of count keys starting at base.
func batchNames(base string, count int, existing []string) ([]string, error) {
	if base == "" {
		base = utils.GenerateKeyName(existing)
	}
	if !utils.IsValidKeyName(base) {
		return nil, fmt.Errorf("key name %q: %w", base, kerrors.ErrInvalidKeyName)
	}

	names := []string{base}
	for i := 2; i <= count; i++ {
		name := base + "-" + strconv.Itoa(i)
		if !utils.IsValidKeyName(name) {
			return nil, fmt.Errorf("key name %q: %w", name, kerrors.ErrInvalidKeyName)
		}
		names = append(names, name)
	}
	return names, nil
}

// takenNames reports which of names already have a manifest entry or key
// files in the store.
func takenNames(store *keystore.Store, names []string) (map[string]bool, error) {
	taken := make(map[string]bool, len(names))
	for _, name := range names {
		exists, err := store.Exists(name)
		if err != nil {
			return nil, err
		}
		taken[name] = exists
	}
	return taken, nil
}

// discardSaved removes the keys a failed batch created.
func discardSaved(store *keystore.Store, saved []GeneratedKey, preexisting map[string]bool) {
	for _, key := range saved {
		if preexisting[key.Entry.Name] {
			continue
		}
		_, _ = store.Remove(key.Entry.Name)
	}
}

// batchSeeds returns the seed list for pair i of a batch.
func batchSeeds(seeds []int64, i, count int) []int64 {
	if len(seeds) == 0 || count == 1 {
		return seeds
	}
	out := make([]int64, len(seeds), len(seeds)+1)
	copy(out, seeds)
	return append(out, int64(i))
}
