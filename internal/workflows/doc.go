// Package workflows provides high-level orchestration for rsakit commands.
//
// Workflows tie together configuration, the rsakey primitives, the key store
// and the audit log. Each one implements a single command's logic and knows
// nothing about flags, spinners or output formatting; cmd/ parses input,
// calls a workflow and prints the result.
//
// # Available Workflows
//
//   - Generate: creates one or more key pairs and saves them
//   - Apply: runs a value through a stored or literal key
//   - Inspect: reports size, fingerprint and validity of a key
//   - List: returns the store's manifest entries
//   - Remove: deletes a stored key pair
//   - History: reads and filters the store's audit log
//
// # Store Resolution
//
// Every Options struct carries a StoreDir. When it is empty the workflow
// loads the user config and uses its store path, falling back to the default
// keys directory.
//
// # Error Handling
//
// Workflows return sentinel errors from internal/errors, wrapped with
// context. Check them with errors.Is:
//
//	result, err := workflows.Apply(ctx, opts)
//	if errors.Is(err, kerrors.ErrKeyNotFound) {
//	    // suggest 'rsakit keys list'
//	}
//
// All workflow functions take a context.Context first. Generation honours
// cancellation between prime candidates.
package workflows
