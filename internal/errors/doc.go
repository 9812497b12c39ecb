// Package errors provides typed error values for rsakit.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Parameter errors: requests refused up front (ErrInvalidParameter)
//   - Generation errors: key pair search failures (ErrGenerationFailed)
//   - Key errors: unusable keys (ErrInvalidKey, ErrKeyMismatch)
//   - Store errors: persisted key issues (ErrKeyNotFound, ErrKeyExists)
//   - Config errors: configuration issues (ErrInvalidConfig)
//
// # Usage
//
// Return errors from internal packages:
//
//	if !key.IsValid() {
//	    return nil, errors.ErrInvalidKey
//	}
//
// Handle errors in the CLI layer:
//
//	result, err := workflows.Generate(ctx, opts)
//	if errors.Is(err, kerrors.ErrKeyExists) {
//	    // Suggest --force
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("loading key %s: %w", name, errors.ErrKeyNotFound)
//
// Malformed key text is deliberately not an error for rsakey.FromString, which
// returns an invalid key instead. rsakey.ParseKey is the strict variant and
// reports ErrInvalidKey.
package errors
