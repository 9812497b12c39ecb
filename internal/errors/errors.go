package errors

import "errors"

// Parameter errors indicate a request was refused before any work began.
var (
	// ErrInvalidParameter indicates an argument is out of range, such as a bit length
	// below the minimum or a negative value passed to apply.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// Generation errors indicate key pair generation could not complete.
var (
	// ErrGenerationFailed indicates the prime or exponent search exhausted its retry budget.
	ErrGenerationFailed = errors.New("key pair generation failed")

	// ErrPrimeSearchExhausted indicates no probable prime was found within the attempt budget.
	ErrPrimeSearchExhausted = errors.New("prime search exhausted")

	// ErrNoCoprimeExponent indicates no exponent coprime to the totient was found.
	ErrNoCoprimeExponent = errors.New("no coprime exponent found")

	// ErrNoModularInverse indicates the exponent has no inverse modulo the totient.
	ErrNoModularInverse = errors.New("modular inverse does not exist")
)

// Key errors indicate a key cannot be used.
var (
	// ErrInvalidKey indicates the key has a zero modulus or could not be parsed.
	ErrInvalidKey = errors.New("invalid key")

	// ErrKeyMismatch indicates two keys were expected to share a modulus but do not.
	ErrKeyMismatch = errors.New("keys do not share a modulus")
)

// Store errors indicate issues with persisted keys.
var (
	// ErrKeyNotFound indicates a named key is not present in the store.
	ErrKeyNotFound = errors.New("key not found")

	// ErrKeyExists indicates a key with the same name is already stored.
	ErrKeyExists = errors.New("key already exists")

	// ErrInvalidKeyName indicates the key name contains unsupported characters.
	ErrInvalidKeyName = errors.New("invalid key name")
)

// Config errors indicate issues with the rsakit configuration.
var (
	// ErrInvalidConfig indicates the configuration file is malformed or has out-of-range values.
	ErrInvalidConfig = errors.New("configuration is invalid")
)

// Input errors indicate malformed command input.
var (
	// ErrInvalidValue indicates a value to apply could not be parsed as a non-negative integer.
	ErrInvalidValue = errors.New("invalid value")

	// ErrInvalidDateFormat indicates a date filter is not in YYYY-MM-DD form.
	ErrInvalidDateFormat = errors.New("invalid date format")
)
