// Package rsakey implements the bare RSA key-pair primitive used by rsakit.
//
// This package generates matching public/private key pairs, applies a key to a
// numeric value, and converts keys to and from a compact text form. Arithmetic
// is done with math/big.
//
// # Keys
//
// A Key is an (exponent, modulus) pair. Public and private keys have the same
// shape and share the modulus; their exponents are inverses modulo the totient
// (p-1)(q-1). The zero Key is invalid.
//
// # Generation
//
// GenerateKeyPair draws two distinct probable primes, picks the smallest
// suitable public exponent (3, 5, 9, 17, ... 65537 first, then a linear scan)
// and inverts it. All loops are bounded and the whole prime selection is
// retried a bounded number of times, so generation either returns a checked
// pair or ErrGenerationFailed.
//
// Each call owns its random source. Seeds make the source deterministic:
//
//	pub, priv, err := rsakey.CreateKeyPair(512, 17, 42, 1999)
//
// # Applying Keys
//
// Apply computes value^exponent mod modulus and is used for both directions:
//
//	c, _ := rsakey.Apply(pub, m)
//	m2, _ := rsakey.Apply(priv, c) // m2 == m
//
// There is no padding and no check that value is below the modulus or that the
// keys belong together. ApplyBlocks handles values larger than the modulus.
//
// # Text Format
//
// Keys serialize as "<hex-exponent>,<hex-modulus>" in lowercase hex. FromString
// never fails and returns an invalid key for malformed text; ParseKey reports
// ErrInvalidKey instead.
package rsakey
