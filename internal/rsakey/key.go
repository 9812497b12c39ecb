package rsakey

import (
	"math/big"
)

var (
	zero = big.NewInt(0)
	one  = big.NewInt(1)
	two  = big.NewInt(2)
)

// Key is one half of an RSA key pair: an exponent and a modulus.
//
// The same shape represents both the public and the private half. Which half a
// Key is depends only on what the caller decided to call it. The zero value is
// an invalid key.
//
// A Key never exposes its internal integers; accessors return copies, so a Key
// cannot change after construction.
type Key struct {
	exponent *big.Int
	modulus  *big.Int
}

// NewKey creates a key from an exponent and a modulus. The arguments are copied.
// A nil or negative argument yields the invalid zero key.
//
// NewKey does not check that the modulus is a semiprime or that the exponent is
// coprime to anything. Only keys produced by the generator carry those guarantees.
func NewKey(exponent, modulus *big.Int) Key {
	if exponent == nil || modulus == nil || exponent.Sign() < 0 || modulus.Sign() < 0 {
		return Key{}
	}
	return Key{
		exponent: new(big.Int).Set(exponent),
		modulus:  new(big.Int).Set(modulus),
	}
}

// Exponent returns a copy of the key's exponent.
func (k Key) Exponent() *big.Int {
	return new(big.Int).Set(orZero(k.exponent))
}

// Modulus returns a copy of the key's modulus.
func (k Key) Modulus() *big.Int {
	return new(big.Int).Set(orZero(k.modulus))
}

// IsValid reports whether the key has a non-zero modulus.
func (k Key) IsValid() bool {
	return k.modulus != nil && k.modulus.Sign() != 0
}

// Equal reports whether both the exponent and the modulus of k and other are equal.
func (k Key) Equal(other Key) bool {
	return orZero(k.exponent).Cmp(orZero(other.exponent)) == 0 &&
		orZero(k.modulus).Cmp(orZero(other.modulus)) == 0
}

// BitLen returns the size of the modulus in bits.
func (k Key) BitLen() int {
	return orZero(k.modulus).BitLen()
}

// SharesModulus reports whether k and other have the same modulus.
func (k Key) SharesModulus(other Key) bool {
	return orZero(k.modulus).Cmp(orZero(other.modulus)) == 0
}

func orZero(x *big.Int) *big.Int {
	if x == nil {
		return zero
	}
	return x
}

// KeyPair holds a generated public/private pair.
type KeyPair struct {
	Public  Key
	Private Key
}

// Valid reports whether both halves are valid and share a modulus.
// It does not verify that the exponents are inverses of each other.
func (p KeyPair) Valid() bool {
	return p.Public.IsValid() && p.Private.IsValid() && p.Public.SharesModulus(p.Private)
}
