package rsakey

import (
	"fmt"
	"math/big"

	kerrors "github.com/PolarWolf314/rsakit/internal/errors"
)

// Apply returns value^exponent mod modulus for the given key. The same function
// encodes with one half of a pair and decodes with the other.
//
// Apply is the bare mathematical transform. It does no padding and no bounds
// checking: the caller must keep value below the key's modulus. It also cannot
// tell whether two keys belong together. Applying a key that does not match the
// one used to encode returns a different, meaningless number without an error,
// and checking the result is the caller's responsibility.
//
// Returns ErrInvalidKey if the key's modulus is zero.
// Returns ErrInvalidParameter if value is nil or negative.
// The input value is never modified.
func Apply(key Key, value *big.Int) (*big.Int, error) {
	if err := checkApply(key, value); err != nil {
		return nil, err
	}
	return new(big.Int).Exp(value, key.exponent, key.modulus), nil
}

// ApplyBlocks applies the key to values of any size. The value is written in
// base modulus and the key is applied to every digit, keeping the digit order.
// For values below the modulus the result equals Apply.
//
// Applying the matching key with ApplyBlocks restores the original value.
// The output is not compatible with encoders that emit the least significant
// digit first: those reverse the digits and drop trailing zero digits, so
// their results cannot be decoded here and vice versa.
func ApplyBlocks(key Key, value *big.Int) (*big.Int, error) {
	if err := checkApply(key, value); err != nil {
		return nil, err
	}
	if key.modulus.Cmp(one) == 0 {
		return nil, fmt.Errorf("applying key in blocks to a modulus of one: %w", kerrors.ErrInvalidKey)
	}
	if value.Cmp(key.modulus) < 0 {
		return new(big.Int).Exp(value, key.exponent, key.modulus), nil
	}

	var digits []*big.Int
	rest := new(big.Int).Set(value)
	for rest.Sign() > 0 {
		digit := new(big.Int)
		rest.QuoRem(rest, key.modulus, digit)
		digits = append(digits, digit)
	}

	result := new(big.Int)
	for i := len(digits) - 1; i >= 0; i-- {
		result.Mul(result, key.modulus)
		result.Add(result, digits[i].Exp(digits[i], key.exponent, key.modulus))
	}
	return result, nil
}

func checkApply(key Key, value *big.Int) error {
	if !key.IsValid() {
		return fmt.Errorf("applying key with zero modulus: %w", kerrors.ErrInvalidKey)
	}
	if value == nil {
		return fmt.Errorf("applying key to nil value: %w", kerrors.ErrInvalidParameter)
	}
	if value.Sign() < 0 {
		return fmt.Errorf("applying key to negative value: %w", kerrors.ErrInvalidParameter)
	}
	return nil
}
