package rsakey

import (
	"context"
	"fmt"
	"io"
	"math/big"

	kerrors "github.com/PolarWolf314/rsakit/internal/errors"
)

const (
	// millerRabinRounds is the number of Miller-Rabin rounds passed to ProbablyPrime,
	// which also runs a Baillie-PSW test.
	millerRabinRounds = 20

	// twoBitExponents is how many 1 + 2^i candidates are tried before the linear scan.
	twoBitExponents = 16

	// MaxExponentCandidates bounds the linear part of the exponent search.
	MaxExponentCandidates = 1 << 20

	// primeAttemptsPerBit sets the default candidate budget of RandomPrime.
	primeAttemptsPerBit = 20
)

// DefaultPrimeAttempts returns the default number of candidates drawn when
// searching for a prime of the given size.
func DefaultPrimeAttempts(bits int) int {
	return primeAttemptsPerBit * bits
}

// RandomPrime draws odd candidates of exactly bits bits from random until one
// passes the probable-primality test. The two most significant bits are always
// set, so the product of two such primes has exactly the sum of their sizes.
//
// The context is checked before every candidate.
// Returns ErrInvalidParameter if bits < 2 or maxAttempts < 1.
// Returns ErrPrimeSearchExhausted if no prime is found within maxAttempts candidates.
func RandomPrime(ctx context.Context, random io.Reader, bits, maxAttempts int) (*big.Int, error) {
	if bits < 2 {
		return nil, fmt.Errorf("prime size %d is below 2 bits: %w", bits, kerrors.ErrInvalidParameter)
	}
	if maxAttempts < 1 {
		return nil, fmt.Errorf("prime attempt budget %d: %w", maxAttempts, kerrors.ErrInvalidParameter)
	}

	topBits := uint(bits % 8)
	if topBits == 0 {
		topBits = 8
	}
	buf := make([]byte, (bits+7)/8)
	candidate := new(big.Int)

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, err := io.ReadFull(random, buf); err != nil {
			return nil, fmt.Errorf("reading random bits: %w", err)
		}

		buf[0] &= uint8(int(1<<topBits) - 1)
		if topBits >= 2 {
			buf[0] |= 3 << (topBits - 2)
		} else {
			buf[0] |= 1
			if len(buf) > 1 {
				buf[1] |= 0x80
			}
		}
		buf[len(buf)-1] |= 1

		candidate.SetBytes(buf)
		if candidate.ProbablyPrime(millerRabinRounds) {
			return candidate, nil
		}
	}

	return nil, fmt.Errorf("no %d-bit prime in %d candidates: %w", bits, maxAttempts, kerrors.ErrPrimeSearchExhausted)
}

// FindPublicExponent returns the first exponent coprime to totient and smaller
// than it. Candidates with two set bits (3, 5, 9, 17, ... 65537) come first
// because they are cheap to exponentiate with; after those the search scans
// upward from 4.
//
// For a totient of 3120 the result is 17.
// Returns ErrInvalidParameter if totient is nil or below 3.
// Returns ErrNoCoprimeExponent if the bounded search finds nothing.
func FindPublicExponent(totient *big.Int) (*big.Int, error) {
	if totient == nil || totient.Cmp(big.NewInt(3)) < 0 {
		return nil, fmt.Errorf("searching exponent for totient %v: %w", totient, kerrors.ErrInvalidParameter)
	}

	gcd := new(big.Int)
	coprime := func(e *big.Int) bool {
		return e.Cmp(totient) < 0 && gcd.GCD(nil, nil, e, totient).Cmp(one) == 0
	}

	for i := 1; i <= twoBitExponents; i++ {
		e := new(big.Int).Lsh(one, uint(i))
		e.Add(e, one)
		if e.Cmp(totient) >= 0 {
			break
		}
		if coprime(e) {
			return e, nil
		}
	}

	e := big.NewInt(4)
	for n := 0; n < MaxExponentCandidates && e.Cmp(totient) < 0; n++ {
		if coprime(e) {
			return e, nil
		}
		e.Add(e, one)
	}

	return nil, fmt.Errorf("searching exponent for a %d-bit totient: %w", totient.BitLen(), kerrors.ErrNoCoprimeExponent)
}

// ModInverse returns d in [0, m) with a*d = 1 (mod m), computed with the
// extended Euclidean algorithm.
//
// Returns ErrInvalidParameter if a is not positive or m is below 2.
// Returns ErrNoModularInverse if a and m are not coprime.
func ModInverse(a, m *big.Int) (*big.Int, error) {
	if a == nil || m == nil || a.Sign() <= 0 || m.Cmp(two) < 0 {
		return nil, fmt.Errorf("inverting modulo %v: %w", m, kerrors.ErrInvalidParameter)
	}

	x := new(big.Int)
	if g := new(big.Int).GCD(x, nil, a, m); g.Cmp(one) != 0 {
		return nil, fmt.Errorf("gcd is %v: %w", g, kerrors.ErrNoModularInverse)
	}
	x.Mod(x, m)
	return x, nil
}
