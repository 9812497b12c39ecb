package rsakey

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"time"

	kerrors "github.com/PolarWolf314/rsakit/internal/errors"
	"github.com/sethvargo/go-retry"
)

const (
	// MinBits is the smallest modulus size GenerateKeyPair accepts. Keys this small
	// are only useful for tests; real use needs thousands of bits.
	MinBits = 16

	// DefaultMaxRetries is how many times prime selection is restarted after a
	// failed attempt before generation gives up.
	DefaultMaxRetries = 8
)

var (
	errDuplicatePrimes = errors.New("both primes are equal")
	errSelfCheck       = errors.New("generated pair does not round-trip")
)

// Logger receives progress messages during generation. Messages carry sizes and
// attempt counts only, never key material.
type Logger interface {
	Debugf(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}

// GenerateOptions configures GenerateKeyPair.
type GenerateOptions struct {
	// Bits is the size of the modulus. Must be at least MinBits.
	Bits int

	// Seeds, if set, makes generation deterministic (see NewRandomSource).
	Seeds []int64

	// Random overrides the random source built from Seeds.
	Random io.Reader

	// MaxPrimeAttempts bounds the candidates drawn per prime.
	// Zero uses DefaultPrimeAttempts for each prime size.
	MaxPrimeAttempts int

	// MaxRetries bounds how often prime selection restarts. Zero uses DefaultMaxRetries.
	MaxRetries int

	// Logger receives debug progress. Optional.
	Logger Logger
}

// CreateKeyPair generates a key pair whose modulus has bitLength bits. Seeds are
// optional; without them the system's secure random source is used.
//
// Returns ErrInvalidParameter if bitLength is below MinBits.
// Returns ErrGenerationFailed if the bounded search did not produce a pair.
func CreateKeyPair(bitLength int, seeds ...int64) (public, private Key, err error) {
	pair, err := GenerateKeyPair(context.Background(), GenerateOptions{Bits: bitLength, Seeds: seeds})
	if err != nil {
		return Key{}, Key{}, err
	}
	return pair.Public, pair.Private, nil
}

// GenerateKeyPair generates a public/private key pair.
//
// Two distinct probable primes p and q are drawn (Bits-Bits/2 and Bits/2 bits),
// the smallest suitable public exponent e is chosen by FindPublicExponent, and
// the private exponent is the inverse of e modulo (p-1)(q-1). Every pair is
// checked before it is returned. A failed attempt restarts prime selection, up
// to MaxRetries times.
//
// The context is checked between prime candidates and between attempts.
// Returns ErrInvalidParameter if the options are out of range.
// Returns ErrGenerationFailed (wrapping the cause) if no pair could be produced.
// No partial pair is ever returned.
func GenerateKeyPair(ctx context.Context, opts GenerateOptions) (*KeyPair, error) {
	if opts.Bits < MinBits {
		return nil, fmt.Errorf("bit length %d is below the minimum of %d: %w", opts.Bits, MinBits, kerrors.ErrInvalidParameter)
	}
	if opts.MaxPrimeAttempts < 0 || opts.MaxRetries < 0 {
		return nil, fmt.Errorf("negative attempt budget: %w", kerrors.ErrInvalidParameter)
	}

	random := opts.Random
	if random == nil {
		var err error
		random, err = NewRandomSource(opts.Seeds)
		if err != nil {
			return nil, err
		}
	}

	log := opts.Logger
	if log == nil {
		log = nopLogger{}
	}

	retries := opts.MaxRetries
	if retries == 0 {
		retries = DefaultMaxRetries
	}
	backoff := retry.WithMaxRetries(uint64(retries), retry.BackoffFunc(func() (time.Duration, bool) {
		return 0, false
	}))

	var pair *KeyPair
	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		log.Debugf("Key generation attempt %d of %d for %d bits", attempt, retries+1, opts.Bits)

		candidate, err := derivePair(ctx, random, opts.Bits, opts.MaxPrimeAttempts)
		if err != nil {
			if retryable(err) {
				log.Debugf("Attempt %d failed: %v", attempt, err)
				return retry.RetryableError(err)
			}
			return err
		}
		pair = candidate
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("generating %d-bit key pair after %d attempts: %w: %w", opts.Bits, attempt, kerrors.ErrGenerationFailed, err)
	}

	log.Debugf("Generated %d-bit key pair in %d attempts", pair.Public.BitLen(), attempt)
	return pair, nil
}

func retryable(err error) bool {
	return errors.Is(err, kerrors.ErrPrimeSearchExhausted) ||
		errors.Is(err, kerrors.ErrNoCoprimeExponent) ||
		errors.Is(err, kerrors.ErrNoModularInverse) ||
		errors.Is(err, errDuplicatePrimes) ||
		errors.Is(err, errSelfCheck)
}

func derivePair(ctx context.Context, random io.Reader, bits, maxAttempts int) (*KeyPair, error) {
	pBits := bits - bits/2
	qBits := bits / 2

	p, err := RandomPrime(ctx, random, pBits, attemptsFor(maxAttempts, pBits))
	if err != nil {
		return nil, err
	}
	q, err := RandomPrime(ctx, random, qBits, attemptsFor(maxAttempts, qBits))
	if err != nil {
		return nil, err
	}
	if p.Cmp(q) == 0 {
		return nil, errDuplicatePrimes
	}
	return pairFromPrimes(p, q)
}

func attemptsFor(maxAttempts, bits int) int {
	if maxAttempts > 0 {
		return maxAttempts
	}
	return DefaultPrimeAttempts(bits)
}

// KeyPairFromPrimes builds the key pair for two known primes. It runs the same
// exponent search, inversion and checks as GenerateKeyPair.
//
// Returns ErrInvalidParameter if p or q is not a probable prime or p equals q.
func KeyPairFromPrimes(p, q *big.Int) (*KeyPair, error) {
	if p == nil || q == nil || !p.ProbablyPrime(millerRabinRounds) || !q.ProbablyPrime(millerRabinRounds) {
		return nil, fmt.Errorf("building key pair from non-prime factors: %w", kerrors.ErrInvalidParameter)
	}
	if p.Cmp(q) == 0 {
		return nil, fmt.Errorf("building key pair from equal factors: %w", kerrors.ErrInvalidParameter)
	}
	return pairFromPrimes(p, q)
}

func pairFromPrimes(p, q *big.Int) (*KeyPair, error) {
	modulus := new(big.Int).Mul(p, q)
	totient := new(big.Int).Mul(new(big.Int).Sub(p, one), new(big.Int).Sub(q, one))

	e, err := FindPublicExponent(totient)
	if err != nil {
		return nil, err
	}
	d, err := ModInverse(e, totient)
	if err != nil {
		return nil, err
	}

	pair := &KeyPair{
		Public:  Key{exponent: e, modulus: modulus},
		Private: Key{exponent: d, modulus: new(big.Int).Set(modulus)},
	}
	if err := checkPair(pair, totient); err != nil {
		return nil, err
	}
	return pair, nil
}

func checkPair(pair *KeyPair, totient *big.Int) error {
	product := new(big.Int).Mul(pair.Public.exponent, pair.Private.exponent)
	if product.Mod(product, totient).Cmp(one) != 0 {
		return errSelfCheck
	}

	probe := two
	encoded, err := Apply(pair.Public, probe)
	if err != nil {
		return err
	}
	decoded, err := Apply(pair.Private, encoded)
	if err != nil {
		return err
	}
	if decoded.Cmp(probe) != 0 {
		return errSelfCheck
	}
	return nil
}
