package rsakey_test

import (
	"context"
	"errors"
	"math/big"
	"strconv"
	"testing"

	kerrors "github.com/PolarWolf314/rsakit/internal/errors"
	"github.com/PolarWolf314/rsakit/internal/rsakey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateKeyPairRoundTrip(t *testing.T) {
	for _, bits := range []int{16, 17, 32, 63, 64, 128, 256, 512} {
		t.Run(strconv.Itoa(bits), func(t *testing.T) {
			pub, priv, err := rsakey.CreateKeyPair(bits, int64(bits), 99)
			require.NoError(t, err)

			require.True(t, pub.IsValid())
			require.True(t, priv.IsValid())
			assert.True(t, pub.SharesModulus(priv))
			assert.Equal(t, bits, pub.BitLen())

			modulus := pub.Modulus()
			values := []*big.Int{
				big.NewInt(0),
				big.NewInt(1),
				big.NewInt(2),
				new(big.Int).Sub(modulus, big.NewInt(1)),
				new(big.Int).Rsh(modulus, 1),
			}
			for _, v := range values {
				encoded, err := rsakey.Apply(pub, v)
				require.NoError(t, err)
				decoded, err := rsakey.Apply(priv, encoded)
				require.NoError(t, err)
				assert.Equal(t, 0, decoded.Cmp(v), "private(public(%v))", v)

				signed, err := rsakey.Apply(priv, v)
				require.NoError(t, err)
				verified, err := rsakey.Apply(pub, signed)
				require.NoError(t, err)
				assert.Equal(t, 0, verified.Cmp(v), "public(private(%v))", v)
			}
		})
	}
}

func TestCreateKeyPairWithoutSeeds(t *testing.T) {
	pub, priv, err := rsakey.CreateKeyPair(128)
	require.NoError(t, err)
	assert.True(t, rsakey.KeyPair{Public: pub, Private: priv}.Valid())
}

func TestCreateKeyPairSeedsAreDeterministic(t *testing.T) {
	pubA, privA, err := rsakey.CreateKeyPair(128, 1, 2, 3)
	require.NoError(t, err)
	pubB, privB, err := rsakey.CreateKeyPair(128, 1, 2, 3)
	require.NoError(t, err)
	pubC, _, err := rsakey.CreateKeyPair(128, 3, 2, 1)
	require.NoError(t, err)

	assert.True(t, pubA.Equal(pubB))
	assert.True(t, privA.Equal(privB))
	assert.False(t, pubA.SharesModulus(pubC))
}

func TestCreateKeyPairBelowMinimum(t *testing.T) {
	for _, bits := range []int{-1, 0, 1, 8, rsakey.MinBits - 1} {
		pub, priv, err := rsakey.CreateKeyPair(bits)
		assert.ErrorIs(t, err, kerrors.ErrInvalidParameter, "bits=%d", bits)
		assert.False(t, pub.IsValid())
		assert.False(t, priv.IsValid())
	}
}

func TestKeyPairFromPrimesToyScenario(t *testing.T) {
	pair, err := rsakey.KeyPairFromPrimes(big.NewInt(61), big.NewInt(53))
	require.NoError(t, err)

	assert.Equal(t, int64(3233), pair.Public.Modulus().Int64())
	assert.Equal(t, int64(17), pair.Public.Exponent().Int64())
	assert.Equal(t, int64(2753), pair.Private.Exponent().Int64())
	assert.True(t, pair.Valid())
}

func TestKeyPairFromPrimesExponentIsCoprime(t *testing.T) {
	p, _ := new(big.Int).SetString("340282366920938463463374607431768211297", 10)
	q, _ := new(big.Int).SetString("170141183460469231731687303715884105727", 10)

	pair, err := rsakey.KeyPairFromPrimes(p, q)
	require.NoError(t, err)

	totient := new(big.Int).Mul(new(big.Int).Sub(p, big.NewInt(1)), new(big.Int).Sub(q, big.NewInt(1)))
	gcd := new(big.Int).GCD(nil, nil, pair.Public.Exponent(), totient)
	assert.Equal(t, int64(1), gcd.Int64())

	product := new(big.Int).Mul(pair.Public.Exponent(), pair.Private.Exponent())
	assert.Equal(t, int64(1), product.Mod(product, totient).Int64())
}

func TestKeyPairFromPrimesRejectsBadFactors(t *testing.T) {
	_, err := rsakey.KeyPairFromPrimes(big.NewInt(61), big.NewInt(61))
	assert.ErrorIs(t, err, kerrors.ErrInvalidParameter)

	_, err = rsakey.KeyPairFromPrimes(big.NewInt(60), big.NewInt(53))
	assert.ErrorIs(t, err, kerrors.ErrInvalidParameter)

	_, err = rsakey.KeyPairFromPrimes(nil, big.NewInt(53))
	assert.ErrorIs(t, err, kerrors.ErrInvalidParameter)
}

func TestGenerateKeyPairExhaustsRetries(t *testing.T) {
	pair, err := rsakey.GenerateKeyPair(context.Background(), rsakey.GenerateOptions{
		Bits:             32,
		Random:           constantReader(0xff),
		MaxPrimeAttempts: 3,
		MaxRetries:       2,
	})
	assert.Nil(t, pair)
	assert.ErrorIs(t, err, kerrors.ErrGenerationFailed)
	assert.ErrorIs(t, err, kerrors.ErrPrimeSearchExhausted)
}

func TestGenerateKeyPairDuplicatePrimesFail(t *testing.T) {
	// A zero stream makes both 8-bit primes 193.
	pair, err := rsakey.GenerateKeyPair(context.Background(), rsakey.GenerateOptions{
		Bits:       16,
		Random:     constantReader(0),
		MaxRetries: 3,
	})
	assert.Nil(t, pair)
	assert.ErrorIs(t, err, kerrors.ErrGenerationFailed)
}

func TestGenerateKeyPairRandomFailureIsNotRetried(t *testing.T) {
	boom := errors.New("entropy unavailable")
	reads := 0
	pair, err := rsakey.GenerateKeyPair(context.Background(), rsakey.GenerateOptions{
		Bits:   64,
		Random: failingReader{err: boom, reads: &reads},
	})
	assert.Nil(t, pair)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, kerrors.ErrGenerationFailed)
	assert.Equal(t, 1, reads)
}

func TestGenerateKeyPairCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pair, err := rsakey.GenerateKeyPair(ctx, rsakey.GenerateOptions{Bits: 512})
	assert.Nil(t, pair)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, kerrors.ErrGenerationFailed)
}

func TestGenerateKeyPairRejectsNegativeBudgets(t *testing.T) {
	_, err := rsakey.GenerateKeyPair(context.Background(), rsakey.GenerateOptions{Bits: 64, MaxRetries: -1})
	assert.ErrorIs(t, err, kerrors.ErrInvalidParameter)

	_, err = rsakey.GenerateKeyPair(context.Background(), rsakey.GenerateOptions{Bits: 64, MaxPrimeAttempts: -1})
	assert.ErrorIs(t, err, kerrors.ErrInvalidParameter)
}

func TestGenerateKeyPairLogsProgress(t *testing.T) {
	log := &recordingLogger{}
	_, err := rsakey.GenerateKeyPair(context.Background(), rsakey.GenerateOptions{
		Bits:   64,
		Seeds:  []int64{5},
		Logger: log,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, log.messages)
}

type failingReader struct {
	err   error
	reads *int
}

func (r failingReader) Read([]byte) (int, error) {
	*r.reads++
	return 0, r.err
}

type recordingLogger struct {
	messages []string
}

func (l *recordingLogger) Debugf(msg string, args ...any) {
	l.messages = append(l.messages, msg)
}
