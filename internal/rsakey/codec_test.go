package rsakey_test

import (
	"math/big"
	"testing"

	kerrors "github.com/PolarWolf314/rsakit/internal/errors"
	"github.com/PolarWolf314/rsakit/internal/rsakey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// toyPair is the textbook example: p = 61, q = 53.
func toyPair(t *testing.T) (rsakey.Key, rsakey.Key) {
	t.Helper()
	pub := rsakey.NewKey(big.NewInt(17), big.NewInt(3233))
	priv := rsakey.NewKey(big.NewInt(2753), big.NewInt(3233))
	return pub, priv
}

func TestApplyToyScenario(t *testing.T) {
	pub, priv := toyPair(t)

	encoded, err := rsakey.Apply(pub, big.NewInt(65))
	require.NoError(t, err)
	assert.Equal(t, int64(2790), encoded.Int64())

	decoded, err := rsakey.Apply(priv, big.NewInt(2790))
	require.NoError(t, err)
	assert.Equal(t, int64(65), decoded.Int64())
}

func TestApplyIsSymmetric(t *testing.T) {
	pub, priv := toyPair(t)

	for v := int64(0); v < 3233; v += 97 {
		value := big.NewInt(v)

		viaPublic, err := rsakey.Apply(pub, value)
		require.NoError(t, err)
		back, err := rsakey.Apply(priv, viaPublic)
		require.NoError(t, err)
		assert.Equal(t, v, back.Int64(), "private(public(%d))", v)

		viaPrivate, err := rsakey.Apply(priv, value)
		require.NoError(t, err)
		back, err = rsakey.Apply(pub, viaPrivate)
		require.NoError(t, err)
		assert.Equal(t, v, back.Int64(), "public(private(%d))", v)
	}
}

func TestApplyInvalidKey(t *testing.T) {
	value := big.NewInt(65)

	tests := []struct {
		name string
		key  rsakey.Key
	}{
		{"zero value", rsakey.Key{}},
		{"zero modulus", rsakey.NewKey(big.NewInt(17), big.NewInt(0))},
		{"parsed garbage", rsakey.FromString("not a key")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := rsakey.Apply(tt.key, value)
			assert.ErrorIs(t, err, kerrors.ErrInvalidKey)
			assert.Nil(t, result)
			assert.Equal(t, int64(65), value.Int64(), "input must not change")
		})
	}
}

func TestApplyRejectsBadValues(t *testing.T) {
	pub, _ := toyPair(t)

	_, err := rsakey.Apply(pub, nil)
	assert.ErrorIs(t, err, kerrors.ErrInvalidParameter)

	_, err = rsakey.Apply(pub, big.NewInt(-1))
	assert.ErrorIs(t, err, kerrors.ErrInvalidParameter)
}

func TestApplyDoesNotModifyInput(t *testing.T) {
	pub, _ := toyPair(t)
	value := big.NewInt(65)

	_, err := rsakey.Apply(pub, value)
	require.NoError(t, err)
	assert.Equal(t, int64(65), value.Int64())
}

func TestApplyMismatchedKeyIsNotFlagged(t *testing.T) {
	pub, _ := toyPair(t)
	wrong := rsakey.NewKey(big.NewInt(7), big.NewInt(3233))

	encoded, err := rsakey.Apply(pub, big.NewInt(65))
	require.NoError(t, err)

	decoded, err := rsakey.Apply(wrong, encoded)
	require.NoError(t, err)
	assert.NotEqual(t, int64(65), decoded.Int64())
}

func TestApplyBlocks(t *testing.T) {
	pub, priv := toyPair(t)

	t.Run("small value matches Apply", func(t *testing.T) {
		blocks, err := rsakey.ApplyBlocks(pub, big.NewInt(65))
		require.NoError(t, err)
		assert.Equal(t, int64(2790), blocks.Int64())
	})

	t.Run("zero stays zero", func(t *testing.T) {
		result, err := rsakey.ApplyBlocks(pub, big.NewInt(0))
		require.NoError(t, err)
		assert.Zero(t, result.Sign())
	})

	t.Run("two digits keep their order", func(t *testing.T) {
		// 65*3233 + 66: the high digit encodes to 2790 and the low digit to 524.
		value := big.NewInt(65*3233 + 66)

		encoded, err := rsakey.ApplyBlocks(pub, value)
		require.NoError(t, err)
		assert.Equal(t, int64(2790*3233+524), encoded.Int64())
		assert.Equal(t, int64(9020594), encoded.Int64())

		decoded, err := rsakey.ApplyBlocks(priv, encoded)
		require.NoError(t, err)
		assert.Equal(t, int64(210211), decoded.Int64())
	})

	t.Run("zero low digits survive", func(t *testing.T) {
		value := new(big.Int).Mul(big.NewInt(65), new(big.Int).Exp(big.NewInt(3233), big.NewInt(2), nil))

		encoded, err := rsakey.ApplyBlocks(pub, value)
		require.NoError(t, err)
		want := new(big.Int).Mul(big.NewInt(2790), new(big.Int).Exp(big.NewInt(3233), big.NewInt(2), nil))
		assert.Equal(t, 0, encoded.Cmp(want))

		decoded, err := rsakey.ApplyBlocks(priv, encoded)
		require.NoError(t, err)
		assert.Equal(t, 0, decoded.Cmp(value))
	})

	t.Run("large value round trips", func(t *testing.T) {
		value, ok := new(big.Int).SetString("123456789012345678901234567890", 10)
		require.True(t, ok)

		encoded, err := rsakey.ApplyBlocks(pub, value)
		require.NoError(t, err)
		assert.NotEqual(t, 0, encoded.Cmp(value))

		decoded, err := rsakey.ApplyBlocks(priv, encoded)
		require.NoError(t, err)
		assert.Equal(t, 0, decoded.Cmp(value))
	})

	t.Run("modulus of one", func(t *testing.T) {
		_, err := rsakey.ApplyBlocks(rsakey.NewKey(big.NewInt(3), big.NewInt(1)), big.NewInt(5))
		assert.ErrorIs(t, err, kerrors.ErrInvalidKey)
	})

	t.Run("invalid key", func(t *testing.T) {
		_, err := rsakey.ApplyBlocks(rsakey.Key{}, big.NewInt(5))
		assert.ErrorIs(t, err, kerrors.ErrInvalidKey)
	})
}
