package rsakey

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	kerrors "github.com/PolarWolf314/rsakit/internal/errors"
	"golang.org/x/crypto/blake2b"
)

// Separator delimits the exponent and modulus in serialized key text.
const Separator = ","

const fingerprintSize = 16

// String encodes the key as "<hex-exponent>,<hex-modulus>" using lowercase
// base-16 digits. FromString reverses it.
func (k Key) String() string {
	return orZero(k.exponent).Text(16) + Separator + orZero(k.modulus).Text(16)
}

// FromString decodes text produced by Key.String.
//
// Parsing is lenient: it never fails. Text that does not split into exactly two
// base-16 fields yields the invalid zero key, so callers must check IsValid.
// Digits are case-insensitive and whitespace around each field is ignored.
func FromString(text string) Key {
	fields := strings.Split(strings.TrimSpace(text), Separator)
	if len(fields) != 2 {
		return Key{}
	}
	exponent, ok := parseHex(fields[0])
	if !ok {
		return Key{}
	}
	modulus, ok := parseHex(fields[1])
	if !ok {
		return Key{}
	}
	return Key{exponent: exponent, modulus: modulus}
}

// ParseKey is the strict form of FromString.
// Returns ErrInvalidKey if the text does not decode to a valid key.
func ParseKey(text string) (Key, error) {
	key := FromString(text)
	if !key.IsValid() {
		return Key{}, fmt.Errorf("parsing key text: %w", kerrors.ErrInvalidKey)
	}
	return key, nil
}

func parseHex(field string) (*big.Int, bool) {
	field = strings.TrimSpace(field)
	if field == "" || field[0] == '-' || field[0] == '+' {
		return nil, false
	}
	return new(big.Int).SetString(field, 16)
}

// MarshalText implements encoding.TextMarshaler.
func (k Key) MarshalText() ([]byte, error) {
	if !k.IsValid() {
		return nil, fmt.Errorf("marshalling key: %w", kerrors.ErrInvalidKey)
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unlike FromString it
// rejects text that does not decode to a valid key.
func (k *Key) UnmarshalText(text []byte) error {
	key, err := ParseKey(string(text))
	if err != nil {
		return err
	}
	*k = key
	return nil
}

// Fingerprint returns a short, colon-separated digest of the serialized key.
// Invalid keys have an empty fingerprint.
func (k Key) Fingerprint() string {
	if !k.IsValid() {
		return ""
	}
	sum := blake2b.Sum256([]byte(k.String()))
	digits := hex.EncodeToString(sum[:fingerprintSize])

	var b strings.Builder
	for i := 0; i < len(digits); i += 2 {
		if i > 0 {
			b.WriteByte(':')
		}
		b.WriteString(digits[i : i+2])
	}
	return b.String()
}
