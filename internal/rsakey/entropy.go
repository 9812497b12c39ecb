package rsakey

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/chacha20"
)

const seedDomain = "rsakit seed stream v1"

// NewRandomSource returns the random bit source for one key generation.
//
// With no seeds it returns crypto/rand.Reader. Otherwise the seeds are hashed
// with BLAKE2b-256 into a ChaCha20 key and the returned reader yields that
// cipher's keystream, so the same seeds always produce the same primes. Every
// call returns an independent reader.
func NewRandomSource(seeds []int64) (io.Reader, error) {
	if len(seeds) == 0 {
		return rand.Reader, nil
	}

	material := make([]byte, 0, len(seedDomain)+8*len(seeds))
	material = append(material, seedDomain...)
	for _, seed := range seeds {
		material = binary.LittleEndian.AppendUint64(material, uint64(seed))
	}
	key := blake2b.Sum256(material)

	cipher, err := chacha20.NewUnauthenticatedCipher(key[:], make([]byte, chacha20.NonceSize))
	if err != nil {
		return nil, fmt.Errorf("creating seeded stream: %w", err)
	}
	return &seededStream{cipher: cipher}, nil
}

type seededStream struct {
	cipher *chacha20.Cipher
}

func (s *seededStream) Read(p []byte) (int, error) {
	clear(p)
	s.cipher.XORKeyStream(p, p)
	return len(p), nil
}
