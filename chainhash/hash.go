// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chainhash provides abstracted hash functionality for the braided
// chain. It fixes the hash algorithm used throughout the MerkleLog and
// header-index packages to truncated SHA-512 (SHA-512/256) and exposes a
// fixed-width hash type so the rest of the module never imports
// crypto/sha512 directly.
package chainhash

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
)

// HashSize is the size, in bytes, of a SHA-512/256 digest.
const HashSize = 32

// Hash is a fixed-width, content-addressed digest. The zero value is the
// all-zero hash, not the digest of any input.
type Hash [HashSize]byte

// String returns the Hash as the hexadecimal string of the byte-reversed
// hash, matching the convention most chain explorers use for block hashes.
func (h Hash) String() string {
	return hex.EncodeToString(reversed(h))
}

// MarshalText implements encoding.TextMarshaler.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Hash) UnmarshalText(text []byte) error {
	decoded, err := hex.DecodeString(string(text))
	if err != nil {
		return fmt.Errorf("chainhash: invalid hex: %w", err)
	}
	if len(decoded) != HashSize {
		return fmt.Errorf("chainhash: invalid hash length %d, want %d", len(decoded), HashSize)
	}
	for i := 0; i < HashSize; i++ {
		h[i] = decoded[HashSize-1-i]
	}
	return nil
}

// IsEqual returns whether h and other represent the same digest. A nil
// pointer is treated as not equal to anything but another nil pointer.
func (h *Hash) IsEqual(other *Hash) bool {
	if h == nil && other == nil {
		return true
	}
	if h == nil || other == nil {
		return false
	}
	return *h == *other
}

// CloneBytes returns a newly allocated copy of the hash bytes, in
// big-endian (natural digest) order.
func (h Hash) CloneBytes() []byte {
	out := make([]byte, HashSize)
	copy(out, h[:])
	return out
}

func reversed(h Hash) []byte {
	out := make([]byte, HashSize)
	for i := 0; i < HashSize; i++ {
		out[i] = h[HashSize-1-i]
	}
	return out
}

// HashH computes the SHA-512/256 digest of b.
func HashH(b []byte) Hash {
	sum := sha512.Sum512_256(b)
	return Hash(sum)
}

// NewHashFromBytes copies the given big-endian digest bytes into a Hash. It
// returns an error if the input is not exactly HashSize bytes.
func NewHashFromBytes(b []byte) (Hash, error) {
	var h Hash
	if len(b) != HashSize {
		return h, fmt.Errorf("chainhash: invalid hash length %d, want %d", len(b), HashSize)
	}
	copy(h[:], b)
	return h, nil
}
