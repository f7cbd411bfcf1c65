// Package pwhash computes the 160-bit password digest.
//
// The engine follows the SHA-1 round structure and constants but uses a
// modified message schedule and zero-fills a fixed 1024-byte buffer instead
// of applying length padding. It is not a general purpose cryptographic hash.
// Only the first SeedSize bytes of the lowercased password affect the digest,
// while passwords up to MaxPasswordLen bytes are accepted.
package pwhash

import (
	"crypto/subtle"
	"encoding/binary"
	"encoding/hex"
	"errors"
)

// Size is the size of a digest in bytes.
const Size = 20

// BufferSize is the size of the scratch buffer in bytes.
const BufferSize = 1024

// MaxPasswordLen is the maximum accepted length of a lowercased password in bytes.
const MaxPasswordLen = BufferSize

// SeedSize is the number of leading password bytes that influence the digest.
const SeedSize = 64

// ErrInvalidData is returned for every rejected password.
var ErrInvalidData = errors.New("pwhash: invalid data")

// Sum returns the digest of password.
// The password must be valid UTF-8.
func Sum(password []byte) ([Size]byte, error) {
	p, err := normalizeBytes(password)
	if err != nil {
		return [Size]byte{}, err
	}
	return sum(p), nil
}

// HashBytes returns the digest of password as a freshly allocated slice.
func HashBytes(password []byte) ([]byte, error) {
	d, err := Sum(password)
	if err != nil {
		return nil, err
	}
	return d[:], nil
}

// HashString returns the lowercase hex encoding of the digest of password.
func HashString(password string) (string, error) {
	p, err := normalizeString(password)
	if err != nil {
		return "", err
	}
	d := sum(p)
	return hex.EncodeToString(d[:]), nil
}

// Verify reports whether password hashes to digest.
// The comparison runs in constant time with respect to the digest contents.
func Verify(password []byte, digest []byte) (bool, error) {
	if len(digest) != Size {
		return false, invalid("digest must be %d bytes, got %d", Size, len(digest))
	}
	d, err := Sum(password)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare(d[:], digest) == 1, nil
}

func sum(p []byte) [Size]byte {
	var w schedule
	w.load(p)
	w.expand()

	h := initState()
	block(&h, &w, nil)
	return h.digest()
}

// state holds the five accumulators a, b, c, d, e.
type state [5]uint32

func initState() state {
	return state{init0, init1, init2, init3, init4}
}

func (h *state) digest() [Size]byte {
	var d [Size]byte
	for i, s := range h {
		binary.BigEndian.PutUint32(d[i*4:], s)
	}
	return d
}
