package pwhash

import (
	"encoding/binary"
	"math/bits"
)

const (
	// number of words in the scratch buffer
	bufferWords = BufferSize / 4
	// number of words consumed by the compression rounds
	rounds = 80
	// number of words derived by the expander
	expandSteps = rounds - 16
)

// schedule is the scratch buffer viewed as little-endian 32-bit words.
// Words 0..15 hold the password seed, 16..79 are derived by expand and
// the rest only pad the buffer out to BufferSize.
type schedule [bufferWords]uint32

// load zero-fills the buffer and copies p to offset 0.
// p must not be longer than BufferSize.
func (w *schedule) load(p []byte) {
	var buf [BufferSize]byte
	copy(buf[:], p)
	for i := range w {
		w[i] = binary.LittleEndian.Uint32(buf[i*4:])
	}
}

// expand derives words 16..79. Each step rotates the constant 1 by the low
// five bits of the mixed source words, not the mixed value by one as SHA-1
// does. Steps run in ascending order and overwrite any password bytes past
// SeedSize.
func (w *schedule) expand() {
	for i := 0; i < expandSteps; i++ {
		shift := (w[i] ^ w[i+2] ^ w[i+8] ^ w[i+13]) & 0x1f
		w[i+16] = bits.RotateLeft32(1, int(shift))
	}
}
