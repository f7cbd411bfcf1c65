package pwhash

import "math/bits"

const (
	init0 = 0x67452301
	init1 = 0xEFCDAB89
	init2 = 0x98BADCFE
	init3 = 0x10325476
	init4 = 0xC3D2E1F0
)

const (
	_K0 = 0x5A827999
	_K1 = 0x6ED9EBA1
	_K2 = 0x8F1BBCDC
	_K3 = 0xCA62C1D6
)

// block runs the 80 compression rounds over words 0..79 of w and adds the
// result into h. If trace is non-nil, it receives the accumulators before
// the first round and after every round.
func block(h *state, w *schedule, trace *[rounds + 1]state) {
	a, b, c, d, e := h[0], h[1], h[2], h[3], h[4]
	if trace != nil {
		trace[0] = state{a, b, c, d, e}
	}

	for i := 0; i < rounds; i++ {
		var f, k uint32
		switch {
		case i < 20:
			f = b&c | (^b)&d
			k = _K0
		case i < 40:
			f = b ^ c ^ d
			k = _K1
		case i < 60:
			f = ((b | c) & d) | (b & c)
			k = _K2
		default:
			f = b ^ c ^ d
			k = _K3
		}

		t := bits.RotateLeft32(a, 5) + f + e + w[i] + k
		a, b, c, d, e = t, a, bits.RotateLeft32(b, 30), c, d

		if trace != nil {
			trace[i+1] = state{a, b, c, d, e}
		}
	}

	h[0] += a
	h[1] += b
	h[2] += c
	h[3] += d
	h[4] += e
}
