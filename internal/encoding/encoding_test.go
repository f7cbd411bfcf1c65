package encoding

import (
	"bytes"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const knownHex = "460e0af6c1828a93fe887cbe103d6ca6ab97a0e4"

func knownDigest(t *testing.T) []byte {
	t.Helper()
	d, err := hex.DecodeString(knownHex)
	require.NoError(t, err)
	return d
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Encoding
		wantErr bool
	}{
		{"", Hex, false},
		{"hex", Hex, false},
		{"HEX", Hex, false},
		{" base64 ", Base64, false},
		{"base58", Base58, false},
		{"multihash", Multihash, false},
		{"base32", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnknownEncoding))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeHex(t *testing.T) {
	s, err := Encode(knownDigest(t), Hex)
	require.NoError(t, err)
	assert.Equal(t, knownHex, s)
}

func TestEncodeMultihashPrefix(t *testing.T) {
	s, err := Encode(knownDigest(t), Multihash)
	require.NoError(t, err)
	// varint(0x300001) = 81 80 c0 01, then the digest length
	assert.True(t, strings.HasPrefix(s, "8180c00114"), s)
	assert.True(t, strings.HasSuffix(s, knownHex), s)
}

func TestDecodeEachEncoding(t *testing.T) {
	d := knownDigest(t)
	for _, enc := range All {
		t.Run(string(enc), func(t *testing.T) {
			s, err := Encode(d, enc)
			require.NoError(t, err)
			got, err := Decode(s, enc)
			require.NoError(t, err)
			assert.True(t, bytes.Equal(d, got))
		})
	}
}

func TestDecodeUppercaseHex(t *testing.T) {
	got, err := Decode(strings.ToUpper(knownHex), Hex)
	require.NoError(t, err)
	assert.Equal(t, knownDigest(t), got)
}

func TestDecodeRejects(t *testing.T) {
	_, err := Decode("abcd", Hex)
	assert.Error(t, err)
	_, err = Decode("zz", Hex)
	assert.Error(t, err)
	_, err = Decode(knownHex, Multihash)
	assert.Error(t, err)
	_, err = Decode(knownHex, "rot13")
	assert.ErrorIs(t, err, ErrUnknownEncoding)
}

func TestDetect(t *testing.T) {
	d := knownDigest(t)
	for _, enc := range All {
		s, err := Encode(d, enc)
		require.NoError(t, err)
		_, got, err := Detect(s)
		require.NoError(t, err, "encoding %s", enc)
		assert.Equal(t, d, got, "encoding %s", enc)
	}

	enc, _, err := Detect(knownHex)
	require.NoError(t, err)
	assert.Equal(t, Hex, enc)

	_, _, err = Detect("not a digest")
	assert.Error(t, err)
}
