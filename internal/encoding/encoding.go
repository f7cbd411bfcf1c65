// Package encoding renders digests as text and parses them back.
package encoding

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	b58 "github.com/mr-tron/base58/base58"
	"github.com/multiformats/go-multihash"

	"github.com/autobrr/pwdigest/internal/pwhash"
)

// Encoding names a textual digest representation.
type Encoding string

const (
	Hex       Encoding = "hex"
	Base64    Encoding = "base64"
	Base58    Encoding = "base58"
	Multihash Encoding = "multihash"
)

// MultihashCode is the multicodec code used to tag digests. It lies in the
// private use range since the digest is not a registered hash function.
const MultihashCode = 0x300001

// All lists the supported encodings in detection order.
var All = []Encoding{Hex, Multihash, Base64, Base58}

var ErrUnknownEncoding = errors.New("unknown encoding")

// Parse matches a name to an encoding. The empty string selects Hex.
func Parse(name string) (Encoding, error) {
	if name == "" {
		return Hex, nil
	}
	enc := Encoding(strings.ToLower(strings.TrimSpace(name)))
	for _, e := range All {
		if e == enc {
			return e, nil
		}
	}
	return "", fmt.Errorf("%w %q (want one of %s)", ErrUnknownEncoding, name, names())
}

func names() string {
	s := make([]string, len(All))
	for i, e := range All {
		s[i] = string(e)
	}
	return strings.Join(s, ", ")
}

// Encode renders digest using enc.
func Encode(digest []byte, enc Encoding) (string, error) {
	switch enc {
	case Hex, "":
		return hex.EncodeToString(digest), nil
	case Base64:
		return base64.StdEncoding.EncodeToString(digest), nil
	case Base58:
		return b58.Encode(digest), nil
	case Multihash:
		// "The error return is legacy; it is always nil."
		mh, _ := multihash.Encode(digest, MultihashCode)
		return hex.EncodeToString(mh), nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownEncoding, string(enc))
	}
}

// Decode parses s as a digest in encoding enc.
// The result must be exactly pwhash.Size bytes long.
func Decode(s string, enc Encoding) ([]byte, error) {
	s = strings.TrimSpace(s)
	var (
		d   []byte
		err error
	)
	switch enc {
	case Hex, "":
		d, err = hex.DecodeString(s)
	case Base64:
		d, err = base64.StdEncoding.DecodeString(s)
	case Base58:
		d, err = b58.Decode(s)
	case Multihash:
		d, err = decodeMultihash(s)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownEncoding, string(enc))
	}
	if err != nil {
		return nil, fmt.Errorf("invalid %s digest: %w", enc, err)
	}
	if len(d) != pwhash.Size {
		return nil, fmt.Errorf("invalid %s digest: got %d bytes, want %d", enc, len(d), pwhash.Size)
	}
	return d, nil
}

func decodeMultihash(s string) ([]byte, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	dm, err := multihash.Decode(raw)
	if err != nil {
		return nil, err
	}
	if dm.Code != MultihashCode {
		return nil, fmt.Errorf("unexpected multihash code %#x", dm.Code)
	}
	return dm.Digest, nil
}

// Detect tries every encoding in order and returns the first one that
// yields a digest of the right size.
func Detect(s string) (Encoding, []byte, error) {
	for _, enc := range All {
		if d, err := Decode(s, enc); err == nil {
			return enc, d, nil
		}
	}
	return "", nil, fmt.Errorf("could not detect encoding of %q", s)
}
