package gmsm

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// BytesToHex returns the lowercase hex encoding of b.
func BytesToHex(b []byte) string {
	return hex.EncodeToString(b)
}

// HexToBytes decodes a hex string, tolerant of a leading 0x/0X and of
// uppercase digits. It fails with ErrInvalidEncoding on an odd-length or
// non-hex string.
func HexToBytes(s string) ([]byte, error) {
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	return b, nil
}

// Utf8ToBytes is the identity conversion from a UTF-8 string to its byte
// representation; it exists so callers never need to reach past this
// package's API for the trivial string<->[]byte conversions spec.md treats
// as convenience encodings.
func Utf8ToBytes(s string) []byte {
	return []byte(s)
}

// BytesToUtf8 returns the UTF-8 string represented by b.
func BytesToUtf8(b []byte) string {
	return string(b)
}

// concat returns a single buffer holding the concatenation of parts, with
// no aliasing of any input slice.
func concat(parts ...[]byte) []byte {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]byte, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
