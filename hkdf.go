package gmsm

import (
	"crypto/hmac"
	"fmt"
)

// HkdfSm3 implements RFC 5869 HKDF (extract-then-expand) over HMAC-SM3.
// salt may be nil, in which case it defaults to a zero-filled hash-length
// buffer per the RFC. length must not exceed 255*32 bytes.
func HkdfSm3(secret, salt, info []byte, length int) ([]byte, error) {
	if length <= 0 {
		return nil, fmt.Errorf("%w: hkdf output length must be positive", ErrInvalidEncoding)
	}
	if length > 255*sm3Size {
		return nil, fmt.Errorf("%w: hkdf output length %d exceeds 255*hash-length", ErrInvalidEncoding, length)
	}

	if len(salt) == 0 {
		salt = make([]byte, sm3Size)
	}
	prk := HmacSm3(salt, secret)

	var out []byte
	var previous []byte
	for counter := byte(1); len(out) < length; counter++ {
		mac := hmac.New(New, prk)
		mac.Write(previous)
		mac.Write(info)
		mac.Write([]byte{counter})
		previous = mac.Sum(nil)
		out = append(out, previous...)
	}
	return out[:length], nil
}
