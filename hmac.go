package gmsm

import "crypto/hmac"

// HmacSm3 computes HMAC-SM3(key, data) using the standard library's HMAC
// construction over this package's SM3 hash.Hash implementation.
func HmacSm3(key, data []byte) []byte {
	mac := hmac.New(New, key)
	mac.Write(data)
	return mac.Sum(nil)
}
