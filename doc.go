// Package gmsm implements the Chinese commercial cryptography suite
// standardized in GM/T 0003 (SM2), GM/T 0004 (SM3) and GM/T 0002 (SM4).
//
// The package is byte-oriented: every cryptographic operation takes and
// returns byte buffers (or the hex encoding of one), and none of it retains
// a reference to a caller's slice beyond the call. SM3 is exposed as a
// standard library hash.Hash so it composes with crypto/hmac; SM4 is
// exposed as a crypto/cipher.Block so it composes with crypto/cipher's CBC
// mode. SM2 scalar and field arithmetic is built on a fixed 256-bit limb
// type rather than math/big, since both quantities involved (the SM2 prime
// field and its scalar field) are a known, fixed width.
package gmsm
