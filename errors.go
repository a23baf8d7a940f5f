package gmsm

import "errors"

// Error categories returned by this package. Callers should test against
// these with errors.Is rather than comparing strings; call sites wrap them
// with fmt.Errorf("%w: ...") to add detail without losing the category.
var (
	// ErrInvalidEncoding is returned for malformed hex, a wrong-length byte
	// buffer, or an unrecognized elliptic-curve point prefix.
	ErrInvalidEncoding = errors.New("gmsm: invalid encoding")

	// ErrInvalidKey is returned for a private key outside [1, n-1], a public
	// key not on the curve, or a public key equal to the point at infinity.
	ErrInvalidKey = errors.New("gmsm: invalid key")

	// ErrInvalidField is returned for inversion of zero or a square root of
	// a non quadratic residue.
	ErrInvalidField = errors.New("gmsm: invalid field operation")

	// ErrInvalidPadding is returned when SM4 decryption's PKCS#7 padding
	// check fails.
	ErrInvalidPadding = errors.New("gmsm: invalid padding")

	// ErrInvalidCiphertext is returned when SM2 decryption's integrity tag
	// does not match, or the KDF output was all-zero.
	ErrInvalidCiphertext = errors.New("gmsm: invalid ciphertext")

	// ErrRngFailure is returned when the CSPRNG produced fewer bytes than
	// requested. It is never downgraded to a lower-quality generator.
	ErrRngFailure = errors.New("gmsm: rng failure")
)
