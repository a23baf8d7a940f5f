package gmsm

import "fmt"

// userZValue computes the GM/T 0003.2 "Z" value binding an identifier to
// a public key and the curve's domain parameters: ENTL||ID||a||b||Gx||Gy||
// Px||Py hashed with SM3. It is mixed into both the signature pre-hash and
// the key agreement confirmation hashes so a signature or agreed key
// cannot be replayed against a different identity or public key.
func userZValue(userID []byte, publicKey ECPoint) ([]byte, error) {
	entlBits := len(userID) * 8
	if entlBits > 0xFFFF {
		return nil, fmt.Errorf("%w: identifier too long for a 16-bit bit-length field", ErrInvalidEncoding)
	}

	h := New()
	h.Write([]byte{byte(entlBits >> 8), byte(entlBits)})
	h.Write(userID)

	ab := SM2_A.ToBEBytes()
	bb := SM2_B.ToBEBytes()
	gxb := SM2_GX.ToBEBytes()
	gyb := SM2_GY.ToBEBytes()
	xb := publicKey.X.ToBEBytes()
	yb := publicKey.Y.ToBEBytes()
	h.Write(ab[:])
	h.Write(bb[:])
	h.Write(gxb[:])
	h.Write(gyb[:])
	h.Write(xb[:])
	h.Write(yb[:])

	return h.Sum(nil), nil
}

// defaultUserID is the identifier GM/T 0003.2 uses in its worked examples
// when an application has not negotiated one of its own.
var defaultUserID = []byte("1234567812345678")
