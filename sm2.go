package gmsm

import (
	"crypto/subtle"
	"fmt"
)

// SignatureFormat selects how an SM2 signature is serialized.
type SignatureFormat int

const (
	// SignatureRaw concatenates r and s as two 32-byte big-endian fields.
	SignatureRaw SignatureFormat = iota
	// SignatureDER wraps r and s in a DER SEQUENCE of two INTEGERs.
	SignatureDER
)

// Layout selects the field ordering of an SM2 ciphertext.
type Layout int

const (
	// LayoutC1C3C2 is the layout mandated by the current standard.
	LayoutC1C3C2 Layout = iota
	// LayoutC1C2C3 is the legacy layout, still read for interoperability.
	LayoutC1C2C3
)

// SignOptions configures Sign and Verify.
type SignOptions struct {
	// ID is the signer's identifier mixed into the Z-value. Defaults to
	// "1234567812345678" when nil.
	ID []byte
	// Hash selects whether msg is the raw message to be Z-prefixed and
	// hashed (true, the default meaning callers should pass) or is
	// already the 32-byte SM3(Z||message) digest computed externally
	// (false). This exists for callers that compute Z out of band.
	Hash bool
	// Format selects raw or DER signature serialization.
	Format SignatureFormat
}

// DefaultSignOptions returns the conventional options: default ID,
// hash=true, raw serialization.
func DefaultSignOptions() SignOptions {
	return SignOptions{Hash: true, Format: SignatureRaw}
}

// GenerateKeyPair draws a private scalar from the CSPRNG and derives its
// public point, returning both as big-endian hex.
func GenerateKeyPair() (privateKeyHex, publicKeyHex string, err error) {
	d, err := randomScalar(&SM2_N)
	if err != nil {
		return "", "", err
	}
	p := ECPointGenerator().Multiply(&d)
	return d.ToHex(), BytesToHex(p.ToEncoded()), nil
}

func sm2MessageDigest(msg []byte, id []byte, hashFirst bool, publicKey ECPoint) (BigInt256, error) {
	if !hashFirst {
		if len(msg) != sm3Size {
			return BigInt256{}, fmt.Errorf("%w: pre-hashed message must be %d bytes, got %d", ErrInvalidEncoding, sm3Size, len(msg))
		}
		return BigInt256FromBEBytes(msg), nil
	}
	if id == nil {
		id = defaultUserID
	}
	z, err := userZValue(id, publicKey)
	if err != nil {
		return BigInt256{}, err
	}
	digest := Sm3Sum(concat(z, msg))
	return BigInt256FromBEBytes(digest[:]), nil
}

// Sign computes an SM2 signature over msg with private key d, per GM/T
// 0003.2. The k-sampling retry loop runs a variable number of iterations,
// an acknowledged and bounded timing side channel (each iteration's
// probability of retry is negligible, but the loop's existence is visible).
func Sign(msg, privateKey []byte, opts SignOptions) ([]byte, error) {
	d := BigInt256FromBEBytes(privateKey)
	if d.IsZero() || d.Compare(&SM2_N) >= 0 {
		return nil, fmt.Errorf("%w: private key out of range", ErrInvalidKey)
	}
	publicKey := ECPointGenerator().Multiply(&d)

	e, err := sm2MessageDigest(msg, opts.ID, opts.Hash, publicKey)
	if err != nil {
		return nil, err
	}

	dPlus1, _ := d.Add(&bigOne)
	dPlus1Inv := dPlus1.ModInverse(&SM2_N)

	for {
		k, err := randomScalar(&SM2_N)
		if err != nil {
			return nil, err
		}

		kp := ECPointGenerator().Multiply(&k)
		x1 := kp.X.ToBigInt()

		r := e.ModAdd(&x1, &SM2_N)
		if r.IsZero() {
			continue
		}
		rk, _ := r.Add(&k)
		if rk == SM2_N {
			continue
		}

		rd := r.ModMul(&d, &SM2_N)
		kMinusRD := k.ModSub(&rd, &SM2_N)
		s := kMinusRD.ModMul(&dPlus1Inv, &SM2_N)
		if s.IsZero() {
			continue
		}

		return encodeSignature(r, s, opts.Format), nil
	}
}

func encodeSignature(r, s BigInt256, format SignatureFormat) []byte {
	if format == SignatureDER {
		return marshalDERSignature(r, s)
	}
	rb := r.ToBEBytes()
	sb := s.ToBEBytes()
	return concat(rb[:], sb[:])
}

func decodeSignature(sig []byte, format SignatureFormat) (r, s BigInt256, err error) {
	if format == SignatureDER {
		return unmarshalDERSignature(sig)
	}
	if len(sig) != 64 {
		return BigInt256{}, BigInt256{}, fmt.Errorf("%w: raw signature must be 64 bytes, got %d", ErrInvalidEncoding, len(sig))
	}
	return BigInt256FromBEBytes(sig[:32]), BigInt256FromBEBytes(sig[32:]), nil
}

// Verify checks an SM2 signature over msg against the given public key.
// It reports false (never panics) on any malformed input.
func Verify(msg, sig, publicKey []byte, opts SignOptions) bool {
	pub, err := ECPointFromEncoded(publicKey)
	if err != nil || !pub.IsOnCurve() || pub.Infinity {
		return false
	}

	r, s, err := decodeSignature(sig, opts.Format)
	if err != nil {
		return false
	}
	if r.IsZero() || r.Compare(&SM2_N) >= 0 {
		return false
	}
	if s.IsZero() || s.Compare(&SM2_N) >= 0 {
		return false
	}

	e, err := sm2MessageDigest(msg, opts.ID, opts.Hash, pub)
	if err != nil {
		return false
	}

	t := r.ModAdd(&s, &SM2_N)
	if t.IsZero() {
		return false
	}

	sg := ECPointGenerator().Multiply(&s)
	tp := pub.Multiply(&t)
	point := sg.Add(tp)
	if point.Infinity {
		return false
	}

	px := point.X.ToBigInt()
	computedR := e.ModAdd(&px, &SM2_N)
	return r == computedR
}

// Encrypt encrypts msg under the given public key per GM/T 0003.4, with
// the requested field layout.
func Encrypt(msg, publicKey []byte, layout Layout) ([]byte, error) {
	if len(msg) == 0 {
		return nil, fmt.Errorf("%w: plaintext must not be empty", ErrInvalidEncoding)
	}
	pub, err := ECPointFromEncoded(publicKey)
	if err != nil {
		return nil, err
	}
	if !pub.IsOnCurve() || pub.Infinity {
		return nil, fmt.Errorf("%w: public key not on curve", ErrInvalidKey)
	}

	for {
		k, err := randomScalar(&SM2_N)
		if err != nil {
			return nil, err
		}

		c1 := ECPointGenerator().Multiply(&k)
		p2 := pub.Multiply(&k)
		if p2.Infinity {
			continue
		}

		x2b := p2.X.ToBEBytes()
		y2b := p2.Y.ToBEBytes()
		t := sm2Kdf(len(msg), x2b[:], y2b[:])
		if isAllZero(t) {
			continue
		}

		c2 := make([]byte, len(msg))
		for i := range msg {
			c2[i] = msg[i] ^ t[i]
		}

		c3 := Sm3Sum(concat(x2b[:], msg, y2b[:]))

		c1Enc := c1.ToEncoded()
		switch layout {
		case LayoutC1C2C3:
			return concat(c1Enc, c2, c3[:]), nil
		default:
			return concat(c1Enc, c3[:], c2), nil
		}
	}
}

// Decrypt decrypts ct under the given private key, reading the requested
// field layout.
func Decrypt(ct, privateKey []byte, layout Layout) ([]byte, error) {
	if len(ct) < 65+sm3Size+1 {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrInvalidCiphertext)
	}

	c1, err := ECPointFromEncoded(ct[:65])
	if err != nil {
		return nil, err
	}
	if !c1.IsOnCurve() || c1.Infinity {
		return nil, fmt.Errorf("%w: C1 not a valid curve point", ErrInvalidCiphertext)
	}

	rest := ct[65:]
	var c2, c3 []byte
	switch layout {
	case LayoutC1C2C3:
		c2 = rest[:len(rest)-sm3Size]
		c3 = rest[len(rest)-sm3Size:]
	default:
		c3 = rest[:sm3Size]
		c2 = rest[sm3Size:]
	}

	d := BigInt256FromBEBytes(privateKey)
	if d.IsZero() || d.Compare(&SM2_N) >= 0 {
		return nil, fmt.Errorf("%w: private key out of range", ErrInvalidKey)
	}

	p2 := c1.Multiply(&d)
	if p2.Infinity {
		return nil, fmt.Errorf("%w: d*C1 is the point at infinity", ErrInvalidCiphertext)
	}

	x2b := p2.X.ToBEBytes()
	y2b := p2.Y.ToBEBytes()
	t := sm2Kdf(len(c2), x2b[:], y2b[:])
	if isAllZero(t) {
		return nil, fmt.Errorf("%w: kdf output is all zero", ErrInvalidCiphertext)
	}

	msg := make([]byte, len(c2))
	for i := range c2 {
		msg[i] = c2[i] ^ t[i]
	}

	computedC3 := Sm3Sum(concat(x2b[:], msg, y2b[:]))
	if subtle.ConstantTimeCompare(computedC3[:], c3) != 1 {
		return nil, fmt.Errorf("%w: integrity tag mismatch", ErrInvalidCiphertext)
	}

	return msg, nil
}

// ECDH returns the X coordinate of d*P, a convenience for callers that
// want a static Diffie-Hellman shared value rather than the full
// authenticated key agreement protocol.
func ECDH(privateKey, publicKey []byte) ([32]byte, error) {
	d := BigInt256FromBEBytes(privateKey)
	if d.IsZero() || d.Compare(&SM2_N) >= 0 {
		return [32]byte{}, fmt.Errorf("%w: private key out of range", ErrInvalidKey)
	}
	pub, err := ECPointFromEncoded(publicKey)
	if err != nil {
		return [32]byte{}, err
	}
	if !pub.IsOnCurve() || pub.Infinity {
		return [32]byte{}, fmt.Errorf("%w: public key not on curve", ErrInvalidKey)
	}
	shared := pub.Multiply(&d)
	if shared.Infinity {
		return [32]byte{}, fmt.Errorf("%w: d*P is the point at infinity", ErrInvalidKey)
	}
	return shared.X.ToBEBytes(), nil
}
