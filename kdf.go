package gmsm

// sm2Kdf implements the GM/T 0003.4 key derivation function: a counter-mode
// hash expansion of a point's affine coordinates, used by SM2 encryption
// and key agreement alike.
func sm2Kdf(keyLen int, parts ...[]byte) []byte {
	result := make([]byte, keyLen)
	blocks := (keyLen + sm3Size - 1) / sm3Size
	ct := uint32(1)

	for i := 0; i < blocks; i++ {
		h := New()
		for _, p := range parts {
			h.Write(p)
		}
		var ctBytes [4]byte
		ctBytes[0] = byte(ct >> 24)
		ctBytes[1] = byte(ct >> 16)
		ctBytes[2] = byte(ct >> 8)
		ctBytes[3] = byte(ct)
		h.Write(ctBytes[:])
		digest := h.Sum(nil)

		start := i * sm3Size
		end := start + sm3Size
		if end > keyLen {
			end = keyLen
		}
		copy(result[start:end], digest[:end-start])
		ct++
	}
	return result
}

// isAllZero reports whether b consists entirely of zero bytes; SM2
// encryption discards a KDF output matching this and redraws its
// ephemeral scalar, since an all-zero key stream would make C2 equal to
// the plaintext.
func isAllZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
