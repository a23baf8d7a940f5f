package gmsm

import (
	"crypto/rand"
	"fmt"
	"io"
)

// readFullRandom fills b from the platform CSPRNG. It is the single choke
// point every key/nonce draw in this package goes through; there is no
// fallback to a weaker generator on short reads, per the reference bug this
// design explicitly avoids (a wall-clock-seeded PRNG is not an acceptable
// substitute).
func readFullRandom(b []byte) error {
	n, err := io.ReadFull(rand.Reader, b)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRngFailure, err)
	}
	if n != len(b) {
		return fmt.Errorf("%w: got %d of %d bytes", ErrRngFailure, n, len(b))
	}
	return nil
}

// randomScalar draws a uniform value in [1, max) from the CSPRNG, retrying
// on the (vanishingly rare) zero draw. max is the group order for SM2
// ephemeral/private scalars.
func randomScalar(max *BigInt256) (BigInt256, error) {
	for {
		var b [32]byte
		if err := readFullRandom(b[:]); err != nil {
			return BigInt256{}, err
		}
		k := BigInt256FromBEBytes(b[:])
		if k.IsZero() || k.Compare(max) >= 0 {
			continue
		}
		return k, nil
	}
}
