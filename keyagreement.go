package gmsm

import "fmt"

// sm2KeyAgreementW is 2^127, half the bit length of the SM2 scalar order
// rounded per GM/T 0003.3's w = ceil(ceil(log2 n)/2) - 1 = 127.
var sm2KeyAgreementW = BigInt256{limbs: [4]uint64{0, 0x8000000000000000, 0, 0}}

// sm2KeyAgreementWMask is 2^127 - 1.
var sm2KeyAgreementWMask = BigInt256{limbs: [4]uint64{0xFFFFFFFFFFFFFFFF, 0x7FFFFFFFFFFFFFFF, 0, 0}}

// KeyPair is an unparsed (private, public) pair used at the key agreement
// API boundary, where both the static and ephemeral keys of each party
// are passed as plain byte buffers.
type KeyPair struct {
	PrivateKey []byte
	PublicKey  []byte
}

func sm2TruncatedX(x BigInt256) BigInt256 {
	masked := x.And(&sm2KeyAgreementWMask)
	result, _ := sm2KeyAgreementW.Add(&masked)
	return result
}

// CalculateSharedKey runs the GM/T 0003.3 two-party authenticated key
// agreement derivation for one side of the exchange. own/ownEphemeral are
// this party's static and ephemeral keypairs; peerPublic/peerEphemeralPublic
// are the other party's static and ephemeral public keys. Both sides hash
// ZA‖ZB, where A is always the initiator regardless of which side is
// computing; isRecipient tells this party it is the responder, so its own
// Z-value goes second (ZPeer‖ZOwn) instead of first (ZOwn‖ZPeer).
func CalculateSharedKey(own, ownEphemeral KeyPair, peerPublic, peerEphemeralPublic []byte, keyLen int, isRecipient bool, ownID, peerID []byte) ([]byte, error) {
	d := BigInt256FromBEBytes(own.PrivateKey)
	if d.IsZero() || d.Compare(&SM2_N) >= 0 {
		return nil, fmt.Errorf("%w: static private key out of range", ErrInvalidKey)
	}
	r := BigInt256FromBEBytes(ownEphemeral.PrivateKey)
	if r.IsZero() || r.Compare(&SM2_N) >= 0 {
		return nil, fmt.Errorf("%w: ephemeral private key out of range", ErrInvalidKey)
	}

	ownPub, err := ECPointFromEncoded(own.PublicKey)
	if err != nil {
		return nil, err
	}
	ownEphPub, err := ECPointFromEncoded(ownEphemeral.PublicKey)
	if err != nil {
		return nil, err
	}
	peerPub, err := ECPointFromEncoded(peerPublic)
	if err != nil {
		return nil, err
	}
	peerEphPub, err := ECPointFromEncoded(peerEphemeralPublic)
	if err != nil {
		return nil, err
	}
	if !peerPub.IsOnCurve() || peerPub.Infinity || !peerEphPub.IsOnCurve() || peerEphPub.Infinity {
		return nil, fmt.Errorf("%w: peer point not on curve", ErrInvalidKey)
	}

	xOwn := sm2TruncatedX(ownEphPub.X.ToBigInt())
	t := xOwn.ModMul(&r, &SM2_N)
	t = d.ModAdd(&t, &SM2_N)

	xPeer := sm2TruncatedX(peerEphPub.X.ToBigInt())
	peerCombined := peerPub.Add(peerEphPub.Multiply(&xPeer))
	u := peerCombined.Multiply(&t)
	if u.Infinity {
		return nil, fmt.Errorf("%w: derived point is the point at infinity", ErrInvalidKey)
	}

	if ownID == nil {
		ownID = defaultUserID
	}
	if peerID == nil {
		peerID = defaultUserID
	}
	zOwn, err := userZValue(ownID, ownPub)
	if err != nil {
		return nil, err
	}
	zPeer, err := userZValue(peerID, peerPub)
	if err != nil {
		return nil, err
	}

	ux := u.X.ToBEBytes()
	uy := u.Y.ToBEBytes()
	if isRecipient {
		return sm2Kdf(keyLen, ux[:], uy[:], zPeer, zOwn), nil
	}
	return sm2Kdf(keyLen, ux[:], uy[:], zOwn, zPeer), nil
}

// confirmationTag computes one of GM/T 0003.3's optional S1/S2/SA/SB
// values, binding the agreed point U to both parties' Z-values and
// ephemeral public keys. tag is 0x02 for the responder's S1/SB or 0x03
// for the initiator's S2/SA, per the standard's fixed tag bytes. This is
// an additive extension the core agreement above does not call: callers
// who want mutual confirmation run it on both sides and compare.
func confirmationTag(tag byte, u ECPoint, zInitiator, zResponder []byte, initiatorEph, responderEph ECPoint) []byte {
	ux := u.X.ToBEBytes()
	inner := New()
	inner.Write(ux[:])
	inner.Write(zInitiator)
	inner.Write(zResponder)
	ix := initiatorEph.X.ToBEBytes()
	iy := initiatorEph.Y.ToBEBytes()
	rx := responderEph.X.ToBEBytes()
	ry := responderEph.Y.ToBEBytes()
	inner.Write(ix[:])
	inner.Write(iy[:])
	inner.Write(rx[:])
	inner.Write(ry[:])
	h1 := inner.Sum(nil)

	outer := New()
	outer.Write([]byte{tag})
	uy := u.Y.ToBEBytes()
	outer.Write(uy[:])
	outer.Write(h1)
	return outer.Sum(nil)
}

// ResponderConfirmationTag computes SB (sent by the responder to let the
// initiator confirm it derived the same U).
func ResponderConfirmationTag(u ECPoint, zInitiator, zResponder []byte, initiatorEph, responderEph ECPoint) []byte {
	return confirmationTag(0x02, u, zInitiator, zResponder, initiatorEph, responderEph)
}

// InitiatorConfirmationTag computes SA (sent by the initiator after
// checking SB, to let the responder confirm the exchange).
func InitiatorConfirmationTag(u ECPoint, zInitiator, zResponder []byte, initiatorEph, responderEph ECPoint) []byte {
	return confirmationTag(0x03, u, zInitiator, zResponder, initiatorEph, responderEph)
}
