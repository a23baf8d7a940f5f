package gmsm

import "testing"

func TestDERSignatureRoundTrip(t *testing.T) {
	r := BigInt256FromHex("1234567890abcdef")
	s := BigInt256FromHex("fedcba0987654321")

	der := marshalDERSignature(r, s)
	if der[0] != 0x30 {
		t.Fatalf("expected SEQUENCE tag 0x30, got 0x%02x", der[0])
	}

	gotR, gotS, err := unmarshalDERSignature(der)
	if err != nil {
		t.Fatal(err)
	}
	if gotR != r || gotS != s {
		t.Fatalf("round trip mismatch: r=%s (want %s), s=%s (want %s)", gotR.ToHex(), r.ToHex(), gotS.ToHex(), s.ToHex())
	}
}

func TestDERSignatureHighBitPadding(t *testing.T) {
	// A value whose top byte has the high bit set must be prefixed with an
	// extra 0x00 byte so it is not read back as a negative INTEGER.
	r := BigInt256FromHex("ff00000000000000000000000000000000000000000000000000000000000f")
	s := BigInt256FromHex("1")

	der := marshalDERSignature(r, s)
	gotR, gotS, err := unmarshalDERSignature(der)
	if err != nil {
		t.Fatal(err)
	}
	if gotR != r || gotS != s {
		t.Fatalf("high-bit round trip mismatch: r=%s, s=%s", gotR.ToHex(), gotS.ToHex())
	}

	// Locate the first INTEGER's length+content and confirm a leading
	// 0x00 pad byte precedes the 0xff.
	// der = 0x30 len 0x02 rlen [rbytes] 0x02 slen [sbytes]
	rLen := int(der[3])
	rBytes := der[4 : 4+rLen]
	if rBytes[0] != 0x00 || rBytes[1] != 0xff {
		t.Fatalf("expected 0x00 0xff prefix, got % x", rBytes[:2])
	}
}

func TestDERSignatureRejectsTruncated(t *testing.T) {
	r := BigInt256FromHex("1")
	s := BigInt256FromHex("2")
	der := marshalDERSignature(r, s)
	if _, _, err := unmarshalDERSignature(der[:len(der)-1]); err == nil {
		t.Fatal("expected an error decoding a truncated DER signature")
	}
}
