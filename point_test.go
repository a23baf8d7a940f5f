package gmsm

import "testing"

func TestGeneratorOnCurve(t *testing.T) {
	g := ECPointGenerator()
	if !g.IsOnCurve() {
		t.Fatal("generator not on curve")
	}
}

func TestPointAdd(t *testing.T) {
	g := ECPointGenerator()
	g2 := g.Add(g)
	if !g2.IsOnCurve() {
		t.Fatal("2G not on curve")
	}
	g3 := g2.Add(g)
	if !g3.IsOnCurve() {
		t.Fatal("3G not on curve")
	}
}

func TestPointTwice(t *testing.T) {
	g := ECPointGenerator()
	g2a := g.Twice()
	g2b := g.Add(g)
	if !g2a.Equal(g2b) {
		t.Fatal("Twice != Add(self)")
	}
}

func TestPointMultiply(t *testing.T) {
	g := ECPointGenerator()
	k := BigInt256FromHex("3")
	p := g.Multiply(&k)
	if !p.IsOnCurve() {
		t.Fatal("3G not on curve")
	}

	g2 := g.Twice()
	g3 := g2.Add(g)
	if !p.Equal(g3) {
		t.Fatal("Multiply(3) != Twice+Add")
	}
}

func TestPointMultiplyByOrderIsInfinity(t *testing.T) {
	g := ECPointGenerator()
	n := SM2_N
	p := g.Multiply(&n)
	if !p.Infinity {
		t.Fatal("n*G should be the point at infinity")
	}
}

func TestPointEncodeDecodeUncompressed(t *testing.T) {
	g := ECPointGenerator()
	encoded := g.ToEncoded()
	if len(encoded) != 65 || encoded[0] != 0x04 {
		t.Fatalf("unexpected uncompressed encoding length/prefix: %d/%x", len(encoded), encoded[0])
	}
	decoded, err := ECPointFromEncoded(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if !g.Equal(decoded) {
		t.Fatal("encode/decode mismatch")
	}
}

func TestPointEncodeDecodeCompressed(t *testing.T) {
	g := ECPointGenerator()
	encoded := g.ToCompressedEncoded()
	if len(encoded) != 33 || (encoded[0] != 0x02 && encoded[0] != 0x03) {
		t.Fatalf("unexpected compressed encoding: %x", encoded)
	}
	decoded, err := ECPointFromEncoded(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if !g.Equal(decoded) {
		t.Fatal("compressed encode/decode mismatch")
	}
}

func TestPointFromEncodedRejectsBadPrefix(t *testing.T) {
	bad := append([]byte{0x05}, make([]byte, 64)...)
	if _, err := ECPointFromEncoded(bad); err == nil {
		t.Fatal("expected ErrInvalidEncoding for unrecognized prefix")
	}
}

func TestPointFromEncodedRejectsOffCurvePoint(t *testing.T) {
	data := make([]byte, 65)
	data[0] = 0x04
	// X=1, Y=1 is not on the curve for any sane curve parameters.
	data[32] = 1
	data[64] = 1
	if _, err := ECPointFromEncoded(data); err == nil {
		t.Fatal("expected ErrInvalidKey for an off-curve point")
	}
}

func TestInfinity(t *testing.T) {
	g := ECPointGenerator()
	negG := g.Negate()
	result := g.Add(negG)
	if !result.Infinity {
		t.Fatal("G + (-G) should be infinity")
	}
}
