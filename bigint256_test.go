package gmsm

import "testing"

func TestBigInt256FromHexTruncatesToLowOrder32Bytes(t *testing.T) {
	// 34-byte input; BigInt256 keeps only the low-order 32 bytes.
	n := BigInt256FromHex("fffffffeffffffffffffffffffffffffffffffff00000000ffffffffffffffff")
	want := BigInt256FromBEBytes(mustHex(t, "fffffffeffffffffffffffffffffffffffffffff00000000ffffffffffffffff"))
	if n != want {
		t.Fatalf("truncation mismatch")
	}
}

func TestBigInt256FromHexRoundTrip(t *testing.T) {
	const hex32 = "fffffffeffffffffffffffffffffffffffffffff00000000ffffffffffffff"
	n := BigInt256FromHex(hex32)
	if n.ToHex() != hex32 {
		t.Fatalf("got %s, want %s", n.ToHex(), hex32)
	}
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := HexToBytes(s)
	if err != nil {
		t.Fatalf("hex decode: %v", err)
	}
	return b
}

func TestBigInt256Add(t *testing.T) {
	a := BigInt256FromHex("1")
	b := BigInt256FromHex("2")
	c, carry := a.Add(&b)
	if carry != 0 {
		t.Fatalf("unexpected carry")
	}
	if c.ToHex() != "0000000000000000000000000000000000000000000000000000000000000003" {
		t.Fatalf("got %s", c.ToHex())
	}
}

func TestBigInt256Sub(t *testing.T) {
	a := BigInt256FromHex("5")
	b := BigInt256FromHex("3")
	c, borrow := a.Sub(&b)
	if borrow != 0 {
		t.Fatalf("unexpected borrow")
	}
	if c.ToHex() != "0000000000000000000000000000000000000000000000000000000000000002" {
		t.Fatalf("got %s", c.ToHex())
	}
}

func TestBigInt256ModMul(t *testing.T) {
	a := BigInt256FromHex("3")
	b := BigInt256FromHex("4")
	p := BigInt256FromHex("fffffffeffffffffffffffffffffffffffffffff00000000ffffffffffffffff")
	c := a.ModMul(&b, &p)
	if c.ToHex() != "000000000000000000000000000000000000000000000000000000000000000c" {
		t.Fatalf("got %s", c.ToHex())
	}
}

func TestBigInt256ModInverse(t *testing.T) {
	a := BigInt256FromHex("3")
	p := BigInt256FromHex("7")
	inv := a.ModInverse(&p)
	product := a.ModMul(&inv, &p)
	if !product.IsOne() {
		t.Fatalf("expected 1, got %s", product.ToHex())
	}
}

func TestBigInt256IsOddEqual(t *testing.T) {
	odd := BigInt256FromHex("3")
	even := BigInt256FromHex("4")
	if !odd.IsOdd() {
		t.Fatalf("3 should be odd")
	}
	if even.IsOdd() {
		t.Fatalf("4 should be even")
	}
	if !odd.Equal(BigInt256FromHex("3")) {
		t.Fatalf("equal values compared unequal")
	}
	if odd.Equal(even) {
		t.Fatalf("unequal values compared equal")
	}
}

func TestBigInt256ModPowAgreesWithModInverse(t *testing.T) {
	p := SM2_P
	a := BigInt256FromHex("123456789abcdef0")
	pMinus2, _ := p.Sub(&bigTwo)
	viaPow := a.ModPow(&pMinus2, &p)
	viaInverse := a.ModInverse(&p)
	if viaPow != viaInverse {
		t.Fatalf("ModPow(p-2) should agree with ModInverse")
	}
}
