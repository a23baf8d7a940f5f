package gmsm

import (
	"bytes"
	"testing"
)

func TestHexRoundTrip(t *testing.T) {
	b := []byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0x01}
	h := BytesToHex(b)
	if h != "deadbeef0001" {
		t.Fatalf("BytesToHex = %s", h)
	}
	back, err := HexToBytes(h)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(back, b) {
		t.Fatalf("HexToBytes(BytesToHex(b)) = %x, want %x", back, b)
	}
}

func TestHexToBytesTolerantOfCaseAndPrefix(t *testing.T) {
	b1, err := HexToBytes("0xDEADBEEF")
	if err != nil {
		t.Fatal(err)
	}
	b2, err := HexToBytes("deadbeef")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(b1, b2) {
		t.Fatalf("case/prefix handling mismatch: %x vs %x", b1, b2)
	}
}

func TestHexToBytesRejectsOddLength(t *testing.T) {
	if _, err := HexToBytes("abc"); err == nil {
		t.Fatal("expected ErrInvalidEncoding for odd-length hex")
	}
}

func TestUtf8RoundTrip(t *testing.T) {
	s := "国密SM4对称加密算法"
	b := Utf8ToBytes(s)
	if BytesToUtf8(b) != s {
		t.Fatalf("utf8 round trip failed for %q", s)
	}
}

func TestConcat(t *testing.T) {
	got := concat([]byte("a"), []byte("bc"), nil, []byte("d"))
	if string(got) != "abcd" {
		t.Fatalf("concat = %q, want %q", got, "abcd")
	}
}
