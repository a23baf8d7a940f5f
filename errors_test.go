package gmsm

import (
	"errors"
	"testing"
)

func TestErrorsWrapSentinelsForErrorsIs(t *testing.T) {
	_, err := HexToBytes("xyz")
	if !errors.Is(err, ErrInvalidEncoding) {
		t.Fatalf("expected ErrInvalidEncoding, got %v", err)
	}

	_, err = Sm4Decrypt(make([]byte, 16), nil, []byte("not 16 bytes long"), ModeECB, PaddingPKCS7)
	if !errors.Is(err, ErrInvalidCiphertext) {
		t.Fatalf("expected ErrInvalidCiphertext, got %v", err)
	}

	_, err = FpZero().Invert()
	if !errors.Is(err, ErrInvalidField) {
		t.Fatalf("expected ErrInvalidField, got %v", err)
	}

	_, err = ECPointFromEncoded([]byte{0x07, 0x00})
	if !errors.Is(err, ErrInvalidEncoding) {
		t.Fatalf("expected ErrInvalidEncoding for bad prefix, got %v", err)
	}
}

func TestSign_RejectsOutOfRangePrivateKey(t *testing.T) {
	zero := make([]byte, 32)
	_, err := Sign([]byte("msg"), zero, DefaultSignOptions())
	if !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey for a zero private key, got %v", err)
	}
}
