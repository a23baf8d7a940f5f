package gmsm

import (
	"crypto/cipher"
	"crypto/subtle"
	"fmt"
)

// Padding selects the padding scheme applied before block encryption.
type Padding int

const (
	PaddingPKCS7 Padding = iota
	PaddingNone
)

// Mode selects the SM4 block cipher mode of operation.
type Mode int

const (
	ModeCBC Mode = iota
	ModeECB
)

func pkcs7Pad(input []byte) []byte {
	padLen := sm4BlockSize - (len(input) % sm4BlockSize)
	out := make([]byte, len(input)+padLen)
	copy(out, input)
	for i := len(input); i < len(out); i++ {
		out[i] = byte(padLen)
	}
	return out
}

// pkcs7Unpad validates and strips PKCS#7 padding, scanning every candidate
// padding byte regardless of where a mismatch first occurs so the check
// does not leak timing information about which byte failed.
func pkcs7Unpad(input []byte) ([]byte, error) {
	if len(input) == 0 || len(input)%sm4BlockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext is not block-aligned", ErrInvalidPadding)
	}
	padLen := int(input[len(input)-1])
	if padLen == 0 || padLen > sm4BlockSize {
		return nil, fmt.Errorf("%w: padding length %d out of range", ErrInvalidPadding, padLen)
	}
	expected := make([]byte, sm4BlockSize)
	for i := range expected {
		expected[i] = byte(padLen)
	}
	tail := input[len(input)-sm4BlockSize:]
	if subtle.ConstantTimeCompare(tail[sm4BlockSize-padLen:], expected[sm4BlockSize-padLen:]) != 1 {
		return nil, fmt.Errorf("%w: padding bytes do not match", ErrInvalidPadding)
	}
	return input[:len(input)-padLen], nil
}

func applyPadding(padding Padding, input []byte) ([]byte, error) {
	switch padding {
	case PaddingPKCS7:
		return pkcs7Pad(input), nil
	case PaddingNone:
		if len(input)%sm4BlockSize != 0 {
			return nil, fmt.Errorf("%w: plaintext must be block-aligned when padding is none", ErrInvalidEncoding)
		}
		return input, nil
	default:
		return nil, fmt.Errorf("%w: unknown padding mode", ErrInvalidEncoding)
	}
}

func removePadding(padding Padding, input []byte) ([]byte, error) {
	switch padding {
	case PaddingPKCS7:
		return pkcs7Unpad(input)
	case PaddingNone:
		return input, nil
	default:
		return nil, fmt.Errorf("%w: unknown padding mode", ErrInvalidEncoding)
	}
}

// Sm4Encrypt encrypts plaintext under key (16 bytes) using the chosen
// mode and padding. iv is required for ModeCBC and ignored for ModeECB.
func Sm4Encrypt(key, iv, plaintext []byte, mode Mode, padding Padding) ([]byte, error) {
	block, err := NewCipher(key)
	if err != nil {
		return nil, err
	}
	padded, err := applyPadding(padding, plaintext)
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(padded))
	switch mode {
	case ModeCBC:
		if len(iv) != sm4BlockSize {
			return nil, fmt.Errorf("%w: cbc iv must be 16 bytes, got %d", ErrInvalidEncoding, len(iv))
		}
		cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, padded)
	case ModeECB:
		for i := 0; i < len(padded); i += sm4BlockSize {
			block.Encrypt(out[i:i+sm4BlockSize], padded[i:i+sm4BlockSize])
		}
	default:
		return nil, fmt.Errorf("%w: unknown cipher mode", ErrInvalidEncoding)
	}
	return out, nil
}

// Sm4Decrypt decrypts ciphertext under key (16 bytes) using the chosen
// mode and padding.
func Sm4Decrypt(key, iv, ciphertext []byte, mode Mode, padding Padding) ([]byte, error) {
	block, err := NewCipher(key)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) == 0 || len(ciphertext)%sm4BlockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext is not block-aligned", ErrInvalidCiphertext)
	}

	out := make([]byte, len(ciphertext))
	switch mode {
	case ModeCBC:
		if len(iv) != sm4BlockSize {
			return nil, fmt.Errorf("%w: cbc iv must be 16 bytes, got %d", ErrInvalidEncoding, len(iv))
		}
		cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, ciphertext)
	case ModeECB:
		for i := 0; i < len(ciphertext); i += sm4BlockSize {
			block.Decrypt(out[i:i+sm4BlockSize], ciphertext[i:i+sm4BlockSize])
		}
	default:
		return nil, fmt.Errorf("%w: unknown cipher mode", ErrInvalidEncoding)
	}
	return removePadding(padding, out)
}
