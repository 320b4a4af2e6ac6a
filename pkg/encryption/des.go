package encryption

import (
	"crypto/cipher"
	"crypto/des"
	"crypto/rand"
	"fmt"
	"io"
)

// DESEncryptor implements single DES in CBC mode with PKCS#7 padding.
// A random IV is prepended to the ciphertext. DES is kept for teaching
// purposes; prefer aes-gcm-256 for anything real.
type DESEncryptor struct{}

// NewDESEncryptor creates a new DES-CBC encryptor
func NewDESEncryptor() *DESEncryptor {
	return &DESEncryptor{}
}

// Algorithm returns the algorithm identifier
func (e *DESEncryptor) Algorithm() string {
	return AlgorithmDESCBC
}

// KeySize is des.BlockSize (8 bytes, 56 effective bits)
func (e *DESEncryptor) KeySize() int {
	return des.BlockSize
}

// Encrypt encrypts plaintext using DES-CBC
func (e *DESEncryptor) Encrypt(plaintext []byte, key []byte) ([]byte, error) {
	block, err := e.block(key)
	if err != nil {
		return nil, err
	}

	padded := pkcs7Pad(append([]byte(nil), plaintext...), des.BlockSize)

	out := make([]byte, des.BlockSize+len(padded))
	iv := out[:des.BlockSize]
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, fmt.Errorf("failed to generate IV: %w", err)
	}

	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[des.BlockSize:], padded)
	return out, nil
}

// Decrypt decrypts ciphertext encrypted with DES-CBC
func (e *DESEncryptor) Decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	block, err := e.block(key)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < 2*des.BlockSize || len(ciphertext)%des.BlockSize != 0 {
		return nil, ErrInvalidData
	}

	iv, body := ciphertext[:des.BlockSize], ciphertext[des.BlockSize:]
	plain := make([]byte, len(body))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, body)

	return pkcs7Unpad(plain, des.BlockSize)
}

func (e *DESEncryptor) block(key []byte) (cipher.Block, error) {
	if len(key) != e.KeySize() {
		return nil, ErrInvalidKey
	}
	block, err := des.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	return block, nil
}
