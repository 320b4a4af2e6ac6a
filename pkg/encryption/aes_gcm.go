package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
)

// AESGCMEncryptor implements AES-256-GCM encryption
type AESGCMEncryptor struct{}

// NewAESGCMEncryptor creates a new AES-GCM encryptor
func NewAESGCMEncryptor() *AESGCMEncryptor {
	return &AESGCMEncryptor{}
}

// Algorithm returns the algorithm identifier
func (e *AESGCMEncryptor) Algorithm() string {
	return AlgorithmAESGCM
}

// KeySize is 32 bytes (256 bits)
func (e *AESGCMEncryptor) KeySize() int {
	return 32
}

func (e *AESGCMEncryptor) aead(key []byte) (cipher.AEAD, error) {
	if len(key) != e.KeySize() {
		return nil, ErrInvalidKey
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}

// Encrypt encrypts plaintext using AES-256-GCM. The nonce is prepended to
// the ciphertext.
func (e *AESGCMEncryptor) Encrypt(plaintext []byte, key []byte) ([]byte, error) {
	gcm, err := e.aead(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt decrypts ciphertext encrypted with AES-256-GCM
func (e *AESGCMEncryptor) Decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	gcm, err := e.aead(key)
	if err != nil {
		return nil, err
	}
	return openAEAD(gcm, ciphertext)
}

// openAEAD splits off the nonce and authenticates the rest
func openAEAD(aead cipher.AEAD, data []byte) ([]byte, error) {
	nonceSize := aead.NonceSize()
	if len(data) < nonceSize+aead.Overhead() {
		return nil, ErrInvalidData
	}

	nonce, sealed := data[:nonceSize], data[nonceSize:]
	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}
