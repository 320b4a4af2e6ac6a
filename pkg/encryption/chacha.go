package encryption

import (
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

// ChaChaEncryptor implements XChaCha20-Poly1305 encryption. The extended
// nonce is random per message.
type ChaChaEncryptor struct{}

// NewChaChaEncryptor creates a new ChaCha20-Poly1305 encryptor
func NewChaChaEncryptor() *ChaChaEncryptor {
	return &ChaChaEncryptor{}
}

// Algorithm returns the algorithm identifier
func (e *ChaChaEncryptor) Algorithm() string {
	return AlgorithmChaCha20
}

// KeySize is chacha20poly1305.KeySize
func (e *ChaChaEncryptor) KeySize() int {
	return chacha20poly1305.KeySize
}

// Encrypt encrypts plaintext using XChaCha20-Poly1305
func (e *ChaChaEncryptor) Encrypt(plaintext []byte, key []byte) ([]byte, error) {
	if len(key) != e.KeySize() {
		return nil, ErrInvalidKey
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt decrypts ciphertext encrypted with XChaCha20-Poly1305
func (e *ChaChaEncryptor) Decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	if len(key) != e.KeySize() {
		return nil, ErrInvalidKey
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	return openAEAD(aead, ciphertext)
}
