// Package encryption provides the modern block ciphers used behind the
// block cipher mode of cipherlab.
package encryption

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors
var (
	ErrInvalidKey       = errors.New("invalid encryption key")
	ErrDecryptionFailed = errors.New("decryption failed")
	ErrInvalidData      = errors.New("invalid encrypted data")
)

// Algorithm identifiers accepted by NewEncryptor
const (
	AlgorithmDESCBC   = "des-cbc"
	AlgorithmAESGCM   = "aes-gcm-256"
	AlgorithmChaCha20 = "chacha20-poly1305"

	DefaultAlgorithm = AlgorithmDESCBC
)

// Algorithms lists every supported algorithm, default first
var Algorithms = []string{AlgorithmDESCBC, AlgorithmAESGCM, AlgorithmChaCha20}

// Encryptor seals data under a raw key of exactly KeySize bytes.
// Implementations prepend whatever nonce or IV they need to the output.
type Encryptor interface {
	// Encrypt encrypts plaintext using the provided key
	Encrypt(plaintext []byte, key []byte) ([]byte, error)

	// Decrypt decrypts ciphertext using the provided key
	Decrypt(ciphertext []byte, key []byte) ([]byte, error)

	// KeySize is the raw key length in bytes
	KeySize() int

	// Algorithm returns the name of the encryption algorithm
	Algorithm() string
}

// NewEncryptor creates an encryptor based on algorithm name
func NewEncryptor(algorithm string) (Encryptor, error) {
	switch strings.ToLower(strings.TrimSpace(algorithm)) {
	case AlgorithmDESCBC, "des":
		return NewDESEncryptor(), nil
	case AlgorithmAESGCM, "aes":
		return NewAESGCMEncryptor(), nil
	case AlgorithmChaCha20, "chacha20", "chacha":
		return NewChaChaEncryptor(), nil
	default:
		return nil, fmt.Errorf("unsupported algorithm: %s", algorithm)
	}
}

// DefaultEncryptor returns the default encryption algorithm
func DefaultEncryptor() Encryptor {
	return NewDESEncryptor()
}
