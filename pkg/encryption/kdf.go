package encryption

import (
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

// SaltSize is the length of the random salt prepended by PassphraseCipher
const SaltSize = 16

// KDF holds Argon2id parameters
type KDF struct {
	Iterations uint32
	Memory     uint32 // KiB
	Threads    uint8
}

// DefaultKDF returns interactive-strength parameters
func DefaultKDF() KDF {
	return KDF{
		Iterations: 3,
		Memory:     64 * 1024,
		Threads:    4,
	}
}

// Derive stretches a passphrase into a key of the given length
func (k KDF) Derive(passphrase []byte, salt []byte, length int) []byte {
	return argon2.IDKey(passphrase, salt, k.Iterations, k.Memory, k.Threads, uint32(length))
}

// Validate reports unusable parameters
func (k KDF) Validate() error {
	if k.Iterations == 0 {
		return fmt.Errorf("kdf: iterations must be positive")
	}
	if k.Memory < 8*uint32(k.Threads) {
		return fmt.Errorf("kdf: memory must be at least 8 KiB per thread")
	}
	if k.Threads == 0 {
		return fmt.Errorf("kdf: threads must be positive")
	}
	return nil
}

// GenerateSalt creates a cryptographically secure random salt
func GenerateSalt(size int) ([]byte, error) {
	salt := make([]byte, size)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}
