package cipher

import (
	"encoding/base64"
	"fmt"
	"unicode/utf8"
)

// BlockProvider is the external symmetric block cipher the adapter delegates
// to. Implementations may fail for any reason; the adapter never assumes
// success.
type BlockProvider interface {
	// Encrypt seals plaintext under key
	Encrypt(plaintext []byte, key []byte) ([]byte, error)

	// Decrypt recovers plaintext sealed under key
	Decrypt(ciphertext []byte, key []byte) ([]byte, error)

	// Algorithm returns the provider's algorithm identifier
	Algorithm() string
}

// BlockAdapter exposes a BlockProvider as a text cipher. Ciphertext is
// rendered as standard base64.
type BlockAdapter struct {
	provider BlockProvider
	key      SymmetricKey
}

// NewBlockAdapter validates key and binds it to provider
func NewBlockAdapter(provider BlockProvider, key SymmetricKey) (*BlockAdapter, error) {
	if provider == nil {
		return nil, ErrNoBlockCipher
	}
	if err := key.validate(); err != nil {
		return nil, err
	}
	return &BlockAdapter{provider: provider, key: key}, nil
}

// Algorithm returns the identifier of the underlying provider
func (b *BlockAdapter) Algorithm() string {
	return b.provider.Algorithm()
}

// Encrypt seals text and returns it base64-encoded
func (b *BlockAdapter) Encrypt(text string) (string, error) {
	sealed, err := b.provider.Encrypt([]byte(text), b.key.secret)
	if err != nil {
		return "", fmt.Errorf("%s encrypt: %w", b.provider.Algorithm(), err)
	}
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt decodes and opens base64 ciphertext. Every failure, including a
// wrong key, is reported as DecryptionFailure.
func (b *BlockAdapter) Decrypt(text string) (string, error) {
	sealed, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return "", &Error{Kind: DecryptionFailure, Cipher: BlockCipher, Msg: "ciphertext is not valid base64", Err: err}
	}

	plaintext, err := b.provider.Decrypt(sealed, b.key.secret)
	if err != nil {
		return "", &Error{Kind: DecryptionFailure, Cipher: BlockCipher, Msg: "wrong key or corrupted ciphertext", Err: err}
	}
	if len(plaintext) == 0 || !utf8.Valid(plaintext) {
		return "", newError(DecryptionFailure, BlockCipher, "recovered data is not text")
	}
	return string(plaintext), nil
}
