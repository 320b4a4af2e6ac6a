package encryption

import "fmt"

// PassphraseCipher seals data under a passphrase of any length. Each call
// draws a fresh salt, derives a key of the encryptor's size with Argon2id,
// and emits salt||sealed.
//
// It satisfies cipher.BlockProvider.
type PassphraseCipher struct {
	enc Encryptor
	kdf KDF
}

// Option configures a PassphraseCipher
type Option func(*PassphraseCipher)

// WithKDF overrides the key derivation parameters
func WithKDF(k KDF) Option {
	return func(p *PassphraseCipher) {
		p.kdf = k
	}
}

// NewPassphraseCipher wraps enc with passphrase-based key derivation
func NewPassphraseCipher(enc Encryptor, opts ...Option) *PassphraseCipher {
	p := &PassphraseCipher{enc: enc, kdf: DefaultKDF()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Algorithm names the underlying encryptor
func (p *PassphraseCipher) Algorithm() string {
	return p.enc.Algorithm()
}

// Encrypt derives a key from passphrase and seals plaintext
func (p *PassphraseCipher) Encrypt(plaintext, passphrase []byte) ([]byte, error) {
	if len(passphrase) == 0 {
		return nil, ErrInvalidKey
	}

	salt, err := GenerateSalt(SaltSize)
	if err != nil {
		return nil, err
	}

	key := p.kdf.Derive(passphrase, salt, p.enc.KeySize())
	sealed, err := p.enc.Encrypt(plaintext, key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.enc.Algorithm(), err)
	}

	return append(salt, sealed...), nil
}

// Decrypt splits off the salt, re-derives the key and opens the rest
func (p *PassphraseCipher) Decrypt(data, passphrase []byte) ([]byte, error) {
	if len(passphrase) == 0 {
		return nil, ErrInvalidKey
	}
	if len(data) <= SaltSize {
		return nil, ErrInvalidData
	}

	salt, sealed := data[:SaltSize], data[SaltSize:]
	key := p.kdf.Derive(passphrase, salt, p.enc.KeySize())

	plaintext, err := p.enc.Decrypt(sealed, key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.enc.Algorithm(), err)
	}
	return plaintext, nil
}
