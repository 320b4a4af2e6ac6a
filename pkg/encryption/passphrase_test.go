package encryption

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultenv/cipherlab/pkg/cipher"
)

var _ cipher.BlockProvider = (*PassphraseCipher)(nil)

// testKDF keeps Argon2 cheap in tests
var testKDF = KDF{Iterations: 1, Memory: 8 * 1024, Threads: 1}

func TestKDF(t *testing.T) {
	salt, err := GenerateSalt(SaltSize)
	require.NoError(t, err)
	require.Len(t, salt, SaltSize)

	k1 := testKDF.Derive([]byte("password"), salt, 32)
	k2 := testKDF.Derive([]byte("password"), salt, 32)
	assert.Equal(t, k1, k2)
	assert.Len(t, k1, 32)
	assert.NotEqual(t, k1, testKDF.Derive([]byte("Password"), salt, 32))

	other, _ := GenerateSalt(SaltSize)
	assert.NotEqual(t, salt, other)
	assert.NotEqual(t, k1, testKDF.Derive([]byte("password"), other, 32))

	assert.NoError(t, DefaultKDF().Validate())
	assert.Error(t, KDF{Iterations: 0, Memory: 1024, Threads: 1}.Validate())
	assert.Error(t, KDF{Iterations: 1, Memory: 4, Threads: 1}.Validate())
	assert.Error(t, KDF{Iterations: 1, Memory: 1024, Threads: 0}.Validate())
}

func TestPassphraseCipher_RoundTrip(t *testing.T) {
	for _, algorithm := range Algorithms {
		t.Run(algorithm, func(t *testing.T) {
			enc, err := NewEncryptor(algorithm)
			require.NoError(t, err)
			p := NewPassphraseCipher(enc, WithKDF(testKDF))
			assert.Equal(t, algorithm, p.Algorithm())

			sealed, err := p.Encrypt([]byte("secret message"), []byte("mysecretkey"))
			require.NoError(t, err)
			assert.Greater(t, len(sealed), SaltSize)

			again, err := p.Encrypt([]byte("secret message"), []byte("mysecretkey"))
			require.NoError(t, err)
			assert.NotEqual(t, sealed, again, "fresh salt per call")

			plain, err := p.Decrypt(sealed, []byte("mysecretkey"))
			require.NoError(t, err)
			assert.Equal(t, "secret message", string(plain))
		})
	}
}

func TestPassphraseCipher_Errors(t *testing.T) {
	p := NewPassphraseCipher(NewAESGCMEncryptor(), WithKDF(testKDF))

	_, err := p.Encrypt([]byte("x"), nil)
	assert.ErrorIs(t, err, ErrInvalidKey)

	_, err = p.Decrypt(make([]byte, SaltSize), []byte("mysecretkey"))
	assert.ErrorIs(t, err, ErrInvalidData)

	sealed, err := p.Encrypt([]byte("secret message"), []byte("mysecretkey"))
	require.NoError(t, err)
	_, err = p.Decrypt(sealed, []byte("wrongsecretkey"))
	assert.ErrorIs(t, err, ErrDecryptionFailed)
	assert.Contains(t, err.Error(), AlgorithmAESGCM)
}

func TestPassphraseCipher_BehindBlockAdapter(t *testing.T) {
	key, err := cipher.NewSymmetricKey("mysecretkey")
	require.NoError(t, err)

	adapter, err := cipher.NewBlockAdapter(NewPassphraseCipher(NewChaChaEncryptor(), WithKDF(testKDF)), key)
	require.NoError(t, err)

	out, err := adapter.Encrypt("Hello, World!")
	require.NoError(t, err)

	back, err := adapter.Decrypt(out)
	require.NoError(t, err)
	assert.Equal(t, "Hello, World!", back)

	wrongKey, _ := cipher.NewSymmetricKey("another-secret-key")
	wrong, _ := cipher.NewBlockAdapter(NewPassphraseCipher(NewChaChaEncryptor(), WithKDF(testKDF)), wrongKey)
	_, err = wrong.Decrypt(out)
	assert.ErrorIs(t, err, cipher.DecryptionFailure)
}
