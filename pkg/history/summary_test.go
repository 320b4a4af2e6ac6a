package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultenv/cipherlab/pkg/cipher"
	"github.com/vaultenv/cipherlab/pkg/metrics"
)

func TestSummarize(t *testing.T) {
	entries := []Entry{
		entry(cipher.Shift, cipher.Encrypt, "HELLO", "KHOOR"),
		entry(cipher.DigraphSubstitution, cipher.Encrypt, "instruments", "GATLMZCLRQXA"),
		entry(cipher.Shift, cipher.Decrypt, "KHOOR", "HELLO"),
		entry(cipher.DigraphSubstitution, cipher.Encrypt, "instrumentt", "GATLMZCLRQXB"),
	}

	s := Summarize(entries, cipher.DigraphSubstitution)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 3, s.Encryptions)
	assert.Equal(t, 1, s.Decryptions)
	assert.Equal(t, 2, s.PerCipher[cipher.Shift])
	assert.Equal(t, 2, s.PerCipher[cipher.DigraphSubstitution])

	require.NotNil(t, s.Latest)
	assert.True(t, s.Compared)
	assert.InDelta(t, metrics.Entropy("GATLMZCLRQXB"), s.Latest.EntropyBits, 1e-9)
	assert.InDelta(t, 100.0/12, s.Latest.AvalanchePercent, 1e-9)
}

func TestSummarize_SingleEncryption(t *testing.T) {
	s := Summarize([]Entry{entry(cipher.Shift, cipher.Encrypt, "ABAB", "DEDE")}, cipher.Shift)
	require.NotNil(t, s.Latest)
	assert.False(t, s.Compared)
	assert.InDelta(t, 1.0, s.Latest.EntropyBits, 1e-9)
	assert.Zero(t, s.Latest.AvalanchePercent)
}

func TestSummarize_NoMatch(t *testing.T) {
	s := Summarize(nil, cipher.Matrix)
	assert.Zero(t, s.Total)
	assert.Nil(t, s.Latest)

	s = Summarize([]Entry{entry(cipher.Matrix, cipher.Decrypt, "HIAT", "HELP")}, cipher.Matrix)
	assert.Equal(t, 1, s.Total)
	assert.Nil(t, s.Latest)
}
