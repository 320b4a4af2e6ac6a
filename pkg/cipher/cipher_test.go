package cipher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultenv/cipherlab/pkg/alphabet"
)

func mustShift(t *testing.T, k int) ShiftKey {
	t.Helper()
	key, err := NewShiftKey(k)
	require.NoError(t, err)
	return key
}

func TestCaesar(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		shift int
		want  string
	}{
		{"textbook", "HELLO", 3, "KHOOR"},
		{"keeps case and punctuation", "Hello, World!", 3, "Khoor, Zruog!"},
		{"wraps around", "xyz", 3, "abc"},
		{"zero shift", "Same 123", 0, "Same 123"},
		{"max shift", "ABC", 25, "ZAB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCaesar(mustShift(t, tt.shift))
			require.NoError(t, err)

			got, err := c.Encrypt(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			back, err := c.Decrypt(got)
			require.NoError(t, err)
			assert.Equal(t, tt.text, back)
		})
	}
}

func TestCaesar_RoundTripAllKeys(t *testing.T) {
	text := "The quick brown fox, 42 jumps! Over the lazy dog."
	for k := 0; k < 26; k++ {
		c, err := NewCaesar(mustShift(t, k))
		require.NoError(t, err)

		enc, _ := c.Encrypt(text)
		dec, _ := c.Decrypt(enc)
		assert.Equal(t, text, dec, "shift %d", k)
	}
}

func TestShiftKey_Validation(t *testing.T) {
	_, err := NewShiftKey(26)
	assert.ErrorIs(t, err, KeyOutOfRange)

	_, err = NewShiftKey(-1)
	assert.ErrorIs(t, err, KeyOutOfRange)

	_, err = NewCaesar(ShiftKey{shift: 40})
	assert.ErrorIs(t, err, KeyOutOfRange)
}

func TestVigenere(t *testing.T) {
	tests := []struct {
		name string
		text string
		key  string
		want string
	}{
		{"textbook", "ATTACKATDAWN", "LEMON", "LXFOPVEFRNHR"},
		{"lower-case key", "ATTACKATDAWN", "lemon", "LXFOPVEFRNHR"},
		{"formatting does not consume key", "Attack at dawn!", "LEMON", "Lxfopv ef rnhr!"},
		{"single letter key is caesar", "abc", "D", "def"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := NewKeywordKey(tt.key)
			require.NoError(t, err)
			v, err := NewVigenere(key)
			require.NoError(t, err)

			got, err := v.Encrypt(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			back, err := v.Decrypt(got)
			require.NoError(t, err)
			assert.Equal(t, tt.text, back)
		})
	}
}

func TestKeywordKey_Validation(t *testing.T) {
	_, err := NewKeywordKey("")
	assert.ErrorIs(t, err, EmptyKey)

	_, err = NewKeywordKey("lem0n")
	assert.ErrorIs(t, err, InvalidKeyFormat)

	_, err = NewKeywordKey("two words")
	assert.ErrorIs(t, err, InvalidKeyFormat)
}

func TestHill(t *testing.T) {
	t.Run("textbook key", func(t *testing.T) {
		key, err := NewMatrixKey(3, 3, 2, 5)
		require.NoError(t, err)
		h, err := NewHill(key)
		require.NoError(t, err)

		got, err := h.Encrypt("HELP")
		require.NoError(t, err)
		assert.Equal(t, "HIAT", got)

		back, err := h.Decrypt(got)
		require.NoError(t, err)
		assert.Equal(t, "HELP", back)
	})

	t.Run("determinant nine", func(t *testing.T) {
		key, err := NewMatrixKey(5, 2, 3, 3)
		require.NoError(t, err)
		assert.Equal(t, 9, key.Determinant())
		assert.Equal(t, [4]int{9, 20, 17, 15}, key.Inverse())

		h, err := NewHill(key)
		require.NoError(t, err)

		got, err := h.Encrypt("hi")
		require.NoError(t, err)
		assert.Equal(t, "ZT", got)

		back, err := h.Decrypt(got)
		require.NoError(t, err)
		assert.Equal(t, "HI", back)
	})

	t.Run("normalized round trip", func(t *testing.T) {
		key, err := NewMatrixKey(5, 2, 3, 3)
		require.NoError(t, err)
		h, err := NewHill(key)
		require.NoError(t, err)

		for _, text := range []string{"Hello, World!", "attack at dawn", "Odd"} {
			enc, err := h.Encrypt(text)
			require.NoError(t, err)
			assert.Len(t, enc, len(PrepareHill(text)))

			dec, err := h.Decrypt(enc)
			require.NoError(t, err)
			assert.Equal(t, PrepareHill(text), dec)
		}
	})

	t.Run("no letters", func(t *testing.T) {
		key, _ := NewMatrixKey(3, 3, 2, 5)
		h, _ := NewHill(key)
		_, err := h.Encrypt("123 !!")
		assert.ErrorIs(t, err, EmptyText)
	})
}

func TestMatrixKey_Invertibility(t *testing.T) {
	tests := []struct {
		name string
		m    [4]int
		ok   bool
	}{
		{"zero determinant", [4]int{2, 4, 1, 2}, false},
		{"even determinant", [4]int{2, 0, 0, 1}, false},
		{"determinant thirteen", [4]int{13, 0, 0, 1}, false},
		{"negative determinant", [4]int{1, 2, 3, 5}, true},
		{"identity", [4]int{1, 0, 0, 1}, true},
		{"large entries", [4]int{31, 2, 29, 3}, true},
		{"entries beyond 32 bits", [4]int{4294967297, 0, 0, 4294967297}, true},
		{"entry near int64 max", [4]int{5000000000000000001, 0, 0, 1}, true},
		{"negative entries", [4]int{-25, 0, 0, -1}, true},
		{"singular beyond 32 bits", [4]int{4294967298, 0, 0, 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := NewMatrixKey(tt.m[0], tt.m[1], tt.m[2], tt.m[3])
			if !tt.ok {
				assert.ErrorIs(t, err, NonInvertibleKey)
				return
			}
			require.NoError(t, err)

			// M · M⁻¹ ≡ I (mod 26)
			m, inv := key.Values(), key.Inverse()
			assert.Equal(t, 1, alphabet.Mod(m[0]*inv[0]+m[1]*inv[2], 26))
			assert.Equal(t, 0, alphabet.Mod(m[0]*inv[1]+m[1]*inv[3], 26))
			assert.Equal(t, 0, alphabet.Mod(m[2]*inv[0]+m[3]*inv[2], 26))
			assert.Equal(t, 1, alphabet.Mod(m[2]*inv[1]+m[3]*inv[3], 26))
		})
	}

	_, err := NewHill(MatrixKey{})
	assert.ErrorIs(t, err, NonInvertibleKey)
}

func TestMatrixKey_ReducesEntries(t *testing.T) {
	key, err := NewMatrixKey(4294967297, 0, 27, 4294967297)
	require.NoError(t, err)
	assert.Equal(t, [4]int{23, 0, 1, 23}, key.Values())

	for _, raw := range []string{"4294967297 0 0 4294967297", "5000000000000000001 0 0 1", "1 0 0 5000000000000000001"} {
		t.Run(raw, func(t *testing.T) {
			key, err := ParseKey(Matrix, raw)
			require.NoError(t, err)
			h, err := NewHill(key.(MatrixKey))
			require.NoError(t, err)

			enc, err := h.Encrypt("HELLOWORLD")
			require.NoError(t, err)
			dec, err := h.Decrypt(enc)
			require.NoError(t, err)
			assert.Equal(t, "HELLOWORLD", dec)
		})
	}
}
