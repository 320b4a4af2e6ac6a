package cipher

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// xorProvider is a toy BlockProvider: XOR with the key, prefixed by the key
// length so a key of a different length is detected on decrypt
type xorProvider struct{}

func (xorProvider) Algorithm() string { return "xor-test" }

func (xorProvider) Encrypt(plaintext, key []byte) ([]byte, error) {
	out := []byte{byte(len(key))}
	for i, b := range plaintext {
		out = append(out, b^key[i%len(key)])
	}
	return out, nil
}

func (xorProvider) Decrypt(ciphertext, key []byte) ([]byte, error) {
	if len(ciphertext) < 1 || ciphertext[0] != byte(len(key)) {
		return nil, errors.New("authentication failed")
	}
	out := make([]byte, 0, len(ciphertext)-1)
	for i, b := range ciphertext[1:] {
		out = append(out, b^key[i%len(key)])
	}
	return out, nil
}

type failingProvider struct{ err error }

func (f failingProvider) Algorithm() string                   { return "failing" }
func (f failingProvider) Encrypt(_, _ []byte) ([]byte, error) { return nil, f.err }
func (f failingProvider) Decrypt(_, _ []byte) ([]byte, error) { return nil, f.err }

func TestBlockAdapter(t *testing.T) {
	key, err := NewSymmetricKey("mysecretkey")
	require.NoError(t, err)

	b, err := NewBlockAdapter(xorProvider{}, key)
	require.NoError(t, err)
	assert.Equal(t, "xor-test", b.Algorithm())

	enc, err := b.Encrypt("Hello, World!")
	require.NoError(t, err)
	assert.NotEqual(t, "Hello, World!", enc)

	dec, err := b.Decrypt(enc)
	require.NoError(t, err)
	assert.Equal(t, "Hello, World!", dec)

	t.Run("wrong key", func(t *testing.T) {
		other, _ := NewSymmetricKey("another-secret-key")
		wrong, _ := NewBlockAdapter(xorProvider{}, other)
		_, err := wrong.Decrypt(enc)
		assert.ErrorIs(t, err, DecryptionFailure)
	})

	t.Run("not base64", func(t *testing.T) {
		_, err := b.Decrypt("%%% not base64 %%%")
		assert.ErrorIs(t, err, DecryptionFailure)
	})

	t.Run("provider failure", func(t *testing.T) {
		boom := errors.New("boom")
		f, _ := NewBlockAdapter(failingProvider{err: boom}, key)

		_, err := f.Encrypt("text")
		assert.ErrorIs(t, err, boom)

		_, err = f.Decrypt("AAAA")
		assert.ErrorIs(t, err, DecryptionFailure)
		assert.ErrorIs(t, err, boom)
	})
}

func TestSymmetricKey_Validation(t *testing.T) {
	_, err := NewSymmetricKey("")
	assert.ErrorIs(t, err, EmptyKey)

	_, err = NewSymmetricKey("1234567")
	assert.ErrorIs(t, err, KeyTooShort)

	key, err := NewSymmetricKey("12345678")
	require.NoError(t, err)
	assert.Equal(t, []byte("12345678"), key.Bytes())
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		raw      string
		wantKind ErrorKind
	}{
		{"caesar ok", Shift, " 3 ", ""},
		{"caesar not a number", Shift, "three", InvalidKeyFormat},
		{"caesar out of range", Shift, "26", KeyOutOfRange},
		{"caesar empty", Shift, "  ", EmptyKey},
		{"hill ok", Matrix, "5 2 3 3", ""},
		{"hill commas", Matrix, "5,2,3,3", ""},
		{"hill three numbers", Matrix, "5 2 3", InvalidKeyFormat},
		{"hill not numbers", Matrix, "a b c d", InvalidKeyFormat},
		{"hill singular", Matrix, "2 4 1 2", NonInvertibleKey},
		{"vigenere ok", Polyalphabetic, "KEY", ""},
		{"vigenere digits", Polyalphabetic, "K3Y", InvalidKeyFormat},
		{"playfair ok", DigraphSubstitution, "MONARCHY", ""},
		{"playfair phrase", DigraphSubstitution, "secret phrase!", ""},
		{"block ok", BlockCipher, "mysecretkey", ""},
		{"block short", BlockCipher, "short", KeyTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := ParseKey(tt.kind, tt.raw)
			if tt.wantKind == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.kind, key.Kind())
				return
			}
			assert.ErrorIs(t, err, tt.wantKind)
			kind, ok := KindOf(err)
			assert.True(t, ok)
			assert.Equal(t, tt.wantKind, kind)
		})
	}
}

func TestParseKind(t *testing.T) {
	tests := map[string]Kind{
		"caesar":               Shift,
		"Shift":                Shift,
		"HILL":                 Matrix,
		"vigenere":             Polyalphabetic,
		"playfair":             DigraphSubstitution,
		"digraph-substitution": DigraphSubstitution,
		"DES":                  BlockCipher,
		"block":                BlockCipher,
	}
	for name, want := range tests {
		got, err := ParseKind(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseKind("enigma")
	assert.Error(t, err)
}

func TestEngine_Dispatch(t *testing.T) {
	e := NewEngine(WithBlockProvider(xorProvider{}))
	ctx := context.Background()

	tests := []struct {
		kind Kind
		key  string
		text string
		want string
	}{
		{Shift, "3", "HELLO", "KHOOR"},
		{Matrix, "3 3 2 5", "help", "HIAT"},
		{Polyalphabetic, "LEMON", "ATTACKATDAWN", "LXFOPVEFRNHR"},
		{DigraphSubstitution, "MONARCHY", "instruments", "GATLMZCLRQXA"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			res, err := e.EncryptString(ctx, tt.kind, tt.text, tt.key)
			require.NoError(t, err)
			assert.Equal(t, Result{Kind: tt.kind, Direction: Encrypt, Input: tt.text, Output: tt.want}, res)

			back, err := e.DecryptString(ctx, tt.kind, res.Output, tt.key)
			require.NoError(t, err)
			assert.Equal(t, Decrypt, back.Direction)
		})
	}

	res, err := e.EncryptString(ctx, BlockCipher, "secret message", "mysecretkey")
	require.NoError(t, err)
	back, err := e.DecryptString(ctx, BlockCipher, res.Output, "mysecretkey")
	require.NoError(t, err)
	assert.Equal(t, "secret message", back.Output)
}

func TestEngine_ValidatesBeforeTransform(t *testing.T) {
	var recorded []Result
	e := NewEngine(WithSink(SinkFunc(func(r Result) { recorded = append(recorded, r) })))
	ctx := context.Background()

	shift, _ := NewShiftKey(3)

	_, err := e.Encrypt(ctx, Shift, "", shift)
	assert.ErrorIs(t, err, EmptyText)

	_, err = e.Encrypt(ctx, Shift, "   ", shift)
	assert.ErrorIs(t, err, EmptyText)

	_, err = e.Encrypt(ctx, Matrix, "HELLO", shift)
	assert.ErrorIs(t, err, InvalidKeyFormat)

	_, err = e.Encrypt(ctx, Shift, "HELLO", nil)
	assert.ErrorIs(t, err, EmptyKey)

	_, err = e.Encrypt(ctx, Matrix, "HELLO", MatrixKey{})
	assert.ErrorIs(t, err, NonInvertibleKey)

	_, err = e.EncryptString(ctx, BlockCipher, "HELLO", "mysecretkey")
	assert.ErrorIs(t, err, ErrNoBlockCipher)

	assert.Empty(t, recorded, "failed calls must not reach the sink")
}

func TestEngine_UnknownDirection(t *testing.T) {
	e := NewEngine()
	shift, _ := NewShiftKey(3)

	_, err := e.Process(context.Background(), Direction(7), Shift, "HELLO", shift)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown direction")
	_, isCipherErr := KindOf(err)
	assert.False(t, isCipherErr)
}

func TestEngine_FeedsSink(t *testing.T) {
	var (
		mu       sync.Mutex
		recorded []Result
	)
	sink := SinkFunc(func(r Result) {
		mu.Lock()
		defer mu.Unlock()
		recorded = append(recorded, r)
	})
	e := NewEngine(WithSink(sink))
	ctx := context.Background()

	_, err := e.EncryptString(ctx, Shift, "HELLO", "3")
	require.NoError(t, err)
	_, err = e.DecryptString(ctx, Shift, "KHOOR", "3")
	require.NoError(t, err)

	require.Len(t, recorded, 2)
	assert.Equal(t, Result{Kind: Shift, Direction: Encrypt, Input: "HELLO", Output: "KHOOR"}, recorded[0])
	assert.Equal(t, Result{Kind: Shift, Direction: Decrypt, Input: "KHOOR", Output: "HELLO"}, recorded[1])
}

func TestEngine_CancelledContextSkipsProvider(t *testing.T) {
	e := NewEngine(WithBlockProvider(xorProvider{}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.EncryptString(ctx, BlockCipher, "HELLO", "mysecretkey")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_Bind(t *testing.T) {
	e := NewEngine()
	key, _ := NewKeywordKey("KEY")

	c, err := e.Bind(key)
	require.NoError(t, err)
	_, ok := c.(*Vigenere)
	assert.True(t, ok)

	_, err = e.Bind(nil)
	assert.ErrorIs(t, err, EmptyKey)
}

func TestError_Message(t *testing.T) {
	_, err := ParseKey(Matrix, "2 4 1 2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hill: non-invertible key")
	assert.Equal(t, "NON_INVERTIBLE_KEY", NonInvertibleKey.Code())
}

func TestCatalog(t *testing.T) {
	infos := Catalog()
	require.Len(t, infos, len(Kinds))
	for i, info := range infos {
		assert.Equal(t, Kinds[i], info.Kind)
		assert.NotEmpty(t, info.KeyHint)
	}

	hill, ok := Describe(Matrix)
	require.True(t, ok)
	assert.True(t, hill.Lossy)
}

func TestKindAndDirection_Text(t *testing.T) {
	b, err := DigraphSubstitution.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "playfair", string(b))

	var k Kind
	require.NoError(t, k.UnmarshalText([]byte("Hill")))
	assert.Equal(t, Matrix, k)
	assert.Error(t, k.UnmarshalText([]byte("enigma")))

	_, err = Kind(42).MarshalText()
	assert.Error(t, err)

	var d Direction
	require.NoError(t, d.UnmarshalText([]byte("DEC")))
	assert.Equal(t, Decrypt, d)
	d, err = ParseDirection("encrypt")
	require.NoError(t, err)
	assert.Equal(t, Encrypt, d)
	_, err = ParseDirection("sideways")
	assert.Error(t, err)
}
