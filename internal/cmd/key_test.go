package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultenv/cipherlab/pkg/cipher"
	"github.com/vaultenv/cipherlab/pkg/keystore"
)

func TestKeySave(t *testing.T) {
	env := setupTest(t)

	out, _, err := env.run(t, "", "key", "save", "classroom", "--cipher", "hill", "--key", "3 3 2 5")
	require.NoError(t, err)
	assert.Contains(t, out, `Saved hill key "classroom"`)

	named, err := keystore.NewKeys(env.keys, "cipherlab").Load("classroom")
	require.NoError(t, err)
	assert.Equal(t, cipher.Matrix, named.Cipher)
	assert.Equal(t, "3 3 2 5", named.Value)
}

func TestKeySave_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
		kind cipher.ErrorKind
	}{
		{"non_invertible", []string{"key", "save", "bad", "-c", "hill", "-k", "2 4 6 8"}, cipher.NonInvertibleKey},
		{"missing_key", []string{"key", "save", "bad", "-c", "playfair"}, cipher.EmptyKey},
		{"wrong_format", []string{"key", "save", "bad", "-c", "caesar", "-k", "three"}, cipher.InvalidKeyFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTest(t)

			_, _, err := env.run(t, "", tt.args...)
			kind, ok := cipher.KindOf(err)
			require.True(t, ok, "error = %v", err)
			assert.Equal(t, tt.kind, kind)

			names, err := env.keys.List("cipherlab")
			require.NoError(t, err)
			assert.Empty(t, names)
		})
	}
}

func TestKeyList(t *testing.T) {
	env := setupTest(t)

	out, _, err := env.run(t, "", "key", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No saved keys")

	_, _, err = env.run(t, "", "key", "save", "work", "-c", "vigenere", "-k", "LEMON")
	require.NoError(t, err)
	_, _, err = env.run(t, "", "key", "save", "home", "-c", "caesar", "-k", "7")
	require.NoError(t, err)

	out, _, err = env.run(t, "", "key", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "work")
	assert.Contains(t, out, "vigenere")
	assert.Contains(t, out, "home")
	assert.NotContains(t, out, "LEMON")

	out, _, err = env.run(t, "", "k", "list", "--show-values")
	require.NoError(t, err)
	assert.Contains(t, out, "LEMON")
}

func TestKeyDelete(t *testing.T) {
	env := setupTest(t)

	_, _, err := env.run(t, "", "key", "save", "work", "-c", "vigenere", "-k", "LEMON")
	require.NoError(t, err)

	out, _, err := env.run(t, "", "key", "delete", "work")
	require.NoError(t, err)
	assert.Contains(t, out, `Deleted key "work"`)

	_, _, err = env.run(t, "", "key", "rm", "work")
	assert.True(t, errors.Is(err, keystore.ErrNotFound), "error = %v", err)
}
