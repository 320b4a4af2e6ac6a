package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultenv/cipherlab/internal/config"
	"github.com/vaultenv/cipherlab/internal/ui"
)

func TestConfigShow(t *testing.T) {
	env := setupTest(t)

	out, _, err := env.run(t, "", "config")
	require.NoError(t, err)
	assert.Contains(t, out, "version: \"1.0\"")
	assert.Contains(t, out, "backend: memory")

	t.Setenv("CIPHERLAB_BLOCK_ALGORITHM", "aes-gcm-256")
	out, _, err = env.run(t, "", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "algorithm: aes-gcm-256")
}

func TestConfigGet(t *testing.T) {
	env := setupTest(t)

	tests := []struct {
		key  string
		want string
	}{
		{"defaults.cipher", "caesar\n"},
		{"block.key_derivation.iterations", "1\n"},
		{"history.enabled", "true\n"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			out, _, err := env.run(t, "", "config", "get", tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}

	out, _, err := env.run(t, "", "config", "get", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "backend: memory")

	_, _, err = env.run(t, "", "config", "get", "nope.nothing")
	assert.ErrorContains(t, err, "key not found")
}

func TestConfigSet(t *testing.T) {
	env := setupTest(t)

	out, _, err := env.run(t, "", "config", "set", "defaults.cipher", "vigenere")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration updated")

	out, _, err = env.run(t, "", "config", "set", "history.limit", "50")
	require.NoError(t, err)

	cfg, err := config.LoadFromFile(env.config)
	require.NoError(t, err)
	assert.Equal(t, "vigenere", cfg.Defaults.Cipher)
	assert.Equal(t, 50, cfg.History.Limit)
	assert.Equal(t, uint32(1), cfg.KDF().Iterations, "other values are kept")

	// The new default is used right away
	out, _, err = env.run(t, "", "encrypt", "-k", "LEMON", "ATTACKATDAWN")
	require.NoError(t, err)
	assert.Equal(t, "LXFOPVEFRNHR\n", out)
}

func TestConfigSet_Invalid(t *testing.T) {
	env := setupTest(t)
	before, err := os.ReadFile(env.config)
	require.NoError(t, err)

	tests := [][]string{
		{"config", "set", "defaults.cipher", "enigma"},
		{"config", "set", "history.limit", "-5"},
		{"config", "set", "history", "off"},
		{"config", "set", "no.such.key", "1"},
	}
	for _, args := range tests {
		_, _, err := env.run(t, "", args...)
		assert.Error(t, err, "args %v", args)
	}

	after, err := os.ReadFile(env.config)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestConfigPath(t *testing.T) {
	env := setupTest(t)

	out, _, err := env.run(t, "", "config", "path")
	require.NoError(t, err)
	assert.Equal(t, env.config+"\n", out)
}

func TestConfigInit(t *testing.T) {
	setupTest(t)

	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	run := func(args ...string) error {
		root := NewRootCommand()
		root.SetOut(&discard{})
		root.SetErr(&discard{})
		root.SetArgs(args)
		return root.Execute()
	}

	require.NoError(t, run("config", "init"))
	_, err = config.LoadFromFile(filepath.Join(dir, config.DirName, "config.yaml"))
	require.NoError(t, err)

	assert.ErrorContains(t, run("config", "init"), "already exists")

	// A broken config blocks other commands but not init --force
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DirName, "config.yaml"),
		[]byte("version: \"1.0\"\nhistory:\n  backend: floppy\n"), 0600))

	err = run("ciphers")
	var helpErr ui.ErrorWithHelp
	require.True(t, errors.As(err, &helpErr), "error = %v", err)
	assert.Equal(t, "INVALID_CONFIG", helpErr.Code)

	require.NoError(t, run("config", "init", "--force"))
	require.NoError(t, run("ciphers"))
}

// discard is an io.Writer that drops everything
type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
