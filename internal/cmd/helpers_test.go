package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vaultenv/cipherlab/internal/config"
	"github.com/vaultenv/cipherlab/internal/ui"
	"github.com/vaultenv/cipherlab/pkg/history"
	"github.com/vaultenv/cipherlab/pkg/keystore"
)

// testEnv wires in-memory collaborators and a fast config for one test
type testEnv struct {
	recorder *history.MemoryRecorder
	keys     *keystore.MockKeystore
	config   string
}

func setupTest(t *testing.T) *testEnv {
	t.Helper()

	rec := history.NewMemoryRecorder(0)
	history.SetTestRecorder(rec)
	mock := keystore.NewMockKeystore()
	testKeystore = mock

	cfg := config.DefaultConfig()
	cfg.Block.KeyDerivation.Iterations = 1
	cfg.Block.KeyDerivation.Memory = 8 * 1024
	cfg.Block.KeyDerivation.Parallelism = 1
	cfg.History.Backend = "memory"
	cfg.UI = config.UIConfig{}

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, cfg.SaveToFile(path))

	t.Cleanup(func() {
		history.ResetTestRecorder()
		testKeystore = nil
		globalConfig = nil
		ui.ResetOutput()
		ui.SetEmoji(true)
		ui.SetProgress(true)
	})

	return &testEnv{recorder: rec, keys: mock, config: path}
}

// run executes the root command with args and stdin, returning what was
// written to stdout and stderr
func (e *testEnv) run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	root := NewRootCommand()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config", e.config}, args...))

	err := root.Execute()
	return out.String(), errOut.String(), err
}

// entries returns every recorded operation, oldest first
func (e *testEnv) entries(t *testing.T) []history.Entry {
	t.Helper()
	entries, err := e.recorder.List(history.Query{})
	require.NoError(t, err)
	return entries
}
