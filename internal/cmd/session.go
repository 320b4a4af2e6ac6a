package cmd

import (
	"fmt"

	"github.com/vaultenv/cipherlab/internal/config"
	"github.com/vaultenv/cipherlab/internal/ui"
	"github.com/vaultenv/cipherlab/pkg/cipher"
	"github.com/vaultenv/cipherlab/pkg/encryption"
	"github.com/vaultenv/cipherlab/pkg/history"
)

// session is the engine plus the collaborators wired from config for one
// command run
type session struct {
	engine    *cipher.Engine
	algorithm string
	recorder  history.Recorder
}

// openSession builds an engine for cfg. algorithm overrides the configured
// block algorithm when set. With record, successful calls are written to
// the history log, if history is enabled.
func openSession(cfg *config.Config, algorithm string, record bool) (*session, error) {
	provider, err := blockProvider(cfg, algorithm)
	if err != nil {
		return nil, err
	}

	s := &session{algorithm: provider.Algorithm()}
	opts := []cipher.Option{cipher.WithBlockProvider(provider)}

	if record && cfg.History.Enabled {
		rec, err := openRecorder(cfg)
		if err != nil {
			return nil, err
		}
		s.recorder = rec
		opts = append(opts, cipher.WithSink(history.NewSink(rec, func(err error) {
			ui.Warning("%v", err)
		})))
	}

	s.engine = cipher.NewEngine(opts...)
	return s, nil
}

// Close releases the history recorder, if any
func (s *session) Close() error {
	if s.recorder == nil {
		return nil
	}
	return s.recorder.Close()
}

func blockProvider(cfg *config.Config, algorithm string) (*encryption.PassphraseCipher, error) {
	if algorithm == "" {
		algorithm = cfg.Block.Algorithm
	}
	enc, err := encryption.NewEncryptor(algorithm)
	if err != nil {
		return nil, err
	}
	return encryption.NewPassphraseCipher(enc, encryption.WithKDF(cfg.KDF())), nil
}

// openRecorder opens the configured history log
func openRecorder(cfg *config.Config) (history.Recorder, error) {
	if !cfg.History.Enabled {
		return nil, ui.NewError("HISTORY_DISABLED")
	}

	path := ""
	if cfg.History.Backend == "sqlite" {
		var err error
		if path, err = cfg.HistoryPath(); err != nil {
			return nil, err
		}
	}

	rec, err := history.Open(history.Options{
		Backend:    cfg.History.Backend,
		Path:       path,
		MaxEntries: cfg.History.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	return rec, nil
}
