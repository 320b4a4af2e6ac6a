package cipher

import (
	"context"
	"fmt"
	"strings"
)

// TextCipher is a cipher bound to a validated key
type TextCipher interface {
	Encrypt(text string) (string, error)
	Decrypt(text string) (string, error)
}

// Result describes one successful call
type Result struct {
	Kind      Kind
	Direction Direction
	Input     string
	Output    string
}

// Sink receives every successful Result. The engine does not timestamp or
// store anything itself.
type Sink interface {
	Record(result Result)
}

// SinkFunc adapts a function to Sink
type SinkFunc func(Result)

// Record calls f(result)
func (f SinkFunc) Record(result Result) { f(result) }

// Engine dispatches requests to the right cipher. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	block BlockProvider
	sink  Sink
}

// Option configures an Engine
type Option func(*Engine)

// WithBlockProvider sets the collaborator used for BlockCipher requests
func WithBlockProvider(p BlockProvider) Option {
	return func(e *Engine) {
		e.block = p
	}
}

// WithSink sets the sink notified after successful calls
func WithSink(s Sink) Option {
	return func(e *Engine) {
		e.sink = s
	}
}

// NewEngine creates an engine
func NewEngine(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Encrypt encrypts text with key using the cipher named by kind
func (e *Engine) Encrypt(ctx context.Context, kind Kind, text string, key Key) (Result, error) {
	return e.Process(ctx, Encrypt, kind, text, key)
}

// Decrypt decrypts text with key using the cipher named by kind
func (e *Engine) Decrypt(ctx context.Context, kind Kind, text string, key Key) (Result, error) {
	return e.Process(ctx, Decrypt, kind, text, key)
}

// EncryptString parses rawKey for kind and encrypts text
func (e *Engine) EncryptString(ctx context.Context, kind Kind, text, rawKey string) (Result, error) {
	key, err := ParseKey(kind, rawKey)
	if err != nil {
		return Result{}, err
	}
	return e.Encrypt(ctx, kind, text, key)
}

// DecryptString parses rawKey for kind and decrypts text
func (e *Engine) DecryptString(ctx context.Context, kind Kind, text, rawKey string) (Result, error) {
	key, err := ParseKey(kind, rawKey)
	if err != nil {
		return Result{}, err
	}
	return e.Decrypt(ctx, kind, text, key)
}

// Process validates the request, runs the transform and notifies the sink.
// Validation always completes before any transform starts.
func (e *Engine) Process(ctx context.Context, dir Direction, kind Kind, text string, key Key) (Result, error) {
	if dir != Encrypt && dir != Decrypt {
		return Result{}, fmt.Errorf("unknown direction %d", int(dir))
	}
	if strings.TrimSpace(text) == "" {
		return Result{}, newError(EmptyText, kind, "nothing to %s", strings.ToLower(dir.verb()))
	}
	if key == nil {
		return Result{}, newError(EmptyKey, kind, "key is required")
	}
	if key.Kind() != kind {
		return Result{}, newError(InvalidKeyFormat, kind, "got a %s key", key.Kind())
	}

	c, err := e.bind(key)
	if err != nil {
		return Result{}, err
	}

	// The block provider is the only call that can take a while or fail
	// outside our control
	if kind == BlockCipher {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
	}

	var out string
	if dir == Encrypt {
		out, err = c.Encrypt(text)
	} else {
		out, err = c.Decrypt(text)
	}
	if err != nil {
		return Result{}, err
	}

	result := Result{Kind: kind, Direction: dir, Input: text, Output: out}
	if e.sink != nil {
		e.sink.Record(result)
	}
	return result, nil
}

// Bind returns the cipher for key, ready for repeated use
func (e *Engine) Bind(key Key) (TextCipher, error) {
	if key == nil {
		return nil, newError(EmptyKey, 0, "key is required")
	}
	return e.bind(key)
}

func (e *Engine) bind(key Key) (TextCipher, error) {
	switch k := key.(type) {
	case ShiftKey:
		return NewCaesar(k)
	case MatrixKey:
		return NewHill(k)
	case KeywordKey:
		return NewVigenere(k)
	case PassphraseKey:
		return NewPlayfair(k)
	case SymmetricKey:
		return NewBlockAdapter(e.block, k)
	default:
		return nil, newError(InvalidKeyFormat, key.Kind(), "unsupported key type %T", key)
	}
}

func (d Direction) verb() string {
	if d == Decrypt {
		return "Decrypt"
	}
	return "Encrypt"
}
