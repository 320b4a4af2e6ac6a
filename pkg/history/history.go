// Package history keeps a log of successful cipher operations.
package history

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vaultenv/cipherlab/pkg/cipher"
)

// ErrClosed is returned by a recorder used after Close
var ErrClosed = errors.New("history recorder is closed")

// Entry is one logged operation
type Entry struct {
	ID        uuid.UUID        `json:"id" yaml:"id"`
	Cipher    cipher.Kind      `json:"cipher" yaml:"cipher"`
	Direction cipher.Direction `json:"direction" yaml:"direction"`
	Input     string           `json:"input" yaml:"input"`
	Output    string           `json:"output" yaml:"output"`
	Timestamp time.Time        `json:"timestamp" yaml:"timestamp"`
}

// NewEntry stamps a cipher result with a fresh ID and the current time
func NewEntry(res cipher.Result) Entry {
	return Entry{
		ID:        uuid.New(),
		Cipher:    res.Kind,
		Direction: res.Direction,
		Input:     res.Input,
		Output:    res.Output,
		Timestamp: time.Now(),
	}
}

// Clock renders the timestamp as [HH:MM:SS]
func (e Entry) Clock() string {
	return e.Timestamp.Local().Format("[15:04:05]")
}

// Query filters List results. Zero values match everything.
type Query struct {
	Cipher    cipher.Kind
	Direction cipher.Direction
	// Limit keeps only the most recent entries
	Limit int
}

func (q Query) matches(e Entry) bool {
	if q.Cipher != 0 && e.Cipher != q.Cipher {
		return false
	}
	if q.Direction != 0 && e.Direction != q.Direction {
		return false
	}
	return true
}

// Recorder defines the interface for history implementations.
// List returns entries oldest first.
type Recorder interface {
	// Record appends an entry
	Record(e Entry) error

	// List returns the entries matching q
	List(q Query) ([]Entry, error)

	// Clear removes every entry
	Clear() error

	// Close releases the recorder
	Close() error
}

// testRecorder is used for testing to override the configured recorder
var testRecorder Recorder

// SetTestRecorder makes Open return r
func SetTestRecorder(r Recorder) {
	testRecorder = r
}

// ResetTestRecorder clears the test recorder
func ResetTestRecorder() {
	testRecorder = nil
}

// keepOpen lets callers Close the shared test recorder without ending it
type keepOpen struct {
	Recorder
}

func (keepOpen) Close() error { return nil }

// Options contains options for opening a recorder
type Options struct {
	Backend string // "memory" or "sqlite", defaults to "sqlite"
	Path    string // database file for the sqlite backend
	// MaxEntries bounds the log; the oldest entries are dropped first.
	// Zero means unbounded.
	MaxEntries int
}

// Open returns a recorder for the given options
func Open(opts Options) (Recorder, error) {
	if testRecorder != nil {
		return keepOpen{testRecorder}, nil
	}

	if opts.Backend == "" {
		opts.Backend = "sqlite"
	}

	switch opts.Backend {
	case "memory":
		return NewMemoryRecorder(opts.MaxEntries), nil
	case "sqlite":
		if opts.Path == "" {
			return nil, fmt.Errorf("sqlite history needs a path")
		}
		return NewSQLiteRecorder(opts.Path, opts.MaxEntries)
	default:
		return nil, fmt.Errorf("unsupported history backend: %s", opts.Backend)
	}
}

// NewSink adapts r to cipher.Sink. Recording failures go to onError, which
// may be nil.
func NewSink(r Recorder, onError func(error)) cipher.Sink {
	return cipher.SinkFunc(func(res cipher.Result) {
		if err := r.Record(NewEntry(res)); err != nil && onError != nil {
			onError(fmt.Errorf("failed to record history: %w", err))
		}
	})
}
