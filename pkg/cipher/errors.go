package cipher

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a cipher call was rejected. A kind is itself an
// error so callers can match with errors.Is(err, cipher.NonInvertibleKey).
type ErrorKind string

const (
	// InvalidKeyFormat means the key does not have the shape the cipher needs
	InvalidKeyFormat ErrorKind = "INVALID_KEY_FORMAT"

	// KeyOutOfRange means a numeric key is outside its domain
	KeyOutOfRange ErrorKind = "KEY_OUT_OF_RANGE"

	// NonInvertibleKey means a matrix key has no inverse mod 26
	NonInvertibleKey ErrorKind = "NON_INVERTIBLE_KEY"

	// KeyTooShort means a block cipher key is under the minimum length
	KeyTooShort ErrorKind = "KEY_TOO_SHORT"

	// EmptyKey means a required key, keyword or passphrase was empty
	EmptyKey ErrorKind = "EMPTY_KEY"

	// EmptyText means there was nothing to transform
	EmptyText ErrorKind = "EMPTY_TEXT"

	// DecryptionFailure means plaintext could not be recovered
	DecryptionFailure ErrorKind = "DECRYPTION_FAILURE"
)

var kindDescriptions = map[ErrorKind]string{
	InvalidKeyFormat:  "invalid key format",
	KeyOutOfRange:     "key out of range",
	NonInvertibleKey:  "non-invertible key",
	KeyTooShort:       "key too short",
	EmptyKey:          "empty key",
	EmptyText:         "empty text",
	DecryptionFailure: "decryption failed",
}

// ErrNoBlockCipher is returned when a block cipher key is used on an engine
// that was built without a block cipher collaborator
var ErrNoBlockCipher = errors.New("no block cipher configured")

func (k ErrorKind) Error() string {
	if desc, ok := kindDescriptions[k]; ok {
		return desc
	}
	return string(k)
}

// Code returns the stable upper-case identifier of the kind
func (k ErrorKind) Code() string {
	return string(k)
}

// Error is the failure value returned by every cipher operation
type Error struct {
	Kind   ErrorKind
	Cipher Kind
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Msg != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Msg)
	}
	if e.Cipher != 0 {
		msg = fmt.Sprintf("%s: %s", e.Cipher, msg)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the error against its kind
func (e *Error) Is(target error) bool {
	kind, ok := target.(ErrorKind)
	return ok && kind == e.Kind
}

func newError(kind ErrorKind, c Kind, format string, args ...interface{}) *Error {
	return &Error{
		Kind:   kind,
		Cipher: c,
		Msg:    fmt.Sprintf(format, args...),
	}
}

// KindOf extracts the ErrorKind carried by err, if any
func KindOf(err error) (ErrorKind, bool) {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr.Kind, true
	}
	var kind ErrorKind
	if errors.As(err, &kind) {
		return kind, true
	}
	return "", false
}
