package ui

import (
    "errors"
    "fmt"
    "strings"

    "github.com/vaultenv/cipherlab/pkg/cipher"
    "github.com/vaultenv/cipherlab/pkg/keystore"
)

// ErrorWithHelp represents an error with helpful context
type ErrorWithHelp struct {
    Message    string
    Suggestion string
    Code       string
    Err        error
}

func (e ErrorWithHelp) Error() string {
    return e.Message
}

func (e ErrorWithHelp) Unwrap() error {
    return e.Err
}

// Common errors with helpful suggestions
var commonErrors = map[string]ErrorWithHelp{
    "UNKNOWN_CIPHER": {
        Message:    "Unknown cipher '%s'",
        Suggestion: "Use 'cipherlab ciphers' to see the supported ciphers",
    },
    "KEY_NOT_FOUND": {
        Message:    "No saved key named '%s'",
        Suggestion: "Use 'cipherlab key list' to see saved keys",
    },
    "INVALID_CONFIG": {
        Message:    "Invalid configuration: %s",
        Suggestion: "Run 'cipherlab config init' to create a valid configuration",
    },
    "HISTORY_DISABLED": {
        Message:    "History is disabled",
        Suggestion: "Set history.enabled to true in .cipherlab/config.yaml",
    },
}

// cipherMessages holds the validation messages shown for a failed key or
// text, by error kind and then by cipher. A zero Kind is the fallback.
var cipherMessages = map[cipher.ErrorKind]map[cipher.Kind]string{
    cipher.InvalidKeyFormat: {
        cipher.Shift:          "Caesar cipher requires a NUMBER key",
        cipher.Matrix:         "Hill cipher requires exactly 4 numbers separated by spaces",
        cipher.Polyalphabetic: "Vigenere cipher requires LETTERS only in the key",
        0:                     "The key does not fit the selected cipher",
    },
    cipher.KeyOutOfRange: {
        cipher.Shift: "Caesar cipher key must be between 0 and 25",
        0:            "Key is out of range",
    },
    cipher.NonInvertibleKey: {
        0: "Hill cipher key matrix is not invertible mod 26",
    },
    cipher.KeyTooShort: {
        0: fmt.Sprintf("Block cipher requires a key of at least %d characters", cipher.MinSymmetricKeyLength),
    },
    cipher.EmptyKey: {
        cipher.DigraphSubstitution: "Playfair cipher requires a key",
        0:                          "Please enter a key",
    },
    cipher.EmptyText: {
        0: "Please enter a message",
    },
    cipher.DecryptionFailure: {
        0: "Decryption failed. Please check your inputs and key.",
    },
}

var cipherSuggestions = map[cipher.ErrorKind]string{
    cipher.NonInvertibleKey:  "Pick a, b, c, d so that ad - bc shares no factor with 26 (odd and not 13), e.g. '3 3 2 5'",
    cipher.EmptyText:         "Pass --text, --file, or pipe the message on stdin",
    cipher.DecryptionFailure: "Use the same key and block algorithm that produced the ciphertext",
}

// FromCipherError turns a cipher validation failure into an error with help.
// It reports false for errors that do not carry a cipher.ErrorKind.
func FromCipherError(err error) (ErrorWithHelp, bool) {
    kind, ok := cipher.KindOf(err)
    if !ok {
        return ErrorWithHelp{}, false
    }

    var c cipher.Kind
    var ce *cipher.Error
    if errors.As(err, &ce) {
        c = ce.Cipher
    }

    message, ok := cipherMessages[kind][c]
    if !ok {
        message = cipherMessages[kind][0]
    }

    suggestion := cipherSuggestions[kind]
    if suggestion == "" && c != 0 {
        if info, found := cipher.Describe(c); found {
            suggestion = "Key format: " + info.KeyHint
        }
    }

    return ErrorWithHelp{
        Message:    message,
        Suggestion: suggestion,
        Code:       kind.Code(),
        Err:        err,
    }, true
}

// HandleError displays an error with helpful context
func HandleError(err error) {
    if err == nil {
        return
    }

    // Check if it's one of our errors with help
    var helpErr ErrorWithHelp
    if errors.As(err, &helpErr) {
        displayErrorWithHelp(helpErr)
        return
    }

    if helpErr, ok := FromCipherError(err); ok {
        displayErrorWithHelp(helpErr)
        Debug("%v", err)
        return
    }

    if errors.Is(err, keystore.ErrNotFound) {
        displayErrorWithHelp(ErrorWithHelp{
            Message:    err.Error(),
            Suggestion: commonErrors["KEY_NOT_FOUND"].Suggestion,
            Code:       "KEY_NOT_FOUND",
        })
        return
    }

    // Check for common error patterns
    errStr := err.Error()
    switch {
    case strings.Contains(errStr, "database is locked"):
        displayLockedError()
    case strings.Contains(errStr, "permission denied"):
        displayPermissionError()
    default:
        Error(err.Error())
    }
}

func displayErrorWithHelp(err ErrorWithHelp) {
    Error(err.Message)

    if err.Suggestion != "" {
        fmt.Fprintln(stderr)
        infoColor.Fprintln(stderr, icon("💡 ")+"Suggestion:")
        fmt.Fprintf(stderr, "   %s\n", err.Suggestion)
    }

    // Show error code for scripting
    if err.Code != "" {
        fmt.Fprintln(stderr)
        mutedColor.Fprintf(stderr, "Error code: %s\n", err.Code)
    }
}

func displayLockedError() {
    Error("History database is busy")
    fmt.Fprintln(stderr)
    infoColor.Fprintln(stderr, icon("💡 ")+"This might be due to:")
    fmt.Fprintln(stderr, "   • Another cipherlab process writing history")
    fmt.Fprintln(stderr, "   • A stale lock left by a crashed process")
    fmt.Fprintln(stderr)
    fmt.Fprintln(stderr, "Try again, or run with CIPHERLAB_HISTORY_BACKEND=memory")
}

func displayPermissionError() {
    Error("Permission denied")
    fmt.Fprintln(stderr)
    infoColor.Fprintln(stderr, icon("💡 ")+"This might mean:")
    fmt.Fprintln(stderr, "   • The history database or config file is owned by another user")
    fmt.Fprintln(stderr, "   • The keyring is locked")
}

func icon(s string) string {
    if !showEmoji {
        return ""
    }
    return s
}

// NewError creates an error with helpful context
func NewError(code string, args ...interface{}) error {
    template, exists := commonErrors[code]
    if !exists {
        return fmt.Errorf("unknown error: %s", code)
    }

    return ErrorWithHelp{
        Message:    fmt.Sprintf(template.Message, args...),
        Suggestion: template.Suggestion,
        Code:       code,
    }
}
