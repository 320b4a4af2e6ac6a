// Package keystore keeps named cipher keys in the operating system's
// secure storage.
package keystore

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/99designs/keyring"
)

// ErrNotFound is returned when no key is stored under a name
var ErrNotFound = errors.New("key not found")

// DefaultService is the keyring service name used by cipherlab
const DefaultService = "cipherlab"

// Keystore provides secure storage for keys
type Keystore interface {
	// Store saves a key securely
	Store(service, account string, data []byte) error

	// Retrieve gets a stored key
	Retrieve(service, account string) ([]byte, error)

	// Delete removes a stored key
	Delete(service, account string) error

	// List returns all stored keys for a service
	List(service string) ([]string, error)
}

// Options configures the OS keystore
type Options struct {
	Service string
	// Backends restricts and orders the keyring backends by name
	// ("keychain", "wincred", "secret-service", "kwallet", "file").
	// Empty means the platform defaults.
	Backends []string
	FileDir  string
	// Password unlocks the encrypted file backend without prompting
	Password string
}

var defaultBackends = []keyring.BackendType{
	keyring.KeychainBackend,      // macOS Keychain
	keyring.WinCredBackend,       // Windows Credential Manager
	keyring.SecretServiceBackend, // Linux Secret Service (GNOME/KDE)
	keyring.KWalletBackend,       // KDE Wallet (legacy)
	keyring.FileBackend,          // Encrypted file (fallback)
}

// OSKeystore uses the operating system's secure storage
type OSKeystore struct {
	ring keyring.Keyring
}

// NewOSKeystore creates a keystore using OS facilities
func NewOSKeystore(opts Options) (*OSKeystore, error) {
	if opts.Service == "" {
		opts.Service = DefaultService
	}
	if opts.FileDir == "" {
		opts.FileDir = "~/.cipherlab/keyring"
	}

	backends := defaultBackends
	if len(opts.Backends) > 0 {
		backends = make([]keyring.BackendType, 0, len(opts.Backends))
		for _, name := range opts.Backends {
			backends = append(backends, keyring.BackendType(strings.ToLower(strings.TrimSpace(name))))
		}
	}

	passwordFunc := keyring.TerminalPrompt
	if opts.Password != "" {
		passwordFunc = keyring.FixedStringPrompt(opts.Password)
	}

	config := keyring.Config{
		ServiceName:      opts.Service,
		AllowedBackends:  backends,
		FilePasswordFunc: passwordFunc,
		FileDir:          opts.FileDir,
		KeychainName:     opts.Service,
		WinCredPrefix:    opts.Service,
	}

	ring, err := keyring.Open(config)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyring: %w", err)
	}

	return &OSKeystore{ring: ring}, nil
}

// Store saves a key securely
func (k *OSKeystore) Store(service, account string, data []byte) error {
	return k.ring.Set(keyring.Item{
		Key:         makeKey(service, account),
		Data:        data,
		Label:       fmt.Sprintf("cipherlab key %s", account),
		Description: fmt.Sprintf("Cipher key saved as %q", account),
	})
}

// Retrieve gets a stored key
func (k *OSKeystore) Retrieve(service, account string) ([]byte, error) {
	item, err := k.ring.Get(makeKey(service, account))
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, account)
		}
		return nil, fmt.Errorf("failed to retrieve key: %w", err)
	}

	return item.Data, nil
}

// Delete removes a stored key
func (k *OSKeystore) Delete(service, account string) error {
	err := k.ring.Remove(makeKey(service, account))
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("failed to delete key: %w", err)
	}
	return nil
}

// List returns all stored keys for a service
func (k *OSKeystore) List(service string) ([]string, error) {
	keys, err := k.ring.Keys()
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	return accountsFor(service, keys), nil
}

// GetBackend returns a best guess of the keyring backend in use
func (k *OSKeystore) GetBackend() string {
	switch runtime.GOOS {
	case "darwin":
		return "macOS Keychain"
	case "windows":
		return "Windows Credential Manager"
	case "linux":
		return "Secret Service"
	default:
		return "Encrypted File"
	}
}

// makeKey creates a consistent key format
func makeKey(service, account string) string {
	return service + ":" + account
}

func accountsFor(service string, keys []string) []string {
	var accounts []string
	prefix := service + ":"
	for _, key := range keys {
		if account, ok := strings.CutPrefix(key, prefix); ok && account != "" {
			accounts = append(accounts, account)
		}
	}
	return accounts
}
