package keystore

import (
	"fmt"
	"sort"
	"sync"
)

// MockKeystore is an in-memory implementation for testing
type MockKeystore struct {
	mu   sync.Mutex
	keys map[string][]byte
}

func NewMockKeystore() *MockKeystore {
	return &MockKeystore{
		keys: make(map[string][]byte),
	}
}

func (m *MockKeystore) Store(service, account string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(data) == 0 {
		return fmt.Errorf("cannot store empty data")
	}
	// Store a copy to prevent external modifications
	m.keys[makeKey(service, account)] = append([]byte(nil), data...)
	return nil
}

func (m *MockKeystore) Retrieve(service, account string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, exists := m.keys[makeKey(service, account)]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, account)
	}
	return append([]byte(nil), data...), nil
}

func (m *MockKeystore) Delete(service, account string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.keys, makeKey(service, account))
	return nil
}

func (m *MockKeystore) List(service string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys := make([]string, 0, len(m.keys))
	for key := range m.keys {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return accountsFor(service, keys), nil
}
