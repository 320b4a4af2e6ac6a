package keystore

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/vaultenv/cipherlab/pkg/cipher"
)

// NamedKey is a cipher key saved under a name
type NamedKey struct {
	Name   string      `json:"-"`
	Cipher cipher.Kind `json:"cipher"`
	Value  string      `json:"value"`
}

// Key parses the stored value into a validated cipher key
func (n NamedKey) Key() (cipher.Key, error) {
	return cipher.ParseKey(n.Cipher, n.Value)
}

// Keys stores NamedKeys in a Keystore under one service
type Keys struct {
	store   Keystore
	service string
}

// NewKeys wraps store. An empty service means DefaultService.
func NewKeys(store Keystore, service string) *Keys {
	if service == "" {
		service = DefaultService
	}
	return &Keys{store: store, service: service}
}

// Save validates raw for kind and stores it under name, replacing any
// previous key of that name
func (k *Keys) Save(name string, kind cipher.Kind, raw string) error {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, ": \t\n") {
		return fmt.Errorf("invalid key name %q", name)
	}
	if _, err := cipher.ParseKey(kind, raw); err != nil {
		return err
	}

	data, err := json.Marshal(NamedKey{Cipher: kind, Value: raw})
	if err != nil {
		return fmt.Errorf("failed to encode key: %w", err)
	}
	return k.store.Store(k.service, name, data)
}

// Load returns the key saved under name
func (k *Keys) Load(name string) (NamedKey, error) {
	data, err := k.store.Retrieve(k.service, name)
	if err != nil {
		return NamedKey{}, err
	}

	var nk NamedKey
	if err := json.Unmarshal(data, &nk); err != nil {
		return NamedKey{}, fmt.Errorf("stored key %q is corrupt: %w", name, err)
	}
	nk.Name = name
	return nk, nil
}

// Remove deletes the key saved under name
func (k *Keys) Remove(name string) error {
	return k.store.Delete(k.service, name)
}

// Names lists saved key names in sorted order
func (k *Keys) Names() ([]string, error) {
	names, err := k.store.List(k.service)
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}
