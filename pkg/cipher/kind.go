package cipher

import (
	"fmt"
	"strings"
)

// Kind identifies one of the supported ciphers
type Kind int

const (
	// Shift is the Caesar cipher
	Shift Kind = iota + 1
	// Matrix is the 2x2 Hill cipher
	Matrix
	// Polyalphabetic is the Vigenère cipher
	Polyalphabetic
	// DigraphSubstitution is the Playfair cipher
	DigraphSubstitution
	// BlockCipher delegates to an external symmetric block cipher
	BlockCipher
)

// Kinds lists every cipher kind in display order
var Kinds = []Kind{Shift, Matrix, Polyalphabetic, DigraphSubstitution, BlockCipher}

var kindNames = map[Kind]string{
	Shift:               "caesar",
	Matrix:              "hill",
	Polyalphabetic:      "vigenere",
	DigraphSubstitution: "playfair",
	BlockCipher:         "block",
}

var kindAliases = map[string]Kind{
	"caesar":              Shift,
	"shift":               Shift,
	"hill":                Matrix,
	"matrix":              Matrix,
	"vigenere":            Polyalphabetic,
	"polyalphabetic":      Polyalphabetic,
	"playfair":            DigraphSubstitution,
	"digraph":             DigraphSubstitution,
	"digraphsubstitution": DigraphSubstitution,
	"block":               BlockCipher,
	"blockcipher":         BlockCipher,
	"des":                 BlockCipher,
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind resolves a cipher name or alias, case-insensitively
func ParseKind(name string) (Kind, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.NewReplacer("-", "", "_", "", " ", "").Replace(normalized)
	if kind, ok := kindAliases[normalized]; ok {
		return kind, nil
	}
	return 0, fmt.Errorf("unknown cipher: %q", name)
}

// Direction tells whether a call encrypts or decrypts
type Direction int

const (
	Encrypt Direction = iota + 1
	Decrypt
)

func (d Direction) String() string {
	switch d {
	case Encrypt:
		return "ENC"
	case Decrypt:
		return "DEC"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// MarshalText encodes the kind by name
func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("unknown cipher kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText accepts any name ParseKind accepts
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseDirection accepts ENC/DEC and encrypt/decrypt, case-insensitively
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "enc", "encrypt":
		return Encrypt, nil
	case "dec", "decrypt":
		return Decrypt, nil
	}
	return 0, fmt.Errorf("unknown direction: %q", s)
}

// MarshalText encodes the direction as ENC or DEC
func (d Direction) MarshalText() ([]byte, error) {
	if d != Encrypt && d != Decrypt {
		return nil, fmt.Errorf("unknown direction %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText is the inverse of MarshalText
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
